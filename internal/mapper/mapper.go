package mapper

import (
	"time"

	"github.com/straye-as/calltracker-api/internal/domain"
)

// FormatTime renders t as RFC 3339 in UTC
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := FormatTime(*t)
	return &s
}

// ToUserDTO converts User to UserDTO
func ToUserDTO(user *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: FormatTime(user.CreatedAt),
	}
}

// ToAuthResponse pairs a user with a freshly issued token
func ToAuthResponse(user *domain.User, token string) domain.AuthResponse {
	return domain.AuthResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	}
}

// ToClientDTO converts Client to ClientDTO
func ToClientDTO(client *domain.Client) domain.ClientDTO {
	return domain.ClientDTO{
		ID:          client.ID,
		UserID:      client.UserID,
		Name:        client.Name,
		Address:     client.Address,
		Phone:       client.Phone,
		Company:     client.Company,
		Web:         client.Web,
		Mail:        client.Mail,
		PostalMail:  client.PostalMail,
		Notes:       client.Notes,
		IsActive:    client.IsActive,
		IsClient:    client.IsClient,
		ClientSince: formatOptionalTime(client.ClientSince),
		CreatedAt:   FormatTime(client.CreatedAt),
		UpdatedAt:   FormatTime(client.UpdatedAt),
	}
}

// ToClientDTOs converts a slice, never returning nil
func ToClientDTOs(clients []domain.Client) []domain.ClientDTO {
	dtos := make([]domain.ClientDTO, len(clients))
	for i := range clients {
		dtos[i] = ToClientDTO(&clients[i])
	}
	return dtos
}

// ToCallDTO converts Call to CallDTO, embedding the client and user when preloaded
func ToCallDTO(call *domain.Call) domain.CallDTO {
	dto := domain.CallDTO{
		ID:             call.ID,
		ClientID:       call.ClientID,
		UserID:         call.UserID,
		CallDate:       FormatTime(call.CallDate),
		NextActionDate: formatOptionalTime(call.NextActionDate),
		Status:         string(call.Status),
		Duration:       call.Duration,
		Outcome:        string(call.Outcome),
		Notes:          call.Notes,
		NextAction:     call.NextAction,
		CreatedAt:      FormatTime(call.CreatedAt),
		UpdatedAt:      FormatTime(call.UpdatedAt),
	}

	if call.Client != nil {
		dto.Client = &domain.CallClientDTO{
			ID:      call.Client.ID,
			Name:    call.Client.Name,
			Address: call.Client.Address,
			Phone:   call.Client.Phone,
			Company: call.Client.Company,
		}
	}
	if call.User != nil {
		dto.User = &domain.CallUserDTO{
			ID:   call.User.ID,
			Name: call.User.Name,
		}
	}

	return dto
}

// ToCallDTOs converts a slice, never returning nil
func ToCallDTOs(calls []domain.Call) []domain.CallDTO {
	dtos := make([]domain.CallDTO, len(calls))
	for i := range calls {
		dtos[i] = ToCallDTO(&calls[i])
	}
	return dtos
}

// ToCallResultDTO wraps a written call with the promotion prompt flag
func ToCallResultDTO(call *domain.Call, promotionAvailable bool) domain.CallResultDTO {
	return domain.CallResultDTO{
		CallDTO:            ToCallDTO(call),
		PromotionAvailable: promotionAvailable,
	}
}

// ToScheduledCallDTO converts a call in the today or upcoming list
func ToScheduledCallDTO(call *domain.Call, dueAt time.Time, callSoon bool) domain.ScheduledCallDTO {
	return domain.ScheduledCallDTO{
		CallDTO:  ToCallDTO(call),
		DueAt:    FormatTime(dueAt),
		CallSoon: callSoon,
	}
}

// ToCalendarDTO converts bucketed days for one month
func ToCalendarDTO(year int, month time.Month, days []domain.CalendarDay) domain.CalendarDTO {
	dto := domain.CalendarDTO{
		Year:  year,
		Month: int(month),
		Days:  make([]domain.CalendarDayDTO, 0, len(days)),
	}
	for _, day := range days {
		dayDTO := domain.CalendarDayDTO{
			Date:    day.Date.Format("2006-01-02"),
			Entries: make([]domain.CalendarEntryDTO, 0, len(day.Entries)),
		}
		for _, entry := range day.Entries {
			dayDTO.Entries = append(dayDTO.Entries, domain.CalendarEntryDTO{
				Kind: string(entry.Kind),
				Time: FormatTime(entry.Time),
				Call: ToCallDTO(entry.Call),
			})
		}
		dto.Days = append(dto.Days, dayDTO)
	}
	return dto
}

// ToNotificationDTO converts Notification to NotificationDTO
func ToNotificationDTO(notification *domain.Notification) domain.NotificationDTO {
	return domain.NotificationDTO{
		ID:         notification.ID,
		Type:       notification.Type,
		Title:      notification.Title,
		Message:    notification.Message,
		Read:       notification.Read,
		CreatedAt:  FormatTime(notification.CreatedAt),
		EntityID:   notification.EntityID,
		EntityType: notification.EntityType,
	}
}
