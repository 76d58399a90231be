package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// User DTOs

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt string    `json:"createdAt"` // ISO 8601
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Token string    `json:"token"`
}

type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Normalize trims the name and lowercases the email
func (r *RegisterUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Normalize lowercases the email
func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Client DTOs

type ClientDTO struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Company     string    `json:"company,omitempty"`
	Web         string    `json:"web,omitempty"`
	Mail        string    `json:"mail,omitempty"`
	PostalMail  string    `json:"postal_mail,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	IsActive    bool      `json:"isActive"`
	IsClient    bool      `json:"isClient"`
	ClientSince *string   `json:"clientSince,omitempty"` // ISO 8601
	CreatedAt   string    `json:"createdAt"`             // ISO 8601
	UpdatedAt   string    `json:"updatedAt"`             // ISO 8601
}

type CreateClientRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Address    string `json:"address" validate:"required,max=255"`
	Phone      string `json:"phone" validate:"required,max=50"`
	Company    string `json:"company" validate:"max=200"`
	Web        string `json:"web" validate:"max=500"`
	Mail       string `json:"mail" validate:"max=200"`
	PostalMail string `json:"postal_mail" validate:"max=255"`
	Notes      string `json:"notes"`
}

// Normalize trims every field so whitespace-only values fail "required"
func (r *CreateClientRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Company = strings.TrimSpace(r.Company)
	r.Web = strings.TrimSpace(r.Web)
	r.Mail = strings.TrimSpace(r.Mail)
	r.PostalMail = strings.TrimSpace(r.PostalMail)
	r.Notes = strings.TrimSpace(r.Notes)
}

// UpdateClientRequest is a partial update. Nil fields are left untouched;
// required fields that are present must not be blank.
type UpdateClientRequest struct {
	Name       *string `json:"name" validate:"omitnil,min=1,max=200"`
	Address    *string `json:"address" validate:"omitnil,min=1,max=255"`
	Phone      *string `json:"phone" validate:"omitnil,min=1,max=50"`
	Company    *string `json:"company" validate:"omitnil,max=200"`
	Web        *string `json:"web" validate:"omitnil,max=500"`
	Mail       *string `json:"mail" validate:"omitnil,max=200"`
	PostalMail *string `json:"postal_mail" validate:"omitnil,max=255"`
	Notes      *string `json:"notes"`
	IsActive   *bool   `json:"isActive"`
	IsClient   *bool   `json:"isClient"`
}

// Normalize trims every present string field
func (r *UpdateClientRequest) Normalize() {
	for _, field := range []*string{r.Name, r.Address, r.Phone, r.Company, r.Web, r.Mail, r.PostalMail, r.Notes} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
}

// ClientImportRecord is one CSV row mapped onto client fields
type ClientImportRecord struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	Notes      string `json:"notes"`
	Web        string `json:"web"`
	Mail       string `json:"mail"`
	PostalMail string `json:"postal_mail"`
}

type ImportClientsRequest struct {
	Data []ClientImportRecord `json:"data"`
}

// ImportResult summarizes a batch import
type ImportResult struct {
	Imported int      `json:"imported"`
	Updated  int      `json:"updated"`
	Skipped  int      `json:"skipped"`
	Total    int      `json:"total"`
	Errors   []string `json:"errors,omitempty"`
}

// Add folds another batch result into r
func (r *ImportResult) Add(other ImportResult) {
	r.Imported += other.Imported
	r.Updated += other.Updated
	r.Skipped += other.Skipped
	r.Total += other.Total
	r.Errors = append(r.Errors, other.Errors...)
}

type FieldCoverageDTO struct {
	WithAddress    int64 `json:"withAddress"`
	WithPhone      int64 `json:"withPhone"`
	WithWebsite    int64 `json:"withWebsite"`
	WithCategory   int64 `json:"withCategory"`
	WithPostalMail int64 `json:"withPostalMail"`
	WithNotes      int64 `json:"withNotes"`
}

type UserClientCountDTO struct {
	UserID      uuid.UUID `json:"userId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	ClientCount int64     `json:"clientCount"`
}

type ClientStatsDTO struct {
	UserClients          int64                `json:"userClients"`
	TotalClients         int64                `json:"totalClients"`
	UniqueCompaniesCount int64                `json:"uniqueCompaniesCount"`
	FieldCoverage        FieldCoverageDTO     `json:"fieldCoverage"`
	UserDistribution     []UserClientCountDTO `json:"userDistribution"`
}

// Call DTOs

// CallClientDTO is the client summary embedded in a call
type CallClientDTO struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address,omitempty"`
	Phone   string    `json:"phone,omitempty"`
	Company string    `json:"company,omitempty"`
}

// CallUserDTO is the creator summary embedded in a call
type CallUserDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CallDTO struct {
	ID             uuid.UUID      `json:"id"`
	ClientID       uuid.UUID      `json:"clientId"`
	Client         *CallClientDTO `json:"client,omitempty"`
	UserID         uuid.UUID      `json:"userId"`
	User           *CallUserDTO   `json:"user,omitempty"`
	CallDate       string         `json:"callDate"`                 // ISO 8601
	NextActionDate *string        `json:"nextActionDate,omitempty"` // ISO 8601
	Status         string         `json:"status"`
	Duration       int            `json:"duration"`
	Outcome        string         `json:"outcome,omitempty"`
	Notes          string         `json:"notes,omitempty"`
	NextAction     string         `json:"nextAction,omitempty"`
	CreatedAt      string         `json:"createdAt"` // ISO 8601
	UpdatedAt      string         `json:"updatedAt"` // ISO 8601
}

// CallResultDTO is returned by call create and update. PromotionAvailable is
// set when the write recorded a first Success outcome for a client that is
// not yet a paying client.
type CallResultDTO struct {
	CallDTO
	PromotionAvailable bool `json:"promotionAvailable"`
}

// ScheduledCallDTO is a call in the today or upcoming lists
type ScheduledCallDTO struct {
	CallDTO
	DueAt    string `json:"dueAt"` // ISO 8601
	CallSoon bool   `json:"callSoon"`
}

type CalendarEntryDTO struct {
	Kind string  `json:"kind"`
	Time string  `json:"time"` // ISO 8601
	Call CallDTO `json:"call"`
}

type CalendarDayDTO struct {
	Date    string             `json:"date"` // YYYY-MM-DD
	Entries []CalendarEntryDTO `json:"entries"`
}

type CalendarDTO struct {
	Year  int              `json:"year"`
	Month int              `json:"month"`
	Days  []CalendarDayDTO `json:"days"`
}

type CreateCallRequest struct {
	Client         string `json:"client" validate:"required,uuid"`
	CallDate       string `json:"callDate"`
	NextActionDate string `json:"nextActionDate"`
	Status         string `json:"status"`
	Duration       int    `json:"duration" validate:"gte=0"`
	Outcome        string `json:"outcome"`
	Notes          string `json:"notes" validate:"max=5000"`
	NextAction     string `json:"nextAction" validate:"max=500"`
}

// Normalize trims the free-text fields
func (r *CreateCallRequest) Normalize() {
	r.Client = strings.TrimSpace(r.Client)
	r.Notes = strings.TrimSpace(r.Notes)
	r.NextAction = strings.TrimSpace(r.NextAction)
}

// UpdateCallRequest is a partial update. An empty nextActionDate clears it.
type UpdateCallRequest struct {
	Client         *string `json:"client" validate:"omitnil,uuid"`
	CallDate       *string `json:"callDate" validate:"omitnil,min=1"`
	NextActionDate *string `json:"nextActionDate"`
	Status         *string `json:"status"`
	Duration       *int    `json:"duration" validate:"omitnil,gte=0"`
	Outcome        *string `json:"outcome"`
	Notes          *string `json:"notes" validate:"omitnil,max=5000"`
	NextAction     *string `json:"nextAction" validate:"omitnil,max=500"`
}

// Normalize trims every present string field
func (r *UpdateCallRequest) Normalize() {
	for _, field := range []*string{r.Client, r.CallDate, r.NextActionDate, r.Status, r.Outcome, r.Notes, r.NextAction} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
}

// FlexibleInt accepts a JSON number or a numeric string, since CSV rows arrive as text
type FlexibleInt int

func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleInt(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a number: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("duration must be a number: %w", err)
	}
	*f = FlexibleInt(n)
	return nil
}

// CallImportRecord is one CSV row mapped onto call fields.
// Client is a client ID or a client name or address owned by the importer.
type CallImportRecord struct {
	Client         string      `json:"client"`
	CallDate       string      `json:"callDate"`
	Status         string      `json:"status"`
	Duration       FlexibleInt `json:"duration"`
	Outcome        string      `json:"outcome"`
	Notes          string      `json:"notes"`
	NextAction     string      `json:"nextAction"`
	NextActionDate string      `json:"nextActionDate"`
}

type ImportCallsRequest struct {
	Data []CallImportRecord `json:"data"`
}

// Notification DTOs

type NotificationDTO struct {
	ID         uuid.UUID  `json:"id"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Read       bool       `json:"read"`
	CreatedAt  string     `json:"createdAt"` // ISO 8601
	EntityID   *uuid.UUID `json:"entityId,omitempty"`
	EntityType string     `json:"entityType,omitempty"`
}

// UnreadCountDTO represents the count of unread notifications
type UnreadCountDTO struct {
	Count int `json:"count"`
}

// Common

type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// DeleteResponse mirrors the body clients expect after a delete
type DeleteResponse struct {
	Success bool      `json:"success"`
	ID      uuid.UUID `json:"id"`
}
