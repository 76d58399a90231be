package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/calltracker-api/internal/auth"
	"github.com/straye-as/calltracker-api/internal/domain"
	"github.com/straye-as/calltracker-api/internal/mapper"
	"github.com/straye-as/calltracker-api/internal/metrics"
	"github.com/straye-as/calltracker-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationService handles business logic for notifications
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	callRepo         *repository.CallRepository
	location         *time.Location
	metrics          *metrics.Metrics
	logger           *zap.Logger
	now              func() time.Time
}

// NewNotificationService creates a new NotificationService instance
func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	callRepo *repository.CallRepository,
	location *time.Location,
	m *metrics.Metrics,
	logger *zap.Logger,
) *NotificationService {
	if location == nil {
		location = time.Local
	}
	return &NotificationService{
		notificationRepo: notificationRepo,
		callRepo:         callRepo,
		location:         location,
		metrics:          m,
		logger:           logger,
		now:              time.Now,
	}
}

// WithClock replaces the clock used for read stamps and reminder windows
func (s *NotificationService) WithClock(now func() time.Time) *NotificationService {
	s.now = now
	return s
}

// GetForCurrentUser returns notifications for the current user with pagination
func (s *NotificationService) GetForCurrentUser(ctx context.Context, page, pageSize int, unreadOnly bool) (*domain.PaginatedResponse, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}

	// Clamp page size
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}
	if page < 1 {
		page = 1
	}

	notifications, total, err := s.notificationRepo.ListByUser(ctx, userCtx.UserID, page, pageSize, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	dtos := make([]domain.NotificationDTO, len(notifications))
	for i := range notifications {
		dtos[i] = mapper.ToNotificationDTO(&notifications[i])
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// MarkAsRead marks one of the current user's notifications as read.
// Notifications owned by someone else are reported as not found.
func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID uuid.UUID) error {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return ErrUserContextRequired
	}

	notification, err := s.notificationRepo.GetByIDForUser(ctx, notificationID, userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to get notification: %w", err)
	}

	// Already read, nothing to do
	if notification.Read {
		return nil
	}

	if err := s.notificationRepo.MarkAsRead(ctx, notificationID, s.now().UTC()); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}

	s.logger.Debug("notification marked as read",
		zap.String("notification_id", notificationID.String()),
		zap.String("user_id", userCtx.UserID.String()),
	)

	return nil
}

// MarkAllAsReadForUser marks all notifications for the current user as read
func (s *NotificationService) MarkAllAsReadForUser(ctx context.Context) (int64, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return 0, ErrUserContextRequired
	}

	updated, err := s.notificationRepo.MarkAllAsRead(ctx, userCtx.UserID, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications as read: %w", err)
	}

	s.logger.Info("all notifications marked as read",
		zap.String("user_id", userCtx.UserID.String()),
		zap.Int64("updated", updated),
	)

	return updated, nil
}

// GetUnreadCount returns the count of unread notifications for the current user
func (s *NotificationService) GetUnreadCount(ctx context.Context) (*domain.UnreadCountDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}

	count, err := s.notificationRepo.CountUnread(ctx, userCtx.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return &domain.UnreadCountDTO{Count: count}, nil
}

func reminderMessage(call *domain.Call, at time.Time, loc *time.Location) string {
	who := "your client"
	if call.Client != nil {
		who = call.Client.Name
		if call.Client.Company != "" && call.Client.Company != call.Client.Name {
			who = fmt.Sprintf("%s (%s)", call.Client.Name, call.Client.Company)
		}
	}
	return fmt.Sprintf("Call %s at %s", who, at.In(loc).Format("15:04"))
}

// SendCallReminders creates one call soon notification per open call whose
// display time is within the next hour and that has not been reminded yet.
// It returns the number of reminders sent.
func (s *NotificationService) SendCallReminders(ctx context.Context) (int, error) {
	now := s.now()
	candidates, err := s.callRepo.ListReminderCandidates(ctx, now, now.Add(domain.CallSoonWindow))
	if err != nil {
		return 0, fmt.Errorf("failed to list reminder candidates: %w", err)
	}

	sent := 0
	for i := range candidates {
		call := &candidates[i]
		if !domain.IsCallSoon(call, now, s.location) {
			continue
		}

		entityID := call.ID
		notification := &domain.Notification{
			UserID:     call.UserID,
			Type:       string(domain.NotificationTypeCallSoon),
			Title:      "Upcoming call",
			Message:    reminderMessage(call, domain.DisplayTime(call, now, s.location), s.location),
			EntityID:   &entityID,
			EntityType: "call",
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			s.logger.Warn("failed to create call reminder",
				zap.String("call_id", call.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if err := s.callRepo.MarkReminderSent(ctx, call.ID, now.UTC()); err != nil {
			s.logger.Warn("failed to stamp call reminder",
				zap.String("call_id", call.ID.String()),
				zap.Error(err),
			)
		}
		sent++
	}

	s.metrics.RemindersSent(sent)
	if sent > 0 {
		s.logger.Info("call reminders sent", zap.Int("count", sent))
	}
	return sent, nil
}
