package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/calltracker-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// activeStatuses are the statuses that still expect a call to happen
var activeStatuses = []domain.CallStatus{domain.CallStatusScheduled, domain.CallStatusInProgress}

type CallRepository struct {
	db *gorm.DB
}

func NewCallRepository(db *gorm.DB) *CallRepository {
	return &CallRepository{db: db}
}

func (r *CallRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Client").Preload("User")
}

func (r *CallRepository) Create(ctx context.Context, call *domain.Call) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(call).Error
}

func (r *CallRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Call, error) {
	var call domain.Call
	err := r.withRelations(ctx).First(&call, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &call, nil
}

func (r *CallRepository) Update(ctx context.Context, call *domain.Call) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(call).Error
}

func (r *CallRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Call{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns every call, latest call date first
func (r *CallRepository) List(ctx context.Context) ([]domain.Call, error) {
	var calls []domain.Call
	err := r.withRelations(ctx).Order("call_date DESC").Find(&calls).Error
	return calls, err
}

func (r *CallRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Call, error) {
	var calls []domain.Call
	err := r.withRelations(ctx).
		Where("client_id = ?", clientID).
		Order("call_date DESC").
		Find(&calls).Error
	return calls, err
}

// ListForUserBetween returns the user's calls with either date inside [from, to].
// Callers pass a window wider than they need and filter precisely in memory.
func (r *CallRepository) ListForUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.Call, error) {
	var calls []domain.Call
	from, to = from.UTC(), to.UTC()
	err := r.withRelations(ctx).
		Where("user_id = ?", userID).
		Where("((call_date BETWEEN ? AND ?) OR (next_action_date BETWEEN ? AND ?))", from, to, from, to).
		Order("call_date ASC").
		Find(&calls).Error
	return calls, err
}

// ListActiveForUserAfter returns the user's open calls with either date after the given time
func (r *CallRepository) ListActiveForUserAfter(ctx context.Context, userID uuid.UUID, after time.Time) ([]domain.Call, error) {
	var calls []domain.Call
	after = after.UTC()
	err := r.withRelations(ctx).
		Where("user_id = ? AND status IN ?", userID, activeStatuses).
		Where("(call_date > ? OR next_action_date > ?)", after, after).
		Order("call_date ASC").
		Find(&calls).Error
	return calls, err
}

// ListReminderCandidates returns open calls without a reminder that have a date inside [from, to]
func (r *CallRepository) ListReminderCandidates(ctx context.Context, from, to time.Time) ([]domain.Call, error) {
	var calls []domain.Call
	from, to = from.UTC(), to.UTC()
	err := r.withRelations(ctx).
		Where("status IN ? AND reminder_sent_at IS NULL", activeStatuses).
		Where("((call_date BETWEEN ? AND ?) OR (next_action_date BETWEEN ? AND ?))", from, to, from, to).
		Find(&calls).Error
	return calls, err
}

func (r *CallRepository) MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Call{}).
		Where("id = ?", id).
		Update("reminder_sent_at", at.UTC()).Error
}

func (r *CallRepository) CountByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Call{}).Where("client_id = ?", clientID).Count(&count).Error
	return count, err
}
