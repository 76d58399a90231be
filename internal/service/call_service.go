package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

// queryMargin widens date windows sent to the database; results are filtered
// exactly by the domain scheduling rules afterwards.
const queryMargin = 24 * time.Hour

// ScheduleOptions controls how today, upcoming and calendar views are computed
type ScheduleOptions struct {
	Location      *time.Location
	UpcomingLimit int
}

type CallService struct {
	callRepo   *repository.CallRepository
	clientRepo *repository.ClientRepository
	opts       ScheduleOptions
	metrics    *metrics.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

func NewCallService(
	callRepo *repository.CallRepository,
	clientRepo *repository.ClientRepository,
	opts ScheduleOptions,
	m *metrics.Metrics,
	logger *zap.Logger,
) *CallService {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.UpcomingLimit <= 0 {
		opts.UpcomingLimit = domain.DefaultUpcomingLimit
	}
	return &CallService{
		callRepo:   callRepo,
		clientRepo: clientRepo,
		opts:       opts,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the clock used for default call dates and schedule views
func (s *CallService) WithClock(now func() time.Time) *CallService {
	s.now = now
	return s
}

func (s *CallService) getCall(ctx context.Context, id uuid.UUID) (*domain.Call, error) {
	call, err := s.callRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCallNotFound
		}
		return nil, fmt.Errorf("failed to get call: %w", err)
	}
	return call, nil
}

func (s *CallService) getClient(ctx context.Context, rawID string) (*domain.Client, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: client must be a valid id", ErrInvalidInput)
	}
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *CallService) parseDate(field, value string) (time.Time, error) {
	t, err := domain.ParseDateTime(value, s.opts.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidDate, field)
	}
	return t.UTC(), nil
}

func (s *CallService) parseOptionalDate(field, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := s.parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// promotionAvailable reports whether a write recorded a first Success outcome
// for a client that is not yet paying
func promotionAvailable(outcome, previous domain.CallOutcome, client *domain.Client) bool {
	return outcome == domain.CallOutcomeSuccess &&
		previous != domain.CallOutcomeSuccess &&
		client != nil && !client.IsClient
}

func (s *CallService) Create(ctx context.Context, req *domain.CreateCallRequest) (*domain.CallResultDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}
	req.Normalize()

	client, err := s.getClient(ctx, req.Client)
	if err != nil {
		return nil, err
	}

	callDate := s.now().UTC()
	if strings.TrimSpace(req.CallDate) != "" {
		if callDate, err = s.parseDate("callDate", req.CallDate); err != nil {
			return nil, err
		}
	}
	nextActionDate, err := s.parseOptionalDate("nextActionDate", req.NextActionDate)
	if err != nil {
		return nil, err
	}

	call := &domain.Call{
		ClientID:       client.ID,
		UserID:         userCtx.UserID,
		CallDate:       callDate,
		NextActionDate: nextActionDate,
		Status:         domain.ParseCallStatus(req.Status),
		Duration:       req.Duration,
		Outcome:        domain.ParseCallOutcome(req.Outcome),
		Notes:          req.Notes,
		NextAction:     req.NextAction,
	}

	if err := s.callRepo.Create(ctx, call); err != nil {
		return nil, fmt.Errorf("failed to create call: %w", err)
	}
	s.metrics.CallCreated(string(call.Status))

	created, err := s.getCall(ctx, call.ID)
	if err != nil {
		return nil, err
	}

	result := mapper.ToCallResultDTO(created, promotionAvailable(call.Outcome, domain.CallOutcomeNone, client))
	return &result, nil
}

func (s *CallService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CallDTO, error) {
	call, err := s.getCall(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToCallDTO(call)
	return &dto, nil
}

// List returns every call, most recent call date first
func (s *CallService) List(ctx context.Context) ([]domain.CallDTO, error) {
	calls, err := s.callRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list calls: %w", err)
	}
	return mapper.ToCallDTOs(calls), nil
}

// ListByClient returns the calls logged against one client
func (s *CallService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.CallDTO, error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	calls, err := s.callRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list client calls: %w", err)
	}
	return mapper.ToCallDTOs(calls), nil
}

// Update applies the fields present in req. Changing either date re-arms the
// call soon reminder.
func (s *CallService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateCallRequest) (*domain.CallResultDTO, error) {
	call, err := s.getCall(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Normalize()

	previousOutcome := call.Outcome
	client := call.Client

	if req.Client != nil {
		if client, err = s.getClient(ctx, *req.Client); err != nil {
			return nil, err
		}
		call.ClientID = client.ID
	}

	datesChanged := false
	if req.CallDate != nil {
		callDate, err := s.parseDate("callDate", *req.CallDate)
		if err != nil {
			return nil, err
		}
		datesChanged = datesChanged || !callDate.Equal(call.CallDate)
		call.CallDate = callDate
	}
	if req.NextActionDate != nil {
		nextActionDate, err := s.parseOptionalDate("nextActionDate", *req.NextActionDate)
		if err != nil {
			return nil, err
		}
		datesChanged = datesChanged || !sameOptionalTime(nextActionDate, call.NextActionDate)
		call.NextActionDate = nextActionDate
	}
	if datesChanged {
		call.ReminderSentAt = nil
	}

	// A blank status keeps the current one; only create falls back to Scheduled
	if req.Status != nil && *req.Status != "" {
		status, ok := domain.LookupCallStatus(*req.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		call.Status = status
	}
	if req.Outcome != nil {
		call.Outcome = domain.ParseCallOutcome(*req.Outcome)
	}
	if req.Duration != nil {
		call.Duration = *req.Duration
	}
	if req.Notes != nil {
		call.Notes = *req.Notes
	}
	if req.NextAction != nil {
		call.NextAction = *req.NextAction
	}

	call.Client = nil
	call.User = nil
	if err := s.callRepo.Update(ctx, call); err != nil {
		return nil, fmt.Errorf("failed to update call: %w", err)
	}

	updated, err := s.getCall(ctx, id)
	if err != nil {
		return nil, err
	}

	result := mapper.ToCallResultDTO(updated, promotionAvailable(updated.Outcome, previousOutcome, client))
	return &result, nil
}

func sameOptionalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func (s *CallService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.callRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCallNotFound
		}
		return fmt.Errorf("failed to delete call: %w", err)
	}
	return nil
}

// Today returns the caller's calls due on the given day (default today), in
// display time order. An empty date means the current day.
func (s *CallService) Today(ctx context.Context, date string) ([]domain.ScheduledCallDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}

	now := s.now()
	ref := now
	if strings.TrimSpace(date) != "" {
		parsed, err := domain.ParseDateTime(date, s.opts.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: date", ErrInvalidDate)
		}
		ref = parsed
	}

	start, end := domain.DayBounds(ref, s.opts.Location)
	calls, err := s.callRepo.ListForUserBetween(ctx, userCtx.UserID, start.Add(-queryMargin), end.Add(queryMargin))
	if err != nil {
		return nil, fmt.Errorf("failed to list calls: %w", err)
	}

	today := domain.FilterToday(calls, ref, s.opts.Location)
	dtos := make([]domain.ScheduledCallDTO, len(today))
	for i := range today {
		call := &today[i]
		dtos[i] = mapper.ToScheduledCallDTO(call,
			domain.DisplayTime(call, ref, s.opts.Location),
			domain.IsCallSoon(call, now, s.opts.Location))
	}
	return dtos, nil
}

// Upcoming returns the caller's next open calls. A non-positive limit uses the configured cap.
func (s *CallService) Upcoming(ctx context.Context, limit int) ([]domain.ScheduledCallDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}
	if limit <= 0 {
		limit = s.opts.UpcomingLimit
	}

	now := s.now()
	calls, err := s.callRepo.ListActiveForUserAfter(ctx, userCtx.UserID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list calls: %w", err)
	}

	upcoming := domain.FilterUpcoming(calls, now, limit)
	dtos := make([]domain.ScheduledCallDTO, len(upcoming))
	for i := range upcoming {
		call := &upcoming[i]
		dueAt, _ := domain.UpcomingTime(call, now)
		dtos[i] = mapper.ToScheduledCallDTO(call, dueAt, domain.IsCallSoon(call, now, s.opts.Location))
	}
	return dtos, nil
}

// Calendar buckets the caller's call and follow-up dates into the days of one month
func (s *CallService) Calendar(ctx context.Context, year int, month int) (*domain.CalendarDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}
	if year < 1 || month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: year and month are required, month must be 1-12", ErrInvalidInput)
	}

	start, end := domain.MonthBounds(year, time.Month(month), s.opts.Location)
	calls, err := s.callRepo.ListForUserBetween(ctx, userCtx.UserID, start.Add(-queryMargin), end.Add(queryMargin))
	if err != nil {
		return nil, fmt.Errorf("failed to list calls: %w", err)
	}

	days := domain.CalendarMonth(calls, year, time.Month(month), s.opts.Location)
	dto := mapper.ToCalendarDTO(year, time.Month(month), days)
	return &dto, nil
}

// resolveImportClient finds the client a call row refers to, by id or by the
// name or address of one of the importer's clients
func (s *CallService) resolveImportClient(ctx context.Context, userID uuid.UUID, ref string) (*domain.Client, error) {
	if id, err := uuid.Parse(ref); err == nil {
		client, err := s.clientRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if client.UserID != userID {
			return nil, gorm.ErrRecordNotFound
		}
		return client, nil
	}
	return s.clientRepo.FindByNameOrAddress(ctx, userID, ref)
}

// Import creates one call per valid row. Calls are never matched against
// existing ones, so updated is always zero.
func (s *CallService) Import(ctx context.Context, req *domain.ImportCallsRequest) (*domain.ImportResult, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}
	if len(req.Data) == 0 {
		return nil, ErrNoImportData
	}

	result := &domain.ImportResult{Total: len(req.Data)}
	skip := func(row int, format string, args ...interface{}) {
		result.Skipped++
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: ", row)+fmt.Sprintf(format, args...))
	}

	for i := range req.Data {
		rec := &req.Data[i]
		row := i + 1

		missing := ""
		switch {
		case strings.TrimSpace(rec.Client) == "":
			missing = "client"
		case strings.TrimSpace(rec.CallDate) == "":
			missing = "callDate"
		case strings.TrimSpace(rec.Status) == "":
			missing = "status"
		}
		if missing != "" {
			skip(row, "missing or empty required field %q", missing)
			continue
		}

		client, err := s.resolveImportClient(ctx, userCtx.UserID, strings.TrimSpace(rec.Client))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				skip(row, "client %q not found", strings.TrimSpace(rec.Client))
			} else {
				skip(row, "%v", err)
			}
			continue
		}

		callDate, err := s.parseDate("callDate", rec.CallDate)
		if err != nil {
			skip(row, "invalid callDate %q", rec.CallDate)
			continue
		}
		nextActionDate, err := s.parseOptionalDate("nextActionDate", rec.NextActionDate)
		if err != nil {
			skip(row, "invalid nextActionDate %q", rec.NextActionDate)
			continue
		}
		if rec.Duration < 0 {
			skip(row, "duration must not be negative")
			continue
		}

		call := &domain.Call{
			ClientID:       client.ID,
			UserID:         userCtx.UserID,
			CallDate:       callDate,
			NextActionDate: nextActionDate,
			Status:         domain.ParseCallStatus(rec.Status),
			Duration:       int(rec.Duration),
			Outcome:        domain.ParseCallOutcome(rec.Outcome),
			Notes:          strings.TrimSpace(rec.Notes),
			NextAction:     strings.TrimSpace(rec.NextAction),
		}
		if err := s.callRepo.Create(ctx, call); err != nil {
			skip(row, "%v", err)
			continue
		}
		s.metrics.CallCreated(string(call.Status))
		result.Imported++
	}

	s.metrics.ImportRows("calls", result.Imported, result.Updated, result.Skipped)
	s.logger.Info("call import completed",
		zap.String("user_id", userCtx.UserID.String()),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Int("total", result.Total),
	)

	return result, nil
}
