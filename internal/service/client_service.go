package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/calltracker-api/internal/auth"
	"github.com/straye-as/calltracker-api/internal/cache"
	"github.com/straye-as/calltracker-api/internal/domain"
	"github.com/straye-as/calltracker-api/internal/mapper"
	"github.com/straye-as/calltracker-api/internal/metrics"
	"github.com/straye-as/calltracker-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ClientService struct {
	clientRepo *repository.ClientRepository
	cache      *cache.Cache
	metrics    *metrics.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

func NewClientService(
	clientRepo *repository.ClientRepository,
	statsCache *cache.Cache,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		cache:      statsCache,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the clock used for clientSince stamps
func (s *ClientService) WithClock(now func() time.Time) *ClientService {
	s.now = now
	return s
}

func (s *ClientService) getClient(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

// invalidateStats drops cached statistics after any client write. Failures only log;
// the entry expires on its own.
func (s *ClientService) invalidateStats(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate client stats cache", zap.Error(err))
	}
}

func (s *ClientService) Create(ctx context.Context, req *domain.CreateClientRequest) (*domain.ClientDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}
	req.Normalize()

	client := &domain.Client{
		UserID:     userCtx.UserID,
		Name:       req.Name,
		Address:    req.Address,
		Phone:      req.Phone,
		Company:    req.Company,
		Web:        req.Web,
		Mail:       req.Mail,
		PostalMail: req.PostalMail,
		Notes:      req.Notes,
		IsActive:   true,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	s.invalidateStats(ctx)

	dto := mapper.ToClientDTO(client)
	return &dto, nil
}

func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ClientDTO, error) {
	client, err := s.getClient(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToClientDTO(client)
	return &dto, nil
}

// List returns all clients, newest first
func (s *ClientService) List(ctx context.Context, filters repository.ClientFilters) ([]domain.ClientDTO, error) {
	clients, err := s.clientRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return mapper.ToClientDTOs(clients), nil
}

// Update applies the fields present in req. Turning isClient on stamps clientSince
// unless the client already was one.
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateClientRequest) (*domain.ClientDTO, error) {
	client, err := s.getClient(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Normalize()

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&client.Name, req.Name)
	applyString(&client.Address, req.Address)
	applyString(&client.Phone, req.Phone)
	applyString(&client.Company, req.Company)
	applyString(&client.Web, req.Web)
	applyString(&client.Mail, req.Mail)
	applyString(&client.PostalMail, req.PostalMail)
	applyString(&client.Notes, req.Notes)

	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}
	if req.IsClient != nil {
		if *req.IsClient && !client.IsClient {
			since := s.now().UTC()
			client.ClientSince = &since
		}
		client.IsClient = *req.IsClient
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	s.invalidateStats(ctx)

	dto := mapper.ToClientDTO(client)
	return &dto, nil
}

// Delete removes the client together with its calls
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	s.invalidateStats(ctx)
	return nil
}

// ToggleActive inverts isActive. Calls are unaffected.
func (s *ClientService) ToggleActive(ctx context.Context, id uuid.UUID) (*domain.ClientDTO, error) {
	client, err := s.getClient(ctx, id)
	if err != nil {
		return nil, err
	}

	client.IsActive = !client.IsActive
	if err := s.clientRepo.SetActive(ctx, id, client.IsActive); err != nil {
		return nil, fmt.Errorf("failed to toggle client: %w", err)
	}
	s.invalidateStats(ctx)

	s.logger.Info("client active state toggled",
		zap.String("client_id", id.String()),
		zap.Bool("is_active", client.IsActive),
	)

	dto := mapper.ToClientDTO(client)
	return &dto, nil
}

// Promote marks the client as paying. Promoting an existing client changes nothing.
func (s *ClientService) Promote(ctx context.Context, id uuid.UUID) (*domain.ClientDTO, error) {
	if _, err := s.getClient(ctx, id); err != nil {
		return nil, err
	}

	changed, err := s.clientRepo.MarkAsClient(ctx, id, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to promote client: %w", err)
	}
	if changed {
		s.metrics.ClientPromoted()
		s.invalidateStats(ctx)
		s.logger.Info("client promoted", zap.String("client_id", id.String()))
	}

	return s.GetByID(ctx, id)
}

func clientImportKey(company, phone string) string {
	return strings.ToLower(strings.TrimSpace(company)) + "|" + strings.ToLower(strings.TrimSpace(phone))
}

func applyImportRecord(client *domain.Client, rec *domain.ClientImportRecord) {
	client.Company = strings.TrimSpace(rec.Company)
	client.Phone = strings.TrimSpace(rec.Phone)
	client.Name = strings.TrimSpace(rec.Name)
	if client.Name == "" {
		client.Name = client.Company
	}
	client.Address = strings.TrimSpace(rec.Address)
	client.Web = strings.TrimSpace(rec.Web)
	client.Mail = strings.TrimSpace(rec.Mail)
	client.PostalMail = strings.TrimSpace(rec.PostalMail)
	client.Notes = strings.TrimSpace(rec.Notes)
}

// Import creates or updates the caller's clients keyed on company and phone.
// Rows repeating a key from earlier in the batch update that client without
// being counted again.
func (s *ClientService) Import(ctx context.Context, req *domain.ImportClientsRequest) (*domain.ImportResult, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}
	if len(req.Data) == 0 {
		return nil, ErrNoImportData
	}

	result := &domain.ImportResult{Total: len(req.Data)}
	seen := make(map[string]*domain.Client, len(req.Data))

	for i := range req.Data {
		rec := &req.Data[i]
		row := i + 1

		switch {
		case strings.TrimSpace(rec.Company) == "":
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: missing or empty required field \"company\"", row))
			continue
		case strings.TrimSpace(rec.Phone) == "":
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: missing or empty required field \"phone\"", row))
			continue
		}

		key := clientImportKey(rec.Company, rec.Phone)
		if client, ok := seen[key]; ok {
			applyImportRecord(client, rec)
			if err := s.clientRepo.Update(ctx, client); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row, err))
			}
			continue
		}

		existing, err := s.clientRepo.FindByCompanyAndPhone(ctx, userCtx.UserID, rec.Company, rec.Phone)
		switch {
		case err == nil:
			applyImportRecord(existing, rec)
			if err := s.clientRepo.Update(ctx, existing); err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row, err))
				continue
			}
			result.Updated++
			seen[key] = existing

		case errors.Is(err, gorm.ErrRecordNotFound):
			client := &domain.Client{UserID: userCtx.UserID, IsActive: true}
			applyImportRecord(client, rec)
			if err := s.clientRepo.Create(ctx, client); err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row, err))
				continue
			}
			result.Imported++
			seen[key] = client

		default:
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", row, err))
		}
	}

	if result.Imported > 0 || result.Updated > 0 {
		s.invalidateStats(ctx)
	}
	s.metrics.ImportRows("clients", result.Imported, result.Updated, result.Skipped)

	s.logger.Info("client import completed",
		zap.String("user_id", userCtx.UserID.String()),
		zap.Int("imported", result.Imported),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("total", result.Total),
	)

	return result, nil
}

// Stats returns client counts. Everything except the caller's own count is
// shared between users and cached.
func (s *ClientService) Stats(ctx context.Context) (*domain.ClientStatsDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}

	key, err := s.cache.Key(ctx, "stats", "clients")
	if err != nil {
		s.logger.Warn("client stats cache unavailable", zap.Error(err))
		key = ""
	}

	var stats domain.ClientStatsDTO
	if key != "" {
		err = s.cache.FetchJSON(ctx, key, &stats, func(ctx context.Context) (interface{}, error) {
			return s.computeStats(ctx)
		})
	}
	if key == "" || err != nil {
		if err != nil {
			s.logger.Warn("client stats cache read failed", zap.Error(err))
		}
		computed, err := s.computeStats(ctx)
		if err != nil {
			return nil, err
		}
		stats = *computed
	}

	stats.UserClients = 0
	for _, entry := range stats.UserDistribution {
		if entry.UserID == userCtx.UserID {
			stats.UserClients = entry.ClientCount
			break
		}
	}
	return &stats, nil
}

func (s *ClientService) computeStats(ctx context.Context) (*domain.ClientStatsDTO, error) {
	total, err := s.clientRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}
	companies, err := s.clientRepo.CountDistinctCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count companies: %w", err)
	}
	coverage, err := s.clientRepo.FieldCoverage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute field coverage: %w", err)
	}
	distribution, err := s.clientRepo.UserDistribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute user distribution: %w", err)
	}
	if distribution == nil {
		distribution = []domain.UserClientCountDTO{}
	}

	return &domain.ClientStatsDTO{
		TotalClients:         total,
		UniqueCompaniesCount: companies,
		FieldCoverage:        coverage,
		UserDistribution:     distribution,
	}, nil
}
