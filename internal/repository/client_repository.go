package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/calltracker-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClientFilters narrows List. Zero values match everything.
type ClientFilters struct {
	Search   string
	IsActive *bool
	IsClient *bool
}

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(client).Error
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var client domain.Client
	err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// Update writes every column, including false booleans
func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(client).Error
}

// Delete removes the client and every call logged against it
func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&domain.Call{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Client{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// List returns clients newest first
func (r *ClientRepository) List(ctx context.Context, filters ClientFilters) ([]domain.Client, error) {
	var clients []domain.Client

	query := r.db.WithContext(ctx).Model(&domain.Client{})

	if filters.Search != "" {
		searchPattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(company) LIKE ? OR LOWER(phone) LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}
	if filters.IsActive != nil {
		query = query.Where("is_active = ?", *filters.IsActive)
	}
	if filters.IsClient != nil {
		query = query.Where("is_client = ?", *filters.IsClient)
	}

	err := query.Order("created_at DESC").Find(&clients).Error
	return clients, err
}

// SetActive persists only the isActive flag
func (r *ClientRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return r.db.WithContext(ctx).
		Model(&domain.Client{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

// MarkAsClient flags a prospect as a paying client. Clients that already are
// one keep their original clientSince; the return value reports whether a row changed.
func (r *ClientRepository) MarkAsClient(ctx context.Context, id uuid.UUID, since time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Client{}).
		Where("id = ? AND is_client = ?", id, false).
		Updates(map[string]interface{}{
			"is_client":    true,
			"client_since": since,
		})
	return result.RowsAffected > 0, result.Error
}

// FindByCompanyAndPhone looks up the import dedup key within one owner's clients
func (r *ClientRepository) FindByCompanyAndPhone(ctx context.Context, userID uuid.UUID, company, phone string) (*domain.Client, error) {
	var client domain.Client
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(TRIM(company)) = ? AND LOWER(TRIM(phone)) = ?",
			userID, strings.ToLower(strings.TrimSpace(company)), strings.ToLower(strings.TrimSpace(phone))).
		Order("created_at ASC").
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByNameOrAddress resolves a call import's client reference within one owner's clients
func (r *ClientRepository) FindByNameOrAddress(ctx context.Context, userID uuid.UUID, value string) (*domain.Client, error) {
	var client domain.Client
	needle := strings.ToLower(strings.TrimSpace(value))
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND (LOWER(name) = ? OR LOWER(address) = ?)", userID, needle, needle).
		Order("created_at ASC").
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Client{}).Count(&count).Error
	return count, err
}

// CountDistinctCompanies counts non-empty company names
func (r *ClientRepository) CountDistinctCompanies(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Client{}).
		Where("company IS NOT NULL AND company <> ''").
		Distinct("company").
		Count(&count).Error
	return count, err
}

// FieldCoverage counts clients with each optional field filled in
func (r *ClientRepository) FieldCoverage(ctx context.Context) (domain.FieldCoverageDTO, error) {
	var row struct {
		WithAddress    int64
		WithPhone      int64
		WithWebsite    int64
		WithCategory   int64
		WithPostalMail int64
		WithNotes      int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Client{}).
		Select(`
			COALESCE(SUM(CASE WHEN address IS NOT NULL AND address <> '' THEN 1 ELSE 0 END), 0) AS with_address,
			COALESCE(SUM(CASE WHEN phone IS NOT NULL AND phone <> '' THEN 1 ELSE 0 END), 0) AS with_phone,
			COALESCE(SUM(CASE WHEN web IS NOT NULL AND web <> '' THEN 1 ELSE 0 END), 0) AS with_website,
			COALESCE(SUM(CASE WHEN mail IS NOT NULL AND mail <> '' THEN 1 ELSE 0 END), 0) AS with_category,
			COALESCE(SUM(CASE WHEN postal_mail IS NOT NULL AND postal_mail <> '' THEN 1 ELSE 0 END), 0) AS with_postal_mail,
			COALESCE(SUM(CASE WHEN notes IS NOT NULL AND notes <> '' THEN 1 ELSE 0 END), 0) AS with_notes`).
		Scan(&row).Error
	if err != nil {
		return domain.FieldCoverageDTO{}, err
	}
	return domain.FieldCoverageDTO{
		WithAddress:    row.WithAddress,
		WithPhone:      row.WithPhone,
		WithWebsite:    row.WithWebsite,
		WithCategory:   row.WithCategory,
		WithPostalMail: row.WithPostalMail,
		WithNotes:      row.WithNotes,
	}, nil
}

// UserDistribution lists users owning at least one client, largest first
func (r *ClientRepository) UserDistribution(ctx context.Context) ([]domain.UserClientCountDTO, error) {
	var rows []domain.UserClientCountDTO
	err := r.db.WithContext(ctx).
		Table("clients").
		Select("users.id AS user_id, users.name AS name, users.email AS email, COUNT(clients.id) AS client_count").
		Joins("JOIN users ON users.id = clients.user_id").
		Group("users.id, users.name, users.email").
		Order("client_count DESC, users.name ASC").
		Scan(&rows).Error
	return rows, err
}
