package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careconnect/careconnect/internal/domain/provider"
)

type ProviderRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

var _ provider.Repository = (*ProviderRepository)(nil)

func (r *ProviderRepository) Create(ctx context.Context, p *provider.Provider) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return provider.ErrProviderAlreadyExists
		}
		return fmt.Errorf("creating provider: %w", err)
	}
	return nil
}

func (r *ProviderRepository) GetByID(ctx context.Context, id uuid.UUID) (*provider.Provider, error) {
	var p provider.Provider
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, provider.ErrProviderNotFound
		}
		return nil, fmt.Errorf("loading provider: %w", err)
	}
	return &p, nil
}

func (r *ProviderRepository) GetByEmail(ctx context.Context, email string) (*provider.Provider, error) {
	var p provider.Provider
	err := r.db.WithContext(ctx).
		Where("email = ? AND deleted_at IS NULL", strings.ToLower(email)).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, provider.ErrProviderNotFound
		}
		return nil, fmt.Errorf("loading provider by email: %w", err)
	}
	return &p, nil
}

func (r *ProviderRepository) GetByLicenseNumber(ctx context.Context, license string) (*provider.Provider, error) {
	var p provider.Provider
	err := r.db.WithContext(ctx).
		Where("license_number = ? AND deleted_at IS NULL", strings.TrimSpace(license)).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, provider.ErrProviderNotFound
		}
		return nil, fmt.Errorf("loading provider by license: %w", err)
	}
	return &p, nil
}

func (r *ProviderRepository) Update(ctx context.Context, id uuid.UUID, cmd *provider.UpdateProviderCommand) (*provider.Provider, error) {
	updates := map[string]any{}
	if cmd.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*cmd.FirstName)
	}
	if cmd.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*cmd.LastName)
	}
	if cmd.Phone != nil {
		updates["phone"] = strings.TrimSpace(*cmd.Phone)
	}
	if cmd.MaxDailyAppointments != nil {
		updates["max_daily_appointments"] = *cmd.MaxDailyAppointments
	}
	if cmd.IsActive != nil {
		updates["is_active"] = *cmd.IsActive
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&provider.Provider{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("updating provider: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, provider.ErrProviderNotFound
		}
	}

	return r.GetByID(ctx, id)
}

func (r *ProviderRepository) UpdateAvailability(ctx context.Context, id uuid.UUID, windows []provider.AvailabilityWindow) (*provider.Provider, error) {
	res := r.db.WithContext(ctx).
		Model(&provider.Provider{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("availability", windows)
	if res.Error != nil {
		return nil, fmt.Errorf("updating provider availability: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, provider.ErrProviderNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ProviderRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&provider.Provider{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{"deleted_at": time.Now(), "is_active": false})
	if res.Error != nil {
		return fmt.Errorf("soft-deleting provider: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return provider.ErrProviderNotFound
	}
	return nil
}

func (r *ProviderRepository) List(ctx context.Context, q *provider.ListProvidersQuery) ([]*provider.Provider, error) {
	query := r.db.WithContext(ctx).
		Where("deleted_at IS NULL AND is_active = true")
	if q.Specialty != nil {
		query = query.Where("specialty = ?", *q.Specialty)
	}

	var providers []*provider.Provider
	err := query.
		Order("last_name ASC, first_name ASC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&providers).Error
	if err != nil {
		return nil, fmt.Errorf("listing providers: %w", err)
	}
	return providers, nil
}
