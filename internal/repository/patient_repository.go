package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careconnect/careconnect/internal/domain/patient"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

var _ patient.Repository = (*PatientRepository)(nil)

func (r *PatientRepository) Create(ctx context.Context, p *patient.Patient) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return patient.ErrPatientAlreadyExists
		}
		return fmt.Errorf("creating patient: %w", err)
	}
	return nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	var p patient.Patient
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, patient.ErrPatientNotFound
		}
		return nil, fmt.Errorf("loading patient: %w", err)
	}
	return &p, nil
}

func (r *PatientRepository) GetByEmail(ctx context.Context, email string) (*patient.Patient, error) {
	var p patient.Patient
	err := r.db.WithContext(ctx).
		Where("email = ? AND deleted_at IS NULL", strings.ToLower(email)).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, patient.ErrPatientNotFound
		}
		return nil, fmt.Errorf("loading patient by email: %w", err)
	}
	return &p, nil
}

func (r *PatientRepository) Update(ctx context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
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
	if cmd.Address != nil {
		updates["address"] = *cmd.Address
	}
	if cmd.EmergencyContact != nil {
		updates["emergency_contact"] = *cmd.EmergencyContact
	}
	if cmd.Insurance != nil {
		updates["insurance"] = *cmd.Insurance
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&patient.Patient{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("updating patient: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, patient.ErrPatientNotFound
		}
	}

	return r.GetByID(ctx, id)
}

func (r *PatientRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&patient.Patient{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{"deleted_at": time.Now(), "is_active": false})
	if res.Error != nil {
		return fmt.Errorf("soft-deleting patient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return patient.ErrPatientNotFound
	}
	return nil
}

func (r *PatientRepository) List(ctx context.Context, q *patient.ListPatientsQuery) ([]*patient.Patient, error) {
	var patients []*patient.Patient
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL AND is_active = true").
		Order("last_name ASC, first_name ASC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	return patients, nil
}
