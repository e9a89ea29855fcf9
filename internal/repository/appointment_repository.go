// Package repository provides the gorm-backed implementations of the
// domain repository contracts. All queries exclude soft-deleted rows.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careconnect/careconnect/internal/domain/appointment"
	"github.com/careconnect/careconnect/internal/schedule"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

var _ appointment.Repository = (*AppointmentRepository)(nil)

func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("creating appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appointment.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("loading appointment: %w", err)
	}
	return &a, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, id uuid.UUID, cmd *appointment.UpdateAppointmentCommand) (*appointment.Appointment, error) {
	updates := map[string]any{}
	if cmd.StartTime != nil {
		updates["start_time"] = *cmd.StartTime
	}
	if cmd.Status != nil {
		updates["status"] = *cmd.Status
	}
	if cmd.Notes != nil {
		updates["notes"] = *cmd.Notes
	}
	if cmd.Prescription != nil {
		updates["prescription"] = *cmd.Prescription
	}
	if cmd.Rating != nil {
		updates["rating"] = *cmd.Rating
	}
	if cmd.PatientFeedback != nil {
		updates["patient_feedback"] = *cmd.PatientFeedback
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&appointment.Appointment{}).
			Where("id = ? AND deleted_at IS NULL", id).
			Updates(updates)
		if res.Error != nil {
			return nil, fmt.Errorf("updating appointment: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, appointment.ErrAppointmentNotFound
		}
	}

	return r.GetByID(ctx, id)
}

func (r *AppointmentRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now())
	if res.Error != nil {
		return fmt.Errorf("soft-deleting appointment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return appointment.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) FindConflicting(ctx context.Context, providerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*appointment.Appointment, error) {
	q := r.db.WithContext(ctx).
		Where("provider_id = ? AND deleted_at IS NULL", providerID).
		Where("status NOT IN ?", []appointment.Status{appointment.StatusCancelled, appointment.StatusNoShow}).
		// Half-open [start_time, end_time) overlap with [start, end)
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var conflicts []*appointment.Appointment
	if err := q.Order("start_time ASC").Find(&conflicts).Error; err != nil {
		return nil, fmt.Errorf("finding conflicting appointments: %w", err)
	}
	return conflicts, nil
}

func (r *AppointmentRepository) CountByProviderAndDate(ctx context.Context, providerID uuid.UUID, date time.Time) (int64, error) {
	dayStart, dayEnd := schedule.DayBounds(date)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("provider_id = ? AND deleted_at IS NULL", providerID).
		Where("status NOT IN ?", []appointment.Status{appointment.StatusCancelled, appointment.StatusNoShow}).
		Where("start_time >= ? AND start_time < ?", dayStart, dayEnd).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting appointments for day: %w", err)
	}
	return count, nil
}

func (r *AppointmentRepository) FindByPatient(ctx context.Context, patientID uuid.UUID, page, pageSize int) (*appointment.PagedAppointments, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&appointment.Appointment{}).
		Where("patient_id = ? AND deleted_at IS NULL", patientID).
		Count(&total).Error
	if err != nil {
		return nil, fmt.Errorf("counting patient appointments: %w", err)
	}

	var appts []*appointment.Appointment
	err = r.db.WithContext(ctx).
		Where("patient_id = ? AND deleted_at IS NULL", patientID).
		Order("start_time DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&appts).Error
	if err != nil {
		return nil, fmt.Errorf("listing patient appointments: %w", err)
	}

	return &appointment.PagedAppointments{
		Appointments: appts,
		TotalCount:   total,
		Page:         page,
		PageSize:     pageSize,
	}, nil
}

func (r *AppointmentRepository) FindByProvider(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error) {
	var appts []*appointment.Appointment
	err := r.db.WithContext(ctx).
		Where("provider_id = ? AND deleted_at IS NULL", providerID).
		Where("start_time >= ? AND start_time <= ?", from, to).
		Order("start_time ASC").
		Find(&appts).Error
	if err != nil {
		return nil, fmt.Errorf("listing provider appointments: %w", err)
	}
	return appts, nil
}
