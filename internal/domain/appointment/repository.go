package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error

	// GetByID retrieves an appointment by primary key, excluding
	// soft-deleted rows. Returns ErrAppointmentNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// Update applies a partial patch and returns the updated record, or
	// ErrAppointmentNotFound if the write affected no rows.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdateAppointmentCommand) (*Appointment, error)

	// SoftDelete marks the appointment as deleted without removing the row.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// FindConflicting returns the provider's blocking appointments (not
	// cancelled, not no-show, not soft-deleted) that overlap [start, end).
	// excludeID, when non-nil, omits one appointment from the check.
	FindConflicting(ctx context.Context, providerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*Appointment, error)

	// CountByProviderAndDate counts the provider's blocking appointments
	// on the calendar day containing date.
	CountByProviderAndDate(ctx context.Context, providerID uuid.UUID, date time.Time) (int64, error)

	// FindByPatient lists a patient's appointments most recent first, with
	// the total count for pagination.
	FindByPatient(ctx context.Context, patientID uuid.UUID, page, pageSize int) (*PagedAppointments, error)

	// FindByProvider lists a provider's appointments in [from, to],
	// chronologically ascending.
	FindByProvider(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*Appointment, error)
}
