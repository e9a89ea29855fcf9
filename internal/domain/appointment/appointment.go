package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Status lifecycle:
//
//	scheduled → confirmed | cancelled
//	confirmed → completed | cancelled | no_show
//	completed, cancelled, no_show are terminal
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

var transitions = map[Status][]Status{
	StatusScheduled: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

// PatientSnapshot is the patient's contact details as they were when the
// appointment was booked. It is captured once at creation and never
// refreshed, so later profile edits do not rewrite history.
type PatientSnapshot struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Appointment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"` // Soft delete

	PatientID  uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
	ProviderID uuid.UUID `gorm:"column:provider_id;type:uuid;not null;index"`

	StartTime time.Time `gorm:"column:start_time;not null;index"`
	EndTime   time.Time `gorm:"column:end_time;not null"`
	Status    Status    `gorm:"column:status;type:varchar(30);not null;default:'scheduled';index"`

	Reason string `gorm:"column:reason;type:text;not null"`
	Notes  string `gorm:"column:notes;type:text"`

	// Populated during the confirmed/completed stages.
	Prescription    string `gorm:"column:prescription;type:text"`
	Rating          *int   `gorm:"column:rating"`
	PatientFeedback string `gorm:"column:patient_feedback;type:text"`

	PatientSnapshot PatientSnapshot `gorm:"column:patient_snapshot;serializer:json"`
}

func (Appointment) TableName() string {
	return "clinical.appointments"
}

// CanTransitionTo consults the explicit transition table. Terminal states
// accept nothing, so a cancelled or completed appointment cannot be
// cancelled again.
func (a *Appointment) CanTransitionTo(next Status) bool {
	for _, s := range transitions[a.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// Cancel moves the appointment to cancelled through the transition table.
// The record is kept; cancellation is a status mutation, never a delete.
func (a *Appointment) Cancel() error {
	if !a.CanTransitionTo(StatusCancelled) {
		return ErrInvalidStatusTransition
	}
	a.Status = StatusCancelled
	return nil
}

// Blocking reports whether this appointment occupies its time slot.
// Cancelled and no-show appointments release the slot.
func (a *Appointment) Blocking() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}

type CreateAppointmentCommand struct {
	ProviderID uuid.UUID
	StartTime  time.Time
	Duration   int // minutes
	Reason     string
}

// UpdateAppointmentCommand is a partial patch. Nil fields are untouched.
// The engine applies set fields verbatim; a new StartTime is not re-checked
// against availability or conflicts.
type UpdateAppointmentCommand struct {
	StartTime       *time.Time
	Status          *Status
	Notes           *string
	Prescription    *string
	Rating          *int
	PatientFeedback *string
}

// HasChanges reports whether the patch sets anything at all.
func (c *UpdateAppointmentCommand) HasChanges() bool {
	return c.StartTime != nil || c.Status != nil || c.Notes != nil ||
		c.Prescription != nil || c.Rating != nil || c.PatientFeedback != nil
}

type PagedAppointments struct {
	Appointments []*Appointment
	TotalCount   int64
	Page         int
	PageSize     int
}
