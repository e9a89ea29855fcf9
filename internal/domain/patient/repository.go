package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new patient. Returns ErrPatientAlreadyExists on a
	// duplicate email.
	Create(ctx context.Context, p *Patient) error

	// GetByID retrieves a patient by primary key, excluding soft-deleted
	// rows. Returns ErrPatientNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	// GetByEmail retrieves a patient by email, password hash included.
	GetByEmail(ctx context.Context, email string) (*Patient, error)

	// Update applies partial updates to an existing patient record.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdatePatientCommand) (*Patient, error)

	// SoftDelete marks the patient as deleted and inactive.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// List returns active patients ordered by last then first name.
	List(ctx context.Context, q *ListPatientsQuery) ([]*Patient, error)
}
