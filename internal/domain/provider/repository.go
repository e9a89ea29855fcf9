package provider

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new provider. Returns ErrProviderAlreadyExists or
	// ErrLicenseAlreadyExists on uniqueness violations.
	Create(ctx context.Context, p *Provider) error

	// GetByID retrieves a provider by primary key, excluding soft-deleted
	// rows. Returns ErrProviderNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Provider, error)

	// GetByEmail retrieves a provider by email, password hash included.
	GetByEmail(ctx context.Context, email string) (*Provider, error)

	// GetByLicenseNumber is the uniqueness lookup used at registration.
	GetByLicenseNumber(ctx context.Context, license string) (*Provider, error)

	// Update applies partial updates to an existing provider record.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdateProviderCommand) (*Provider, error)

	// UpdateAvailability replaces the provider's weekly schedule.
	UpdateAvailability(ctx context.Context, id uuid.UUID, windows []AvailabilityWindow) (*Provider, error)

	// SoftDelete marks the provider as deleted and inactive.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// List returns active providers, optionally filtered by specialty,
	// ordered by last then first name.
	List(ctx context.Context, q *ListProvidersQuery) ([]*Provider, error)
}
