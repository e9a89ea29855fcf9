package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careconnect/careconnect/internal/domain"
	"github.com/careconnect/careconnect/internal/domain/provider"
)

type ProviderService struct {
	repo     provider.Repository
	auditSvc *AuditService
	log      *zap.Logger
}

func NewProviderService(repo provider.Repository, auditSvc *AuditService, log *zap.Logger) *ProviderService {
	return &ProviderService{repo: repo, auditSvc: auditSvc, log: log}
}

// GetByID is open to every authenticated role; patients browse providers
// when choosing who to book with.
func (s *ProviderService) GetByID(ctx context.Context, id uuid.UUID) (*provider.Provider, error) {
	return s.repo.GetByID(ctx, id)
}

// List supports the booking flow's provider directory, optionally filtered
// by specialty.
func (s *ProviderService) List(ctx context.Context, q *provider.ListProvidersQuery) ([]*provider.Provider, error) {
	if q.Specialty != nil && !q.Specialty.IsValid() {
		return nil, provider.ErrInvalidSpecialty
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 10
	}
	return s.repo.List(ctx, q)
}

func (s *ProviderService) Update(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole domain.Role, cmd *provider.UpdateProviderCommand, ip string) (*provider.Provider, error) {
	switch callerRole {
	case domain.RoleAdmin:
	case domain.RoleProvider:
		if callerID != id {
			return nil, ErrForbidden
		}
		// Only admins flip activation.
		if cmd.IsActive != nil {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}
	if cmd.MaxDailyAppointments != nil &&
		(*cmd.MaxDailyAppointments < 1 || *cmd.MaxDailyAppointments > 20) {
		return nil, provider.ErrInvalidDailyLimit
	}

	updated, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       domain.ActionUpdate,
		ResourceType: "provider",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})

	return updated, nil
}

// SetAvailability replaces the provider's weekly window set after
// validating every window. Providers manage their own; admins may manage
// any.
func (s *ProviderService) SetAvailability(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole domain.Role, windows []provider.AvailabilityWindow, ip string) (*provider.Provider, error) {
	switch callerRole {
	case domain.RoleAdmin:
	case domain.RoleProvider:
		if callerID != id {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	for _, w := range windows {
		if err := w.Validate(); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.UpdateAvailability(ctx, id, windows)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       domain.ActionUpdate,
		ResourceType: "provider_availability",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})
	s.log.Info("provider availability updated",
		zap.String("provider_id", id.String()),
		zap.Int("windows", len(windows)),
	)

	return updated, nil
}

// Deactivate soft-deletes the provider. Admin only. Existing appointments
// are untouched; new bookings and slot queries treat the provider as gone.
func (s *ProviderService) Deactivate(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole domain.Role, ip string) error {
	if callerRole != domain.RoleAdmin {
		return ErrForbidden
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       domain.ActionDelete,
		ResourceType: "provider",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})
	s.log.Info("provider deactivated", zap.String("provider_id", id.String()))

	return nil
}
