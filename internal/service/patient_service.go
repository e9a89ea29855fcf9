package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careconnect/careconnect/internal/domain"
	"github.com/careconnect/careconnect/internal/domain/patient"
)

type PatientService struct {
	repo     patient.Repository
	auditSvc *AuditService
	log      *zap.Logger
}

func NewPatientService(repo patient.Repository, auditSvc *AuditService, log *zap.Logger) *PatientService {
	return &PatientService{repo: repo, auditSvc: auditSvc, log: log}
}

// GetByID returns a patient profile. Patients can only read their own;
// providers and admins are unrestricted (providers need patient context for
// appointments they serve).
func (s *PatientService) GetByID(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole domain.Role) (*patient.Patient, error) {
	if callerRole == domain.RolePatient && callerID != id {
		return nil, ErrForbidden
	}
	return s.repo.GetByID(ctx, id)
}

func (s *PatientService) Update(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole domain.Role, cmd *patient.UpdatePatientCommand, ip string) (*patient.Patient, error) {
	if callerRole == domain.RolePatient && callerID != id {
		return nil, ErrForbidden
	}
	if callerRole == domain.RoleProvider {
		return nil, ErrForbidden
	}
	if cmd.FirstName != nil && strings.TrimSpace(*cmd.FirstName) == "" {
		return nil, validation("First name cannot be empty")
	}
	if cmd.LastName != nil && strings.TrimSpace(*cmd.LastName) == "" {
		return nil, validation("Last name cannot be empty")
	}

	updated, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       domain.ActionUpdate,
		ResourceType: "patient",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})

	return updated, nil
}

// Deactivate soft-deletes the account. Admin only.
func (s *PatientService) Deactivate(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole domain.Role, ip string) error {
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
		ResourceType: "patient",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})
	s.log.Info("patient deactivated", zap.String("patient_id", id.String()))

	return nil
}

// List is admin only; patient records are not browsable by other roles.
func (s *PatientService) List(ctx context.Context, callerRole domain.Role, q *patient.ListPatientsQuery) ([]*patient.Patient, error) {
	if callerRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 10
	}
	return s.repo.List(ctx, q)
}
