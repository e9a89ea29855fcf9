package service

import (
	"github.com/google/uuid"

	"github.com/careconnect/careconnect/internal/domain"
	"github.com/careconnect/careconnect/internal/domain/appointment"
)

// authorizeAppointmentAccess decides whether the caller may see or mutate
// the given appointment. The role set is closed: patients must own the
// appointment through patient_id, providers through provider_id, admins
// are unrestricted, and anything else is rejected outright.
func authorizeAppointmentAccess(callerID uuid.UUID, role domain.Role, a *appointment.Appointment) error {
	switch role {
	case domain.RolePatient:
		if a.PatientID != callerID {
			return ErrForbidden
		}
		return nil
	case domain.RoleProvider:
		if a.ProviderID != callerID {
			return ErrForbidden
		}
		return nil
	case domain.RoleAdmin:
		return nil
	default:
		return ErrForbidden
	}
}
