package service

import "errors"

var (
	// ErrForbidden is returned when an authenticated caller has no rights
	// over the specific resource. The message is caller-visible.
	ErrForbidden = errors.New("Access denied")

	// ErrPatientStatusChange rejects a patient patch that touches status.
	ErrPatientStatusChange = errors.New("Patients cannot update appointment status")

	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrAccountInactive    = errors.New("Account is deactivated")
)

// ValidationError is a business-rule rejection whose message is meant for
// direct display to the end user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validation(msg string) error {
	return &ValidationError{Message: msg}
}
