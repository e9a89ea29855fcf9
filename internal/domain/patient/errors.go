package patient

import "errors"

var (
	ErrPatientNotFound      = errors.New("Patient not found")
	ErrPatientAlreadyExists = errors.New("Email already registered")
	ErrInvalidDateOfBirth   = errors.New("date of birth cannot be in the future")
)
