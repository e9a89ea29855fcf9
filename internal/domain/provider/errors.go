package provider

import "errors"

var (
	ErrProviderNotFound      = errors.New("Provider not found or inactive")
	ErrProviderAlreadyExists = errors.New("Email already registered")
	ErrLicenseAlreadyExists  = errors.New("License number already registered")
	ErrInvalidSpecialty      = errors.New("invalid provider specialty")
	ErrInvalidWindowDay      = errors.New("availability day_of_week must be between 0 and 6")
	ErrInvalidWindowTime     = errors.New("availability times must be in HH:MM format")
	ErrInvalidWindowRange    = errors.New("availability start_time must be before end_time")
	ErrInvalidDailyLimit     = errors.New("max_daily_appointments must be between 1 and 20")
)
