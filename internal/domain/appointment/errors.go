package appointment

import "errors"

var (
	ErrAppointmentNotFound      = errors.New("Appointment not found")
	ErrSlotUnavailable          = errors.New("Time slot is not available")
	ErrDailyLimitReached        = errors.New("Provider has reached maximum appointments for this day")
	ErrNoAvailabilityConfigured = errors.New("Provider has not set their availability yet. Please choose another provider.")
	ErrOutsideAvailability      = errors.New("Appointment time is outside provider availability. Please choose a different time.")
	ErrCancellationWindow       = errors.New("Appointments can only be cancelled at least 24 hours in advance")
	ErrInvalidStatusTransition  = errors.New("invalid appointment status transition")
	ErrInvalidDuration          = errors.New("appointment duration must be between 15 and 120 minutes")
	ErrInvalidReason            = errors.New("appointment reason must be between 5 and 500 characters")
	ErrInvalidRating            = errors.New("rating must be between 1 and 5")
)
