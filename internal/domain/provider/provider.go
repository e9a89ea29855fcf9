package provider

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careconnect/careconnect/internal/schedule"
)

type Specialty string

const (
	SpecialtyGeneralPractice Specialty = "general_practice"
	SpecialtyCardiology      Specialty = "cardiology"
	SpecialtyDermatology     Specialty = "dermatology"
	SpecialtyPediatrics      Specialty = "pediatrics"
	SpecialtyOrthopedics     Specialty = "orthopedics"
	SpecialtyPsychiatry      Specialty = "psychiatry"
)

func (s Specialty) IsValid() bool {
	switch s {
	case SpecialtyGeneralPractice, SpecialtyCardiology, SpecialtyDermatology,
		SpecialtyPediatrics, SpecialtyOrthopedics, SpecialtyPsychiatry:
		return true
	}
	return false
}

// Two-digit hours only: coverage checks compare "HH:MM" strings, and
// lexicographic order is only correct when everything is zero-padded.
var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// AvailabilityWindow is one recurring weekly block of bookable time.
// A provider may declare several windows on the same weekday; coverage is
// the union, so overlap between a provider's own windows is allowed.
type AvailabilityWindow struct {
	DayOfWeek int    `json:"day_of_week"` // 0 = Sunday .. 6 = Saturday
	StartTime string `json:"start_time"`  // "HH:MM", 24h
	EndTime   string `json:"end_time"`    // "HH:MM", exclusive
	IsActive  bool   `json:"is_active"`
}

func (w AvailabilityWindow) Validate() error {
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return ErrInvalidWindowDay
	}
	if !timeOfDayRe.MatchString(w.StartTime) || !timeOfDayRe.MatchString(w.EndTime) {
		return ErrInvalidWindowTime
	}
	start, _ := schedule.ParseTimeOfDay(w.StartTime)
	end, _ := schedule.ParseTimeOfDay(w.EndTime)
	if start >= end {
		return ErrInvalidWindowRange
	}
	return nil
}

// HasEnabledWindow reports whether any window at all is active. A provider
// with none accepts zero bookings, and the engine surfaces that as its own
// failure rather than "outside hours".
func HasEnabledWindow(windows []AvailabilityWindow) bool {
	for _, w := range windows {
		if w.IsActive {
			return true
		}
	}
	return false
}

// CoversInstant reports whether t falls inside an active window on t's
// weekday. The window end is exclusive: an instant equal to EndTime is not
// covered.
func CoversInstant(windows []AvailabilityWindow, t time.Time) bool {
	day := int(t.Weekday())
	tod := schedule.TimeOfDay(t)
	for _, w := range windows {
		if w.DayOfWeek != day || !w.IsActive {
			continue
		}
		if tod >= w.StartTime && tod < w.EndTime {
			return true
		}
	}
	return false
}

// WindowsForDay returns the active windows matching the given weekday, in
// declaration order.
func WindowsForDay(windows []AvailabilityWindow, day time.Weekday) []AvailabilityWindow {
	var out []AvailabilityWindow
	for _, w := range windows {
		if w.IsActive && w.DayOfWeek == int(day) {
			out = append(out, w)
		}
	}
	return out
}

type Provider struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"` // Soft delete

	Email        string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
	FirstName    string `gorm:"column:first_name;type:varchar(100);not null"`
	LastName     string `gorm:"column:last_name;type:varchar(100);not null"`
	Phone        string `gorm:"column:phone;type:varchar(20);not null"`

	Specialty     Specialty `gorm:"column:specialty;type:varchar(50);not null;index"`
	LicenseNumber string    `gorm:"column:license_number;type:varchar(50);uniqueIndex;not null"`

	Availability         []AvailabilityWindow `gorm:"column:availability;serializer:json"`
	MaxDailyAppointments int                  `gorm:"column:max_daily_appointments;not null;default:8"`

	IsActive bool `gorm:"column:is_active;default:true;index"`
}

func (Provider) TableName() string {
	return "clinical.providers"
}

func (p *Provider) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Bookable reports whether the provider can accept new appointments at all.
func (p *Provider) Bookable() bool {
	return p.IsActive && p.DeletedAt == nil
}

type CreateProviderCommand struct {
	Email                string
	PasswordHash         string
	FirstName            string
	LastName             string
	Phone                string
	Specialty            Specialty
	LicenseNumber        string
	MaxDailyAppointments int
}

type UpdateProviderCommand struct {
	FirstName            *string
	LastName             *string
	Phone                *string
	MaxDailyAppointments *int
	IsActive             *bool
}

type ListProvidersQuery struct {
	Specialty *Specialty
	Page      int
	PageSize  int
}
