package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

type InsuranceInfo struct {
	Provider     string `json:"provider"`
	PolicyNumber string `json:"policy_number"`
}

type Patient struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"` // Soft delete

	Email        string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null"`
	FirstName    string `gorm:"column:first_name;type:varchar(100);not null"`
	LastName     string `gorm:"column:last_name;type:varchar(100);not null"`
	Phone        string `gorm:"column:phone;type:varchar(20);not null"`

	DateOfBirth time.Time `gorm:"column:date_of_birth;not null"`
	Address     string    `gorm:"column:address;type:text;not null"`

	EmergencyContact EmergencyContact `gorm:"column:emergency_contact;serializer:json"`
	Insurance        *InsuranceInfo   `gorm:"column:insurance;serializer:json"`

	IsActive bool `gorm:"column:is_active;default:true;index"`
}

func (Patient) TableName() string {
	return "clinical.patients"
}

func (p *Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p *Patient) Age(now time.Time) int {
	years := now.Year() - p.DateOfBirth.Year()
	if now.Month() < p.DateOfBirth.Month() ||
		(now.Month() == p.DateOfBirth.Month() && now.Day() < p.DateOfBirth.Day()) {
		years--
	}
	return years
}

type CreatePatientCommand struct {
	Email            string
	PasswordHash     string
	FirstName        string
	LastName         string
	Phone            string
	DateOfBirth      time.Time
	Address          string
	EmergencyContact EmergencyContact
	Insurance        *InsuranceInfo
}

type UpdatePatientCommand struct {
	FirstName        *string
	LastName         *string
	Phone            *string
	Address          *string
	EmergencyContact *EmergencyContact
	Insurance        *InsuranceInfo
}

type ListPatientsQuery struct {
	Page     int
	PageSize int
}
