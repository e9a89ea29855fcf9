package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/careconnect/careconnect/internal/domain"
	"github.com/careconnect/careconnect/internal/domain/patient"
	"github.com/careconnect/careconnect/internal/domain/provider"
	"github.com/careconnect/careconnect/pkg/auth"
)

// dummyHash is compared against when no account matches the login email, so
// a missing account costs the same time as a wrong password.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type AuthService struct {
	patientRepo  patient.Repository
	providerRepo provider.Repository
	jwtManager   *auth.JWTManager
	auditSvc     *AuditService
	log          *zap.Logger
}

func NewAuthService(
	patientRepo patient.Repository,
	providerRepo provider.Repository,
	jwtManager *auth.JWTManager,
	auditSvc *AuditService,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		patientRepo:  patientRepo,
		providerRepo: providerRepo,
		jwtManager:   jwtManager,
		auditSvc:     auditSvc,
		log:          log,
	}
}

type RegisterPatientInput struct {
	Email            string
	Password         string
	FirstName        string
	LastName         string
	Phone            string
	DateOfBirth      time.Time
	Address          string
	EmergencyContact patient.EmergencyContact
	Insurance        *patient.InsuranceInfo
}

type RegisterProviderInput struct {
	Email                string
	Password             string
	FirstName            string
	LastName             string
	Phone                string
	Specialty            provider.Specialty
	LicenseNumber        string
	MaxDailyAppointments int
}

type AuthResult struct {
	UserID uuid.UUID         `json:"user_id"`
	Role   domain.Role       `json:"role"`
	Tokens *domain.TokenPair `json:"tokens"`
}

func (s *AuthService) RegisterPatient(ctx context.Context, in *RegisterPatientInput, ip string) (*AuthResult, error) {
	if err := validateCredentials(in.Email, in.Password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, validation("First name and last name are required")
	}
	if in.DateOfBirth.IsZero() || !in.DateOfBirth.Before(time.Now()) {
		return nil, patient.ErrInvalidDateOfBirth
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	p := &patient.Patient{
		Email:            normalizeEmail(in.Email),
		PasswordHash:     string(hash),
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		Phone:            strings.TrimSpace(in.Phone),
		DateOfBirth:      in.DateOfBirth,
		Address:          strings.TrimSpace(in.Address),
		EmergencyContact: in.EmergencyContact,
		Insurance:        in.Insurance,
		IsActive:         true,
	}
	if err := s.patientRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       p.ID,
		UserRole:     domain.RolePatient,
		Action:       domain.ActionCreate,
		ResourceType: "patient",
		ResourceID:   p.ID.String(),
		IPAddress:    ip,
	})
	s.log.Info("patient registered", zap.String("patient_id", p.ID.String()))

	return s.issueTokens(p.ID, p.Email, domain.RolePatient)
}

func (s *AuthService) RegisterProvider(ctx context.Context, in *RegisterProviderInput, ip string) (*AuthResult, error) {
	if err := validateCredentials(in.Email, in.Password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, validation("First name and last name are required")
	}
	if !in.Specialty.IsValid() {
		return nil, provider.ErrInvalidSpecialty
	}
	if strings.TrimSpace(in.LicenseNumber) == "" {
		return nil, validation("License number is required")
	}
	if in.MaxDailyAppointments == 0 {
		in.MaxDailyAppointments = 8
	}
	if in.MaxDailyAppointments < 1 || in.MaxDailyAppointments > 20 {
		return nil, provider.ErrInvalidDailyLimit
	}

	// The unique index would also catch this, but a dedicated lookup lets
	// us tell a license collision apart from an email collision.
	license := strings.TrimSpace(in.LicenseNumber)
	if _, err := s.providerRepo.GetByLicenseNumber(ctx, license); err == nil {
		return nil, provider.ErrLicenseAlreadyExists
	} else if !errors.Is(err, provider.ErrProviderNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	p := &provider.Provider{
		Email:                normalizeEmail(in.Email),
		PasswordHash:         string(hash),
		FirstName:            strings.TrimSpace(in.FirstName),
		LastName:             strings.TrimSpace(in.LastName),
		Phone:                strings.TrimSpace(in.Phone),
		Specialty:            in.Specialty,
		LicenseNumber:        license,
		MaxDailyAppointments: in.MaxDailyAppointments,
		IsActive:             true,
	}
	if err := s.providerRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       p.ID,
		UserRole:     domain.RoleProvider,
		Action:       domain.ActionCreate,
		ResourceType: "provider",
		ResourceID:   p.ID.String(),
		IPAddress:    ip,
	})
	s.log.Info("provider registered",
		zap.String("provider_id", p.ID.String()),
		zap.String("specialty", string(in.Specialty)),
	)

	return s.issueTokens(p.ID, p.Email, domain.RoleProvider)
}

// Login resolves the account by email, patients first, then providers.
func (s *AuthService) Login(ctx context.Context, email, password, ip string) (*AuthResult, error) {
	email = normalizeEmail(email)

	var (
		userID   uuid.UUID
		role     domain.Role
		hash     string
		inactive bool
	)
	if p, err := s.patientRepo.GetByEmail(ctx, email); err == nil {
		userID, role, hash = p.ID, domain.RolePatient, p.PasswordHash
		inactive = !p.IsActive || p.DeletedAt != nil
	} else if !errors.Is(err, patient.ErrPatientNotFound) {
		return nil, err
	} else if pr, err := s.providerRepo.GetByEmail(ctx, email); err == nil {
		userID, role, hash = pr.ID, domain.RoleProvider, pr.PasswordHash
		inactive = !pr.IsActive || pr.DeletedAt != nil
	} else if !errors.Is(err, provider.ErrProviderNotFound) {
		return nil, err
	}

	if hash == "" {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		s.log.Warn("failed login attempt", zap.String("email", email), zap.String("ip", ip))
		return nil, ErrInvalidCredentials
	}
	if inactive {
		return nil, ErrAccountInactive
	}

	result, err := s.issueTokens(userID, email, role)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       userID,
		UserRole:     role,
		Action:       domain.ActionLogin,
		ResourceType: "session",
		ResourceID:   userID.String(),
		IPAddress:    ip,
	})

	return result, nil
}

// RefreshToken trades a valid refresh token for a fresh pair.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// Token subjects can outlive their accounts; re-check before reissuing.
	switch claims.Role {
	case domain.RolePatient:
		p, err := s.patientRepo.GetByID(ctx, claims.UserID)
		if err != nil {
			return nil, ErrInvalidCredentials
		}
		if !p.IsActive || p.DeletedAt != nil {
			return nil, ErrAccountInactive
		}
	case domain.RoleProvider:
		pr, err := s.providerRepo.GetByID(ctx, claims.UserID)
		if err != nil {
			return nil, ErrInvalidCredentials
		}
		if !pr.IsActive || pr.DeletedAt != nil {
			return nil, ErrAccountInactive
		}
	case domain.RoleAdmin:
		// Admin accounts are provisioned out of band.
	default:
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(claims.UserID, claims.Email, claims.Role)
}

func (s *AuthService) issueTokens(userID uuid.UUID, email string, role domain.Role) (*AuthResult, error) {
	pair, err := s.jwtManager.GenerateTokenPair(&domain.Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
	})
	if err != nil {
		return nil, fmt.Errorf("issuing tokens: %w", err)
	}
	return &AuthResult{UserID: userID, Role: role, Tokens: pair}, nil
}

func validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return validation("A valid email address is required")
	}
	if len(password) < 8 {
		return validation("Password must be at least 8 characters")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
