package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careconnect/careconnect/internal/domain/patient"
	"github.com/careconnect/careconnect/internal/domain/provider"
	"github.com/careconnect/careconnect/internal/service"
)

type AuthHandler struct {
	authSvc *service.AuthService
}

func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/patients/register", h.RegisterPatient)
	rg.POST("/providers/register", h.RegisterProvider)
	rg.POST("/login", h.Login)
	rg.POST("/refresh", h.Refresh)
}

type registerPatientRequest struct {
	Email            string                   `json:"email" binding:"required"`
	Password         string                   `json:"password" binding:"required"`
	FirstName        string                   `json:"first_name" binding:"required"`
	LastName         string                   `json:"last_name" binding:"required"`
	Phone            string                   `json:"phone"`
	DateOfBirth      string                   `json:"date_of_birth" binding:"required"`
	Address          string                   `json:"address"`
	EmergencyContact patient.EmergencyContact `json:"emergency_contact"`
	Insurance        *patient.InsuranceInfo   `json:"insurance"`
}

func (h *AuthHandler) RegisterPatient(c *gin.Context) {
	var req registerPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		respondServiceError(c, patient.ErrInvalidDateOfBirth)
		return
	}

	result, svcErr := h.authSvc.RegisterPatient(c.Request.Context(), &service.RegisterPatientInput{
		Email:            req.Email,
		Password:         req.Password,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		DateOfBirth:      dob,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		Insurance:        req.Insurance,
	}, c.ClientIP())
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondCreated(c, result)
}

type registerProviderRequest struct {
	Email                string             `json:"email" binding:"required"`
	Password             string             `json:"password" binding:"required"`
	FirstName            string             `json:"first_name" binding:"required"`
	LastName             string             `json:"last_name" binding:"required"`
	Phone                string             `json:"phone"`
	Specialty            provider.Specialty `json:"specialty" binding:"required"`
	LicenseNumber        string             `json:"license_number" binding:"required"`
	MaxDailyAppointments int                `json:"max_daily_appointments"`
}

func (h *AuthHandler) RegisterProvider(c *gin.Context) {
	var req registerProviderRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.RegisterProvider(c.Request.Context(), &service.RegisterProviderInput{
		Email:                req.Email,
		Password:             req.Password,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Phone:                req.Phone,
		Specialty:            req.Specialty,
		LicenseNumber:        req.LicenseNumber,
		MaxDailyAppointments: req.MaxDailyAppointments,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, result)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, result)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, result)
}
