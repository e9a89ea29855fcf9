package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careconnect/careconnect/internal/domain"
	"github.com/careconnect/careconnect/internal/domain/appointment"
	"github.com/careconnect/careconnect/internal/service"
)

type AppointmentHandler struct {
	apptSvc *service.AppointmentService
}

func NewAppointmentHandler(apptSvc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{apptSvc: apptSvc}
}

func (h *AppointmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.POST("/:id/cancel", h.Cancel)
	rg.DELETE("/:id", h.Delete)
}

type createAppointmentRequest struct {
	ProviderID      uuid.UUID `json:"provider_id" binding:"required"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required"`
	Reason          string    `json:"reason" binding:"required"`
}

// Create books an appointment for the authenticated patient.
func (h *AppointmentHandler) Create(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}
	if claims.Role != domain.RolePatient {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "only patients can book appointments"})
		return
	}

	var req createAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.apptSvc.Create(c.Request.Context(), claims.UserID, &appointment.CreateAppointmentCommand{
		ProviderID: req.ProviderID,
		StartTime:  req.StartTime,
		Duration:   req.DurationMinutes,
		Reason:     req.Reason,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, a)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.apptSvc.GetByID(c.Request.Context(), id, claims.UserID, claims.Role, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, a)
}

type updateAppointmentRequest struct {
	StartTime       *time.Time          `json:"start_time"`
	Status          *appointment.Status `json:"status"`
	Notes           *string             `json:"notes"`
	Prescription    *string             `json:"prescription"`
	Rating          *int                `json:"rating"`
	PatientFeedback *string             `json:"patient_feedback"`
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &appointment.UpdateAppointmentCommand{
		StartTime:       req.StartTime,
		Status:          req.Status,
		Notes:           req.Notes,
		Prescription:    req.Prescription,
		Rating:          req.Rating,
		PatientFeedback: req.PatientFeedback,
	}
	if !cmd.HasChanges() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no fields to update"})
		return
	}

	a, err := h.apptSvc.Update(c.Request.Context(), id, claims.UserID, claims.Role, cmd, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, a)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.apptSvc.Cancel(c.Request.Context(), id, claims.UserID, claims.Role, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"cancelled": true})
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.apptSvc.Delete(c.Request.Context(), id, claims.UserID, claims.Role, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}
