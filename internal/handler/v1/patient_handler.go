package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/careconnect/careconnect/internal/domain/patient"
	"github.com/careconnect/careconnect/internal/service"
)

type PatientHandler struct {
	patientSvc *service.PatientService
	apptSvc    *service.AppointmentService
}

func NewPatientHandler(patientSvc *service.PatientService, apptSvc *service.AppointmentService) *PatientHandler {
	return &PatientHandler{patientSvc: patientSvc, apptSvc: apptSvc}
}

func (h *PatientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Deactivate)
	rg.GET("/:id/appointments", h.Appointments)
}

func (h *PatientHandler) List(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}

	patients, err := h.patientSvc.List(c.Request.Context(), claims.Role, &patient.ListPatientsQuery{
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "page_size", 10),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, patients)
}

func (h *PatientHandler) Get(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.patientSvc.GetByID(c.Request.Context(), id, claims.UserID, claims.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, p)
}

type updatePatientRequest struct {
	FirstName        *string                   `json:"first_name"`
	LastName         *string                   `json:"last_name"`
	Phone            *string                   `json:"phone"`
	Address          *string                   `json:"address"`
	EmergencyContact *patient.EmergencyContact `json:"emergency_contact"`
	Insurance        *patient.InsuranceInfo    `json:"insurance"`
}

func (h *PatientHandler) Update(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.patientSvc.Update(c.Request.Context(), id, claims.UserID, claims.Role, &patient.UpdatePatientCommand{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		Insurance:        req.Insurance,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, p)
}

func (h *PatientHandler) Deactivate(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.patientSvc.Deactivate(c.Request.Context(), id, claims.UserID, claims.Role, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"deactivated": true})
}

// Appointments is the patient's booking history, newest first.
func (h *PatientHandler) Appointments(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	page := parseQueryInt(c, "page", 1)
	pageSize := parseQueryInt(c, "page_size", 10)

	result, err := h.apptSvc.ListForPatient(c.Request.Context(), id, claims.UserID, claims.Role, page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{
		"appointments": result.Appointments,
		"total":        result.TotalCount,
		"page":         result.Page,
		"page_size":    result.PageSize,
	})
}
