package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careconnect/careconnect/internal/domain/provider"
	"github.com/careconnect/careconnect/internal/service"
)

type ProviderHandler struct {
	providerSvc *service.ProviderService
	apptSvc     *service.AppointmentService
}

func NewProviderHandler(providerSvc *service.ProviderService, apptSvc *service.AppointmentService) *ProviderHandler {
	return &ProviderHandler{providerSvc: providerSvc, apptSvc: apptSvc}
}

func (h *ProviderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Deactivate)
	rg.PUT("/:id/availability", h.SetAvailability)
	rg.GET("/:id/slots", h.Slots)
	rg.GET("/:id/appointments", h.Appointments)
}

type providerResponse struct {
	ID                   string                        `json:"id"`
	FirstName            string                        `json:"first_name"`
	LastName             string                        `json:"last_name"`
	Specialty            provider.Specialty            `json:"specialty"`
	Availability         []provider.AvailabilityWindow `json:"availability"`
	MaxDailyAppointments int                           `json:"max_daily_appointments"`
	IsActive             bool                          `json:"is_active"`
}

// toProviderResponse strips credentials and contact internals from the
// public directory view.
func toProviderResponse(p *provider.Provider) providerResponse {
	return providerResponse{
		ID:                   p.ID.String(),
		FirstName:            p.FirstName,
		LastName:             p.LastName,
		Specialty:            p.Specialty,
		Availability:         p.Availability,
		MaxDailyAppointments: p.MaxDailyAppointments,
		IsActive:             p.IsActive,
	}
}

func (h *ProviderHandler) List(c *gin.Context) {
	q := &provider.ListProvidersQuery{
		Page:     parseQueryInt(c, "page", 1),
		PageSize: parseQueryInt(c, "page_size", 10),
	}
	if raw := c.Query("specialty"); raw != "" {
		s := provider.Specialty(raw)
		q.Specialty = &s
	}

	providers, err := h.providerSvc.List(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]providerResponse, 0, len(providers))
	for _, p := range providers {
		out = append(out, toProviderResponse(p))
	}
	respondOK(c, out)
}

func (h *ProviderHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.providerSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toProviderResponse(p))
}

type updateProviderRequest struct {
	FirstName            *string `json:"first_name"`
	LastName             *string `json:"last_name"`
	Phone                *string `json:"phone"`
	MaxDailyAppointments *int    `json:"max_daily_appointments"`
	IsActive             *bool   `json:"is_active"`
}

func (h *ProviderHandler) Update(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateProviderRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.providerSvc.Update(c.Request.Context(), id, claims.UserID, claims.Role, &provider.UpdateProviderCommand{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Phone:                req.Phone,
		MaxDailyAppointments: req.MaxDailyAppointments,
		IsActive:             req.IsActive,
	}, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toProviderResponse(p))
}

func (h *ProviderHandler) Deactivate(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.providerSvc.Deactivate(c.Request.Context(), id, claims.UserID, claims.Role, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"deactivated": true})
}

type setAvailabilityRequest struct {
	Windows []provider.AvailabilityWindow `json:"windows" binding:"required"`
}

func (h *ProviderHandler) SetAvailability(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req setAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.providerSvc.SetAvailability(c.Request.Context(), id, claims.UserID, claims.Role, req.Windows, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toProviderResponse(p))
}

// Slots enumerates the booking grid for one provider and date.
func (h *ProviderHandler) Slots(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date is required in YYYY-MM-DD format"})
		return
	}
	duration := parseQueryInt(c, "duration", 30)

	slots, svcErr := h.apptSvc.AvailableSlots(c.Request.Context(), id, date, duration)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondOK(c, gin.H{
		"date":     c.Query("date"),
		"duration": duration,
		"slots":    slots,
	})
}

// Appointments lists the provider's schedule over a date range, defaulting
// to the coming week.
func (h *ProviderHandler) Appointments(c *gin.Context) {
	claims, ok := callerClaims(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	now := time.Now()
	from, to := now, now.AddDate(0, 0, 7)
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from must be in YYYY-MM-DD format"})
			return
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "to must be in YYYY-MM-DD format"})
			return
		}
		// Inclusive end date.
		to = t.AddDate(0, 0, 1).Add(-time.Second)
	}

	appts, err := h.apptSvc.ListForProvider(c.Request.Context(), id, claims.UserID, claims.Role, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, appts)
}
