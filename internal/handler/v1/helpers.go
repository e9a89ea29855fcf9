package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/careconnect/careconnect/internal/domain"
	"github.com/careconnect/careconnect/internal/domain/appointment"
	"github.com/careconnect/careconnect/internal/domain/patient"
	"github.com/careconnect/careconnect/internal/domain/provider"
	"github.com/careconnect/careconnect/internal/service"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data})
}

// respondServiceError translates the service error taxonomy to HTTP. The
// default arm is deliberately opaque: storage and infrastructure errors
// never leak their text to clients.
func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validErr.Message})
		return
	}

	switch {
	case errors.Is(err, provider.ErrProviderNotFound),
		errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, appointment.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, appointment.ErrSlotUnavailable),
		errors.Is(err, appointment.ErrDailyLimitReached),
		errors.Is(err, patient.ErrPatientAlreadyExists),
		errors.Is(err, provider.ErrProviderAlreadyExists),
		errors.Is(err, provider.ErrLicenseAlreadyExists):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, appointment.ErrNoAvailabilityConfigured),
		errors.Is(err, appointment.ErrOutsideAvailability),
		errors.Is(err, appointment.ErrCancellationWindow),
		errors.Is(err, appointment.ErrInvalidStatusTransition),
		errors.Is(err, appointment.ErrInvalidDuration),
		errors.Is(err, appointment.ErrInvalidReason),
		errors.Is(err, appointment.ErrInvalidRating),
		errors.Is(err, provider.ErrInvalidSpecialty),
		errors.Is(err, provider.ErrInvalidDailyLimit),
		errors.Is(err, provider.ErrInvalidWindowDay),
		errors.Is(err, provider.ErrInvalidWindowTime),
		errors.Is(err, provider.ErrInvalidWindowRange),
		errors.Is(err, patient.ErrInvalidDateOfBirth):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrPatientStatusChange):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})

	case errors.Is(err, service.ErrAccountInactive):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error(), Code: "ACCOUNT_INACTIVE"})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}
	return true
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

func parseQueryInt(c *gin.Context, key string, defaultVal int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return defaultVal
}

// callerClaims pulls the identity the auth middleware stored. Routes behind
// the middleware always have it; the ok check guards against miswiring.
func callerClaims(c *gin.Context) (*domain.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return nil, false
	}
	claims, ok := v.(*domain.Claims)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return nil, false
	}
	return claims, true
}
