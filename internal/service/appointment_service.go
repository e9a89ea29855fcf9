package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careconnect/careconnect/internal/config"
	"github.com/careconnect/careconnect/internal/domain"
	"github.com/careconnect/careconnect/internal/domain/appointment"
	"github.com/careconnect/careconnect/internal/domain/patient"
	"github.com/careconnect/careconnect/internal/domain/provider"
	"github.com/careconnect/careconnect/internal/schedule"
	"github.com/careconnect/careconnect/pkg/lock"
	"github.com/careconnect/careconnect/pkg/metrics"
)

const (
	minDurationMins = 15
	maxDurationMins = 120
	minReasonLen    = 5
	maxReasonLen    = 500
)

// AppointmentService is the booking engine. It owns every scheduling
// invariant: provider availability, the daily cap, slot conflicts, the
// cancellation window, and the status machine.
type AppointmentService struct {
	repo         appointment.Repository
	providerRepo provider.Repository
	patientRepo  patient.Repository
	locker       lock.ScheduleLocker
	auditSvc     *AuditService
	collector    *metrics.Collector
	log          *zap.Logger
	cfg          config.SchedulingConfig

	now func() time.Time
}

func NewAppointmentService(
	repo appointment.Repository,
	providerRepo provider.Repository,
	patientRepo patient.Repository,
	locker lock.ScheduleLocker,
	auditSvc *AuditService,
	collector *metrics.Collector,
	log *zap.Logger,
	cfg config.SchedulingConfig,
) *AppointmentService {
	return &AppointmentService{
		repo:         repo,
		providerRepo: providerRepo,
		patientRepo:  patientRepo,
		locker:       locker,
		auditSvc:     auditSvc,
		collector:    collector,
		log:          log,
		cfg:          cfg,
		now:          time.Now,
	}
}

// Create books a new appointment for the patient. The checks run in a
// fixed order (provider, patient, daily cap, slot conflict, availability)
// and each failure short-circuits before anything is written. The capacity
// and conflict reads plus the insert run under the per-provider-day
// schedule lock so two concurrent requests cannot both pass their checks.
func (s *AppointmentService) Create(ctx context.Context, patientID uuid.UUID, cmd *appointment.CreateAppointmentCommand, ip string) (*appointment.Appointment, error) {
	if cmd.Duration < minDurationMins || cmd.Duration > maxDurationMins {
		return nil, appointment.ErrInvalidDuration
	}
	reason := strings.TrimSpace(cmd.Reason)
	if len(reason) < minReasonLen || len(reason) > maxReasonLen {
		return nil, appointment.ErrInvalidReason
	}

	prov, err := s.providerRepo.GetByID(ctx, cmd.ProviderID)
	if err != nil {
		return nil, err
	}
	if !prov.Bookable() {
		return nil, provider.ErrProviderNotFound
	}

	pat, err := s.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	endTime := schedule.AddDuration(cmd.StartTime, cmd.Duration)
	day, _ := schedule.DayBounds(cmd.StartTime)

	var created *appointment.Appointment
	err = s.locker.WithScheduleLock(ctx, prov.ID, day, func(lockCtx context.Context) error {
		count, err := s.repo.CountByProviderAndDate(lockCtx, prov.ID, cmd.StartTime)
		if err != nil {
			return fmt.Errorf("counting daily appointments: %w", err)
		}
		if count >= int64(prov.MaxDailyAppointments) {
			return appointment.ErrDailyLimitReached
		}

		conflicts, err := s.repo.FindConflicting(lockCtx, prov.ID, cmd.StartTime, endTime, nil)
		if err != nil {
			return fmt.Errorf("checking conflicts: %w", err)
		}
		if len(conflicts) > 0 {
			return appointment.ErrSlotUnavailable
		}

		// Availability last: it carries the most actionable message and
		// must not mask a capacity problem.
		if !provider.HasEnabledWindow(prov.Availability) {
			return appointment.ErrNoAvailabilityConfigured
		}
		if !provider.CoversInstant(prov.Availability, cmd.StartTime) {
			return appointment.ErrOutsideAvailability
		}

		a := &appointment.Appointment{
			PatientID:  pat.ID,
			ProviderID: prov.ID,
			StartTime:  cmd.StartTime,
			EndTime:    endTime,
			Status:     appointment.StatusScheduled,
			Reason:     reason,
			PatientSnapshot: appointment.PatientSnapshot{
				FirstName: pat.FirstName,
				LastName:  pat.LastName,
				Email:     pat.Email,
				Phone:     pat.Phone,
			},
		}
		if err := s.repo.Create(lockCtx, a); err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		if errors.Is(err, lock.ErrLockNotAcquired) {
			s.collector.BookingLockContention.Inc()
			return nil, appointment.ErrSlotUnavailable
		}
		s.countRejection(err)
		return nil, err
	}

	s.collector.AppointmentsBooked.Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       patientID,
		UserRole:     domain.RolePatient,
		Action:       domain.ActionCreate,
		ResourceType: "appointment",
		ResourceID:   created.ID.String(),
		IPAddress:    ip,
	})
	s.log.Info("appointment booked",
		zap.String("appointment_id", created.ID.String()),
		zap.String("provider_id", prov.ID.String()),
		zap.Time("start_time", created.StartTime),
	)

	return created, nil
}

func (s *AppointmentService) countRejection(err error) {
	switch {
	case errors.Is(err, appointment.ErrDailyLimitReached):
		s.collector.AppointmentsRejected.WithLabelValues("daily_limit").Inc()
	case errors.Is(err, appointment.ErrSlotUnavailable):
		s.collector.AppointmentsRejected.WithLabelValues("conflict").Inc()
	case errors.Is(err, appointment.ErrNoAvailabilityConfigured),
		errors.Is(err, appointment.ErrOutsideAvailability):
		s.collector.AppointmentsRejected.WithLabelValues("availability").Inc()
	}
}

// GetByID loads an appointment and enforces the ownership policy: patients
// and providers see only their own, admins see everything.
func (s *AppointmentService) GetByID(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole domain.Role, ip string) (*appointment.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeAppointmentAccess(callerID, callerRole, a); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       domain.ActionRead,
		ResourceType: "appointment",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})

	return a, nil
}

// ListForPatient returns the patient's appointments most recent first.
// Patients see only their own history; providers have no access here.
func (s *AppointmentService) ListForPatient(ctx context.Context, patientID uuid.UUID, callerID uuid.UUID, callerRole domain.Role, page, pageSize int) (*appointment.PagedAppointments, error) {
	switch callerRole {
	case domain.RoleAdmin:
	case domain.RolePatient:
		if callerID != patientID {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 10
	}
	return s.repo.FindByPatient(ctx, patientID, page, pageSize)
}

// ListForProvider returns the provider's appointments in [from, to],
// chronologically ascending. Providers see their own schedule; admins any.
func (s *AppointmentService) ListForProvider(ctx context.Context, providerID uuid.UUID, callerID uuid.UUID, callerRole domain.Role, from, to time.Time) ([]*appointment.Appointment, error) {
	switch callerRole {
	case domain.RoleAdmin:
	case domain.RoleProvider:
		if callerID != providerID {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	return s.repo.FindByProvider(ctx, providerID, from, to)
}

// Update applies a partial patch after the ownership check. Patients may
// never touch status; explicit status changes go through the transition
// table. Other fields are applied verbatim; a patched start time is not
// re-validated against availability or conflicts.
func (s *AppointmentService) Update(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole domain.Role, cmd *appointment.UpdateAppointmentCommand, ip string) (*appointment.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeAppointmentAccess(callerID, callerRole, a); err != nil {
		return nil, err
	}

	if cmd.Status != nil {
		if callerRole == domain.RolePatient {
			return nil, ErrPatientStatusChange
		}
		if !cmd.Status.IsValid() || !a.CanTransitionTo(*cmd.Status) {
			return nil, appointment.ErrInvalidStatusTransition
		}
	}
	if cmd.Rating != nil && (*cmd.Rating < 1 || *cmd.Rating > 5) {
		return nil, appointment.ErrInvalidRating
	}

	updated, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	if cmd.Status != nil {
		s.collector.AppointmentsByStatus.WithLabelValues(string(*cmd.Status)).Inc()
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       domain.ActionUpdate,
		ResourceType: "appointment",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})

	return updated, nil
}

// Cancel moves the appointment to cancelled. Both patients and providers
// must own the appointment they cancel. Patients are additionally bound by
// the cancellation window: anything starting within the notice period can
// no longer be self-cancelled.
func (s *AppointmentService) Cancel(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole domain.Role, ip string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authorizeAppointmentAccess(callerID, callerRole, a); err != nil {
		return err
	}

	if callerRole == domain.RolePatient &&
		!schedule.WithinCancellationWindow(a.StartTime, s.now(), s.cfg.CancellationWindow) {
		return appointment.ErrCancellationWindow
	}

	if err := a.Cancel(); err != nil {
		return err
	}

	cancelled := appointment.StatusCancelled
	if _, err := s.repo.Update(ctx, id, &appointment.UpdateAppointmentCommand{Status: &cancelled}); err != nil {
		return fmt.Errorf("persisting cancellation: %w", err)
	}

	s.collector.AppointmentsByStatus.WithLabelValues(string(appointment.StatusCancelled)).Inc()
	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       domain.ActionCancel,
		ResourceType: "appointment",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})
	s.log.Info("appointment cancelled",
		zap.String("appointment_id", id.String()),
		zap.String("cancelled_by", string(callerRole)),
	)

	return nil
}

// Delete soft-deletes an appointment record. Cancellation is the normal
// path for ending an appointment; deletion is an administrative cleanup
// operation and keeps the row for the audit trail.
func (s *AppointmentService) Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID, callerRole domain.Role, ip string) error {
	if callerRole != domain.RoleAdmin {
		return ErrForbidden
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		UserID:       callerID,
		UserRole:     callerRole,
		Action:       domain.ActionDelete,
		ResourceType: "appointment",
		ResourceID:   id.String(),
		IPAddress:    ip,
	})
	s.log.Info("appointment deleted", zap.String("appointment_id", id.String()))

	return nil
}

// AvailableSlots enumerates the booking grid for one provider and calendar
// date. Every candidate in the provider's windows is returned, taken slots
// included, so callers can render the whole day. A day with no enabled
// window yields an empty list, not an error.
func (s *AppointmentService) AvailableSlots(ctx context.Context, providerID uuid.UUID, date time.Time, duration int) ([]schedule.Slot, error) {
	if duration <= 0 {
		duration = int(s.cfg.SlotInterval / time.Minute)
	}

	prov, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if !prov.Bookable() {
		return nil, provider.ErrProviderNotFound
	}

	windows := provider.WindowsForDay(prov.Availability, date.Weekday())
	if len(windows) == 0 {
		return []schedule.Slot{}, nil
	}

	dayStart, dayEnd := schedule.DayBounds(date)
	existing, err := s.repo.FindByProvider(ctx, providerID, dayStart, dayEnd.Add(-time.Nanosecond))
	if err != nil {
		return nil, fmt.Errorf("loading day appointments: %w", err)
	}

	var busy []schedule.Interval
	for _, a := range existing {
		if a.Blocking() {
			busy = append(busy, schedule.Interval{Start: a.StartTime, End: a.EndTime})
		}
	}

	slots := []schedule.Slot{}
	for _, w := range windows {
		slots = append(slots, schedule.DaySlots(
			date, w.StartTime, w.EndTime,
			time.Duration(duration)*time.Minute,
			s.cfg.SlotInterval, s.cfg.MinLeadTime,
			busy, s.now(),
		)...)
	}

	s.collector.SlotQueriesTotal.Inc()
	return slots, nil
}
