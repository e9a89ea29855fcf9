package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careconnect/careconnect/internal/domain"
	"github.com/careconnect/careconnect/internal/domain/appointment"
	"github.com/careconnect/careconnect/internal/domain/patient"
	"github.com/careconnect/careconnect/internal/domain/provider"
	"github.com/careconnect/careconnect/pkg/lock"
)

var (
	providerID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	patientID  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	apptID     = uuid.MustParse("33333333-3333-3333-3333-333333333333")

	// 2026-03-10 is a Tuesday.
	bookingStart = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	// Well before the booking, so lead time and the cancellation window
	// don't interfere unless a test moves the clock.
	fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func activeProvider() *provider.Provider {
	return &provider.Provider{
		ID:        providerID,
		FirstName: "Grace",
		LastName:  "Okafor",
		Specialty: provider.SpecialtyCardiology,
		Availability: []provider.AvailabilityWindow{
			{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00", IsActive: true},
		},
		MaxDailyAppointments: 8,
		IsActive:             true,
	}
}

func activePatient() *patient.Patient {
	return &patient.Patient{
		ID:        patientID,
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Obi",
		Phone:     "+15550100",
		IsActive:  true,
	}
}

type apptEnv struct {
	svc      *AppointmentService
	repo     *fakeAppointmentRepo
	provRepo *fakeProviderRepo
	patRepo  *fakePatientRepo
	locker   *fakeLocker
}

func newApptEnv(t *testing.T) *apptEnv {
	t.Helper()
	env := &apptEnv{
		repo:     &fakeAppointmentRepo{},
		provRepo: &fakeProviderRepo{},
		patRepo:  &fakePatientRepo{},
		locker:   &fakeLocker{},
	}
	auditSvc := newTestAuditService()
	t.Cleanup(auditSvc.Shutdown)

	env.svc = NewAppointmentService(
		env.repo, env.provRepo, env.patRepo, env.locker,
		auditSvc, newTestCollector(), zap.NewNop(), testSchedulingConfig(),
	)
	env.svc.now = func() time.Time { return fixedNow }
	return env
}

// configureHappyPath wires every check to pass.
func (env *apptEnv) configureHappyPath() {
	env.provRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*provider.Provider, error) {
		return activeProvider(), nil
	}
	env.patRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
		return activePatient(), nil
	}
	env.repo.countFn = func(ctx context.Context, pid uuid.UUID, date time.Time) (int64, error) {
		return 0, nil
	}
	env.repo.findConflictingFn = func(ctx context.Context, pid uuid.UUID, start, end time.Time, exclude *uuid.UUID) ([]*appointment.Appointment, error) {
		return nil, nil
	}
	env.repo.createFn = func(ctx context.Context, a *appointment.Appointment) error {
		a.ID = apptID
		return nil
	}
}

func validCreateCmd() *appointment.CreateAppointmentCommand {
	return &appointment.CreateAppointmentCommand{
		ProviderID: providerID,
		StartTime:  bookingStart,
		Duration:   30,
		Reason:     "Recurring chest pain during exercise",
	}
}

func TestCreateBooksAppointment(t *testing.T) {
	env := newApptEnv(t)
	env.configureHappyPath()

	var persisted *appointment.Appointment
	env.repo.createFn = func(ctx context.Context, a *appointment.Appointment) error {
		a.ID = apptID
		persisted = a
		return nil
	}

	got, err := env.svc.Create(context.Background(), patientID, validCreateCmd(), "198.51.100.7")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if persisted == nil {
		t.Fatal("appointment was not persisted")
	}
	if got.Status != appointment.StatusScheduled {
		t.Fatalf("status = %s, want scheduled", got.Status)
	}
	if want := bookingStart.Add(30 * time.Minute); !got.EndTime.Equal(want) {
		t.Fatalf("end time = %v, want %v", got.EndTime, want)
	}
	if got.PatientSnapshot.FirstName != "Ada" || got.PatientSnapshot.Email != "ada@example.com" {
		t.Fatalf("snapshot = %+v, want patient contact details", got.PatientSnapshot)
	}
	if env.locker.acquired != 1 {
		t.Fatalf("lock acquired %d times, want 1", env.locker.acquired)
	}
}

func TestCreateRejectsBadDuration(t *testing.T) {
	env := newApptEnv(t)
	for _, d := range []int{0, 14, 121, -30} {
		cmd := validCreateCmd()
		cmd.Duration = d
		if _, err := env.svc.Create(context.Background(), patientID, cmd, ""); !errors.Is(err, appointment.ErrInvalidDuration) {
			t.Fatalf("duration %d: err = %v, want ErrInvalidDuration", d, err)
		}
	}
}

func TestCreateRejectsBadReason(t *testing.T) {
	env := newApptEnv(t)
	cmd := validCreateCmd()
	cmd.Reason = "hi"
	if _, err := env.svc.Create(context.Background(), patientID, cmd, ""); !errors.Is(err, appointment.ErrInvalidReason) {
		t.Fatalf("err = %v, want ErrInvalidReason", err)
	}
}

func TestCreateInactiveProvider(t *testing.T) {
	env := newApptEnv(t)
	env.configureHappyPath()
	env.provRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*provider.Provider, error) {
		p := activeProvider()
		p.IsActive = false
		return p, nil
	}

	if _, err := env.svc.Create(context.Background(), patientID, validCreateCmd(), ""); !errors.Is(err, provider.ErrProviderNotFound) {
		t.Fatalf("err = %v, want ErrProviderNotFound", err)
	}
	if env.locker.acquired != 0 {
		t.Fatal("lock should not be taken for an inactive provider")
	}
}

func TestCreateUnknownPatient(t *testing.T) {
	env := newApptEnv(t)
	env.configureHappyPath()
	env.patRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
		return nil, patient.ErrPatientNotFound
	}

	if _, err := env.svc.Create(context.Background(), patientID, validCreateCmd(), ""); !errors.Is(err, patient.ErrPatientNotFound) {
		t.Fatalf("err = %v, want ErrPatientNotFound", err)
	}
}

func TestCreateDailyLimitReached(t *testing.T) {
	env := newApptEnv(t)
	env.configureHappyPath()
	env.repo.countFn = func(ctx context.Context, pid uuid.UUID, date time.Time) (int64, error) {
		return 8, nil
	}
	// The conflict check must never run once the cap is hit.
	env.repo.findConflictingFn = func(ctx context.Context, pid uuid.UUID, start, end time.Time, exclude *uuid.UUID) ([]*appointment.Appointment, error) {
		t.Fatal("conflict check ran after daily limit failure")
		return nil, nil
	}

	if _, err := env.svc.Create(context.Background(), patientID, validCreateCmd(), ""); !errors.Is(err, appointment.ErrDailyLimitReached) {
		t.Fatalf("err = %v, want ErrDailyLimitReached", err)
	}
}

func TestCreateSlotConflict(t *testing.T) {
	env := newApptEnv(t)
	env.configureHappyPath()
	env.repo.findConflictingFn = func(ctx context.Context, pid uuid.UUID, start, end time.Time, exclude *uuid.UUID) ([]*appointment.Appointment, error) {
		return []*appointment.Appointment{{ID: uuid.New()}}, nil
	}
	// Ordering: a provider with no availability at all still reports the
	// conflict, because the slot check runs first.
	env.provRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*provider.Provider, error) {
		p := activeProvider()
		p.Availability = nil
		return p, nil
	}

	if _, err := env.svc.Create(context.Background(), patientID, validCreateCmd(), ""); !errors.Is(err, appointment.ErrSlotUnavailable) {
		t.Fatalf("err = %v, want ErrSlotUnavailable", err)
	}
}

func TestCreateNoAvailabilityConfigured(t *testing.T) {
	env := newApptEnv(t)
	env.configureHappyPath()
	env.provRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*provider.Provider, error) {
		p := activeProvider()
		p.Availability = []provider.AvailabilityWindow{
			{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00", IsActive: false},
		}
		return p, nil
	}

	if _, err := env.svc.Create(context.Background(), patientID, validCreateCmd(), ""); !errors.Is(err, appointment.ErrNoAvailabilityConfigured) {
		t.Fatalf("err = %v, want ErrNoAvailabilityConfigured", err)
	}
}

func TestCreateOutsideAvailability(t *testing.T) {
	env := newApptEnv(t)
	env.configureHappyPath()

	cmd := validCreateCmd()
	cmd.StartTime = time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC)

	if _, err := env.svc.Create(context.Background(), patientID, cmd, ""); !errors.Is(err, appointment.ErrOutsideAvailability) {
		t.Fatalf("err = %v, want ErrOutsideAvailability", err)
	}

	// A different weekday with no window is equally outside.
	cmd.StartTime = time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	if _, err := env.svc.Create(context.Background(), patientID, cmd, ""); !errors.Is(err, appointment.ErrOutsideAvailability) {
		t.Fatalf("wednesday err = %v, want ErrOutsideAvailability", err)
	}
}

func TestCreateLockContention(t *testing.T) {
	env := newApptEnv(t)
	env.configureHappyPath()
	env.locker.err = lock.ErrLockNotAcquired

	if _, err := env.svc.Create(context.Background(), patientID, validCreateCmd(), ""); !errors.Is(err, appointment.ErrSlotUnavailable) {
		t.Fatalf("err = %v, want ErrSlotUnavailable on lock contention", err)
	}
}

func storedAppointment() *appointment.Appointment {
	return &appointment.Appointment{
		ID:         apptID,
		PatientID:  patientID,
		ProviderID: providerID,
		StartTime:  bookingStart,
		EndTime:    bookingStart.Add(30 * time.Minute),
		Status:     appointment.StatusScheduled,
		Reason:     "Recurring chest pain during exercise",
	}
}

func TestGetByIDAuthorization(t *testing.T) {
	tests := []struct {
		name    string
		caller  uuid.UUID
		role    domain.Role
		wantErr error
	}{
		{"owning patient", patientID, domain.RolePatient, nil},
		{"other patient", uuid.New(), domain.RolePatient, ErrForbidden},
		{"owning provider", providerID, domain.RoleProvider, nil},
		{"other provider", uuid.New(), domain.RoleProvider, ErrForbidden},
		{"admin", uuid.New(), domain.RoleAdmin, nil},
		{"unknown role", patientID, domain.Role("superuser"), ErrForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newApptEnv(t)
			env.repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
				return storedAppointment(), nil
			}

			_, err := env.svc.GetByID(context.Background(), apptID, tc.caller, tc.role, "")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestUpdatePatientCannotChangeStatus(t *testing.T) {
	env := newApptEnv(t)
	env.repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
		return storedAppointment(), nil
	}

	confirmed := appointment.StatusConfirmed
	_, err := env.svc.Update(context.Background(), apptID, patientID, domain.RolePatient,
		&appointment.UpdateAppointmentCommand{Status: &confirmed}, "")
	if !errors.Is(err, ErrPatientStatusChange) {
		t.Fatalf("err = %v, want ErrPatientStatusChange", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	env := newApptEnv(t)
	env.repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
		return storedAppointment(), nil
	}
	env.repo.updateFn = func(ctx context.Context, id uuid.UUID, cmd *appointment.UpdateAppointmentCommand) (*appointment.Appointment, error) {
		a := storedAppointment()
		a.Status = *cmd.Status
		return a, nil
	}

	confirmed := appointment.StatusConfirmed
	a, err := env.svc.Update(context.Background(), apptID, providerID, domain.RoleProvider,
		&appointment.UpdateAppointmentCommand{Status: &confirmed}, "")
	if err != nil {
		t.Fatalf("scheduled -> confirmed: %v", err)
	}
	if a.Status != appointment.StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", a.Status)
	}

	// scheduled -> completed skips confirmation and must be rejected.
	completed := appointment.StatusCompleted
	_, err = env.svc.Update(context.Background(), apptID, providerID, domain.RoleProvider,
		&appointment.UpdateAppointmentCommand{Status: &completed}, "")
	if !errors.Is(err, appointment.ErrInvalidStatusTransition) {
		t.Fatalf("err = %v, want ErrInvalidStatusTransition", err)
	}

	bogus := appointment.Status("archived")
	_, err = env.svc.Update(context.Background(), apptID, providerID, domain.RoleProvider,
		&appointment.UpdateAppointmentCommand{Status: &bogus}, "")
	if !errors.Is(err, appointment.ErrInvalidStatusTransition) {
		t.Fatalf("unknown status err = %v, want ErrInvalidStatusTransition", err)
	}
}

func TestUpdateRatingRange(t *testing.T) {
	env := newApptEnv(t)
	env.repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
		return storedAppointment(), nil
	}

	for _, r := range []int{0, 6, -1} {
		rating := r
		_, err := env.svc.Update(context.Background(), apptID, patientID, domain.RolePatient,
			&appointment.UpdateAppointmentCommand{Rating: &rating}, "")
		if !errors.Is(err, appointment.ErrInvalidRating) {
			t.Fatalf("rating %d: err = %v, want ErrInvalidRating", r, err)
		}
	}
}

func TestCancelByPatient(t *testing.T) {
	env := newApptEnv(t)
	env.repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
		return storedAppointment(), nil
	}

	var gotStatus *appointment.Status
	env.repo.updateFn = func(ctx context.Context, id uuid.UUID, cmd *appointment.UpdateAppointmentCommand) (*appointment.Appointment, error) {
		gotStatus = cmd.Status
		a := storedAppointment()
		a.Status = *cmd.Status
		return a, nil
	}

	if err := env.svc.Cancel(context.Background(), apptID, patientID, domain.RolePatient, ""); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if gotStatus == nil || *gotStatus != appointment.StatusCancelled {
		t.Fatalf("persisted status = %v, want cancelled", gotStatus)
	}
}

func TestCancelInsideWindowRejectedForPatient(t *testing.T) {
	env := newApptEnv(t)
	env.repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
		return storedAppointment(), nil
	}
	// 10 hours before start: inside the 24h window.
	env.svc.now = func() time.Time { return bookingStart.Add(-10 * time.Hour) }

	err := env.svc.Cancel(context.Background(), apptID, patientID, domain.RolePatient, "")
	if !errors.Is(err, appointment.ErrCancellationWindow) {
		t.Fatalf("err = %v, want ErrCancellationWindow", err)
	}
}

func TestCancelInsideWindowAllowedForProvider(t *testing.T) {
	env := newApptEnv(t)
	env.repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
		return storedAppointment(), nil
	}
	env.repo.updateFn = func(ctx context.Context, id uuid.UUID, cmd *appointment.UpdateAppointmentCommand) (*appointment.Appointment, error) {
		a := storedAppointment()
		a.Status = *cmd.Status
		return a, nil
	}
	env.svc.now = func() time.Time { return bookingStart.Add(-10 * time.Hour) }

	if err := env.svc.Cancel(context.Background(), apptID, providerID, domain.RoleProvider, ""); err != nil {
		t.Fatalf("provider cancel inside window: %v", err)
	}
}

func TestCancelExactlyAtWindowBoundaryRejected(t *testing.T) {
	env := newApptEnv(t)
	env.repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
		return storedAppointment(), nil
	}
	env.svc.now = func() time.Time { return bookingStart.Add(-24 * time.Hour) }

	err := env.svc.Cancel(context.Background(), apptID, patientID, domain.RolePatient, "")
	if !errors.Is(err, appointment.ErrCancellationWindow) {
		t.Fatalf("err = %v, want ErrCancellationWindow at exact boundary", err)
	}
}

func TestCancelTerminalStates(t *testing.T) {
	for _, status := range []appointment.Status{appointment.StatusCancelled, appointment.StatusCompleted, appointment.StatusNoShow} {
		env := newApptEnv(t)
		env.repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
			a := storedAppointment()
			a.Status = status
			return a, nil
		}

		err := env.svc.Cancel(context.Background(), apptID, patientID, domain.RolePatient, "")
		if !errors.Is(err, appointment.ErrInvalidStatusTransition) {
			t.Fatalf("cancel from %s: err = %v, want ErrInvalidStatusTransition", status, err)
		}
	}
}

func TestCancelNotOwner(t *testing.T) {
	env := newApptEnv(t)
	env.repo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
		return storedAppointment(), nil
	}

	if err := env.svc.Cancel(context.Background(), apptID, uuid.New(), domain.RoleProvider, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestDeleteAdminOnly(t *testing.T) {
	env := newApptEnv(t)

	if err := env.svc.Delete(context.Background(), apptID, patientID, domain.RolePatient, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("patient delete err = %v, want ErrForbidden", err)
	}
	if err := env.svc.Delete(context.Background(), apptID, providerID, domain.RoleProvider, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("provider delete err = %v, want ErrForbidden", err)
	}

	var deleted uuid.UUID
	env.repo.softDeleteFn = func(ctx context.Context, id uuid.UUID) error {
		deleted = id
		return nil
	}
	if err := env.svc.Delete(context.Background(), apptID, uuid.New(), domain.RoleAdmin, ""); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if deleted != apptID {
		t.Fatalf("soft-deleted id = %s, want %s", deleted, apptID)
	}
}

func TestListForPatientAuthorization(t *testing.T) {
	env := newApptEnv(t)
	env.repo.findByPatientFn = func(ctx context.Context, pid uuid.UUID, page, pageSize int) (*appointment.PagedAppointments, error) {
		return &appointment.PagedAppointments{Page: page, PageSize: pageSize}, nil
	}

	if _, err := env.svc.ListForPatient(context.Background(), patientID, patientID, domain.RolePatient, 1, 10); err != nil {
		t.Fatalf("own list: %v", err)
	}
	if _, err := env.svc.ListForPatient(context.Background(), patientID, uuid.New(), domain.RolePatient, 1, 10); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other patient err = %v, want ErrForbidden", err)
	}
	if _, err := env.svc.ListForPatient(context.Background(), patientID, providerID, domain.RoleProvider, 1, 10); !errors.Is(err, ErrForbidden) {
		t.Fatalf("provider err = %v, want ErrForbidden", err)
	}

	// Page normalization.
	got, err := env.svc.ListForPatient(context.Background(), patientID, patientID, domain.RolePatient, -3, 500)
	if err != nil {
		t.Fatalf("normalized list: %v", err)
	}
	if got.Page != 1 || got.PageSize != 10 {
		t.Fatalf("page=%d size=%d, want 1 and 10", got.Page, got.PageSize)
	}
}

func TestListForProviderAuthorization(t *testing.T) {
	env := newApptEnv(t)
	env.repo.findByProviderFn = func(ctx context.Context, pid uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error) {
		return []*appointment.Appointment{storedAppointment()}, nil
	}

	from, to := fixedNow, fixedNow.AddDate(0, 0, 7)
	if _, err := env.svc.ListForProvider(context.Background(), providerID, providerID, domain.RoleProvider, from, to); err != nil {
		t.Fatalf("own schedule: %v", err)
	}
	if _, err := env.svc.ListForProvider(context.Background(), providerID, uuid.New(), domain.RoleProvider, from, to); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other provider err = %v, want ErrForbidden", err)
	}
	if _, err := env.svc.ListForProvider(context.Background(), providerID, patientID, domain.RolePatient, from, to); !errors.Is(err, ErrForbidden) {
		t.Fatalf("patient err = %v, want ErrForbidden", err)
	}
}

func TestAvailableSlots(t *testing.T) {
	env := newApptEnv(t)
	env.provRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*provider.Provider, error) {
		p := activeProvider()
		p.Availability = []provider.AvailabilityWindow{
			{DayOfWeek: 2, StartTime: "09:00", EndTime: "11:00", IsActive: true},
		}
		return p, nil
	}
	env.repo.findByProviderFn = func(ctx context.Context, pid uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error) {
		day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		return []*appointment.Appointment{
			{StartTime: day.Add(9*time.Hour + 30*time.Minute), EndTime: day.Add(10 * time.Hour), Status: appointment.StatusScheduled},
			// Cancelled bookings release their slot.
			{StartTime: day.Add(10 * time.Hour), EndTime: day.Add(10*time.Hour + 30*time.Minute), Status: appointment.StatusCancelled},
		}, nil
	}

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	slots, err := env.svc.AvailableSlots(context.Background(), providerID, date, 30)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}

	want := map[string]bool{"09:00": true, "09:30": false, "10:00": true, "10:30": true}
	if len(slots) != len(want) {
		t.Fatalf("got %d slots, want %d: %+v", len(slots), len(want), slots)
	}
	for _, s := range slots {
		avail, ok := want[s.Time]
		if !ok {
			t.Fatalf("unexpected slot %s", s.Time)
		}
		if s.Available != avail {
			t.Fatalf("slot %s available = %v, want %v", s.Time, s.Available, avail)
		}
	}
}

func TestAvailableSlotsNoWindowOnDay(t *testing.T) {
	env := newApptEnv(t)
	env.provRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*provider.Provider, error) {
		return activeProvider(), nil
	}

	// Monday; the provider only works Tuesdays.
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	slots, err := env.svc.AvailableSlots(context.Background(), providerID, date, 30)
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected empty slot list, got %+v", slots)
	}
}

func TestAvailableSlotsInactiveProvider(t *testing.T) {
	env := newApptEnv(t)
	env.provRepo.getByIDFn = func(ctx context.Context, id uuid.UUID) (*provider.Provider, error) {
		p := activeProvider()
		p.IsActive = false
		return p, nil
	}

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if _, err := env.svc.AvailableSlots(context.Background(), providerID, date, 30); !errors.Is(err, provider.ErrProviderNotFound) {
		t.Fatalf("err = %v, want ErrProviderNotFound", err)
	}
}
