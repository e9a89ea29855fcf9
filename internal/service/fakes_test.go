package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/careconnect/careconnect/internal/config"
	"github.com/careconnect/careconnect/internal/domain"
	"github.com/careconnect/careconnect/internal/domain/appointment"
	"github.com/careconnect/careconnect/internal/domain/patient"
	"github.com/careconnect/careconnect/internal/domain/provider"
	"github.com/careconnect/careconnect/pkg/metrics"
)

type fakeAppointmentRepo struct {
	createFn          func(ctx context.Context, a *appointment.Appointment) error
	getByIDFn         func(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	updateFn          func(ctx context.Context, id uuid.UUID, cmd *appointment.UpdateAppointmentCommand) (*appointment.Appointment, error)
	softDeleteFn      func(ctx context.Context, id uuid.UUID) error
	findConflictingFn func(ctx context.Context, providerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*appointment.Appointment, error)
	countFn           func(ctx context.Context, providerID uuid.UUID, date time.Time) (int64, error)
	findByPatientFn   func(ctx context.Context, patientID uuid.UUID, page, pageSize int) (*appointment.PagedAppointments, error)
	findByProviderFn  func(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error)
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, a *appointment.Appointment) error {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, a)
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	if f.getByIDFn == nil {
		panic("GetByID not configured")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, id uuid.UUID, cmd *appointment.UpdateAppointmentCommand) (*appointment.Appointment, error) {
	if f.updateFn == nil {
		panic("Update not configured")
	}
	return f.updateFn(ctx, id, cmd)
}

func (f *fakeAppointmentRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if f.softDeleteFn == nil {
		panic("SoftDelete not configured")
	}
	return f.softDeleteFn(ctx, id)
}

func (f *fakeAppointmentRepo) FindConflicting(ctx context.Context, providerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*appointment.Appointment, error) {
	if f.findConflictingFn == nil {
		panic("FindConflicting not configured")
	}
	return f.findConflictingFn(ctx, providerID, start, end, excludeID)
}

func (f *fakeAppointmentRepo) CountByProviderAndDate(ctx context.Context, providerID uuid.UUID, date time.Time) (int64, error) {
	if f.countFn == nil {
		panic("CountByProviderAndDate not configured")
	}
	return f.countFn(ctx, providerID, date)
}

func (f *fakeAppointmentRepo) FindByPatient(ctx context.Context, patientID uuid.UUID, page, pageSize int) (*appointment.PagedAppointments, error) {
	if f.findByPatientFn == nil {
		panic("FindByPatient not configured")
	}
	return f.findByPatientFn(ctx, patientID, page, pageSize)
}

func (f *fakeAppointmentRepo) FindByProvider(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error) {
	if f.findByProviderFn == nil {
		panic("FindByProvider not configured")
	}
	return f.findByProviderFn(ctx, providerID, from, to)
}

type fakeProviderRepo struct {
	createFn             func(ctx context.Context, p *provider.Provider) error
	getByIDFn            func(ctx context.Context, id uuid.UUID) (*provider.Provider, error)
	getByEmailFn         func(ctx context.Context, email string) (*provider.Provider, error)
	getByLicenseFn       func(ctx context.Context, license string) (*provider.Provider, error)
	updateFn             func(ctx context.Context, id uuid.UUID, cmd *provider.UpdateProviderCommand) (*provider.Provider, error)
	updateAvailabilityFn func(ctx context.Context, id uuid.UUID, windows []provider.AvailabilityWindow) (*provider.Provider, error)
	softDeleteFn         func(ctx context.Context, id uuid.UUID) error
	listFn               func(ctx context.Context, q *provider.ListProvidersQuery) ([]*provider.Provider, error)
}

func (f *fakeProviderRepo) Create(ctx context.Context, p *provider.Provider) error {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, p)
}

func (f *fakeProviderRepo) GetByID(ctx context.Context, id uuid.UUID) (*provider.Provider, error) {
	if f.getByIDFn == nil {
		panic("GetByID not configured")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeProviderRepo) GetByEmail(ctx context.Context, email string) (*provider.Provider, error) {
	if f.getByEmailFn == nil {
		panic("GetByEmail not configured")
	}
	return f.getByEmailFn(ctx, email)
}

func (f *fakeProviderRepo) GetByLicenseNumber(ctx context.Context, license string) (*provider.Provider, error) {
	if f.getByLicenseFn == nil {
		panic("GetByLicenseNumber not configured")
	}
	return f.getByLicenseFn(ctx, license)
}

func (f *fakeProviderRepo) Update(ctx context.Context, id uuid.UUID, cmd *provider.UpdateProviderCommand) (*provider.Provider, error) {
	if f.updateFn == nil {
		panic("Update not configured")
	}
	return f.updateFn(ctx, id, cmd)
}

func (f *fakeProviderRepo) UpdateAvailability(ctx context.Context, id uuid.UUID, windows []provider.AvailabilityWindow) (*provider.Provider, error) {
	if f.updateAvailabilityFn == nil {
		panic("UpdateAvailability not configured")
	}
	return f.updateAvailabilityFn(ctx, id, windows)
}

func (f *fakeProviderRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if f.softDeleteFn == nil {
		panic("SoftDelete not configured")
	}
	return f.softDeleteFn(ctx, id)
}

func (f *fakeProviderRepo) List(ctx context.Context, q *provider.ListProvidersQuery) ([]*provider.Provider, error) {
	if f.listFn == nil {
		panic("List not configured")
	}
	return f.listFn(ctx, q)
}

type fakePatientRepo struct {
	createFn     func(ctx context.Context, p *patient.Patient) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
	getByEmailFn func(ctx context.Context, email string) (*patient.Patient, error)
	updateFn     func(ctx context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error)
	softDeleteFn func(ctx context.Context, id uuid.UUID) error
	listFn       func(ctx context.Context, q *patient.ListPatientsQuery) ([]*patient.Patient, error)
}

func (f *fakePatientRepo) Create(ctx context.Context, p *patient.Patient) error {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, p)
}

func (f *fakePatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	if f.getByIDFn == nil {
		panic("GetByID not configured")
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakePatientRepo) GetByEmail(ctx context.Context, email string) (*patient.Patient, error) {
	if f.getByEmailFn == nil {
		panic("GetByEmail not configured")
	}
	return f.getByEmailFn(ctx, email)
}

func (f *fakePatientRepo) Update(ctx context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	if f.updateFn == nil {
		panic("Update not configured")
	}
	return f.updateFn(ctx, id, cmd)
}

func (f *fakePatientRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if f.softDeleteFn == nil {
		panic("SoftDelete not configured")
	}
	return f.softDeleteFn(ctx, id)
}

func (f *fakePatientRepo) List(ctx context.Context, q *patient.ListPatientsQuery) ([]*patient.Patient, error) {
	if f.listFn == nil {
		panic("List not configured")
	}
	return f.listFn(ctx, q)
}

// fakeLocker runs the critical section inline. Set err to simulate losing
// the lock; acquired counts successful acquisitions.
type fakeLocker struct {
	err      error
	acquired int
}

func (f *fakeLocker) WithScheduleLock(ctx context.Context, providerID uuid.UUID, day time.Time, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	f.acquired++
	return fn(ctx)
}

type fakeAuditRepo struct{}

func (fakeAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	return nil
}

func testSchedulingConfig() config.SchedulingConfig {
	return config.SchedulingConfig{
		SlotInterval:       30 * time.Minute,
		MinLeadTime:        30 * time.Minute,
		CancellationWindow: 24 * time.Hour,
		LockTTL:            5 * time.Second,
	}
}

func newTestCollector() *metrics.Collector {
	return metrics.NewCollectorWith(prometheus.NewRegistry(), "test")
}

func newTestAuditService() *AuditService {
	return NewAuditService(fakeAuditRepo{}, newTestCollector(), zap.NewNop())
}
