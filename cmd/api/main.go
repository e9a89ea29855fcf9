package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/careconnect/careconnect/internal/config"
	"github.com/careconnect/careconnect/internal/handler"
	"github.com/careconnect/careconnect/internal/repository"
	"github.com/careconnect/careconnect/internal/service"
	"github.com/careconnect/careconnect/pkg/auth"
	"github.com/careconnect/careconnect/pkg/database"
	"github.com/careconnect/careconnect/pkg/lock"
	"github.com/careconnect/careconnect/pkg/logger"
	"github.com/careconnect/careconnect/pkg/metrics"
	"github.com/careconnect/careconnect/pkg/tracer"
)

func main() {
	// Optional in production; containers set env directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		tp, err := tracer.Init(cfg.Tracing)
		if err != nil {
			zlog.Fatal("tracer init failed", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				zlog.Warn("tracer shutdown", zap.Error(err))
			}
		}()
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db, zlog); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}

	redisClient, err := lock.NewRedisClient(
		cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password,
		cfg.Redis.DB, cfg.Redis.PoolSize,
		cfg.Redis.ReadTimeout, cfg.Redis.WriteTimeout,
	)
	if err != nil {
		zlog.Fatal("redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()

	collector := metrics.NewCollector("careconnect")
	jwtManager := auth.NewJWTManager(cfg.JWT)

	providerRepo := repository.NewProviderRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	auditSvc := service.NewAuditService(auditRepo, collector, zlog)
	defer auditSvc.Shutdown()

	locker := lock.NewRedisScheduleLocker(redisClient, cfg.Scheduling.LockTTL)

	authSvc := service.NewAuthService(patientRepo, providerRepo, jwtManager, auditSvc, zlog)
	apptSvc := service.NewAppointmentService(apptRepo, providerRepo, patientRepo, locker, auditSvc, collector, zlog, cfg.Scheduling)
	providerSvc := service.NewProviderService(providerRepo, auditSvc, zlog)
	patientSvc := service.NewPatientService(patientRepo, auditSvc, zlog)

	router := handler.NewRouter(handler.RouterDeps{
		Config:         cfg,
		Log:            zlog,
		Collector:      collector,
		JWTManager:     jwtManager,
		AuthSvc:        authSvc,
		AppointmentSvc: apptSvc,
		ProviderSvc:    providerSvc,
		PatientSvc:     patientSvc,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zlog.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}

	zlog.Info("stopped")
}
