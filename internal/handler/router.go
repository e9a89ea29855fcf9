package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/careconnect/careconnect/internal/config"
	v1 "github.com/careconnect/careconnect/internal/handler/v1"
	"github.com/careconnect/careconnect/internal/service"
	"github.com/careconnect/careconnect/pkg/auth"
	"github.com/careconnect/careconnect/pkg/metrics"
)

type RouterDeps struct {
	Config         *config.Config
	Log            *zap.Logger
	Collector      *metrics.Collector
	JWTManager     *auth.JWTManager
	AuthSvc        *service.AuthService
	AppointmentSvc *service.AppointmentService
	ProviderSvc    *service.ProviderService
	PatientSvc     *service.PatientService
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(RequestLogger(deps.Log))
	engine.Use(Metrics(deps.Collector))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:  deps.Config.CORS.AllowedOrigins,
		AllowMethods:  deps.Config.CORS.AllowedMethods,
		AllowHeaders:  deps.Config.CORS.AllowedHeaders,
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        deps.Config.CORS.MaxAge,
	}))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": deps.Config.App.Version,
		})
	})
	engine.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := engine.Group("/api/v1")

	authHandler := v1.NewAuthHandler(deps.AuthSvc)
	authHandler.RegisterRoutes(api.Group("/auth"))

	authed := api.Group("")
	authed.Use(Authenticate(deps.JWTManager))

	apptHandler := v1.NewAppointmentHandler(deps.AppointmentSvc)
	apptHandler.RegisterRoutes(authed.Group("/appointments"))

	providerHandler := v1.NewProviderHandler(deps.ProviderSvc, deps.AppointmentSvc)
	providerHandler.RegisterRoutes(authed.Group("/providers"))

	patientHandler := v1.NewPatientHandler(deps.PatientSvc, deps.AppointmentSvc)
	patientHandler.RegisterRoutes(authed.Group("/patients"))

	return engine
}
