package routes

import (
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberin/internal/audit"
	"github.com/BruksfildServices01/barberin/internal/auth"
	"github.com/BruksfildServices01/barberin/internal/config"
	"github.com/BruksfildServices01/barberin/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barberin/internal/infra/repository"
	"github.com/BruksfildServices01/barberin/internal/middleware"
	"github.com/BruksfildServices01/barberin/internal/payment"
	"github.com/BruksfildServices01/barberin/internal/service"
	ucAppointment "github.com/BruksfildServices01/barberin/internal/usecase/appointment"
)

// Deps are the process-wide singletons built in main. Optional
// integrations are left nil when not configured.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zap.Logger
	Tokens   *auth.TokenService
	Audit    *audit.Dispatcher
	AuditLog *audit.Logger
	Payments *payment.MercadoPago

	Redis  middleware.Scripter
	Emails service.EmailChecker
	Photos handlers.PhotoStore
	Google handlers.GoogleAuthenticator
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(d.Log))
	r.Use(middleware.CORSMiddleware(cfg.Origins()))

	p := ginprometheus.NewPrometheus("gin")
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		if path := c.FullPath(); path != "" {
			return path
		}
		return "unmatched"
	}
	p.Use(r)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	shopRepo := infraRepo.NewBarbershopGormRepository(d.DB)
	barberRepo := infraRepo.NewBarberGormRepository(d.DB)
	serviceRepo := infraRepo.NewServiceGormRepository(d.DB)
	reviewRepo := infraRepo.NewReviewGormRepository(d.DB)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)

	// ======================================================
	// SERVICES
	// ======================================================
	userSvc := service.NewUserService(userRepo, d.Tokens, d.Emails)
	shopSvc := service.NewBarbershopService(shopRepo, d.Tokens, d.Emails, cfg.DefaultTimezone)
	barberSvc := service.NewBarberService(barberRepo, shopRepo)
	catalogSvc := service.NewCatalogService(serviceRepo, shopRepo)
	reviewSvc := service.NewReviewService(reviewRepo, shopRepo)

	// ======================================================
	// USE CASES (APPOINTMENTS)
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(handlers.AppointmentDeps{
		Create:          ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit, nil),
		Cancel:          ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit, nil),
		Complete:        ucAppointment.NewCompleteAppointment(appointmentRepo, d.Audit, nil),
		List:            ucAppointment.NewListAppointments(appointmentRepo),
		Checkout:        ucAppointment.NewCheckoutAppointment(appointmentRepo, d.Payments, d.Audit),
		DefaultTimezone: cfg.DefaultTimezone,
	}, d.Log)

	// ======================================================
	// HANDLERS
	// ======================================================
	userHandler := handlers.NewUserHandler(userSvc, d.Photos, d.Log)
	shopHandler := handlers.NewBarbershopHandler(shopSvc, d.Photos, d.Audit, d.Log)
	catalogHandler := handlers.NewCatalogHandler(barberSvc, catalogSvc, d.Audit, d.Log)
	reviewHandler := handlers.NewReviewHandler(reviewSvc, d.Audit, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLog, d.Log)
	authHandler := handlers.NewAuthHandler(d.Google, userSvc, cfg.FrontendURL, cfg.IsProduction(), d.Log)
	publicHandler := handlers.NewPublicHandler()

	anyRole := middleware.Authenticate(d.Tokens)
	userOnly := middleware.Authenticate(d.Tokens, auth.RoleUser)
	shopOnly := middleware.Authenticate(d.Tokens, auth.RoleBarbershop)
	limited := middleware.RateLimit(d.Redis, cfg.RateLimitRequests, cfg.RateLimitWindow, d.Log)

	r.GET("/health", publicHandler.Health)
	r.NoRoute(publicHandler.NotFound)

	// ======================================================
	// OAUTH
	// ======================================================
	google := r.Group("/auth/google")
	{
		google.GET("", authHandler.GoogleStart)
		google.GET("/callback", authHandler.GoogleCallback)
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/register", limited, userHandler.Register)
		users.POST("/login", limited, userHandler.Login)
		users.GET("", anyRole, userHandler.List)

		users.GET("/profile", userOnly, userHandler.Profile)
		users.PUT("/profile", userOnly, userHandler.UpdateProfile)
		users.POST("/profile/photo", userOnly, userHandler.UploadPhoto)
	}

	shops := api.Group("/barbershops")
	{
		shops.POST("/register", limited, shopHandler.Register)
		shops.POST("/login", limited, shopHandler.Login)
		shops.GET("", shopHandler.List)

		shops.GET("/profile", shopOnly, shopHandler.Profile)
		shops.PUT("/profile", shopOnly, shopHandler.UpdateProfile)
		shops.POST("/profile/photo", shopOnly, shopHandler.UploadPhoto)
		shops.GET("/audit-logs", shopOnly, auditLogsHandler.List)

		shops.GET("/:id", shopHandler.Get)
	}

	barbers := api.Group("/barbers")
	{
		barbers.GET("/barbershop/:id", catalogHandler.ListBarbers)
		barbers.POST("", shopOnly, catalogHandler.CreateBarber)
		barbers.PUT("/:id", shopOnly, catalogHandler.UpdateBarber)
	}

	services := api.Group("/services")
	{
		services.GET("/barbershop/:id", catalogHandler.ListServices)
		services.POST("", shopOnly, catalogHandler.CreateService)
		services.PUT("/:id", shopOnly, catalogHandler.UpdateService)
	}

	appointments := api.Group("/appointments")
	{
		appointments.POST("", userOnly, appointmentHandler.Create)
		appointments.GET("/user", userOnly, appointmentHandler.ListForUser)
		appointments.GET("/barbershop/:id", shopOnly, appointmentHandler.ListForBarbershop)
		appointments.PATCH("/:id/cancel", anyRole, appointmentHandler.Cancel)
		appointments.PATCH("/:id/complete", shopOnly, appointmentHandler.Complete)
		appointments.POST("/:id/checkout", userOnly, appointmentHandler.Checkout)
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("/barbershop/:id", reviewHandler.ListByBarbershop)
		reviews.POST("", userOnly, reviewHandler.Create)
		reviews.PUT("/:id", userOnly, reviewHandler.Update)
	}
}
