package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/udyogjagat/job-board/docs"

	"github.com/udyogjagat/job-board/internal/api/handler"
	"github.com/udyogjagat/job-board/internal/api/middleware"
	"github.com/udyogjagat/job-board/internal/core/ports"
	"github.com/udyogjagat/job-board/internal/core/service"
	"github.com/udyogjagat/job-board/internal/infrastructure/config"
	mongodb "github.com/udyogjagat/job-board/internal/infrastructure/db/mongo"
	redisdb "github.com/udyogjagat/job-board/internal/infrastructure/db/redis"
	"github.com/udyogjagat/job-board/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, notifier ports.Notifier, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("jobboard"))

	// --- Repositories ---
	accountRepo := mongodb.NewAccountRepository(db)
	referralRepo := mongodb.NewReferralRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	companyRepo := mongodb.NewCompanyRepository(db)

	// The gate reads account state through this cache; approvals and
	// rejections invalidate it so status changes bite immediately.
	snapshots := redisdb.NewAccountSnapshotCache(rdb, accountRepo, log)

	// --- Services ---
	authService := service.NewAuthService(accountRepo, cfg.JWTSecret, cfg.SessionTTL, log)
	approvalService := service.NewApprovalService(accountRepo, referralRepo, notifier, snapshots, cfg.BaseURL, log)
	accountService := service.NewAccountService(accountRepo, log)
	jobService := service.NewJobService(jobRepo, companyRepo, accountRepo, log)

	// --- Auth state machine: session decode, then the gate ---
	e.Use(middleware.Session(cfg.JWTSecret))
	e.Use(middleware.Gate(middleware.GateConfig{
		Routes:   protectedRoutes,
		Public:   publicRoutes,
		Accounts: snapshots,
		Logger:   log,
	}))

	// --- Handlers ---
	limiter := redisdb.NewLoginLimiter(rdb)
	authHandler := handler.NewAuthHandler(authService, limiter, log)
	adminHandler := handler.NewAdminHandler(approvalService, accountService)
	jobHandler := handler.NewJobHandler(jobService)
	profileHandler := handler.NewProfileHandler(accountService)

	// --- Auth routes ---
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/register", authHandler.Register)

	// --- Admin routes ---
	e.GET("/api/admin/users", adminHandler.ListUsers)
	e.PUT("/api/admin/users", adminHandler.UpdateUser)
	e.GET("/api/admin/users/:id/referrals", adminHandler.ReferralHistory)

	// --- Job routes ---
	e.GET("/api/jobs", jobHandler.Search)
	e.POST("/api/jobs", jobHandler.Create)
	e.GET("/api/jobs/posted-by-user", jobHandler.ListPostedBy)
	e.GET("/api/jobs/:id", jobHandler.Get)
	e.PUT("/api/jobs/:id", jobHandler.Update)
	e.DELETE("/api/jobs/:id", jobHandler.Delete)
	e.POST("/api/jobs/:id/apply", jobHandler.Apply)
	e.GET("/api/jobs/:id/applicants", jobHandler.Applicants)

	// --- Profile routes ---
	e.GET("/api/profile", profileHandler.Get)
	e.PUT("/api/profile", profileHandler.Update)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e
}
