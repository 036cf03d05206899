package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quest_nos_backend/internal/config"
	"quest_nos_backend/internal/controller"
	"quest_nos_backend/internal/model"
	"quest_nos_backend/internal/repository"
	"quest_nos_backend/internal/service"
	"quest_nos_backend/pkg/database"
	"quest_nos_backend/pkg/logger"
	"quest_nos_backend/pkg/monitoring"
	"quest_nos_backend/pkg/security"
	"quest_nos_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services

	reaperStop chan struct{}
}

type repositories struct {
	candidate  *repository.CandidateRepository
	subject    *repository.SubjectRepository
	assessment *repository.AssessmentRepository
	adminUser  *repository.AdminUserRepository
	report     *repository.ReportRepository
	branding   *repository.BrandingRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	subject    *service.SubjectService
	candidate  *service.CandidateService
	ipLookup   *service.IPLookupService
	assessment *service.AssessmentService
	report     *service.ReportService
	branding   *service.BrandingService
}

type controllers struct {
	auth       *controller.AuthController
	candidate  *controller.CandidateController
	assessment *controller.AssessmentController
	report     *controller.ReportController
	branding   *controller.BrandingController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		candidate:  repository.NewCandidateRepository(db),
		subject:    repository.NewSubjectRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		adminUser:  repository.NewAdminUserRepository(db),
		report:     repository.NewReportRepository(db),
		branding:   repository.NewBrandingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.adminUser, cfg)
	s.subject = service.NewSubjectService(repos.subject, rdb)
	s.candidate = service.NewCandidateService(repos.candidate, repos.report)
	s.ipLookup = service.NewIPLookupService(&cfg.IPLookup)
	s.assessment = service.NewAssessmentService(repos.assessment, s.candidate, s.subject, s.ipLookup)
	s.report = service.NewReportService(repos.report)
	s.branding = service.NewBrandingService(repos.branding, s.storage, rdb, cfg)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		candidate:  controller.NewCandidateController(s.candidate),
		assessment: controller.NewAssessmentController(s.assessment),
		report:     controller.NewReportController(s.report, s.candidate),
		branding:   controller.NewBrandingController(s.branding),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// featureSet resolves the active white-label capabilities, falling back to
// the configured defaults when the lookup fails.
func (a *App) featureSet() model.FeatureSet {
	fs, err := a.services.branding.Features(context.Background())
	if err != nil {
		logger.Log.Warn("feature lookup failed, using configured defaults", zap.Error(err))
		return model.ParseFeatureSet(a.Config.Branding.EnabledFeatures)
	}
	return fs
}

// ReloadConfig applies the hot-reloadable settings from a rewritten config
// file; today that is only the white-label defaults.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.services.branding.ReloadDefaults(cfg.Branding)
	logger.Log.Info("configuration reloaded", zap.String("company", cfg.Branding.CompanyName))
}

// startReaper sweeps stale in_progress assessments to abandoned on a fixed
// interval.
func (a *App) startReaper(s *services, cfg *config.Config) {
	if !cfg.Reaper.Enabled {
		return
	}

	a.reaperStop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(cfg.Reaper.SweepMinutes)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.assessment.ReapStale(cfg.Reaper.StaleAfter); err != nil {
					logger.Log.Error("stale assessment sweep failed", zap.Error(err))
				}
			case <-a.reaperStop:
				return
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.ForceMigrate || cfg.Server.Mode != "release"
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	// Every questionnaire section must resolve to a seeded subject before the
	// server accepts submissions.
	if err := services.subject.ValidateMapping(context.Background()); err != nil {
		logger.Log.Fatal("section-to-subject mapping is incomplete", zap.Error(err))
	}

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("quest-nos", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startReaper(services, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.reaperStop != nil {
		close(a.reaperStop)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
