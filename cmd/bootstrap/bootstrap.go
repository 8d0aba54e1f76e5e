package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-admin/config"
	deliveryHttp "clinic-admin/internal/delivery/http"
	"clinic-admin/internal/delivery/http/handler"
	"clinic-admin/internal/delivery/http/middleware"
	"clinic-admin/internal/infrastructure/cache"
	"clinic-admin/internal/infrastructure/database"
	"clinic-admin/internal/repository"
	"clinic-admin/internal/service"
	"clinic-admin/internal/usecase"
	"clinic-admin/pkg/jwt"
	"clinic-admin/pkg/metrics"
	"clinic-admin/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const metricsNamespace = "clinic_admin"

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Usecases    Usecases
}

// Usecases exposes the usecases the command line drives directly.
type Usecases struct {
	Auth usecase.AuthUsecase
}

// Load reads configuration and builds the application logger.
func Load() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := setupLogger(cfg.Log)
	log.Info("Configuration loaded successfully")
	return cfg, log, nil
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.Log.DBLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	app.initialize()
	return app, nil
}

// Migrate runs a migration direction ("up", "down") against the configured database.
func Migrate(cfg *config.Config, log *logrus.Logger, direction string, steps int) error {
	migrator, err := database.NewMigrator(cfg.DB, log)
	if err != nil {
		return err
	}
	defer migrator.Close()

	switch direction {
	case "up":
		return migrator.Up()
	case "down":
		return migrator.Down(steps)
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
}

// MigrationVersion reports the applied schema version.
func MigrationVersion(cfg *config.Config, log *logrus.Logger) (uint, bool, bool, error) {
	migrator, err := database.NewMigrator(cfg.DB, log)
	if err != nil {
		return 0, false, false, err
	}
	defer migrator.Close()
	return migrator.Version()
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// initialize wires every layer and creates the HTTP server.
func (app *App) initialize() {
	cfg, db, redisClient, log := app.Config, app.DB, app.RedisClient, app.Log

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	collector := metrics.NewCollector(metricsNamespace)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	specializationRepo := repository.NewSpecializationRepository()
	doctorRepo := repository.NewDoctorRepository()
	departmentRepo := repository.NewDepartmentRepository()
	categoryRepo := repository.NewServiceCategoryRepository()
	medicalServiceRepo := repository.NewMedicalServiceRepository()
	departmentLinkRepo := repository.NewDoctorDepartmentRepository()
	serviceGrantRepo := repository.NewDoctorServiceCategoryRepository()
	scheduleRepo := repository.NewDoctorScheduleRepository()
	historyRepo := repository.NewAssignmentHistoryRepository()
	patientRepo := repository.NewPatientRepository()
	insurerRepo := repository.NewInsurerRepository()
	insuranceRepo := repository.NewPatientInsuranceRepository()
	receptionRepo := repository.NewReceptionRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	historyService := service.NewHistoryService(log, historyRepo)
	slotCache := service.NewSlotCache(redisClient, log, cfg.Schedule.SlotCacheTTL, collector)
	saveLocker := service.NewRedisLocker(redisClient, log)
	antiForgery := service.NewAntiForgeryStore(redisClient, log, cfg.Insurance.AntiForgeryTTL)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, auditLogRepo, jwtService, redisClient)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)
	specializationUsecase := usecase.NewSpecializationUsecase(db, log, specializationRepo)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, specializationRepo, departmentLinkRepo, serviceGrantRepo, scheduleRepo, auditService, slotCache)
	departmentUsecase := usecase.NewDepartmentUsecase(db, log, departmentRepo)
	catalogUsecase := usecase.NewServiceCatalogUsecase(db, log, departmentRepo, categoryRepo, medicalServiceRepo)
	assignmentUsecase := usecase.NewDoctorAssignmentUsecase(db, log, doctorRepo, departmentRepo, categoryRepo, departmentLinkRepo, serviceGrantRepo, historyService)
	historyUsecase := usecase.NewAssignmentHistoryUsecase(db, log, historyRepo)
	scheduleUsecase := usecase.NewDoctorScheduleUsecase(db, log, scheduleRepo, doctorRepo, receptionRepo, auditService, slotCache, cfg.Schedule.MaxRangeDays)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, auditService)
	insurerUsecase := usecase.NewInsurerUsecase(db, log, insurerRepo)
	insuranceUsecase := usecase.NewInsuranceUsecase(db, log, patientRepo, insurerRepo, insuranceRepo, auditService, saveLocker, cfg.Insurance.SaveLockTTL, collector)
	receptionUsecase := usecase.NewReceptionUsecase(db, log, usecase.ReceptionRepositories{
		Reception:  receptionRepo,
		Patient:    patientRepo,
		Insurance:  insuranceRepo,
		Department: departmentRepo,
		Doctor:     doctorRepo,
		Link:       departmentLinkRepo,
		Grant:      serviceGrantRepo,
		Category:   categoryRepo,
		Service:    medicalServiceRepo,
		Schedule:   scheduleRepo,
	}, auditService, slotCache)
	app.Usecases = Usecases{Auth: authUsecase}

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:           handler.NewAuthHandler(authUsecase, customValidator, jwtService),
		AuditLog:       handler.NewAuditLogHandler(auditLogUsecase),
		Specialization: handler.NewSpecializationHandler(specializationUsecase, customValidator),
		Doctor:         handler.NewDoctorHandler(doctorUsecase, customValidator),
		Department:     handler.NewDepartmentHandler(departmentUsecase, customValidator),
		Catalog:        handler.NewServiceCatalogHandler(catalogUsecase, customValidator),
		Assignment:     handler.NewDoctorAssignmentHandler(assignmentUsecase, historyUsecase, customValidator),
		Schedule:       handler.NewDoctorScheduleHandler(scheduleUsecase, customValidator),
		Insurer:        handler.NewInsurerHandler(insurerUsecase, customValidator),
		Reception:      handler.NewReceptionHandler(patientUsecase, receptionUsecase, customValidator),
		Insurance:      handler.NewInsuranceHandler(insuranceUsecase, antiForgery, customValidator),
	}

	// Initialize middleware
	middlewares := deliveryHttp.Middlewares{
		Auth:        middleware.NewAuthMiddleware(jwtService, redisClient, log),
		CORS:        middleware.NewCORSMiddleware(cfg.App.CORSOrigins),
		AntiForgery: middleware.NewAntiForgeryMiddleware(antiForgery, log),
	}

	var metricsHandler http.Handler
	if cfg.App.MetricsEnabled {
		middlewares.Metrics = middleware.NewMetricsMiddleware(collector)
		metricsHandler = collector.Handler()
	}

	router := deliveryHttp.NewRouter(handlers, middlewares, metricsHandler)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
