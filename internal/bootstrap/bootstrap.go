package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/dromero/aulasync/docs" // Import generated swagger docs
	appAuth "github.com/dromero/aulasync/internal/app/auth"
	appControllers "github.com/dromero/aulasync/internal/app/controllers"
	appMigrations "github.com/dromero/aulasync/internal/app/migrations"
	appRepos "github.com/dromero/aulasync/internal/app/repositories"
	appRoutes "github.com/dromero/aulasync/internal/app/routes"
	appServices "github.com/dromero/aulasync/internal/app/services"
	"github.com/dromero/aulasync/internal/config"
	"github.com/dromero/aulasync/internal/db"
	appMiddleware "github.com/dromero/aulasync/internal/middleware"
	pkgAuth "github.com/dromero/aulasync/internal/pkg/auth"
	"github.com/dromero/aulasync/internal/pkg/email"
	"github.com/dromero/aulasync/internal/pkg/filestorage"
	"github.com/dromero/aulasync/internal/pkg/helpers"
	"github.com/dromero/aulasync/internal/pkg/logger"
	"github.com/dromero/aulasync/internal/pkg/websocket"
	"github.com/dromero/aulasync/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            *appServices.AuthService
	ClassService           *appServices.ClassService
	InvitationService      *appServices.InvitationService
	PostService            *appServices.PostService
	SubmissionService      *appServices.SubmissionService
	NotificationService    *appServices.NotificationService
	ExportService          *appServices.ExportService
	AuthController         *appControllers.AuthController
	ClassController        *appControllers.ClassController
	InvitationController   *appControllers.InvitationController
	PostController         *appControllers.PostController
	SubmissionController   *appControllers.SubmissionController
	NotificationController *appControllers.NotificationController
	ExportController       *appControllers.ExportController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	AuthzService           *appAuth.AuthorizationService
	Hub                    *websocket.Hub
	WSHandler              *websocket.Handler
	EmailService           email.EmailService
	Logger                 zerolog.Logger
	FileStorage            *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create Default Data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	// Initialize File Storage
	// Configure baseURL to match the static file serving endpoint
	var err error
	baseURL := "http://localhost:" + cfg.Server.Port
	fileStorageBaseURL := baseURL + "/uploads" // This must match the static file serving URL path
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.UserRepository,
		deps.Repos.ClassRepository,
		deps.Repos.PostRepository,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.Email.Host,
		Port:      cfg.Email.Port,
		Username:  cfg.Email.Username,
		Password:  cfg.Email.Password,
		FromName:  cfg.Email.FromName,
		FromEmail: cfg.Email.FromEmail,
		UseTLS:    cfg.Email.UseTLS,
		BaseURL:   cfg.Email.BaseURL,
	}, lgr)

	// Notification hub runs for the lifetime of the process
	deps.Hub = websocket.NewHub(lgr)
	go deps.Hub.Run()
	deps.WSHandler = websocket.NewHandler(deps.Hub, lgr)

	// Initialize services
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)

	deps.NotificationService = appServices.NewNotificationService(
		deps.Repos.NotificationRepository,
		deps.Hub,
		deps.EmailService,
		lgr,
	)

	deps.ClassService = appServices.NewClassService(
		deps.Repos.ClassRepository,
		deps.Repos.ClassMemberRepository,
		deps.Repos.UserRepository,
		database,
		deps.AuthzService,
		lgr,
	)

	deps.InvitationService = appServices.NewInvitationService(
		deps.Repos.InvitationRepository,
		deps.Repos.ClassRepository,
		deps.Repos.ClassMemberRepository,
		deps.Repos.UserRepository,
		deps.NotificationService,
		database,
		deps.AuthzService,
		lgr,
	)

	deps.PostService = appServices.NewPostService(
		deps.Repos.PostRepository,
		deps.Repos.ClassMemberRepository,
		deps.Repos.FileRepository,
		deps.NotificationService,
		database,
		deps.AuthzService,
		lgr,
	)

	deps.SubmissionService = appServices.NewSubmissionService(
		deps.Repos.SubmissionRepository,
		deps.Repos.PostRepository,
		deps.Repos.ClassMemberRepository,
		deps.Repos.UserRepository,
		deps.Repos.FileRepository,
		deps.NotificationService,
		database,
		deps.AuthzService,
		lgr,
	)

	deps.ExportService = appServices.NewExportService(
		deps.Repos.ClassRepository,
		deps.Repos.ClassMemberRepository,
		deps.Repos.PostRepository,
		deps.Repos.SubmissionRepository,
		deps.AuthzService,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	// Initialize controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.ClassController = appControllers.NewClassController(deps.ClassService, lgr)
	deps.InvitationController = appControllers.NewInvitationController(deps.InvitationService, lgr)
	deps.PostController = appControllers.NewPostController(deps.PostService, deps.FileStorage, deps.Repos.FileRepository, lgr)
	deps.SubmissionController = appControllers.NewSubmissionController(deps.SubmissionService, deps.FileStorage, deps.Repos.FileRepository, lgr)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService, lgr)
	deps.ExportController = appControllers.NewExportController(deps.ExportService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), gin.Recovery())

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ClassController,
		deps.InvitationController,
		deps.PostController,
		deps.SubmissionController,
		deps.NotificationController,
		deps.ExportController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
