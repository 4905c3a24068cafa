package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/grievance-management/internal"
	"github.com/frahmantamala/grievance-management/internal/ai"
	"github.com/frahmantamala/grievance-management/internal/auth"
	authpostgres "github.com/frahmantamala/grievance-management/internal/auth/postgres"
	"github.com/frahmantamala/grievance-management/internal/core/events"
	"github.com/frahmantamala/grievance-management/internal/feedback"
	feedbackpostgres "github.com/frahmantamala/grievance-management/internal/feedback/postgres"
	"github.com/frahmantamala/grievance-management/internal/grievance"
	grievancepostgres "github.com/frahmantamala/grievance-management/internal/grievance/postgres"
	"github.com/frahmantamala/grievance-management/internal/notification"
	"github.com/frahmantamala/grievance-management/internal/transport/rest"
	"github.com/frahmantamala/grievance-management/internal/uploads"
	"github.com/frahmantamala/grievance-management/internal/user"
	userpostgres "github.com/frahmantamala/grievance-management/internal/user/postgres"
	"github.com/frahmantamala/grievance-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	SQLDB  *sql.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.SQLDB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	appLogger := logger.L()

	gormDB, sqlDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	store, err := uploads.NewStore(config.Uploads.Dir, config.Uploads.MaxSizeBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upload store: %w", err)
	}

	// Repositories
	authRepo := authpostgres.NewRepository(gormDB)
	userRepo := userpostgres.NewUserRepository(gormDB)
	grievanceRepo := grievancepostgres.NewGrievanceRepository(gormDB)
	feedbackRepo := feedbackpostgres.NewFeedbackRepository(gormDB)

	// Auth
	tokenGen := auth.NewJWTTokenGenerator(config.Security.JWTSecret)
	if config.Security.TokenDuration > 0 {
		tokenGen.TokenTTL = config.Security.TokenDuration
	}
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost, appLogger)
	authHandler := auth.NewHandler(authService)

	// Users
	userService := user.NewService(userRepo, appLogger)
	userHandler := user.NewHandler(userService)

	// AI
	analyzer := ai.NewAnalyzer(
		openai.NewClient(config.AI.APIKey),
		config.AI.Model,
		config.AI.Timeout,
		appLogger,
	)
	aiHandler := ai.NewHandler(analyzer)

	// Notifications: mail dispatcher behind the event bus
	bus := events.NewEventBus(appLogger)
	mailer := notification.NewSMTPMailer(config.Mail)
	notification.NewEventHandler(mailer, appLogger).Register(bus)

	// Grievances
	var insights grievance.InsightsGenerator
	if config.AI.APIKey != "" {
		insights = analyzer
	}
	grievanceService := grievance.NewService(grievanceRepo, userService, insights, bus, appLogger)
	grievanceHandler := grievance.NewHandler(grievanceService, store)

	// Feedback
	feedbackService := feedback.NewService(feedbackRepo, appLogger)
	feedbackHandler := feedback.NewHandler(feedbackService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, sqlDB, authHandler, userHandler, grievanceHandler, feedbackHandler, aiHandler, appLogger)

	return &Dependencies{
		Config: config,
		SQLDB:  sqlDB,
		GormDB: gormDB,
		Router: router,
		Logger: appLogger,
	}, nil
}

// initDB opens the database through gorm and returns the underlying *sql.DB
// for health checks. Postgres connections are verified through sqlx first so
// a bad DSN fails fast at startup.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, *sql.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = gormsqlite.Open(cfg.Source)
	default:
		conn, err := sqlx.Connect("pgx", cfg.Source)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
		}
		if err := conn.Ping(); err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		_ = conn.Close()
		dialector = gormpostgres.Open(cfg.Source)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to access underlying db: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return gormDB, sqlDB, nil
}
