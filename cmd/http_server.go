package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/satriajanaka/workforce-management/internal"
	"github.com/satriajanaka/workforce-management/internal/allocation"
	allocationPostgres "github.com/satriajanaka/workforce-management/internal/allocation/postgres"
	"github.com/satriajanaka/workforce-management/internal/auth"
	authPostgres "github.com/satriajanaka/workforce-management/internal/auth/postgres"
	allocationDatamodel "github.com/satriajanaka/workforce-management/internal/core/datamodel/allocation"
	employeeDatamodel "github.com/satriajanaka/workforce-management/internal/core/datamodel/employee"
	projectDatamodel "github.com/satriajanaka/workforce-management/internal/core/datamodel/project"
	userDatamodel "github.com/satriajanaka/workforce-management/internal/core/datamodel/user"
	"github.com/satriajanaka/workforce-management/internal/core/events"
	"github.com/satriajanaka/workforce-management/internal/dashboard"
	"github.com/satriajanaka/workforce-management/internal/employee"
	employeePostgres "github.com/satriajanaka/workforce-management/internal/employee/postgres"
	"github.com/satriajanaka/workforce-management/internal/matching"
	"github.com/satriajanaka/workforce-management/internal/project"
	projectPostgres "github.com/satriajanaka/workforce-management/internal/project/postgres"
	"github.com/satriajanaka/workforce-management/internal/transport/rest"
	"github.com/satriajanaka/workforce-management/internal/user"
	userPostgres "github.com/satriajanaka/workforce-management/internal/user/postgres"
	"github.com/satriajanaka/workforce-management/internal/utilization"
	"github.com/satriajanaka/workforce-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	gormSqlite "gorm.io/driver/sqlite"
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
	Config   *internal.Config
	GormDB   *gorm.DB
	DB       *sqlx.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

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
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.L()

	gormDB, sqlDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	eventBus := events.NewEventBus(log)
	registerAuditSubscribers(eventBus, log)

	// Repositories
	employeeRepo := employeePostgres.NewEmployeeRepository(gormDB)
	projectRepo := projectPostgres.NewProjectRepository(gormDB)
	allocationRepo := allocationPostgres.NewAllocationRepository(gormDB)
	userRepo := userPostgres.NewUserRepository(gormDB)
	authRepo := authPostgres.NewAuthRepository(gormDB)

	// Services
	engine := utilization.NewEngine(employeeRepo, allocationRepo, log)
	userService := user.NewService(userRepo, employeeRepo, log)
	employeeService := employee.NewService(employeeRepo, userService, engine, log)
	projectService := project.NewService(projectRepo, log)
	allocationService := allocation.NewService(allocationRepo, employeeRepo, projectRepo, engine, eventBus, log)
	matchingService := matching.NewService(employeeRepo, projectRepo, log)
	dashboardService := dashboard.NewService(employeeRepo, projectRepo, allocationRepo, log)

	tokenGenerator := auth.NewJWTTokenGenerator(
		config.Security.JWTAccessSecret,
		config.Security.JWTRefreshSecret,
		config.Security.AccessTokenTTL,
		config.Security.RefreshTokenTTL,
	)
	authService := auth.NewService(authRepo, tokenGenerator, config.Security.BCryptCost, log)

	handlers := rest.Handlers{
		Auth:        auth.NewHandler(authService),
		User:        user.NewHandler(userService),
		Employee:    employee.NewHandler(employeeService),
		Project:     project.NewHandler(projectService),
		Allocation:  allocation.NewHandler(allocationService),
		Utilization: utilization.NewHandler(engine),
		Matching:    matching.NewHandler(matchingService),
		Dashboard:   dashboard.NewHandler(dashboardService),
	}

	return &Dependencies{
		Config:   config,
		Logger:   log,
		GormDB:   gormDB,
		DB:       sqlDB,
		Router:   chi.NewRouter(),
		Handlers: handlers,
	}, nil
}

// registerAuditSubscribers writes every allocation mutation and status change
// to the application log, tagged with the acting user when the request was
// authenticated.
func registerAuditSubscribers(bus *events.EventBus, log *slog.Logger) {
	audit := func(ctx context.Context, event events.Event) error {
		log.Info("audit",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"actor_id", internal.UserIDFromContext(ctx),
			"payload", event.Payload())
		return nil
	}

	for _, eventType := range []string{
		events.EventTypeAllocationCreated,
		events.EventTypeAllocationUpdated,
		events.EventTypeAllocationDeleted,
		events.EventTypeStatusRecomputed,
	} {
		bus.Subscribe(eventType, audit)
	}
}

// initDB opens the database through GORM and wraps the underlying pool in
// sqlx for the health check. The DSN decides the driver: a postgres URL uses
// pgx, anything else is treated as a sqlite file.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, *sqlx.DB, error) {
	var (
		dialector  gorm.Dialector
		driverName string
	)
	if cfg.IsPostgres() {
		dialector = gormPostgres.Open(cfg.Source)
		driverName = "pgx"
	} else {
		dialector = gormSqlite.Open(cfg.Source)
		driverName = "sqlite3"
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	// The sqlite development database is schema-managed in process; postgres
	// deployments run the goose migrations instead.
	if !cfg.IsPostgres() {
		if err := gormDB.AutoMigrate(
			&userDatamodel.User{},
			&employeeDatamodel.Employee{},
			&projectDatamodel.Project{},
			&allocationDatamodel.Allocation{},
		); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to access db pool: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return gormDB, sqlx.NewDb(sqlDB, driverName), nil
}
