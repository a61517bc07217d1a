// Package main implements the entry point for the TaskHub API server,
// which tracks users, groups, memberships, and tasks, and emits email
// notifications for completed tasks and approaching deadlines.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/phrazzld/taskhub-api/internal/config"
	"github.com/phrazzld/taskhub-api/internal/events"
	"github.com/phrazzld/taskhub-api/internal/notifier"
	"github.com/phrazzld/taskhub-api/internal/platform/logger"
	"github.com/phrazzld/taskhub-api/internal/platform/postgres"
	"github.com/phrazzld/taskhub-api/internal/service"
	"github.com/phrazzld/taskhub-api/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"api_key_check_enabled", len(cfg.Auth.APIKeyDigests) > 0)

	db, err := openDatabase(cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("failed to close database", "error", closeErr)
		}
	}()

	if err := applyMigrations(db, appLogger); err != nil {
		return err
	}

	services := buildServices(db, cfg, appLogger)
	router := buildRouter(services, cfg)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case sig := <-stop:
		appLogger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	appLogger.Info("server stopped")
	return nil
}

// openDatabase connects via the pgx stdlib driver and verifies the
// connection before the server starts accepting requests.
func openDatabase(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// applyMigrations brings the schema up to date from the embedded
// migration files.
func applyMigrations(db *sql.DB, log *slog.Logger) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	log.Info("database schema is up to date", "version", version)
	return nil
}

// appServices bundles the service layer handed to the router.
type appServices struct {
	users       service.UserService
	groups      service.GroupService
	memberships service.MembershipService
	tasks       service.TaskService
}

// buildServices wires stores, the event emitter, and the notification
// pipeline into the service layer.
func buildServices(db *sql.DB, cfg *config.Config, log *slog.Logger) appServices {
	userStore := postgres.NewPostgresUserStore(db, log)
	groupStore := postgres.NewPostgresGroupStore(db, log)
	membershipStore := postgres.NewPostgresMembershipStore(db, log)
	taskStore := postgres.NewPostgresTaskStore(db, log)

	emailNotifier := notifier.NewHTTPNotifier(cfg.Notifier.URL)
	sendTimeout := time.Duration(cfg.Notifier.TimeoutSeconds) * time.Second

	emitter := events.NewInMemoryEventEmitter(log)
	emitter.RegisterHandler(notifier.NewEventNotificationHandler(emailNotifier, sendTimeout, log))

	return appServices{
		users:       service.NewUserService(db, userStore, 0, log),
		groups:      service.NewGroupService(db, groupStore, userStore, membershipStore, log),
		memberships: service.NewMembershipService(db, membershipStore, userStore, groupStore, log),
		tasks:       service.NewTaskService(db, taskStore, groupStore, emitter, cfg.Notifier.DefaultRecipient, log),
	}
}
