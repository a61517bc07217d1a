// Command deadline-check scans for open tasks with approaching
// deadlines and emits a reminder notification for each. It is meant to
// run on a schedule, e.g. once a day from cron.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/phrazzld/taskhub-api/internal/config"
	"github.com/phrazzld/taskhub-api/internal/events"
	"github.com/phrazzld/taskhub-api/internal/notifier"
	"github.com/phrazzld/taskhub-api/internal/platform/logger"
	"github.com/phrazzld/taskhub-api/internal/platform/postgres"
	"github.com/phrazzld/taskhub-api/internal/service"
)

const runTimeout = 2 * time.Minute

func main() {
	if err := run(); err != nil {
		log.Fatalf("deadline check failed: %v", err)
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

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	taskStore := postgres.NewPostgresTaskStore(db, appLogger)
	groupStore := postgres.NewPostgresGroupStore(db, appLogger)

	emailNotifier := notifier.NewHTTPNotifier(cfg.Notifier.URL)
	sendTimeout := time.Duration(cfg.Notifier.TimeoutSeconds) * time.Second

	emitter := events.NewInMemoryEventEmitter(appLogger)
	emitter.RegisterHandler(notifier.NewEventNotificationHandler(emailNotifier, sendTimeout, appLogger))

	tasks := service.NewTaskService(db, taskStore, groupStore, emitter, cfg.Notifier.DefaultRecipient, appLogger)

	sent, err := tasks.SendDeadlineReminders(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to send deadline reminders: %w", err)
	}

	appLogger.Info("deadline check finished", "reminders_sent", sent)
	return nil
}
