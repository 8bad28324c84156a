package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/quenchd/quench/internal/config"
	"github.com/quenchd/quench/internal/domain/hydration"
	"github.com/quenchd/quench/internal/domain/reminder"
	"github.com/quenchd/quench/internal/jsonfile"
	"github.com/quenchd/quench/internal/notify"
	"github.com/quenchd/quench/internal/repository"
	"github.com/quenchd/quench/internal/sqlite"
	"github.com/quenchd/quench/internal/transport"
)

const saveTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	snapshots, cleanup, err := openSnapshotStore(cfg.Storage)
	if err != nil {
		logger.Error("failed to open snapshot store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	svc := hydration.NewService(logger)
	restoreState(logger, snapshots, svc)

	// Persist after every mutation; failures are logged and the next
	// mutation retries naturally.
	svc.Subscribe(func(ev hydration.Event) {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := snapshots.Save(ctx, &ev.State); err != nil {
			logger.Error("failed to save snapshot", "event", ev.Kind, "error", err)
		}
	})

	gateway := notify.NewTimerGateway(newNotifier(cfg.Notify, logger), logger)
	defer gateway.Close()

	sched := reminder.NewScheduler(gateway, svc, logger)

	gateway.OnFire(func(id string) {
		switch id {
		case reminder.NotificationReminder:
			sched.OnReminderFired()
		case reminder.NotificationRollover:
			now := time.Now()
			svc.PurgeExpired(now)
			scheduleRollover(gateway, logger, now)
		}
	})

	now := time.Now()
	svc.PurgeExpired(now)
	sched.RecomputeInitial(context.Background(), now)
	scheduleRollover(gateway, logger, now)

	router := transport.NewRouter(transport.Services{
		State:     svc,
		Reminders: sched,
		Logger:    logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func openSnapshotStore(cfg config.StorageConfig) (repository.SnapshotRepository, func(), error) {
	switch cfg.Backend {
	case "file":
		if err := ensureDir(cfg.Path); err != nil {
			return nil, nil, err
		}
		return jsonfile.NewSnapshotRepository(cfg.Path), func() {}, nil
	case "sqlite":
		if err := ensureDir(cfg.Path); err != nil {
			return nil, nil, err
		}
		db, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewSnapshotRepository(db), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// restoreState loads the persisted snapshot into the service. A missing
// snapshot means first run; a corrupt one falls back to defaults.
func restoreState(logger *slog.Logger, snapshots repository.SnapshotRepository, svc *hydration.Service) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	snap, err := snapshots.Load(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		logger.Info("no snapshot found, starting with defaults")
		return
	}
	if err != nil {
		logger.Warn("failed to load snapshot, starting with defaults", "error", err)
		return
	}
	svc.Restore(snap)
	logger.Info("snapshot restored", "records", len(snap.Records))
}

func newNotifier(cfg config.NotifyConfig, logger *slog.Logger) notify.Notifier {
	if cfg.Backend == "log" {
		return notify.LogNotifier{Logger: logger}
	}
	return notify.DesktopNotifier{}
}

func scheduleRollover(gateway *notify.TimerGateway, logger *slog.Logger, now time.Time) {
	at := hydration.NextRollover(now)
	err := gateway.Schedule(context.Background(), reminder.NotificationRollover, at,
		reminder.RolloverTitle, reminder.RolloverBody)
	if err != nil {
		logger.Warn("scheduling rollover failed", "error", err)
		return
	}
	logger.Info("rollover scheduled", "at", at)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
