// Package cli implements the bptrack command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jwulff/bptrack/internal/alert"
	"github.com/jwulff/bptrack/internal/config"
	"github.com/jwulff/bptrack/internal/logging"
	"github.com/jwulff/bptrack/internal/readings"
	"github.com/jwulff/bptrack/internal/storage"
	"github.com/jwulff/bptrack/internal/storage/memory"
	"github.com/jwulff/bptrack/internal/storage/sqlite"
	"github.com/jwulff/bptrack/internal/storage/valkey"
)

// now is the clock used for new readings, "today" and alert days.
var now = time.Now

// app is the wired core for one command invocation.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	kv       storage.KV
	readings *readings.Store
	alerts   *alert.Manager
	logFile  io.Closer
}

// openApp loads config, opens the configured backend, loads both stores and
// runs an initial trend evaluation so the active alert reflects stored data.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, logFile := logging.New(cfg.Log)
	a := &app{cfg: cfg, logger: logger, logFile: logFile}

	a.kv, err = openKV(ctx, cfg.Storage)
	if err != nil {
		logFile.Close()
		return nil, err
	}
	logger.Debug("storage opened", "driver", cfg.Storage.Driver)

	a.readings, err = readings.Open(ctx, a.kv, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load readings: %w", err)
	}

	a.alerts, err = alert.NewManager(ctx, a.kv, alert.WithClock(now), alert.WithLogger(logger))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load alerts: %w", err)
	}

	a.readings.Subscribe(a.alerts.Evaluate)
	a.alerts.Evaluate(a.readings.All())

	return a, nil
}

func openKV(ctx context.Context, cfg config.StorageConfig) (storage.KV, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverValkey:
		store, err := valkey.Dial(ctx, cfg.ValkeyAddr, cfg.KeyPrefix)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		store, err := sqlite.NewFileStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Close releases the backend and the log file.
func (a *app) Close() error {
	var errs []error
	if a.kv != nil {
		errs = append(errs, a.kv.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}

// withApp runs fn against a freshly opened app and closes it afterwards.
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
