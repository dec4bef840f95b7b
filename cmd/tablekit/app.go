package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/alexanderjulianmartinez/tablekit/internal/catalog"
	"github.com/alexanderjulianmartinez/tablekit/internal/cdc"
	"github.com/alexanderjulianmartinez/tablekit/internal/cdc/kafka"
	"github.com/alexanderjulianmartinez/tablekit/internal/config"
	"github.com/alexanderjulianmartinez/tablekit/internal/database"
	"github.com/alexanderjulianmartinez/tablekit/internal/logging"
)

// app is the per-command environment: config, logger, connection, catalog
// and event publisher.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	db      *sql.DB
	catalog *catalog.Catalog
	events  cdc.Publisher
	closers []func()
}

func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to config.yaml")
	return fs, configPath
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadConfig(path)
}

func newApp(ctx context.Context, configPath string, stderr io.Writer) (*app, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger, closeLog := logging.SetupLogger(cfg.Logging, stderr)
	a := &app{cfg: cfg, logger: logger, events: cdc.Nop{}}
	a.closers = append(a.closers, closeLog)

	db, dialect, err := database.Open(ctx, cfg.Database)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.db = db
	a.closers = append(a.closers, func() {
		if err := db.Close(); err != nil {
			logger.Error("close database", "error", err)
		}
	})
	a.catalog = catalog.New(dialect)

	if cfg.Events.Enabled() {
		pub, err := kafka.New(cfg.Events, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.events = pub
		a.closers = append(a.closers, func() {
			if err := pub.Close(); err != nil {
				logger.Warn("close event publisher", "error", err)
			}
		})
	}

	logger.Debug("catalog opened", "driver", a.catalog.Dialect().Name(), "events", a.events.Name())
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// inTx runs fn in a transaction, committing on success and rolling back on
// any error.
func (a *app) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			a.logger.Error("rollback failed", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// publish sends events after a commit. Failures are logged only; the rows
// are already stored.
func (a *app) publish(ctx context.Context, events ...cdc.Event) {
	if err := a.events.Publish(ctx, events...); err != nil {
		a.logger.Warn("publish change events failed", "publisher", a.events.Name(), "error", err)
	}
}

// tableConfig returns the configured entry for name, if any.
func (a *app) tableConfig(name string) (config.TableConfig, bool) {
	for _, t := range a.cfg.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return config.TableConfig{}, false
}
