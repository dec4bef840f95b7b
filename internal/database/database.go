// Package database opens the catalog connection described by the config and
// pairs it with the matching dialect.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/alexanderjulianmartinez/tablekit/internal/config"
	"github.com/alexanderjulianmartinez/tablekit/internal/source"
	"github.com/alexanderjulianmartinez/tablekit/internal/source/mysql"
	"github.com/alexanderjulianmartinez/tablekit/internal/source/sqlite"
)

const pingTimeout = 5 * time.Second

// Open connects to the configured engine. The caller owns the returned
// *sql.DB and must close it.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, source.Dialect, error) {
	var (
		driver, dsn string
		dialect     source.Dialect
	)
	switch cfg.Driver {
	case "sqlite", "":
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create database directory: %w", err)
		}
		driver, dsn = sqlite.DriverName, cfg.Path()
		dialect = sqlite.NewInspector()
	case "mysql":
		schema, err := mysqlSchema(cfg)
		if err != nil {
			return nil, nil, err
		}
		driver, dsn = "mysql", cfg.DSN
		dialect = mysql.NewInspector(schema)
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("%s ping failed: %w", dialect.Name(), err)
	}
	return db, dialect, nil
}

// mysqlSchema returns the configured schema, falling back to the database
// named in the DSN.
func mysqlSchema(cfg config.DatabaseConfig) (string, error) {
	parsed, err := gomysql.ParseDSN(cfg.DSN)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	if cfg.Schema != "" {
		return cfg.Schema, nil
	}
	return parsed.DBName, nil
}
