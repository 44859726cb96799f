// Package sqlstore opens the SQL catalog database (sqlite3 or postgres).
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

// Dialect abstracts the differences between supported SQL engines.
type Dialect string

// Supported dialects. Values match the database/sql driver names.
const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "postgres"
)

// ParseDialect maps a config driver name to a Dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch driver {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pq":
		return Postgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %q", driver)
	}
}

// Placeholder returns the n-th (1-based) bind parameter.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Config holds connection parameters.
type Config struct {
	Driver       string
	DSN          string
	MaxOpenConns int
}

// Open connects and pings the database. For sqlite the connection pool is
// limited to MaxOpenConns (default 1) and foreign keys are enabled.
func Open(ctx context.Context, cfg Config) (*sql.DB, Dialect, error) {
	d, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, "", err
	}
	if cfg.DSN == "" {
		return nil, "", fmt.Errorf("dsn is required for %s", d)
	}

	conn, err := sql.Open(string(d), cfg.DSN)
	if err != nil {
		return nil, "", fmt.Errorf("open database: %w", err)
	}

	switch d {
	case SQLite:
		maxOpen := cfg.MaxOpenConns
		if maxOpen <= 0 {
			maxOpen = 1
		}
		conn.SetMaxOpenConns(maxOpen)
	case Postgres:
		if cfg.MaxOpenConns > 0 {
			conn.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		conn.SetConnMaxIdleTime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, "", fmt.Errorf("ping %s: %w", d, err)
	}

	if d == SQLite {
		if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			_ = conn.Close()
			return nil, "", fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	return conn, d, nil
}
