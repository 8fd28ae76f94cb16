package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/ca-facilities/custodial-command/internal/common"
)

// Dialect selects the SQL flavor for DDL and placeholder binding.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// DB wraps a database handle with its dialect. Postgres connections keep a
// pgx pool for health checks and pool tuning; SQLite has none.
type DB struct {
	SQL     *sql.DB
	Dialect Dialect
	Pool    *pgxpool.Pool
}

// Open connects to the configured store. Postgres goes through a pgx pool
// wrapped as *sql.DB; SQLite (including ":memory:") uses the pure-Go driver.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Driver == "sqlite" {
		return OpenSQLite(cfg.DSN)
	}
	return openPostgres(ctx, cfg, logger)
}

func openPostgres(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	logger.Info("connecting to database", "driver", "postgres")
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database config", "error", err)
		return nil, err
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "custodial-command"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = cfg.StatementTimeout.String()
	}

	dialCtx := ctx
	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}

	db := stdlib.OpenDBFromPool(pool)
	logger.Info("successfully connected to database")
	return &DB{SQL: db, Dialect: Postgres, Pool: pool}, nil
}

// OpenSQLite opens a SQLite database. Use ":memory:" for tests and the
// importer's in-memory mode.
func OpenSQLite(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// a single connection keeps in-memory databases coherent
	db.SetMaxOpenConns(1)
	return &DB{SQL: db, Dialect: SQLite}, nil
}

// Close releases the underlying handles.
func (d *DB) Close() {
	if d.SQL != nil {
		_ = d.SQL.Close()
	}
	if d.Pool != nil {
		d.Pool.Close()
	}
}

// HealthCheck pings the store within the given timeout.
func HealthCheck(ctx context.Context, d *DB, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if d.Pool != nil {
		return d.Pool.Ping(ctx)
	}
	return d.SQL.PingContext(ctx)
}

var rePlaceholder = regexp.MustCompile(`\$\d+`)

// rebind rewrites $N placeholders to ? for SQLite. Statements in this
// package use ascending, non-repeated placeholders, which makes the rewrite
// positional-safe.
func (d *DB) rebind(query string) string {
	if d.Dialect == Postgres {
		return query
	}
	return rePlaceholder.ReplaceAllString(query, "?")
}
