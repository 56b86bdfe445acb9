package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hafljin/inquiry-automation/config"
	"github.com/hafljin/inquiry-automation/internal/logger"
	"github.com/hafljin/inquiry-automation/internal/metrics"
)

// ErrNotConfigured is returned by reads when no DATABASE_URL was given
var ErrNotConfigured = errors.New("database not configured")

const statementTimeout = 30 * time.Second

// DB wraps an optional pgx pool. Usage totals are only persisted when it is configured.
type DB struct {
	pool *pgxpool.Pool
	cfg  config.DatabaseConfig
}

// New creates a new database connection
func New(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	if cfg.URL == "" {
		logger.Info("DATABASE_URL not set; usage totals stay in Redis or memory")
		return &DB{pool: nil, cfg: cfg}, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime

	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		logger.Debug("Database connection established")
		return nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	db := &DB{pool: pool, cfg: cfg}

	go db.collectMetrics(ctx)

	logger.Info("Database connection established",
		"max_conns", cfg.MaxConns,
		"min_conns", cfg.MinConns,
	)

	return db, nil
}

// NewFromPool wraps an existing pool
func NewFromPool(pool *pgxpool.Pool) *DB {
	return &DB{pool: pool}
}

// Close closes the database connection
func (d *DB) Close(ctx context.Context) {
	if d.pool != nil {
		d.pool.Close()
		logger.Info("Database connection closed")
	}
}

func (d *DB) collectMetrics(ctx context.Context) {
	if d.pool == nil {
		return
	}

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stat := d.pool.Stat()
			metrics.SetDBConnectionsActive(float64(stat.AcquiredConns()))
		}
	}
}

// Exec executes a statement. It is a no-op without a pool.
func (d *DB) Exec(ctx context.Context, sql string, args ...any) error {
	if d.pool == nil {
		return nil
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, statementTimeout)
	defer cancel()

	_, err := d.pool.Exec(ctx, sql, args...)
	d.observe("exec", sql, start, err)
	return err
}

// Query executes a query and returns rows; the caller closes them
func (d *DB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if d.pool == nil {
		return nil, ErrNotConfigured
	}

	start := time.Now()
	rows, err := d.pool.Query(ctx, sql, args...)
	d.observe("query", sql, start, err)
	return rows, err
}

// SendBatch runs every queued statement in one round trip inside a transaction
func (d *DB) SendBatch(ctx context.Context, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	if d.pool == nil {
		return ErrNotConfigured
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, statementTimeout)
	defer cancel()

	err := pgx.BeginFunc(ctx, d.pool, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	})
	d.observe("batch", fmt.Sprintf("batch of %d", batch.Len()), start, err)
	return err
}

func (d *DB) observe(op, sql string, start time.Time, err error) {
	logger.Debug("Database "+op,
		"sql", sql,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	status := "success"
	if err != nil {
		status = "error"
		logger.Error("Database "+op+" failed", "error", err, "sql", sql)
	}
	metrics.RecordDBQuery(op, status)
}

// Health checks database connectivity
func (d *DB) Health(ctx context.Context) error {
	if d.pool == nil {
		return ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return d.pool.Ping(ctx)
}

// IsConfigured returns true if database is configured
func (d *DB) IsConfigured() bool {
	return d != nil && d.pool != nil
}
