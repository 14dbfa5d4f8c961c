package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l1jgo/horde/internal/config"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

const (
	appName = "hordesim"

	pingAttempts = 5
	pingBackoff  = 200 * time.Millisecond
	pingTimeout  = 5 * time.Second
)

// DB is the run-history connection pool.
type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

// poolConfig builds the pool settings. A run writes one transaction at the
// end, so the pool stays small: at least one connection, idle floor never
// above the cap.
func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pc.MaxConns = int32(max(cfg.MaxOpenConns, 1))
	pc.MinConns = min(int32(max(cfg.MaxIdleConns, 0)), pc.MaxConns)
	if cfg.ConnMaxLifetime > 0 {
		pc.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	pc.ConnConfig.RuntimeParams["application_name"] = appName
	return pc, nil
}

// NewDB opens the pool and pings it, retrying with backoff while the server
// is still starting.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	pc, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	backoff := retry.WithMaxRetries(pingAttempts-1, retry.NewExponential(pingBackoff))
	attempt := 0
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			log.Debug("database ping failed", zap.Int("attempt", attempt), zap.Error(err))
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db after %d attempts: %w", attempt, err)
	}

	log.Info("database connected",
		zap.Int32("max_conns", pc.MaxConns),
		zap.Int("attempts", attempt),
	)
	return &DB{Pool: pool, log: log}, nil
}

// Open connects, applies pending migrations and returns a repo that owns the
// pool. Close the repo when done.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*RunRepo, int64, error) {
	db, err := NewDB(ctx, cfg, log)
	if err != nil {
		return nil, 0, err
	}
	version, err := RunMigrations(ctx, db)
	if err != nil {
		db.Close()
		return nil, 0, err
	}
	return NewRunRepo(db), version, nil
}

func (db *DB) Close() {
	db.Pool.Close()
}
