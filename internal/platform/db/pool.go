package db

import (
	"context"
	"fmt"
	"time"

	"p2parb/internal/config"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const connectTries = 5

// Open connects to Postgres, retrying while the server is still coming up, and
// applies the embedded migrations.
func Open(ctx context.Context, cfg config.DbServer) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.GetConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to parse db config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	connect := func() (*pgxpool.Pool, error) {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if err = pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return pool, nil
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 500 * time.Millisecond
	pool, err := backoff.Retry(ctx, connect,
		backoff.WithBackOff(eb),
		backoff.WithMaxTries(connectTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			logrus.WithError(err).WithField("retry_in", next).Warn("Postgres not reachable yet")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	if err = Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
