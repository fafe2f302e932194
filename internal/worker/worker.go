package worker

import (
	"context"
	"fmt"
	"webguard/internal/inspector"
	"webguard/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

// Options configure the background job client.
type Options struct {
	// MaxWorkers is the number of jobs processed concurrently on the default queue.
	MaxWorkers int
}

// Start registers the workers and starts a River client processing jobs from
// dbPool until ctx is done or the client is stopped.
func Start(ctx context.Context,
	dbPool *pgxpool.Pool,
	inspector inspector.Inspector,
	opts Options) (*river.Client[pgx.Tx], error) {
	if opts.MaxWorkers <= 0 {
		opts.MaxWorkers = 10
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewSettingChangedWorker(inspector))

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: opts.MaxWorkers},
		},
		Workers: workers,
		Logger:  logger.Slog(ctx),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}
