package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage enqueues background jobs. Inside a transaction the job becomes
// visible only when the transaction commits, which is what lets a settings
// write and its change announcement succeed or fail together.
type JobStorage interface {
	// AddJob enqueues args and reports whether a new job was inserted (false
	// when a unique job already existed).
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
