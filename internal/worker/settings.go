package worker

import (
	"context"
	"fmt"
	"time"
	"webguard/internal/inspector"
	"webguard/pkg/logger"
	"webguard/pkg/serrors"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

const publishTimeout = 10 * time.Second

// SettingChangedWorker announces committed settings changes to the user's
// connected clients. The job is inserted in the same transaction as the
// settings write, so a change that was rolled back is never announced.
//
// A change carrying an unknown key can never be delivered and cancels the job.
// Publishing errors are returned so River retries the job with backoff.
type SettingChangedWorker struct {
	river.WorkerDefaults[inspector.SettingChangedArgs]

	inspector inspector.Inspector
}

// NewSettingChangedWorker constructs a SettingChangedWorker.
func NewSettingChangedWorker(inspector inspector.Inspector) *SettingChangedWorker {
	return &SettingChangedWorker{inspector: inspector}
}

// Timeout bounds a single publish attempt.
func (w *SettingChangedWorker) Timeout(*river.Job[inspector.SettingChangedArgs]) time.Duration {
	return publishTimeout
}

func (w *SettingChangedWorker) Work(ctx context.Context, job *river.Job[inspector.SettingChangedArgs]) error {
	change := job.Args.Change
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.Stringer("userID", change.UserID),
		zap.String("key", string(change.Key)))

	if !change.Key.Valid() {
		logger.Warn(ctx, "dropping change with unknown setting key")

		return river.JobCancel(serrors.With(serrors.ErrBadRequest, "unknown setting %q", change.Key)) //nolint: wrapcheck
	}

	if err := w.inspector.PublishSettingChange(ctx, change); err != nil {
		logger.Error(ctx, "could not publish setting change", zap.Error(err), zap.Int("attempt", job.Attempt))

		return fmt.Errorf("could not publish setting change: %w", err)
	}

	logger.Debug(ctx, "setting change published")

	return nil
}
