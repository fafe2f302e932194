// Package quota tracks how many reputation lookups each user performed today.
package quota

import (
	"context"
	"time"
	"webguard/pkg/domain"
)

// DefaultDailyLimit is the number of lookups a user may perform per UTC day.
const DefaultDailyLimit = 10

// Limiter counts lookups per user and UTC day.
//
// Consume returns an error of kind serrors.ErrRateLimited once the daily limit
// is reached; store failures do not block lookups.
//
//go:generate mockgen -package mockquota -source=interface.go -destination=mock/mockquota.go *
type Limiter interface {
	// Consume records one lookup for userID and returns the usage including it.
	Consume(ctx context.Context, userID domain.UserID) (domain.QuotaUsage, error)
	// Usage returns the current usage without consuming anything.
	Usage(ctx context.Context, userID domain.UserID) (domain.QuotaUsage, error)
}

// Day returns the UTC calendar day of t, formatted as YYYY-MM-DD.
func Day(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// NextReset returns the start of the UTC day following t.
func NextReset(t time.Time) time.Time {
	y, m, d := t.UTC().Date()

	return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
}
