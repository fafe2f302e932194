package domain

import "time"

// QuotaUsage describes a user's reputation lookup budget for the current day.
type QuotaUsage struct {
	ScansToday     int       `json:"scansToday"`
	DailyLimit     int       `json:"dailyLimit"`
	Remaining      int       `json:"remaining"`
	PercentageUsed float64   `json:"percentageUsed"`
	ResetAt        time.Time `json:"resetAt"`
}

// NewQuotaUsage derives the usage numbers from a raw counter value. A limit of
// zero or less means the quota is disabled.
func NewQuotaUsage(count, limit int, resetAt time.Time) QuotaUsage {
	if count < 0 {
		count = 0
	}
	if limit <= 0 {
		return QuotaUsage{ScansToday: count, DailyLimit: limit, ResetAt: resetAt}
	}

	if count > limit {
		count = limit
	}

	return QuotaUsage{
		ScansToday:     count,
		DailyLimit:     limit,
		Remaining:      limit - count,
		PercentageUsed: float64(count) / float64(limit) * 100,
		ResetAt:        resetAt,
	}
}
