package domain

import "time"

// URLStatus is the coarse status shown for a checked URL.
type URLStatus string

const (
	URLSafe      URLStatus = "safe"
	URLDangerous URLStatus = "dangerous"
	// URLUnknown is reported when the reputation lookup failed.
	URLUnknown URLStatus = "unknown"
)

// StatusFor maps a lookup status to the URL status shown to the user.
func StatusFor(status LookupStatus) URLStatus {
	switch status {
	case LookupThreatFound:
		return URLDangerous
	case LookupNoThreat:
		return URLSafe
	default:
		return URLUnknown
	}
}

// URLCheck is the result of a quota-counted reputation check of one URL.
type URLCheck struct {
	URL          string         `json:"url"`
	Status       URLStatus      `json:"status"`
	Assessment   RiskAssessment `json:"assessment"`
	Matches      []ThreatMatch  `json:"matches"`
	ThreatsFound int            `json:"threatsFound"`
	UserID       UserID         `json:"userId"`
	Timestamp    time.Time      `json:"timestamp"`
	// Usage is the caller's quota right after this check was counted.
	Usage QuotaUsage `json:"usage"`
}

// URLCheckResult is one entry of a batch check. Exactly one of Check and Error is set.
type URLCheckResult struct {
	URL   string    `json:"url"`
	Check *URLCheck `json:"check,omitempty"`
	Error string    `json:"error,omitempty"`
	// Code is the error kind, such as BAD_REQUEST or RATE_LIMITED.
	Code string `json:"code,omitempty"`
}
