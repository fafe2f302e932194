// Package reputation defines the contract for third-party URL reputation
// providers.
package reputation

import (
	"context"
	"webguard/pkg/domain"
)

// Source looks up the reputation of a single URL. Implementations never
// return an error: transport, timeout and decoding problems are reported as a
// domain.LookupFailed outcome so callers can tell "no threat" apart from
// "could not verify". Results are never cached.
//
//go:generate mockgen -package mockreputation -source=interface.go -destination=mock/mockreputation.go *
type Source interface {
	Lookup(ctx context.Context, url string) domain.LookupOutcome
}
