// Package events carries settings updates from the writer to every open
// listener of the same user.
package events

import (
	"context"
	"webguard/pkg/domain"
)

// Bus publishes and fans out setting change events.
//
//go:generate mockgen -package mockevents -source=interface.go -destination=mock/mockevents.go *
type Bus interface {
	// Publish delivers change to the current subscribers of change.UserID.
	Publish(ctx context.Context, change domain.SettingChange) error
	// Subscribe returns a channel of changes for userID. The channel is closed
	// once ctx is done or the subscription breaks.
	Subscribe(ctx context.Context, userID domain.UserID) (<-chan domain.SettingChange, error)
}
