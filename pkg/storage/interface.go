// Package storage defines the persistence interfaces of the service. The only
// durable state is the per-user feature toggles plus the job queue used to
// announce their changes.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import (
	"context"
	"webguard/pkg/domain"
)

// SettingsStorage persists boolean toggles per user and key.
type SettingsStorage interface {
	// Settings returns every stored value of userID. Keys the user never set
	// are absent from the map.
	Settings(ctx context.Context, userID domain.UserID) (map[domain.SettingKey]bool, error)
	// UpsertSetting stores value under key and returns the resulting change,
	// stamped with the time the row was written.
	UpsertSetting(ctx context.Context, userID domain.UserID, key domain.SettingKey, value bool) (domain.SettingChange, error)
}

// AllStorage bundles every capability available both inside and outside a
// transaction.
type AllStorage interface {
	SettingsStorage
	JobStorage
}

// TxStorage is a storage handle bound to a transaction. It becomes unusable
// after Commit or Rollback.
type TxStorage interface {
	AllStorage

	Commit() error
	Rollback() error
}

// Storage is the root, non-transactional handle.
type Storage interface {
	AllStorage

	// Ping verifies the database is reachable.
	Ping(ctx context.Context) error
	// Close releases the connection pool.
	Close() error

	// Begin starts a transaction.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx runs cb inside a transaction, committing when cb returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}
