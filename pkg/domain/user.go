package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// UserID uniquely identifies a user within the system.
// It is a thin wrapper around uuid.UUID to provide type safety at the domain layer.
type UserID uuid.UUID

// String returns the canonical UUID representation of the user ID.
func (u UserID) String() string { return uuid.UUID(u).String() }

// ParseUserID parses the canonical string form of a user ID.
func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, fmt.Errorf("could not parse user id: %w", err)
	}

	return UserID(id), nil
}

// MarshalText encodes the user ID in its canonical UUID form.
func (u UserID) MarshalText() ([]byte, error) { return uuid.UUID(u).MarshalText() }

// UnmarshalText decodes a canonical UUID string.
func (u *UserID) UnmarshalText(b []byte) error {
	id, err := ParseUserID(string(b))
	if err != nil {
		return err
	}
	*u = id

	return nil
}
