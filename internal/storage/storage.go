package storage

import (
	"context"
	"time"

	"snegbot/internal/models"
)

// Storage defines the interface for user state operations
type Storage interface {
	// GetUserState returns the state row for (chatID, userID), or nil if no
	// row exists yet. A missing row is not an error.
	GetUserState(ctx context.Context, chatID, userID int64) (*models.UserState, error)

	// EnsureUserState creates the zero row for (chatID, userID) if it does
	// not exist yet and returns the current state. Creation is idempotent;
	// rows are created on first touch and never at join time.
	EnsureUserState(ctx context.Context, chatID, userID int64) (*models.UserState, error)

	// GrantSpoons adds amount to the counter and records grantedAt as the
	// time of the last successful draw.
	GrantSpoons(ctx context.Context, chatID, userID int64, amount int, grantedAt time.Time) error

	// ListUserStates returns the existing rows in chatID for the given
	// users. Users without a row are absent from the result.
	ListUserStates(ctx context.Context, chatID int64, userIDs []int64) ([]models.UserState, error)

	// Lifecycle
	Initialize(ctx context.Context) error
	Close() error
}
