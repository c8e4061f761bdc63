package models

import "time"

// UserState is the persisted snow spoon state for one (chat, user) pair.
type UserState struct {
	ChatID  int64
	UserID  int64
	Counter int
	// LastSpoonAt is nil until the first successful draw.
	LastSpoonAt *time.Time
}
