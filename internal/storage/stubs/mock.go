package stubs

import (
	"context"
	"sort"
	"sync"
	"time"

	"snegbot/internal/models"
)

// MockDB is an in-memory implementation of the Storage interface for testing
type MockDB struct {
	mu     sync.RWMutex
	states map[stateKey]models.UserState
}

type stateKey struct {
	chatID int64
	userID int64
}

// NewMockDB creates a new mock database
func NewMockDB() *MockDB {
	return &MockDB{
		states: make(map[stateKey]models.UserState),
	}
}

// Initialize is a no-op for the mock
func (m *MockDB) Initialize(ctx context.Context) error {
	return nil
}

// GetUserState returns the state row for (chatID, userID), or nil if no row exists
func (m *MockDB) GetUserState(ctx context.Context, chatID, userID int64) (*models.UserState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.states[stateKey{chatID, userID}]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

// EnsureUserState creates the zero row for (chatID, userID) if missing
func (m *MockDB) EnsureUserState(ctx context.Context, chatID, userID int64) (*models.UserState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := stateKey{chatID, userID}
	state, ok := m.states[key]
	if !ok {
		state = models.UserState{ChatID: chatID, UserID: userID}
		m.states[key] = state
	}
	return &state, nil
}

// GrantSpoons adds amount to the counter and records the draw time
func (m *MockDB) GrantSpoons(ctx context.Context, chatID, userID int64, amount int, grantedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := stateKey{chatID, userID}
	state, ok := m.states[key]
	if !ok {
		state = models.UserState{ChatID: chatID, UserID: userID}
	}
	state.Counter += amount
	at := grantedAt.UTC()
	state.LastSpoonAt = &at
	m.states[key] = state
	return nil
}

// ListUserStates returns the existing rows in chatID for the given users
func (m *MockDB) ListUserStates(ctx context.Context, chatID int64, userIDs []int64) ([]models.UserState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var states []models.UserState
	for _, userID := range userIDs {
		if state, ok := m.states[stateKey{chatID, userID}]; ok {
			states = append(states, state)
		}
	}

	// Highest counter first, matching the real backend
	sort.Slice(states, func(i, j int) bool {
		return states[i].Counter > states[j].Counter
	})
	return states, nil
}

// Close is a no-op for the mock
func (m *MockDB) Close() error {
	return nil
}
