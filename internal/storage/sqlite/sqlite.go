package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"snegbot/internal/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens the database file at path, creating it if needed.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// One connection: concurrent writers on separate connections to the
	// same file would just trade busy-timeout errors.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Initialize applies the embedded migrations.
func (s *SQLiteDB) Initialize(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// GetUserState returns the state row for (chatID, userID), or nil if no row exists
func (s *SQLiteDB) GetUserState(ctx context.Context, chatID, userID int64) (*models.UserState, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT counter, last_spoon_at FROM user_states WHERE chat_id = ? AND user_id = ?`,
		chatID, userID)

	state := models.UserState{ChatID: chatID, UserID: userID}
	var last sql.NullString
	if err := row.Scan(&state.Counter, &last); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user state: %w", err)
	}
	state.LastSpoonAt = parseGrantTime(last)
	return &state, nil
}

// EnsureUserState creates the zero row for (chatID, userID) if missing
func (s *SQLiteDB) EnsureUserState(ctx context.Context, chatID, userID int64) (*models.UserState, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_states (chat_id, user_id, counter) VALUES (?, ?, 0)`,
		chatID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user state: %w", err)
	}
	return s.GetUserState(ctx, chatID, userID)
}

// GrantSpoons adds amount to the counter and records the draw time
func (s *SQLiteDB) GrantSpoons(ctx context.Context, chatID, userID int64, amount int, grantedAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_states (chat_id, user_id, counter, last_spoon_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (chat_id, user_id) DO UPDATE SET
		   counter = counter + excluded.counter,
		   last_spoon_at = excluded.last_spoon_at`,
		chatID, userID, amount, grantedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to grant spoons: %w", err)
	}
	return nil
}

// ListUserStates returns the existing rows in chatID for the given users
func (s *SQLiteDB) ListUserStates(ctx context.Context, chatID int64, userIDs []int64) ([]models.UserState, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(userIDs)), ",")
	args := make([]interface{}, 0, len(userIDs)+1)
	args = append(args, chatID)
	for _, id := range userIDs {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT user_id, counter, last_spoon_at FROM user_states
			WHERE chat_id = ? AND user_id IN (%s) ORDER BY counter DESC`, placeholders),
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list user states: %w", err)
	}
	defer rows.Close()

	var states []models.UserState
	for rows.Next() {
		state := models.UserState{ChatID: chatID}
		var last sql.NullString
		if err := rows.Scan(&state.UserID, &state.Counter, &last); err != nil {
			return nil, fmt.Errorf("failed to scan user state: %w", err)
		}
		state.LastSpoonAt = parseGrantTime(last)
		states = append(states, state)
	}
	return states, rows.Err()
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseGrantTime decodes a stored draw timestamp. A malformed value means
// "no prior draw", never an error.
func parseGrantTime(v sql.NullString) *time.Time {
	if !v.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v.String)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
