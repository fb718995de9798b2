package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const (
	KeyUser           = "user"
	KeyWorkouts       = "workouts"
	KeyNutritionLogs  = "nutrition_logs"
	KeyBodyMetrics    = "body_metrics"
	KeyWaterLogs      = "water_logs"
	KeySettings       = "settings"
	KeyWorkoutDraft   = "draft:workout"
	KeyNutritionDraft = "draft:nutrition"
	KeyShoppingLists  = "shopping_lists"
	KeyFavorites      = "favorites"
)

// Store is a JSON key-value store on the kv_store table. Reads and writes
// never fail from the caller's point of view: I/O errors are logged and a
// failed read looks like a missing key.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

func Open(db *sql.DB, logger zerolog.Logger) *Store {
	return &Store{db: db, logger: logger.With().Str("component", "localstore").Logger()}
}

// Get decodes the value stored under key into out and reports whether it did.
func (s *Store) Get(ctx context.Context, key string, out any) bool {
	raw, err := s.GetRaw(ctx, key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn().Err(err).Str("key", key).Msg("read failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("decode failed")
		return false
	}
	return true
}

// GetRaw returns the stored JSON bytes or sql.ErrNoRows.
func (s *Store) GetRaw(ctx context.Context, key string) ([]byte, error) {
	var value string
	if err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value); err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (s *Store) Set(ctx context.Context, key string, value any) {
	if err := s.SetE(ctx, key, value); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("write failed")
	}
}

// SetE is Set for callers that must report a failed write.
func (s *Store) SetE(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO kv_store(key, value, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`, key, string(raw))
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("delete failed")
	}
}

func (s *Store) Clear(ctx context.Context) {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_store`); err != nil {
		s.logger.Warn().Err(err).Msg("clear failed")
	}
}

func (s *Store) Keys(ctx context.Context) []string {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv_store ORDER BY key`)
	if err != nil {
		s.logger.Warn().Err(err).Msg("list keys failed")
		return nil
	}
	defer rows.Close()
	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			s.logger.Warn().Err(err).Msg("scan key failed")
			return keys
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		s.logger.Warn().Err(err).Msg("iterate keys failed")
	}
	return keys
}

// GetSlice reads a JSON array under key, returning an empty slice when the
// key is missing or unreadable.
func GetSlice[T any](ctx context.Context, s *Store, key string) []T {
	var out []T
	if !s.Get(ctx, key, &out) || out == nil {
		return []T{}
	}
	return out
}
