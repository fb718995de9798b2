package offline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/saadjs/gymbro/internal/compress"
)

// Entry is a stored (or freshly fetched) response.
type Entry struct {
	Status   int
	Header   http.Header
	Body     []byte
	StoredAt time.Time
}

func (e *Entry) ok() bool {
	return e.Status >= 200 && e.Status < 300
}

// Store holds named caches of responses keyed by URL.
type Store interface {
	Get(ctx context.Context, cacheName, key string) (*Entry, bool, error)
	Put(ctx context.Context, cacheName, key string, e *Entry) error
	Names(ctx context.Context) ([]string, error)
	Count(ctx context.Context, cacheName string) (int, error)
	Delete(ctx context.Context, cacheName string) (int64, error)
}

// SQLStore keeps caches in the response_cache table with zstd bodies.
type SQLStore struct {
	db    *sql.DB
	codec compress.Codec
}

func NewSQLStore(db *sql.DB, codec compress.Codec) *SQLStore {
	return &SQLStore{db: db, codec: codec}
}

func (s *SQLStore) Get(ctx context.Context, cacheName, key string) (*Entry, bool, error) {
	var (
		status     int
		headerJSON string
		body       []byte
		storedAt   string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT status, header_json, body, stored_at FROM response_cache WHERE cache_name = ? AND url = ?
`, cacheName, key).Scan(&status, &headerJSON, &body, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cached response: %w", err)
	}
	e := &Entry{Status: status, Header: http.Header{}}
	if err := json.Unmarshal([]byte(headerJSON), &e.Header); err != nil {
		return nil, false, fmt.Errorf("decode cached headers: %w", err)
	}
	if len(body) > 0 {
		if e.Body, err = s.codec.Decompress(body); err != nil {
			return nil, false, err
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, storedAt); err == nil {
		e.StoredAt = t
	}
	return e, true, nil
}

func (s *SQLStore) Put(ctx context.Context, cacheName, key string, e *Entry) error {
	headerJSON, err := json.Marshal(e.Header)
	if err != nil {
		return fmt.Errorf("encode headers: %w", err)
	}
	body, err := s.codec.Compress(e.Body)
	if err != nil {
		return fmt.Errorf("compress body: %w", err)
	}
	storedAt := e.StoredAt
	if storedAt.IsZero() {
		storedAt = time.Now()
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO response_cache(cache_name, url, status, header_json, body, stored_at)
VALUES(?, ?, ?, ?, ?, ?)
ON CONFLICT(cache_name, url) DO UPDATE SET
  status = excluded.status, header_json = excluded.header_json, body = excluded.body, stored_at = excluded.stored_at
`, cacheName, key, e.Status, string(headerJSON), body, storedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write cached response: %w", err)
	}
	return nil
}

func (s *SQLStore) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT cache_name FROM response_cache ORDER BY cache_name`)
	if err != nil {
		return nil, fmt.Errorf("list caches: %w", err)
	}
	defer rows.Close()
	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan cache name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate caches: %w", err)
	}
	return names, nil
}

func (s *SQLStore) Count(ctx context.Context, cacheName string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM response_cache WHERE cache_name = ?`, cacheName).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cache %s: %w", cacheName, err)
	}
	return n, nil
}

func (s *SQLStore) Delete(ctx context.Context, cacheName string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM response_cache WHERE cache_name = ?`, cacheName)
	if err != nil {
		return 0, fmt.Errorf("delete cache %s: %w", cacheName, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read rows affected: %w", err)
	}
	return n, nil
}
