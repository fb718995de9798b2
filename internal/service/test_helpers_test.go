package service_test

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/saadjs/gymbro/internal/db"
	"github.com/saadjs/gymbro/internal/localstore"
	"github.com/saadjs/gymbro/internal/model"
	"github.com/saadjs/gymbro/internal/remote"
	"github.com/saadjs/gymbro/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gymbro.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	return sqldb
}

func newTestStore(t *testing.T) (*sql.DB, *localstore.Store) {
	t.Helper()
	sqldb := newTestDB(t)
	return sqldb, localstore.Open(sqldb, zerolog.New(&bytes.Buffer{}))
}

// newTestSession builds a session over a fresh store. paid sets the cached
// profile's tier before the session loads it.
func newTestSession(t *testing.T, conn remote.Connection, paid bool) service.Session {
	t.Helper()
	ctx := context.Background()
	_, store := newTestStore(t)
	store.Set(ctx, localstore.KeyUser, model.UserProfile{ID: "user-1", IsPaid: paid})
	return service.NewSession(ctx, store, conn, zerolog.New(&bytes.Buffer{}))
}

// forbiddenBackend fails the test on any request.
func forbiddenBackend(t *testing.T) remote.Connection {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected remote request %s %s", r.Method, r.URL.String())
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return remote.Resolve(srv.URL, "anon-key", "", srv.Client())
}

func floatPtr(v float64) *float64 {
	return &v
}
