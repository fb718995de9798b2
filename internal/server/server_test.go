package server_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saadjs/gymbro/internal/compress"
	"github.com/saadjs/gymbro/internal/config"
	"github.com/saadjs/gymbro/internal/db"
	"github.com/saadjs/gymbro/internal/offline"
	"github.com/saadjs/gymbro/internal/provider/openfoodfacts"
	"github.com/saadjs/gymbro/internal/provider/wger"
	"github.com/saadjs/gymbro/internal/server"
)

type stubFoods struct {
	calls atomic.Int32
	err   error
}

func (s *stubFoods) SearchFoods(_ context.Context, query string, _ int) ([]openfoodfacts.FoodLookup, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return []openfoodfacts.FoodLookup{{Description: "Greek Yogurt " + query, Calories: 97, ProteinG: 9}}, nil
}

type stubExercises struct {
	calls atomic.Int32
}

func (s *stubExercises) SearchExercises(_ context.Context, _ string, _ int) ([]wger.Exercise, error) {
	s.calls.Add(1)
	return []wger.Exercise{{ID: 73, Name: "Bench Press", Category: "Chest"}}, nil
}

type fixture struct {
	srv       *server.Server
	foods     *stubFoods
	exercises *stubExercises
	reg       *prometheus.Registry
	upstream  *httptest.Server
}

func newFixture(t *testing.T, memoMB int) *fixture {
	t.Helper()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, "app "+r.Method+" "+r.URL.Path)
	}))
	t.Cleanup(upstream.Close)

	sqldb, err := db.Open(filepath.Join(t.TempDir(), "gymbro.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqldb.Close() })
	require.NoError(t, db.ApplyMigrations(sqldb))
	codec, err := compress.NewZstdCodec()
	require.NoError(t, err)
	fetcher, err := offline.NewFetcher(upstream.URL, nil)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	cache := offline.New(offline.NewSQLStore(sqldb, codec), fetcher, offline.Options{
		Version:    "gymbro-cache-v2",
		OfflineURL: "/index.html",
		Precache:   []string{"/index.html"},
	}, offline.NewMetrics(reg), zerolog.Nop())

	conf := &config.Config{
		Serve: config.Serve{Addr: "127.0.0.1:0", Origin: upstream.URL, AllowedOrigins: []string{"https://app.example"}},
	}
	f := &fixture{foods: &stubFoods{}, exercises: &stubExercises{}, reg: reg, upstream: upstream}
	f.srv = server.New(conf, cache, f.foods, f.exercises, server.NewMemo(memoMB, 60), server.NewMetrics(reg), reg, zerolog.Nop())
	return f
}

func (f *fixture) get(t *testing.T, target string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 1)

	rec := f.get(t, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestLookupFoods_MemoisesResults(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 1)

	first := f.get(t, "/lookup/foods?q=yogurt", nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "miss", first.Header().Get("X-Lookup-Cache"))
	assert.Contains(t, first.Body.String(), `"name":"Greek Yogurt yogurt"`)

	second := f.get(t, "/lookup/foods?q=Yogurt", nil)
	assert.Equal(t, "hit", second.Header().Get("X-Lookup-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, int32(1), f.foods.calls.Load())
}

func TestLookupFoods_FailureIsEmptyAndNotMemoised(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 1)
	f.foods.err = errors.New("provider down")

	for i := 0; i < 2; i++ {
		rec := f.get(t, "/lookup/foods?q=oats", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", rec.Body.String())
	}
	assert.Equal(t, int32(2), f.foods.calls.Load())
}

func TestLookupExercises_WithoutMemo(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 0)

	f.get(t, "/lookup/exercises?q=bench", nil)
	rec := f.get(t, "/lookup/exercises?q=bench", nil)
	assert.Equal(t, "miss", rec.Header().Get("X-Lookup-Cache"))
	assert.Contains(t, rec.Body.String(), `"name":"Bench Press"`)
	assert.Equal(t, int32(2), f.exercises.calls.Load())
}

func TestLookup_CORS(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 1)

	allowed := f.get(t, "/lookup/exercises?q=row", map[string]string{"Origin": "https://app.example"})
	assert.Equal(t, "https://app.example", allowed.Header().Get("Access-Control-Allow-Origin"))

	denied := f.get(t, "/lookup/exercises?q=row", map[string]string{"Origin": "https://evil.example"})
	assert.Empty(t, denied.Header().Get("Access-Control-Allow-Origin"))
}

func TestProxy_PassesThroughBeforeActivation(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 1)

	rec := f.get(t, "/workouts", map[string]string{"Accept": "text/html"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "app GET /workouts", rec.Body.String())
}

func TestMetrics_ExposesRouteCounters(t *testing.T) {
	t.Parallel()
	f := newFixture(t, 1)

	f.get(t, "/healthz", nil)
	f.get(t, "/lookup/foods?q=milk", nil)
	f.get(t, "/lookup/foods?q=milk", nil)

	rec := f.get(t, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `gymbro_http_requests_total{route="/healthz",status="2xx"} 1`)
	assert.Contains(t, body, `gymbro_http_requests_total{route="/lookup/foods",status="2xx"} 2`)
	assert.Contains(t, body, "gymbro_lookup_memo_hits_total 1")
	assert.True(t, strings.Contains(body, "gymbro_offline_"), "offline cache metrics share the registry")
}

func TestNewMemo_ZeroSizeDisables(t *testing.T) {
	t.Parallel()
	m := server.NewMemo(0, 60)
	m.Set("k", []byte("v"))
	_, ok := m.Get("k")
	assert.False(t, ok)

	m = server.NewMemo(1, 60)
	m.Set("k", []byte("v"))
	got, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}
