package wger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchExercisesParsesResults(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/exercise/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("language") != "2" || q.Get("limit") != "8" || q.Get("search") != "bench press" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{
  "count": 2,
  "results": [
    {"id": 192, "name": "Bench Press", "category": {"id": 11, "name": "Chest"}},
    {"id": 88, "name": " Incline Bench Press ", "category": 11}
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	items, err := c.SearchExercises(context.Background(), "bench press", 0)
	if err != nil {
		t.Fatalf("search exercises: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 results, got %d", len(items))
	}
	if items[0].ID != 192 || items[0].Name != "Bench Press" || items[0].Category != "Chest" {
		t.Fatalf("unexpected first result: %+v", items[0])
	}
	if items[1].Name != "Incline Bench Press" || items[1].Category != "" {
		t.Fatalf("unexpected second result: %+v", items[1])
	}
}

func TestSearchExercisesStatusError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.SearchExercises(context.Background(), "squat", 8); err == nil {
		t.Fatalf("expected status error")
	}
}
