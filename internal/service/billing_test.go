package service_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/saadjs/gymbro/internal/remote"
	"github.com/saadjs/gymbro/internal/service"
)

func TestMockCheckoutLocalOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestSession(t, remote.Unconfigured{}, false)
	profile, err := service.MockCheckout(ctx, s)
	if err != nil {
		t.Fatalf("mock checkout: %v", err)
	}
	if !profile.IsPaid || !service.LoadProfile(ctx, s.Local).IsPaid {
		t.Fatalf("expected paid profile, got %+v", profile)
	}
}

func TestMockCheckoutUpdatesBackendFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	var gotQuery, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/rest/v1/users" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	s := newTestSession(t, remote.Resolve(srv.URL, "anon", "", srv.Client()), false)
	if _, err := service.MockCheckout(ctx, s); err != nil {
		t.Fatalf("mock checkout: %v", err)
	}
	if gotQuery != "id=eq.user-1" || gotBody != `{"is_paid":true}` {
		t.Fatalf("unexpected backend call query=%q body=%q", gotQuery, gotBody)
	}
}

func TestMockCheckoutBackendFailureKeepsFreeTier(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"message":"permission denied"}`)
	}))
	t.Cleanup(srv.Close)

	s := newTestSession(t, remote.Resolve(srv.URL, "anon", "", srv.Client()), false)
	if _, err := service.MockCheckout(ctx, s); err == nil {
		t.Fatalf("expected backend error")
	}
	if service.LoadProfile(ctx, s.Local).IsPaid {
		t.Fatalf("expected profile to stay unpaid")
	}
}
