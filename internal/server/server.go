package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/saadjs/gymbro/internal/config"
	"github.com/saadjs/gymbro/internal/offline"
	"github.com/saadjs/gymbro/internal/service"
)

// Server fronts the web app with the offline cache and exposes the lookup
// endpoints, health and metrics next to it.
type Server struct {
	conf      *config.Config
	cache     *offline.Cache
	foods     service.FoodSearcher
	exercises service.ExerciseSearcher
	memo      Memo
	metrics   Metrics
	gatherer  prometheus.Gatherer
	logger    zerolog.Logger

	handler http.Handler
}

// New builds the router. A nil gatherer leaves /metrics unmounted.
func New(
	conf *config.Config,
	cache *offline.Cache,
	foods service.FoodSearcher,
	exercises service.ExerciseSearcher,
	memo Memo,
	metrics Metrics,
	gatherer prometheus.Gatherer,
	logger zerolog.Logger,
) *Server {
	if memo == nil {
		memo = noopMemo{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	s := &Server{
		conf:      conf,
		cache:     cache,
		foods:     foods,
		exercises: exercises,
		memo:      memo,
		metrics:   metrics,
		gatherer:  gatherer,
		logger:    logger.With().Str("component", "server").Logger(),
	}
	s.handler = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(metricsMiddleware(s.metrics))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/lookup", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.conf.Serve.AllowedOrigins,
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
		r.Get("/foods", s.lookupFoods)
		r.Get("/exercises", s.lookupExercises)
	})

	r.Handle("/*", s.cache)
	return r
}

func (s *Server) lookupFoods(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	s.memoised(w, "foods:"+strings.ToLower(q), func() (any, bool) {
		res := service.SearchFoods(r.Context(), s.foods, q, s.logger)
		return res, len(res) > 0
	})
}

func (s *Server) lookupExercises(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	s.memoised(w, "exercises:"+strings.ToLower(q), func() (any, bool) {
		res := service.SearchExercises(r.Context(), s.exercises, q, s.logger)
		return res, len(res) > 0
	})
}

// memoised writes the JSON result of search, reusing an earlier answer for
// the same key. Empty results are not kept since they may stem from a
// provider outage.
func (s *Server) memoised(w http.ResponseWriter, key string, search func() (any, bool)) {
	w.Header().Set("Content-Type", "application/json")
	if body, ok := s.memo.Get(key); ok {
		s.metrics.IncMemoHits()
		w.Header().Set("X-Lookup-Cache", "hit")
		_, _ = w.Write(body)
		return
	}
	s.metrics.IncMemoMisses()
	res, keep := search()
	body, err := json.Marshal(res)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("encode lookup response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if keep {
		s.memo.Set(key, body)
	}
	w.Header().Set("X-Lookup-Cache", "miss")
	_, _ = w.Write(body)
}

// Run installs and activates the offline cache, then serves until ctx is
// cancelled. A failed install leaves the cache inactive so requests pass
// straight through, as a browser does with a worker that never installed.
func (s *Server) Run(ctx context.Context) error {
	if n, err := s.cache.Install(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("precache failed, serving without offline cache")
	} else {
		deleted, err := s.cache.Activate(ctx)
		if err != nil {
			return fmt.Errorf("activate offline cache: %w", err)
		}
		s.logger.Info().Int("precached", n).Strs("deleted", deleted).Msg("offline cache active")
	}

	srv := &http.Server{
		Addr:         s.conf.Serve.Addr,
		Handler:      s.handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Str("origin", s.conf.Serve.Origin).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info().Msg("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	s.cache.Wait()
	s.logger.Info().Msg("gracefully stopped")
	return nil
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
