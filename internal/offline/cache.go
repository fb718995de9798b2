package offline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

type Options struct {
	Version    string
	OfflineURL string
	Precache   []string
}

// Cache is an offline-first HTTP handler in front of an upstream app. It
// serves every request with the strategy picked for its Kind.
type Cache struct {
	store   Store
	fetcher *Fetcher
	opts    Options
	metrics Metrics
	logger  zerolog.Logger

	active     atomic.Bool
	refreshes  sync.WaitGroup
	strategies map[Kind]strategy
}

// strategy pairs a primitive with what it may cache and how it gives up.
type strategy struct {
	run       func(c *Cache, r *http.Request, s strategy) (*Entry, string, error)
	cacheable func(r *http.Request) bool
	fallback  func(c *Cache, r *http.Request, err error) (*Entry, string, error)
}

func New(store Store, fetcher *Fetcher, opts Options, metrics Metrics, logger zerolog.Logger) *Cache {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	c := &Cache{
		store:   store,
		fetcher: fetcher,
		opts:    opts,
		metrics: metrics,
		logger:  logger.With().Str("component", "offline").Str("cache", opts.Version).Logger(),
	}
	c.strategies = map[Kind]strategy{
		Navigation:  {run: networkFirst, cacheable: isGet, fallback: offlinePage},
		StaticAsset: {run: cacheFirst, cacheable: isGet, fallback: assetUnavailable},
		API:         {run: networkFirst, cacheable: isGet, fallback: networkUnavailable},
		Other:       {run: networkFirst, cacheable: isGet, fallback: propagate},
	}
	return c
}

func isGet(r *http.Request) bool {
	return r.Method == http.MethodGet
}

// Install precaches the configured paths. It is all or nothing: a single
// failed or non-2xx fetch stores none of them.
func (c *Cache) Install(ctx context.Context) (int, error) {
	type fetched struct {
		key   string
		entry *Entry
	}
	all := make([]fetched, 0, len(c.opts.Precache))
	for _, path := range c.opts.Precache {
		key, e, err := c.fetcher.get(ctx, path)
		if err != nil {
			return 0, fmt.Errorf("precache %s: %w", path, err)
		}
		if !e.ok() {
			return 0, fmt.Errorf("precache %s: upstream status %d", path, e.Status)
		}
		all = append(all, fetched{key: key, entry: e})
	}
	for _, f := range all {
		if err := c.store.Put(ctx, c.opts.Version, f.key, f.entry); err != nil {
			return 0, err
		}
		c.metrics.IncCacheWrites()
	}
	c.logger.Info().Int("assets", len(all)).Msg("static assets cached")
	return len(all), nil
}

// Activate drops every cache not named after the current version and
// starts serving requests through the strategies.
func (c *Cache) Activate(ctx context.Context) ([]string, error) {
	names, err := c.store.Names(ctx)
	if err != nil {
		return nil, err
	}
	deleted := make([]string, 0)
	for _, name := range names {
		if name == c.opts.Version {
			continue
		}
		if _, err := c.store.Delete(ctx, name); err != nil {
			return deleted, err
		}
		c.logger.Info().Str("old_cache", name).Msg("deleted old cache")
		deleted = append(deleted, name)
	}
	c.active.Store(true)
	return deleted, nil
}

func (c *Cache) Active() bool {
	return c.active.Load()
}

// Wait blocks until in-flight background refreshes finish.
func (c *Cache) Wait() {
	c.refreshes.Wait()
}

func (c *Cache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	kind := Classify(r)
	if !c.Active() || (r.Method != http.MethodGet && kind != API) {
		c.passThrough(w, r, kind)
		return
	}
	s := c.strategies[kind]
	e, source, err := s.run(c, r, s)
	if err != nil {
		c.logger.Debug().Err(err).Str("kind", kind.String()).Str("url", r.URL.String()).Msg("request failed offline")
		c.metrics.IncResponses(kind, SourceError)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	c.metrics.IncResponses(kind, source)
	writeEntry(w, e)
}

func (c *Cache) passThrough(w http.ResponseWriter, r *http.Request, kind Kind) {
	e, err := c.fetchRequest(r)
	if err != nil {
		c.metrics.IncResponses(kind, SourceError)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	c.metrics.IncResponses(kind, SourceBypass)
	writeEntry(w, e)
}

func (c *Cache) fetchRequest(r *http.Request) (*Entry, error) {
	var body []byte
	if r.Body != nil && r.Body != http.NoBody {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
		body = b
	}
	return c.fetcher.Fetch(r.Context(), r, body)
}

func (c *Cache) lookup(ctx context.Context, r *http.Request) (*Entry, bool) {
	if !isGet(r) {
		return nil, false
	}
	e, ok, err := c.store.Get(ctx, c.opts.Version, c.fetcher.Target(r))
	if err != nil {
		c.logger.Warn().Err(err).Str("url", r.URL.String()).Msg("cache read failed")
		return nil, false
	}
	return e, ok
}

func (c *Cache) put(ctx context.Context, r *http.Request, e *Entry) {
	if err := c.store.Put(ctx, c.opts.Version, c.fetcher.Target(r), e); err != nil {
		c.logger.Warn().Err(err).Str("url", r.URL.String()).Msg("cache write failed")
		return
	}
	c.metrics.IncCacheWrites()
}

func networkFirst(c *Cache, r *http.Request, s strategy) (*Entry, string, error) {
	e, err := c.fetchRequest(r)
	if err == nil {
		if e.ok() && s.cacheable(r) {
			c.put(r.Context(), r, e)
		}
		return e, SourceNetwork, nil
	}
	if cached, ok := c.lookup(r.Context(), r); ok {
		c.logger.Debug().Str("url", r.URL.String()).Msg("network failed, served from cache")
		return cached, SourceCache, nil
	}
	return s.fallback(c, r, err)
}

func cacheFirst(c *Cache, r *http.Request, s strategy) (*Entry, string, error) {
	if cached, ok := c.lookup(r.Context(), r); ok {
		c.refreshInBackground(r)
		return cached, SourceCache, nil
	}
	e, err := c.fetchRequest(r)
	if err != nil {
		return s.fallback(c, r, err)
	}
	if e.ok() && s.cacheable(r) {
		c.put(r.Context(), r, e)
	}
	return e, SourceNetwork, nil
}

func (c *Cache) refreshInBackground(r *http.Request) {
	ctx := context.WithoutCancel(r.Context())
	req := r.Clone(ctx)
	c.refreshes.Add(1)
	go func() {
		defer c.refreshes.Done()
		e, err := c.fetcher.Fetch(ctx, req, nil)
		if err != nil {
			c.logger.Debug().Err(err).Str("url", req.URL.String()).Msg("background refresh failed")
			c.metrics.IncRefreshes(false)
			return
		}
		if e.ok() {
			c.put(ctx, req, e)
		}
		c.metrics.IncRefreshes(true)
	}()
}

func offlinePage(c *Cache, r *http.Request, _ error) (*Entry, string, error) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, c.opts.OfflineURL, nil)
	if err == nil {
		if e, ok := c.lookup(r.Context(), req); ok {
			return e, SourceOfflinePage, nil
		}
	}
	return textEntry(http.StatusServiceUnavailable, "You are offline"), SourceUnavailable, nil
}

func assetUnavailable(_ *Cache, _ *http.Request, _ error) (*Entry, string, error) {
	return textEntry(http.StatusServiceUnavailable, "Asset not available offline"), SourceUnavailable, nil
}

type networkError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func networkUnavailable(_ *Cache, _ *http.Request, _ error) (*Entry, string, error) {
	body, _ := json.Marshal(networkError{
		Error:   "Network unavailable",
		Message: "This request requires an internet connection",
	})
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	return &Entry{Status: http.StatusServiceUnavailable, Header: h, Body: body}, SourceUnavailable, nil
}

func propagate(_ *Cache, _ *http.Request, err error) (*Entry, string, error) {
	if err == nil {
		err = errors.New("upstream unavailable")
	}
	return nil, "", err
}

func textEntry(status int, msg string) *Entry {
	h := http.Header{}
	h.Set("Content-Type", "text/plain; charset=utf-8")
	return &Entry{Status: status, Header: h, Body: []byte(msg)}
}

func writeEntry(w http.ResponseWriter, e *Entry) {
	for k, vs := range e.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(e.Status)
	_, _ = w.Write(e.Body)
}

// CacheStat is the number of responses held under one cache name.
type CacheStat struct {
	Name    string
	Entries int
	Current bool
}

func (c *Cache) Stats(ctx context.Context) ([]CacheStat, error) {
	names, err := c.store.Names(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CacheStat, 0, len(names))
	for _, name := range names {
		n, err := c.store.Count(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, CacheStat{Name: name, Entries: n, Current: name == c.opts.Version})
	}
	return out, nil
}

// Clear deletes every cache, current version included.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	names, err := c.store.Names(ctx)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, name := range names {
		n, err := c.store.Delete(ctx, name)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
