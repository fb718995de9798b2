package offline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var hopHeaders = []string{
	"Connection", "Keep-Alive", "Proxy-Authenticate", "Proxy-Authorization",
	"Te", "Trailer", "Transfer-Encoding", "Upgrade",
}

// Fetcher performs the upstream half of a request. Relative requests go to
// Origin; absolute ones (forward-proxy style) go where they point.
type Fetcher struct {
	Origin    *url.URL
	Transport http.RoundTripper
}

func NewFetcher(origin string, transport http.RoundTripper) (*Fetcher, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(origin), "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid origin %q", origin)
	}
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Fetcher{Origin: u, Transport: transport}, nil
}

// Target is the absolute upstream URL for r, which doubles as its cache key.
func (f *Fetcher) Target(r *http.Request) string {
	if r.URL.IsAbs() {
		return r.URL.String()
	}
	u := *f.Origin
	u.Path = f.Origin.Path + r.URL.Path
	u.RawQuery = r.URL.RawQuery
	return u.String()
}

// Fetch sends r upstream and buffers the whole response. Any HTTP status is
// a successful fetch; only transport failures return an error.
func (f *Fetcher) Fetch(ctx context.Context, r *http.Request, body []byte) (*Entry, error) {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, f.Target(r), reader)
	if err != nil {
		return nil, fmt.Errorf("create upstream request: %w", err)
	}
	req.Header = r.Header.Clone()
	stripHop(req.Header)

	resp, err := f.Transport.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req.URL.Redacted(), err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}
	header := resp.Header.Clone()
	stripHop(header)
	header.Del("Content-Length")
	return &Entry{Status: resp.StatusCode, Header: header, Body: data, StoredAt: time.Now()}, nil
}

// get fetches a URL path relative to the origin, as install does.
func (f *Fetcher) get(ctx context.Context, path string) (string, *Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", nil, fmt.Errorf("create request for %s: %w", path, err)
	}
	e, err := f.Fetch(ctx, req, nil)
	return f.Target(req), e, err
}

func stripHop(h http.Header) {
	for _, k := range hopHeaders {
		h.Del(k)
	}
}
