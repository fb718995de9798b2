package wger

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	defaultBaseURL = "https://wger.de"
	englishID      = 2
	defaultLimit   = 8
)

type Exercise struct {
	ID       int64
	Name     string
	Category string
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// SearchExercises looks up English exercise names matching query.
func (c *Client) SearchExercises(ctx context.Context, query string, limit int) ([]Exercise, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	u := fmt.Sprintf("%s/api/v2/exercise/?language=%d&limit=%d&search=%s",
		base, englishID, limit, url.QueryEscape(strings.TrimSpace(query)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create wger search request: %w", err)
	}
	req.Header.Set("User-Agent", "gymbro/1.0 (+https://github.com/saadjs/gymbro)")
	req.Header.Set("Accept", "application/json")
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute wger search request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read wger search response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("wger search request failed with status %d", resp.StatusCode)
	}
	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode wger search response: %w", err)
	}
	out := make([]Exercise, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		out = append(out, Exercise{
			ID:       r.ID,
			Name:     strings.TrimSpace(r.Name),
			Category: r.category(),
		})
	}
	return out, nil
}

type searchResult struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Category json.RawMessage `json:"category"`
}

// category accepts either a bare id or an expanded {"name": ...} object.
func (r searchResult) category() string {
	if len(r.Category) == 0 {
		return ""
	}
	var expanded struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(r.Category, &expanded); err == nil {
		return expanded.Name
	}
	return ""
}

type searchResponse struct {
	Count   int            `json:"count"`
	Results []searchResult `json:"results"`
}
