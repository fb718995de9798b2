package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

var ErrUnconfigured = errors.New("remote backend is not configured")

const userAgent = "gymbro/1.0 (+https://github.com/saadjs/gymbro)"

// Client talks to a hosted Postgres REST, storage and auth API.
type Client struct {
	BaseURL     string
	APIKey      string
	AccessToken string
	HTTPClient  *http.Client
}

type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote request failed with status %d", e.Status)
	}
	return fmt.Sprintf("remote request failed with status %d: %s", e.Status, e.Message)
}

// Query narrows a table select.
type Query struct {
	filters []filter
	order   string
	limit   int
}

type filter struct {
	column string
	value  string
}

func NewQuery() *Query { return &Query{} }

func (q *Query) Eq(column string, value any) *Query {
	q.filters = append(q.filters, filter{column: column, value: fmt.Sprint(value)})
	return q
}

func (q *Query) Order(column string, ascending bool) *Query {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	q.order = column + "." + dir
	return q
}

func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

func (q *Query) values() url.Values {
	v := url.Values{}
	v.Set("select", "*")
	if q == nil {
		return v
	}
	for _, f := range q.filters {
		v.Add(f.column, "eq."+f.value)
	}
	if q.order != "" {
		v.Set("order", q.order)
	}
	if q.limit > 0 {
		v.Set("limit", strconv.Itoa(q.limit))
	}
	return v
}

func matchValues(match map[string]any) url.Values {
	v := url.Values{}
	for col, val := range match {
		v.Set(col, "eq."+fmt.Sprint(val))
	}
	return v
}

// Select decodes every row of table matching q into out, which must be a
// pointer to a slice.
func (c *Client) Select(ctx context.Context, table string, q *Query, out any) error {
	body, err := c.do(ctx, http.MethodGet, c.restURL(table, q.values()), nil, "")
	if err != nil {
		return fmt.Errorf("select %s: %w", table, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s rows: %w", table, err)
	}
	return nil
}

// Insert writes a single row.
func (c *Client) Insert(ctx context.Context, table string, row any) error {
	payload, err := json.Marshal([]any{row})
	if err != nil {
		return fmt.Errorf("encode %s row: %w", table, err)
	}
	if _, err := c.do(ctx, http.MethodPost, c.restURL(table, nil), bytes.NewReader(payload), "application/json"); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func (c *Client) Update(ctx context.Context, table string, match map[string]any, patch any) error {
	if len(match) == 0 {
		return fmt.Errorf("update %s: match is required", table)
	}
	payload, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("encode %s patch: %w", table, err)
	}
	if _, err := c.do(ctx, http.MethodPatch, c.restURL(table, matchValues(match)), bytes.NewReader(payload), "application/json"); err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, table string, match map[string]any) error {
	if len(match) == 0 {
		return fmt.Errorf("delete %s: match is required", table)
	}
	if _, err := c.do(ctx, http.MethodDelete, c.restURL(table, matchValues(match)), nil, ""); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

func (c *Client) base() string {
	return strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
}

func (c *Client) restURL(table string, v url.Values) string {
	u := c.base() + "/rest/v1/" + url.PathEscape(table)
	if len(v) > 0 {
		u += "?" + v.Encode()
	}
	return u
}

func (c *Client) do(ctx context.Context, method, u string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("apikey", c.APIKey)
	bearer := c.APIKey
	if strings.TrimSpace(c.AccessToken) != "" {
		bearer = c.AccessToken
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if method == http.MethodPost || method == http.MethodPatch {
		req.Header.Set("Prefer", "return=minimal")
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return data, &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
	}
	return data, nil
}

func errorMessage(body []byte) string {
	var parsed struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, m := range []string{parsed.Message, parsed.Msg, parsed.ErrorDescription, parsed.Error} {
			if strings.TrimSpace(m) != "" {
				return m
			}
		}
	}
	return strings.TrimSpace(string(body))
}
