package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

type StorageObject struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Client) Upload(ctx context.Context, bucket, path, contentType string, body io.Reader) error {
	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}
	if _, err := c.do(ctx, http.MethodPost, c.objectURL("", bucket, path), body, contentType); err != nil {
		return fmt.Errorf("upload %s/%s: %w", bucket, path, err)
	}
	return nil
}

// List returns objects under prefix, newest first.
func (c *Client) List(ctx context.Context, bucket, prefix string) ([]StorageObject, error) {
	payload, err := json.Marshal(map[string]any{
		"prefix": strings.Trim(prefix, "/"),
		"limit":  100,
		"offset": 0,
		"sortBy": map[string]string{"column": "created_at", "order": "desc"},
	})
	if err != nil {
		return nil, fmt.Errorf("encode list request: %w", err)
	}
	u := c.base() + "/storage/v1/object/list/" + url.PathEscape(bucket)
	body, err := c.do(ctx, http.MethodPost, u, bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, fmt.Errorf("list %s/%s: %w", bucket, prefix, err)
	}
	objects := make([]StorageObject, 0)
	if err := json.Unmarshal(body, &objects); err != nil {
		return nil, fmt.Errorf("decode %s listing: %w", bucket, err)
	}
	return objects, nil
}

func (c *Client) PublicURL(bucket, path string) string {
	return c.objectURL("public", bucket, path)
}

func (c *Client) objectURL(scope, bucket, path string) string {
	parts := []string{c.base(), "storage", "v1", "object"}
	if scope != "" {
		parts = append(parts, scope)
	}
	parts = append(parts, url.PathEscape(bucket))
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		parts = append(parts, url.PathEscape(seg))
	}
	return strings.Join(parts, "/")
}
