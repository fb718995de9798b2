package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrNoSession      = errors.New("no remote session")
	ErrSessionExpired = errors.New("remote session expired")
)

type Session struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ParseAccessToken reads the claims of a backend-issued token without
// verifying its signature; the backend confirms the token on use.
func ParseAccessToken(token string) (Session, error) {
	claims := &accessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(strings.TrimSpace(token), claims); err != nil {
		return Session{}, fmt.Errorf("parse access token: %w", err)
	}
	s := Session{UserID: claims.Subject, Email: claims.Email}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// Session returns the signed-in user for the configured access token.
func (c *Client) Session(ctx context.Context) (Session, error) {
	if strings.TrimSpace(c.AccessToken) == "" {
		return Session{}, ErrNoSession
	}
	s, err := ParseAccessToken(c.AccessToken)
	if err != nil {
		return Session{}, err
	}
	if !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt) {
		return Session{}, ErrSessionExpired
	}

	body, err := c.do(ctx, http.MethodGet, c.base()+"/auth/v1/user", nil, "")
	if err != nil {
		return Session{}, fmt.Errorf("fetch session user: %w", err)
	}
	var user struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &user); err != nil {
		return Session{}, fmt.Errorf("decode session user: %w", err)
	}
	if user.ID != "" {
		s.UserID = user.ID
	}
	if user.Email != "" {
		s.Email = user.Email
	}
	if s.UserID == "" {
		return Session{}, ErrNoSession
	}
	return s, nil
}
