package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/saadjs/gymbro/internal/localstore"
	"github.com/saadjs/gymbro/internal/model"
	"github.com/saadjs/gymbro/internal/remote"
)

var ErrRemoteRequired = errors.New("this feature requires an upgraded account with a configured backend")

// Session is the explicit context every tracker call runs in.
type Session struct {
	Profile model.UserProfile
	Local   *localstore.Store
	Remote  remote.Connection
	Logger  zerolog.Logger
}

// NewSession loads (or creates) the cached profile and binds it to conn.
func NewSession(ctx context.Context, store *localstore.Store, conn remote.Connection, logger zerolog.Logger) Session {
	if conn == nil {
		conn = remote.Unconfigured{}
	}
	return Session{
		Profile: LoadProfile(ctx, store),
		Local:   store,
		Remote:  conn,
		Logger:  logger,
	}
}

// ShouldUseRemote decides where a write goes: remote only for a paid
// profile with a configured backend.
func ShouldUseRemote(profile model.UserProfile, conn remote.Connection) bool {
	if !profile.IsPaid {
		return false
	}
	_, err := remote.ClientOf(conn)
	return err == nil
}

func (s Session) useRemote() (*remote.Client, bool) {
	if !ShouldUseRemote(s.Profile, s.Remote) {
		return nil, false
	}
	client, err := remote.ClientOf(s.Remote)
	return client, err == nil
}

// LoadProfile returns the cached user profile, creating an unpaid one on
// first use.
func LoadProfile(ctx context.Context, store *localstore.Store) model.UserProfile {
	var profile model.UserProfile
	if store.Get(ctx, localstore.KeyUser, &profile) && profile.ID != "" {
		return profile
	}
	profile = model.UserProfile{ID: uuid.NewString(), IsPaid: false}
	store.Set(ctx, localstore.KeyUser, profile)
	return profile
}
