package service

import (
	"context"
	"fmt"

	"github.com/saadjs/gymbro/internal/localstore"
	"github.com/saadjs/gymbro/internal/model"
	"github.com/saadjs/gymbro/internal/remote"
)

// MockCheckout marks the profile paid without taking a payment. With a
// backend configured the users row is updated first; a failure there leaves
// the local profile unpaid.
func MockCheckout(ctx context.Context, s Session) (model.UserProfile, error) {
	profile := s.Profile
	if client, err := remote.ClientOf(s.Remote); err == nil {
		if err := client.Update(ctx, "users", map[string]any{"id": profile.ID}, map[string]bool{"is_paid": true}); err != nil {
			s.Logger.Error().Err(err).Str("user", profile.ID).Msg("mock payment update failed")
			return profile, fmt.Errorf("mark user paid: %w", err)
		}
	}
	profile.IsPaid = true
	if err := s.Local.SetE(ctx, localstore.KeyUser, profile); err != nil {
		return s.Profile, err
	}
	s.Logger.Info().Str("user", profile.ID).Msg("user marked paid (mock)")
	return profile, nil
}

// AdoptRemoteIdentity replaces the cached profile id with the signed-in
// backend user so remote rows and photo paths line up.
func AdoptRemoteIdentity(ctx context.Context, s Session) (model.UserProfile, error) {
	client, err := remote.ClientOf(s.Remote)
	if err != nil {
		return s.Profile, err
	}
	sess, err := client.Session(ctx)
	if err != nil {
		return s.Profile, err
	}
	profile := s.Profile
	profile.ID = sess.UserID
	profile.Email = sess.Email
	if err := s.Local.SetE(ctx, localstore.KeyUser, profile); err != nil {
		return s.Profile, err
	}
	return profile, nil
}
