package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/saadjs/gymbro/internal/localstore"
	"github.com/saadjs/gymbro/internal/remote"
)

const favoritesTable = "user_favorites"

type favoriteRow struct {
	RecipeID int64  `json:"recipe_id"`
	UserID   string `json:"user_id"`
}

// ToggleFavorite flips whether recipeID is a favorite and reports the new
// state. Paid profiles keep favorites remotely.
func ToggleFavorite(ctx context.Context, s Session, recipeID int64) (bool, error) {
	if recipeID <= 0 {
		return false, fmt.Errorf("recipe id must be > 0")
	}
	client, ok := s.useRemote()
	if !ok {
		favs := localstore.GetSlice[int64](ctx, s.Local, localstore.KeyFavorites)
		if i := slices.Index(favs, recipeID); i >= 0 {
			favs = slices.Delete(favs, i, i+1)
			s.Local.Set(ctx, localstore.KeyFavorites, favs)
			return false, nil
		}
		s.Local.Set(ctx, localstore.KeyFavorites, append(favs, recipeID))
		return true, nil
	}

	match := map[string]any{"recipe_id": recipeID, "user_id": s.Profile.ID}
	existing := make([]favoriteRow, 0)
	q := remote.NewQuery().Eq("recipe_id", recipeID).Eq("user_id", s.Profile.ID).Limit(1)
	if err := client.Select(ctx, favoritesTable, q, &existing); err != nil {
		s.Logger.Error().Err(err).Msg("favorite lookup failed")
		return false, err
	}
	if len(existing) > 0 {
		if err := client.Delete(ctx, favoritesTable, match); err != nil {
			s.Logger.Error().Err(err).Msg("favorite removal failed")
			return false, err
		}
		return false, nil
	}
	if err := client.Insert(ctx, favoritesTable, favoriteRow{RecipeID: recipeID, UserID: s.Profile.ID}); err != nil {
		s.Logger.Error().Err(err).Msg("favorite insert failed")
		return false, err
	}
	return true, nil
}

func FavoriteRecipeIDs(ctx context.Context, s Session) ([]int64, error) {
	client, ok := s.useRemote()
	if !ok {
		return localstore.GetSlice[int64](ctx, s.Local, localstore.KeyFavorites), nil
	}
	rows := make([]favoriteRow, 0)
	if err := client.Select(ctx, favoritesTable, remote.NewQuery().Eq("user_id", s.Profile.ID), &rows); err != nil {
		s.Logger.Error().Err(err).Msg("favorite listing failed")
		return nil, err
	}
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.RecipeID)
	}
	return ids, nil
}
