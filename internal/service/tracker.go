package service

import (
	"context"
	"fmt"

	"github.com/saadjs/gymbro/internal/localstore"
	"github.com/saadjs/gymbro/internal/remote"
)

// recordKind names where one entity lives in each tier.
type recordKind struct {
	localKey    string
	remoteTable string
	remoteOrder string
	ascending   bool
}

var (
	workoutsKind      = recordKind{localKey: localstore.KeyWorkouts, remoteTable: "workouts", remoteOrder: "date", ascending: true}
	nutritionLogsKind = recordKind{localKey: localstore.KeyNutritionLogs, remoteTable: "nutrition_logs", remoteOrder: "date", ascending: true}
	bodyMetricsKind   = recordKind{localKey: localstore.KeyBodyMetrics, remoteTable: "body_metrics", remoteOrder: "date"}
)

// saveRecord appends rec locally or inserts it remotely, then reloads the
// whole list from the same tier.
func saveRecord[T any](ctx context.Context, s Session, kind recordKind, rec T) ([]T, error) {
	if client, ok := s.useRemote(); ok {
		if err := client.Insert(ctx, kind.remoteTable, rec); err != nil {
			s.Logger.Error().Err(err).Str("table", kind.remoteTable).Msg("remote save failed")
			return nil, fmt.Errorf("save %s: %w", kind.remoteTable, err)
		}
	} else {
		existing := localstore.GetSlice[T](ctx, s.Local, kind.localKey)
		s.Local.Set(ctx, kind.localKey, append(existing, rec))
	}
	return loadRecords[T](ctx, s, kind)
}

func loadRecords[T any](ctx context.Context, s Session, kind recordKind) ([]T, error) {
	client, ok := s.useRemote()
	if !ok {
		return localstore.GetSlice[T](ctx, s.Local, kind.localKey), nil
	}
	q := remote.NewQuery()
	if kind.remoteOrder != "" {
		q.Order(kind.remoteOrder, kind.ascending)
	}
	rows := make([]T, 0)
	if err := client.Select(ctx, kind.remoteTable, q, &rows); err != nil {
		s.Logger.Error().Err(err).Str("table", kind.remoteTable).Msg("remote load failed")
		return nil, fmt.Errorf("load %s: %w", kind.remoteTable, err)
	}
	return rows, nil
}
