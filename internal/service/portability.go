package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/saadjs/gymbro/internal/localstore"
	"github.com/saadjs/gymbro/internal/model"
)

const ExportVersion = "1.0"

var ErrInvalidImport = errors.New("invalid import file")

type ImportSummary struct {
	Workouts      int
	NutritionLogs int
	BodyMetrics   int
	WaterLogs     int
}

// Export snapshots every local collection plus the cached profile.
func Export(ctx context.Context, store *localstore.Store, now time.Time) model.ExportDocument {
	doc := model.ExportDocument{
		Workouts:      localstore.GetSlice[model.WorkoutSession](ctx, store, localstore.KeyWorkouts),
		NutritionLogs: localstore.GetSlice[model.NutritionLog](ctx, store, localstore.KeyNutritionLogs),
		BodyMetrics:   localstore.GetSlice[model.BodyMetricEntry](ctx, store, localstore.KeyBodyMetrics),
		WaterLogs:     localstore.GetSlice[model.WaterLog](ctx, store, localstore.KeyWaterLogs),
		ExportedAt:    now.UTC().Format(time.RFC3339),
		Version:       ExportVersion,
	}
	var profile model.UserProfile
	if store.Get(ctx, localstore.KeyUser, &profile) {
		doc.User = &profile
	}
	return doc
}

func MarshalExport(doc model.ExportDocument) ([]byte, error) {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return raw, nil
}

type importDocument struct {
	Version       *string                 `json:"version"`
	Workouts      []model.WorkoutSession  `json:"workouts"`
	NutritionLogs []model.NutritionLog    `json:"nutrition_logs"`
	BodyMetrics   []model.BodyMetricEntry `json:"body_metrics"`
	WaterLogs     []model.WaterLog        `json:"water_logs"`
}

// Import replaces each collection present in raw. The document must carry
// a version. The local profile, and with it the tier, is never imported.
func Import(ctx context.Context, store *localstore.Store, raw []byte) (ImportSummary, error) {
	var doc importDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ImportSummary{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if doc.Version == nil {
		return ImportSummary{}, fmt.Errorf("%w: missing version", ErrInvalidImport)
	}

	summary := ImportSummary{}
	writes := []struct {
		key     string
		present bool
		value   any
		count   *int
		n       int
	}{
		{localstore.KeyWorkouts, doc.Workouts != nil, doc.Workouts, &summary.Workouts, len(doc.Workouts)},
		{localstore.KeyNutritionLogs, doc.NutritionLogs != nil, doc.NutritionLogs, &summary.NutritionLogs, len(doc.NutritionLogs)},
		{localstore.KeyBodyMetrics, doc.BodyMetrics != nil, doc.BodyMetrics, &summary.BodyMetrics, len(doc.BodyMetrics)},
		{localstore.KeyWaterLogs, doc.WaterLogs != nil, doc.WaterLogs, &summary.WaterLogs, len(doc.WaterLogs)},
	}
	for _, w := range writes {
		if !w.present {
			continue
		}
		if err := store.SetE(ctx, w.key, w.value); err != nil {
			return summary, fmt.Errorf("import %s: %w", w.key, err)
		}
		*w.count = w.n
	}
	return summary, nil
}
