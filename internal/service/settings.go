package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/saadjs/gymbro/internal/localstore"
	"github.com/saadjs/gymbro/internal/model"
)

func defaultSettings() model.Settings {
	return model.Settings{MeasurementSystem: model.Metric, WaterGoalML: DefaultWaterGoalML}
}

// LoadSettings returns stored settings with defaults filled in.
func LoadSettings(ctx context.Context, store *localstore.Store) model.Settings {
	settings := defaultSettings()
	var stored model.Settings
	if store.Get(ctx, localstore.KeySettings, &stored) {
		if stored.MeasurementSystem == model.Metric || stored.MeasurementSystem == model.Imperial {
			settings.MeasurementSystem = stored.MeasurementSystem
		}
		if stored.WaterGoalML > 0 {
			settings.WaterGoalML = stored.WaterGoalML
		}
	}
	return settings
}

func SetMeasurementSystem(ctx context.Context, store *localstore.Store, system string) (model.Settings, error) {
	s := model.MeasurementSystem(strings.ToLower(strings.TrimSpace(system)))
	if s != model.Metric && s != model.Imperial {
		return model.Settings{}, fmt.Errorf("invalid measurement system %q (use metric or imperial)", system)
	}
	settings := LoadSettings(ctx, store)
	settings.MeasurementSystem = s
	if err := store.SetE(ctx, localstore.KeySettings, settings); err != nil {
		return model.Settings{}, err
	}
	return settings, nil
}

func SetWaterGoal(ctx context.Context, store *localstore.Store, goalML float64) (model.Settings, error) {
	if goalML <= 0 {
		return model.Settings{}, fmt.Errorf("water goal must be > 0")
	}
	settings := LoadSettings(ctx, store)
	settings.WaterGoalML = goalML
	if err := store.SetE(ctx, localstore.KeySettings, settings); err != nil {
		return model.Settings{}, err
	}
	return settings, nil
}

// DisplayWeight renders a kilogram body weight in the system's unit.
func DisplayWeight(weightKg float64, system model.MeasurementSystem) string {
	if system == model.Imperial {
		lb, err := weightFromKg(weightKg, "lb")
		if err == nil {
			return fmt.Sprintf("%.1f lb", lb)
		}
	}
	return fmt.Sprintf("%.1f kg", weightKg)
}
