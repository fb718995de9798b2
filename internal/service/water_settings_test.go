package service_test

import (
	"context"
	"math"
	"testing"

	"github.com/saadjs/gymbro/internal/model"
	"github.com/saadjs/gymbro/internal/service"
)

func TestAddWaterAccumulatesPerDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestSession(t, forbiddenBackend(t), true)

	if _, err := service.AddWater(ctx, s, "250", testNow); err != nil {
		t.Fatalf("add water: %v", err)
	}
	summary, err := service.AddWater(ctx, s, "500", testNow)
	if err != nil {
		t.Fatalf("add water: %v", err)
	}
	if summary.TotalML != 750 || summary.GoalML != 2000 || summary.Remaining() != 1250 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if logs := service.LoadWaterLogs(ctx, s); len(logs) != 1 {
		t.Fatalf("expected a single merged log, got %+v", logs)
	}

	if _, err := service.AddWater(ctx, s, "300", testNow.AddDate(0, 0, 1)); err != nil {
		t.Fatalf("add water next day: %v", err)
	}
	if logs := service.LoadWaterLogs(ctx, s); len(logs) != 2 {
		t.Fatalf("expected one log per day, got %+v", logs)
	}

	for _, bad := range []string{"0", "-5", "lots"} {
		if _, err := service.AddWater(ctx, s, bad, testNow); err == nil {
			t.Fatalf("expected error for amount %q", bad)
		}
	}
}

func TestWaterGoalFromSettings(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestSession(t, nil, false)
	if _, err := service.SetWaterGoal(ctx, s.Local, 3000); err != nil {
		t.Fatalf("set water goal: %v", err)
	}
	if _, err := service.SetWaterGoal(ctx, s.Local, 0); err == nil {
		t.Fatalf("expected goal validation error")
	}
	summary, err := service.AddWater(ctx, s, "3500", testNow)
	if err != nil {
		t.Fatalf("add water: %v", err)
	}
	if summary.GoalML != 3000 || summary.Remaining() != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestSettingsDefaultsAndSystem(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, store := newTestStore(t)
	settings := service.LoadSettings(ctx, store)
	if settings.MeasurementSystem != model.Metric || settings.WaterGoalML != 2000 {
		t.Fatalf("unexpected defaults: %+v", settings)
	}
	if _, err := service.SetMeasurementSystem(ctx, store, "Imperial"); err != nil {
		t.Fatalf("set system: %v", err)
	}
	if got := service.LoadSettings(ctx, store).MeasurementSystem; got != model.Imperial {
		t.Fatalf("expected imperial, got %q", got)
	}
	if _, err := service.SetMeasurementSystem(ctx, store, "cubits"); err == nil {
		t.Fatalf("expected invalid system error")
	}
	if got := service.DisplayWeight(80, model.Imperial); got != "176.4 lb" {
		t.Fatalf("unexpected display weight %q", got)
	}
	if got := service.DisplayWeight(80, model.Metric); got != "80.0 kg" {
		t.Fatalf("unexpected display weight %q", got)
	}
}

func TestConvertMeasurement(t *testing.T) {
	t.Parallel()
	cases := []struct {
		value  float64
		unit   string
		system model.MeasurementSystem
		want   float64
		unitTo string
	}{
		{value: 100, unit: "g", system: model.Imperial, want: 3.5274, unitTo: "oz"},
		{value: 100, unit: "g", system: model.Metric, want: 100, unitTo: "g"},
		{value: 1, unit: "oz", system: model.Metric, want: 28.3495, unitTo: "g"},
		{value: 500, unit: "ml", system: model.Imperial, want: 16.907, unitTo: "fl oz"},
		{value: 100, unit: "°C", system: model.Imperial, want: 212, unitTo: "°F"},
		{value: 32, unit: "°F", system: model.Metric, want: 0, unitTo: "°C"},
		{value: 2, unit: "cup", system: model.Imperial, want: 2, unitTo: "cup"},
	}
	for _, tc := range cases {
		got, unit := service.ConvertMeasurement(tc.value, tc.unit, tc.system)
		if math.Abs(got-tc.want) > 0.01 || unit != tc.unitTo {
			t.Fatalf("ConvertMeasurement(%v %s, %s) = %v %s, want %v %s", tc.value, tc.unit, tc.system, got, unit, tc.want, tc.unitTo)
		}
	}
	if got := service.FormatMeasurement(100, "g", model.Imperial); got != "3.5 oz" {
		t.Fatalf("unexpected formatted measurement %q", got)
	}
}

func TestConvertIngredientAmount(t *testing.T) {
	t.Parallel()
	out, err := service.ConvertIngredientAmount(100, "g", "oz", 0)
	if err != nil {
		t.Fatalf("convert mass units: %v", err)
	}
	if math.Abs(out-3.5274) > 0.01 {
		t.Fatalf("expected ~3.53 oz, got %.4f", out)
	}
	if _, err := service.ConvertIngredientAmount(1, "cup", "g", 0); err == nil {
		t.Fatalf("expected density requirement error")
	}
	out, err = service.ConvertIngredientAmount(1, "cup", "g", 1.05)
	if err != nil {
		t.Fatalf("convert volume to mass with density: %v", err)
	}
	if math.Abs(out-248.4) > 0.5 {
		t.Fatalf("expected ~248.4 g, got %.4f", out)
	}
}

func TestParseNumber(t *testing.T) {
	t.Parallel()
	cases := map[string]float64{"12.5": 12.5, " 3 ": 3, "": 0, "abc": 0, "NaN": 0, "Inf": 0}
	for in, want := range cases {
		if got := service.ParseNumber(in); got != want {
			t.Fatalf("ParseNumber(%q) = %v, want %v", in, got, want)
		}
	}
	if got := service.ParseInt("7.9"); got != 7 {
		t.Fatalf("expected truncated 7, got %d", got)
	}
}
