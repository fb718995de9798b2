package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/saadjs/gymbro/internal/model"
)

var ErrWeightRequired = errors.New("weight must be > 0")

// BodyMetricDraft holds the raw form values. Blank optional fields are
// omitted from the saved entry.
type BodyMetricDraft struct {
	Weight     string
	Unit       string
	BodyFatPct string
	Chest      string
	Waist      string
	Arms       string
	Thighs     string
}

func (d BodyMetricDraft) build(now time.Time) (model.BodyMetricEntry, error) {
	weightKg, err := convertWeightToKg(ParseNumber(d.Weight), d.Unit)
	if err != nil {
		return model.BodyMetricEntry{}, err
	}
	entry := model.BodyMetricEntry{
		Date:       now.UTC().Format(time.RFC3339),
		Weight:     weightKg,
		BodyFatPct: parseOptional(d.BodyFatPct),
		Chest:      parseOptional(d.Chest),
		Waist:      parseOptional(d.Waist),
		Arms:       parseOptional(d.Arms),
		Thighs:     parseOptional(d.Thighs),
	}
	if entry.BodyFatPct != nil && (*entry.BodyFatPct < 0 || *entry.BodyFatPct > 100) {
		return model.BodyMetricEntry{}, fmt.Errorf("body-fat must be between 0 and 100")
	}
	return entry, nil
}

func SaveBodyMetric(ctx context.Context, s Session, in BodyMetricDraft, now time.Time) ([]model.BodyMetricEntry, error) {
	entry, err := in.build(now)
	if err != nil {
		return nil, err
	}
	return saveRecord(ctx, s, bodyMetricsKind, entry)
}

func LoadBodyMetrics(ctx context.Context, s Session) ([]model.BodyMetricEntry, error) {
	return loadRecords[model.BodyMetricEntry](ctx, s, bodyMetricsKind)
}

// ParseMetricWindow accepts all, 7, 30 or 90 and returns the window in days,
// 0 meaning no limit.
func ParseMetricWindow(value string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return 0, nil
	case "7":
		return 7, nil
	case "30":
		return 30, nil
	case "90":
		return 90, nil
	default:
		return 0, fmt.Errorf("invalid window %q (use all, 7, 30 or 90)", value)
	}
}

// FilterBodyMetrics keeps entries from the last days (all when days <= 0),
// newest first.
func FilterBodyMetrics(entries []model.BodyMetricEntry, days int, now time.Time) []model.BodyMetricEntry {
	start := now.AddDate(0, 0, -days)
	out := make([]model.BodyMetricEntry, 0, len(entries))
	for _, e := range entries {
		if days > 0 {
			t, ok := parseRecordDate(e.Date)
			if !ok || t.Before(start) {
				continue
			}
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, _ := parseRecordDate(out[i].Date)
		tj, _ := parseRecordDate(out[j].Date)
		return ti.After(tj)
	})
	return out
}

func parseRecordDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func convertWeightToKg(value float64, unit string) (float64, error) {
	if value <= 0 {
		return 0, ErrWeightRequired
	}
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return value, nil
	case "lb", "lbs":
		return value * 0.45359237, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}

func weightFromKg(weightKg float64, unit string) (float64, error) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return weightKg, nil
	case "lb", "lbs":
		return weightKg / 0.45359237, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}
