package service

import (
	"context"
	"fmt"
	"time"

	"github.com/saadjs/gymbro/internal/localstore"
	"github.com/saadjs/gymbro/internal/model"
)

const DefaultWaterGoalML = 2000

type WaterSummary struct {
	Date    string
	TotalML float64
	GoalML  float64
}

// Remaining is how much is left to reach the goal, never negative.
func (w WaterSummary) Remaining() float64 {
	if w.TotalML >= w.GoalML {
		return 0
	}
	return w.GoalML - w.TotalML
}

// AddWater adds amount ml to today's log. Water is kept on this device in
// every tier, and repeated additions on one date accumulate in a single
// entry.
func AddWater(ctx context.Context, s Session, amount string, now time.Time) (WaterSummary, error) {
	ml := ParseNumber(amount)
	if ml <= 0 {
		return WaterSummary{}, fmt.Errorf("water amount must be > 0")
	}
	today := now.UTC().Format(time.DateOnly)
	logs := localstore.GetSlice[model.WaterLog](ctx, s.Local, localstore.KeyWaterLogs)
	found := false
	for i := range logs {
		if logs[i].Date == today {
			logs[i].Amount += ml
			found = true
			break
		}
	}
	if !found {
		logs = append(logs, model.WaterLog{Date: today, Amount: ml})
	}
	s.Local.Set(ctx, localstore.KeyWaterLogs, logs)
	return TodayWater(ctx, s, now), nil
}

func TodayWater(ctx context.Context, s Session, now time.Time) WaterSummary {
	today := now.UTC().Format(time.DateOnly)
	summary := WaterSummary{Date: today, GoalML: LoadSettings(ctx, s.Local).WaterGoalML}
	for _, l := range LoadWaterLogs(ctx, s) {
		if l.Date == today {
			summary.TotalML = l.Amount
			break
		}
	}
	return summary
}

func LoadWaterLogs(ctx context.Context, s Session) []model.WaterLog {
	return localstore.GetSlice[model.WaterLog](ctx, s.Local, localstore.KeyWaterLogs)
}
