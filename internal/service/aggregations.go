package service

import (
	"math"
	"sort"
	"strings"

	"github.com/saadjs/gymbro/internal/model"
)

const (
	trendWindow            = 5
	uncategorizedItemGroup = "Uncategorized"
)

func DailyTotals(meals []model.Meal) model.MacroTotals {
	var t model.MacroTotals
	for _, m := range meals {
		t.Calories += m.Calories
		t.Protein += m.Protein
		t.Carbs += m.Carbs
		t.Fats += m.Fats
	}
	return t
}

// EstimateOneRepMax uses the Epley formula. Zero weight or reps gives 0.
func EstimateOneRepMax(weight float64, reps int) int {
	if weight == 0 || reps == 0 {
		return 0
	}
	return int(math.Round(weight * (1 + float64(reps)/30)))
}

func TrainingVolume(sets []model.ExerciseSet) float64 {
	var total float64
	for _, s := range sets {
		total += float64(s.Sets) * float64(s.Reps) * s.Weight
	}
	return total
}

func BestOneRepMax(sets []model.ExerciseSet) int {
	best := 0
	for _, s := range sets {
		if est := EstimateOneRepMax(s.Weight, s.Reps); est > best {
			best = est
		}
	}
	return best
}

func AverageRPE(sets []model.ExerciseSet) float64 {
	if len(sets) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sets {
		sum += s.RPE
	}
	return sum / float64(len(sets))
}

// WeightTrend compares the mean weight of the latest five entries with the
// five before them, as a percentage change. Fewer than two entries give 0.
// Sparse histories can yield NaN or Inf; callers decide how to show that.
func WeightTrend(entries []model.BodyMetricEntry) float64 {
	if len(entries) < 2 {
		return 0
	}
	sorted := sortedByDate(entries)
	n := len(sorted)
	recent := sorted[max(n-trendWindow, 0):]
	older := sorted[max(n-2*trendWindow, 0):max(n-trendWindow, 0)]

	recentAvg := meanWeight(recent)
	olderAvg := meanWeight(older)
	return (recentAvg - olderAvg) / olderAvg * 100
}

func meanWeight(entries []model.BodyMetricEntry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Weight
	}
	count := float64(len(entries))
	return sum / count
}

func sortedByDate(entries []model.BodyMetricEntry) []model.BodyMetricEntry {
	out := append([]model.BodyMetricEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		ti, _ := parseRecordDate(out[i].Date)
		tj, _ := parseRecordDate(out[j].Date)
		return ti.Before(tj)
	})
	return out
}

// GenerateShoppingList expands every plan entry into its recipe's
// ingredients scaled to the planned servings. Identical ingredients from
// different entries stay separate lines.
func GenerateShoppingList(plan []model.MealPlanItem, recipes map[int64]model.Recipe) []model.ShoppingListItem {
	items := make([]model.ShoppingListItem, 0)
	for _, entry := range plan {
		recipe, ok := recipes[entry.RecipeID]
		if !ok {
			continue
		}
		base := recipe.Servings
		if base <= 0 {
			base = 1
		}
		factor := entry.Servings / base
		for _, ing := range recipe.Ingredients {
			items = append(items, model.ShoppingListItem{
				IngredientName: ing.Name,
				Amount:         ing.Amount * factor,
				Unit:           ing.Unit,
				Category:       uncategorizedItemGroup,
			})
		}
	}
	return items
}

// PersonalRecords is the heaviest weight logged per exercise.
func PersonalRecords(workouts []model.WorkoutSession) map[string]float64 {
	prs := make(map[string]float64)
	for _, w := range workouts {
		for _, ex := range w.Exercises {
			name := strings.TrimSpace(ex.ExerciseName)
			if name == "" {
				continue
			}
			if ex.Weight > prs[name] {
				prs[name] = ex.Weight
			}
		}
	}
	return prs
}

type SeriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// StrengthSeries is the best weight for one exercise per workout, oldest
// first. Workouts without that exercise are skipped.
func StrengthSeries(workouts []model.WorkoutSession, exercise string) []SeriesPoint {
	points := make([]SeriesPoint, 0)
	for _, w := range workouts {
		best := 0.0
		for _, ex := range w.Exercises {
			if strings.EqualFold(strings.TrimSpace(ex.ExerciseName), strings.TrimSpace(exercise)) && ex.Weight > best {
				best = ex.Weight
			}
		}
		if best == 0 {
			continue
		}
		points = append(points, SeriesPoint{Date: w.Date, Value: best})
	}
	return sortSeries(points)
}

func WeightSeries(entries []model.BodyMetricEntry) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, SeriesPoint{Date: e.Date, Value: e.Weight})
	}
	return sortSeries(points)
}

func CalorieSeries(logs []model.NutritionLog) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(logs))
	for _, l := range logs {
		points = append(points, SeriesPoint{Date: l.Date, Value: l.Calories})
	}
	return sortSeries(points)
}

func sortSeries(points []SeriesPoint) []SeriesPoint {
	sort.SliceStable(points, func(i, j int) bool {
		ti, _ := parseRecordDate(points[i].Date)
		tj, _ := parseRecordDate(points[j].Date)
		return ti.Before(tj)
	})
	return points
}
