package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/saadjs/gymbro/internal/model"
)

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// WeekStart returns the Sunday that begins t's week as YYYY-MM-DD.
func WeekStart(t time.Time) string {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -int(d.Weekday())).Format(time.DateOnly)
}

func normalizeWeekStart(value string, now time.Time) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return WeekStart(now), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, value, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid week %q (expected YYYY-MM-DD)", value)
	}
	return WeekStart(t), nil
}

// ParseWeekday accepts 0-6 (Sunday first) or a day name.
func ParseWeekday(value string) (int, error) {
	value = strings.TrimSpace(value)
	for i, name := range weekdayNames {
		if strings.EqualFold(value, name) || strings.EqualFold(value, name[:3]) {
			return i, nil
		}
	}
	if len(value) == 1 && value[0] >= '0' && value[0] <= '6' {
		return int(value[0] - '0'), nil
	}
	return 0, fmt.Errorf("invalid day %q (use 0-6 or a weekday name)", value)
}

type MealPlanInput struct {
	WeekStart        string
	Day              int
	MealType         string
	RecipeIdentifier string
	Servings         float64
}

// SetMealPlanItem places a recipe in one day/meal slot, replacing whatever
// was planned there.
func SetMealPlanItem(db *sql.DB, in MealPlanInput, now time.Time) (int64, error) {
	week, err := normalizeWeekStart(in.WeekStart, now)
	if err != nil {
		return 0, err
	}
	if in.Day < 0 || in.Day > 6 {
		return 0, fmt.Errorf("day must be between 0 and 6")
	}
	mealType := normalizeMealType(in.MealType)
	if !isMealType(mealType) {
		return 0, fmt.Errorf("invalid meal type %q (use breakfast, lunch, dinner or snack)", in.MealType)
	}
	if in.Servings <= 0 {
		return 0, fmt.Errorf("servings must be > 0")
	}
	recipe, err := ResolveRecipe(db, in.RecipeIdentifier)
	if err != nil {
		return 0, err
	}
	res, err := db.Exec(`
INSERT INTO meal_plan_items(week_start, day_of_week, meal_type, recipe_id, servings)
VALUES(?, ?, ?, ?, ?)
ON CONFLICT(week_start, day_of_week, meal_type) DO UPDATE SET recipe_id = excluded.recipe_id, servings = excluded.servings
`, week, in.Day, mealType, recipe.ID, in.Servings)
	if err != nil {
		return 0, fmt.Errorf("set meal plan item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve meal plan item id: %w", err)
	}
	return id, nil
}

func ListMealPlan(db *sql.DB, weekStart string, now time.Time) ([]model.MealPlanItem, error) {
	week, err := normalizeWeekStart(weekStart, now)
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(`
SELECT m.id, m.week_start, m.day_of_week, m.meal_type, m.recipe_id, r.name, m.servings
FROM meal_plan_items m JOIN recipes r ON r.id = m.recipe_id
WHERE m.week_start = ?
ORDER BY m.day_of_week,
  CASE m.meal_type WHEN 'breakfast' THEN 0 WHEN 'lunch' THEN 1 WHEN 'dinner' THEN 2 ELSE 3 END
`, week)
	if err != nil {
		return nil, fmt.Errorf("list meal plan: %w", err)
	}
	defer rows.Close()
	items := make([]model.MealPlanItem, 0)
	for rows.Next() {
		var it model.MealPlanItem
		if err := rows.Scan(&it.ID, &it.WeekStart, &it.DayOfWeek, &it.MealType, &it.RecipeID, &it.RecipeName, &it.Servings); err != nil {
			return nil, fmt.Errorf("scan meal plan item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal plan: %w", err)
	}
	return items, nil
}

func RemoveMealPlanItem(db *sql.DB, weekStart string, day int, mealType string, now time.Time) error {
	week, err := normalizeWeekStart(weekStart, now)
	if err != nil {
		return err
	}
	if day < 0 || day > 6 {
		return fmt.Errorf("day must be between 0 and 6")
	}
	res, err := db.Exec(`DELETE FROM meal_plan_items WHERE week_start = ? AND day_of_week = ? AND meal_type = ?`,
		week, day, normalizeMealType(mealType))
	if err != nil {
		return fmt.Errorf("remove meal plan item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("nothing planned for %s %s", weekdayNames[day], normalizeMealType(mealType))
	}
	return nil
}

// PlannedShoppingItems builds the unsaved shopping list for a week.
func PlannedShoppingItems(db *sql.DB, weekStart string, now time.Time) (string, []model.ShoppingListItem, error) {
	plan, err := ListMealPlan(db, weekStart, now)
	if err != nil {
		return "", nil, err
	}
	week, _ := normalizeWeekStart(weekStart, now)
	recipes := make(map[int64]model.Recipe)
	for _, it := range plan {
		if _, ok := recipes[it.RecipeID]; ok {
			continue
		}
		r, err := ResolveRecipe(db, fmt.Sprint(it.RecipeID))
		if err != nil {
			return "", nil, err
		}
		recipes[it.RecipeID] = *r
	}
	return week, GenerateShoppingList(plan, recipes), nil
}

// MealPlanCalendar renders a week's plan as an iCalendar document with one
// all-day event per planned meal.
func MealPlanCalendar(db *sql.DB, weekStart string, now time.Time) (string, error) {
	plan, err := ListMealPlan(db, weekStart, now)
	if err != nil {
		return "", err
	}
	week, _ := normalizeWeekStart(weekStart, now)
	start, err := time.ParseInLocation(time.DateOnly, week, time.Local)
	if err != nil {
		return "", fmt.Errorf("parse week start: %w", err)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//gymbro//meal plan//EN")
	cal.SetXWRCalName("Meal plan week of " + week)
	for _, it := range plan {
		day := start.AddDate(0, 0, it.DayOfWeek)
		event := cal.AddEvent(fmt.Sprintf("mealplan-%s-%d-%s@gymbro", week, it.DayOfWeek, it.MealType))
		event.SetDtStampTime(now.UTC())
		event.SetSummary(fmt.Sprintf("%s: %s", titleCase(it.MealType), it.RecipeName))
		event.SetDescription(fmt.Sprintf("%.2f servings", it.Servings))
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
	}
	return cal.Serialize(), nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
