package model

import "time"

type UserProfile struct {
	ID     string `json:"id"`
	Email  string `json:"email,omitempty"`
	IsPaid bool   `json:"is_paid"`
}

type ExerciseSet struct {
	ExerciseName string  `json:"exercise_name"`
	Sets         int     `json:"sets"`
	Reps         int     `json:"reps"`
	Weight       float64 `json:"weight"`
	RPE          float64 `json:"rpe"`
}

type WorkoutSession struct {
	Date      string        `json:"date"`
	Exercises []ExerciseSet `json:"exercises"`
}

type Meal struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type MacroTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type NutritionLog struct {
	Date     string  `json:"date"`
	Meals    []Meal  `json:"meals"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type BodyMetricEntry struct {
	Date       string   `json:"date"`
	Weight     float64  `json:"weight"`
	BodyFatPct *float64 `json:"body_fat_pct,omitempty"`
	Chest      *float64 `json:"chest,omitempty"`
	Waist      *float64 `json:"waist,omitempty"`
	Arms       *float64 `json:"arms,omitempty"`
	Thighs     *float64 `json:"thighs,omitempty"`
}

type WaterLog struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type ProgressPhoto struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type ShoppingListItem struct {
	ID             string  `json:"id"`
	IngredientName string  `json:"ingredient_name"`
	Amount         float64 `json:"amount"`
	Unit           string  `json:"unit"`
	Category       string  `json:"category"`
	IsChecked      bool    `json:"is_checked"`
}

type ShoppingList struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	WeekStart string             `json:"week_start,omitempty"`
	Items     []ShoppingListItem `json:"items"`
	CreatedAt string             `json:"created_at"`
}

type Recipe struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Servings     float64            `json:"servings"`
	Calories     int                `json:"calories_per_serving"`
	Protein      float64            `json:"protein_per_serving"`
	Carbs        float64            `json:"carbs_per_serving"`
	Fat          float64            `json:"fat_per_serving"`
	MealType     string             `json:"meal_type"`
	IsVegetarian bool               `json:"is_vegetarian"`
	IsGlutenFree bool               `json:"is_gluten_free"`
	IsDairyFree  bool               `json:"is_dairy_free"`
	Notes        string             `json:"notes,omitempty"`
	Ingredients  []RecipeIngredient `json:"ingredients,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type RecipeIngredient struct {
	ID        int64     `json:"id"`
	RecipeID  int64     `json:"recipe_id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
}

type MealPlanItem struct {
	ID         int64   `json:"id"`
	WeekStart  string  `json:"week_start"`
	DayOfWeek  int     `json:"day_of_week"`
	MealType   string  `json:"meal_type"`
	RecipeID   int64   `json:"recipe_id"`
	RecipeName string  `json:"recipe_name,omitempty"`
	Servings   float64 `json:"servings"`
}

type MeasurementSystem string

const (
	Metric   MeasurementSystem = "metric"
	Imperial MeasurementSystem = "imperial"
)

type Settings struct {
	MeasurementSystem MeasurementSystem `json:"measurement_system"`
	WaterGoalML       float64           `json:"water_goal_ml"`
}

type FoodResult struct {
	Name     string  `json:"name"`
	Brand    string  `json:"brand,omitempty"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type ExerciseResult struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

type ExportDocument struct {
	Workouts      []WorkoutSession  `json:"workouts"`
	NutritionLogs []NutritionLog    `json:"nutrition_logs"`
	BodyMetrics   []BodyMetricEntry `json:"body_metrics"`
	WaterLogs     []WaterLog        `json:"water_logs"`
	User          *UserProfile      `json:"user"`
	ExportedAt    string            `json:"exported_at"`
	Version       string            `json:"version"`
}
