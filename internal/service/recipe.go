package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/saadjs/gymbro/internal/model"
)

type RecipeInput struct {
	Name         string
	Servings     float64
	Calories     int
	Protein      float64
	Carbs        float64
	Fat          float64
	MealType     string
	IsVegetarian bool
	IsGlutenFree bool
	IsDairyFree  bool
	Notes        string
}

const recipeColumns = `id, name, servings, calories_per_serving, protein_per_serving, carbs_per_serving, fat_per_serving,
  meal_type, is_vegetarian, is_gluten_free, is_dairy_free, IFNULL(notes,''), created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (model.Recipe, error) {
	var r model.Recipe
	err := row.Scan(&r.ID, &r.Name, &r.Servings, &r.Calories, &r.Protein, &r.Carbs, &r.Fat,
		&r.MealType, &r.IsVegetarian, &r.IsGlutenFree, &r.IsDairyFree, &r.Notes, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func CreateRecipe(db *sql.DB, in RecipeInput) (int64, error) {
	if err := validateRecipeInput(in); err != nil {
		return 0, err
	}
	res, err := db.Exec(`
INSERT INTO recipes(name, servings, calories_per_serving, protein_per_serving, carbs_per_serving, fat_per_serving,
  meal_type, is_vegetarian, is_gluten_free, is_dairy_free, notes)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, strings.TrimSpace(in.Name), in.Servings, in.Calories, in.Protein, in.Carbs, in.Fat,
		normalizeMealType(in.MealType), in.IsVegetarian, in.IsGlutenFree, in.IsDairyFree, strings.TrimSpace(in.Notes))
	if err != nil {
		return 0, fmt.Errorf("create recipe: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve recipe id: %w", err)
	}
	return id, nil
}

// ListRecipes returns every recipe with its ingredients, ordered by name.
func ListRecipes(db *sql.DB) ([]model.Recipe, error) {
	rows, err := db.Query(`SELECT ` + recipeColumns + ` FROM recipes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	items := make([]model.Recipe, 0)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	_ = rows.Close()

	for i := range items {
		ings, err := listIngredientsByRecipeID(db, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Ingredients = ings
	}
	return items, nil
}

func ResolveRecipe(db *sql.DB, idOrName string) (*model.Recipe, error) {
	idOrName = strings.TrimSpace(idOrName)
	if idOrName == "" {
		return nil, fmt.Errorf("recipe identifier is required")
	}
	var row *sql.Row
	if id, err := parseIDLoose(idOrName); err == nil {
		row = db.QueryRow(`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	} else {
		row = db.QueryRow(`SELECT `+recipeColumns+` FROM recipes WHERE LOWER(name) = ?`, strings.ToLower(idOrName))
	}
	r, err := scanRecipe(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("recipe %q not found", idOrName)
		}
		return nil, fmt.Errorf("resolve recipe %q: %w", idOrName, err)
	}
	ings, err := listIngredientsByRecipeID(db, r.ID)
	if err != nil {
		return nil, err
	}
	r.Ingredients = ings
	return &r, nil
}

func UpdateRecipe(db *sql.DB, idOrName string, in RecipeInput) error {
	if err := validateRecipeInput(in); err != nil {
		return err
	}
	recipe, err := ResolveRecipe(db, idOrName)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
UPDATE recipes SET
  name = ?, servings = ?, calories_per_serving = ?, protein_per_serving = ?, carbs_per_serving = ?, fat_per_serving = ?,
  meal_type = ?, is_vegetarian = ?, is_gluten_free = ?, is_dairy_free = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, strings.TrimSpace(in.Name), in.Servings, in.Calories, in.Protein, in.Carbs, in.Fat,
		normalizeMealType(in.MealType), in.IsVegetarian, in.IsGlutenFree, in.IsDairyFree, strings.TrimSpace(in.Notes), recipe.ID)
	if err != nil {
		return fmt.Errorf("update recipe %q: %w", idOrName, err)
	}
	return nil
}

func DeleteRecipe(db *sql.DB, idOrName string) error {
	recipe, err := ResolveRecipe(db, idOrName)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`DELETE FROM recipes WHERE id = ?`, recipe.ID); err != nil {
		return fmt.Errorf("delete recipe %q: %w", idOrName, err)
	}
	return nil
}

type RecipeFilter struct {
	Ingredients []string
	MinProtein  float64
	MaxCalories int
	Diet        string
	MealType    string
}

// FilterRecipes keeps recipes that contain every requested ingredient (by
// substring) and satisfy the macro and diet limits. Zero limits are ignored.
func FilterRecipes(recipes []model.Recipe, f RecipeFilter) ([]model.Recipe, error) {
	diet := strings.ToLower(strings.TrimSpace(f.Diet))
	switch diet {
	case "", "vegetarian", "gluten-free", "dairy-free":
	default:
		return nil, fmt.Errorf("invalid diet %q (use vegetarian, gluten-free or dairy-free)", f.Diet)
	}
	mealType := normalizeMealType(f.MealType)

	out := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if !hasAllIngredients(r, f.Ingredients) {
			continue
		}
		if f.MinProtein > 0 && r.Protein < f.MinProtein {
			continue
		}
		if f.MaxCalories > 0 && r.Calories > f.MaxCalories {
			continue
		}
		if diet == "vegetarian" && !r.IsVegetarian ||
			diet == "gluten-free" && !r.IsGlutenFree ||
			diet == "dairy-free" && !r.IsDairyFree {
			continue
		}
		if mealType != "" && r.MealType != mealType {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func hasAllIngredients(r model.Recipe, wanted []string) bool {
	for _, w := range wanted {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		found := false
		for _, ing := range r.Ingredients {
			if strings.Contains(strings.ToLower(ing.Name), w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func validateRecipeInput(in RecipeInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("recipe name is required")
	}
	if in.Servings <= 0 {
		return fmt.Errorf("servings must be > 0")
	}
	if err := validateNonNegativeInt("calories", in.Calories); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("protein", in.Protein); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("carbs", in.Carbs); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("fat", in.Fat); err != nil {
		return err
	}
	if mt := normalizeMealType(in.MealType); mt != "" && !isMealType(mt) {
		return fmt.Errorf("invalid meal type %q (use breakfast, lunch, dinner or snack)", in.MealType)
	}
	return nil
}

func parseIDLoose(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("not numeric")
	}
	return id, nil
}
