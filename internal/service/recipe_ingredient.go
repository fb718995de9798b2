package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/saadjs/gymbro/internal/model"
)

type RecipeIngredientInput struct {
	Name   string
	Amount float64
	Unit   string
}

func AddRecipeIngredient(db *sql.DB, recipeIdentifier string, in RecipeIngredientInput) (int64, error) {
	recipe, err := ResolveRecipe(db, recipeIdentifier)
	if err != nil {
		return 0, err
	}
	if err := validateRecipeIngredientInput(in); err != nil {
		return 0, err
	}
	res, err := db.Exec(`
INSERT INTO recipe_ingredients(recipe_id, name, amount, unit)
VALUES(?, ?, ?, ?)
`, recipe.ID, strings.TrimSpace(in.Name), in.Amount, strings.TrimSpace(in.Unit))
	if err != nil {
		return 0, fmt.Errorf("add recipe ingredient: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve recipe ingredient id: %w", err)
	}
	return id, nil
}

func ListRecipeIngredients(db *sql.DB, recipeIdentifier string) ([]model.RecipeIngredient, error) {
	recipe, err := ResolveRecipe(db, recipeIdentifier)
	if err != nil {
		return nil, err
	}
	return recipe.Ingredients, nil
}

func listIngredientsByRecipeID(db *sql.DB, recipeID int64) ([]model.RecipeIngredient, error) {
	rows, err := db.Query(`
SELECT id, recipe_id, name, amount, unit, created_at
FROM recipe_ingredients
WHERE recipe_id = ?
ORDER BY id ASC
`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list recipe ingredients: %w", err)
	}
	defer rows.Close()
	items := make([]model.RecipeIngredient, 0)
	for rows.Next() {
		var it model.RecipeIngredient
		if err := rows.Scan(&it.ID, &it.RecipeID, &it.Name, &it.Amount, &it.Unit, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipe ingredients: %w", err)
	}
	return items, nil
}

func DeleteRecipeIngredient(db *sql.DB, ingredientID int64) error {
	if ingredientID <= 0 {
		return fmt.Errorf("ingredient id must be > 0")
	}
	res, err := db.Exec(`DELETE FROM recipe_ingredients WHERE id = ?`, ingredientID)
	if err != nil {
		return fmt.Errorf("delete recipe ingredient %d: %w", ingredientID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("recipe ingredient %d not found", ingredientID)
	}
	return nil
}

func validateRecipeIngredientInput(in RecipeIngredientInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("ingredient name is required")
	}
	if in.Amount <= 0 {
		return fmt.Errorf("ingredient amount must be > 0")
	}
	return nil
}
