package db_test

import (
	"path/filepath"
	"testing"

	"github.com/saadjs/gymbro/internal/db"
)

func TestApplyMigrationsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "gymbro.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var migrationCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != 4 {
		t.Fatalf("expected 4 migration versions, got %d", migrationCount)
	}

	for _, table := range []string{"kv_store", "recipes", "recipe_ingredients", "meal_plan_items", "response_cache"} {
		var count int
		if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count); err != nil {
			t.Fatalf("check %s table: %v", table, err)
		}
		if count != 1 {
			t.Fatalf("expected %s table to exist", table)
		}
	}
}

func TestRecipeIngredientsCascadeOnRecipeDelete(t *testing.T) {
	t.Parallel()

	sqldb, err := db.Open(filepath.Join(t.TempDir(), "gymbro.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	res, err := sqldb.Exec(`INSERT INTO recipes(name, servings, calories_per_serving, protein_per_serving, carbs_per_serving, fat_per_serving) VALUES('oats', 1, 300, 10, 50, 5)`)
	if err != nil {
		t.Fatalf("insert recipe: %v", err)
	}
	recipeID, _ := res.LastInsertId()
	if _, err := sqldb.Exec(`INSERT INTO recipe_ingredients(recipe_id, name, amount, unit) VALUES(?, 'rolled oats', 80, 'g')`, recipeID); err != nil {
		t.Fatalf("insert ingredient: %v", err)
	}
	if _, err := sqldb.Exec(`DELETE FROM recipes WHERE id = ?`, recipeID); err != nil {
		t.Fatalf("delete recipe: %v", err)
	}
	var remaining int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM recipe_ingredients`).Scan(&remaining); err != nil {
		t.Fatalf("count ingredients: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected ingredients to cascade, %d remain", remaining)
	}
}
