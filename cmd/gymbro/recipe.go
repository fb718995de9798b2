package gymbro

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/gymbro/internal/model"
	"github.com/saadjs/gymbro/internal/service"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Manage recipes",
}

var (
	recipeName       string
	recipeServings   float64
	recipeCalories   int
	recipeProtein    float64
	recipeCarbs      float64
	recipeFat        float64
	recipeMealType   string
	recipeVegetarian bool
	recipeGlutenFree bool
	recipeDairyFree  bool
	recipeNotes      string
)

func recipeInputFromFlags() service.RecipeInput {
	return service.RecipeInput{
		Name:         recipeName,
		Servings:     recipeServings,
		Calories:     recipeCalories,
		Protein:      recipeProtein,
		Carbs:        recipeCarbs,
		Fat:          recipeFat,
		MealType:     recipeMealType,
		IsVegetarian: recipeVegetarian,
		IsGlutenFree: recipeGlutenFree,
		IsDairyFree:  recipeDairyFree,
		Notes:        recipeNotes,
	}
}

var recipeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a recipe (macros per serving)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			id, err := service.CreateRecipe(e.db, recipeInputFromFlags())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created recipe %d\n", id)
			return nil
		})
	},
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			recipes, err := service.ListRecipes(e.db)
			if err != nil {
				return err
			}
			favs, err := service.FavoriteRecipeIDs(e.ctx, e.session)
			if err != nil {
				return err
			}
			printRecipes(cmd, recipes, favs)
			return nil
		})
	},
}

var (
	filterIngredients []string
	filterMinProtein  float64
	filterMaxCalories int
	filterDiet        string
	filterMealType    string
	filterFavorites   bool
)

var recipeFilterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Find recipes by ingredients, macros and diet",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			recipes, err := service.ListRecipes(e.db)
			if err != nil {
				return err
			}
			matched, err := service.FilterRecipes(recipes, service.RecipeFilter{
				Ingredients: filterIngredients,
				MinProtein:  filterMinProtein,
				MaxCalories: filterMaxCalories,
				Diet:        filterDiet,
				MealType:    filterMealType,
			})
			if err != nil {
				return err
			}
			favs, err := service.FavoriteRecipeIDs(e.ctx, e.session)
			if err != nil {
				return err
			}
			if filterFavorites {
				matched = slices.DeleteFunc(matched, func(r model.Recipe) bool { return !slices.Contains(favs, r.ID) })
			}
			printRecipes(cmd, matched, favs)
			return nil
		})
	},
}

func printRecipes(cmd *cobra.Command, recipes []model.Recipe, favs []int64) {
	fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tMEAL\tKCAL\tP\tC\tF\tSERVINGS\tFAV")
	for _, r := range recipes {
		fav := ""
		if slices.Contains(favs, r.ID) {
			fav = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%d\t%.1f\t%.1f\t%.1f\t%.2f\t%s\n",
			r.ID, r.Name, r.MealType, r.Calories, r.Protein, r.Carbs, r.Fat, r.Servings, fav)
	}
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <id|name>",
	Short: "Show recipe details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			r, err := service.ResolveRecipe(e.db, args[0])
			if err != nil {
				return err
			}
			system := service.LoadSettings(e.ctx, e.store).MeasurementSystem
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID: %d\nName: %s\nMeal type: %s\nServings: %.2f\n", r.ID, r.Name, r.MealType, r.Servings)
			fmt.Fprintf(out, "Per serving: %d kcal, %.1fg protein, %.1fg carbs, %.1fg fat\n", r.Calories, r.Protein, r.Carbs, r.Fat)
			fmt.Fprintf(out, "Diet: %s\n", dietLabel(*r))
			if r.Notes != "" {
				fmt.Fprintf(out, "Notes: %s\n", r.Notes)
			}
			if len(r.Ingredients) > 0 {
				fmt.Fprintln(out, "ID\tINGREDIENT\tAMOUNT")
				for _, ing := range r.Ingredients {
					fmt.Fprintf(out, "%d\t%s\t%s\n", ing.ID, ing.Name, service.FormatMeasurement(ing.Amount, ing.Unit, system))
				}
			}
			return nil
		})
	},
}

func dietLabel(r model.Recipe) string {
	flags := make([]string, 0, 3)
	if r.IsVegetarian {
		flags = append(flags, "vegetarian")
	}
	if r.IsGlutenFree {
		flags = append(flags, "gluten-free")
	}
	if r.IsDairyFree {
		flags = append(flags, "dairy-free")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ", ")
}

var recipeUpdateCmd = &cobra.Command{
	Use:   "update <id|name>",
	Short: "Update a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			if err := service.UpdateRecipe(e.db, args[0], recipeInputFromFlags()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated recipe %q\n", args[0])
			return nil
		})
	},
}

var recipeDeleteCmd = &cobra.Command{
	Use:   "delete <id|name>",
	Short: "Delete a recipe and its ingredients",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			if err := service.DeleteRecipe(e.db, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted recipe %q\n", args[0])
			return nil
		})
	},
}

var recipeFavoriteCmd = &cobra.Command{
	Use:   "favorite <id|name>",
	Short: "Toggle a recipe as favorite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			r, err := service.ResolveRecipe(e.db, args[0])
			if err != nil {
				return err
			}
			on, err := service.ToggleFavorite(e.ctx, e.session, r.ID)
			if err != nil {
				return err
			}
			state := "removed from"
			if on {
				state = "added to"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s favorites\n", r.Name, state)
			return nil
		})
	},
}

var recipeIngredientCmd = &cobra.Command{
	Use:   "ingredient",
	Short: "Manage recipe ingredients",
}

var (
	ingName    string
	ingAmount  float64
	ingUnit    string
	ingDensity float64
)

var recipeIngredientAddCmd = &cobra.Command{
	Use:   "add <recipe id|name>",
	Short: "Add an ingredient to a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			id, err := service.AddRecipeIngredient(e.db, args[0], service.RecipeIngredientInput{
				Name: ingName, Amount: ingAmount, Unit: ingUnit,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added ingredient %d\n", id)
			return nil
		})
	},
}

var recipeIngredientListCmd = &cobra.Command{
	Use:   "list <recipe id|name>",
	Short: "List a recipe's ingredients",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			items, err := service.ListRecipeIngredients(e.db, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tAMOUNT\tUNIT")
			for _, it := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.2f\t%s\n", it.ID, it.Name, it.Amount, it.Unit)
			}
			return nil
		})
	},
}

var recipeIngredientDeleteCmd = &cobra.Command{
	Use:   "delete <ingredient id>",
	Short: "Delete an ingredient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("ingredient id", args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(e *env) error {
			if err := service.DeleteRecipeIngredient(e.db, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted ingredient %d\n", id)
			return nil
		})
	},
}

var recipeIngredientConvertCmd = &cobra.Command{
	Use:   "convert <amount> <from-unit> <to-unit>",
	Short: "Convert an ingredient amount between units",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount := service.ParseNumber(args[0])
		v, err := service.ConvertIngredientAmount(amount, args[1], args[2], ingDensity)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%.2f %s = %.2f %s\n", amount, args[1], v, args[2])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recipeCmd)
	recipeCmd.AddCommand(recipeAddCmd, recipeListCmd, recipeFilterCmd, recipeShowCmd, recipeUpdateCmd, recipeDeleteCmd, recipeFavoriteCmd, recipeIngredientCmd)
	recipeIngredientCmd.AddCommand(recipeIngredientAddCmd, recipeIngredientListCmd, recipeIngredientDeleteCmd, recipeIngredientConvertCmd)

	for _, c := range []*cobra.Command{recipeAddCmd, recipeUpdateCmd} {
		c.Flags().StringVar(&recipeName, "name", "", "Recipe name")
		c.Flags().Float64Var(&recipeServings, "servings", 1, "Servings the recipe makes")
		c.Flags().IntVar(&recipeCalories, "calories", 0, "Calories per serving")
		c.Flags().Float64Var(&recipeProtein, "protein", 0, "Protein grams per serving")
		c.Flags().Float64Var(&recipeCarbs, "carbs", 0, "Carb grams per serving")
		c.Flags().Float64Var(&recipeFat, "fat", 0, "Fat grams per serving")
		c.Flags().StringVar(&recipeMealType, "meal-type", "", "breakfast, lunch, dinner or snack")
		c.Flags().BoolVar(&recipeVegetarian, "vegetarian", false, "Recipe is vegetarian")
		c.Flags().BoolVar(&recipeGlutenFree, "gluten-free", false, "Recipe is gluten-free")
		c.Flags().BoolVar(&recipeDairyFree, "dairy-free", false, "Recipe is dairy-free")
		c.Flags().StringVar(&recipeNotes, "notes", "", "Optional notes")
	}

	recipeFilterCmd.Flags().StringSliceVar(&filterIngredients, "ingredient", nil, "Required ingredient (repeatable)")
	recipeFilterCmd.Flags().Float64Var(&filterMinProtein, "min-protein", 0, "Minimum protein per serving")
	recipeFilterCmd.Flags().IntVar(&filterMaxCalories, "max-calories", 0, "Maximum calories per serving")
	recipeFilterCmd.Flags().StringVar(&filterDiet, "diet", "", "vegetarian, gluten-free or dairy-free")
	recipeFilterCmd.Flags().StringVar(&filterMealType, "meal-type", "", "breakfast, lunch, dinner or snack")
	recipeFilterCmd.Flags().BoolVar(&filterFavorites, "favorites", false, "Only favorite recipes")

	recipeIngredientAddCmd.Flags().StringVar(&ingName, "name", "", "Ingredient name")
	recipeIngredientAddCmd.Flags().Float64Var(&ingAmount, "amount", 0, "Ingredient amount")
	recipeIngredientAddCmd.Flags().StringVar(&ingUnit, "unit", "g", "Ingredient unit")
	recipeIngredientConvertCmd.Flags().Float64Var(&ingDensity, "density", 0, "Density in g/ml for mass-volume conversion")
}
