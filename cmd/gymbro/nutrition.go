package gymbro

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/gymbro/internal/provider/openfoodfacts"
	"github.com/saadjs/gymbro/internal/service"
)

var nutritionCmd = &cobra.Command{
	Use:   "nutrition",
	Short: "Draft meals and save daily nutrition logs",
}

var (
	mealName     string
	mealCalories string
	mealProtein  string
	mealCarbs    string
	mealFats     string
	mealQuery    string
	mealPick     int
	mealGrams    float64
)

var nutritionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a meal to the nutrition draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			draft, err := service.AddMealToDraft(e.ctx, e.store, service.MealDraft{
				Name: mealName, Calories: mealCalories, Protein: mealProtein, Carbs: mealCarbs, Fats: mealFats,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to draft (%d meal(s))\n", mealName, len(draft))
			return nil
		})
	},
}

var nutritionLookupAddCmd = &cobra.Command{
	Use:   "lookup-add",
	Short: "Search foods and add a result to the nutrition draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			client := &openfoodfacts.Client{BaseURL: e.conf.Lookup.FoodBaseURL}
			results := service.SearchFoods(e.ctx, client, mealQuery, e.logger)
			if len(results) == 0 {
				return fmt.Errorf("no foods found for %q", mealQuery)
			}
			if mealPick < 1 || mealPick > len(results) {
				return fmt.Errorf("--pick must be between 1 and %d", len(results))
			}
			meal := service.MealFromFood(results[mealPick-1], mealGrams)
			draft, err := service.AddMealToDraft(e.ctx, e.store, service.MealDraft{
				Name:     meal.Name,
				Calories: fmt.Sprint(meal.Calories),
				Protein:  fmt.Sprint(meal.Protein),
				Carbs:    fmt.Sprint(meal.Carbs),
				Fats:     fmt.Sprint(meal.Fats),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%.0f kcal) to draft (%d meal(s))\n", meal.Name, meal.Calories, len(draft))
			return nil
		})
	},
}

var nutritionRemoveCmd = &cobra.Command{
	Use:   "remove <position>",
	Short: "Remove a meal from the nutrition draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(e *env) error {
			draft, err := service.RemoveMealFromDraft(e.ctx, e.store, pos-1)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed meal %d (%d left)\n", pos, len(draft))
			return nil
		})
	},
}

var nutritionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the nutrition draft with totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			draft := service.NutritionDraft(e.ctx, e.store)
			if len(draft) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nutrition draft is empty")
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "#\tMEAL\tKCAL\tP\tC\tF")
			for i, m := range draft {
				fmt.Fprintf(out, "%d\t%s\t%.0f\t%.1f\t%.1f\t%.1f\n", i+1, m.Name, m.Calories, m.Protein, m.Carbs, m.Fats)
			}
			t := service.DailyTotals(draft)
			fmt.Fprintf(out, "Total\t\t%.0f\t%.1f\t%.1f\t%.1f\n", t.Calories, t.Protein, t.Carbs, t.Fats)
			return nil
		})
	},
}

var nutritionSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the nutrition draft as today's log",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			logs, err := service.SaveNutritionLog(e.ctx, e.session, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved nutrition log (%s, %d log(s))\n", storageLabel(e.session), len(logs))
			return nil
		})
	},
}

var nutritionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved nutrition logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			logs, err := service.LoadNutritionLogs(e.ctx, e.session)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tMEALS\tKCAL\tP\tC\tF")
			for _, l := range logs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%.0f\t%.1f\t%.1f\t%.1f\n", l.Date, len(l.Meals), l.Calories, l.Protein, l.Carbs, l.Fats)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(nutritionCmd)
	nutritionCmd.AddCommand(nutritionAddCmd, nutritionLookupAddCmd, nutritionRemoveCmd, nutritionShowCmd, nutritionSaveCmd, nutritionListCmd)

	nutritionAddCmd.Flags().StringVar(&mealName, "name", "", "Meal name")
	nutritionAddCmd.Flags().StringVar(&mealCalories, "calories", "", "Calories")
	nutritionAddCmd.Flags().StringVar(&mealProtein, "protein", "", "Protein grams")
	nutritionAddCmd.Flags().StringVar(&mealCarbs, "carbs", "", "Carb grams")
	nutritionAddCmd.Flags().StringVar(&mealFats, "fats", "", "Fat grams")

	nutritionLookupAddCmd.Flags().StringVar(&mealQuery, "query", "", "Food search text")
	nutritionLookupAddCmd.Flags().IntVar(&mealPick, "pick", 1, "Result number to add")
	nutritionLookupAddCmd.Flags().Float64Var(&mealGrams, "grams", 100, "Grams eaten")
	_ = nutritionLookupAddCmd.MarkFlagRequired("query")
}
