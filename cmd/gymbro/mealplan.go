package gymbro

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/gymbro/internal/service"
)

var mealPlanCmd = &cobra.Command{
	Use:   "mealplan",
	Short: "Plan recipes across a week (weeks start on Sunday)",
}

var (
	planWeek     string
	planDay      string
	planMealType string
	planRecipe   string
	planServings float64
	planOut      string
)

var mealPlanSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Place a recipe in a day and meal slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := service.ParseWeekday(planDay)
		if err != nil {
			return err
		}
		return withSession(cmd, func(e *env) error {
			if _, err := service.SetMealPlanItem(e.db, service.MealPlanInput{
				WeekStart:        planWeek,
				Day:              day,
				MealType:         planMealType,
				RecipeIdentifier: planRecipe,
				Servings:         planServings,
			}, time.Now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Planned %s for %s %s\n", planRecipe, weekdayName(day), strings.ToLower(planMealType))
			return nil
		})
	},
}

var mealPlanListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the week's plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			items, err := service.ListMealPlan(e.db, planWeek, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DAY\tMEAL\tRECIPE\tSERVINGS")
			for _, it := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.2f\n", weekdayName(it.DayOfWeek), it.MealType, it.RecipeName, it.Servings)
			}
			return nil
		})
	},
}

var mealPlanRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Clear a day and meal slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := service.ParseWeekday(planDay)
		if err != nil {
			return err
		}
		return withSession(cmd, func(e *env) error {
			if err := service.RemoveMealPlanItem(e.db, planWeek, day, planMealType, time.Now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", weekdayName(day), strings.ToLower(planMealType))
			return nil
		})
	},
}

var mealPlanICalCmd = &cobra.Command{
	Use:   "ical",
	Short: "Export the week's plan as an iCalendar file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			doc, err := service.MealPlanCalendar(e.db, planWeek, time.Now())
			if err != nil {
				return err
			}
			if strings.TrimSpace(planOut) == "" {
				fmt.Fprint(cmd.OutOrStdout(), doc)
				return nil
			}
			if err := os.WriteFile(planOut, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("write calendar file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote calendar to %s\n", planOut)
			return nil
		})
	},
}

func weekdayName(day int) string {
	return time.Weekday(day).String()
}

func init() {
	rootCmd.AddCommand(mealPlanCmd)
	mealPlanCmd.AddCommand(mealPlanSetCmd, mealPlanListCmd, mealPlanRemoveCmd, mealPlanICalCmd)

	for _, c := range []*cobra.Command{mealPlanSetCmd, mealPlanListCmd, mealPlanRemoveCmd, mealPlanICalCmd} {
		c.Flags().StringVar(&planWeek, "week", "", "Any date in the week, YYYY-MM-DD (default: this week)")
	}
	for _, c := range []*cobra.Command{mealPlanSetCmd, mealPlanRemoveCmd} {
		c.Flags().StringVar(&planDay, "day", "", "Day: 0-6 (Sunday first) or weekday name")
		c.Flags().StringVar(&planMealType, "meal", "", "breakfast, lunch, dinner or snack")
	}
	mealPlanSetCmd.Flags().StringVar(&planRecipe, "recipe", "", "Recipe id or name")
	mealPlanSetCmd.Flags().Float64Var(&planServings, "servings", 1, "Servings to cook")
	mealPlanICalCmd.Flags().StringVar(&planOut, "out", "", "Output .ics path (default: stdout)")
}
