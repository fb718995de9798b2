package gymbro

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/gymbro/internal/model"
	"github.com/saadjs/gymbro/internal/service"
)

var shoppingCmd = &cobra.Command{
	Use:   "shopping",
	Short: "Build and check off shopping lists from the meal plan",
}

var shoppingWeek string

var shoppingGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a shopping list from a week's meal plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			now := time.Now()
			week, items, err := service.PlannedShoppingItems(e.db, shoppingWeek, now)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("no planned ingredients for week of %s", week)
			}
			list, err := service.SaveShoppingList(e.ctx, e.store, week, items, now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %q with %d item(s)\n", list.Name, len(list.Items))
			return nil
		})
	},
}

var shoppingListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the active shopping list grouped by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			list, ok := service.ActiveShoppingList(e.ctx, e.store)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No shopping list yet")
				return nil
			}
			printShoppingList(cmd, list, service.LoadSettings(e.ctx, e.store).MeasurementSystem)
			return nil
		})
	},
}

func printShoppingList(cmd *cobra.Command, list model.ShoppingList, system model.MeasurementSystem) {
	out := cmd.OutOrStdout()
	checked, total := service.ShoppingProgress(list)
	fmt.Fprintf(out, "%s (%d/%d checked)\n", list.Name, checked, total)

	positions := make(map[string]int, len(list.Items))
	for i, it := range list.Items {
		positions[it.ID] = i + 1
	}
	categories, grouped := service.GroupByCategory(list.Items)
	for _, c := range categories {
		fmt.Fprintf(out, "\n%s\n", c)
		for _, it := range grouped[c] {
			mark := "[ ]"
			if it.IsChecked {
				mark = "[x]"
			}
			fmt.Fprintf(out, "%d\t%s %s\t%s\n", positions[it.ID], mark, it.IngredientName, service.FormatMeasurement(it.Amount, it.Unit, system))
		}
	}
}

var shoppingToggleCmd = &cobra.Command{
	Use:   "toggle <position>",
	Short: "Check or uncheck an item on the active list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(e *env) error {
			item, err := service.ToggleShoppingItem(e.ctx, e.store, pos)
			if err != nil {
				return err
			}
			state := "unchecked"
			if item.IsChecked {
				state = "checked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", item.IngredientName, state)
			return nil
		})
	},
}

var shoppingClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove checked items from the active list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			n, err := service.ClearCompleted(e.ctx, e.store)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d item(s)\n", n)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(shoppingCmd)
	shoppingCmd.AddCommand(shoppingGenerateCmd, shoppingListCmd, shoppingToggleCmd, shoppingClearCmd)
	shoppingGenerateCmd.Flags().StringVar(&shoppingWeek, "week", "", "Any date in the week, YYYY-MM-DD (default: this week)")
}
