package gymbro

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/gymbro/internal/config"
	"github.com/saadjs/gymbro/internal/provider/openfoodfacts"
	"github.com/saadjs/gymbro/internal/provider/wger"
	"github.com/saadjs/gymbro/internal/service"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Search public food and exercise databases",
}

var lookupFoodsCmd = &cobra.Command{
	Use:   "foods <query>",
	Short: "Search Open Food Facts (macros per 100 g)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}
		client := &openfoodfacts.Client{BaseURL: conf.Lookup.FoodBaseURL}
		results := service.SearchFoods(cmd.Context(), client, strings.Join(args, " "), newLogger(cmd, conf))
		if len(results) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No foods found")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "#\tNAME\tBRAND\tKCAL\tP\tC\tF")
		for i, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\n", i+1, r.Name, r.Brand, r.Calories, r.Protein, r.Carbs, r.Fats)
		}
		return nil
	},
}

var lookupExercisesCmd = &cobra.Command{
	Use:   "exercises <query>",
	Short: "Search the wger exercise database",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}
		results := service.SearchExercises(cmd.Context(), exerciseClient(conf), strings.Join(args, " "), newLogger(cmd, conf))
		if len(results) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No exercises found")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tCATEGORY")
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", r.ID, r.Name, r.Category)
		}
		return nil
	},
}

func exerciseClient(conf *config.Config) *wger.Client {
	return &wger.Client{BaseURL: conf.Lookup.ExerciseBaseURL}
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.AddCommand(lookupFoodsCmd, lookupExercisesCmd)
}
