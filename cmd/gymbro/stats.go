package gymbro

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/gymbro/internal/service"
)

var statsExercise string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show weight trend, personal records and progress series",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			workouts, err := service.LoadWorkouts(e.ctx, e.session)
			if err != nil {
				return err
			}
			logs, err := service.LoadNutritionLogs(e.ctx, e.session)
			if err != nil {
				return err
			}
			metrics, err := service.LoadBodyMetrics(e.ctx, e.session)
			if err != nil {
				return err
			}
			system := service.LoadSettings(e.ctx, e.store).MeasurementSystem
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Storage: %s\n", storageLabel(e.session))
			fmt.Fprintf(out, "Workouts: %d  Nutrition logs: %d  Body entries: %d\n", len(workouts), len(logs), len(metrics))
			fmt.Fprintf(out, "Weight trend: %s\n", formatPercent(service.WeightTrend(metrics)))

			prs := service.PersonalRecords(workouts)
			if len(prs) > 0 {
				names := make([]string, 0, len(prs))
				for name := range prs {
					names = append(names, name)
				}
				sort.Strings(names)
				fmt.Fprintln(out, "\nPERSONAL_RECORD\tWEIGHT")
				for _, name := range names {
					fmt.Fprintf(out, "%s\t%.1f\n", name, prs[name])
				}
			}

			if weights := service.WeightSeries(metrics); len(weights) > 0 {
				fmt.Fprintln(out, "\nDATE\tWEIGHT")
				for _, p := range weights {
					fmt.Fprintf(out, "%s\t%s\n", p.Date, service.DisplayWeight(p.Value, system))
				}
			}
			if cals := service.CalorieSeries(logs); len(cals) > 0 {
				fmt.Fprintln(out, "\nDATE\tKCAL")
				for _, p := range cals {
					fmt.Fprintf(out, "%s\t%.0f\n", p.Date, p.Value)
				}
			}
			if strings.TrimSpace(statsExercise) != "" {
				fmt.Fprintf(out, "\nDATE\t%s\n", strings.ToUpper(statsExercise))
				for _, p := range service.StrengthSeries(workouts, statsExercise) {
					fmt.Fprintf(out, "%s\t%.1f\n", p.Date, p.Value)
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsExercise, "exercise", "", "Show the strength series for one exercise")
}
