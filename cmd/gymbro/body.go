package gymbro

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/gymbro/internal/model"
	"github.com/saadjs/gymbro/internal/service"
)

var bodyCmd = &cobra.Command{
	Use:   "body",
	Short: "Record body weight and measurements",
}

var (
	bodyWeight string
	bodyUnit   string
	bodyFat    string
	bodyChest  string
	bodyWaist  string
	bodyArms   string
	bodyThighs string
	bodyWindow string
)

var bodyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a body metric entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			entries, err := service.SaveBodyMetric(e.ctx, e.session, service.BodyMetricDraft{
				Weight:     bodyWeight,
				Unit:       bodyUnit,
				BodyFatPct: bodyFat,
				Chest:      bodyChest,
				Waist:      bodyWaist,
				Arms:       bodyArms,
				Thighs:     bodyThighs,
			}, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved body metric (%s, %d entr(ies))\n", storageLabel(e.session), len(entries))
			return nil
		})
	},
}

var bodyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List body metrics, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := service.ParseMetricWindow(bodyWindow)
		if err != nil {
			return err
		}
		return withSession(cmd, func(e *env) error {
			entries, err := service.LoadBodyMetrics(e.ctx, e.session)
			if err != nil {
				return err
			}
			system := service.LoadSettings(e.ctx, e.store).MeasurementSystem
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "DATE\tWEIGHT\tBODY_FAT\tCHEST\tWAIST\tARMS\tTHIGHS")
			for _, m := range service.FilterBodyMetrics(entries, days, time.Now()) {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", m.Date,
					service.DisplayWeight(m.Weight, system),
					optionalValue(m.BodyFatPct, "%"),
					optionalLength(m.Chest, system),
					optionalLength(m.Waist, system),
					optionalLength(m.Arms, system),
					optionalLength(m.Thighs, system),
				)
			}
			return nil
		})
	},
}

func optionalValue(v *float64, suffix string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%s", *v, suffix)
}

func optionalLength(v *float64, system model.MeasurementSystem) string {
	if v == nil {
		return "-"
	}
	return service.FormatMeasurement(*v, "cm", system)
}

func init() {
	rootCmd.AddCommand(bodyCmd)
	bodyCmd.AddCommand(bodyAddCmd, bodyListCmd)

	bodyAddCmd.Flags().StringVar(&bodyWeight, "weight", "", "Body weight")
	bodyAddCmd.Flags().StringVar(&bodyUnit, "unit", "kg", "Weight unit: kg or lb")
	bodyAddCmd.Flags().StringVar(&bodyFat, "body-fat", "", "Body fat percentage")
	bodyAddCmd.Flags().StringVar(&bodyChest, "chest", "", "Chest (cm)")
	bodyAddCmd.Flags().StringVar(&bodyWaist, "waist", "", "Waist (cm)")
	bodyAddCmd.Flags().StringVar(&bodyArms, "arms", "", "Arms (cm)")
	bodyAddCmd.Flags().StringVar(&bodyThighs, "thighs", "", "Thighs (cm)")
	bodyListCmd.Flags().StringVar(&bodyWindow, "window", "all", "Window: all, 7, 30 or 90 days")
}
