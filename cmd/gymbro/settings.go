package gymbro

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/gymbro/internal/model"
	"github.com/saadjs/gymbro/internal/service"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change app settings",
}

var (
	settingsSystem    string
	settingsWaterGoal float64
)

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			printSettings(cmd, service.LoadSettings(e.ctx, e.store))
			return nil
		})
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("system") && !cmd.Flags().Changed("water-goal") {
			return fmt.Errorf("set at least one flag")
		}
		return withSession(cmd, func(e *env) error {
			settings := service.LoadSettings(e.ctx, e.store)
			var err error
			if cmd.Flags().Changed("system") {
				if settings, err = service.SetMeasurementSystem(e.ctx, e.store, settingsSystem); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("water-goal") {
				if settings, err = service.SetWaterGoal(e.ctx, e.store, settingsWaterGoal); err != nil {
					return err
				}
			}
			printSettings(cmd, settings)
			return nil
		})
	},
}

func printSettings(cmd *cobra.Command, s model.Settings) {
	fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
	fmt.Fprintf(cmd.OutOrStdout(), "measurement_system\t%s\n", s.MeasurementSystem)
	fmt.Fprintf(cmd.OutOrStdout(), "water_goal_ml\t%.0f\n", s.WaterGoalML)
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)

	settingsSetCmd.Flags().StringVar(&settingsSystem, "system", "", "Measurement system: metric or imperial")
	settingsSetCmd.Flags().Float64Var(&settingsWaterGoal, "water-goal", 0, "Daily water goal in ml")
}
