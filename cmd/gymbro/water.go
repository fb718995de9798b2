package gymbro

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/gymbro/internal/service"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Track daily water intake (kept on this device)",
}

var waterAddCmd = &cobra.Command{
	Use:   "add <ml>",
	Short: "Add water to today's total",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			summary, err := service.AddWater(e.ctx, e.session, args[0], time.Now())
			if err != nil {
				return err
			}
			printWater(cmd, summary)
			return nil
		})
	},
}

var waterTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's water total against the goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			printWater(cmd, service.TodayWater(e.ctx, e.session, time.Now()))
			return nil
		})
	},
}

func printWater(cmd *cobra.Command, s service.WaterSummary) {
	fmt.Fprintf(cmd.OutOrStdout(), "Water %s: %.0f / %.0f ml (%.0f ml to go)\n", s.Date, s.TotalML, s.GoalML, s.Remaining())
}

func init() {
	rootCmd.AddCommand(waterCmd)
	waterCmd.AddCommand(waterAddCmd, waterTodayCmd)
}
