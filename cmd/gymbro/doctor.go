package gymbro

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/gymbro/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			report, err := service.RunDoctor(e.ctx, e.db, e.store, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Undecodable values: %d\n", report.InvalidValues)
			fmt.Fprintf(out, "Malformed collections: %d\n", report.MalformedRecords)
			fmt.Fprintf(out, "Orphan ingredients: %d\n", report.OrphanIngredients)
			fmt.Fprintf(out, "Orphan meal plan items: %d\n", report.OrphanPlanItems)
			fmt.Fprintf(out, "Invalid water logs: %d\n", report.InvalidWaterLogs)
			if doctorFix {
				fmt.Fprintf(out, "Fixed: %d\n", report.Fixed)
				report, err = service.RunDoctor(e.ctx, e.db, e.store, false)
				if err != nil {
					return err
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Attempt safe auto-fixes")
}
