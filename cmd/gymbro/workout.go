package gymbro

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/gymbro/internal/model"
	"github.com/saadjs/gymbro/internal/service"
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Draft and save workout sessions",
}

var (
	exName   string
	exSets   string
	exReps   string
	exWeight string
	exRPE    string
)

var workoutAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an exercise to the workout draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			draft, err := service.AddExerciseToDraft(e.ctx, e.store, service.ExerciseDraft{
				Name: exName, Sets: exSets, Reps: exReps, Weight: exWeight, RPE: exRPE,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to draft (%d exercise(s))\n", exName, len(draft))
			return nil
		})
	},
}

var workoutRemoveCmd = &cobra.Command{
	Use:   "remove <position>",
	Short: "Remove an exercise from the workout draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pos, err := parsePosition(args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(e *env) error {
			draft, err := service.RemoveExerciseFromDraft(e.ctx, e.store, pos-1)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed exercise %d (%d left)\n", pos, len(draft))
			return nil
		})
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the workout draft with session metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			draft := service.WorkoutDraft(e.ctx, e.store)
			if len(draft) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Workout draft is empty")
				return nil
			}
			printSets(cmd.OutOrStdout(), draft)
			printTrainingMetrics(cmd.OutOrStdout(), draft)
			return nil
		})
	},
}

var workoutSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the workout draft as a session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			workouts, err := service.SaveWorkout(e.ctx, e.session, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved workout (%s, %d session(s))\n", storageLabel(e.session), len(workouts))
			return nil
		})
	},
}

var workoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved workout sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(e *env) error {
			workouts, err := service.LoadWorkouts(e.ctx, e.session)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tEXERCISES\tVOLUME\tBEST_1RM\tAVG_RPE")
			for _, w := range workouts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%.0f\t%d\t%.1f\n",
					w.Date, len(w.Exercises),
					service.TrainingVolume(w.Exercises),
					service.BestOneRepMax(w.Exercises),
					service.AverageRPE(w.Exercises),
				)
			}
			return nil
		})
	},
}

func printSets(w io.Writer, sets []model.ExerciseSet) {
	fmt.Fprintln(w, "#\tEXERCISE\tSETS\tREPS\tWEIGHT\tRPE\tEST_1RM")
	for i, s := range sets {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%.1f\t%.1f\t%d\n", i+1, s.ExerciseName, s.Sets, s.Reps, s.Weight, s.RPE,
			service.EstimateOneRepMax(s.Weight, s.Reps))
	}
}

func printTrainingMetrics(w io.Writer, sets []model.ExerciseSet) {
	fmt.Fprintf(w, "Volume: %.0f\n", service.TrainingVolume(sets))
	fmt.Fprintf(w, "Best est. 1RM: %d\n", service.BestOneRepMax(sets))
	fmt.Fprintf(w, "Average RPE: %.1f\n", service.AverageRPE(sets))
}

func init() {
	rootCmd.AddCommand(workoutCmd)
	workoutCmd.AddCommand(workoutAddCmd, workoutRemoveCmd, workoutShowCmd, workoutSaveCmd, workoutListCmd)

	workoutAddCmd.Flags().StringVar(&exName, "name", "", "Exercise name")
	workoutAddCmd.Flags().StringVar(&exSets, "sets", "", "Number of sets")
	workoutAddCmd.Flags().StringVar(&exReps, "reps", "", "Reps per set")
	workoutAddCmd.Flags().StringVar(&exWeight, "weight", "", "Weight per rep")
	workoutAddCmd.Flags().StringVar(&exRPE, "rpe", "", "Rate of perceived exertion (1-10)")
}
