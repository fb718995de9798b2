package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/gymbro/internal/localstore"
	"github.com/saadjs/gymbro/internal/model"
)

// ExerciseDraft is one set line as typed by the user.
type ExerciseDraft struct {
	Name   string
	Sets   string
	Reps   string
	Weight string
	RPE    string
}

func (d ExerciseDraft) build() model.ExerciseSet {
	return model.ExerciseSet{
		ExerciseName: strings.TrimSpace(d.Name),
		Sets:         ParseInt(d.Sets),
		Reps:         ParseInt(d.Reps),
		Weight:       ParseNumber(d.Weight),
		RPE:          ParseNumber(d.RPE),
	}
}

func WorkoutDraft(ctx context.Context, store *localstore.Store) []model.ExerciseSet {
	return localstore.GetSlice[model.ExerciseSet](ctx, store, localstore.KeyWorkoutDraft)
}

func AddExerciseToDraft(ctx context.Context, store *localstore.Store, in ExerciseDraft) ([]model.ExerciseSet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("exercise name is required")
	}
	draft := append(WorkoutDraft(ctx, store), in.build())
	if err := store.SetE(ctx, localstore.KeyWorkoutDraft, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// RemoveExerciseFromDraft drops the entry at the zero-based index.
func RemoveExerciseFromDraft(ctx context.Context, store *localstore.Store, index int) ([]model.ExerciseSet, error) {
	draft := WorkoutDraft(ctx, store)
	if index < 0 || index >= len(draft) {
		return nil, fmt.Errorf("draft has no exercise at position %d", index+1)
	}
	draft = append(draft[:index], draft[index+1:]...)
	if err := store.SetE(ctx, localstore.KeyWorkoutDraft, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SaveWorkout stores the current draft as one session dated now. The draft
// is cleared only after a successful save.
func SaveWorkout(ctx context.Context, s Session, now time.Time) ([]model.WorkoutSession, error) {
	draft := WorkoutDraft(ctx, s.Local)
	if len(draft) == 0 {
		return nil, fmt.Errorf("workout draft is empty")
	}
	session := model.WorkoutSession{
		Date:      now.UTC().Format(time.RFC3339),
		Exercises: draft,
	}
	workouts, err := saveRecord(ctx, s, workoutsKind, session)
	if err != nil {
		return nil, err
	}
	s.Local.Delete(ctx, localstore.KeyWorkoutDraft)
	return workouts, nil
}

func LoadWorkouts(ctx context.Context, s Session) ([]model.WorkoutSession, error) {
	return loadRecords[model.WorkoutSession](ctx, s, workoutsKind)
}
