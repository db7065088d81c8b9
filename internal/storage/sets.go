package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/fitrecord/internal/models"
	"github.com/google/uuid"
)

const setColumns = `id, workout_exercise_id, set_number, reps, weight_kg, is_completed, notes, created_at, updated_at`

// SetUpdate holds optional field updates for an exercise set. Nil fields are
// left untouched.
type SetUpdate struct {
	Reps     *int     `json:"reps"`
	WeightKg *float64 `json:"weight_kg"`
	Notes    *string  `json:"notes"`
}

// AddSet appends a set to a workout exercise. The set number is assigned
// sequentially from the current maximum; deleted sets are not renumbered, so
// gaps can appear but numbers never repeat within an exercise.
func (db *DB) AddSet(ctx context.Context, workoutExerciseID uuid.UUID, reps *int, weightKg *float64) (models.ExerciseSet, error) {
	row := db.Pool.QueryRow(ctx,
		`INSERT INTO exercise_sets (workout_exercise_id, set_number, reps, weight_kg)
		 VALUES ($1,
		         (SELECT COALESCE(MAX(set_number), 0) + 1
		          FROM exercise_sets WHERE workout_exercise_id = $1),
		         $2, $3)
		 RETURNING `+setColumns,
		workoutExerciseID, reps, weightKg)
	s, err := scanSet(row)
	if err != nil {
		return models.ExerciseSet{}, fmt.Errorf("inserting set: %w", err)
	}
	return s, nil
}

// GetSet retrieves a single set by ID.
func (db *DB) GetSet(ctx context.Context, id uuid.UUID) (models.ExerciseSet, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+setColumns+` FROM exercise_sets WHERE id = $1`, id)
	s, err := scanSet(row)
	if err != nil {
		return models.ExerciseSet{}, notFound(err)
	}
	return s, nil
}

// UpdateSet applies the non-nil fields of upd to a set.
func (db *DB) UpdateSet(ctx context.Context, id uuid.UUID, upd SetUpdate) (models.ExerciseSet, error) {
	assignments, args := buildSetUpdate(upd)
	if len(assignments) == 1 {
		// Only updated_at would change; skip the write and return current state.
		return db.GetSet(ctx, id)
	}
	args = append(args, id)

	row := db.Pool.QueryRow(ctx,
		fmt.Sprintf(`UPDATE exercise_sets SET %s WHERE id = $%d RETURNING `+setColumns,
			strings.Join(assignments, ", "), len(args)),
		args...)
	s, err := scanSet(row)
	if err != nil {
		return models.ExerciseSet{}, notFound(err)
	}
	return s, nil
}

// buildSetUpdate returns SQL assignments and positional args for the non-nil
// fields of upd. The updated_at assignment is always present.
func buildSetUpdate(upd SetUpdate) ([]string, []any) {
	var assignments []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Reps != nil {
		add("reps", *upd.Reps)
	}
	if upd.WeightKg != nil {
		add("weight_kg", *upd.WeightKg)
	}
	if upd.Notes != nil {
		add("notes", *upd.Notes)
	}
	assignments = append(assignments, "updated_at = NOW()")
	return assignments, args
}

// CompleteSet marks a set completed and returns the updated row.
func (db *DB) CompleteSet(ctx context.Context, id uuid.UUID) (models.ExerciseSet, error) {
	row := db.Pool.QueryRow(ctx,
		`UPDATE exercise_sets
		 SET is_completed = TRUE, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+setColumns, id)
	s, err := scanSet(row)
	if err != nil {
		return models.ExerciseSet{}, notFound(err)
	}
	return s, nil
}

// CountIncompleteSets returns how many sets of a workout exercise are still
// incomplete, excluding the given set. The orchestrator uses this after a
// completion to decide between starting and clearing the rest timer.
func (db *DB) CountIncompleteSets(ctx context.Context, workoutExerciseID, excludeSetID uuid.UUID) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exercise_sets
		 WHERE workout_exercise_id = $1 AND NOT is_completed AND id <> $2`,
		workoutExerciseID, excludeSetID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting incomplete sets: %w", err)
	}
	return count, nil
}

// DeleteSet removes a set. Completed sets remain deletable even though the UI
// makes them read-only.
func (db *DB) DeleteSet(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM exercise_sets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting set: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSet(row interface{ Scan(dest ...any) error }) (models.ExerciseSet, error) {
	var s models.ExerciseSet
	err := row.Scan(&s.ID, &s.WorkoutExerciseID, &s.SetNumber, &s.Reps, &s.WeightKg,
		&s.IsCompleted, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}
