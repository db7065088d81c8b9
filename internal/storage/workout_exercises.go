package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/fitrecord/internal/models"
	"github.com/google/uuid"
)

// AddWorkoutExercise assigns an exercise to a client within a session, at the
// given position. Returns the new row with the exercise definition attached.
func (db *DB) AddWorkoutExercise(ctx context.Context, sessionID, clientID, exerciseID uuid.UUID, orderIndex int) (models.WorkoutExercise, error) {
	row := db.Pool.QueryRow(ctx,
		`INSERT INTO workout_exercises (workout_session_id, client_id, exercise_id, order_index)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, workout_session_id, client_id, exercise_id, order_index, notes, created_at, updated_at`,
		sessionID, clientID, exerciseID, orderIndex)

	var we models.WorkoutExercise
	if err := row.Scan(&we.ID, &we.WorkoutSessionID, &we.ClientID, &we.ExerciseID,
		&we.OrderIndex, &we.Notes, &we.CreatedAt, &we.UpdatedAt); err != nil {
		return models.WorkoutExercise{}, fmt.Errorf("inserting workout exercise: %w", err)
	}

	ex, err := db.GetExercise(ctx, we.ExerciseID)
	if err != nil {
		return models.WorkoutExercise{}, err
	}
	we.Exercise = &ex
	we.Sets = []models.ExerciseSet{}
	return we, nil
}

// GetWorkoutExercise retrieves one workout exercise row (without nested sets).
func (db *DB) GetWorkoutExercise(ctx context.Context, id uuid.UUID) (models.WorkoutExercise, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, workout_session_id, client_id, exercise_id, order_index, notes, created_at, updated_at
		 FROM workout_exercises WHERE id = $1`, id)

	var we models.WorkoutExercise
	if err := row.Scan(&we.ID, &we.WorkoutSessionID, &we.ClientID, &we.ExerciseID,
		&we.OrderIndex, &we.Notes, &we.CreatedAt, &we.UpdatedAt); err != nil {
		return models.WorkoutExercise{}, notFound(err)
	}
	return we, nil
}

// DeleteWorkoutExercise removes an exercise assignment and its sets.
func (db *DB) DeleteWorkoutExercise(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM workout_exercises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting workout exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListWorkoutExercises returns a client's exercises within one session, ordered
// by order_index, each with its exercise definition and sets nested. A single
// JOIN query is grouped in Go rather than issuing one query per exercise.
func (db *DB) ListWorkoutExercises(ctx context.Context, sessionID, clientID uuid.UUID) ([]models.WorkoutExercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT we.id, we.workout_session_id, we.client_id, we.exercise_id,
		        we.order_index, we.notes, we.created_at, we.updated_at,
		        e.id, e.name, e.muscle_group, e.is_bodyweight, e.description,
		        e.default_rest_seconds, e.created_at, e.updated_at,
		        es.id, es.workout_exercise_id, es.set_number, es.reps, es.weight_kg,
		        es.is_completed, es.notes, es.created_at, es.updated_at
		 FROM workout_exercises we
		 JOIN exercises e ON we.exercise_id = e.id
		 LEFT JOIN exercise_sets es ON we.id = es.workout_exercise_id
		 WHERE we.workout_session_id = $1 AND we.client_id = $2
		 ORDER BY we.order_index, es.set_number`,
		sessionID, clientID)
	if err != nil {
		return nil, fmt.Errorf("querying workout exercises: %w", err)
	}
	defer rows.Close()

	return groupWorkoutExerciseRows(rows)
}

// groupWorkoutExerciseRows folds the flattened JOIN result into workout
// exercises with nested sets, preserving row order.
func groupWorkoutExerciseRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]models.WorkoutExercise, error) {
	var result []models.WorkoutExercise
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var we models.WorkoutExercise
		var ex models.Exercise
		// Set columns scan as pointers because the LEFT JOIN can produce
		// an all-NULL set row for exercises with no sets yet.
		var setID, setWE *uuid.UUID
		var setNumber, reps *int
		var weightKg *float64
		var isCompleted *bool
		var setNotes *string
		var setCreatedAt, setUpdatedAt *time.Time

		if err := rows.Scan(
			&we.ID, &we.WorkoutSessionID, &we.ClientID, &we.ExerciseID,
			&we.OrderIndex, &we.Notes, &we.CreatedAt, &we.UpdatedAt,
			&ex.ID, &ex.Name, &ex.MuscleGroup, &ex.IsBodyweight, &ex.Description,
			&ex.DefaultRestSeconds, &ex.CreatedAt, &ex.UpdatedAt,
			&setID, &setWE, &setNumber, &reps, &weightKg,
			&isCompleted, &setNotes, &setCreatedAt, &setUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning workout exercise: %w", err)
		}

		i, seen := index[we.ID]
		if !seen {
			we.Exercise = &ex
			we.Sets = []models.ExerciseSet{}
			result = append(result, we)
			i = len(result) - 1
			index[we.ID] = i
		}

		if setID != nil {
			set := models.ExerciseSet{
				ID:                *setID,
				WorkoutExerciseID: *setWE,
				SetNumber:         *setNumber,
				Reps:              reps,
				WeightKg:          weightKg,
				IsCompleted:       *isCompleted,
				Notes:             setNotes,
			}
			if setCreatedAt != nil {
				set.CreatedAt = *setCreatedAt
			}
			if setUpdatedAt != nil {
				set.UpdatedAt = *setUpdatedAt
			}
			result[i].Sets = append(result[i].Sets, set)
		}
	}
	return result, rows.Err()
}
