package storage

import (
	"context"
	"fmt"

	"github.com/claude/fitrecord/internal/models"
	"github.com/google/uuid"
)

const exerciseColumns = `id, name, muscle_group, is_bodyweight, description, default_rest_seconds, created_at, updated_at`

// ExerciseInput holds the writable fields of an exercise record.
type ExerciseInput struct {
	Name               string             `json:"name"`
	MuscleGroup        models.MuscleGroup `json:"muscle_group"`
	IsBodyweight       bool               `json:"is_bodyweight"`
	Description        *string            `json:"description"`
	DefaultRestSeconds *int               `json:"default_rest_seconds"`
}

// ListExercises returns the exercise library ordered by muscle group then name.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises ORDER BY muscle_group, name`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// ListExercisesByMuscleGroup returns exercises for one muscle group, by name.
func (db *DB) ListExercisesByMuscleGroup(ctx context.Context, group models.MuscleGroup) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE muscle_group = $1 ORDER BY name`, group)
	if err != nil {
		return nil, fmt.Errorf("querying exercises by muscle group: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// GetExercise retrieves a single exercise by ID.
func (db *DB) GetExercise(ctx context.Context, id uuid.UUID) (models.Exercise, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id)
	e, err := scanExercise(row)
	if err != nil {
		return models.Exercise{}, notFound(err)
	}
	return e, nil
}

// CreateExercise inserts an exercise and returns the stored row.
func (db *DB) CreateExercise(ctx context.Context, in ExerciseInput) (models.Exercise, error) {
	row := db.Pool.QueryRow(ctx,
		`INSERT INTO exercises (name, muscle_group, is_bodyweight, description, default_rest_seconds)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+exerciseColumns,
		in.Name, in.MuscleGroup, in.IsBodyweight, in.Description, in.DefaultRestSeconds)
	e, err := scanExercise(row)
	if err != nil {
		return models.Exercise{}, fmt.Errorf("inserting exercise: %w", err)
	}
	return e, nil
}

// UpdateExercise replaces an exercise's writable fields.
func (db *DB) UpdateExercise(ctx context.Context, id uuid.UUID, in ExerciseInput) (models.Exercise, error) {
	row := db.Pool.QueryRow(ctx,
		`UPDATE exercises
		 SET name = $2, muscle_group = $3, is_bodyweight = $4, description = $5,
		     default_rest_seconds = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+exerciseColumns,
		id, in.Name, in.MuscleGroup, in.IsBodyweight, in.Description, in.DefaultRestSeconds)
	e, err := scanExercise(row)
	if err != nil {
		return models.Exercise{}, notFound(err)
	}
	return e, nil
}

// DeleteExercise removes an exercise from the library.
func (db *DB) DeleteExercise(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanExercise(row interface{ Scan(dest ...any) error }) (models.Exercise, error) {
	var e models.Exercise
	err := row.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.IsBodyweight, &e.Description,
		&e.DefaultRestSeconds, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}
