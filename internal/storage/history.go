package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/fitrecord/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// History aggregates are always derived on read, never cached: sets stay
// mutable until completion and sessions can be cancelled, so any denormalized
// PR value could go stale. Per-client exercise counts are small enough that
// recomputation is cheap.

// MaxCompletedWeight returns the maximum weight among completed sets for a
// client+exercise pair, counting only sessions that have ended. Returns nil
// when no qualifying set exists — callers must distinguish "no record" from a
// recorded 0 kg lift.
func (db *DB) MaxCompletedWeight(ctx context.Context, clientID, exerciseID uuid.UUID) (*float64, error) {
	var max *float64
	err := db.Pool.QueryRow(ctx,
		`SELECT MAX(es.weight_kg)
		 FROM workout_exercises we
		 JOIN exercise_sets es ON we.id = es.workout_exercise_id
		 JOIN workout_sessions ws ON we.workout_session_id = ws.id
		 WHERE ws.ended_at IS NOT NULL
		   AND es.is_completed
		   AND we.client_id = $1
		   AND we.exercise_id = $2`,
		clientID, exerciseID).Scan(&max)
	if err != nil {
		return nil, fmt.Errorf("querying max weight: %w", err)
	}
	return max, nil
}

// ExerciseHistory returns one row per exercise the client has ever completed a
// set for in an ended session: the max weight and the most recent session end
// observed for that exercise.
func (db *DB) ExerciseHistory(ctx context.Context, clientID uuid.UUID) ([]models.ExercisePR, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT we.client_id, we.exercise_id, e.name,
		        MAX(es.weight_kg), MAX(ws.ended_at)
		 FROM workout_exercises we
		 JOIN exercise_sets es ON we.id = es.workout_exercise_id
		 JOIN workout_sessions ws ON we.workout_session_id = ws.id
		 JOIN exercises e ON we.exercise_id = e.id
		 WHERE ws.ended_at IS NOT NULL AND es.is_completed AND we.client_id = $1
		 GROUP BY we.client_id, we.exercise_id, e.name
		 ORDER BY MAX(ws.ended_at) DESC`,
		clientID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise history: %w", err)
	}
	defer rows.Close()

	var result []models.ExercisePR
	for rows.Next() {
		var pr models.ExercisePR
		var maxWeight *float64
		if err := rows.Scan(&pr.ClientID, &pr.ExerciseID, &pr.ExerciseName,
			&maxWeight, &pr.LastPerformedAt); err != nil {
			return nil, fmt.Errorf("scanning exercise history: %w", err)
		}
		// Bodyweight-only history can legitimately have no weight recorded.
		if maxWeight != nil {
			pr.MaxWeightKg = *maxWeight
		}
		result = append(result, pr)
	}
	return result, rows.Err()
}

// LastCompletedWorkoutExercises returns the exercises (with nested definition
// and sets) the client performed in their single most recently ended session.
// Exercises from different sessions are never merged. Empty when the client
// has no ended sessions.
func (db *DB) LastCompletedWorkoutExercises(ctx context.Context, clientID uuid.UUID) ([]models.WorkoutExercise, error) {
	var sessionID uuid.UUID
	err := db.Pool.QueryRow(ctx,
		`SELECT ws.id
		 FROM workout_session_clients wsc
		 JOIN workout_sessions ws ON wsc.workout_session_id = ws.id
		 WHERE wsc.client_id = $1 AND ws.ended_at IS NOT NULL
		 ORDER BY ws.ended_at DESC
		 LIMIT 1`,
		clientID).Scan(&sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []models.WorkoutExercise{}, nil
		}
		return nil, fmt.Errorf("querying last ended session: %w", err)
	}

	return db.ListWorkoutExercises(ctx, sessionID, clientID)
}

// RecentSessions returns the sessions a client participated in, newest first.
// Both active and ended sessions are included. Limit defaults to 10.
func (db *DB) RecentSessions(ctx context.Context, clientID uuid.UUID, limit int) ([]models.WorkoutSession, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT ws.id, ws.started_at, ws.ended_at, ws.notes, ws.is_active,
		        ws.created_at, ws.updated_at
		 FROM workout_sessions ws
		 JOIN workout_session_clients wsc ON ws.id = wsc.workout_session_id
		 WHERE wsc.client_id = $1
		 ORDER BY ws.started_at DESC
		 LIMIT $2`,
		clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent sessions: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}
