package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/fitrecord/internal/models"
	"github.com/google/uuid"
)

const sessionColumns = `id, started_at, ended_at, notes, is_active, created_at, updated_at`

// CreateSession starts a new active session and links the given clients to it.
func (db *DB) CreateSession(ctx context.Context, clientIDs []uuid.UUID) (models.WorkoutSession, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return models.WorkoutSession{}, fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`INSERT INTO workout_sessions (started_at, is_active)
		 VALUES (NOW(), TRUE)
		 RETURNING `+sessionColumns)
	s, err := scanSession(row)
	if err != nil {
		return models.WorkoutSession{}, fmt.Errorf("inserting session: %w", err)
	}

	for _, clientID := range clientIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO workout_session_clients (workout_session_id, client_id)
			 VALUES ($1, $2)`, s.ID, clientID); err != nil {
			return models.WorkoutSession{}, fmt.Errorf("linking client to session: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return models.WorkoutSession{}, fmt.Errorf("committing session: %w", err)
	}
	return s, nil
}

// GetSession retrieves a single session by ID.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (models.WorkoutSession, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM workout_sessions WHERE id = $1`, id)
	s, err := scanSession(row)
	if err != nil {
		return models.WorkoutSession{}, notFound(err)
	}
	return s, nil
}

// ListSessions returns the most recent sessions, active first by start time.
func (db *DB) ListSessions(ctx context.Context, limit int) ([]models.WorkoutSession, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM workout_sessions
		 ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

// ActiveSession returns the most recently started active session, or
// ErrNotFound when no session is in progress.
func (db *DB) ActiveSession(ctx context.Context) (models.WorkoutSession, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM workout_sessions
		 WHERE is_active ORDER BY started_at DESC LIMIT 1`)
	s, err := scanSession(row)
	if err != nil {
		return models.WorkoutSession{}, notFound(err)
	}
	return s, nil
}

// AddClientToSession links an additional client to an in-progress session.
func (db *DB) AddClientToSession(ctx context.Context, sessionID, clientID uuid.UUID) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO workout_session_clients (workout_session_id, client_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`, sessionID, clientID)
	if err != nil {
		return fmt.Errorf("adding client to session: %w", err)
	}
	return nil
}

// SessionClients returns the clients participating in a session.
func (db *DB) SessionClients(ctx context.Context, sessionID uuid.UUID) ([]models.Client, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT c.id, c.name, c.email, c.phone, c.notes, c.gym_time, c.created_at, c.updated_at
		 FROM clients c
		 JOIN workout_session_clients wsc ON c.id = wsc.client_id
		 WHERE wsc.workout_session_id = $1
		 ORDER BY c.name`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session clients: %w", err)
	}
	defer rows.Close()

	var result []models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// EndSession completes a session: sets that have a recorded weight or reps are
// auto-completed, then the session is marked ended and inactive. A nil endedAt
// uses the current time. Once ended, the session's completed sets become
// visible to the history aggregates.
func (db *DB) EndSession(ctx context.Context, id uuid.UUID, notes *string, endedAt *time.Time) (models.WorkoutSession, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return models.WorkoutSession{}, fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE exercise_sets
		 SET is_completed = TRUE, updated_at = NOW()
		 WHERE workout_exercise_id IN (
		     SELECT id FROM workout_exercises WHERE workout_session_id = $1
		 )
		 AND (weight_kg IS NOT NULL OR reps IS NOT NULL)
		 AND NOT is_completed`, id); err != nil {
		return models.WorkoutSession{}, fmt.Errorf("auto-completing sets: %w", err)
	}

	end := time.Now()
	if endedAt != nil {
		end = *endedAt
	}

	row := tx.QueryRow(ctx,
		`UPDATE workout_sessions
		 SET ended_at = $2, is_active = FALSE, notes = $3, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+sessionColumns,
		id, end, notes)
	s, err := scanSession(row)
	if err != nil {
		return models.WorkoutSession{}, notFound(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.WorkoutSession{}, fmt.Errorf("committing session end: %w", err)
	}
	return s, nil
}

// DeleteSession cancels a session outright. The cascade removes its workout
// exercises and sets, so a cancelled session never contributes to history.
func (db *DB) DeleteSession(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM workout_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSession(row interface{ Scan(dest ...any) error }) (models.WorkoutSession, error) {
	var s models.WorkoutSession
	err := row.Scan(&s.ID, &s.StartedAt, &s.EndedAt, &s.Notes, &s.IsActive,
		&s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func collectSessions(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]models.WorkoutSession, error) {
	var result []models.WorkoutSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
