// Package export writes a client's workout history into a standalone SQLite
// file, for handing to the client or analyzing offline without the server.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/claude/fitrecord/internal/models"
	"github.com/claude/fitrecord/internal/storage"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Source is the slice of the data layer the exporter reads from.
// *storage.DB satisfies it.
type Source interface {
	GetClient(ctx context.Context, id uuid.UUID) (models.Client, error)
	RecentSessions(ctx context.Context, clientID uuid.UUID, limit int) ([]models.WorkoutSession, error)
	ListWorkoutExercises(ctx context.Context, sessionID, clientID uuid.UUID) ([]models.WorkoutExercise, error)
	ExerciseHistory(ctx context.Context, clientID uuid.UUID) ([]models.ExercisePR, error)
}

var _ Source = (*storage.DB)(nil)

const archiveSchema = `
CREATE TABLE client (
	id    TEXT PRIMARY KEY,
	name  TEXT NOT NULL,
	notes TEXT
);
CREATE TABLE sessions (
	id         TEXT PRIMARY KEY,
	started_at TIMESTAMP NOT NULL,
	ended_at   TIMESTAMP,
	notes      TEXT
);
CREATE TABLE workout_exercises (
	id            TEXT PRIMARY KEY,
	session_id    TEXT NOT NULL REFERENCES sessions(id),
	exercise_name TEXT NOT NULL,
	muscle_group  TEXT NOT NULL,
	order_index   INTEGER NOT NULL,
	notes         TEXT
);
CREATE TABLE sets (
	id                  TEXT PRIMARY KEY,
	workout_exercise_id TEXT NOT NULL REFERENCES workout_exercises(id),
	set_number          INTEGER NOT NULL,
	reps                INTEGER,
	weight_kg           REAL,
	is_completed        INTEGER NOT NULL,
	notes               TEXT
);
CREATE TABLE personal_records (
	exercise_id       TEXT PRIMARY KEY,
	exercise_name     TEXT NOT NULL,
	max_weight_kg     REAL NOT NULL,
	last_performed_at TIMESTAMP NOT NULL
);
`

// WriteClientArchive exports one client's history to a new SQLite file at
// path. Up to limit recent sessions are included, with every exercise and set
// nested under them, plus the client's personal records. The file must not
// already exist.
func WriteClientArchive(ctx context.Context, src Source, clientID uuid.UUID, path string, limit int) error {
	client, err := src.GetClient(ctx, clientID)
	if err != nil {
		return fmt.Errorf("loading client: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("archive %s already exists", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating archive dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, archiveSchema); err != nil {
		return fmt.Errorf("creating archive schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning archive transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO client (id, name, notes) VALUES (?, ?, ?)`,
		client.ID.String(), client.Name, client.Notes); err != nil {
		return fmt.Errorf("writing client: %w", err)
	}

	if err := writeSessions(ctx, tx, src, clientID, limit); err != nil {
		return err
	}
	if err := writeRecords(ctx, tx, src, clientID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing archive: %w", err)
	}
	return nil
}

func writeSessions(ctx context.Context, tx *sql.Tx, src Source, clientID uuid.UUID, limit int) error {
	sessions, err := src.RecentSessions(ctx, clientID, limit)
	if err != nil {
		return fmt.Errorf("loading sessions: %w", err)
	}

	for _, session := range sessions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sessions (id, started_at, ended_at, notes) VALUES (?, ?, ?, ?)`,
			session.ID.String(), session.StartedAt, session.EndedAt, session.Notes); err != nil {
			return fmt.Errorf("writing session %s: %w", session.ID, err)
		}

		exercises, err := src.ListWorkoutExercises(ctx, session.ID, clientID)
		if err != nil {
			return fmt.Errorf("loading exercises for session %s: %w", session.ID, err)
		}
		for _, we := range exercises {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO workout_exercises (id, session_id, exercise_name, muscle_group, order_index, notes)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				we.ID.String(), session.ID.String(), we.Exercise.Name,
				string(we.Exercise.MuscleGroup), we.OrderIndex, we.Notes); err != nil {
				return fmt.Errorf("writing workout exercise %s: %w", we.ID, err)
			}
			for _, set := range we.Sets {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO sets (id, workout_exercise_id, set_number, reps, weight_kg, is_completed, notes)
					 VALUES (?, ?, ?, ?, ?, ?, ?)`,
					set.ID.String(), we.ID.String(), set.SetNumber,
					set.Reps, set.WeightKg, set.IsCompleted, set.Notes); err != nil {
					return fmt.Errorf("writing set %s: %w", set.ID, err)
				}
			}
		}
	}
	return nil
}

func writeRecords(ctx context.Context, tx *sql.Tx, src Source, clientID uuid.UUID) error {
	records, err := src.ExerciseHistory(ctx, clientID)
	if err != nil {
		return fmt.Errorf("loading personal records: %w", err)
	}
	for _, pr := range records {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO personal_records (exercise_id, exercise_name, max_weight_kg, last_performed_at)
			 VALUES (?, ?, ?, ?)`,
			pr.ExerciseID.String(), pr.ExerciseName, pr.MaxWeightKg, pr.LastPerformedAt); err != nil {
			return fmt.Errorf("writing personal record %s: %w", pr.ExerciseID, err)
		}
	}
	return nil
}
