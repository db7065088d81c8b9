package mcp

import (
	"context"

	"github.com/claude/fitrecord/internal/models"
	"github.com/claude/fitrecord/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the data layer for MCP tools. *storage.DB satisfies it.
type DataSource interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	ListExercisesByMuscleGroup(ctx context.Context, group models.MuscleGroup) ([]models.Exercise, error)
	MaxCompletedWeight(ctx context.Context, clientID, exerciseID uuid.UUID) (*float64, error)
	ExerciseHistory(ctx context.Context, clientID uuid.UUID) ([]models.ExercisePR, error)
	LastCompletedWorkoutExercises(ctx context.Context, clientID uuid.UUID) ([]models.WorkoutExercise, error)
	RecentSessions(ctx context.Context, clientID uuid.UUID, limit int) ([]models.WorkoutSession, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
