// Package models defines the core domain types shared across storage, the
// HTTP API, and the MCP surface.
package models

import (
	"time"

	"github.com/google/uuid"
)

// MuscleGroup categorizes exercises in the library.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "chest"
	MuscleBack      MuscleGroup = "back"
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleBiceps    MuscleGroup = "biceps"
	MuscleTriceps   MuscleGroup = "triceps"
	MuscleLegs      MuscleGroup = "legs"
	MuscleCore      MuscleGroup = "core"
	MuscleCardio    MuscleGroup = "cardio"
	MuscleFullBody  MuscleGroup = "full_body"
)

// MuscleGroups lists all valid muscle groups.
var MuscleGroups = []MuscleGroup{
	MuscleChest, MuscleBack, MuscleShoulders, MuscleBiceps, MuscleTriceps,
	MuscleLegs, MuscleCore, MuscleCardio, MuscleFullBody,
}

// Valid reports whether g is a known muscle group.
func (g MuscleGroup) Valid() bool {
	for _, known := range MuscleGroups {
		if g == known {
			return true
		}
	}
	return false
}

// Client is a person the trainer coaches.
type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Notes     *string   `json:"notes"`
	GymTime   *string   `json:"gym_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Exercise is a library entry. DefaultRestSeconds, when set, overrides the
// global rest duration for timers started after sets of this exercise.
type Exercise struct {
	ID                 uuid.UUID   `json:"id"`
	Name               string      `json:"name"`
	MuscleGroup        MuscleGroup `json:"muscle_group"`
	IsBodyweight       bool        `json:"is_bodyweight"`
	Description        *string     `json:"description"`
	DefaultRestSeconds *int        `json:"default_rest_seconds"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// WorkoutSession is one training appointment, possibly shared by several
// clients. EndedAt is nil while the session is in progress; history queries
// only consider sessions with EndedAt set.
type WorkoutSession struct {
	ID        uuid.UUID  `json:"id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
	Notes     *string    `json:"notes"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// WorkoutExercise assigns an exercise to one client within one session.
// Exercise and Sets are populated on read paths that need the nested view.
type WorkoutExercise struct {
	ID               uuid.UUID  `json:"id"`
	WorkoutSessionID uuid.UUID  `json:"workout_session_id"`
	ClientID         uuid.UUID  `json:"client_id"`
	ExerciseID       uuid.UUID  `json:"exercise_id"`
	OrderIndex       int        `json:"order_index"`
	Notes            *string    `json:"notes"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	Exercise *Exercise     `json:"exercise,omitempty"`
	Sets     []ExerciseSet `json:"sets"`
}

// ExerciseSet is one performed (or planned) set. Reps and WeightKg stay nil
// until recorded; a nil WeightKg on a completed set is valid for bodyweight
// work.
type ExerciseSet struct {
	ID                uuid.UUID `json:"id"`
	WorkoutExerciseID uuid.UUID `json:"workout_exercise_id"`
	SetNumber         int       `json:"set_number"`
	Reps              *int      `json:"reps"`
	WeightKg          *float64  `json:"weight_kg"`
	IsCompleted       bool      `json:"is_completed"`
	Notes             *string   `json:"notes"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ExercisePR is a client's best completed weight for one exercise, derived
// from ended sessions only.
type ExercisePR struct {
	ClientID        uuid.UUID `json:"client_id"`
	ExerciseID      uuid.UUID `json:"exercise_id"`
	ExerciseName    string    `json:"exercise_name"`
	MaxWeightKg     float64   `json:"max_weight_kg"`
	LastPerformedAt time.Time `json:"last_performed_at"`
}
