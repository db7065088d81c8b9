// Package workout bridges set-completion events to the rest-timer engine and
// holds the live-session view state the trainer switches between clients with.
package workout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/fitrecord/internal/config"
	"github.com/claude/fitrecord/internal/models"
	"github.com/claude/fitrecord/internal/timer"
	"github.com/google/uuid"
)

// Store is the slice of the persistence layer the coordinator needs.
// *storage.DB satisfies it.
type Store interface {
	CompleteSet(ctx context.Context, id uuid.UUID) (models.ExerciseSet, error)
	CountIncompleteSets(ctx context.Context, workoutExerciseID, excludeSetID uuid.UUID) (int, error)
	GetWorkoutExercise(ctx context.Context, id uuid.UUID) (models.WorkoutExercise, error)
	GetExercise(ctx context.Context, id uuid.UUID) (models.Exercise, error)
}

// Coordinator ties set completion to timer start/clear and owns the global
// rest duration. The duration is instance state passed in at construction,
// not a hidden process global, and is only changeable to one of the presets.
type Coordinator struct {
	store  Store
	timers *timer.Engine
	log    *slog.Logger

	mu         sync.Mutex
	globalRest time.Duration
}

// New creates a Coordinator with the given global default rest duration.
func New(store Store, timers *timer.Engine, defaultRestSeconds int, log *slog.Logger) *Coordinator {
	return &Coordinator{
		store:      store,
		timers:     timers,
		log:        log,
		globalRest: time.Duration(defaultRestSeconds) * time.Second,
	}
}

// CompleteSet marks a set completed, then starts or clears the client's rest
// timer depending on whether incomplete sets remain in the same exercise.
// Persistence runs first: if it fails, no timer state changes and the error
// propagates to the caller.
func (c *Coordinator) CompleteSet(ctx context.Context, setID uuid.UUID) (models.ExerciseSet, error) {
	set, err := c.store.CompleteSet(ctx, setID)
	if err != nil {
		return models.ExerciseSet{}, fmt.Errorf("completing set: %w", err)
	}

	we, err := c.store.GetWorkoutExercise(ctx, set.WorkoutExerciseID)
	if err != nil {
		return models.ExerciseSet{}, fmt.Errorf("loading workout exercise: %w", err)
	}

	remaining, err := c.store.CountIncompleteSets(ctx, we.ID, set.ID)
	if err != nil {
		return models.ExerciseSet{}, fmt.Errorf("counting incomplete sets: %w", err)
	}

	if remaining == 0 {
		// Exercise finished; the client is done resting for it.
		c.timers.Clear(we.ClientID)
		c.log.Debug("rest timer cleared", "client", we.ClientID, "exercise", we.ExerciseID)
		return set, nil
	}

	duration, err := c.restDuration(ctx, we.ExerciseID)
	if err != nil {
		return models.ExerciseSet{}, err
	}
	c.timers.Start(we.ClientID, we.ExerciseID, duration)
	c.log.Debug("rest timer started",
		"client", we.ClientID, "exercise", we.ExerciseID, "duration", duration)
	return set, nil
}

// restDuration resolves the timer duration for an exercise: its configured
// default rest seconds when present, else the global default.
func (c *Coordinator) restDuration(ctx context.Context, exerciseID uuid.UUID) (time.Duration, error) {
	ex, err := c.store.GetExercise(ctx, exerciseID)
	if err != nil {
		return 0, fmt.Errorf("loading exercise: %w", err)
	}
	if ex.DefaultRestSeconds != nil {
		return time.Duration(*ex.DefaultRestSeconds) * time.Second, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.globalRest, nil
}

// SelectClient records the trainer switching to a client's tab. Selecting a
// client whose timer is in Overtime acknowledges the alert and clears it.
func (c *Coordinator) SelectClient(clientID uuid.UUID) {
	if c.timers.State(clientID) == timer.Overtime {
		c.timers.Clear(clientID)
		c.log.Debug("overtime acknowledged", "client", clientID)
	}
}

// SetGlobalRestDuration changes the global default used by exercises without
// their own rest duration. Only the fixed presets are accepted.
func (c *Coordinator) SetGlobalRestDuration(seconds int) error {
	if !config.ValidRestPreset(seconds) {
		return fmt.Errorf("rest duration %ds is not a preset (allowed: %v)", seconds, config.RestPresets)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.globalRest = time.Duration(seconds) * time.Second
	return nil
}

// GlobalRestDuration returns the current global default in seconds.
func (c *Coordinator) GlobalRestDuration() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int(c.globalRest / time.Second)
}

// TimerDisplay returns the render-ready timer view for one client.
func (c *Coordinator) TimerDisplay(clientID uuid.UUID) timer.Display {
	return c.timers.Display(clientID)
}

// TimerDisplays returns displays for all clients with an active timer.
func (c *Coordinator) TimerDisplays() map[uuid.UUID]timer.Display {
	return c.timers.DisplayAll()
}
