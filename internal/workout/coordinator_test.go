package workout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/fitrecord/internal/models"
	"github.com/claude/fitrecord/internal/timer"
	"github.com/google/uuid"
)

// fakeStore is an in-memory Store with scriptable failures.
type fakeStore struct {
	sets       map[uuid.UUID]models.ExerciseSet
	exercises  map[uuid.UUID]models.Exercise
	workoutExs map[uuid.UUID]models.WorkoutExercise
	incomplete map[uuid.UUID]int // remaining incomplete sets per workout exercise

	completeErr error
	countErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sets:       make(map[uuid.UUID]models.ExerciseSet),
		exercises:  make(map[uuid.UUID]models.Exercise),
		workoutExs: make(map[uuid.UUID]models.WorkoutExercise),
		incomplete: make(map[uuid.UUID]int),
	}
}

func (f *fakeStore) CompleteSet(_ context.Context, id uuid.UUID) (models.ExerciseSet, error) {
	if f.completeErr != nil {
		return models.ExerciseSet{}, f.completeErr
	}
	s, ok := f.sets[id]
	if !ok {
		return models.ExerciseSet{}, errors.New("not found")
	}
	s.IsCompleted = true
	f.sets[id] = s
	return s, nil
}

func (f *fakeStore) CountIncompleteSets(_ context.Context, weID, _ uuid.UUID) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.incomplete[weID], nil
}

func (f *fakeStore) GetWorkoutExercise(_ context.Context, id uuid.UUID) (models.WorkoutExercise, error) {
	we, ok := f.workoutExs[id]
	if !ok {
		return models.WorkoutExercise{}, errors.New("not found")
	}
	return we, nil
}

func (f *fakeStore) GetExercise(_ context.Context, id uuid.UUID) (models.Exercise, error) {
	ex, ok := f.exercises[id]
	if !ok {
		return models.Exercise{}, errors.New("not found")
	}
	return ex, nil
}

// addSet wires a set + workout exercise + exercise into the fake store and
// returns the set ID.
func (f *fakeStore) addSet(clientID uuid.UUID, ex models.Exercise, remainingAfter int) uuid.UUID {
	f.exercises[ex.ID] = ex
	weID := uuid.New()
	f.workoutExs[weID] = models.WorkoutExercise{
		ID:         weID,
		ClientID:   clientID,
		ExerciseID: ex.ID,
	}
	f.incomplete[weID] = remainingAfter
	setID := uuid.New()
	f.sets[setID] = models.ExerciseSet{ID: setID, WorkoutExerciseID: weID, SetNumber: 1}
	return setID
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCoordinator(store Store) (*Coordinator, *timer.Engine) {
	engine := timer.New(nil)
	return New(store, engine, 60, testLogger()), engine
}

func intPtr(v int) *int { return &v }

// TestCompleteSetStartsTimer verifies completing a set with incomplete sets
// remaining starts the client's rest timer.
func TestCompleteSetStartsTimer(t *testing.T) {
	store := newFakeStore()
	clientID := uuid.New()
	setID := store.addSet(clientID, models.Exercise{ID: uuid.New(), Name: "Push-ups"}, 2)

	c, engine := newCoordinator(store)
	set, err := c.CompleteSet(context.Background(), setID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !set.IsCompleted {
		t.Error("set not marked completed")
	}
	if engine.State(clientID) != timer.Resting {
		t.Errorf("timer state = %v, want Resting", engine.State(clientID))
	}
}

// TestCompleteLastSetClearsTimer verifies completing the final incomplete set
// clears the client's timer instead of starting one.
func TestCompleteLastSetClearsTimer(t *testing.T) {
	store := newFakeStore()
	clientID := uuid.New()
	ex := models.Exercise{ID: uuid.New(), Name: "Bench Press"}

	firstSet := store.addSet(clientID, ex, 1)
	c, engine := newCoordinator(store)

	if _, err := c.CompleteSet(context.Background(), firstSet); err != nil {
		t.Fatal(err)
	}
	if engine.State(clientID) != timer.Resting {
		t.Fatalf("timer should be running after non-final set")
	}

	lastSet := store.addSet(clientID, ex, 0)
	if _, err := c.CompleteSet(context.Background(), lastSet); err != nil {
		t.Fatal(err)
	}
	if engine.State(clientID) != timer.Idle {
		t.Errorf("timer state = %v, want Idle after final set", engine.State(clientID))
	}
}

// TestExerciseRestOverridesGlobal verifies duration resolution: an exercise
// with its own default rest wins over the global default; one without falls
// back to the global.
func TestExerciseRestOverridesGlobal(t *testing.T) {
	store := newFakeStore()
	clientID := uuid.New()

	// Deadlift specifies 120s; global default is 60s.
	deadliftSet := store.addSet(clientID,
		models.Exercise{ID: uuid.New(), Name: "Deadlift", DefaultRestSeconds: intPtr(120)}, 2)

	c, engine := newCoordinator(store)
	if _, err := c.CompleteSet(context.Background(), deadliftSet); err != nil {
		t.Fatal(err)
	}
	if d := engine.Display(clientID); d.Text != "2:00" {
		t.Errorf("deadlift timer = %q, want 2:00", d.Text)
	}

	// Push-ups has no default; the 60s global applies.
	pushupClient := uuid.New()
	pushupSet := store.addSet(pushupClient,
		models.Exercise{ID: uuid.New(), Name: "Push-ups"}, 2)
	if _, err := c.CompleteSet(context.Background(), pushupSet); err != nil {
		t.Fatal(err)
	}
	if d := engine.Display(pushupClient); d.Text != "1:00" {
		t.Errorf("push-ups timer = %q, want 1:00", d.Text)
	}
}

// TestPersistenceFailureLeavesTimerAlone verifies the orchestrator only acts
// after confirmed completion: a failed persistence call changes no timer state
// and the error propagates.
func TestPersistenceFailureLeavesTimerAlone(t *testing.T) {
	store := newFakeStore()
	clientID := uuid.New()
	setID := store.addSet(clientID, models.Exercise{ID: uuid.New(), Name: "Squat"}, 2)

	c, engine := newCoordinator(store)
	engine.Start(clientID, uuid.New(), 45*time.Second)

	store.completeErr = errors.New("connection refused")
	if _, err := c.CompleteSet(context.Background(), setID); err == nil {
		t.Fatal("expected error from failed persistence")
	}
	if engine.State(clientID) != timer.Resting {
		t.Errorf("timer state changed after persistence failure: %v", engine.State(clientID))
	}

	// Failure on the incomplete-count check must also leave the timer alone.
	store.completeErr = nil
	store.countErr = errors.New("connection refused")
	if _, err := c.CompleteSet(context.Background(), setID); err == nil {
		t.Fatal("expected error from failed count query")
	}
	if engine.State(clientID) != timer.Resting {
		t.Errorf("timer state changed after count failure: %v", engine.State(clientID))
	}
}

// TestSelectClientAcknowledgesOvertime verifies switching to an overtime
// client clears its timer, while selecting a resting client does not.
func TestSelectClientAcknowledgesOvertime(t *testing.T) {
	c, engine := newCoordinator(newFakeStore())
	resting, overdue := uuid.New(), uuid.New()

	engine.Start(resting, uuid.New(), time.Hour)
	engine.Start(overdue, uuid.New(), 0)

	c.SelectClient(resting)
	if engine.State(resting) != timer.Resting {
		t.Errorf("resting client cleared on select")
	}

	c.SelectClient(overdue)
	if engine.State(overdue) != timer.Idle {
		t.Errorf("overtime client not cleared on select: %v", engine.State(overdue))
	}
}

// TestSetGlobalRestDuration verifies preset validation and that the new value
// applies to subsequent timers.
func TestSetGlobalRestDuration(t *testing.T) {
	store := newFakeStore()
	c, engine := newCoordinator(store)

	if err := c.SetGlobalRestDuration(37); err == nil {
		t.Error("expected error for non-preset duration")
	}
	if got := c.GlobalRestDuration(); got != 60 {
		t.Errorf("global rest = %d, want unchanged 60", got)
	}

	if err := c.SetGlobalRestDuration(90); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.GlobalRestDuration(); got != 90 {
		t.Errorf("global rest = %d, want 90", got)
	}

	clientID := uuid.New()
	setID := store.addSet(clientID, models.Exercise{ID: uuid.New(), Name: "Curls"}, 1)
	if _, err := c.CompleteSet(context.Background(), setID); err != nil {
		t.Fatal(err)
	}
	if d := engine.Display(clientID); d.Text != "1:30" {
		t.Errorf("timer = %q, want 1:30 from updated global", d.Text)
	}
}
