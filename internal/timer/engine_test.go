package timer

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// fakeClock lets tests step wall-clock time manually.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEngine(alerter Alerter) (*Engine, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	e := New(alerter)
	e.now = clock.now
	return e, clock
}

// TestIdleByDefault verifies a client with no timer reports Idle.
func TestIdleByDefault(t *testing.T) {
	e, _ := newTestEngine(nil)
	clientID := uuid.New()

	if got := e.State(clientID); got != Idle {
		t.Errorf("State = %v, want Idle", got)
	}
	d := e.Display(clientID)
	if d.State != Idle || d.Text != "" {
		t.Errorf("Display = %+v, want Idle with empty text", d)
	}
}

// TestRestingCountdown verifies the countdown display while elapsed < duration.
func TestRestingCountdown(t *testing.T) {
	e, clock := newTestEngine(nil)
	clientID, exerciseID := uuid.New(), uuid.New()

	e.Start(clientID, exerciseID, 90*time.Second)

	d := e.Display(clientID)
	if d.State != Resting {
		t.Fatalf("state = %v, want Resting", d.State)
	}
	if d.Text != "1:30" {
		t.Errorf("text = %q, want %q", d.Text, "1:30")
	}

	clock.advance(25 * time.Second)
	d = e.Display(clientID)
	if d.Text != "1:05" || d.Seconds != 65 {
		t.Errorf("after 25s: text = %q seconds = %d, want 1:05 / 65", d.Text, d.Seconds)
	}
	if d.ExerciseID != exerciseID {
		t.Errorf("exercise id = %v, want %v", d.ExerciseID, exerciseID)
	}
}

// TestOvertimeAtExactDuration verifies the Resting→Overtime boundary occurs
// the instant elapsed equals duration, not one tick later.
func TestOvertimeAtExactDuration(t *testing.T) {
	e, clock := newTestEngine(nil)
	clientID := uuid.New()

	e.Start(clientID, uuid.New(), 60*time.Second)

	clock.advance(59 * time.Second)
	if got := e.State(clientID); got != Resting {
		t.Errorf("at 59s: state = %v, want Resting", got)
	}

	clock.advance(1 * time.Second)
	if got := e.State(clientID); got != Overtime {
		t.Errorf("at 60s: state = %v, want Overtime", got)
	}

	d := e.Display(clientID)
	if d.Text != "+0s" {
		t.Errorf("at 60s: text = %q, want %q", d.Text, "+0s")
	}

	clock.advance(37 * time.Second)
	d = e.Display(clientID)
	if d.Text != "+37s" || d.Seconds != 37 {
		t.Errorf("at 97s: text = %q seconds = %d, want +37s / 37", d.Text, d.Seconds)
	}
}

// TestAlertFiresExactlyOnce verifies the overtime alert is delivered on the
// first tick past the threshold and never again while the timer stays in
// Overtime.
func TestAlertFiresExactlyOnce(t *testing.T) {
	var alerts []uuid.UUID
	alerter := AlerterFunc(func(clientID, exerciseID uuid.UUID) {
		alerts = append(alerts, clientID)
	})
	e, clock := newTestEngine(alerter)
	clientID := uuid.New()

	e.Start(clientID, uuid.New(), 30*time.Second)

	clock.advance(29 * time.Second)
	e.tick()
	if len(alerts) != 0 {
		t.Fatalf("alert fired before duration elapsed")
	}

	clock.advance(2 * time.Second)
	e.tick()
	if len(alerts) != 1 {
		t.Fatalf("alerts = %d, want 1", len(alerts))
	}

	// Repeated ticks while still in Overtime must not re-fire.
	for i := 0; i < 5; i++ {
		clock.advance(time.Second)
		e.tick()
	}
	if len(alerts) != 1 {
		t.Errorf("alerts after repeated ticks = %d, want 1", len(alerts))
	}
	if alerts[0] != clientID {
		t.Errorf("alert client = %v, want %v", alerts[0], clientID)
	}
}

// TestRestartReplacesTimer verifies a second Start for the same client
// overwrites the prior timer atomically: new duration, new exercise, alert
// marker reset.
func TestRestartReplacesTimer(t *testing.T) {
	var alerts int
	e, clock := newTestEngine(AlerterFunc(func(_, _ uuid.UUID) { alerts++ }))
	clientID := uuid.New()
	firstExercise, secondExercise := uuid.New(), uuid.New()

	e.Start(clientID, firstExercise, 30*time.Second)
	clock.advance(20 * time.Second)

	// New set completed before the first rest period elapsed.
	e.Start(clientID, secondExercise, 120*time.Second)

	d := e.Display(clientID)
	if d.State != Resting {
		t.Fatalf("state = %v, want Resting", d.State)
	}
	if d.Text != "2:00" {
		t.Errorf("text = %q, want 2:00 (stale duration leaked)", d.Text)
	}
	if d.ExerciseID != secondExercise {
		t.Errorf("exercise = %v, want %v (stale exercise leaked)", d.ExerciseID, secondExercise)
	}

	// The first timer's deadline passing must not fire an alert now.
	clock.advance(15 * time.Second)
	e.tick()
	if alerts != 0 {
		t.Errorf("alerts = %d, want 0 after restart", alerts)
	}

	clock.advance(105 * time.Second)
	e.tick()
	if alerts != 1 {
		t.Errorf("alerts = %d, want 1 at new deadline", alerts)
	}
}

// TestAlertAgainAfterRestart verifies the alert marker resets per Start: a
// timer that already alerted can alert again after being restarted.
func TestAlertAgainAfterRestart(t *testing.T) {
	var alerts int
	e, clock := newTestEngine(AlerterFunc(func(_, _ uuid.UUID) { alerts++ }))
	clientID := uuid.New()

	e.Start(clientID, uuid.New(), 30*time.Second)
	clock.advance(31 * time.Second)
	e.tick()
	if alerts != 1 {
		t.Fatalf("alerts = %d, want 1", alerts)
	}

	e.Start(clientID, uuid.New(), 30*time.Second)
	clock.advance(31 * time.Second)
	e.tick()
	if alerts != 2 {
		t.Errorf("alerts = %d, want 2 after restart", alerts)
	}
}

// TestClearReturnsToIdle verifies Clear removes the timer and that clearing an
// Idle client is harmless.
func TestClearReturnsToIdle(t *testing.T) {
	e, clock := newTestEngine(nil)
	clientID := uuid.New()

	e.Start(clientID, uuid.New(), 45*time.Second)
	clock.advance(50 * time.Second)
	if got := e.State(clientID); got != Overtime {
		t.Fatalf("state = %v, want Overtime", got)
	}

	e.Clear(clientID)
	if got := e.State(clientID); got != Idle {
		t.Errorf("state after Clear = %v, want Idle", got)
	}

	e.Clear(clientID) // no-op
}

// TestClientsIndependent verifies timers for different clients do not
// interact: each keeps its own duration, state, and alert.
func TestClientsIndependent(t *testing.T) {
	var alerts []uuid.UUID
	e, clock := newTestEngine(AlerterFunc(func(clientID, _ uuid.UUID) {
		alerts = append(alerts, clientID)
	}))
	alex, blake := uuid.New(), uuid.New()

	e.Start(alex, uuid.New(), 30*time.Second)
	e.Start(blake, uuid.New(), 120*time.Second)

	clock.advance(40 * time.Second)
	e.tick()

	if e.State(alex) != Overtime {
		t.Errorf("alex state = %v, want Overtime", e.State(alex))
	}
	if e.State(blake) != Resting {
		t.Errorf("blake state = %v, want Resting", e.State(blake))
	}
	if len(alerts) != 1 || alerts[0] != alex {
		t.Errorf("alerts = %v, want [alex]", alerts)
	}

	e.Clear(alex)
	if e.State(blake) != Resting {
		t.Errorf("clearing alex disturbed blake: state = %v", e.State(blake))
	}

	all := e.DisplayAll()
	if len(all) != 1 {
		t.Fatalf("DisplayAll size = %d, want 1", len(all))
	}
	if _, ok := all[blake]; !ok {
		t.Error("DisplayAll missing blake")
	}
}

// TestStateStrings verifies the wire representation of states.
func TestStateStrings(t *testing.T) {
	cases := map[State]string{Idle: "idle", Resting: "resting", Overtime: "overtime"}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", state, got, want)
		}
	}
}
