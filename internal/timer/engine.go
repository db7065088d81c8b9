// Package timer implements the per-client rest-timer engine. Timers are
// ephemeral: a process restart loses them, which is acceptable because they
// are a live-session coaching aid, not a record of truth.
package timer

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
)

// State is the rest-timer state for one client.
type State int

const (
	// Idle means no timer exists for the client.
	Idle State = iota
	// Resting means a timer is running and elapsed time is below the duration.
	Resting
	// Overtime means elapsed time has reached or passed the duration and the
	// client has not yet been acknowledged.
	Overtime
)

func (s State) String() string {
	switch s {
	case Resting:
		return "resting"
	case Overtime:
		return "overtime"
	default:
		return "idle"
	}
}

// MarshalJSON renders the state as its string form.
func (s State) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Alerter receives the one-shot notification fired when a timer first crosses
// into Overtime. Implementations relay it to the front end (vibration pattern
// plus audible tone on the device).
type Alerter interface {
	RestOver(clientID, exerciseID uuid.UUID)
}

// AlerterFunc adapts a function to the Alerter interface.
type AlerterFunc func(clientID, exerciseID uuid.UUID)

func (f AlerterFunc) RestOver(clientID, exerciseID uuid.UUID) { f(clientID, exerciseID) }

// restTimer is the per-client timer record. State is never stored; it is
// derived from startedAt and duration against the current wall clock, which
// keeps the timer correct across process suspension.
type restTimer struct {
	startedAt  time.Time
	duration   time.Duration
	exerciseID uuid.UUID
	alerted    bool
}

func (t *restTimer) state(now time.Time) State {
	if now.Sub(t.startedAt) >= t.duration {
		return Overtime
	}
	return Resting
}

// Display is the render-ready view of one client's timer. Text is a countdown
// (M:SS) while Resting and an overtime marker (+Ns) while Overtime, so the two
// states are distinguishable from the value alone.
type Display struct {
	State      State     `json:"state"`
	Text       string    `json:"text"`
	Seconds    int       `json:"seconds"`
	ExerciseID uuid.UUID `json:"exercise_id,omitempty"`
}

// Engine drives all per-client rest timers off a shared 1-second tick. The
// tick re-derives every timer's state from absolute start time and duration;
// there are no per-timer scheduled callbacks, so precision is bounded by the
// tick interval but the engine tolerates being suspended and resumed.
type Engine struct {
	mu      sync.Mutex
	timers  map[uuid.UUID]*restTimer
	alerter Alerter
	now     func() time.Time
}

// New creates an Engine delivering overtime alerts to alerter. A nil alerter
// disables alerting.
func New(alerter Alerter) *Engine {
	return &Engine{
		timers:  make(map[uuid.UUID]*restTimer),
		alerter: alerter,
		now:     time.Now,
	}
}

// Start begins (or restarts) the rest timer for a client. A prior timer for
// the same client is replaced wholesale: new start instant, duration and
// exercise, with the alert marker reset. Last writer wins.
func (e *Engine) Start(clientID, exerciseID uuid.UUID, duration time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.timers[clientID] = &restTimer{
		startedAt:  e.now(),
		duration:   duration,
		exerciseID: exerciseID,
	}
}

// Clear removes a client's timer, returning it to Idle. Clearing an Idle
// client is a no-op.
func (e *Engine) Clear(clientID uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.timers, clientID)
}

// State returns the client's current timer state.
func (e *Engine) State(clientID uuid.UUID) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.timers[clientID]
	if !ok {
		return Idle
	}
	return t.state(e.now())
}

// Display returns the render-ready view for one client.
func (e *Engine) Display(clientID uuid.UUID) Display {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.timers[clientID]
	if !ok {
		return Display{State: Idle}
	}
	return t.display(e.now())
}

// DisplayAll returns displays for every client with an active timer.
func (e *Engine) DisplayAll() map[uuid.UUID]Display {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	out := make(map[uuid.UUID]Display, len(e.timers))
	for clientID, t := range e.timers {
		out[clientID] = t.display(now)
	}
	return out
}

func (t *restTimer) display(now time.Time) Display {
	elapsed := now.Sub(t.startedAt)
	if t.state(now) == Overtime {
		over := int((elapsed - t.duration).Seconds())
		return Display{
			State:      Overtime,
			Text:       fmt.Sprintf("+%ds", over),
			Seconds:    over,
			ExerciseID: t.exerciseID,
		}
	}
	// Ceiling keeps the countdown intuitive: a timer with 89.2s left reads
	// 1:30, and Resting always shows a positive value.
	remaining := int(math.Ceil((t.duration - elapsed).Seconds()))
	return Display{
		State:      Resting,
		Text:       fmt.Sprintf("%d:%02d", remaining/60, remaining%60),
		Seconds:    remaining,
		ExerciseID: t.exerciseID,
	}
}

// Run drives the engine until ctx is cancelled, re-evaluating all timers once
// per second.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.tick()
		}
	}
}

// tick fires the overtime alert for any timer observed past its duration for
// the first time. The alerted marker guarantees exactly one alert per Start.
func (e *Engine) tick() {
	type firing struct {
		clientID   uuid.UUID
		exerciseID uuid.UUID
	}
	var fired []firing

	e.mu.Lock()
	now := e.now()
	for clientID, t := range e.timers {
		if !t.alerted && t.state(now) == Overtime {
			t.alerted = true
			fired = append(fired, firing{clientID, t.exerciseID})
		}
	}
	e.mu.Unlock()

	if e.alerter == nil {
		return
	}
	// Alerts are delivered outside the lock; the alerter may call back into
	// the engine.
	for _, f := range fired {
		e.alerter.RestOver(f.clientID, f.exerciseID)
	}
}
