package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
)

// RestAlert is the event pushed to the front end when a client's rest period
// ends. Vibrate is a Vibration API pattern in milliseconds; the front end
// also plays a short tone.
type RestAlert struct {
	ClientID   uuid.UUID `json:"client_id"`
	ExerciseID uuid.UUID `json:"exercise_id"`
	Vibrate    []int     `json:"vibrate"`
	Tone       string    `json:"tone"`
}

// defaultVibratePattern is buzz-pause-buzz-pause-buzz.
var defaultVibratePattern = []int{200, 100, 200, 100, 200}

// AlertHub fans rest-over alerts out to SSE subscribers. It satisfies
// timer.Alerter.
type AlertHub struct {
	log *slog.Logger

	mu   sync.Mutex
	subs map[chan RestAlert]struct{}
}

// NewAlertHub creates an AlertHub.
func NewAlertHub(log *slog.Logger) *AlertHub {
	return &AlertHub{
		log:  log,
		subs: make(map[chan RestAlert]struct{}),
	}
}

// RestOver broadcasts an alert to all subscribers. Slow subscribers are
// skipped rather than blocking the timer tick.
func (h *AlertHub) RestOver(clientID, exerciseID uuid.UUID) {
	alert := RestAlert{
		ClientID:   clientID,
		ExerciseID: exerciseID,
		Vibrate:    defaultVibratePattern,
		Tone:       "rest-over",
	}
	h.log.Info("rest over", "client", clientID, "exercise", exerciseID)

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- alert:
		default:
		}
	}
}

// Subscribe registers a new subscriber channel. The returned func removes it.
func (h *AlertHub) Subscribe() (<-chan RestAlert, func()) {
	ch := make(chan RestAlert, 8)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
	return ch, cancel
}

// handleTimerEvents streams rest-over alerts as server-sent events.
func (s *Server) handleTimerEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming unsupported"})
		return
	}

	ch, cancel := s.alerts.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case alert := <-ch:
			data, err := json.Marshal(alert)
			if err != nil {
				continue
			}
			if _, err := w.Write([]byte("event: rest-over\ndata: " + string(data) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
