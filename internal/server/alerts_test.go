package server

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
)

// TestAlertHubBroadcast verifies subscribers receive the rest-over alert with
// the vibration pattern attached.
func TestAlertHubBroadcast(t *testing.T) {
	hub := NewAlertHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ch, cancel := hub.Subscribe()
	defer cancel()

	clientID, exerciseID := uuid.New(), uuid.New()
	hub.RestOver(clientID, exerciseID)

	select {
	case alert := <-ch:
		if alert.ClientID != clientID {
			t.Errorf("client = %v, want %v", alert.ClientID, clientID)
		}
		if alert.ExerciseID != exerciseID {
			t.Errorf("exercise = %v, want %v", alert.ExerciseID, exerciseID)
		}
		if len(alert.Vibrate) == 0 {
			t.Error("alert has no vibration pattern")
		}
	default:
		t.Fatal("no alert delivered")
	}
}

// TestAlertHubUnsubscribe verifies a cancelled subscriber gets nothing.
func TestAlertHubUnsubscribe(t *testing.T) {
	hub := NewAlertHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ch, cancel := hub.Subscribe()
	cancel()

	hub.RestOver(uuid.New(), uuid.New())

	select {
	case <-ch:
		t.Error("unsubscribed channel received an alert")
	default:
	}
}

// TestAlertHubSlowSubscriber verifies a full subscriber buffer does not block
// the broadcast.
func TestAlertHubSlowSubscriber(t *testing.T) {
	hub := NewAlertHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, cancel := hub.Subscribe()
	defer cancel()

	for range 20 {
		hub.RestOver(uuid.New(), uuid.New())
	}
	// Reaching here without deadlock is the assertion.
}
