package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// handleHistory serves the client-history query types behind one endpoint:
//
//	?client_id=&type=max_weight&exercise_id=   → {"max_weight_kg": 85} or null
//	?client_id=&type=exercise_history          → per-exercise PR rows
//	?client_id=&type=last_workout              → exercises of last ended session
//	?client_id=&type=recent_workouts&limit=    → recent sessions, newest first
//
// Unknown client or exercise IDs yield empty results; absence of history is a
// normal state on this read path, not an error.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(r.URL.Query().Get("client_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "client_id parameter required")
		return
	}

	switch r.URL.Query().Get("type") {
	case "max_weight":
		exerciseID, err := uuid.Parse(r.URL.Query().Get("exercise_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "exercise_id parameter required")
			return
		}
		max, err := s.db.MaxCompletedWeight(r.Context(), clientID, exerciseID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		// max stays nil when the client has no record for the exercise,
		// so the body distinguishes "no record" from a 0 kg lift.
		writeJSON(w, http.StatusOK, map[string]*float64{"max_weight_kg": max})

	case "exercise_history":
		history, err := s.db.ExerciseHistory(r.Context(), clientID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, history)

	case "last_workout":
		exercises, err := s.db.LastCompletedWorkoutExercises(r.Context(), clientID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, exercises)

	case "recent_workouts":
		limit := 10
		if l := r.URL.Query().Get("limit"); l != "" {
			if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
				limit = parsed
			}
		}
		sessions, err := s.db.RecentSessions(r.Context(), clientID, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, sessions)

	default:
		writeError(w, http.StatusBadRequest, "type parameter required")
	}
}
