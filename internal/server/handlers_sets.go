package server

import (
	"net/http"

	"github.com/claude/fitrecord/internal/storage"
	"github.com/google/uuid"
)

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		WorkoutExerciseID uuid.UUID `json:"workout_exercise_id"`
		Reps              *int      `json:"reps"`
		WeightKg          *float64  `json:"weight_kg"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if body.WorkoutExerciseID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "workout_exercise_id is required")
		return
	}
	set, err := s.db.AddSet(r.Context(), body.WorkoutExerciseID, body.Reps, body.WeightKg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid set ID")
		return
	}
	var upd storage.SetUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	set, err := s.db.UpdateSet(r.Context(), id, upd)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid set ID")
		return
	}
	if err := s.db.DeleteSet(r.Context(), id); err != nil {
		writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCompleteSet routes set completion through the coordinator so the rest
// timer starts or clears based on the remaining incomplete sets.
func (s *Server) handleCompleteSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid set ID")
		return
	}
	set, err := s.coord.CompleteSet(r.Context(), id)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}
