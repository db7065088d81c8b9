package server

import (
	"net/http"

	"github.com/google/uuid"
)

func (s *Server) handleAddWorkoutExercise(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SessionID  uuid.UUID `json:"session_id"`
		ClientID   uuid.UUID `json:"client_id"`
		ExerciseID uuid.UUID `json:"exercise_id"`
		OrderIndex int       `json:"order_index"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if body.SessionID == uuid.Nil || body.ClientID == uuid.Nil || body.ExerciseID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "session_id, client_id and exercise_id are required")
		return
	}
	we, err := s.db.AddWorkoutExercise(r.Context(), body.SessionID, body.ClientID, body.ExerciseID, body.OrderIndex)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, we)
}

func (s *Server) handleDeleteWorkoutExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid workout exercise ID")
		return
	}
	if err := s.db.DeleteWorkoutExercise(r.Context(), id); err != nil {
		writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
