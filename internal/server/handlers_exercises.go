package server

import (
	"net/http"

	"github.com/claude/fitrecord/internal/models"
	"github.com/claude/fitrecord/internal/storage"
)

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	if group := r.URL.Query().Get("muscle_group"); group != "" {
		mg := models.MuscleGroup(group)
		if !mg.Valid() {
			writeError(w, http.StatusBadRequest, "unknown muscle group")
			return
		}
		exercises, err := s.db.ListExercisesByMuscleGroup(r.Context(), mg)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, exercises)
		return
	}

	exercises, err := s.db.ListExercises(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid exercise ID")
		return
	}
	exercise, err := s.db.GetExercise(r.Context(), id)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func validateExerciseInput(in storage.ExerciseInput) string {
	if in.Name == "" {
		return "name is required"
	}
	if !in.MuscleGroup.Valid() {
		return "unknown muscle group"
	}
	if in.DefaultRestSeconds != nil && *in.DefaultRestSeconds <= 0 {
		return "default_rest_seconds must be positive"
	}
	return ""
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var in storage.ExerciseInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if msg := validateExerciseInput(in); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	exercise, err := s.db.CreateExercise(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid exercise ID")
		return
	}
	var in storage.ExerciseInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if msg := validateExerciseInput(in); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	exercise, err := s.db.UpdateExercise(r.Context(), id, in)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid exercise ID")
		return
	}
	if err := s.db.DeleteExercise(r.Context(), id); err != nil {
		writeStorageError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
