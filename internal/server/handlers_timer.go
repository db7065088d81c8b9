package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// handleAllTimers returns the display state of every client with an active
// rest timer, keyed by client ID. Clients in Idle are absent.
func (s *Server) handleAllTimers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.coord.TimerDisplays())
}

func (s *Server) handleTimerDisplay(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(chi.URLParam(r, "clientID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client ID")
		return
	}
	writeJSON(w, http.StatusOK, s.coord.TimerDisplay(clientID))
}

// handleSelectClient records the trainer switching to a client's tab. An
// Overtime timer for that client is acknowledged and cleared.
func (s *Server) handleSelectClient(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ClientID uuid.UUID `json:"client_id"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if body.ClientID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "client_id is required")
		return
	}
	s.coord.SelectClient(body.ClientID)
	writeJSON(w, http.StatusOK, s.coord.TimerDisplay(body.ClientID))
}

func (s *Server) handleGetRestDuration(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"rest_seconds": s.coord.GlobalRestDuration()})
}

func (s *Server) handleSetRestDuration(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RestSeconds int `json:"rest_seconds"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := s.coord.SetGlobalRestDuration(body.RestSeconds); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"rest_seconds": s.coord.GlobalRestDuration()})
}
