package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/fitrecord/internal/storage"
	"github.com/claude/fitrecord/internal/workout"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     *storage.DB
	coord  *workout.Coordinator
	alerts *AlertHub
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, coord *workout.Coordinator, alerts *AlertHub, log *slog.Logger) *Server {
	s := &Server{
		db:     db,
		coord:  coord,
		alerts: alerts,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", s.handleListClients)
			r.Post("/", s.handleCreateClient)
			r.Get("/{id}", s.handleGetClient)
			r.Put("/{id}", s.handleUpdateClient)
			r.Delete("/{id}", s.handleDeleteClient)
		})

		r.Route("/exercises", func(r chi.Router) {
			r.Get("/", s.handleListExercises)
			r.Post("/", s.handleCreateExercise)
			r.Get("/{id}", s.handleGetExercise)
			r.Put("/{id}", s.handleUpdateExercise)
			r.Delete("/{id}", s.handleDeleteExercise)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.handleListSessions)
			r.Post("/", s.handleCreateSession)
			r.Get("/active", s.handleActiveSession)
			r.Get("/{id}", s.handleGetSession)
			r.Delete("/{id}", s.handleDeleteSession)
			r.Post("/{id}/end", s.handleEndSession)
			r.Get("/{id}/clients", s.handleSessionClients)
			r.Post("/{id}/clients", s.handleAddSessionClient)
			r.Get("/{id}/exercises", s.handleListWorkoutExercises)
		})

		r.Route("/workout-exercises", func(r chi.Router) {
			r.Post("/", s.handleAddWorkoutExercise)
			r.Delete("/{id}", s.handleDeleteWorkoutExercise)
		})

		r.Route("/sets", func(r chi.Router) {
			r.Post("/", s.handleAddSet)
			r.Patch("/{id}", s.handleUpdateSet)
			r.Delete("/{id}", s.handleDeleteSet)
			r.Post("/{id}/complete", s.handleCompleteSet)
		})

		r.Get("/history", s.handleHistory)

		r.Route("/timers", func(r chi.Router) {
			r.Get("/", s.handleAllTimers)
			r.Get("/events", s.handleTimerEvents)
			r.Get("/{clientID}", s.handleTimerDisplay)
			r.Post("/select", s.handleSelectClient)
		})

		r.Get("/settings/rest-duration", s.handleGetRestDuration)
		r.Put("/settings/rest-duration", s.handleSetRestDuration)
	})
}
