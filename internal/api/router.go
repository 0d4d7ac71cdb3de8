package api

import (
	"net/http"

	"food-match-service/internal/api/handlers"
)

type Deps struct {
	Service handlers.MatchService
	Scorer  handlers.Scorer
	Router  handlers.RoutePlanner
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	matches := &handlers.MatchHandler{Service: deps.Service}
	planning := &handlers.PlanningHandler{
		Scorer:  deps.Scorer,
		Router:  deps.Router,
		Service: deps.Service,
	}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /vehicles", matches.Vehicles)

	mux.HandleFunc("GET /matches", matches.List)
	mux.HandleFunc("POST /matches", matches.Create)
	mux.HandleFunc("POST /matches/{id}/assign", matches.Assign)
	mux.HandleFunc("POST /matches/{id}/status", matches.UpdateStatus)
	mux.HandleFunc("DELETE /matches/{id}", matches.Delete)

	mux.HandleFunc("GET /donations/{id}/suggestions", matches.Suggestions)

	mux.HandleFunc("POST /score", planning.Score)
	mux.HandleFunc("POST /routes", planning.Route)

	return requestIDMiddleware(loggingMiddleware(recoverMiddleware(mux)))
}
