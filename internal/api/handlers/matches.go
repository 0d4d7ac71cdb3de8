package handlers

import (
	"context"
	"net/http"
	"strconv"

	"food-match-service/internal/api/dto"
	"food-match-service/internal/domain"
	"food-match-service/internal/matching"
)

const (
	defaultSuggestionLimit = 5
	maxSuggestionLimit     = 50
)

// MatchService is the lifecycle surface the HTTP layer drives.
// *services.Workflow implements it.
type MatchService interface {
	Score(ctx context.Context, donationID, requestID int) (domain.MatchScore, error)
	CreateMatch(ctx context.Context, donationID, requestID int) (*domain.Match, error)
	AssignVehicle(ctx context.Context, matchID, vehicleID int) (*domain.Match, error)
	UpdateStatus(ctx context.Context, matchID int, status string) (*domain.Match, error)
	DeleteMatch(ctx context.Context, matchID int) error
	SuggestRequests(ctx context.Context, donationID int, limit int) ([]matching.Candidate, error)
	PreviewRoute(ctx context.Context, vehicleID int, stops []domain.GeoPoint) (domain.RoutePlan, error)
	ListMatches(ctx context.Context) ([]*domain.Match, error)
	ListVehicles(ctx context.Context) ([]*domain.Vehicle, error)
}

type MatchHandler struct {
	Service MatchService
}

func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	ms, err := h.Service.ListMatches(r.Context())
	if err != nil {
		writeServiceError(w, r, "list matches", err)
		return
	}

	res := dto.ListMatchesResponse{Matches: make([]dto.MatchResponse, 0, len(ms))}
	for _, m := range ms {
		res.Matches = append(res.Matches, toMatch(m))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.DonationID < 1 || req.RequestID < 1 {
		writeError(w, r, http.StatusBadRequest, "donation_id and request_id are required")
		return
	}

	m, err := h.Service.CreateMatch(r.Context(), req.DonationID, req.RequestID)
	if err != nil {
		writeServiceError(w, r, "create match", err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toMatch(m))
}

func (h *MatchHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.AssignVehicleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.VehicleID < 1 {
		writeError(w, r, http.StatusBadRequest, "vehicle_id is required")
		return
	}

	m, err := h.Service.AssignVehicle(r.Context(), id, req.VehicleID)
	if err != nil {
		writeServiceError(w, r, "assign vehicle", err)
		return
	}
	writeJSON(w, r, http.StatusOK, toMatch(m))
}

func (h *MatchHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.Service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, r, "update match status", err)
		return
	}
	writeJSON(w, r, http.StatusOK, toMatch(m))
}

func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.DeleteMatch(r.Context(), id); err != nil {
		writeServiceError(w, r, "delete match", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Suggestions ranks open requests for a donation; ?limit= caps the result.
func (h *MatchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	limit := defaultSuggestionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSuggestionLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 50")
			return
		}
		limit = n
	}

	cands, err := h.Service.SuggestRequests(r.Context(), id, limit)
	if err != nil {
		writeServiceError(w, r, "suggest requests", err)
		return
	}

	res := dto.SuggestionsResponse{
		DonationID:  id,
		Suggestions: make([]dto.SuggestionResponse, 0, len(cands)),
	}
	for _, c := range cands {
		res.Suggestions = append(res.Suggestions, dto.SuggestionResponse{
			RequestID:     c.Request.RequestID,
			ScoreResponse: toScore(c.Score),
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *MatchHandler) Vehicles(w http.ResponseWriter, r *http.Request) {
	vs, err := h.Service.ListVehicles(r.Context())
	if err != nil {
		writeServiceError(w, r, "list vehicles", err)
		return
	}

	res := dto.ListVehiclesResponse{Vehicles: make([]dto.VehicleResponse, 0, len(vs))}
	for _, v := range vs {
		res.Vehicles = append(res.Vehicles, toVehicle(v))
	}
	writeJSON(w, r, http.StatusOK, res)
}
