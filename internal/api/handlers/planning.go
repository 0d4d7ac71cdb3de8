package handlers

import (
	"net/http"

	"food-match-service/internal/api/dto"
	"food-match-service/internal/domain"
)

const maxRouteStops = 200

type Scorer interface {
	Score(d domain.Donation, r domain.Request) domain.MatchScore
}

type RoutePlanner interface {
	PlanRoute(start domain.GeoPoint, stops []domain.GeoPoint) domain.RoutePlan
}

// PlanningHandler serves previews that never change stored state.
// Service resolves stored records (vehicle base, donation and request by id).
type PlanningHandler struct {
	Scorer  Scorer
	Router  RoutePlanner
	Service MatchService
}

// Score previews a match score. Inline records are scored directly; ids are
// resolved through the stored donation and request.
func (h *PlanningHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req dto.ScoreRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	inline := req.Donation != nil || req.Request != nil
	stored := req.DonationID != nil || req.RequestID != nil

	switch {
	case inline && stored:
		writeError(w, r, http.StatusBadRequest, "use either donation and request or donation_id and request_id, not both")
	case inline:
		h.scoreInline(w, r, req)
	case stored:
		if req.DonationID == nil || req.RequestID == nil || *req.DonationID < 1 || *req.RequestID < 1 {
			writeError(w, r, http.StatusBadRequest, "donation_id and request_id are required")
			return
		}
		s, err := h.Service.Score(r.Context(), *req.DonationID, *req.RequestID)
		if err != nil {
			writeServiceError(w, r, "score", err)
			return
		}
		writeJSON(w, r, http.StatusOK, toScore(s))
	default:
		writeError(w, r, http.StatusBadRequest, "donation and request, or donation_id and request_id, are required")
	}
}

func (h *PlanningHandler) scoreInline(w http.ResponseWriter, r *http.Request, req dto.ScoreRequest) {
	if req.Donation == nil || req.Request == nil {
		writeError(w, r, http.StatusBadRequest, "donation and request are both required")
		return
	}
	// need_meals of 0 is allowed; the scorer floors it to 1.
	if req.Donation.QuantityMeals < 1 {
		writeError(w, r, http.StatusBadRequest, "quantity_meals must be at least 1")
		return
	}
	if req.Request.NeedMeals < 0 {
		writeError(w, r, http.StatusBadRequest, "need_meals must not be negative")
		return
	}

	d := domain.Donation{
		IsVeg:         req.Donation.IsVeg,
		QuantityMeals: req.Donation.QuantityMeals,
		Location:      fromPoint(req.Donation.Location),
	}
	rq := domain.Request{
		PrefersVeg: req.Request.PrefersVeg,
		NeedMeals:  req.Request.NeedMeals,
		Location:   fromPoint(req.Request.Location),
	}

	writeJSON(w, r, http.StatusOK, toScore(h.Scorer.Score(d, rq)))
}

func (h *PlanningHandler) Route(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Stops) > maxRouteStops {
		writeError(w, r, http.StatusBadRequest, "at most 200 stops are allowed")
		return
	}

	stops := make([]domain.GeoPoint, 0, len(req.Stops))
	for _, s := range req.Stops {
		stops = append(stops, fromPoint(s))
	}

	switch {
	case req.Start != nil && req.VehicleID != nil:
		writeError(w, r, http.StatusBadRequest, "use either start or vehicle_id, not both")
	case req.Start != nil:
		plan := h.Router.PlanRoute(fromPoint(*req.Start), stops)
		writeJSON(w, r, http.StatusOK, toRoute(plan))
	case req.VehicleID != nil:
		plan, err := h.Service.PreviewRoute(r.Context(), *req.VehicleID, stops)
		if err != nil {
			writeServiceError(w, r, "preview route", err)
			return
		}
		writeJSON(w, r, http.StatusOK, toRoute(plan))
	default:
		writeError(w, r, http.StatusBadRequest, "start or vehicle_id is required")
	}
}
