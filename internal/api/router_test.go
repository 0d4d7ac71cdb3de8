package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-match-service/internal/adapters/memory"
	"food-match-service/internal/adapters/seed"
	"food-match-service/internal/api/dto"
	"food-match-service/internal/domain"
	"food-match-service/internal/matching"
	"food-match-service/internal/routing"
	"food-match-service/internal/services"
)

var (
	donorPoint   = domain.GeoPoint{Lat: 15.8497, Lon: 74.4977}
	requestPoint = domain.GeoPoint{Lat: 15.8570, Lon: 74.5060}
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	store.Load(&seed.Data{
		Vehicles: seed.DefaultVehicles(),
		Donations: []domain.Donation{
			{DonationID: 1, DonorEmail: "donor@example.com", IsVeg: true, QuantityMeals: 50, Location: donorPoint, Status: domain.DonationOpen},
		},
		Requests: []domain.Request{
			{RequestID: 1, RecipientEmail: "ngo@example.com", PrefersVeg: true, NeedMeals: 20, Location: requestPoint, Status: domain.RequestOpen},
			{RequestID: 2, RecipientEmail: "ngo2@example.com", PrefersVeg: true, NeedMeals: 80, Location: requestPoint, Status: domain.RequestOpen},
		},
	})

	scorer, err := matching.NewEngine(matching.DefaultConfig())
	require.NoError(t, err)
	router, err := routing.NewEngine(routing.DefaultConfig())
	require.NoError(t, err)

	wf, err := services.NewWorkflow(services.WorkflowDeps{
		Store:  store,
		Scorer: scorer,
		Router: router,
		Now:    func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)

	return NewRouter(Deps{Service: wf, Scorer: scorer, Router: router})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(t, h, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDIsPropagated(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestListVehicles(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/vehicles", "")
	require.Equal(t, http.StatusOK, rec.Code)

	res := decode[dto.ListVehiclesResponse](t, rec)
	require.Len(t, res.Vehicles, 2)
	assert.Equal(t, "Van-1", res.Vehicles[0].Name)
	assert.Equal(t, 80, res.Vehicles[0].CapacityMeals)
}

func TestMatchLifecycleOverHTTP(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/matches", `{"donation_id":1,"request_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[dto.MatchResponse](t, rec)
	assert.Equal(t, "planned", created.Status)
	assert.InDelta(t, 0.9759, created.Score, 1e-3)
	assert.Equal(t, "food=1.00, qty=1.00, dist=1.2km", created.Reason)
	assert.Nil(t, created.Route)

	rec = do(t, h, http.MethodPost, "/matches", `{"donation_id":1,"request_id":2}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/matches/1/assign", `{"vehicle_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assigned := decode[dto.MatchResponse](t, rec)
	assert.Equal(t, "assigned", assigned.Status)
	require.NotNil(t, assigned.Route)
	assert.Equal(t, []dto.Point{{Lat: donorPoint.Lat, Lon: donorPoint.Lon}, {Lat: requestPoint.Lat, Lon: requestPoint.Lon}}, assigned.Route.VisitingOrder)
	assert.InDelta(t, 1.5639, assigned.Route.TotalDistanceKm, 1e-3)

	rec = do(t, h, http.MethodDelete, "/matches/1", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/matches/1/status", `{"status":"bogus"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/matches/1/status", `{"status":"delivered"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "delivered", decode[dto.MatchResponse](t, rec).Status)

	rec = do(t, h, http.MethodGet, "/matches", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[dto.ListMatchesResponse](t, rec).Matches, 1)

	rec = do(t, h, http.MethodDelete, "/matches/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodDelete, "/matches/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateMatchBadBodies(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"donation_id":`},
		{"unknown field", `{"donation_id":1,"request_id":1,"extra":true}`},
		{"two objects", `{"donation_id":1,"request_id":1}{}`},
		{"missing ids", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/matches", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestBadPathID(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/matches/abc/assign", `{"vehicle_id":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/matches/9/assign", `{"vehicle_id":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSuggestions(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/donations/1/suggestions?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[dto.SuggestionsResponse](t, rec)
	require.Len(t, res.Suggestions, 1)
	// request 1 is fully covered, request 2 only partly
	assert.Equal(t, 1, res.Suggestions[0].RequestID)

	rec = do(t, h, http.MethodGet, "/donations/1/suggestions?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/donations/7/suggestions", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScoreAdHocPair(t *testing.T) {
	h := newTestRouter(t)

	body := `{
		"donation": {"is_veg": false, "quantity_meals": 50, "location": {"lat": 15.8497, "lon": 74.4977}},
		"request": {"prefers_veg": true, "need_meals": 20, "location": {"lat": 15.8570, "lon": 74.5060}}
	}`
	rec := do(t, h, http.MethodPost, "/score", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[dto.ScoreResponse](t, rec)
	assert.InDelta(t, 0.6959, res.Score, 1e-3)
	assert.Equal(t, 0.3, res.Explanation.FoodCompatibility)
	assert.Equal(t, "food=0.30, qty=1.00, dist=1.2km", res.Reason)

	rec = do(t, h, http.MethodPost, "/score", `{"donation":{"quantity_meals":-1},"request":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScoreMealCounts(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/score", `{"donation":{"quantity_meals":0},"request":{"need_meals":5}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/score", `{"donation":{"quantity_meals":5},"request":{"need_meals":0}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1.0, decode[dto.ScoreResponse](t, rec).Explanation.QuantityFit)

	rec = do(t, h, http.MethodPost, "/score", `{"donation":{"quantity_meals":5}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScoreStoredPair(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/score", `{"donation_id":1,"request_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[dto.ScoreResponse](t, rec)
	assert.InDelta(t, 0.9759, res.Score, 1e-3)
	assert.Equal(t, "food=1.00, qty=1.00, dist=1.2km", res.Reason)

	// scoring does not create a match
	rec = do(t, h, http.MethodGet, "/matches", "")
	assert.Empty(t, decode[dto.ListMatchesResponse](t, rec).Matches)

	rec = do(t, h, http.MethodPost, "/score", `{"donation_id":1,"request_id":42}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/score", `{"donation_id":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/score", `{"donation_id":1,"request_id":1,"donation":{"quantity_meals":5},"request":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/score", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoutes(t *testing.T) {
	h := newTestRouter(t)

	body := `{"start":{"lat":0,"lon":0},"stops":[{"lat":0,"lon":2},{"lat":0,"lon":1}]}`
	rec := do(t, h, http.MethodPost, "/routes", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decode[dto.RouteResponse](t, rec)
	assert.Equal(t, routing.GreedyStrategyName, res.Strategy)
	assert.Equal(t, []dto.Point{{Lat: 0, Lon: 1}, {Lat: 0, Lon: 2}}, res.VisitingOrder)

	rec = do(t, h, http.MethodPost, "/routes", `{"vehicle_id":1,"stops":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res = decode[dto.RouteResponse](t, rec)
	assert.Empty(t, res.VisitingOrder)
	assert.Equal(t, 0.0, res.TotalDistanceKm)

	rec = do(t, h, http.MethodPost, "/routes", `{"stops":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/routes", `{"start":{"lat":0,"lon":0},"vehicle_id":1,"stops":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/routes", `{"vehicle_id":99,"stops":[]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecoverMiddleware(t *testing.T) {
	h := requestIDMiddleware(loggingMiddleware(recoverMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))))

	rec := do(t, h, http.MethodGet, "/anything", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}
