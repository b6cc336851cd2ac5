package handlers

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raahi/cache"
	"raahi/catalog"
	"raahi/itinerary"
	"raahi/models"
	"raahi/planner"
	"raahi/scoring"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cat := catalog.New(catalog.DefaultTables(), catalog.WithRand(rand.New(rand.NewSource(42))))
	synth := itinerary.NewSynthesizer(cat, nil, itinerary.DefaultRules(), nil)
	trips := planner.New(planner.Config{}, cat, nil, nil, synth,
		scoring.NewFlightScorer(scoring.DefaultFlightRules()),
		scoring.NewHotelScorer(scoring.DefaultHotelRules()), nil)

	h := New(trips, nil, cache.New("", "", 0, time.Minute, nil), nil)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/health", h.Health)
	api.POST("/plan", h.CreatePlan)
	api.GET("/plan/:id", h.GetPlan)
	api.GET("/download/:id", h.Download)
	return r
}

func postPlan(t *testing.T, r *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/plan", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePlanReturnsFullPlan(t *testing.T) {
	r := testRouter()

	w := postPlan(t, r, models.TripPreferences{
		FromLocation:  "Delhi",
		ToLocation:    "Mumbai",
		DepartureDate: "2024-03-01",
		ReturnDate:    "2024-03-04",
		Budget:        models.BudgetTierComfort,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var plan models.TripPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))

	assert.NotEmpty(t, plan.SessionID)
	assert.Equal(t, "estimated", plan.Source)
	assert.Len(t, plan.Flights, 5)
	assert.Len(t, plan.Hotels, 5)
	assert.Equal(t, 3, plan.Itinerary.TotalDays)
	for _, f := range plan.Flights {
		assert.NotEmpty(t, f.BookingURL)
		assert.NotNil(t, f.Reasoning)
	}
}

func TestCreatePlanRejectsMalformedBody(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/plan", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePlanRejectsInvalidDates(t *testing.T) {
	r := testRouter()

	w := postPlan(t, r, models.TripPreferences{
		FromLocation:  "Delhi",
		ToLocation:    "Mumbai",
		DepartureDate: "01-03-2024",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "departure_date")
}

func TestGetPlanWithoutStorage(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/plan/some-id", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealth(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
