package scoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raahi/models"
)

func comfortPrefs() models.TripPreferences {
	return models.TripPreferences{
		FromLocation:  "Delhi",
		ToLocation:    "Mumbai",
		DepartureDate: "2024-01-01",
		ReturnDate:    "2024-01-04",
		Budget:        models.BudgetTierComfort,
		TravelClass:   "economy",
	}
}

func TestFlightScoreExactBestCase(t *testing.T) {
	// price ≤ 70% of the comfort ceiling, quick flight, top-tier airline,
	// morning departure: 30 + 20 + 20 + 15 = 85.
	flights := []models.FlightOffer{{
		Airline:       "IndiGo",
		FlightNumber:  "6E204",
		Price:         9000,
		Duration:      "2h 10m",
		DepartureTime: "08:30",
	}}

	scored := NewFlightScorer(DefaultFlightRules()).Score(flights, comfortPrefs())
	require.Len(t, scored, 1)
	assert.Equal(t, 85, scored[0].Score)
	assert.True(t, scored[0].Recommended)
	assert.True(t, scored[0].Cheapest)
	assert.Len(t, scored[0].Reasoning, 4)
}

func TestFlightScoreWorstCase(t *testing.T) {
	flights := []models.FlightOffer{{
		Airline:       "NoName Air",
		Price:         20000, // above the comfort ceiling
		Duration:      "4h 30m",
		DepartureTime: "23:00",
	}}

	scored := NewFlightScorer(DefaultFlightRules()).Score(flights, comfortPrefs())
	require.Len(t, scored, 1)
	assert.Equal(t, 25, scored[0].Score) // 8 + 6 + 6 + 5
	assert.False(t, scored[0].Recommended)
	assert.NotNil(t, scored[0].Reasoning, "losing offers still carry reasoning")
}

func TestFlightExactlyOneCheapest(t *testing.T) {
	flights := []models.FlightOffer{
		{Airline: "Vistara", FlightNumber: "UK991", Price: 5500, Duration: "2h", DepartureTime: "09:00"},
		{Airline: "IndiGo", FlightNumber: "6E101", Price: 5000, Duration: "2h", DepartureTime: "07:00"},
		{Airline: "SpiceJet", FlightNumber: "SG442", Price: 5000, Duration: "2h 30m", DepartureTime: "14:00"},
	}

	scored := NewFlightScorer(DefaultFlightRules()).Score(flights, comfortPrefs())

	cheapest := 0
	for _, f := range scored {
		if f.Cheapest {
			cheapest++
			// tie at 5000 broken by input order: IndiGo came first
			assert.Equal(t, "IndiGo", f.Airline)
			assert.Equal(t, 5000.0, f.Price)
		}
	}
	assert.Equal(t, 1, cheapest)
}

func TestFlightTopFiveSortedDescending(t *testing.T) {
	var flights []models.FlightOffer
	for i := 0; i < 7; i++ {
		flights = append(flights, models.FlightOffer{
			Airline:       "Carrier",
			FlightNumber:  fmt.Sprintf("XX%d", 100+i),
			Price:         float64(4000 + i*3000),
			Duration:      fmt.Sprintf("%dh", 2+i),
			DepartureTime: fmt.Sprintf("%02d:00", 6+i*2),
		})
	}

	scored := NewFlightScorer(DefaultFlightRules()).Score(flights, comfortPrefs())
	require.Len(t, scored, 5)
	for i := 1; i < len(scored); i++ {
		assert.GreaterOrEqual(t, scored[i-1].Score, scored[i].Score)
	}
}

func TestFlightEmptyInputPassesThrough(t *testing.T) {
	scored := NewFlightScorer(DefaultFlightRules()).Score(nil, comfortPrefs())
	assert.Empty(t, scored)
}

func TestParseDurationMinutes(t *testing.T) {
	assert.Equal(t, 135, parseDurationMinutes("2h 15m"))
	assert.Equal(t, 60, parseDurationMinutes("1h"))
	assert.Equal(t, 45, parseDurationMinutes("45m"))
	assert.Equal(t, 120, parseDurationMinutes(""))
	assert.Equal(t, 120, parseDurationMinutes("soon"))
}

func TestBudgetTierCeilingChangesRecommendation(t *testing.T) {
	flight := models.FlightOffer{
		Airline:       "IndiGo",
		Price:         9000,
		Duration:      "2h",
		DepartureTime: "08:00",
	}

	prefs := comfortPrefs()
	prefs.Budget = models.BudgetTierBudget // ceiling 8000, price now above it

	scored := NewFlightScorer(DefaultFlightRules()).Score([]models.FlightOffer{flight}, prefs)
	require.Len(t, scored, 1)
	assert.Equal(t, 63, scored[0].Score) // 8 + 20 + 20 + 15
	assert.True(t, scored[0].Recommended)
	assert.Equal(t, "Premium pricing above your usual budget", scored[0].Reasoning["price"])
}
