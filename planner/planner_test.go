package planner

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raahi/catalog"
	"raahi/itinerary"
	"raahi/models"
	"raahi/scoring"
)

type stubFlights struct {
	offers []models.FlightOffer
	err    error
}

func (s stubFlights) SearchFlights(ctx context.Context, prefs models.TripPreferences) ([]models.FlightOffer, error) {
	return s.offers, s.err
}

type stubHotels struct {
	offers []models.HotelOffer
	err    error
}

func (s stubHotels) SearchHotels(ctx context.Context, prefs models.TripPreferences) ([]models.HotelOffer, error) {
	return s.offers, s.err
}

func testPlanner(flights FlightSearcher, hotels HotelSearcher) *Planner {
	cat := catalog.New(catalog.DefaultTables(), catalog.WithRand(rand.New(rand.NewSource(7))))
	synth := itinerary.NewSynthesizer(cat, nil, itinerary.DefaultRules(), nil)
	return New(Config{}, cat, flights, hotels, synth,
		scoring.NewFlightScorer(scoring.DefaultFlightRules()),
		scoring.NewHotelScorer(scoring.DefaultHotelRules()), nil)
}

func delhiGoaPrefs() models.TripPreferences {
	return models.TripPreferences{
		FromLocation:  "Delhi",
		ToLocation:    "Goa",
		DepartureDate: "2024-02-10",
		ReturnDate:    "2024-02-14",
		Budget:        models.BudgetTierComfort,
		Interests:     []string{"beaches"},
	}
}

func TestPlanTripRejectsInvalidInput(t *testing.T) {
	p := testPlanner(nil, nil)

	_, err := p.PlanTrip(context.Background(), models.TripPreferences{ToLocation: "Goa"})
	assert.ErrorIs(t, err, ErrInvalidPreferences)

	bad := delhiGoaPrefs()
	bad.ReturnDate = "2024-02-01" // before departure
	_, err = p.PlanTrip(context.Background(), bad)
	assert.ErrorIs(t, err, ErrInvalidPreferences)
}

func TestPlanTripLiveSearchers(t *testing.T) {
	liveFlight := models.FlightOffer{
		Airline:          "IndiGo",
		DepartureAirport: "DEL",
		ArrivalAirport:   "GOI",
		DepartureTime:    "08:00",
		Duration:         "2h 20m",
		Price:            5200,
	}
	liveHotel := models.HotelOffer{
		Name:          "Seaside Resort",
		Location:      "Goa City Center",
		Rating:        4.4,
		ReviewsCount:  900,
		PricePerNight: 4200,
	}

	p := testPlanner(
		stubFlights{offers: []models.FlightOffer{liveFlight}},
		stubHotels{offers: []models.HotelOffer{liveHotel}},
	)

	plan, err := p.PlanTrip(context.Background(), delhiGoaPrefs())
	require.NoError(t, err)

	assert.Equal(t, SourceLive, plan.Source)
	assert.NotEmpty(t, plan.SessionID)

	require.Len(t, plan.Flights, 1)
	f := plan.Flights[0]
	assert.False(t, f.Fallback)
	assert.True(t, f.Cheapest)
	assert.NotNil(t, f.Reasoning)
	assert.Contains(t, f.BookingURL, "goindigo.in")

	require.Len(t, plan.Hotels, 1)
	assert.Contains(t, plan.Hotels[0].BookingURL, "booking.com")
	assert.NotNil(t, plan.Hotels[0].Reasoning)

	assert.Equal(t, 4, plan.Itinerary.TotalDays)
}

func TestPlanTripFallsBackOnSearchError(t *testing.T) {
	p := testPlanner(
		stubFlights{err: errors.New("amadeus unavailable")},
		stubHotels{err: errors.New("scrape blocked")},
	)

	plan, err := p.PlanTrip(context.Background(), delhiGoaPrefs())
	require.NoError(t, err)

	assert.Equal(t, SourceEstimated, plan.Source)
	require.NotEmpty(t, plan.Flights)
	require.NotEmpty(t, plan.Hotels)
	for _, f := range plan.Flights {
		assert.True(t, f.Fallback)
		assert.True(t, f.PriceEstimated)
		assert.NotEmpty(t, f.BookingURL)
	}
	for _, h := range plan.Hotels {
		assert.True(t, h.Fallback)
	}
}

func TestPlanTripFallsBackOnEmptyResults(t *testing.T) {
	p := testPlanner(stubFlights{}, stubHotels{})

	plan, err := p.PlanTrip(context.Background(), delhiGoaPrefs())
	require.NoError(t, err)

	assert.Equal(t, SourceEstimated, plan.Source)
	assert.NotEmpty(t, plan.Flights)
	assert.NotEmpty(t, plan.Hotels)
}

func TestPlanTripMixedSourcesReportLive(t *testing.T) {
	p := testPlanner(
		stubFlights{err: errors.New("down")},
		stubHotels{offers: []models.HotelOffer{{
			Name: "City Inn", Location: "Goa", Rating: 4.0, PricePerNight: 3000,
		}}},
	)

	plan, err := p.PlanTrip(context.Background(), delhiGoaPrefs())
	require.NoError(t, err)
	assert.Equal(t, SourceLive, plan.Source)
	assert.True(t, plan.Flights[0].Fallback)
	assert.False(t, plan.Hotels[0].Fallback)
}

func TestPlanTripNilSearchersUseCatalog(t *testing.T) {
	p := testPlanner(nil, nil)

	plan, err := p.PlanTrip(context.Background(), delhiGoaPrefs())
	require.NoError(t, err)

	assert.Equal(t, SourceEstimated, plan.Source)
	assert.Len(t, plan.Flights, 5)
	assert.Len(t, plan.Hotels, 5)
	cheapest := 0
	for _, f := range plan.Flights {
		assert.NotNil(t, f.Reasoning)
		if f.Cheapest {
			cheapest++
		}
	}
	assert.Equal(t, 1, cheapest)
	assert.True(t, plan.Itinerary.Fallback)
}
