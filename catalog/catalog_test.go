package catalog

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raahi/models"
)

func newTestCatalog() *Catalog {
	return New(DefaultTables(), WithRand(rand.New(rand.NewSource(42))))
}

func TestRouteBasePriceUnorderedLookup(t *testing.T) {
	c := newTestCatalog()

	assert.Equal(t, 6000.0, c.RouteBasePrice("Delhi", "Mumbai"))
	assert.Equal(t, 6000.0, c.RouteBasePrice("Mumbai", "Delhi"))
	// unknown pair falls back to the default
	assert.Equal(t, 6000.0, c.RouteBasePrice("Delhi", "Shillong"))
}

func TestRouteBasePriceIdempotent(t *testing.T) {
	c := newTestCatalog()
	first := c.RouteBasePrice("Mumbai", "Goa")
	second := c.RouteBasePrice("Mumbai", "Goa")
	assert.Equal(t, first, second)
	assert.Equal(t, 3500.0, first)
}

func TestHotelBasePrice(t *testing.T) {
	c := newTestCatalog()
	assert.Equal(t, 5000.0, c.HotelBasePrice("Goa"))
	assert.Equal(t, 3500.0, c.HotelBasePrice("Nowhere"))
}

func TestAirportCodeDefaulting(t *testing.T) {
	c := newTestCatalog()
	assert.Equal(t, "BOM", c.AirportCode("Mumbai"))
	assert.Equal(t, "BOM", c.AirportCode("mumbai"))
	assert.Equal(t, "GOI", c.AirportCode("Goa"))
	// raw IATA codes pass through
	assert.Equal(t, "IXC", c.AirportCode("IXC"))
	// unknown city falls back to the default code
	assert.Equal(t, "DEL", c.AirportCode("Atlantis"))
}

func TestActivitiesKnownAndUnknownCity(t *testing.T) {
	c := newTestCatalog()

	goa := c.Activities("Goa")
	assert.Contains(t, goa, "beaches")
	assert.Contains(t, goa["beaches"], "Baga Beach")

	generic := c.Activities("Atlantis")
	assert.Contains(t, generic, "sightseeing")
	assert.Contains(t, generic["sightseeing"], "Local monuments")
}

func TestSynthesizeFlights(t *testing.T) {
	c := newTestCatalog()
	prefs := models.TripPreferences{
		FromLocation:  "Delhi",
		ToLocation:    "Mumbai",
		DepartureDate: "2024-01-01",
		ReturnDate:    "2024-01-04",
		TravelClass:   "economy",
		Budget:        models.BudgetTierComfort,
	}

	flights := c.SynthesizeFlights(prefs)
	require.Len(t, flights, 5)

	seen := map[string]bool{}
	for _, f := range flights {
		assert.True(t, f.Fallback, "synthesized flight must be flagged fallback")
		assert.True(t, f.PriceEstimated)
		assert.Greater(t, f.Price, 0.0)
		assert.Equal(t, "DEL", f.DepartureAirport)
		assert.Equal(t, "BOM", f.ArrivalAirport)
		assert.Equal(t, models.DefaultCurrency, f.Currency)
		assert.False(t, seen[f.Airline], "airlines must be distinct")
		seen[f.Airline] = true
	}
}

func TestSynthesizeFlightsDeterministicWithSeed(t *testing.T) {
	prefs := models.TripPreferences{
		FromLocation:  "Delhi",
		ToLocation:    "Mumbai",
		DepartureDate: "2024-01-01",
	}

	a := New(DefaultTables(), WithRand(rand.New(rand.NewSource(7)))).SynthesizeFlights(prefs)
	b := New(DefaultTables(), WithRand(rand.New(rand.NewSource(7)))).SynthesizeFlights(prefs)
	assert.Equal(t, a, b)
}

func TestSynthesizeHotelsForGoa(t *testing.T) {
	c := newTestCatalog()
	prefs := models.TripPreferences{
		FromLocation:  "Mumbai",
		ToLocation:    "Goa",
		DepartureDate: "2024-01-01",
		ReturnDate:    "2024-01-04",
	}

	hotels := c.SynthesizeHotels(prefs)
	require.Len(t, hotels, 5)

	for _, h := range hotels {
		assert.True(t, h.Fallback)
		assert.True(t, h.PriceEstimated, "fallback hotel prices are estimates")
		assert.Greater(t, h.PricePerNight, 0.0)
		assert.Contains(t, h.Name, "Goa")
		assert.NotEmpty(t, h.Amenities)
		assert.GreaterOrEqual(t, h.Rating, 3.5)
	}
}
