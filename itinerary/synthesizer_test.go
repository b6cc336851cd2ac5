package itinerary

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raahi/catalog"
	"raahi/models"
)

type stubLLM struct {
	reply string
	err   error
}

func (s stubLLM) Generate(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func testCatalog() *catalog.Catalog {
	return catalog.New(catalog.DefaultTables(), catalog.WithRand(rand.New(rand.NewSource(1))))
}

func goaPrefs() models.TripPreferences {
	return models.TripPreferences{
		FromLocation:  "Mumbai",
		ToLocation:    "Goa",
		DepartureDate: "2024-01-01",
		ReturnDate:    "2024-01-04",
		Budget:        models.BudgetTierComfort,
		Interests:     []string{"beaches", "food"},
	}
}

func assertItineraryInvariants(t *testing.T, it models.Itinerary, departureDate string, accommodationPerNight float64) {
	t.Helper()

	require.Equal(t, it.TotalDays, len(it.DailyPlans))

	sumDays := 0.0
	for i, day := range it.DailyPlans {
		assert.Equal(t, i+1, day.Day, "day indices must be contiguous and 1-based")
		assert.Equal(t, dateForDay(departureDate, i), day.Date)

		sumActivities := 0.0
		for _, a := range day.Activities {
			sumActivities += a.Cost
		}
		assert.Equal(t, sumActivities, day.EstimatedCost, "day cost must equal sum of activity costs")
		sumDays += day.EstimatedCost
	}

	expected := sumDays + accommodationPerNight*float64(it.TotalDays)
	assert.Equal(t, expected, it.EstimatedCost)

	require.Len(t, it.Insights, 6)
	for _, key := range insightKeys {
		assert.NotEmpty(t, it.Insights[key])
	}
}

func TestTemplatePlanThreeDays(t *testing.T) {
	s := NewSynthesizer(testCatalog(), nil, DefaultRules(), nil)

	it := s.Build(context.Background(), goaPrefs(), 5, 5)

	assert.True(t, it.Fallback)
	assert.Equal(t, 3, it.TotalDays)
	assertItineraryInvariants(t, it, "2024-01-01", 4000)

	// day 1 arrival template, day 3 departure template, day 2 catalog-cycled
	assert.Contains(t, it.DailyPlans[0].Title, "Arrival")
	assert.Equal(t, "Arrive in Goa", it.DailyPlans[0].Activities[0].Activity)
	assert.Contains(t, it.DailyPlans[2].Title, "Departure")
	assert.Equal(t, "Departure", it.DailyPlans[2].Activities[3].Activity)
	assert.Contains(t, it.DailyPlans[1].Activities[0].Activity, "Visit ")
}

func TestTemplatePlanOneWayDefaultsToThreeDays(t *testing.T) {
	prefs := goaPrefs()
	prefs.ReturnDate = ""

	s := NewSynthesizer(testCatalog(), nil, DefaultRules(), nil)
	it := s.Build(context.Background(), prefs, 0, 0)

	assert.Equal(t, 3, it.TotalDays)
	assertItineraryInvariants(t, it, "2024-01-01", 4000)
}

func TestModelPathParsesFencedJSON(t *testing.T) {
	reply := "Here is your plan!\n```json\n" + `{
		"title": "Goa Getaway",
		"description": "Sun and sand",
		"total_days": 99,
		"estimated_cost": "totally wrong",
		"daily_plans": [
			{"day": 7, "date": "1999-12-31", "title": "Beach Day", "activities": [
				{"time": "9:00 AM", "icon": "🏖️", "activity": "Baga Beach", "duration": "3 hours", "cost": "₹400"},
				{"time": "1:00 PM", "icon": "🍽️", "activity": "Beach shack lunch", "duration": "1 hour", "cost": 600}
			]},
			{"day": 8, "title": "Old Goa", "activities": [
				{"activity": "Basilica of Bom Jesus", "cost": 100}
			]},
			{"day": 9, "title": "Departure", "activities": [
				{"activity": "Fly home", "cost": 0}
			]}
		],
		"insights": {"cuisine": "Try the fish curry"}
	}` + "\n```\nEnjoy!"

	s := NewSynthesizer(testCatalog(), stubLLM{reply: reply}, DefaultRules(), nil)
	it := s.Build(context.Background(), goaPrefs(), 5, 5)

	assert.False(t, it.Fallback)
	assert.Equal(t, "Goa Getaway", it.Title)
	// total_days and dates come from the trip, not the model
	assert.Equal(t, 3, it.TotalDays)
	assert.Equal(t, "2024-01-01", it.DailyPlans[0].Date)
	assert.Equal(t, 1, it.DailyPlans[0].Day)
	// day cost recomputed from activities, model's estimate discarded
	assert.Equal(t, 1000.0, it.DailyPlans[0].EstimatedCost)
	// provided insight kept, missing ones defaulted
	assert.Equal(t, "Try the fish curry", it.Insights["cuisine"])
	assertItineraryInvariants(t, it, "2024-01-01", 4000)
}

func TestModelPathRepairsShortPlan(t *testing.T) {
	reply := `{"title": "", "daily_plans": [{"day": 1, "activities": [{"activity": "Fort walk", "cost": 250}]}]}`

	s := NewSynthesizer(testCatalog(), stubLLM{reply: reply}, DefaultRules(), nil)
	it := s.Build(context.Background(), goaPrefs(), 5, 5)

	require.Equal(t, 3, it.TotalDays)
	assert.Equal(t, "Amazing 3-Day Goa Adventure", it.Title)
	// padded days default to zero-cost local exploration
	assert.Equal(t, "Local exploration", it.DailyPlans[1].Activities[0].Activity)
	assert.Equal(t, 0.0, it.DailyPlans[1].EstimatedCost)
	assertItineraryInvariants(t, it, "2024-01-01", 4000)
}

func TestModelFailureFallsBackToTemplate(t *testing.T) {
	s := NewSynthesizer(testCatalog(), stubLLM{err: errors.New("model unavailable")}, DefaultRules(), nil)
	it := s.Build(context.Background(), goaPrefs(), 5, 5)
	assert.True(t, it.Fallback)
	assertItineraryInvariants(t, it, "2024-01-01", 4000)

	s = NewSynthesizer(testCatalog(), stubLLM{reply: "I cannot help with that."}, DefaultRules(), nil)
	it = s.Build(context.Background(), goaPrefs(), 5, 5)
	assert.True(t, it.Fallback)
}

func TestExtractJSON(t *testing.T) {
	body, err := extractJSON("prose before {\"a\": 1} prose after")
	require.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, body)

	_, err = extractJSON("no json here")
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestLongTripCyclesActivities(t *testing.T) {
	prefs := goaPrefs()
	prefs.ReturnDate = "2024-01-08" // 7 days: 5 middle days cycle the pool

	s := NewSynthesizer(testCatalog(), nil, DefaultRules(), nil)
	it := s.Build(context.Background(), prefs, 0, 0)

	require.Equal(t, 7, it.TotalDays)
	assertItineraryInvariants(t, it, "2024-01-01", 4000)

	// consecutive middle days pull different activities from the pool
	assert.NotEqual(t,
		it.DailyPlans[1].Activities[0].Activity,
		it.DailyPlans[2].Activities[0].Activity)
}
