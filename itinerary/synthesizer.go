// Package itinerary expands a trip duration and interest list into a
// day-by-day activity plan. The primary path asks the language model for a
// structured plan and repairs whatever comes back; the fallback path builds
// the plan from templates and the destination activity catalog. Either way
// the caller never sees a malformed itinerary: day costs and dates are always
// recomputed locally.
package itinerary

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"raahi/catalog"
	"raahi/models"
)

// Generator is the language-model collaborator. Implementations wrap a real
// LLM API; the synthesizer only needs prompt-in, text-out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Rules holds the itinerary cost table.
type Rules struct {
	// AccommodationPerNight is the per-tier nightly baseline added on top of
	// activity costs.
	AccommodationPerNight map[models.BudgetTier]float64 `mapstructure:"accommodation_per_night"`
}

func DefaultRules() Rules {
	return Rules{
		AccommodationPerNight: map[models.BudgetTier]float64{
			models.BudgetTierBudget:  2000,
			models.BudgetTierComfort: 4000,
			models.BudgetTierLuxury:  8000,
		},
	}
}

// insightKeys are the six fixed entries every itinerary carries.
var insightKeys = []string{
	"best_time_to_visit",
	"cultural_tips",
	"cuisine",
	"transport",
	"shopping",
	"safety",
}

type Synthesizer struct {
	catalog *catalog.Catalog
	llm     Generator
	rules   Rules
	log     *zap.SugaredLogger
}

func NewSynthesizer(cat *catalog.Catalog, llm Generator, rules Rules, log *zap.SugaredLogger) *Synthesizer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Synthesizer{catalog: cat, llm: llm, rules: rules, log: log}
}

// Build produces the itinerary for a trip. flightCount and hotelCount are
// descriptive context for the model prompt only.
func (s *Synthesizer) Build(ctx context.Context, prefs models.TripPreferences, flightCount, hotelCount int) models.Itinerary {
	days := prefs.Nights()

	if s.llm != nil {
		raw, err := s.llm.Generate(ctx, s.buildPrompt(prefs, days, flightCount, hotelCount))
		if err == nil {
			parsed, perr := parseModelItinerary(raw)
			if perr == nil {
				return s.repair(parsed, prefs, days)
			}
			s.log.Warnf("⚠️  Itinerary JSON parse failed: %v — using template plan", perr)
		} else {
			s.log.Warnf("⚠️  Itinerary generation failed: %v — using template plan", err)
		}
	}

	return s.templatePlan(prefs, days)
}

func (s *Synthesizer) buildPrompt(prefs models.TripPreferences, days, flightCount, hotelCount int) string {
	interests := strings.Join(prefs.Interests, ", ")
	if interests == "" {
		interests = "general sightseeing"
	}
	diet := prefs.Diet
	if diet == "" {
		diet = "no restrictions"
	}

	return fmt.Sprintf(`You are an expert travel planner. Create a %d-day itinerary for %s.
Trip context: departing %s from %s, %s budget, interests: %s, diet: %s.
We already found %d flight and %d hotel options; do not repeat them.

Respond ONLY with JSON in exactly this shape:
{
  "title": "...",
  "description": "...",
  "total_days": %d,
  "estimated_cost": 0,
  "daily_plans": [
    {"day": 1, "date": "%s", "title": "...", "activities": [
      {"time": "9:00 AM", "icon": "🏛️", "activity": "...", "duration": "2 hours", "cost": 400, "description": "..."}
    ]}
  ],
  "insights": {"best_time_to_visit": "...", "cultural_tips": "...", "cuisine": "...", "transport": "...", "shopping": "...", "safety": "..."}
}`,
		days, prefs.ToLocation, prefs.DepartureDate, prefs.FromLocation,
		prefs.Tier(), interests, diet, flightCount, hotelCount, days, prefs.DepartureDate)
}

// repair turns whatever the model produced into a valid itinerary: exactly
// `days` day plans with contiguous indices, recomputed dates and costs, and
// all six insight keys present.
func (s *Synthesizer) repair(parsed *llmItinerary, prefs models.TripPreferences, days int) models.Itinerary {
	dest := prefs.ToLocation

	title := strings.TrimSpace(parsed.Title)
	if title == "" {
		title = defaultTitle(dest, days)
	}
	description := strings.TrimSpace(parsed.Description)
	if description == "" {
		description = defaultDescription(dest, prefs.Interests)
	}

	plans := make([]models.DayPlan, 0, days)
	for i := 0; i < days; i++ {
		var activities []models.Activity
		dayTitle := fmt.Sprintf("Day %d - Explore %s", i+1, dest)

		if i < len(parsed.DailyPlans) {
			src := parsed.DailyPlans[i]
			if t := strings.TrimSpace(src.Title); t != "" {
				dayTitle = t
			}
			for _, a := range src.Activities {
				activities = append(activities, toActivity(a))
			}
		}
		if len(activities) == 0 {
			activities = []models.Activity{{
				Time:     "10:00 AM",
				Icon:     "📍",
				Activity: "Local exploration",
				Duration: "3 hours",
				Cost:     0,
			}}
		}

		plans = append(plans, models.DayPlan{
			Day:           i + 1,
			Date:          dateForDay(prefs.DepartureDate, i),
			Title:         dayTitle,
			Activities:    activities,
			EstimatedCost: sumCosts(activities),
		})
	}

	insights := make(map[string]string, len(insightKeys))
	for _, key := range insightKeys {
		if v, ok := parsed.Insights[key]; ok && strings.TrimSpace(v) != "" {
			insights[key] = v
		} else {
			insights[key] = defaultInsight(key, dest)
		}
	}

	return models.Itinerary{
		Title:         title,
		Description:   description,
		TotalDays:     days,
		EstimatedCost: s.totalCost(plans, prefs, days),
		Currency:      models.DefaultCurrency,
		DailyPlans:    plans,
		Insights:      insights,
	}
}

// templatePlan is the no-model path: arrival template for day 1, departure
// template for day N, catalog-cycled activities for the days in between.
func (s *Synthesizer) templatePlan(prefs models.TripPreferences, days int) models.Itinerary {
	dest := prefs.ToLocation
	pool := s.activityPool(dest)

	plans := make([]models.DayPlan, 0, days)
	slot := 0
	for i := 0; i < days; i++ {
		var dayTitle string
		var activities []models.Activity

		switch {
		case i == 0:
			dayTitle = "Day 1 - Arrival & Local Exploration"
			activities = arrivalActivities(dest, pool)
		case i == days-1:
			dayTitle = fmt.Sprintf("Day %d - Final Exploration & Departure", days)
			activities = departureActivities()
		default:
			dayTitle = fmt.Sprintf("Day %d - Explore %s", i+1, dest)
			activities = middleDayActivities(pool, &slot)
		}

		plans = append(plans, models.DayPlan{
			Day:           i + 1,
			Date:          dateForDay(prefs.DepartureDate, i),
			Title:         dayTitle,
			Activities:    activities,
			EstimatedCost: sumCosts(activities),
		})
	}

	insights := make(map[string]string, len(insightKeys))
	for _, key := range insightKeys {
		insights[key] = defaultInsight(key, dest)
	}

	return models.Itinerary{
		Title:         defaultTitle(dest, days),
		Description:   defaultDescription(dest, prefs.Interests),
		TotalDays:     days,
		EstimatedCost: s.totalCost(plans, prefs, days),
		Currency:      models.DefaultCurrency,
		DailyPlans:    plans,
		Insights:      insights,
		Fallback:      true,
	}
}

// activityPool flattens the destination catalog into a stable, ordered list
// so middle days cycle through it deterministically.
func (s *Synthesizer) activityPool(dest string) []string {
	byCategory := s.catalog.Activities(dest)

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var pool []string
	for _, cat := range categories {
		pool = append(pool, byCategory[cat]...)
	}
	if len(pool) == 0 {
		pool = []string{"local attractions"}
	}
	return pool
}

func arrivalActivities(dest string, pool []string) []models.Activity {
	return []models.Activity{
		{Time: "10:00 AM", Icon: "✈️", Activity: "Arrive in " + dest, Duration: "1 hour", Cost: 0},
		{Time: "12:00 PM", Icon: "🏨", Activity: "Check-in to hotel", Duration: "1 hour", Cost: 0},
		{Time: "2:00 PM", Icon: "🍽️", Activity: "Local lunch", Duration: "1 hour", Cost: 500},
		{Time: "4:00 PM", Icon: "🏛️", Activity: "Visit " + pool[0], Duration: "2 hours", Cost: 300},
		{Time: "7:00 PM", Icon: "🍛", Activity: "Dinner at local restaurant", Duration: "1.5 hours", Cost: 800},
	}
}

func departureActivities() []models.Activity {
	return []models.Activity{
		{Time: "9:00 AM", Icon: "🛍️", Activity: "Shopping for souvenirs", Duration: "2 hours", Cost: 1000},
		{Time: "12:00 PM", Icon: "🍽️", Activity: "Farewell lunch", Duration: "1 hour", Cost: 600},
		{Time: "2:00 PM", Icon: "🏨", Activity: "Check-out from hotel", Duration: "30 minutes", Cost: 0},
		{Time: "4:00 PM", Icon: "✈️", Activity: "Departure", Duration: "1 hour", Cost: 0},
	}
}

// middleDayActivities fills the two excursion slots from the activity pool
// and advances the cycling cursor.
func middleDayActivities(pool []string, slot *int) []models.Activity {
	morning := pool[*slot%len(pool)]
	*slot++
	afternoon := pool[*slot%len(pool)]
	*slot++

	return []models.Activity{
		{Time: "9:00 AM", Icon: "🌅", Activity: "Visit " + morning, Duration: "2 hours", Cost: 400},
		{Time: "12:00 PM", Icon: "🍽️", Activity: "Lunch break", Duration: "1 hour", Cost: 500},
		{Time: "2:00 PM", Icon: "🏛️", Activity: "Explore " + afternoon, Duration: "3 hours", Cost: 600},
		{Time: "6:00 PM", Icon: "☕", Activity: "Evening tea break", Duration: "30 minutes", Cost: 200},
		{Time: "8:00 PM", Icon: "🍛", Activity: "Dinner", Duration: "1.5 hours", Cost: 800},
	}
}

// totalCost is the itinerary invariant: the sum of recomputed day costs plus
// the per-tier accommodation baseline for the whole stay.
func (s *Synthesizer) totalCost(plans []models.DayPlan, prefs models.TripPreferences, days int) float64 {
	total := 0.0
	for _, p := range plans {
		total += p.EstimatedCost
	}
	perNight, ok := s.rules.AccommodationPerNight[prefs.Tier()]
	if !ok {
		perNight = s.rules.AccommodationPerNight[models.BudgetTierComfort]
	}
	return total + perNight*float64(days)
}

func sumCosts(activities []models.Activity) float64 {
	total := 0.0
	for _, a := range activities {
		total += a.Cost
	}
	return total
}

// dateForDay discards any model-provided dates and recomputes day i's date
// from the known departure date.
func dateForDay(departureDate string, offset int) string {
	dep, err := time.Parse("2006-01-02", departureDate)
	if err != nil {
		return departureDate
	}
	return dep.AddDate(0, 0, offset).Format("2006-01-02")
}

func defaultTitle(dest string, days int) string {
	return fmt.Sprintf("Amazing %d-Day %s Adventure", days, dest)
}

func defaultDescription(dest string, interests []string) string {
	highlight := "amazing experiences"
	if len(interests) > 0 {
		n := len(interests)
		if n > 3 {
			n = 3
		}
		highlight = strings.Join(interests[:n], ", ")
	}
	return fmt.Sprintf("Discover the best of %s with this carefully crafted itinerary featuring %s.", dest, highlight)
}

func defaultInsight(key, dest string) string {
	switch key {
	case "best_time_to_visit":
		return "October to March offers the most pleasant weather for " + dest + "."
	case "cultural_tips":
		return "Dress modestly at religious sites and remove footwear before entering temples."
	case "cuisine":
		return "Ask locals for their favorite spots — busy stalls usually mean fresh food."
	case "transport":
		return "App-based cabs and auto-rickshaws cover most of " + dest + "; agree on fares upfront."
	case "shopping":
		return "Local markets are best for souvenirs; bargaining is expected."
	case "safety":
		return "Keep valuables secured and carry a copy of your ID."
	default:
		return ""
	}
}
