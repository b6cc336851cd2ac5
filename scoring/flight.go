// Package scoring implements the rule-based recommendation engine for flight
// and hotel offers. Each axis contributes integer points and a human-readable
// explanation; offers crossing the category threshold are marked recommended.
// All rule tables are injectable so alternate tables can be swapped without
// code changes.
package scoring

import (
	"sort"
	"strconv"
	"strings"

	"raahi/models"
)

// FlightRules is the rule table for flight scoring.
type FlightRules struct {
	// Ceilings maps budget tier to the acceptable price ceiling.
	Ceilings map[models.BudgetTier]float64 `mapstructure:"ceilings"`

	PricePoints    AxisPoints `mapstructure:"price_points"`
	DurationPoints AxisPoints `mapstructure:"duration_points"`
	AirlinePoints  AxisPoints `mapstructure:"airline_points"`
	TimePoints     AxisPoints `mapstructure:"time_points"`

	// QuickMinutes and ReasonableMinutes bound the duration buckets.
	QuickMinutes      int `mapstructure:"quick_minutes"`
	ReasonableMinutes int `mapstructure:"reasonable_minutes"`

	// TopAirlines score highest; NationalAirlines score mid; others low.
	TopAirlines      []string `mapstructure:"top_airlines"`
	NationalAirlines []string `mapstructure:"national_airlines"`

	RecommendThreshold int `mapstructure:"recommend_threshold"`
	TopN               int `mapstructure:"top_n"`
}

// AxisPoints is the high/medium/low contribution of one scoring axis.
type AxisPoints struct {
	High   int `mapstructure:"high"`
	Medium int `mapstructure:"medium"`
	Low    int `mapstructure:"low"`
}

// DefaultFlightRules returns the canonical flight rule table.
func DefaultFlightRules() FlightRules {
	return FlightRules{
		Ceilings: map[models.BudgetTier]float64{
			models.BudgetTierBudget:  8000,
			models.BudgetTierComfort: 15000,
			models.BudgetTierLuxury:  50000,
		},
		PricePoints:        AxisPoints{High: 30, Medium: 18, Low: 8},
		DurationPoints:     AxisPoints{High: 20, Medium: 12, Low: 6},
		AirlinePoints:      AxisPoints{High: 20, Medium: 12, Low: 6},
		TimePoints:         AxisPoints{High: 15, Medium: 10, Low: 5},
		QuickMinutes:       150,
		ReasonableMinutes:  180,
		TopAirlines:        []string{"IndiGo", "Vistara"},
		NationalAirlines:   []string{"Air India"},
		RecommendThreshold: 60,
		TopN:               5,
	}
}

// FlightScorer ranks flight offers against trip preferences.
type FlightScorer struct {
	rules FlightRules
}

func NewFlightScorer(rules FlightRules) *FlightScorer {
	return &FlightScorer{rules: rules}
}

// Score annotates every offer with a score, reasoning map and recommendation
// flag, marks exactly one offer in the returned set as cheapest, and returns
// the top N sorted descending by score. Input order breaks both sorting and
// cheapest ties.
func (s *FlightScorer) Score(flights []models.FlightOffer, prefs models.TripPreferences) []models.FlightOffer {
	if len(flights) == 0 {
		return flights
	}

	ceiling := s.rules.Ceilings[prefs.Tier()]

	type indexed struct {
		offer models.FlightOffer
		pos   int
	}
	scored := make([]indexed, len(flights))
	for i, f := range flights {
		scored[i] = indexed{offer: f, pos: i}
	}

	for i := range scored {
		f := &scored[i].offer
		reasoning := make(map[string]string, 4)
		score := 0

		// Price axis
		switch {
		case f.Price <= 0.7*ceiling:
			score += s.rules.PricePoints.High
			reasoning["price"] = "Excellent value for this route"
		case f.Price <= ceiling:
			score += s.rules.PricePoints.Medium
			reasoning["price"] = "Good value within your budget"
		default:
			score += s.rules.PricePoints.Low
			reasoning["price"] = "Premium pricing above your usual budget"
		}

		// Duration axis
		minutes := parseDurationMinutes(f.Duration)
		switch {
		case minutes <= s.rules.QuickMinutes:
			score += s.rules.DurationPoints.High
			reasoning["duration"] = "Quick and convenient flight time"
		case minutes <= s.rules.ReasonableMinutes:
			score += s.rules.DurationPoints.Medium
			reasoning["duration"] = "Reasonable flight duration"
		default:
			score += s.rules.DurationPoints.Low
			reasoning["duration"] = "Longer flight but may offer better value"
		}

		// Airline axis
		switch {
		case containsFold(s.rules.TopAirlines, f.Airline):
			score += s.rules.AirlinePoints.High
			reasoning["airline"] = "Known for punctuality and service quality"
		case containsFold(s.rules.NationalAirlines, f.Airline):
			score += s.rules.AirlinePoints.Medium
			reasoning["airline"] = "National carrier with extensive network"
		default:
			score += s.rules.AirlinePoints.Low
			reasoning["airline"] = "Reliable airline with good service"
		}

		// Departure-time axis
		hour := departureHour(f.DepartureTime)
		switch {
		case hour >= 6 && hour <= 10:
			score += s.rules.TimePoints.High
			reasoning["departure"] = "Morning flight - full day at destination"
		case hour >= 11 && hour <= 16:
			score += s.rules.TimePoints.Medium
			reasoning["departure"] = "Convenient daytime departure"
		default:
			score += s.rules.TimePoints.Low
			reasoning["departure"] = "Off-peak departure - may offer better prices"
		}

		f.Score = score
		f.Reasoning = reasoning
		f.Recommended = score >= s.rules.RecommendThreshold
		f.Cheapest = false
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].offer.Score > scored[j].offer.Score
	})

	if s.rules.TopN > 0 && len(scored) > s.rules.TopN {
		scored = scored[:s.rules.TopN]
	}

	// Exactly one offer in the result set is the cheapest; price ties go to
	// the offer that appeared first in the input.
	best := 0
	for i := 1; i < len(scored); i++ {
		if scored[i].offer.Price < scored[best].offer.Price ||
			(scored[i].offer.Price == scored[best].offer.Price && scored[i].pos < scored[best].pos) {
			best = i
		}
	}
	scored[best].offer.Cheapest = true

	result := make([]models.FlightOffer, len(scored))
	for i, sc := range scored {
		result[i] = sc.offer
	}
	return result
}

// parseDurationMinutes understands "2h 15m", "1h" and "45m"; anything else
// defaults to two hours.
func parseDurationMinutes(duration string) int {
	duration = strings.TrimSpace(strings.ToLower(duration))
	if duration == "" {
		return 120
	}

	minutes := 0
	matched := false
	for _, part := range strings.Fields(duration) {
		if strings.HasSuffix(part, "h") {
			if h, err := strconv.Atoi(strings.TrimSuffix(part, "h")); err == nil {
				minutes += h * 60
				matched = true
			}
		} else if strings.HasSuffix(part, "m") {
			if m, err := strconv.Atoi(strings.TrimSuffix(part, "m")); err == nil {
				minutes += m
				matched = true
			}
		}
	}
	if !matched {
		return 120
	}
	return minutes
}

// departureHour extracts the hour from "HH:MM"; midday when unparseable.
func departureHour(departureTime string) int {
	parts := strings.SplitN(departureTime, ":", 2)
	if len(parts) == 2 {
		if h, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return 12
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
