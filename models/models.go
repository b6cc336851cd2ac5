package models

import (
	"fmt"
	"strings"
	"time"
)

// DefaultCurrency is used whenever an upstream source does not state one.
const DefaultCurrency = "INR"

// BudgetTier drives price ceilings and rating floors during scoring.
type BudgetTier string

const (
	BudgetTierBudget  BudgetTier = "budget"
	BudgetTierComfort BudgetTier = "comfort"
	BudgetTierLuxury  BudgetTier = "luxury"
)

// TripPreferences is the immutable input to a planning request.
type TripPreferences struct {
	FromLocation  string     `json:"from_location" binding:"required"`
	ToLocation    string     `json:"to_location" binding:"required"`
	DepartureDate string     `json:"departure_date" binding:"required"`
	ReturnDate    string     `json:"return_date,omitempty"`
	TravelClass   string     `json:"travel_class"`
	Budget        BudgetTier `json:"budget"`
	Travelers     string     `json:"travelers"`
	Interests     []string   `json:"interests"`
	Diet          string     `json:"diet"`
}

// Validate checks the fields the planner cannot default. This is the only
// error class that surfaces to the caller; everything else degrades to
// fallback output.
func (p *TripPreferences) Validate() error {
	if strings.TrimSpace(p.FromLocation) == "" {
		return fmt.Errorf("from_location is required")
	}
	if strings.TrimSpace(p.ToLocation) == "" {
		return fmt.Errorf("to_location is required")
	}
	if strings.TrimSpace(p.DepartureDate) == "" {
		return fmt.Errorf("departure_date is required")
	}
	if _, err := time.Parse("2006-01-02", p.DepartureDate); err != nil {
		return fmt.Errorf("departure_date must be YYYY-MM-DD: %w", err)
	}
	if p.ReturnDate != "" {
		ret, err := time.Parse("2006-01-02", p.ReturnDate)
		if err != nil {
			return fmt.Errorf("return_date must be YYYY-MM-DD: %w", err)
		}
		dep, _ := time.Parse("2006-01-02", p.DepartureDate)
		if !ret.After(dep) {
			return fmt.Errorf("return_date must be after departure_date")
		}
	}
	return nil
}

// Tier normalizes the budget field, defaulting to comfort.
func (p *TripPreferences) Tier() BudgetTier {
	switch BudgetTier(strings.ToLower(string(p.Budget))) {
	case BudgetTierBudget:
		return BudgetTierBudget
	case BudgetTierLuxury:
		return BudgetTierLuxury
	default:
		return BudgetTierComfort
	}
}

// Nights returns the trip length in days. One-way trips default to 3 days.
func (p *TripPreferences) Nights() int {
	dep, err := time.Parse("2006-01-02", p.DepartureDate)
	if err != nil {
		return 3
	}
	ret, err := time.Parse("2006-01-02", p.ReturnDate)
	if err != nil {
		return 3
	}
	days := int(ret.Sub(dep).Hours() / 24)
	if days <= 0 {
		return 3
	}
	return days
}

// FlightOffer is a single flight candidate, before or after scoring.
type FlightOffer struct {
	Airline          string  `json:"airline"`
	FlightNumber     string  `json:"flight_number,omitempty"`
	DepartureAirport string  `json:"departure_airport"`
	ArrivalAirport   string  `json:"arrival_airport"`
	DepartureTime    string  `json:"departure_time"` // HH:MM
	ArrivalTime      string  `json:"arrival_time"`
	DepartureDate    string  `json:"departure_date,omitempty"`
	ReturnDate       string  `json:"return_date,omitempty"`
	Duration         string  `json:"duration"` // e.g. "2h 15m"
	Price            float64 `json:"price"`
	Currency         string  `json:"currency,omitempty"`
	Stops            int     `json:"stops"`
	FlightClass      string  `json:"flight_class,omitempty"`
	BookingURL       string  `json:"booking_url,omitempty"`

	// PriceEstimated marks offers whose price could not be parsed from the
	// upstream record and was substituted locally.
	PriceEstimated bool `json:"price_estimated,omitempty"`
	// Fallback marks offers synthesized from the catalog instead of live data.
	Fallback bool `json:"fallback,omitempty"`

	// Derived by the scorer.
	Score       int               `json:"score"`
	Recommended bool              `json:"recommended"`
	Cheapest    bool              `json:"cheapest"`
	Reasoning   map[string]string `json:"reasoning"`
}

// Amenity is an icon/label pair attached to a hotel.
type Amenity struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// HotelOffer is a single hotel candidate, before or after scoring.
type HotelOffer struct {
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	Rating        float64   `json:"rating"`
	ReviewsCount  int       `json:"reviews_count"`
	PricePerNight float64   `json:"price_per_night"`
	Currency      string    `json:"currency,omitempty"`
	Amenities     []Amenity `json:"amenities"`
	Description   string    `json:"description,omitempty"`
	BookingURL    string    `json:"booking_url,omitempty"`

	PriceEstimated bool `json:"price_estimated,omitempty"`
	Fallback       bool `json:"fallback,omitempty"`

	Score       int               `json:"score"`
	Recommended bool              `json:"recommended"`
	Reasoning   map[string]string `json:"reasoning"`
}

// Activity is one time-stamped entry in a day plan.
type Activity struct {
	Time        string  `json:"time"`
	Icon        string  `json:"icon"`
	Activity    string  `json:"activity"`
	Duration    string  `json:"duration"`
	Cost        float64 `json:"cost"`
	Description string  `json:"description,omitempty"`
}

// DayPlan is one day of the itinerary. EstimatedCost is always recomputed
// from the activity costs, never trusted from upstream.
type DayPlan struct {
	Day           int        `json:"day"`
	Date          string     `json:"date"`
	Title         string     `json:"title"`
	Activities    []Activity `json:"activities"`
	EstimatedCost float64    `json:"estimated_cost"`
}

// Itinerary is the complete day-by-day plan. EstimatedCost is the sum of
// all day costs plus the per-tier accommodation baseline for the whole stay.
type Itinerary struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	TotalDays     int               `json:"total_days"`
	EstimatedCost float64           `json:"estimated_cost"`
	Currency      string            `json:"currency"`
	DailyPlans    []DayPlan         `json:"daily_plans"`
	Insights      map[string]string `json:"insights"`
	Fallback      bool              `json:"fallback,omitempty"`
}

// TripPlan is the assembled response for one planning request.
type TripPlan struct {
	SessionID string        `json:"session_id"`
	Flights   []FlightOffer `json:"flights"`
	Hotels    []HotelOffer  `json:"hotels"`
	Itinerary Itinerary     `json:"itinerary"`
	Source    string        `json:"source"` // "live" or "estimated"
}
