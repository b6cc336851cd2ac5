package itinerary

import (
	"encoding/json"
	"fmt"
	"strings"

	"raahi/models"
	"raahi/pricing"
)

// ErrNoJSON is returned when the model reply contains no JSON object at all.
var ErrNoJSON = fmt.Errorf("no JSON object found in model response")

// llmItinerary mirrors the schema the model is asked to produce. Every field
// is optional on the wire; missing fields are repaired, never rejected.
type llmItinerary struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	TotalDays     int               `json:"total_days"`
	EstimatedCost interface{}       `json:"estimated_cost"`
	DailyPlans    []llmDayPlan      `json:"daily_plans"`
	Insights      map[string]string `json:"insights"`
}

type llmDayPlan struct {
	Day        int           `json:"day"`
	Date       string        `json:"date"`
	Title      string        `json:"title"`
	Activities []llmActivity `json:"activities"`
}

type llmActivity struct {
	Time        string      `json:"time"`
	Icon        string      `json:"icon"`
	Activity    string      `json:"activity"`
	Duration    string      `json:"duration"`
	Cost        interface{} `json:"cost"`
	Description string      `json:"description"`
}

// extractJSON tolerates prose and markdown fencing around the model's JSON by
// slicing from the first '{' to the last '}'.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", ErrNoJSON
	}
	return s[start : end+1], nil
}

// parseModelItinerary decodes the model reply into the wire schema.
func parseModelItinerary(raw string) (*llmItinerary, error) {
	body, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var parsed llmItinerary
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse itinerary JSON: %w", err)
	}
	return &parsed, nil
}

// toActivity converts a wire activity, normalizing its cost field which may
// arrive as a number, a currency string, or garbage.
func toActivity(a llmActivity) models.Activity {
	cost, _ := pricing.Normalize(a.Cost)

	label := strings.TrimSpace(a.Activity)
	if label == "" {
		label = "Local exploration"
		cost = 0
	}

	t := strings.TrimSpace(a.Time)
	if t == "" {
		t = "10:00 AM"
	}
	icon := a.Icon
	if icon == "" {
		icon = "📍"
	}
	duration := strings.TrimSpace(a.Duration)
	if duration == "" {
		duration = "1 hour"
	}

	return models.Activity{
		Time:        t,
		Icon:        icon,
		Activity:    label,
		Duration:    duration,
		Cost:        cost,
		Description: strings.TrimSpace(a.Description),
	}
}
