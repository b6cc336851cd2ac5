package scoring

import (
	"sort"
	"strings"

	"raahi/models"
)

// HotelTierRule bounds one budget tier: the acceptable per-night price and
// the rating floor a hotel should clear for that tier.
type HotelTierRule struct {
	Ceiling   float64 `mapstructure:"ceiling"`
	MinRating float64 `mapstructure:"min_rating"`
}

// HotelRules is the rule table for hotel scoring.
type HotelRules struct {
	Tiers map[models.BudgetTier]HotelTierRule `mapstructure:"tiers"`

	PricePoints    AxisPoints `mapstructure:"price_points"`
	RatingPoints   AxisPoints `mapstructure:"rating_points"`
	LocationPoints AxisPoints `mapstructure:"location_points"`

	// AmenityMatchPoints is awarded per interest matched by an amenity,
	// capped at AmenityMatchCap.
	AmenityMatchPoints int `mapstructure:"amenity_match_points"`
	AmenityMatchCap    int `mapstructure:"amenity_match_cap"`

	// Review-volume bonus on top of the four axes.
	ManyReviews      int `mapstructure:"many_reviews"`
	SomeReviews      int `mapstructure:"some_reviews"`
	ManyReviewsBonus int `mapstructure:"many_reviews_bonus"`
	SomeReviewsBonus int `mapstructure:"some_reviews_bonus"`

	RecommendThreshold int `mapstructure:"recommend_threshold"`
	TopN               int `mapstructure:"top_n"`
}

// DefaultHotelRules returns the canonical hotel rule table.
func DefaultHotelRules() HotelRules {
	return HotelRules{
		Tiers: map[models.BudgetTier]HotelTierRule{
			models.BudgetTierBudget:  {Ceiling: 3000, MinRating: 3.5},
			models.BudgetTierComfort: {Ceiling: 6000, MinRating: 4.0},
			models.BudgetTierLuxury:  {Ceiling: 15000, MinRating: 4.5},
		},
		PricePoints:        AxisPoints{High: 30, Medium: 20, Low: 10},
		RatingPoints:       AxisPoints{High: 25, Medium: 15, Low: 8},
		LocationPoints:     AxisPoints{High: 15, Medium: 10, Low: 5},
		AmenityMatchPoints: 8,
		AmenityMatchCap:    16,
		ManyReviews:        500,
		SomeReviews:        100,
		ManyReviewsBonus:   5,
		SomeReviewsBonus:   3,
		RecommendThreshold: 70,
		TopN:               5,
	}
}

// interestAmenityKeywords maps interest tags to the amenity keywords that
// satisfy them.
var interestAmenityKeywords = map[string][]string{
	"wellness":  {"spa", "gym", "fitness"},
	"beaches":   {"pool"},
	"adventure": {"pool"},
	"business":  {"business"},
}

// HotelScorer ranks hotel offers against trip preferences.
type HotelScorer struct {
	rules HotelRules
}

func NewHotelScorer(rules HotelRules) *HotelScorer {
	return &HotelScorer{rules: rules}
}

// Score annotates every offer with a score, reasoning map and recommendation
// flag, then returns the top N sorted descending by score.
func (s *HotelScorer) Score(hotels []models.HotelOffer, prefs models.TripPreferences) []models.HotelOffer {
	if len(hotels) == 0 {
		return hotels
	}

	tier := s.rules.Tiers[prefs.Tier()]

	scored := make([]models.HotelOffer, len(hotels))
	copy(scored, hotels)

	for i := range scored {
		h := &scored[i]
		reasoning := make(map[string]string, 5)
		score := 0

		// Price vs budget ceiling
		switch {
		case h.PricePerNight <= 0.7*tier.Ceiling:
			score += s.rules.PricePoints.High
			reasoning["value"] = "Excellent value for this budget"
		case h.PricePerNight <= tier.Ceiling:
			score += s.rules.PricePoints.Medium
			reasoning["value"] = "Fair pricing for the facilities offered"
		default:
			score += s.rules.PricePoints.Low
			reasoning["value"] = "Premium pricing above this budget tier"
		}

		// Rating vs tier floor
		switch {
		case h.Rating >= tier.MinRating+0.5:
			score += s.rules.RatingPoints.High
			reasoning["rating"] = "Excellent guest reviews and high ratings"
		case h.Rating >= tier.MinRating:
			score += s.rules.RatingPoints.Medium
			reasoning["rating"] = "Very good ratings from previous guests"
		default:
			score += s.rules.RatingPoints.Low
			reasoning["rating"] = "Good value option with decent ratings"
		}

		// Amenity-to-interest match, capped
		matchPoints, matchedLabels := s.amenityMatches(h.Amenities, prefs.Interests)
		score += matchPoints
		if len(matchedLabels) > 0 {
			reasoning["amenities"] = "Matches your interests: " + strings.Join(matchedLabels, ", ")
		} else {
			reasoning["amenities"] = "Good basic amenities provided"
		}

		// Location keyword bucket
		loc := strings.ToLower(h.Location)
		switch {
		case strings.Contains(loc, "central") || strings.Contains(loc, "downtown") || strings.Contains(loc, "city center"):
			score += s.rules.LocationPoints.High
			reasoning["location"] = "Centrally located with easy access to attractions"
		case strings.Contains(loc, "station") || strings.Contains(loc, "airport") || strings.Contains(loc, "metro"):
			score += s.rules.LocationPoints.Medium
			reasoning["location"] = "Well connected to transit"
		default:
			score += s.rules.LocationPoints.Low
			reasoning["location"] = "Quieter area away from the center"
		}

		// Review-volume bonus
		switch {
		case h.ReviewsCount >= s.rules.ManyReviews:
			score += s.rules.ManyReviewsBonus
			reasoning["reviews"] = "Widely reviewed by travelers"
		case h.ReviewsCount >= s.rules.SomeReviews:
			score += s.rules.SomeReviewsBonus
			reasoning["reviews"] = "Solid number of guest reviews"
		}

		h.Score = score
		h.Reasoning = reasoning
		h.Recommended = score >= s.rules.RecommendThreshold
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if s.rules.TopN > 0 && len(scored) > s.rules.TopN {
		scored = scored[:s.rules.TopN]
	}
	return scored
}

func (s *HotelScorer) amenityMatches(amenities []models.Amenity, interests []string) (int, []string) {
	points := 0
	var matched []string

	for _, interest := range interests {
		keywords, ok := interestAmenityKeywords[strings.ToLower(strings.TrimSpace(interest))]
		if !ok {
			continue
		}
		for _, a := range amenities {
			label := strings.ToLower(a.Label + " " + a.Icon)
			hit := false
			for _, kw := range keywords {
				if strings.Contains(label, kw) {
					hit = true
					break
				}
			}
			if hit {
				points += s.rules.AmenityMatchPoints
				matched = append(matched, a.Label)
				break
			}
		}
	}

	if points > s.rules.AmenityMatchCap {
		points = s.rules.AmenityMatchCap
	}
	return points, matched
}
