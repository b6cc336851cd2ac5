// Package planner orchestrates one trip-planning request: it fans out to the
// live search collaborators, substitutes catalog fallbacks when they fail,
// scores the candidates and assembles the final plan. A planning request only
// fails on invalid input; every downstream failure degrades to estimated data.
package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"raahi/booking"
	"raahi/catalog"
	"raahi/itinerary"
	"raahi/models"
	"raahi/scoring"
)

// ErrInvalidPreferences wraps every input validation failure. It is the only
// error PlanTrip returns.
var ErrInvalidPreferences = errors.New("invalid trip preferences")

// Plan sources reported in the response.
const (
	SourceLive      = "live"
	SourceEstimated = "estimated"
)

// FlightSearcher is a live flight data collaborator.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, prefs models.TripPreferences) ([]models.FlightOffer, error)
}

// HotelSearcher is a live hotel data collaborator.
type HotelSearcher interface {
	SearchHotels(ctx context.Context, prefs models.TripPreferences) ([]models.HotelOffer, error)
}

// Config bounds the collaborator calls. Zero values pick sane defaults.
type Config struct {
	SearchTimeout    time.Duration `mapstructure:"search_timeout"`
	ItineraryTimeout time.Duration `mapstructure:"itinerary_timeout"`
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.SearchTimeout <= 0 {
		out.SearchTimeout = 10 * time.Second
	}
	if out.ItineraryTimeout <= 0 {
		out.ItineraryTimeout = 25 * time.Second
	}
	return out
}

// Planner wires the search collaborators, the fallback catalog, the scorers
// and the itinerary synthesizer into a single entry point.
type Planner struct {
	cfg     Config
	catalog *catalog.Catalog
	flights FlightSearcher
	hotels  HotelSearcher
	synth   *itinerary.Synthesizer
	fs      *scoring.FlightScorer
	hs      *scoring.HotelScorer
	log     *zap.SugaredLogger
}

func New(
	cfg Config,
	cat *catalog.Catalog,
	flights FlightSearcher,
	hotels HotelSearcher,
	synth *itinerary.Synthesizer,
	fs *scoring.FlightScorer,
	hs *scoring.HotelScorer,
	log *zap.SugaredLogger,
) *Planner {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Planner{
		cfg:     cfg.withDefaults(),
		catalog: cat,
		flights: flights,
		hotels:  hotels,
		synth:   synth,
		fs:      fs,
		hs:      hs,
		log:     log,
	}
}

// PlanTrip runs the full pipeline for one request. Flight and hotel searches
// run concurrently under their own deadlines; a search that errors, times out
// or comes back empty is replaced by synthesized catalog offers.
func (p *Planner) PlanTrip(ctx context.Context, prefs models.TripPreferences) (*models.TripPlan, error) {
	if err := prefs.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreferences, err)
	}

	var (
		wg          sync.WaitGroup
		flights     []models.FlightOffer
		hotels      []models.HotelOffer
		flightsLive bool
		hotelsLive  bool
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		flights, flightsLive = p.collectFlights(ctx, prefs)
	}()
	go func() {
		defer wg.Done()
		hotels, hotelsLive = p.collectHotels(ctx, prefs)
	}()
	wg.Wait()

	flights = p.fs.Score(flights, prefs)
	hotels = p.hs.Score(hotels, prefs)

	itinCtx, cancel := context.WithTimeout(ctx, p.cfg.ItineraryTimeout)
	defer cancel()
	itin := p.synth.Build(itinCtx, prefs, len(flights), len(hotels))

	plan := &models.TripPlan{
		SessionID: uuid.NewString(),
		Flights:   flights,
		Hotels:    hotels,
		Itinerary: itin,
		Source:    SourceEstimated,
	}
	if flightsLive || hotelsLive {
		plan.Source = SourceLive
	}
	p.attachBookingURLs(plan, prefs)

	p.log.Infof("✅ Plan %s ready: %d flights, %d hotels, %d-day itinerary (source=%s)",
		plan.SessionID, len(plan.Flights), len(plan.Hotels), itin.TotalDays, plan.Source)
	return plan, nil
}

func (p *Planner) collectFlights(ctx context.Context, prefs models.TripPreferences) ([]models.FlightOffer, bool) {
	if p.flights != nil {
		callCtx, cancel := context.WithTimeout(ctx, p.cfg.SearchTimeout)
		defer cancel()

		offers, err := p.flights.SearchFlights(callCtx, prefs)
		if err != nil {
			p.log.Warnf("⚠️  Flight search failed: %v — synthesizing offers", err)
		} else if len(offers) == 0 {
			p.log.Warnf("⚠️  Flight search returned nothing for %s → %s — synthesizing offers",
				prefs.FromLocation, prefs.ToLocation)
		} else {
			return offers, true
		}
	}
	return p.catalog.SynthesizeFlights(prefs), false
}

func (p *Planner) collectHotels(ctx context.Context, prefs models.TripPreferences) ([]models.HotelOffer, bool) {
	if p.hotels != nil {
		callCtx, cancel := context.WithTimeout(ctx, p.cfg.SearchTimeout)
		defer cancel()

		offers, err := p.hotels.SearchHotels(callCtx, prefs)
		if err != nil {
			p.log.Warnf("⚠️  Hotel search failed: %v — synthesizing offers", err)
		} else if len(offers) == 0 {
			p.log.Warnf("⚠️  Hotel search returned nothing for %s — synthesizing offers", prefs.ToLocation)
		} else {
			return offers, true
		}
	}
	return p.catalog.SynthesizeHotels(prefs), false
}

// attachBookingURLs fills in deep links for every offer in the plan.
func (p *Planner) attachBookingURLs(plan *models.TripPlan, prefs models.TripPreferences) {
	for i := range plan.Flights {
		plan.Flights[i].BookingURL = booking.FlightURL(plan.Flights[i], prefs.DepartureDate)
	}

	checkOut := prefs.ReturnDate
	if checkOut == "" {
		if dep, err := time.Parse("2006-01-02", prefs.DepartureDate); err == nil {
			checkOut = dep.AddDate(0, 0, prefs.Nights()).Format("2006-01-02")
		}
	}
	for i := range plan.Hotels {
		plan.Hotels[i].BookingURL = booking.HotelURL(plan.Hotels[i], prefs.DepartureDate, checkOut, prefs.ToLocation)
	}
}
