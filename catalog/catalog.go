// Package catalog holds the static route/city knowledge used whenever live
// search data is absent: base fares per route, per-city hotel baselines,
// activity lists and airport codes. Synthesized offers are always tagged as
// fallback-sourced so they stay distinguishable from live data.
package catalog

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"raahi/models"
)

type Catalog struct {
	tables Tables
	rng    *rand.Rand
	log    *zap.SugaredLogger
}

type Option func(*Catalog)

// WithRand injects a seeded source so tests get reproducible offers.
func WithRand(rng *rand.Rand) Option {
	return func(c *Catalog) { c.rng = rng }
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Catalog) { c.log = log }
}

func New(tables Tables, opts ...Option) *Catalog {
	c := &Catalog{
		tables: tables,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		log:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func routeKey(a, b string) string {
	return strings.ToLower(strings.TrimSpace(a)) + "|" + strings.ToLower(strings.TrimSpace(b))
}

// RouteBasePrice looks up the base fare for a city pair, trying both
// orderings before falling back to the default.
func (c *Catalog) RouteBasePrice(origin, destination string) float64 {
	if p, ok := c.tables.RoutePrices[routeKey(origin, destination)]; ok {
		return p
	}
	if p, ok := c.tables.RoutePrices[routeKey(destination, origin)]; ok {
		return p
	}
	return c.tables.DefaultFlightPrice
}

// RouteMinutes returns the nonstop flight time for a city pair.
func (c *Catalog) RouteMinutes(origin, destination string) int {
	if m, ok := c.tables.RouteMinutes[routeKey(origin, destination)]; ok {
		return m
	}
	if m, ok := c.tables.RouteMinutes[routeKey(destination, origin)]; ok {
		return m
	}
	return c.tables.DefaultRouteMinutes
}

// HotelBasePrice returns the per-night baseline for a destination city.
func (c *Catalog) HotelBasePrice(city string) float64 {
	if p, ok := c.tables.HotelBasePrices[strings.ToLower(strings.TrimSpace(city))]; ok {
		return p
	}
	return c.tables.DefaultHotelPrice
}

// AirportCode maps a city name to its IATA code. Unknown cities get the
// configured default code; that substitution is logged because it can point
// searches at the wrong airport.
func (c *Catalog) AirportCode(city string) string {
	trimmed := strings.TrimSpace(city)
	if code, ok := c.tables.AirportCodes[strings.ToLower(trimmed)]; ok {
		return code
	}
	if len(trimmed) == 3 && trimmed == strings.ToUpper(trimmed) {
		// Already an IATA code.
		return trimmed
	}
	c.log.Warnf("⚠️  No airport code for %q — defaulting to %s", city, c.tables.DefaultAirportCode)
	return c.tables.DefaultAirportCode
}

// Activities returns the category→activity lists for a destination, or the
// generic set for unknown cities.
func (c *Catalog) Activities(city string) map[string][]string {
	for name, acts := range c.tables.Activities {
		if strings.EqualFold(name, strings.TrimSpace(city)) {
			return acts
		}
	}
	return c.tables.DefaultActivities
}

func (c *Catalog) classMultiplier(travelClass string) float64 {
	if m, ok := c.tables.ClassMultipliers[strings.ToLower(travelClass)]; ok {
		return m
	}
	return 1.0
}

// SynthesizeFlights produces one offer per configured airline for the
// requested route. Prices are derived from the route table with a small
// jitter from the injected random source.
func (c *Catalog) SynthesizeFlights(prefs models.TripPreferences) []models.FlightOffer {
	base := c.RouteBasePrice(prefs.FromLocation, prefs.ToLocation) * c.classMultiplier(prefs.TravelClass)
	nonstop := c.RouteMinutes(prefs.FromLocation, prefs.ToLocation)
	originCode := c.AirportCode(prefs.FromLocation)
	destCode := c.AirportCode(prefs.ToLocation)

	flights := make([]models.FlightOffer, 0, len(c.tables.Airlines))
	for i, opt := range c.tables.Airlines {
		jitter := 0.95 + c.rng.Float64()*0.15
		price := float64(int(base*opt.PriceMod*jitter/5) * 5)

		minutes := nonstop
		if opt.Stops > 0 {
			minutes += 90
		}

		depHour := (6 + i*3) % 24
		depMinute := []int{0, 15, 30, 45}[c.rng.Intn(4)]
		arrTotal := depHour*60 + depMinute + minutes

		flights = append(flights, models.FlightOffer{
			Airline:          opt.Name,
			FlightNumber:     fmt.Sprintf("%s%d", opt.Code, 100+c.rng.Intn(900)),
			DepartureAirport: originCode,
			ArrivalAirport:   destCode,
			DepartureTime:    fmt.Sprintf("%02d:%02d", depHour, depMinute),
			ArrivalTime:      fmt.Sprintf("%02d:%02d", (arrTotal/60)%24, arrTotal%60),
			DepartureDate:    prefs.DepartureDate,
			ReturnDate:       prefs.ReturnDate,
			Duration:         formatMinutes(minutes),
			Price:            price,
			Currency:         models.DefaultCurrency,
			Stops:            opt.Stops,
			FlightClass:      prefs.TravelClass,
			PriceEstimated:   true,
			Fallback:         true,
		})
	}
	return flights
}

// SynthesizeHotels produces the configured number of fallback hotels for the
// destination city, cycling through the accommodation archetypes.
func (c *Catalog) SynthesizeHotels(prefs models.TripPreferences) []models.HotelOffer {
	city := strings.TrimSpace(prefs.ToLocation)
	base := c.HotelBasePrice(city)

	count := c.tables.FallbackHotelCount
	if count <= 0 || count > len(c.tables.HotelTypes) {
		count = len(c.tables.HotelTypes)
	}

	hotels := make([]models.HotelOffer, 0, count)
	for i := 0; i < count; i++ {
		ht := c.tables.HotelTypes[i]
		jitter := 0.9 + c.rng.Float64()*0.2
		price := float64(int(base * ht.PriceMod * jitter))
		name := fmt.Sprintf("%s %s", city, ht.Suffix)

		hotels = append(hotels, models.HotelOffer{
			Name:          name,
			Location:      city + " City Center",
			Rating:        ht.Rating,
			ReviewsCount:  50 + c.rng.Intn(1950),
			PricePerNight: price,
			Currency:      models.DefaultCurrency,
			Amenities:     c.pickAmenities(i),
			Description: fmt.Sprintf(
				"Experience comfort at %s. Located in the heart of %s with modern amenities and excellent service.",
				name, city),
			PriceEstimated: true,
			Fallback:       true,
		})
	}
	return hotels
}

// pickAmenities selects a deterministic window of the amenity pool so two
// synthesized hotels never look identical.
func (c *Catalog) pickAmenities(index int) []models.Amenity {
	n := 4 + index%4
	start := (index * 3) % len(amenityPool)

	amenities := make([]models.Amenity, 0, n)
	for i := 0; i < n; i++ {
		a := amenityPool[(start+i)%len(amenityPool)]
		amenities = append(amenities, models.Amenity{Icon: a.Icon, Label: a.Label})
	}
	return amenities
}

func formatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}
