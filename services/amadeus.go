package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"raahi/catalog"
	"raahi/config"
	"raahi/models"
)

// ─── Amadeus Client ───────────────────────────────────────────────────────────

// AmadeusClient is the live flight and hotel search source. When credentials
// are missing every search errors and the planner falls back to the catalog.
type AmadeusClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	catalog      *catalog.Catalog
	log          *zap.SugaredLogger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time

	httpClient *http.Client
}

func NewAmadeusClient(cfg config.AmadeusConfig, cat *catalog.Catalog, log *zap.SugaredLogger) *AmadeusClient {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://test.api.amadeus.com"
	}

	c := &AmadeusClient{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		baseURL:      baseURL,
		catalog:      cat,
		log:          log,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}

	if c.clientID == "" || c.clientSecret == "" {
		log.Warn("⚠️  Amadeus credentials not set — flight/hotel search will use fallback data")
	}
	return c
}

// Configured reports whether live searches can be attempted at all.
func (c *AmadeusClient) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// ─── OAuth2 Token ─────────────────────────────────────────────────────────────

func (c *AmadeusClient) refreshToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse token response: %w", err)
	}

	c.mu.Lock()
	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	c.mu.Unlock()

	return nil
}

func (c *AmadeusClient) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	expired := time.Now().After(c.tokenExpiry)
	token := c.accessToken
	c.mu.Unlock()

	if expired || token == "" {
		if err := c.refreshToken(ctx); err != nil {
			return "", err
		}
		c.mu.Lock()
		token = c.accessToken
		c.mu.Unlock()
	}
	return token, nil
}

func (c *AmadeusClient) doRequest(ctx context.Context, path string) ([]byte, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("amadeus error (%d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// ─── Flight Search ────────────────────────────────────────────────────────────

// SearchFlights queries the Amadeus Flight Offers Search API for the route.
// City names are resolved to IATA codes through the catalog.
func (c *AmadeusClient) SearchFlights(ctx context.Context, prefs models.TripPreferences) ([]models.FlightOffer, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("amadeus not configured")
	}

	origin := c.catalog.AirportCode(prefs.FromLocation)
	destination := c.catalog.AirportCode(prefs.ToLocation)

	path := fmt.Sprintf(
		"/v2/shopping/flight-offers?originLocationCode=%s&destinationLocationCode=%s"+
			"&departureDate=%s&adults=%d&max=10&currencyCode=%s",
		url.QueryEscape(origin),
		url.QueryEscape(destination),
		url.QueryEscape(prefs.DepartureDate),
		travelerCount(prefs.Travelers),
		models.DefaultCurrency,
	)
	if prefs.ReturnDate != "" {
		path += "&returnDate=" + url.QueryEscape(prefs.ReturnDate)
	}

	body, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("flight search failed: %w", err)
	}

	flights, err := parseFlightOffers(body, origin, destination, prefs)
	if err != nil {
		return nil, err
	}
	c.log.Infof("✈️  Amadeus returned %d flight offers for %s → %s", len(flights), origin, destination)
	return flights, nil
}

type amadeusItinerary struct {
	Duration string `json:"duration"`
	Segments []struct {
		Departure struct {
			IataCode string `json:"iataCode"`
			At       string `json:"at"`
		} `json:"departure"`
		Arrival struct {
			IataCode string `json:"iataCode"`
			At       string `json:"at"`
		} `json:"arrival"`
		CarrierCode string `json:"carrierCode"`
		Number      string `json:"number"`
	} `json:"segments"`
}

type amadeusFlightOffersResponse struct {
	Data []struct {
		Price struct {
			GrandTotal string `json:"grandTotal"`
			Currency   string `json:"currency"`
		} `json:"price"`
		Itineraries            []amadeusItinerary `json:"itineraries"`
		ValidatingAirlineCodes []string           `json:"validatingAirlineCodes"`
	} `json:"data"`
}

func parseFlightOffers(data []byte, origin, destination string, prefs models.TripPreferences) ([]models.FlightOffer, error) {
	var resp amadeusFlightOffersResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse flight offers: %w", err)
	}

	flights := make([]models.FlightOffer, 0, len(resp.Data))
	for _, offer := range resp.Data {
		if len(offer.Itineraries) < 1 {
			continue
		}

		price := parsePrice(offer.Price.GrandTotal)
		if price <= 0 {
			continue
		}

		outbound := offer.Itineraries[0]
		airlineCode := ""
		if len(outbound.Segments) > 0 {
			airlineCode = outbound.Segments[0].CarrierCode
		} else if len(offer.ValidatingAirlineCodes) > 0 {
			airlineCode = offer.ValidatingAirlineCodes[0]
		}

		f := models.FlightOffer{
			Airline:          airlineName(airlineCode),
			DepartureAirport: origin,
			ArrivalAirport:   destination,
			DepartureDate:    prefs.DepartureDate,
			ReturnDate:       prefs.ReturnDate,
			Duration:         parseISODuration(outbound.Duration),
			Price:            price,
			Currency:         offer.Price.Currency,
			Stops:            maxInt(0, len(outbound.Segments)-1),
			FlightClass:      prefs.TravelClass,
		}
		if len(outbound.Segments) > 0 {
			f.DepartureTime = clockTime(outbound.Segments[0].Departure.At)
			f.ArrivalTime = clockTime(outbound.Segments[len(outbound.Segments)-1].Arrival.At)
			f.FlightNumber = airlineCode + outbound.Segments[0].Number
		}

		flights = append(flights, f)
	}
	return flights, nil
}

// ─── Hotel Search ─────────────────────────────────────────────────────────────

// SearchHotels runs the two-step Amadeus hotel flow: list hotel IDs for the
// city, then fetch available offers for those IDs.
func (c *AmadeusClient) SearchHotels(ctx context.Context, prefs models.TripPreferences) ([]models.HotelOffer, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("amadeus not configured")
	}

	cityCode := airportToCity(c.catalog.AirportCode(prefs.ToLocation))

	hotelIDs, err := c.getHotelIDsByCity(ctx, cityCode)
	if err != nil {
		return nil, fmt.Errorf("hotel list failed: %w", err)
	}
	if len(hotelIDs) == 0 {
		return nil, fmt.Errorf("no hotels found for city %s", cityCode)
	}
	// First 20 IDs only, to stay under the offers-endpoint rate limits.
	if len(hotelIDs) > 20 {
		hotelIDs = hotelIDs[:20]
	}

	checkOut := prefs.ReturnDate
	if checkOut == "" {
		if dep, derr := time.Parse("2006-01-02", prefs.DepartureDate); derr == nil {
			checkOut = dep.AddDate(0, 0, prefs.Nights()).Format("2006-01-02")
		}
	}

	hotels, err := c.getHotelOffers(ctx, hotelIDs, prefs.DepartureDate, checkOut, prefs.ToLocation)
	if err != nil {
		return nil, err
	}
	c.log.Infof("🏨 Amadeus returned %d hotel offers for %s", len(hotels), cityCode)
	return hotels, nil
}

type amadeusHotelListResponse struct {
	Data []struct {
		HotelID string `json:"hotelId"`
		Name    string `json:"name"`
	} `json:"data"`
}

func (c *AmadeusClient) getHotelIDsByCity(ctx context.Context, cityCode string) ([]string, error) {
	path := fmt.Sprintf(
		"/v1/reference-data/locations/hotels/by-city?cityCode=%s&radius=5&radiusUnit=KM&hotelSource=ALL",
		url.QueryEscape(cityCode))

	body, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, err
	}

	var resp amadeusHotelListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse hotel list: %w", err)
	}

	ids := make([]string, 0, len(resp.Data))
	for _, h := range resp.Data {
		ids = append(ids, h.HotelID)
	}
	return ids, nil
}

type amadeusHotelOffersResponse struct {
	Data []struct {
		Hotel struct {
			HotelID  string `json:"hotelId"`
			Name     string `json:"name"`
			CityCode string `json:"cityCode"`
			Address  struct {
				CityName string `json:"cityName"`
			} `json:"address"`
			Rating string `json:"rating"`
		} `json:"hotel"`
		Available bool `json:"available"`
		Offers    []struct {
			Price struct {
				Total    string `json:"total"`
				Currency string `json:"currency"`
			} `json:"price"`
		} `json:"offers"`
	} `json:"data"`
}

func (c *AmadeusClient) getHotelOffers(ctx context.Context, hotelIDs []string, checkIn, checkOut, fallbackLocation string) ([]models.HotelOffer, error) {
	path := fmt.Sprintf(
		"/v3/shopping/hotel-offers?hotelIds=%s&checkInDate=%s&checkOutDate=%s&adults=2&roomQuantity=1&currency=%s&bestRateOnly=true",
		url.QueryEscape(strings.Join(hotelIDs, ",")),
		url.QueryEscape(checkIn),
		url.QueryEscape(checkOut),
		models.DefaultCurrency,
	)

	body, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("hotel offers failed: %w", err)
	}

	var resp amadeusHotelOffersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse hotel offers: %w", err)
	}

	hotels := make([]models.HotelOffer, 0, len(resp.Data))
	for _, item := range resp.Data {
		if !item.Available || len(item.Offers) == 0 {
			continue
		}

		price := parsePrice(item.Offers[0].Price.Total)
		if price <= 0 {
			continue
		}

		location := item.Hotel.Address.CityName
		if location == "" {
			location = fallbackLocation
		}

		hotels = append(hotels, models.HotelOffer{
			Name:          item.Hotel.Name,
			Location:      location,
			Rating:        parseRating(item.Hotel.Rating),
			PricePerNight: price,
			Currency:      item.Offers[0].Price.Currency,
		})
	}
	return hotels, nil
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// parseISODuration converts ISO 8601 duration (PT5H30M) to human readable (5h 30m).
func parseISODuration(iso string) string {
	if iso == "" {
		return ""
	}
	iso = strings.TrimPrefix(iso, "PT")
	result := ""
	hIdx := strings.Index(iso, "H")
	mIdx := strings.Index(iso, "M")
	if hIdx >= 0 {
		result += iso[:hIdx] + "h"
		iso = iso[hIdx+1:]
		mIdx = strings.Index(iso, "M")
	}
	if mIdx >= 0 && mIdx < len(iso) {
		if result != "" {
			result += " "
		}
		result += iso[:mIdx] + "m"
	}
	return result
}

// clockTime reduces an RFC3339-ish timestamp like 2024-02-10T08:35:00 to HH:MM.
func clockTime(at string) string {
	if idx := strings.Index(at, "T"); idx >= 0 && len(at) >= idx+6 {
		return at[idx+1 : idx+6]
	}
	return at
}

func parsePrice(s string) float64 {
	var price float64
	fmt.Sscanf(s, "%f", &price)
	return price
}

func parseRating(s string) float64 {
	if s == "" {
		return 4.0
	}
	var r float64
	fmt.Sscanf(s, "%f", &r)
	if r <= 0 {
		return 4.0
	}
	// Amadeus returns star ratings 1-5
	if r > 5 {
		r = 5
	}
	return r
}

func travelerCount(travelers string) int {
	var n int
	fmt.Sscanf(travelers, "%d", &n)
	if n <= 0 {
		return 1
	}
	return n
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// airportToCity maps airport IATA codes to the city codes the hotel search
// endpoint expects.
func airportToCity(airport string) string {
	mapping := map[string]string{
		"DEL": "DEL",
		"BOM": "BOM",
		"MAA": "MAA",
		"CCU": "CCU",
		"BLR": "BLR",
		"HYD": "HYD",
		"GOI": "GOI",
		"LHR": "LON", "LGW": "LON", "STN": "LON",
		"CDG": "PAR", "ORY": "PAR",
		"JFK": "NYC", "LGA": "NYC", "EWR": "NYC",
		"NRT": "TYO", "HND": "TYO",
		"FCO": "ROM", "CIA": "ROM",
	}
	if city, ok := mapping[airport]; ok {
		return city
	}
	return airport
}

// airlineName returns the full airline name for an IATA carrier code.
func airlineName(code string) string {
	names := map[string]string{
		"6E": "IndiGo",
		"AI": "Air India",
		"UK": "Vistara",
		"SG": "SpiceJet",
		"QP": "Akasa Air",
		"IX": "Air India Express",
		"G8": "Go First",
		"EK": "Emirates",
		"QR": "Qatar Airways",
		"EY": "Etihad Airways",
		"SQ": "Singapore Airlines",
		"TG": "Thai Airways",
		"BA": "British Airways",
		"LH": "Lufthansa",
		"AF": "Air France",
	}
	if name, ok := names[code]; ok {
		return name
	}
	if code != "" {
		return code + " Airlines"
	}
	return "Unknown Airline"
}
