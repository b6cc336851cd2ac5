package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"raahi/models"
	"raahi/pricing"
)

// ─── Hotel Listing Scraper ────────────────────────────────────────────────────

// HotelScraper pulls hotel cards off an aggregator search results page. It is
// a best-effort source: any fetch or parse problem is an error the planner
// converts into catalog fallback offers.
type HotelScraper struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

// NewHotelScraper targets an aggregator search endpoint. baseURL is the page
// to query; the destination is appended as the ss parameter.
func NewHotelScraper(baseURL string, log *zap.SugaredLogger) *HotelScraper {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &HotelScraper{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

// SearchHotels fetches and parses the listing page for the destination city.
func (s *HotelScraper) SearchHotels(ctx context.Context, prefs models.TripPreferences) ([]models.HotelOffer, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("scraper not configured")
	}

	target := s.baseURL + "?ss=" + url.QueryEscape(prefs.ToLocation) +
		"&checkin=" + url.QueryEscape(prefs.DepartureDate) +
		"&checkout=" + url.QueryEscape(prefs.ReturnDate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	// Listing pages reject default Go user agents outright.
	req.Header.Set("User-Agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-IN,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hotel page fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hotel page fetch failed: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	hotels := s.parseListing(doc, prefs.ToLocation)
	s.log.Infof("🕸️  Scraped %d hotel cards for %s", len(hotels), prefs.ToLocation)
	return hotels, nil
}

// parseListing walks the property cards. Cards missing a name or a parseable
// price are skipped rather than guessed at.
func (s *HotelScraper) parseListing(doc *goquery.Document, location string) []models.HotelOffer {
	var hotels []models.HotelOffer

	doc.Find("[data-testid=property-card]").Each(func(i int, card *goquery.Selection) {
		name := strings.TrimSpace(card.Find("[data-testid=title]").First().Text())
		if name == "" {
			return
		}

		priceText := card.Find("[data-testid=price-and-discounted-price]").First().Text()
		price, estimated := pricing.Normalize(priceText)
		if price <= 0 {
			return
		}

		rating := 4.0
		if v, _ := pricing.Normalize(card.Find("[data-testid=review-score] .score").First().Text()); v > 0 && v <= 5 {
			rating = v
		}

		addr := strings.TrimSpace(card.Find("[data-testid=address]").First().Text())
		if addr == "" {
			addr = location
		}

		hotels = append(hotels, models.HotelOffer{
			Name:           name,
			Location:       addr,
			Rating:         rating,
			PricePerNight:  price,
			Currency:       models.DefaultCurrency,
			PriceEstimated: estimated,
		})
	})

	return hotels
}
