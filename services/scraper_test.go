package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raahi/models"
)

const listingFixture = `<html><body>
<div data-testid="property-card">
  <div data-testid="title">Goa Beach Resort</div>
  <div data-testid="address">Calangute, Goa</div>
  <div data-testid="review-score"><div class="score">4.5</div></div>
  <span data-testid="price-and-discounted-price">₹ 5,400</span>
</div>
<div data-testid="property-card">
  <div data-testid="title">Budget Stay</div>
  <span data-testid="price-and-discounted-price">₹ 1,800</span>
</div>
<div data-testid="property-card">
  <div data-testid="title">No Price Hotel</div>
</div>
</body></html>`

func scrapePrefs() models.TripPreferences {
	return models.TripPreferences{
		FromLocation:  "Delhi",
		ToLocation:    "Goa",
		DepartureDate: "2024-02-10",
		ReturnDate:    "2024-02-14",
	}
}

func TestHotelScraperParsesListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Goa", r.URL.Query().Get("ss"))
		w.Write([]byte(listingFixture))
	}))
	defer srv.Close()

	s := NewHotelScraper(srv.URL, nil)
	hotels, err := s.SearchHotels(context.Background(), scrapePrefs())
	require.NoError(t, err)
	require.Len(t, hotels, 2) // the card without a price is skipped

	assert.Equal(t, "Goa Beach Resort", hotels[0].Name)
	assert.Equal(t, "Calangute, Goa", hotels[0].Location)
	assert.Equal(t, 5400.0, hotels[0].PricePerNight)
	assert.Equal(t, 4.5, hotels[0].Rating)

	assert.Equal(t, "Budget Stay", hotels[1].Name)
	assert.Equal(t, "Goa", hotels[1].Location) // address missing, city used
	assert.Equal(t, 4.0, hotels[1].Rating)     // score missing, default used
}

func TestHotelScraperErrorsOnBlockedPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewHotelScraper(srv.URL, nil)
	_, err := s.SearchHotels(context.Background(), scrapePrefs())
	assert.Error(t, err)
}

func TestHotelScraperUnconfigured(t *testing.T) {
	s := NewHotelScraper("", nil)
	_, err := s.SearchHotels(context.Background(), scrapePrefs())
	assert.Error(t, err)
}
