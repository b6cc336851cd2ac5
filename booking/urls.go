// Package booking builds deep links into airline and hotel booking sites.
// These are pure lookup/template functions: airline-specific patterns first,
// aggregator fallbacks otherwise.
package booking

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"raahi/models"
)

// airlinePatterns maps a lower-cased airline-name fragment to its booking URL
// template. Placeholders: from, to, date.
var airlinePatterns = map[string]string{
	"indigo":    "https://www.goindigo.in/booking/flight-select?from=%s&to=%s&departure=%s",
	"air india": "https://www.airindia.in/booking/flight-search?from=%s&to=%s&departure=%s",
	"spicejet":  "https://www.spicejet.com/flight-booking?from=%s&to=%s&departure=%s",
	"vistara":   "https://www.airvistara.com/booking/flight-search?origin=%s&destination=%s&departure=%s",
	"akasa":     "https://www.akasaair.com/booking?from=%s&to=%s&departure=%s",
	"go first":  "https://www.flygofirst.com/booking?from=%s&to=%s&departure=%s",
}

// FlightURL returns a booking link for the offer. Known carriers get their
// own site; anything else falls back to the offer's own link or Skyscanner.
func FlightURL(f models.FlightOffer, departureDate string) string {
	airline := strings.ToLower(f.Airline)
	for fragment, pattern := range airlinePatterns {
		if strings.Contains(airline, fragment) {
			return fmt.Sprintf(pattern,
				url.QueryEscape(f.DepartureAirport),
				url.QueryEscape(f.ArrivalAirport),
				url.QueryEscape(departureDate))
		}
	}

	if f.BookingURL != "" {
		return f.BookingURL
	}

	if f.DepartureAirport != "" && f.ArrivalAirport != "" {
		return fmt.Sprintf("https://www.skyscanner.co.in/transport/flights/%s/%s/%s/",
			url.PathEscape(strings.ToLower(f.DepartureAirport)),
			url.PathEscape(strings.ToLower(f.ArrivalAirport)),
			url.PathEscape(departureDate))
	}

	return fmt.Sprintf("https://www.makemytrip.com/flight/search?from=%s&to=%s&departure=%s",
		url.QueryEscape(f.DepartureAirport),
		url.QueryEscape(f.ArrivalAirport),
		url.QueryEscape(departureDate))
}

// HotelURL returns a booking.com search link pre-filled with the hotel name,
// location and stay dates. Hotels carrying their own direct link keep it.
func HotelURL(h models.HotelOffer, checkIn, checkOut, location string) string {
	if h.BookingURL != "" && !strings.Contains(h.BookingURL, "booking.com") {
		return h.BookingURL
	}

	in, errIn := time.Parse("2006-01-02", checkIn)
	out, errOut := time.Parse("2006-01-02", checkOut)
	if errIn != nil || errOut != nil {
		in = time.Now()
		out = in.AddDate(0, 0, 2)
	}

	params := url.Values{}
	params.Set("ss", strings.TrimSpace(h.Name+" "+location))
	params.Set("checkin_year", fmt.Sprintf("%d", in.Year()))
	params.Set("checkin_month", fmt.Sprintf("%02d", int(in.Month())))
	params.Set("checkin_monthday", fmt.Sprintf("%02d", in.Day()))
	params.Set("checkout_year", fmt.Sprintf("%d", out.Year()))
	params.Set("checkout_month", fmt.Sprintf("%02d", int(out.Month())))
	params.Set("checkout_monthday", fmt.Sprintf("%02d", out.Day()))
	params.Set("group_adults", "2")
	params.Set("no_rooms", "1")

	return "https://www.booking.com/searchresults.html?" + params.Encode()
}
