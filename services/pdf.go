package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"raahi/models"
)

// ─── PDF Export ───────────────────────────────────────────────────────────────

// RenderPlanPDF renders a complete trip plan to PDF bytes: top flight and
// hotel picks, the day-by-day itinerary and the destination insights.
func RenderPlanPDF(prefs models.TripPreferences, plan *models.TripPlan) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Raahi", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, fmt.Sprintf("%s to %s Travel Plan", prefs.FromLocation, prefs.ToLocation),
		"", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 12, "FD")
	pdf.SetXY(23, y+2)
	disclaimer := "This is NOT a booking confirmation. Prices are estimates and subject to change. Please verify with providers before booking."
	if plan.Source == "estimated" {
		disclaimer = "ESTIMATED PRICES - live search was unavailable for this plan. This is NOT a booking confirmation. Verify all prices before booking."
	}
	pdf.MultiCell(164, 4, disclaimer, "", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	// ── Section Helpers ──────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	row("Route", fmt.Sprintf("%s - %s", prefs.FromLocation, prefs.ToLocation))
	row("Departure", fmtDateReadable(prefs.DepartureDate))
	if prefs.ReturnDate != "" {
		row("Return", fmtDateReadable(prefs.ReturnDate))
	}
	row("Duration", fmt.Sprintf("%d days", plan.Itinerary.TotalDays))
	row("Generated", time.Now().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Top Flight ────────────────────────────────────────────
	if len(plan.Flights) > 0 {
		f := plan.Flights[0]
		sectionHeader("Recommended Flight")
		row("Airline", f.Airline)
		row("Route", fmt.Sprintf("%s %s - %s %s", f.DepartureAirport, f.DepartureTime, f.ArrivalAirport, f.ArrivalTime))
		row("Duration", f.Duration)
		stops := "Direct"
		if f.Stops > 0 {
			stops = fmt.Sprintf("%d stop(s)", f.Stops)
		}
		row("Stops", stops)
		row("Price", fmt.Sprintf("Rs %.0f per person", f.Price))
		row("Match Score", fmt.Sprintf("%d / 100", f.Score))
		pdf.Ln(4)
	}

	// ── Top Hotel ─────────────────────────────────────────────
	if len(plan.Hotels) > 0 {
		h := plan.Hotels[0]
		sectionHeader("Recommended Hotel")
		row("Hotel", h.Name)
		row("Location", h.Location)
		row("Rating", fmt.Sprintf("%.1f / 5.0", h.Rating))
		row("Price", fmt.Sprintf("Rs %.0f/night", h.PricePerNight))
		row("Match Score", fmt.Sprintf("%d / 100", h.Score))
		pdf.Ln(4)
	}

	// ── Itinerary ─────────────────────────────────────────────
	sectionHeader(fmt.Sprintf("Itinerary: %s", plan.Itinerary.Title))
	for _, day := range plan.Itinerary.DailyPlans {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(13, 24, 37)
		pdf.CellFormat(170, 7, fmt.Sprintf("%s (%s)", day.Title, fmtDateReadable(day.Date)),
			"", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(60, 60, 60)
		for _, a := range day.Activities {
			line := fmt.Sprintf("%s  %s (%s)", a.Time, a.Activity, a.Duration)
			if a.Cost > 0 {
				line += fmt.Sprintf(" - Rs %.0f", a.Cost)
			}
			pdf.CellFormat(170, 5, line, "", 1, "L", false, 0, "")
		}
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(170, 5, fmt.Sprintf("Day total: Rs %.0f", day.EstimatedCost), "", 1, "R", false, 0, "")
		pdf.Ln(2)

		if pdf.GetY() > 250 {
			pdf.AddPage()
		}
	}

	// ── Cost Summary ──────────────────────────────────────────
	pdf.SetFillColor(212, 168, 67)
	pdf.SetTextColor(13, 24, 37)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL ESTIMATE", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, fmt.Sprintf("Rs %.0f (%s)", plan.Itinerary.EstimatedCost, plan.Itinerary.Currency),
		"", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	// ── Insights ──────────────────────────────────────────────
	if len(plan.Itinerary.Insights) > 0 {
		sectionHeader("Travel Insights")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(40, 40, 40)
		for _, key := range []string{"best_time_to_visit", "cultural_tips", "cuisine", "transport", "shopping", "safety"} {
			if v, ok := plan.Itinerary.Insights[key]; ok {
				pdf.MultiCell(170, 5, fmt.Sprintf("- %s", v), "", "L", false)
			}
		}
		pdf.Ln(4)
	}

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by Raahi Travel Planner · Not a booking confirmation · Prices subject to change",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func fmtDateReadable(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006 (Mon)")
}
