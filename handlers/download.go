package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"raahi/models"
	"raahi/services"
)

// ExportPDF handles POST /api/plan/:id/pdf: it renders the stored plan to a
// PDF and attaches it to the plan row for later download.
func (h *Handler) ExportPDF(c *gin.Context) {
	id := c.Param("id")
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Plan storage is not configured"})
		return
	}

	record, err := h.store.GetPlan(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}

	plan, err := record.Plan()
	if err != nil {
		h.log.Errorf("❌ Corrupt stored plan %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode stored plan"})
		return
	}

	var prefs models.TripPreferences
	if err := prefsFromRecord(record.RequestJSON, &prefs); err != nil {
		h.log.Errorf("❌ Corrupt stored request %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode stored request"})
		return
	}

	pdfBytes, err := services.RenderPlanPDF(prefs, plan)
	if err != nil {
		h.log.Errorf("❌ PDF generation failed for %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	if err := h.store.UpdatePlanPDF(id, pdfBytes); err != nil {
		h.log.Errorf("❌ Failed to store PDF for %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save generated PDF"})
		return
	}

	h.log.Infof("✅ PDF generated for plan %s (%d bytes)", id, len(pdfBytes))
	c.JSON(http.StatusOK, gin.H{
		"session_id": id,
		"pdf_url":    "/api/download/" + id,
		"message":    "PDF generated successfully",
	})
}

// Download handles GET /api/download/:id: it streams a previously rendered
// PDF.
func (h *Handler) Download(c *gin.Context) {
	id := c.Param("id")
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Plan storage is not configured"})
		return
	}

	record, err := h.store.GetPlan(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	if len(record.PDFData) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "PDF has not been generated for this plan"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=raahi-trip-plan.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", record.PDFData)
}

// Health handles GET /api/health.
func (h *Handler) Health(c *gin.Context) {
	status := gin.H{
		"status":  "ok",
		"service": "Raahi API",
	}

	if h.cache != nil {
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			status["cache"] = "disabled"
		} else {
			status["cache"] = "ok"
		}
	}
	if h.store == nil {
		status["database"] = "not configured"
	} else {
		status["database"] = "ok"
	}

	c.JSON(http.StatusOK, status)
}
