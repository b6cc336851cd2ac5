package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"raahi/cache"
	"raahi/models"
	"raahi/planner"
)

// CreatePlan handles POST /api/plan: it runs the full planning pipeline for
// the posted preferences. Identical requests within the cache TTL get the
// cached plan back.
func (h *Handler) CreatePlan(c *gin.Context) {
	var prefs models.TripPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	key := cache.Key(prefs)
	if cached, ok := h.cache.Get(c.Request.Context(), key); ok {
		h.log.Infof("📦 Cache hit for %s → %s", prefs.FromLocation, prefs.ToLocation)
		c.JSON(http.StatusOK, cached)
		return
	}

	plan, err := h.planner.PlanTrip(c.Request.Context(), prefs)
	if err != nil {
		if errors.Is(err, planner.ErrInvalidPreferences) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorf("❌ Planning failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to plan trip"})
		return
	}

	// Persistence is best effort; the plan is already assembled.
	if h.store != nil {
		if err := h.store.SavePlan(prefs, plan); err != nil {
			h.log.Warnf("⚠️  Failed to persist plan %s: %v", plan.SessionID, err)
		}
	}
	h.cache.Set(c.Request.Context(), key, plan)

	c.JSON(http.StatusOK, plan)
}

// GetPlan handles GET /api/plan/:id: it returns a previously stored plan.
func (h *Handler) GetPlan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session ID"})
		return
	}
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

	c.JSON(http.StatusOK, plan)
}

// RecentPlans handles GET /api/plans: a short listing of recent sessions.
func (h *Handler) RecentPlans(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Plan storage is not configured"})
		return
	}

	records, err := h.store.RecentPlans(20)
	if err != nil {
		h.log.Errorf("❌ Failed to list plans: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list plans"})
		return
	}

	type summary struct {
		SessionID string `json:"session_id"`
		Source    string `json:"source"`
		CreatedAt string `json:"created_at"`
	}
	out := make([]summary, 0, len(records))
	for _, r := range records {
		out = append(out, summary{
			SessionID: r.SessionID,
			Source:    r.Source,
			CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"plans": out})
}
