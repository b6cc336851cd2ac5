// Package handlers exposes the HTTP surface: plan creation, plan retrieval,
// PDF export and health.
package handlers

import (
	"encoding/json"

	"go.uber.org/zap"

	"raahi/cache"
	"raahi/database"
	"raahi/models"
	"raahi/planner"
)

type Handler struct {
	planner *planner.Planner
	store   *database.Store
	cache   *cache.PlanCache
	log     *zap.SugaredLogger
}

func New(p *planner.Planner, store *database.Store, planCache *cache.PlanCache, log *zap.SugaredLogger) *Handler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Handler{planner: p, store: store, cache: planCache, log: log}
}

func prefsFromRecord(raw string, prefs *models.TripPreferences) error {
	return json.Unmarshal([]byte(raw), prefs)
}
