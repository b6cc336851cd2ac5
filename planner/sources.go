package planner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"raahi/models"
)

// hotelChain tries each source in order and returns the first non-empty
// result. All sources failing is one error for the planner to fall back on.
type hotelChain struct {
	sources []HotelSearcher
	log     *zap.SugaredLogger
}

// ChainHotelSearchers composes hotel sources by priority. Nil sources are
// skipped; with no usable source the chain itself is nil.
func ChainHotelSearchers(log *zap.SugaredLogger, sources ...HotelSearcher) HotelSearcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	var usable []HotelSearcher
	for _, s := range sources {
		if s != nil {
			usable = append(usable, s)
		}
	}
	switch len(usable) {
	case 0:
		return nil
	case 1:
		return usable[0]
	}
	return &hotelChain{sources: usable, log: log}
}

func (c *hotelChain) SearchHotels(ctx context.Context, prefs models.TripPreferences) ([]models.HotelOffer, error) {
	var lastErr error
	for _, s := range c.sources {
		offers, err := s.SearchHotels(ctx, prefs)
		if err != nil {
			c.log.Warnf("⚠️  Hotel source failed, trying next: %v", err)
			lastErr = err
			continue
		}
		if len(offers) > 0 {
			return offers, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("no hotel source returned offers")
}
