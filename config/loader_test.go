package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raahi/models"
)

func TestDefaultsCarryRuleTables(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, 60, cfg.Rules.Flight.RecommendThreshold)
	assert.Equal(t, 70, cfg.Rules.Hotel.RecommendThreshold)
	assert.Equal(t, 6000.0, cfg.Rules.Catalog.DefaultFlightPrice)
	assert.Equal(t, 4000.0, cfg.Rules.Itinerary.AccommodationPerNight[models.BudgetTierComfort])

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

func TestLoadWithoutConfigFileUsesDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "raahi", cfg.App.Name)
	assert.NotEmpty(t, cfg.Rules.Catalog.Airlines)
	assert.Equal(t, 5, cfg.Rules.Flight.TopN)
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresConfig{
		Host: "db", Port: 5432, User: "raahi", Password: "pw",
		Database: "raahi", SSLMode: "disable",
	}.DSN()
	assert.Equal(t, "host=db port=5432 user=raahi password=pw dbname=raahi sslmode=disable", dsn)
}
