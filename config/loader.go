package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"raahi/catalog"
	"raahi/itinerary"
	"raahi/scoring"
)

// Load reads config.yaml (if present), merges environment overrides like
// AMADEUS_CLIENT_ID, and unmarshals over the compiled defaults so a partial
// config file only overrides the keys it names.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		fmt.Println("✅ Loaded environment variables from .env")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Secrets come from the environment, never from the config file.
	if key := os.Getenv("AMADEUS_CLIENT_ID"); key != "" {
		cfg.Amadeus.ClientID = key
	}
	if secret := os.Getenv("AMADEUS_CLIENT_SECRET"); secret != "" {
		cfg.Amadeus.ClientSecret = secret
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAI.APIKey = key
	}
	if dbURL := os.Getenv("DATABASE_PASSWORD"); dbURL != "" {
		cfg.Database.Password = dbURL
	}

	return &cfg, nil
}

// Defaults returns the compiled configuration: every rule table at its
// canonical values and the service pointed at local infrastructure.
func Defaults() Config {
	return Config{
		App: AppConfig{
			Name:        "raahi",
			Environment: "development",
		},
		Server: ServerConfig{
			Port:         "8000",
			GinMode:      "debug",
			AllowOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Database: PostgresConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "raahi",
			User:     "postgres",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Address: "",
			TTL:     15 * time.Minute,
		},
		Amadeus: AmadeusConfig{
			BaseURL: "https://test.api.amadeus.com",
		},
		Scraper: ScraperConfig{
			BaseURL: "https://www.booking.com/searchresults.html",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Planner: PlannerConfig{
			SearchTimeout:    10 * time.Second,
			ItineraryTimeout: 25 * time.Second,
		},
		Rules: RulesConfig{
			Flight:    scoring.DefaultFlightRules(),
			Hotel:     scoring.DefaultHotelRules(),
			Itinerary: itinerary.DefaultRules(),
			Catalog:   catalog.DefaultTables(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
