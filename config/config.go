package config

import (
	"fmt"
	"time"

	"raahi/catalog"
	"raahi/itinerary"
	"raahi/scoring"
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database PostgresConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Amadeus  AmadeusConfig  `mapstructure:"amadeus"`
	Scraper  ScraperConfig  `mapstructure:"scraper"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Planner  PlannerConfig  `mapstructure:"planner"`
	Rules    RulesConfig    `mapstructure:"rules"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port         string   `mapstructure:"port"`
	GinMode      string   `mapstructure:"gin_mode"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// AmadeusConfig holds the flight search API credentials. An empty ClientID
// disables the live flight source.
type AmadeusConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	BaseURL      string `mapstructure:"base_url"`
}

// ScraperConfig points the hotel listing scraper at an aggregator search
// page. Empty BaseURL disables it.
type ScraperConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// OpenAIConfig holds the itinerary model settings. An empty APIKey disables
// the model path; itineraries then come from templates.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type PlannerConfig struct {
	SearchTimeout    time.Duration `mapstructure:"search_timeout"`
	ItineraryTimeout time.Duration `mapstructure:"itinerary_timeout"`
}

// RulesConfig bundles every injectable rule table. Values from the config
// file override the compiled defaults key by key.
type RulesConfig struct {
	Flight    scoring.FlightRules `mapstructure:"flight"`
	Hotel     scoring.HotelRules  `mapstructure:"hotel"`
	Itinerary itinerary.Rules     `mapstructure:"itinerary"`
	Catalog   catalog.Tables      `mapstructure:"catalog"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
