package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"raahi/cache"
	"raahi/catalog"
	"raahi/config"
	"raahi/database"
	"raahi/handlers"
	"raahi/itinerary"
	"raahi/logger"
	"raahi/planner"
	"raahi/scoring"
	"raahi/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zlog.Sync()

	// Storage is best effort: the planner works fully without it, sessions
	// just stop being retrievable later.
	store, err := database.Connect(cfg.Database, zlog)
	if err != nil {
		zlog.Warnf("⚠️  Database unavailable: %v — plans will not be persisted", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	planCache := cache.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL, zlog)
	defer planCache.Close()

	cat := catalog.New(cfg.Rules.Catalog, catalog.WithLogger(zlog))

	// Live sources: Amadeus first for both verticals, listing scraper as the
	// secondary hotel source.
	amadeus := services.NewAmadeusClient(cfg.Amadeus, cat, zlog)
	var flightSource planner.FlightSearcher
	var hotelSources []planner.HotelSearcher
	if amadeus.Configured() {
		flightSource = amadeus
		hotelSources = append(hotelSources, amadeus)
	}
	if cfg.Scraper.BaseURL != "" {
		hotelSources = append(hotelSources, services.NewHotelScraper(cfg.Scraper.BaseURL, zlog))
	}

	var llm itinerary.Generator
	if gen := services.NewOpenAIGenerator(cfg.OpenAI, zlog); gen != nil {
		llm = gen
	}
	synth := itinerary.NewSynthesizer(cat, llm, cfg.Rules.Itinerary, zlog)

	trips := planner.New(
		planner.Config{
			SearchTimeout:    cfg.Planner.SearchTimeout,
			ItineraryTimeout: cfg.Planner.ItineraryTimeout,
		},
		cat,
		flightSource,
		planner.ChainHotelSearchers(zlog, hotelSources...),
		synth,
		scoring.NewFlightScorer(cfg.Rules.Flight),
		scoring.NewHotelScorer(cfg.Rules.Hotel),
		zlog,
	)

	h := handlers.New(trips, store, planCache, zlog)

	if cfg.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.SetTrustedProxies([]string{"0.0.0.0/0"})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.POST("/plan", h.CreatePlan)
		api.GET("/plan/:id", h.GetPlan)
		api.GET("/plans", h.RecentPlans)
		api.POST("/plan/:id/pdf", h.ExportPDF)
		api.GET("/download/:id", h.Download)
	}

	zlog.Infof("🚀 Raahi backend starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		zlog.Fatalf("Failed to start server: %v", err)
	}
}
