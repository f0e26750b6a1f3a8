package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"voicebox/internal/config"
	"voicebox/internal/database"
	"voicebox/internal/handlers"
	"voicebox/internal/health"
	"voicebox/internal/logging"
	"voicebox/internal/metrics"
	"voicebox/internal/middleware"
	"voicebox/internal/tts"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Structured logging (JSON in production, text in dev)
	logging.Init()

	log.Println("🚀 Starting voicebox server...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err == nil {
		log.Println("✅ .env file loaded")
	}

	cfg := config.Load()
	log.Printf("📋 Configuration loaded (Port: %s, provider preference: %s)", cfg.Port, cfg.ProviderPreference)

	// Notification history (optional - history and error persistence
	// are disabled when the database cannot be opened)
	var db *database.DB
	if cfg.HistoryDBPath != "" {
		var err error
		db, err = database.New(cfg.HistoryDBPath)
		if err != nil {
			log.Printf("⚠️ Could not open history database: %v (history disabled)", err)
			db = nil
		} else {
			defer db.Close()
			if err := db.Initialize(); err != nil {
				log.Printf("⚠️ Could not initialize history schema: %v (history disabled)", err)
				db.Close()
				db = nil
			} else {
				log.Println("✅ Notification history initialized")
			}
		}
	}

	// Voice personality profiles, with hot reload
	voices := tts.NewVoiceRegistry(cfg.VoicesConfigPath)
	if cfg.VoicesConfigPath != "" {
		if stop, err := voices.Watch(cfg.VoicesConfigPath); err != nil {
			log.Printf("⚠️ Voices hot reload disabled: %v", err)
		} else {
			defer stop()
			log.Println("✅ Voices hot reload enabled")
		}
	}

	volume := cfg.Volume
	if v := voices.Volume(); v > 0 {
		volume = v
	}
	player := tts.NewPlayer(volume)

	tracker := health.NewTracker(3)

	// Provider cascade: cloud first, local neural second, the platform
	// speech command always appended last as a guaranteed fallback.
	providers := []tts.Provider{
		tts.NewElevenLabs(cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoiceID),
		tts.NewPiper(cfg.PiperBinary, cfg.PiperModelPath),
		tts.NewPlatformSpeech(cfg.PlatformVoice),
	}

	var recorder tts.Recorder
	if db != nil {
		recorder = db
	}

	ttsService := tts.NewService(tts.Options{
		Providers:    providers,
		Tracker:      tracker,
		Player:       player,
		Chime:        tts.NewChime(cfg.ChimeEnabled, cfg.ChimePath, player),
		Voices:       voices,
		Recorder:     recorder,
		ErrorLogPath: cfg.ErrorLogPath,
		Preference:   cfg.ProviderPreference,
	})
	log.Println("✅ TTS service initialized")

	metrics.Init()

	app := fiber.New(fiber.Config{
		AppName:      "voicebox v1.0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    64 * 1024, // notifications are small
	})

	app.Use(recover.New())
	app.Use(logger.New())

	prometheus := fiberprometheus.New("voicebox")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)
	log.Println("📊 Prometheus metrics endpoint enabled at /metrics")

	// Local-only service: CORS restricted to localhost origins.
	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost,http://127.0.0.1,http://localhost:3000",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Fixed-window rate limiter for the notify endpoint
	store := middleware.NewCacheStore(cfg.RateLimitWindow)
	app.Use("/notify", middleware.RateLimiter(store, cfg.RateLimitMax))
	log.Printf("🛡️  [RATE-LIMIT] %d requests per %s per client", cfg.RateLimitMax, cfg.RateLimitWindow)

	notifyHandler := handlers.NewNotifyHandler(ttsService)
	healthHandler := handlers.NewHealthHandler(ttsService, cfg)
	historyHandler := handlers.NewHistoryHandler(db)
	voicesHandler := handlers.NewVoicesHandler(voices)

	app.Post("/notify", notifyHandler.Handle)
	app.Get("/health", healthHandler.Handle)
	app.Get("/history", historyHandler.Handle)
	app.Get("/voices", voicesHandler.Handle)

	// Anything else gets the banner.
	app.Use(func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.SendString("voicebox notification server")
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Error shutting down server: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
