package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/google/uuid"

	"github.com/nijaru/yt-forever/config"
	"github.com/nijaru/yt-forever/handlers"
	"github.com/nijaru/yt-forever/llm"
	"github.com/nijaru/yt-forever/logger"
	"github.com/nijaru/yt-forever/services/analysis"
	"github.com/nijaru/yt-forever/services/transcript"
	"github.com/nijaru/yt-forever/validation"
	"github.com/nijaru/yt-forever/youtube"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logConfig, err := logger.NewLogger(cfg.LogDir, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Initialize transcript source
	source, err := youtube.NewClient(youtube.Config{
		BaseURL:           cfg.YouTube.BaseURL,
		HTTPTimeout:       cfg.YouTube.HTTPTimeout,
		ProxyURL:          cfg.YouTube.ProxyURL,
		PreferredLanguage: cfg.YouTube.PreferredLanguage,
		RequestsPerSecond: cfg.YouTube.RequestsPerSecond,
		RequestBurst:      cfg.YouTube.RequestBurst,
	})
	if err != nil {
		log.Fatalf("Failed to initialize transcript source: %v", err)
	}

	// Initialize completion provider
	provider := llm.NewOpenAI(llm.Config{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		Model:       cfg.OpenAI.Model,
		Temperature: cfg.OpenAI.Temperature,
		MaxTokens:   cfg.OpenAI.MaxTokens,
		Timeout:     cfg.OpenAI.Timeout,
	})

	// Initialize validator and services
	validator := validation.NewValidator(cfg)
	transcriptService := transcript.NewService(source, validator)
	analysisService := analysis.NewService(transcriptService, provider, analysis.Config{
		DefaultMaxWords: cfg.Analysis.DefaultMaxWords,
		DefaultMaxTags:  cfg.Analysis.DefaultMaxTags,
	})

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           cfg.IdleTimeout,
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: !cfg.Debug,
		StrictRouting:         true,
		CaseSensitive:         true,
		AppName:               "yt-forever " + cfg.Version,
	})

	// Setup middleware
	setupMiddleware(app, cfg, logConfig)

	// Setup routes
	startTime := time.Now()
	transcriptHandler := handlers.NewTranscriptHandler(transcriptService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, validator, cfg.Analysis)

	app.Get("/", handlers.Status(cfg.Version))
	app.Get("/transcript", transcriptHandler.Transcript)
	app.Get("/text", transcriptHandler.Text)
	app.Get("/summary", analysisHandler.Summary)
	app.Get("/tags", analysisHandler.Tags)
	app.Get("/topics", analysisHandler.Topics)
	app.Get("/health", handlers.HealthCheck(startTime, cfg.Version, cfg.Debug))

	// Graceful shutdown setup
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-shutdownChan
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := app.ShutdownWithContext(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	serverAddr := ":" + cfg.ServerPort
	if cfg.Debug {
		log.Printf("Server starting on http://localhost%s", serverAddr)
	}

	if err := app.Listen(serverAddr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

func setupMiddleware(app *fiber.App, cfg *config.Config, logConfig *fiberLogger.Config) {
	if cfg.Middleware.EnableRecover {
		app.Use(recover.New(recover.Config{
			EnableStackTrace: cfg.Debug,
		}))
	}

	if cfg.Middleware.EnableRequestID {
		app.Use(requestid.New(requestid.Config{
			Header: fiber.HeaderXRequestID,
			Generator: func() string {
				return uuid.New().String()
			},
		}))
	}

	if cfg.Middleware.EnableLogger {
		app.Use(fiberLogger.New(*logConfig))
	}

	if cfg.Middleware.EnableTimeout {
		app.Use(timeout.New(func(c *fiber.Ctx) error {
			return c.Next()
		}, cfg.RequestTimeout))
	}

	if cfg.Middleware.EnableCORS && cfg.CORS.Enabled {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.CORS.AllowedOrigins, ","),
			AllowMethods:     strings.Join(cfg.CORS.AllowedMethods, ","),
			AllowHeaders:     strings.Join(cfg.CORS.AllowedHeaders, ","),
			ExposeHeaders:    strings.Join(cfg.CORS.ExposedHeaders, ","),
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           cfg.CORS.MaxAge,
		}))
	}

	if cfg.Middleware.EnableRateLimit && cfg.RateLimit.Enabled {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit.RequestsPerMinute,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded",
				})
			},
		}))
	}

	if cfg.Middleware.EnableCompress {
		app.Use(compress.New(compress.Config{
			Level: compress.LevelDefault,
		}))
	}

	if cfg.Middleware.EnableETag {
		app.Use(etag.New())
	}
}
