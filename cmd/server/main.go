package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	aiopenai "github.com/Anantaverma20/Retailmind/internal/adapter/ai/openai"
	"github.com/Anantaverma20/Retailmind/internal/adapter/cache"
	"github.com/Anantaverma20/Retailmind/internal/adapter/http/fiber/handlers"
	"github.com/Anantaverma20/Retailmind/internal/adapter/http/fiber/middleware"
	"github.com/Anantaverma20/Retailmind/internal/adapter/queue"
	"github.com/Anantaverma20/Retailmind/internal/adapter/storage/postgres"
	"github.com/Anantaverma20/Retailmind/internal/adapter/vault"
	wsAdapter "github.com/Anantaverma20/Retailmind/internal/adapter/websocket"
	"github.com/Anantaverma20/Retailmind/internal/observability/telemetry"
	"github.com/Anantaverma20/Retailmind/internal/ports"
	"github.com/Anantaverma20/Retailmind/internal/service/assistant"
	"github.com/Anantaverma20/Retailmind/internal/service/email"
	"github.com/Anantaverma20/Retailmind/internal/service/nlu"
	"github.com/Anantaverma20/Retailmind/internal/service/speech"
	"github.com/Anantaverma20/Retailmind/pkg/config"
)

const (
	serviceName    = "retailmind"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting RetailMind voice assistant",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
		zap.String("environment", cfg.App.Environment),
	)

	// 2. Resolve secrets from Vault when enabled
	if cfg.Vault.Enabled {
		if err := loadSecrets(cfg); err != nil {
			logger.Fatal("Failed to load secrets from Vault", zap.Error(err))
		}
		logger.Info("Secrets loaded from Vault")
	}

	// 3. Initialize OpenTelemetry (Distributed Tracing)
	if cfg.Tracing.Enabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, serviceVersion, cfg.Tracing.JaegerEndpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 4. Initialize PostgreSQL Connection Pool
	db, err := postgres.NewConnection(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer postgres.Close(db)

	// 5. Initialize Cache (Redis, falling back to the in-process cache)
	var parseCache ports.Cache
	if cfg.Redis.URL != "" {
		parseCache, err = cache.NewRedisCache(cfg.Redis.URL, logger)
		if err != nil {
			logger.Warn("Redis unavailable, using local cache", zap.Error(err))
			parseCache = cache.NewLocalCache(cfg.Cache.CleanupInterval, logger)
		}
	} else {
		parseCache = cache.NewLocalCache(cfg.Cache.CleanupInterval, logger)
	}
	defer parseCache.Close()

	// 6. Initialize Message Queue
	messageQueue, err := newQueue(cfg.Queue, logger)
	if err != nil {
		logger.Fatal("Failed to connect to message queue", zap.Error(err))
	}
	defer messageQueue.Close()

	// 7. Initialize Repositories
	inventoryRepo := postgres.NewInventoryRepository(db, logger)
	salesRepo := postgres.NewSalesRepository(db, logger)
	supplierRepo := postgres.NewSupplierRepository(db, logger)
	orderRepo := postgres.NewPurchaseOrderRepository(db, logger)
	reorderRepo := postgres.NewReorderRepository(db, logger)
	voiceLogRepo := postgres.NewVoiceLogRepository(db, logger)

	// 8. Initialize NLU parsers
	rulesParser := nlu.NewRulesParser(logger)
	var primary ports.IntentParser
	if cfg.NLU.Provider == "openai" && cfg.NLU.OpenAIAPIKey != "" {
		model := aiopenai.NewIntentClient(cfg.NLU.OpenAIAPIKey, cfg.NLU.Model, logger)
		primary = nlu.NewLLMParser(model, nlu.LLMParserOptions{
			Provider:                "openai",
			Timeout:                 cfg.NLU.Timeout,
			ConfidenceThreshold:     cfg.NLU.ConfidenceThreshold,
			BreakerMaxRequests:      cfg.NLU.Breaker.MaxRequests,
			BreakerInterval:         cfg.NLU.Breaker.Interval,
			BreakerTimeout:          cfg.NLU.Breaker.Timeout,
			BreakerFailureThreshold: cfg.NLU.Breaker.FailureThreshold,
		}, logger)
	} else {
		logger.Info("Model parser disabled, running rules-only NLU")
	}

	// 9. Initialize intent handlers and the dispatch registry
	registry := assistant.NewRegistry()
	intentHandlers := assistant.NewHandlers(inventoryRepo, salesRepo, supplierRepo, orderRepo, reorderRepo, messageQueue, logger)
	intentHandlers.RegisterAll(registry)

	// 10. Initialize Renderer, Recorder and the Assistant pipeline
	renderer := speech.NewRenderer(speech.DefaultTemplates)
	recorder := assistant.NewRecorder(voiceLogRepo, messageQueue, logger)

	assistantService, err := assistant.NewService(assistant.Options{
		Primary:  primary,
		Fallback: rulesParser,
		Cache:    parseCache,
		CacheTTL: cfg.Cache.ParseResultTTL,
		Registry: registry,
		Renderer: renderer,
		Recorder: recorder,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize assistant", zap.Error(err))
	}

	// 11. Start the reorder email worker
	if cfg.Email.Enabled {
		provider := email.NewSendGridProvider(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
		notifier := email.NewReorderNotifier(provider, cfg.Email.PurchasingAddr, logger)
		if err := notifier.Start(messageQueue); err != nil {
			logger.Fatal("Failed to start reorder notifier", zap.Error(err))
		}
	}

	// 12. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		BodyLimit:             cfg.HTTP.BodyLimit,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.NewCORS(cfg.CORS))
	if cfg.RateLimiting.Enabled {
		app.Use(middleware.NewRateLimiter(cfg.RateLimiting))
	}

	// Health check endpoints
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		if err := sqlDB.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("Database not ready")
		}
		if err := parseCache.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("Cache not ready")
		}
		return c.SendString("Ready")
	})

	// Metrics endpoint for Prometheus
	app.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	// Device webhook
	webhookHandler := handlers.NewWebhookHandler(assistantService, logger)
	app.Post("/omi/event", middleware.TokenAuth(cfg.Webhook.Token), webhookHandler.HandleEvent)

	// API v1 routes
	v1 := app.Group("/api/v1", middleware.TokenAuth(cfg.Webhook.Token))
	voiceHandler := handlers.NewVoiceHandler(voiceLogRepo, logger)
	v1.Get("/voice/history", voiceHandler.GetHistory)

	// Voice WebSocket
	voiceStream := wsAdapter.NewVoiceStreamHandler(assistantService, logger)
	app.Use("/ws/voice", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/voice", websocket.New(voiceStream.HandleVoiceStream))

	// 13. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 14. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// newLogger builds the process logger. Development builds use zap's console
// encoder and panic on DPanic so renderer defects fail loudly.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.App.Production() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	if cfg.Logging.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Logging.Level)
		if err != nil {
			return nil, err
		}
		zcfg.Level = level
	}
	return zcfg.Build()
}

// loadSecrets overwrites config values with their Vault counterparts.
func loadSecrets(cfg *config.Config) error {
	sm, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
	if err != nil {
		return err
	}

	if dsn, err := sm.GetDatabaseCredentials(); err == nil && dsn != "" {
		cfg.Database.URL = dsn
	}
	if key, err := sm.GetOpenAIAPIKey(); err == nil && key != "" {
		cfg.NLU.OpenAIAPIKey = key
	}
	if token, err := sm.GetWebhookToken(); err == nil && token != "" {
		cfg.Webhook.Token = token
	}
	return nil
}

func newQueue(cfg config.QueueConfig, logger *zap.Logger) (queue.MessageQueue, error) {
	switch cfg.Driver {
	case "rabbitmq":
		return queue.NewRabbitMQQueue(cfg.RabbitMQURL, logger)
	default:
		return queue.NewNATSQueue(cfg.NATSURL, logger)
	}
}
