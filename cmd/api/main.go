package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/ashmitsharp/treasury-api/internal/config"
	"github.com/ashmitsharp/treasury-api/internal/data"
	"github.com/ashmitsharp/treasury-api/internal/database"
	"github.com/ashmitsharp/treasury-api/internal/handlers"
	"github.com/ashmitsharp/treasury-api/internal/logger"
	"github.com/ashmitsharp/treasury-api/internal/middleware"
	"github.com/ashmitsharp/treasury-api/internal/models"
	"github.com/ashmitsharp/treasury-api/internal/services"
	"github.com/ashmitsharp/treasury-api/internal/utils"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		bootLog := logger.New("info", "development")
		bootLog.Fatal().Err(err).Msg("Invalid configuration")
	}

	log := logger.New(cfg.LogLevel, cfg.Environment)
	if envErr != nil {
		log.Warn().Msg(".env file not found, using system environment variables")
	}

	ctx := context.Background()

	// Data source: Postgres when configured, built-in sample data otherwise
	var provider data.Provider
	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(ctx, cfg.DatabaseURL, cfg.DBMaxConnections, cfg.DBConnectionTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer pool.Close()
		provider = data.NewPostgresProvider(pool)
		log.Info().Msg("✓ Connected to database successfully")
	} else {
		provider = data.NewSampleProvider()
		log.Info().Msg("✓ Serving built-in sample data")
	}

	mode := models.ParseCurrencyMode(cfg.CurrencyMode)
	formatter := services.NewMoneyFormatter(language.MustParse(cfg.NumberLocale))

	// AI chat client
	var chatClient handlers.ChatClient
	if cfg.AIAPIKey != "" {
		client, err := services.NewGenAIChatClient(ctx, cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel, int32(cfg.AIMaxOutputTokens))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize AI client")
		}
		chatClient = client
		log.Info().Str("model", cfg.AIModel).Msg("✓ AI chat client initialized successfully")
	} else {
		log.Warn().Msg("AI_API_KEY not set, chat endpoint disabled")
	}

	// Exchange rate service
	rateService := services.NewExchangeRateService(
		services.NewMockRateSource(int64(cfg.ExchangeRateBase), services.DefaultRateSpread),
		cfg.ExchangeRateTTL,
	)
	log.Info().Dur("ttl", cfg.ExchangeRateTTL).Msg("✓ Exchange rate service initialized successfully")

	// Storage service for report uploads
	var reportStorage handlers.ReportStorage
	if cfg.S3Bucket != "" {
		storageService, err := services.NewStorageService(cfg.S3Bucket, cfg.S3Region, cfg.AWSEndpoint)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize storage service")
		}
		reportStorage = storageService
		log.Info().Str("bucket", cfg.S3Bucket).Msg("✓ Storage service initialized successfully")
	} else {
		log.Info().Msg("S3_BUCKET not set, reports will be streamed")
	}

	// Initialize handlers
	summaryHandler := handlers.NewSummaryHandler(provider)
	transactionHandler := handlers.NewTransactionHandler(provider)
	chatHandler := handlers.NewChatHandler(chatClient, provider, mode, formatter)
	rateHandler := handlers.NewExchangeRateHandler(rateService)
	reportHandler := handlers.NewReportHandler(provider, reportStorage, cfg.ReportURLExpiry)

	app := fiber.New(fiber.Config{
		AppName:      "treasury API v1.0",
		ErrorHandler: utils.NewErrorHandler(cfg.Environment != "production"),
	})

	registerRoutes(app, log, cfg, routeHandlers{
		summary:      summaryHandler,
		transactions: transactionHandler,
		chat:         chatHandler,
		rates:        rateHandler,
		reports:      reportHandler,
	})

	log.Info().Msg("✓ All routes configured successfully")

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("Shutting down server")
		if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
			log.Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.Addr()).Msg("🚀 treasury API is running")
	if err := app.Listen(cfg.Addr(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
	log.Info().Msg("Server stopped")
}

type routeHandlers struct {
	summary      *handlers.SummaryHandler
	transactions *handlers.TransactionHandler
	chat         *handlers.ChatHandler
	rates        *handlers.ExchangeRateHandler
	reports      *handlers.ReportHandler
}

func registerRoutes(app *fiber.App, log zerolog.Logger, cfg *config.Config, h routeHandlers) {
	// Apply global middleware
	app.Use(recoverer.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Health check endpoint
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "treasury-api",
		})
	})

	api := app.Group("/api")

	// Dashboard
	api.Get("/kpis", h.summary.GetKPIs)
	api.Get("/accounts", h.summary.GetAccounts)
	api.Get("/accounts/:id/transactions", h.transactions.GetAccountTransactions)
	api.Get("/bank-positions", h.summary.GetBankPositions)
	api.Get("/cash-position", h.summary.GetCashPosition)
	api.Get("/waterfall", h.summary.GetWaterfall)
	api.Get("/forecast", h.summary.GetForecast)
	api.Get("/debts", h.summary.GetDueDebts)
	api.Get("/currency-positions", h.summary.GetCurrencyPositions)
	api.Get("/transactions", h.transactions.GetTransactions)

	// Assistant and market data
	api.Post("/chat", h.chat.Chat)
	api.Get("/exchange-rate", h.rates.GetExchangeRate)

	// Reports
	api.Get("/reports", h.reports.ListReports)
	api.Get("/reports/:type", h.reports.GetReport)
}
