package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"project-assistant/config"
	_ "project-assistant/docs" // Swagger docs
	tgDelivery "project-assistant/internal/assistant/delivery/telegram"
	"project-assistant/internal/classifier"
	"project-assistant/internal/dispatcher"
	documentUC "project-assistant/internal/document/usecase"
	"project-assistant/internal/httpserver"
	"project-assistant/internal/item"
	memosRepo "project-assistant/internal/item/repository/memos"
	"project-assistant/internal/middleware"
	"project-assistant/internal/orchestrator"
	"project-assistant/internal/parser"
	"project-assistant/internal/retrieval"
	qdrantRepo "project-assistant/internal/retrieval/repository/qdrant"
	"project-assistant/internal/session"
	"project-assistant/internal/sync"
	"project-assistant/pkg/datemath"
	"project-assistant/pkg/gcalendar"
	"project-assistant/pkg/llmprovider"
	"project-assistant/pkg/log"
	pkgQdrant "project-assistant/pkg/qdrant"
	"project-assistant/pkg/telegram"
	"project-assistant/pkg/voyage"
)

// @title       Project Assistant API
// @description Turns chat messages and project documents into classified intents, answers and work items.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Project Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. LLM providers. Missing credentials are not fatal: every call
	// then reports a configuration error to the user.
	providers, err := llmprovider.InitializeProviders(ctx, &cfg.LLM, logger)
	if err != nil {
		logger.Warnf(ctx, "LLM providers unavailable: %v", err)
	}
	llmManager := llmprovider.NewManager(providers, llmprovider.ManagerConfig(cfg.LLM), logger)
	logger.Infof(ctx, "LLM providers initialized: %d", len(providers))

	// 4. Date math
	timezone := cfg.Orchestrator.Timezone
	dateMathParser, err := datemath.NewParser(timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", timezone, err)
		timezone = "UTC"
		dateMathParser, _ = datemath.NewParser(timezone)
	}
	location, _ := time.LoadLocation(timezone)

	// 5. Item store with the optional calendar sink
	memosClient := memosRepo.NewClient(cfg.Memos.URL, cfg.Memos.AccessToken)
	var itemStore item.Store = memosRepo.New(memosClient, cfg.Memos.ExternalURL, logger)
	if cfg.GoogleCalendar.Enabled && cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, calErr := gcalendar.NewClient(ctx, gcalendar.Options{
			CredentialsPath: cfg.GoogleCalendar.CredentialsPath,
			TokenPath:       cfg.GoogleCalendar.TokenPath,
		})
		if calErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", calErr)
		} else {
			itemStore = item.WithCalendar(itemStore, calendarClient, item.CalendarConfig{
				CalendarID: cfg.GoogleCalendar.CalendarID,
				Timezone:   timezone,
			}, logger)
			logger.Info(ctx, "Google Calendar initialized")
		}
	}

	// 6. Knowledge retrieval (optional)
	var knowledgeStore retrieval.Store
	if cfg.Retrieval.Enabled && cfg.Qdrant.URL != "" && cfg.Voyage.APIKey != "" {
		embedder, vErr := voyage.New(cfg.Voyage.APIKey)
		if vErr != nil {
			logger.Warnf(ctx, "Voyage embedder not available: %v", vErr)
		} else {
			embedder.WithModel(cfg.Voyage.Model, cfg.Qdrant.VectorSize)
			qdrantClient := pkgQdrant.NewClient(cfg.Qdrant.URL).WithAPIKey(cfg.Qdrant.APIKey)
			knowledgeStore = qdrantRepo.New(qdrantClient, embedder, cfg.Qdrant.CollectionName, logger)
			if setup, ok := knowledgeStore.(qdrantRepo.Setup); ok {
				if sErr := setup.EnsureCollection(ctx); sErr != nil {
					logger.Warnf(ctx, "Qdrant collection %q not ready: %v", cfg.Qdrant.CollectionName, sErr)
				}
			}
			logger.Infof(ctx, "Knowledge retrieval initialized (collection %s)", cfg.Qdrant.CollectionName)
		}
	} else {
		logger.Info(ctx, "Knowledge retrieval disabled")
	}
	retrievalBuilder := retrieval.NewBuilder(knowledgeStore, retrieval.Config{
		Enabled:  knowledgeStore != nil,
		TopK:     cfg.Retrieval.TopK,
		MaxChars: cfg.Retrieval.MaxChars,
		Timeout:  parseDuration(cfg.Retrieval.Timeout, retrieval.DefaultTimeout),
	}, logger)

	// 7. Assistant core
	sessions := session.New(session.Config{
		TTL:              parseDuration(cfg.Session.TTL, session.DefaultTTL),
		MaxConversations: cfg.Session.MaxConversations,
	}, logger)

	documents := documentUC.New(logger, llmManager, itemStore, dateMathParser, cfg.Materialize.Concurrency)

	assistantUC := orchestrator.New(logger, orchestrator.Deps{
		LLM:        llmManager,
		Classifier: classifier.New(llmManager, logger),
		Dispatcher: dispatcher.New(dispatcherConfig(cfg.Classifier)),
		Sessions:   sessions,
		Documents:  documents,
		Retrieval:  retrievalBuilder,
		Parser:     parser.Auto{},
		Items:      itemStore,
		DateMath:   dateMathParser,
	}, orchestrator.Config{
		SmartAnalysisEnabled: cfg.Orchestrator.SmartAnalysisEnabled,
		RetrievalThreshold:   cfg.Retrieval.Threshold,
		Location:             location,
	})

	// 8. Item store change notifications (optional)
	var syncHandler sync.Handler
	if cfg.Webhook.Enabled {
		syncHandler = sync.NewWebhookHandler(itemStore, knowledgeStore, sessions, sync.SecurityConfig{
			Secret:     cfg.Webhook.Secret,
			AllowedIPs: cfg.Webhook.AllowedIPs,
		}, logger)
	}

	// 9. Telegram channel (optional)
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		bot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, assistantUC, bot, tgDelivery.Config{
			SecretToken:      cfg.Telegram.SecretToken,
			DefaultProjectID: cfg.Telegram.DefaultProjectID,
			MaxUploadSize:    cfg.HTTPServer.MaxUploadSize,
		})
		if cfg.Telegram.WebhookURL != "" {
			if whErr := bot.SetWebhook(ctx, cfg.Telegram.WebhookURL, cfg.Telegram.SecretToken); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "Telegram webhook registered at %s", cfg.Telegram.WebhookURL)
			}
		}
	} else {
		logger.Info(ctx, "Telegram channel skipped: TELEGRAM_BOT_TOKEN is missing")
	}

	// 10. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:           logger,
		Port:             cfg.HTTPServer.Port,
		Mode:             cfg.HTTPServer.Mode,
		Environment:      cfg.Environment.Name,
		AssistantUseCase: assistantUC,
		Middleware: middleware.Config{
			RateLimitEnabled:  cfg.RateLimit.Enabled,
			RequestsPerMinute: cfg.RateLimit.PerMinute,
		},
		MaxUploadSize:   cfg.HTTPServer.MaxUploadSize,
		TrustedProxies:  cfg.HTTPServer.TrustedProxies,
		Readiness:       llmManager.Configured,
		TelegramHandler: telegramHandler,
		SyncHandler:     syncHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 11. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

func dispatcherConfig(cfg config.ClassifierConfig) dispatcher.Config {
	out := dispatcher.Config{
		Default: dispatcher.Thresholds{Confirm: cfg.ConfirmThreshold, Auto: cfg.AutoThreshold},
	}
	if len(cfg.IntentOverrides) > 0 {
		out.PerIntent = make(map[classifier.Intent]dispatcher.Thresholds, len(cfg.IntentOverrides))
		for intent, t := range cfg.IntentOverrides {
			out.PerIntent[classifier.Intent(intent)] = dispatcher.Thresholds{Confirm: t.Confirm, Auto: t.Auto}
		}
	}
	return out
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
