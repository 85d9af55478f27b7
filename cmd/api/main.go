package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/chatbot-service/internal/api/http"
	"github.com/spec-kit/chatbot-service/internal/api/http/handlers"
	"github.com/spec-kit/chatbot-service/internal/api/ws"
	"github.com/spec-kit/chatbot-service/internal/auth"
	"github.com/spec-kit/chatbot-service/internal/chat"
	"github.com/spec-kit/chatbot-service/internal/chatbot"
	"github.com/spec-kit/chatbot-service/internal/config"
	"github.com/spec-kit/chatbot-service/internal/events"
	"github.com/spec-kit/chatbot-service/internal/observability"
	"github.com/spec-kit/chatbot-service/internal/persistence"
	"github.com/spec-kit/chatbot-service/internal/registry"
	"github.com/spec-kit/chatbot-service/internal/repository"
	"github.com/spec-kit/chatbot-service/internal/sentiment"
	"github.com/spec-kit/chatbot-service/internal/service"
	"github.com/spec-kit/chatbot-service/internal/ticketing"
	"github.com/spec-kit/chatbot-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var archive ticketing.Archive
	if pool := pg.PoolHandle(); pool != nil {
		ticketArchive := repository.NewTicketArchive(pool)
		if err := ticketArchive.EnsureSchema(ctx); err != nil {
			logger.Fatal("failed to prepare ticket archive", zap.Error(err))
		}
		archive = ticketArchive
	}
	var cache ticketing.Cache
	if redis != nil {
		cache = repository.NewTicketCache(redis.Client, cfg.Chat.CacheTTL())
	}

	dispatcher := events.NewInMemoryDispatcher()
	ticketService := ticketing.NewService(ticketing.Dependencies{
		Dispatcher: dispatcher,
		Archive:    archive,
		Cache:      cache,
		Logger:     logger,
		Metrics:    metrics,
	})

	notificationService := service.NewNotificationService(cfg.Notification, cfg.Chat.NotificationQueueSize, logger, metrics)
	worker.StartNotificationWorker(ctx, notificationService, dispatcher)

	scorer := sentiment.NewScorer(nil)
	engine := chatbot.NewEngine(scorer, ticketService, logger)

	keyring := auth.NewKeyring(cfg.Auth)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.ChatTokenTTLMinutes)
	adapter := chat.NewAdapter(engine, keyring, logger, metrics)

	reg := registry.New()
	if port, err := strconv.Atoi(cfg.App.Port); err == nil {
		reg.Register("chatbot", port)
		reg.Register("ticketing", port)
		reg.Register("sentiment", port)
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	app.Static("/", cfg.App.StaticDir)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(metrics),
		Chatbot:     handlers.NewChatbotHandler(engine, tokens),
		Tickets:     handlers.NewTicketsHandler(ticketService, scorer),
		Services:    handlers.NewServicesHandler(reg),
		Keyring:     keyring,
		Chat:        ws.Handler(adapter, tokens, logger),
		ChatUpgrade: ws.Upgrade,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
