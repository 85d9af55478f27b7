package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chatbot-service/internal/api/http/handlers"
	"github.com/spec-kit/chatbot-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Chatbot  *handlers.ChatbotHandler
	Tickets  *handlers.TicketsHandler
	Services *handlers.ServicesHandler
	Keyring  *auth.Keyring
	// Chat is the websocket bridge handler; it authenticates per
	// connection (handshake token or first frame), not per call, so it is
	// registered outside the API-key group. ChatUpgrade rejects plain
	// HTTP requests to the websocket route.
	Chat        fiber.Handler
	ChatUpgrade fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/ws", cfg.ChatUpgrade, cfg.Chat)

	api := app.Group("/api", auth.RequireAPIKey(cfg.Keyring))
	api.Post("/chatbot", cfg.Chatbot.Message)
	api.Post("/chat/token", cfg.Chatbot.Token)
	api.Get("/suggestions", cfg.Chatbot.Suggestions)

	api.Post("/create-ticket", cfg.Tickets.Create)
	api.Get("/tickets", cfg.Tickets.List)
	api.Get("/tickets/:id", cfg.Tickets.Get)

	api.Get("/services", cfg.Services.List)
}
