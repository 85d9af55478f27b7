package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chatbot-service/internal/observability"
)

// HealthHandler exposes liveness/readiness probes.
type HealthHandler struct {
	metrics *observability.Metrics
}

// NewHealthHandler constructs handler.
func NewHealthHandler(metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{metrics: metrics}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready GET /health/ready. Includes the chat pipeline counters; the
// service has no hard external dependency, so readiness is always true
// once the process is serving.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ready",
		"chat":   h.metrics.Snapshot(),
	})
}
