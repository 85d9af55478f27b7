package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chatbot-service/internal/registry"
)

// ServicesHandler exposes the service registry.
type ServicesHandler struct {
	registry *registry.Registry
}

// NewServicesHandler constructs handler.
func NewServicesHandler(reg *registry.Registry) *ServicesHandler {
	return &ServicesHandler{registry: reg}
}

// List GET /api/services.
func (h *ServicesHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.registry.List()})
}
