package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chatbot-service/internal/api/dto"
	"github.com/spec-kit/chatbot-service/internal/auth"
	"github.com/spec-kit/chatbot-service/internal/chatbot"
	"github.com/spec-kit/chatbot-service/internal/domain"
	apperrors "github.com/spec-kit/chatbot-service/pkg/util/errorutil"
)

const defaultWebUserID = "web-user"

// ChatbotHandler adapts single-shot requests to the dialogue engine.
type ChatbotHandler struct {
	engine *chatbot.Engine
	tokens *auth.TokenManager
}

// NewChatbotHandler constructs handler.
func NewChatbotHandler(engine *chatbot.Engine, tokens *auth.TokenManager) *ChatbotHandler {
	return &ChatbotHandler{engine: engine, tokens: tokens}
}

// Message POST /api/chatbot. Single-shot: every call runs against a fresh
// session, so no dialogue position carries over between requests.
func (h *ChatbotHandler) Message(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return apperrors.NewValidationError("message required", nil)
	}
	userID := req.UserID
	if userID == "" {
		userID = defaultWebUserID
	}

	reply := h.engine.Handle(c.Context(), message, domain.NewSession(userID))
	return c.JSON(dto.ChatResponse{Reply: reply})
}

// Token POST /api/chat/token. The shared credential was already verified
// by the API-key middleware; the issued token lets the browser open a
// websocket without re-presenting the key per frame.
func (h *ChatbotHandler) Token(c *fiber.Ctx) error {
	var req dto.ChatTokenRequest
	// Body is optional; ignore parse failures and fall back to defaults.
	_ = c.BodyParser(&req)
	userID := req.UserID
	if userID == "" {
		userID = defaultWebUserID
	}

	token, expiresAt, err := h.tokens.IssueChatToken(userID)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.ChatTokenResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}

// Suggestions GET /api/suggestions.
func (h *ChatbotHandler) Suggestions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"suggestions": chatbot.Suggestions})
}
