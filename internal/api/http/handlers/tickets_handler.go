package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/chatbot-service/internal/api/dto"
	"github.com/spec-kit/chatbot-service/internal/domain"
	"github.com/spec-kit/chatbot-service/internal/sentiment"
	"github.com/spec-kit/chatbot-service/internal/ticketing"
	apperrors "github.com/spec-kit/chatbot-service/pkg/util/errorutil"
)

// TicketsHandler exposes the ticketing collaborator over REST.
type TicketsHandler struct {
	tickets *ticketing.Service
	scorer  *sentiment.Scorer
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *ticketing.Service, scorer *sentiment.Scorer) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, scorer: scorer}
}

// Create POST /api/create-ticket. Direct creation outside the dialogue:
// sentiment is computed here from the message body.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	feedbackType := domain.FeedbackType(strings.ToLower(strings.TrimSpace(req.Type)))
	if !feedbackType.Valid() {
		return apperrors.NewValidationError("type must be feedback or complaint", nil)
	}
	if strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("message required", nil)
	}

	result := h.scorer.Score(req.Message)
	ticket, err := h.tickets.Create(c.Context(), ticketing.CreateInput{
		FeedbackType:   feedbackType,
		Location:       strings.TrimSpace(req.Location),
		Message:        req.Message,
		Email:          strings.TrimSpace(req.Email),
		Sentiment:      result.Label,
		SentimentScore: result.Score,
	})
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(dto.TicketCommitResponse{
		TicketID:       ticket.ID,
		Status:         "Ticket submitted successfully",
		StaffAssigned:  ticket.AssignedStaff,
		SentimentScore: ticket.SentimentScore,
		SentimentLabel: string(ticket.Sentiment),
	})
}

// List GET /api/tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	tickets := h.tickets.List(c.Context())
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	ticket, err := h.tickets.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ticketing.ErrNotFound) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": c.Params("id")})
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

func ticketSummary(t *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:             t.ID,
		FeedbackType:   string(t.FeedbackType),
		Location:       t.Location,
		Message:        t.Message,
		Email:          t.Email,
		Sentiment:      string(t.Sentiment),
		SentimentScore: t.SentimentScore,
		AssignedStaff:  t.AssignedStaff,
		Status:         string(t.Status),
		CreatedAt:      t.CreatedAt.UTC().Format(time.RFC3339),
	}
}
