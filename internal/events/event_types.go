package events

import (
	"time"

	"github.com/spec-kit/chatbot-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload carries the full ticket so notification handlers
// can build their message without a store lookup.
type TicketCreatedPayload struct {
	Ticket domain.Ticket `json:"ticket"`
}
