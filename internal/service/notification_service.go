package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/chatbot-service/internal/config"
	"github.com/spec-kit/chatbot-service/internal/domain"
	"github.com/spec-kit/chatbot-service/internal/events"
	"github.com/spec-kit/chatbot-service/internal/observability"
)

// NotificationService turns ticket-created events into notification
// requests on a buffered queue. Enqueueing never blocks: when the queue is
// full the request is dropped and logged, so a slow or failing consumer
// can never stall a dialogue commit.
type NotificationService struct {
	queue   chan domain.NotificationRequest
	cfg     config.NotificationConfig
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewNotificationService creates the service.
func NewNotificationService(cfg config.NotificationConfig, queueSize int, logger *zap.Logger, metrics *observability.Metrics) *NotificationService {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &NotificationService{
		queue:   make(chan domain.NotificationRequest, queueSize),
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
	}
}

// RegisterHandlers subscribes to ticket events on the dispatcher.
func (n *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
}

func (n *NotificationService) handleTicketCreated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		n.logger.Warn("unexpected ticket_created payload", zap.String("event_id", event.ID))
		return nil
	}
	n.Enqueue(domain.NotificationRequest{Ticket: payload.Ticket})
	return nil
}

// Enqueue hands a notification request to the worker without waiting.
func (n *NotificationService) Enqueue(req domain.NotificationRequest) {
	select {
	case n.queue <- req:
		n.metrics.RecordNotification(false)
	default:
		n.metrics.RecordNotification(true)
		n.logger.Warn("notification queue full; dropping request",
			zap.String("ticket_id", req.Ticket.ID))
	}
}

// Run consumes the queue until ctx is cancelled. One worker is enough:
// delivery is a stub and ordering does not matter.
func (n *NotificationService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-n.queue:
			n.deliver(ctx, req)
		}
	}
}

// deliver formats the notification and hands it to the (stubbed) mail and
// webhook collaborators. Delivery errors are logged, never surfaced.
func (n *NotificationService) deliver(ctx context.Context, req domain.NotificationRequest) {
	ticket := req.Ticket
	subject := fmt.Sprintf("New %s from %s", ticket.FeedbackType, ticket.Location)
	body := notificationBody(ticket)

	if strings.TrimSpace(n.cfg.EmailFrom) != "" {
		n.logger.Info("notification email dispatched",
			zap.String("from", n.cfg.EmailFrom),
			zap.String("to", n.cfg.ManagerTo),
			zap.String("subject", subject),
			zap.String("ticket_id", ticket.ID),
			zap.Int("body_bytes", len(body)))
	}
	if strings.TrimSpace(n.cfg.WebhookURL) != "" {
		n.logger.Info("notification webhook dispatched",
			zap.String("url", n.cfg.WebhookURL),
			zap.String("ticket_id", ticket.ID))
	}
}

// notificationBody renders the manager-facing message, including the
// response SLA: one business day for negative sentiment, otherwise 2-3.
func notificationBody(ticket domain.Ticket) string {
	sla := "2-3 business days"
	if ticket.Sentiment == domain.SentimentNegative {
		sla = "1 business day"
	}
	return fmt.Sprintf("New customer %s received:\n\n"+
		"Location: %s\n"+
		"Message: %s\n"+
		"Customer Email: %s\n"+
		"Sentiment: %s\n\n"+
		"Please respond within %s.",
		ticket.FeedbackType, ticket.Location, ticket.Message,
		ticket.Email, ticket.Sentiment, sla)
}
