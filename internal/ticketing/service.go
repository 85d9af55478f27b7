package ticketing

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/chatbot-service/internal/domain"
	"github.com/spec-kit/chatbot-service/internal/events"
	"github.com/spec-kit/chatbot-service/internal/observability"
)

// ErrNotFound is returned when a ticket id is unknown to the store and,
// when configured, the cache.
var ErrNotFound = fmt.Errorf("ticket not found")

// CreateInput describes a completed feedback flow ready to commit.
// Sentiment is expected to be computed already; the factory never rescores.
type CreateInput struct {
	FeedbackType   domain.FeedbackType
	Location       string
	Message        string
	Email          string
	Sentiment      domain.SentimentLabel
	SentimentScore int
}

// Archive persists tickets out of process. Writes are fire-and-forget;
// the in-memory store stays authoritative.
type Archive interface {
	Save(ctx context.Context, ticket *domain.Ticket) error
}

// Cache is a read-through lookup aside for tickets.
type Cache interface {
	Put(ctx context.Context, ticket *domain.Ticket) error
	Get(ctx context.Context, id string) (*domain.Ticket, error)
}

// Service allocates tickets, assigns staff, and keeps the in-memory
// store. The store is append-only and keyed by generated id; inserts are
// mutex-guarded so concurrent commits from different connections are safe.
type Service struct {
	mu      sync.RWMutex
	tickets map[string]*domain.Ticket

	dispatcher events.Dispatcher
	archive    Archive
	cache      Cache
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// Dependencies bundles collaborators for the ticketing service. Archive,
// Cache, and Metrics are optional.
type Dependencies struct {
	Dispatcher events.Dispatcher
	Archive    Archive
	Cache      Cache
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewService constructs the service.
func NewService(deps Dependencies) *Service {
	return &Service{
		tickets:    make(map[string]*domain.Ticket),
		dispatcher: deps.Dispatcher,
		archive:    deps.Archive,
		cache:      deps.Cache,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
	}
}

// Create allocates a ticket for the completed flow, stores it, and
// publishes a ticket-created event. Exactly one ticket per call; the id is
// a non-cryptographic random draw with no uniqueness check, so collisions
// are possible and accepted.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Ticket, error) {
	if !input.FeedbackType.Valid() {
		return nil, fmt.Errorf("invalid feedback type %q", input.FeedbackType)
	}

	ticket := &domain.Ticket{
		ID:             generateTicketID(),
		FeedbackType:   input.FeedbackType,
		Location:       input.Location,
		Message:        input.Message,
		Email:          input.Email,
		Sentiment:      input.Sentiment,
		SentimentScore: input.SentimentScore,
		AssignedStaff:  AssignStaff(input.Sentiment),
		Status:         domain.TicketStatusOpen,
		CreatedAt:      time.Now().UTC(),
	}

	s.mu.Lock()
	s.tickets[ticket.ID] = ticket
	s.mu.Unlock()

	s.logger.Info("ticket created",
		zap.String("ticket_id", ticket.ID),
		zap.String("type", string(ticket.FeedbackType)),
		zap.String("sentiment", string(ticket.Sentiment)),
		zap.String("assigned_staff", ticket.AssignedStaff))

	s.metrics.RecordTicket()
	s.persistAsync(*ticket)
	s.publishCreated(ctx, ticket)
	return ticket, nil
}

// Get looks a ticket up by id, falling back to the cache on a store miss.
func (s *Service) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	s.mu.RLock()
	ticket, ok := s.tickets[id]
	s.mu.RUnlock()
	if ok {
		copied := *ticket
		return &copied, nil
	}
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil && cached != nil {
			return cached, nil
		}
	}
	return nil, ErrNotFound
}

// List returns all stored tickets, oldest first.
func (s *Service) List(ctx context.Context) []domain.Ticket {
	s.mu.RLock()
	out := make([]domain.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		out = append(out, *t)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Count reports the number of stored tickets.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tickets)
}

// AssignStaff is a pure function of the sentiment label: negative
// feedback escalates to the senior manager.
func AssignStaff(label domain.SentimentLabel) string {
	if label == domain.SentimentNegative {
		return domain.StaffSeniorManager
	}
	return domain.StaffTeamMember
}

// persistAsync writes the ticket to the cache and archive on a detached
// goroutine. Failures are logged and ignored: neither collaborator adds a
// durability guarantee, and commits must never block on them.
func (s *Service) persistAsync(ticket domain.Ticket) {
	if s.cache == nil && s.archive == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if s.cache != nil {
			if err := s.cache.Put(ctx, &ticket); err != nil {
				s.logger.Warn("ticket cache write failed", zap.String("ticket_id", ticket.ID), zap.Error(err))
			}
		}
		if s.archive != nil {
			if err := s.archive.Save(ctx, &ticket); err != nil {
				s.logger.Warn("ticket archive write failed", zap.String("ticket_id", ticket.ID), zap.Error(err))
			}
		}
	}()
}

func (s *Service) publishCreated(ctx context.Context, ticket *domain.Ticket) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketCreated,
		TicketID:  ticket.ID,
		Timestamp: ticket.CreatedAt,
		Payload:   events.TicketCreatedPayload{Ticket: *ticket},
	})
}

// generateTicketID draws a random id of the form T-<n> with n in
// [0,10000). Duplicate ids are possible; the store keeps the newer ticket
// under the colliding key.
func generateTicketID() string {
	return fmt.Sprintf("T-%d", rand.IntN(10000))
}
