package ticketing_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/chatbot-service/internal/domain"
	"github.com/spec-kit/chatbot-service/internal/events"
	"github.com/spec-kit/chatbot-service/internal/ticketing"
)

var ticketIDPattern = regexp.MustCompile(`^T-\d{1,4}$`)

func validInput() ticketing.CreateInput {
	return ticketing.CreateInput{
		FeedbackType:   domain.FeedbackTypeFeedback,
		Location:       "Charlotte Way",
		Message:        "great service",
		Email:          "a@b.com",
		Sentiment:      domain.SentimentPositive,
		SentimentScore: 3,
	}
}

func TestCreateAllocatesTicket(t *testing.T) {
	svc := ticketing.NewService(ticketing.Dependencies{Logger: zap.NewNop()})

	ticket, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !ticketIDPattern.MatchString(ticket.ID) {
		t.Fatalf("ticket id %q does not match T-<n>", ticket.ID)
	}
	if ticket.AssignedStaff != domain.StaffTeamMember {
		t.Fatalf("assignedStaff = %q, want %q", ticket.AssignedStaff, domain.StaffTeamMember)
	}
	if ticket.Status != domain.TicketStatusOpen {
		t.Fatalf("status = %s, want open", ticket.Status)
	}

	stored, err := svc.Get(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stored.Email != "a@b.com" {
		t.Fatalf("stored email = %q", stored.Email)
	}
}

func TestCreateRejectsUnknownFeedbackType(t *testing.T) {
	svc := ticketing.NewService(ticketing.Dependencies{Logger: zap.NewNop()})

	input := validInput()
	input.FeedbackType = "praise"
	if _, err := svc.Create(context.Background(), input); err == nil {
		t.Fatalf("expected an error for unknown feedback type")
	}
	if svc.Count() != 0 {
		t.Fatalf("store not empty after rejected create")
	}
}

func TestAssignStaff(t *testing.T) {
	if got := ticketing.AssignStaff(domain.SentimentNegative); got != domain.StaffSeniorManager {
		t.Fatalf("negative sentiment assigned to %q", got)
	}
	if got := ticketing.AssignStaff(domain.SentimentPositive); got != domain.StaffTeamMember {
		t.Fatalf("positive sentiment assigned to %q", got)
	}
	if got := ticketing.AssignStaff(domain.SentimentNeutral); got != domain.StaffTeamMember {
		t.Fatalf("neutral sentiment assigned to %q", got)
	}
}

func TestGetUnknownTicket(t *testing.T) {
	svc := ticketing.NewService(ticketing.Dependencies{Logger: zap.NewNop()})

	if _, err := svc.Get(context.Background(), "T-404"); !errors.Is(err, ticketing.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreatePublishesTicketCreatedEvent(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var (
		mu       sync.Mutex
		received []events.Event
	)
	dispatcher.Subscribe(events.EventTicketCreated, func(_ context.Context, event events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, event)
		return nil
	})

	svc := ticketing.NewService(ticketing.Dependencies{Dispatcher: dispatcher, Logger: zap.NewNop()})
	ticket, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 {
		t.Fatalf("events published = %d, want 1", len(received))
	}
	if received[0].TicketID != ticket.ID {
		t.Fatalf("event ticket id = %q, want %q", received[0].TicketID, ticket.ID)
	}
	payload, ok := received[0].Payload.(events.TicketCreatedPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", received[0].Payload)
	}
	if payload.Ticket.Email != "a@b.com" {
		t.Fatalf("payload email = %q", payload.Ticket.Email)
	}
}

// fakeArchive captures writes on a channel so tests can wait for the
// detached persistence goroutine.
type fakeArchive struct {
	saved chan domain.Ticket
}

func (f *fakeArchive) Save(_ context.Context, ticket *domain.Ticket) error {
	f.saved <- *ticket
	return nil
}

func TestCreateArchivesAsynchronously(t *testing.T) {
	archive := &fakeArchive{saved: make(chan domain.Ticket, 1)}
	svc := ticketing.NewService(ticketing.Dependencies{Archive: archive, Logger: zap.NewNop()})

	ticket, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	select {
	case saved := <-archive.saved:
		if saved.ID != ticket.ID {
			t.Fatalf("archived id = %q, want %q", saved.ID, ticket.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("archive write never happened")
	}
}

// fakeCache only answers Get; Put is a no-op.
type fakeCache struct {
	tickets map[string]*domain.Ticket
}

func (f *fakeCache) Put(_ context.Context, _ *domain.Ticket) error { return nil }

func (f *fakeCache) Get(_ context.Context, id string) (*domain.Ticket, error) {
	if ticket, ok := f.tickets[id]; ok {
		return ticket, nil
	}
	return nil, errors.New("miss")
}

func TestGetFallsBackToCache(t *testing.T) {
	cached := &domain.Ticket{ID: "T-77", Email: "c@d.com"}
	svc := ticketing.NewService(ticketing.Dependencies{
		Cache:  &fakeCache{tickets: map[string]*domain.Ticket{"T-77": cached}},
		Logger: zap.NewNop(),
	})

	got, err := svc.Get(context.Background(), "T-77")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Email != "c@d.com" {
		t.Fatalf("cache fallback returned %+v", got)
	}
}

func TestConcurrentCreatesDoNotCorruptStore(t *testing.T) {
	svc := ticketing.NewService(ticketing.Dependencies{Logger: zap.NewNop()})

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Create(context.Background(), validInput()); err != nil {
				t.Errorf("Create failed: %v", err)
			}
		}()
	}
	wg.Wait()

	// Random ids may collide, which overwrites a map entry, so the store
	// can hold fewer than n tickets but never more.
	count := svc.Count()
	if count == 0 || count > n {
		t.Fatalf("store holds %d tickets after %d creates", count, n)
	}
	for _, ticket := range svc.List(context.Background()) {
		if !ticketIDPattern.MatchString(ticket.ID) {
			t.Fatalf("stored ticket has malformed id %q", ticket.ID)
		}
	}
}
