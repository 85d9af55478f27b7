package chatbot_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/spec-kit/chatbot-service/internal/chatbot"
	"github.com/spec-kit/chatbot-service/internal/domain"
	"github.com/spec-kit/chatbot-service/internal/sentiment"
	"github.com/spec-kit/chatbot-service/internal/ticketing"
)

// fakeTickets records commit inputs and optionally fails.
type fakeTickets struct {
	mu      sync.Mutex
	created []ticketing.CreateInput
	fail    bool
}

func (f *fakeTickets) Create(_ context.Context, input ticketing.CreateInput) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errors.New("ticket store unavailable")
	}
	f.created = append(f.created, input)
	return &domain.Ticket{
		ID:             "T-1234",
		FeedbackType:   input.FeedbackType,
		Location:       input.Location,
		Message:        input.Message,
		Email:          input.Email,
		Sentiment:      input.Sentiment,
		SentimentScore: input.SentimentScore,
		AssignedStaff:  ticketing.AssignStaff(input.Sentiment),
		Status:         domain.TicketStatusOpen,
	}, nil
}

func (f *fakeTickets) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func newTestEngine(t *testing.T) (*chatbot.Engine, *fakeTickets) {
	t.Helper()
	tickets := &fakeTickets{}
	engine := chatbot.NewEngine(sentiment.NewScorer(nil), tickets, zap.NewNop())
	return engine, tickets
}

// drive replays a script and returns the last reply.
func drive(t *testing.T, engine *chatbot.Engine, s *domain.Session, inputs ...string) string {
	t.Helper()
	var reply string
	for _, input := range inputs {
		reply = engine.Handle(context.Background(), input, s)
	}
	return reply
}

func TestMenuKeywordAtIdleKeepsStepNone(t *testing.T) {
	engine, _ := newTestEngine(t)
	s := domain.NewSession("u1")

	for _, input := range []string{"menu", "what food do you have", "burger please"} {
		reply := engine.Handle(context.Background(), input, s)
		if !strings.Contains(reply, "menu includes") {
			t.Fatalf("input %q: expected the menu info block, got %q", input, reply)
		}
		if s.Step != domain.StepNone {
			t.Fatalf("input %q: step = %s, want NONE", input, s.Step)
		}
	}
}

func TestUnknownInputShowsDefaultMenu(t *testing.T) {
	engine, _ := newTestEngine(t)
	s := domain.NewSession("u1")

	reply := engine.Handle(context.Background(), "xyzzy", s)
	if !strings.Contains(reply, "What would you like?") {
		t.Fatalf("expected default menu, got %q", reply)
	}
	if s.Step != domain.StepNone {
		t.Fatalf("step = %s, want NONE", s.Step)
	}
}

func TestHelpAsksForFeedbackType(t *testing.T) {
	engine, _ := newTestEngine(t)
	s := domain.NewSession("u1")

	reply := engine.Handle(context.Background(), "help", s)
	if !strings.Contains(reply, "feedback or report a complaint") {
		t.Fatalf("expected the type question, got %q", reply)
	}
	if s.Step != domain.StepAwaitingFeedbackType {
		t.Fatalf("step = %s, want AWAITING_FEEDBACK_TYPE", s.Step)
	}

	reply = engine.Handle(context.Background(), "complaint", s)
	if !strings.Contains(reply, "select a location") {
		t.Fatalf("expected the location prompt, got %q", reply)
	}
	if s.FeedbackType != domain.FeedbackTypeComplaint {
		t.Fatalf("feedbackType = %s, want complaint", s.FeedbackType)
	}
	if s.Step != domain.StepAwaitingLocation {
		t.Fatalf("step = %s, want AWAITING_LOCATION", s.Step)
	}
}

func TestLocationSynonymsResolveToCanonicalBranch(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"1", chatbot.BranchMilleniumWalkway},
		{"millenium", chatbot.BranchMilleniumWalkway},
		{"millennium please", chatbot.BranchMilleniumWalkway},
		{"the walkway one", chatbot.BranchMilleniumWalkway},
		{"2", chatbot.BranchCharlotteWay},
		{"charlotte", chatbot.BranchCharlotteWay},
		{"3", chatbot.BranchDundrum},
		{"dundrum", chatbot.BranchDundrum},
		{"the shopping centre", chatbot.BranchDundrum},
		{"4", chatbot.BranchLiffeyValley},
		{"liffey", chatbot.BranchLiffeyValley},
		{"valley", chatbot.BranchLiffeyValley},
	}

	for _, tc := range cases {
		engine, _ := newTestEngine(t)
		s := domain.NewSession("u1")
		drive(t, engine, s, "feedback")

		engine.Handle(context.Background(), tc.input, s)
		if s.Location != tc.want {
			t.Errorf("input %q: location = %q, want %q", tc.input, s.Location, tc.want)
		}
		if s.Step != domain.StepAwaitingMessage {
			t.Errorf("input %q: step = %s, want AWAITING_MESSAGE", tc.input, s.Step)
		}
	}
}

func TestLocationNoMatchLeavesSessionUnchanged(t *testing.T) {
	engine, _ := newTestEngine(t)
	s := domain.NewSession("u1")
	drive(t, engine, s, "feedback")

	before := *s
	reply := engine.Handle(context.Background(), "timbuktu", s)
	if !strings.Contains(reply, "valid location") {
		t.Fatalf("expected the location re-prompt, got %q", reply)
	}
	if diff := cmp.Diff(before, *s); diff != "" {
		t.Fatalf("session mutated on invalid location (-before +after):\n%s", diff)
	}
}

func TestMessageStoredVerbatimWithSentiment(t *testing.T) {
	engine, _ := newTestEngine(t)
	s := domain.NewSession("u1")
	drive(t, engine, s, "feedback", "2")

	reply := engine.Handle(context.Background(), "The Staff Were GREAT!", s)
	if s.Message != "The Staff Were GREAT!" {
		t.Fatalf("message not stored verbatim: %q", s.Message)
	}
	if s.Sentiment != domain.SentimentPositive {
		t.Fatalf("sentiment = %s, want positive", s.Sentiment)
	}
	if s.Step != domain.StepAwaitingEmail {
		t.Fatalf("step = %s, want AWAITING_EMAIL", s.Step)
	}
	if !strings.Contains(reply, "happy you enjoyed") {
		t.Fatalf("expected the positive acknowledgement, got %q", reply)
	}
}

func TestNegativeMessageGetsApology(t *testing.T) {
	engine, _ := newTestEngine(t)
	s := domain.NewSession("u1")
	drive(t, engine, s, "complaint", "1")

	reply := engine.Handle(context.Background(), "terrible slow service", s)
	if s.Sentiment != domain.SentimentNegative {
		t.Fatalf("sentiment = %s, want negative", s.Sentiment)
	}
	if !strings.Contains(reply, "sorry to hear") {
		t.Fatalf("expected the apology acknowledgement, got %q", reply)
	}
}

func TestInvalidEmailIsIdempotentAndCreatesNoTicket(t *testing.T) {
	engine, tickets := newTestEngine(t)
	s := domain.NewSession("u1")
	drive(t, engine, s, "feedback", "2", "great service")

	first := engine.Handle(context.Background(), "not-an-email", s)
	second := engine.Handle(context.Background(), "not-an-email", s)
	if first != second {
		t.Fatalf("replaying the same invalid email changed the reply: %q vs %q", first, second)
	}
	if !strings.Contains(first, "valid email") {
		t.Fatalf("expected the invalid-email re-prompt, got %q", first)
	}
	if s.Step != domain.StepAwaitingEmail {
		t.Fatalf("step = %s, want AWAITING_EMAIL", s.Step)
	}
	if tickets.count() != 0 {
		t.Fatalf("tickets created = %d, want 0", tickets.count())
	}
}

func TestValidEmailCommitsExactlyOnceAndClearsFields(t *testing.T) {
	engine, tickets := newTestEngine(t)
	s := domain.NewSession("u1")
	drive(t, engine, s, "feedback", "2", "great service")

	reply := engine.Handle(context.Background(), "a@b.com", s)
	if tickets.count() != 1 {
		t.Fatalf("tickets created = %d, want 1", tickets.count())
	}
	if !strings.Contains(reply, "T-1234") {
		t.Fatalf("reply does not contain the ticket id: %q", reply)
	}

	want := ticketing.CreateInput{
		FeedbackType:   domain.FeedbackTypeFeedback,
		Location:       chatbot.BranchCharlotteWay,
		Message:        "great service",
		Email:          "a@b.com",
		Sentiment:      domain.SentimentPositive,
		SentimentScore: 3,
	}
	if diff := cmp.Diff(want, tickets.created[0]); diff != "" {
		t.Fatalf("commit input mismatch (-want +got):\n%s", diff)
	}

	cleared := domain.Session{UserID: "u1", Step: domain.StepAwaitingContinuation}
	if diff := cmp.Diff(cleared, *s); diff != "" {
		t.Fatalf("session not cleared after commit (-want +got):\n%s", diff)
	}
}

func TestFullFlowRoundTrip(t *testing.T) {
	tickets := ticketing.NewService(ticketing.Dependencies{Logger: zap.NewNop()})
	engine := chatbot.NewEngine(sentiment.NewScorer(nil), tickets, zap.NewNop())
	s := domain.NewSession("u1")

	reply := drive(t, engine, s, "feedback", "2", "great service", "a@b.com")
	if tickets.Count() != 1 {
		t.Fatalf("tickets stored = %d, want 1", tickets.Count())
	}
	stored := tickets.List(context.Background())[0]
	if stored.FeedbackType != domain.FeedbackTypeFeedback {
		t.Fatalf("feedbackType = %s, want feedback", stored.FeedbackType)
	}
	if stored.Location != chatbot.BranchCharlotteWay {
		t.Fatalf("location = %q, want %q", stored.Location, chatbot.BranchCharlotteWay)
	}
	if stored.Sentiment != domain.SentimentPositive {
		t.Fatalf("sentiment = %s, want positive", stored.Sentiment)
	}
	if !strings.Contains(reply, stored.ID) {
		t.Fatalf("commit reply does not contain ticket id %s: %q", stored.ID, reply)
	}

	reply = engine.Handle(context.Background(), "no", s)
	if reply != chatbot.ReplyTerminal {
		t.Fatalf("expected the terminal reply, got %q", reply)
	}
	if tickets.Count() != 1 {
		t.Fatalf("tickets stored after terminal = %d, want 1", tickets.Count())
	}
}

func TestContinuationBranches(t *testing.T) {
	engine, _ := newTestEngine(t)
	s := domain.NewSession("u1")
	drive(t, engine, s, "feedback", "2", "great service", "a@b.com")

	if s.Step != domain.StepAwaitingContinuation {
		t.Fatalf("step = %s, want AWAITING_CONTINUATION", s.Step)
	}

	reply := engine.Handle(context.Background(), "maybe", s)
	if !strings.Contains(reply, "'yes' to continue") {
		t.Fatalf("expected the continuation re-prompt, got %q", reply)
	}
	if s.Step != domain.StepAwaitingContinuation {
		t.Fatalf("step changed on re-prompt: %s", s.Step)
	}

	reply = engine.Handle(context.Background(), "yes", s)
	if !strings.Contains(reply, "What else can I help you with?") {
		t.Fatalf("expected the continue menu, got %q", reply)
	}
	if s.Step != domain.StepNone {
		t.Fatalf("step = %s, want NONE after affirm", s.Step)
	}
}

func TestTicketFailureLeavesSessionRetryable(t *testing.T) {
	engine, tickets := newTestEngine(t)
	s := domain.NewSession("u1")
	drive(t, engine, s, "feedback", "2", "great service")

	tickets.fail = true
	reply := engine.Handle(context.Background(), "a@b.com", s)
	if reply != chatbot.ReplyRetry {
		t.Fatalf("expected the retry reply, got %q", reply)
	}
	if s.Step != domain.StepAwaitingEmail {
		t.Fatalf("step = %s, want AWAITING_EMAIL after failure", s.Step)
	}

	tickets.fail = false
	reply = engine.Handle(context.Background(), "a@b.com", s)
	if tickets.count() != 1 {
		t.Fatalf("tickets created = %d, want 1 after retry", tickets.count())
	}
	if !strings.Contains(reply, "submitted") {
		t.Fatalf("expected the commit summary, got %q", reply)
	}
}

func TestConcurrentSessionsDoNotLeakFields(t *testing.T) {
	tickets := ticketing.NewService(ticketing.Dependencies{Logger: zap.NewNop()})
	engine := chatbot.NewEngine(sentiment.NewScorer(nil), tickets, zap.NewNop())

	flows := []struct {
		user     string
		location string
		message  string
		email    string
	}{
		{"u1", "2", "great service", "one@example.com"},
		{"u2", "liffey", "terrible slow wait", "two@example.com"},
	}

	var wg sync.WaitGroup
	for _, flow := range flows {
		wg.Add(1)
		go func(user, location, message, email string) {
			defer wg.Done()
			s := domain.NewSession(user)
			drive(t, engine, s, "feedback", location, message, email)
			if s.Step != domain.StepAwaitingContinuation {
				t.Errorf("user %s: step = %s, want AWAITING_CONTINUATION", user, s.Step)
			}
		}(flow.user, flow.location, flow.message, flow.email)
	}
	wg.Wait()

	if tickets.Count() != 2 {
		t.Fatalf("tickets stored = %d, want 2", tickets.Count())
	}
	byEmail := make(map[string]string)
	for _, ticket := range tickets.List(context.Background()) {
		byEmail[ticket.Email] = ticket.Location
	}
	if byEmail["one@example.com"] != chatbot.BranchCharlotteWay {
		t.Fatalf("u1 ticket location = %q, fields leaked between sessions", byEmail["one@example.com"])
	}
	if byEmail["two@example.com"] != chatbot.BranchLiffeyValley {
		t.Fatalf("u2 ticket location = %q, fields leaked between sessions", byEmail["two@example.com"])
	}
}
