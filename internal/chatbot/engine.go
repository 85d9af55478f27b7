package chatbot

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/chatbot-service/internal/domain"
	"github.com/spec-kit/chatbot-service/internal/sentiment"
	"github.com/spec-kit/chatbot-service/internal/ticketing"
)

// emailPattern gates the AWAITING_EMAIL step. Anything that fails it
// leaves the session untouched.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// TicketCreator commits a completed feedback flow. Implemented by
// ticketing.Service; test doubles stand in for it.
type TicketCreator interface {
	Create(ctx context.Context, input ticketing.CreateInput) (*domain.Ticket, error)
}

// Engine drives the per-session dialogue state machine. It is stateless
// itself: all conversational position lives in the Session, so a single
// engine serves every connection. Handle must be called sequentially for
// any one session; distinct sessions may be handled concurrently.
type Engine struct {
	scorer  *sentiment.Scorer
	tickets TicketCreator
	logger  *zap.Logger
}

// NewEngine constructs the engine.
func NewEngine(scorer *sentiment.Scorer, tickets TicketCreator, logger *zap.Logger) *Engine {
	return &Engine{scorer: scorer, tickets: tickets, logger: logger}
}

// Handle consumes one inbound message, mutates the session, and returns
// exactly one reply. It never panics out: unexpected failures degrade to
// a generic retry reply with the session left at its pre-failure step.
func (e *Engine) Handle(ctx context.Context, text string, s *domain.Session) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("dialogue handler panicked",
				zap.Any("panic", r),
				zap.String("user_id", s.UserID),
				zap.String("step", string(s.Step)))
			reply = ReplyRetry
		}
	}()

	normalized := strings.ToLower(strings.TrimSpace(text))

	if s.Step == domain.StepAwaitingContinuation {
		return e.handleContinuation(normalized, s)
	}

	// The feedback flow entry points only apply before any field has been
	// collected; once the flow is underway the step handlers own the input.
	if s.Step == domain.StepNone || s.Step == domain.StepAwaitingFeedbackType {
		if reply, ok := e.handleFlowEntry(normalized, s); ok {
			return reply
		}
	}

	switch s.Step {
	case domain.StepAwaitingLocation:
		return e.handleLocation(normalized, s)
	case domain.StepAwaitingMessage:
		return e.handleMessage(text, s)
	case domain.StepAwaitingEmail:
		return e.handleEmail(ctx, normalized, s)
	}

	return e.handleIdle(normalized)
}

func (e *Engine) handleContinuation(normalized string, s *domain.Session) string {
	switch Classify(normalized) {
	case IntentAffirm:
		s.Step = domain.StepNone
		return replyContinueMenu
	case IntentDeny:
		return ReplyTerminal
	default:
		return replyContinuationPrompt
	}
}

// handleFlowEntry starts or advances the feedback flow from its entry
// words. The boolean reports whether the input was consumed.
func (e *Engine) handleFlowEntry(normalized string, s *domain.Session) (string, bool) {
	switch normalized {
	case "feedback", "complaint":
		s.FeedbackType = domain.FeedbackType(normalized)
		s.Step = domain.StepAwaitingLocation
		return replyAskLocation, true
	}
	if Classify(normalized) == IntentHelp {
		s.Step = domain.StepAwaitingFeedbackType
		return replyAskFeedbackType, true
	}
	if s.Step == domain.StepAwaitingFeedbackType {
		// Anything other than the two literal answers re-asks the question.
		return replyAskFeedbackType, true
	}
	return "", false
}

func (e *Engine) handleLocation(normalized string, s *domain.Session) string {
	branch, ok := resolveLocation(normalized)
	if !ok {
		return replyInvalidLocation
	}
	s.Location = branch
	s.Step = domain.StepAwaitingMessage
	return replyDescribePrompt(s.FeedbackType)
}

// handleMessage stores the feedback body verbatim (never lower-cased) and
// computes its sentiment.
func (e *Engine) handleMessage(text string, s *domain.Session) string {
	if strings.TrimSpace(text) == "" {
		return replyDescribePrompt(s.FeedbackType)
	}
	result := e.scorer.Score(text)
	s.Message = text
	s.Sentiment = result.Label
	s.Step = domain.StepAwaitingEmail
	return replyMessageAck(result.Label)
}

// handleEmail validates the address and, on success, commits: one ticket
// is created, the notification request is dispatched downstream, and all
// collected fields are cleared atomically with the step change.
func (e *Engine) handleEmail(ctx context.Context, normalized string, s *domain.Session) string {
	if !emailPattern.MatchString(normalized) {
		return replyInvalidEmail
	}

	result := e.scorer.Score(s.Message)
	ticket, err := e.tickets.Create(ctx, ticketing.CreateInput{
		FeedbackType:   s.FeedbackType,
		Location:       s.Location,
		Message:        s.Message,
		Email:          normalized,
		Sentiment:      result.Label,
		SentimentScore: result.Score,
	})
	if err != nil {
		// Session untouched so the user can resubmit the same email.
		e.logger.Error("ticket creation failed",
			zap.Error(err),
			zap.String("user_id", s.UserID))
		return ReplyRetry
	}

	summary := replyTicketSummary(ticket)
	s.Reset(domain.StepAwaitingContinuation)
	return summary
}

func (e *Engine) handleIdle(normalized string) string {
	switch Classify(normalized) {
	case IntentMenu:
		return replyMenuInfo
	case IntentHours:
		return replyHoursInfo
	case IntentLocation:
		return replyLocationsInfo
	default:
		return replyDefaultMenu
	}
}
