package domain

// Step enumerates positions in the feedback-collection dialogue.
type Step string

const (
	StepNone                 Step = "NONE"
	StepAwaitingFeedbackType Step = "AWAITING_FEEDBACK_TYPE"
	StepAwaitingLocation     Step = "AWAITING_LOCATION"
	StepAwaitingMessage      Step = "AWAITING_MESSAGE"
	StepAwaitingEmail        Step = "AWAITING_EMAIL"
	StepAwaitingContinuation Step = "AWAITING_CONTINUATION"
)

// Session holds per-connection dialogue state. It is owned by exactly one
// connection and must never be shared across connections. Fields populate
// strictly in the order feedbackType, location, message, sentiment, email
// and are cleared together when a ticket is committed.
type Session struct {
	UserID       string
	Step         Step
	FeedbackType FeedbackType
	Location     string
	Message      string
	Sentiment    SentimentLabel
	Email        string
}

// NewSession returns a session positioned at the start of the dialogue.
func NewSession(userID string) *Session {
	return &Session{UserID: userID, Step: StepNone}
}

// Reset clears every collected field and returns the session to the given
// step. Commit calls this with StepAwaitingContinuation; everything else
// uses StepNone.
func (s *Session) Reset(step Step) {
	s.Step = step
	s.FeedbackType = ""
	s.Location = ""
	s.Message = ""
	s.Sentiment = ""
	s.Email = ""
}
