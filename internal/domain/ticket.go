package domain

import "time"

// FeedbackType distinguishes the two kinds of submissions a flow collects.
type FeedbackType string

const (
	FeedbackTypeFeedback  FeedbackType = "feedback"
	FeedbackTypeComplaint FeedbackType = "complaint"
)

// Valid reports whether t is one of the supported feedback types.
func (t FeedbackType) Valid() bool {
	return t == FeedbackTypeFeedback || t == FeedbackTypeComplaint
}

// SentimentLabel classifies the tone of a feedback message.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// Staff assignment targets. Negative sentiment escalates to the senior
// manager; everything else goes to a team member.
const (
	StaffSeniorManager = "Senior Manager"
	StaffTeamMember    = "Team Member"
)

// TicketStatus is the lifecycle state reported for a ticket. The core only
// ever produces open tickets; the status field exists for the REST surface
// and the archive.
type TicketStatus string

const TicketStatusOpen TicketStatus = "open"

// Ticket is the record produced when a feedback flow completes. Immutable
// after creation. Ids follow the form T-<n> with n in [0,10000); ids are
// not checked for uniqueness, collisions are an accepted limitation.
type Ticket struct {
	ID             string
	FeedbackType   FeedbackType
	Location       string
	Message        string
	Email          string
	Sentiment      SentimentLabel
	SentimentScore int
	AssignedStaff  string
	Status         TicketStatus
	CreatedAt      time.Time
}

// NotificationRequest is handed to the notification queue on commit. The
// dialogue engine never awaits the outcome.
type NotificationRequest struct {
	Ticket Ticket
}
