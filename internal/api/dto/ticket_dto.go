package dto

// CreateTicketRequest is the direct ticket creation payload.
type CreateTicketRequest struct {
	Type     string `json:"type"`
	Location string `json:"location"`
	Message  string `json:"message"`
	Email    string `json:"email"`
}

// TicketCommitResponse mirrors the commit output contract.
type TicketCommitResponse struct {
	TicketID       string `json:"ticket_id"`
	Status         string `json:"status"`
	StaffAssigned  string `json:"staff_assigned"`
	SentimentScore int    `json:"sentiment_score"`
	SentimentLabel string `json:"sentiment_label"`
}

// TicketSummary is the listing/lookup shape.
type TicketSummary struct {
	ID             string `json:"id"`
	FeedbackType   string `json:"feedback_type"`
	Location       string `json:"location"`
	Message        string `json:"message"`
	Email          string `json:"email"`
	Sentiment      string `json:"sentiment"`
	SentimentScore int    `json:"sentiment_score"`
	AssignedStaff  string `json:"assigned_staff"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}
