package dto

// ChatRequest is the single-shot facade payload.
type ChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

// ChatResponse carries the bot reply for a single-shot call.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ChatTokenRequest asks for a websocket chat token.
type ChatTokenRequest struct {
	UserID string `json:"user_id,omitempty"`
}

// ChatTokenResponse returns the signed token the browser presents at
// websocket handshake time.
type ChatTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// BridgeFrame is the browser-facing wire shape of one bot message.
type BridgeFrame struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// BridgeInbound is the browser-facing wire shape of one user message.
type BridgeInbound struct {
	Text   string `json:"text"`
	APIKey string `json:"api_key,omitempty"`
}
