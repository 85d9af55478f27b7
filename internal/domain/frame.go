package domain

// BotUserID is the sender id used on every frame the engine emits.
const BotUserID = "bot"

// InboundFrame is one message received on the duplex channel. Text is
// untrusted free text: it is copied verbatim into the session message and
// never interpreted. APIKey is only consulted on the first frame of a
// stream that did not authenticate at handshake time.
type InboundFrame struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
	APIKey string `json:"api_key,omitempty"`
}

// OutboundFrame is one message written to the duplex channel.
type OutboundFrame struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}
