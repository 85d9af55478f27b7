package chat

import "github.com/spec-kit/chatbot-service/internal/domain"

// MessageStream is one duplex connection as the adapter sees it. Concrete
// transports (the websocket bridge, test fakes) implement it.
//
// Recv blocks until the next inbound frame and returns an error on
// transport end or failure. Send writes one outbound frame. Close shuts
// the outbound side and must be idempotent.
type MessageStream interface {
	Recv() (domain.InboundFrame, error)
	Send(domain.OutboundFrame) error
	Close() error
}
