package chat

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/chatbot-service/internal/chatbot"
	"github.com/spec-kit/chatbot-service/internal/domain"
	"github.com/spec-kit/chatbot-service/internal/observability"
)

// CredentialVerifier checks the shared credential carried by the first
// inbound frame of a stream that did not authenticate at handshake time.
type CredentialVerifier interface {
	Verify(presented string) error
}

// Adapter binds the dialogue engine to duplex message streams. It is
// shared across connections; all per-connection state lives in the conn
// struct created by Run.
type Adapter struct {
	engine  *chatbot.Engine
	keyring CredentialVerifier
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewAdapter constructs the adapter.
func NewAdapter(engine *chatbot.Engine, keyring CredentialVerifier, logger *zap.Logger, metrics *observability.Metrics) *Adapter {
	return &Adapter{engine: engine, keyring: keyring, logger: logger, metrics: metrics}
}

// conn pairs one session with one stream handle for the lifetime of a
// connection. Neither is ever shared with another connection.
type conn struct {
	id            string
	stream        MessageStream
	session       *domain.Session
	authenticated bool
}

// Run services one connection until the dialogue ends or the transport
// fails. It sends the greeting, then answers every inbound frame with
// exactly one reply, in order. preauthenticated marks streams whose
// handshake already verified the credential; otherwise the first inbound
// frame must carry it.
//
// Run blocks for the life of the connection; callers start one goroutine
// per connection. The session is discarded when Run returns, so a flow
// abandoned mid-way leaves no ticket behind.
func (a *Adapter) Run(ctx context.Context, userID string, stream MessageStream, preauthenticated bool) {
	c := &conn{
		id:            uuid.NewString(),
		stream:        stream,
		session:       domain.NewSession(userID),
		authenticated: preauthenticated,
	}
	defer c.stream.Close()

	a.logger.Info("chat connection opened",
		zap.String("conn_id", c.id),
		zap.String("user_id", userID))

	// The greeting is written directly: it does not pass through the
	// engine and the session stays at its initial step.
	if err := c.stream.Send(domain.OutboundFrame{UserID: domain.BotUserID, Text: chatbot.ReplyGreeting}); err != nil {
		a.logger.Warn("greeting send failed", zap.String("conn_id", c.id), zap.Error(err))
		return
	}

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("chat connection cancelled", zap.String("conn_id", c.id))
			return
		default:
		}

		frame, err := c.stream.Recv()
		if err != nil {
			a.logger.Info("chat connection closed",
				zap.String("conn_id", c.id),
				zap.String("reason", err.Error()))
			return
		}

		if !c.authenticated {
			if err := a.keyring.Verify(frame.APIKey); err != nil {
				a.logger.Warn("stream credential rejected", zap.String("conn_id", c.id))
				_ = c.stream.Send(domain.OutboundFrame{UserID: domain.BotUserID, Text: chatbot.ReplyPermissionDenied})
				return
			}
			c.authenticated = true
		}

		reply := a.engine.Handle(ctx, frame.Text, c.session)
		a.metrics.RecordFrame()

		if err := c.stream.Send(domain.OutboundFrame{UserID: domain.BotUserID, Text: reply}); err != nil {
			a.logger.Warn("reply send failed", zap.String("conn_id", c.id), zap.Error(err))
			return
		}

		if reply == chatbot.ReplyTerminal {
			a.logger.Info("chat conversation ended", zap.String("conn_id", c.id))
			return
		}
	}
}
