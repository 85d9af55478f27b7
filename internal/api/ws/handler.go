package ws

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/chatbot-service/internal/api/dto"
	"github.com/spec-kit/chatbot-service/internal/auth"
	"github.com/spec-kit/chatbot-service/internal/chat"
	"github.com/spec-kit/chatbot-service/internal/domain"
)

// Upgrade gates the websocket route: non-upgrade requests get a 426.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler bridges browser websocket connections onto the channel adapter.
// A connection presenting a valid chat token in the handshake query is
// preauthenticated; otherwise the first inbound frame must carry the
// shared credential.
func Handler(adapter *chat.Adapter, tokens *auth.TokenManager, logger *zap.Logger) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID := "web-user"
		preauthenticated := false
		if token := strings.TrimSpace(conn.Query("token")); token != "" {
			claims, err := tokens.ParseChatToken(token)
			if err != nil {
				logger.Warn("websocket token rejected", zap.Error(err))
			} else {
				preauthenticated = true
				if claims.UserID != "" {
					userID = claims.UserID
				}
			}
		}

		// Run blocks for the connection lifetime; its return closes the
		// stream, which in turn unblocks any pending read.
		adapter.Run(context.Background(), userID, newStream(conn, userID), preauthenticated)
	})
}

// stream adapts one websocket connection to chat.MessageStream, mapping
// between the core frames and the browser wire shapes.
type stream struct {
	conn      *websocket.Conn
	userID    string
	closeOnce sync.Once
	closeErr  error
}

func newStream(conn *websocket.Conn, userID string) *stream {
	return &stream{conn: conn, userID: userID}
}

// Recv blocks for the next browser message.
func (s *stream) Recv() (domain.InboundFrame, error) {
	var inbound dto.BridgeInbound
	if err := s.conn.ReadJSON(&inbound); err != nil {
		return domain.InboundFrame{}, err
	}
	return domain.InboundFrame{
		UserID: s.userID,
		Text:   strings.TrimSpace(inbound.Text),
		APIKey: inbound.APIKey,
	}, nil
}

// Send adapts a core frame to the bridge shape, stamping the time.
func (s *stream) Send(frame domain.OutboundFrame) error {
	return s.conn.WriteJSON(dto.BridgeFrame{
		Sender:    frame.UserID,
		Text:      frame.Text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Close shuts the connection down once; later calls return the first
// outcome.
func (s *stream) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}
