package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/chatbot-service/pkg/util/errorutil"
)

// APIKeyHeader carries the shared credential on single-shot calls.
const APIKeyHeader = "X-API-Key"

// RequireAPIKey enforces the shared credential on every single-shot call.
// Streaming connections authenticate once instead (handshake token or
// first inbound frame); this middleware is for the request/response
// surface only.
func RequireAPIKey(keyring *Keyring) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := keyring.Verify(c.Get(APIKeyHeader)); err != nil {
			return apperrors.NewForbidden("invalid api key")
		}
		return c.Next()
	}
}
