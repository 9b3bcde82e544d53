package middleware

import (
	"crypto/subtle"
	"log/slog"

	"github.com/gofiber/fiber/v3"
)

// APIKeyHeader carries the admin key on mutating requests.
const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware guards admin routes with a static shared key.
type APIKeyMiddleware struct {
	key string
}

// NewAPIKeyMiddleware creates a new API key middleware. An empty key disables
// every guarded route.
func NewAPIKeyMiddleware(key string) *APIKeyMiddleware {
	return &APIKeyMiddleware{key: key}
}

// RequireAPIKey rejects requests without a matching X-API-Key header.
func (m *APIKeyMiddleware) RequireAPIKey(c fiber.Ctx) error {
	if m.key == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "admin API is disabled",
		})
	}

	got := c.Get(APIKeyHeader)
	if subtle.ConstantTimeCompare([]byte(got), []byte(m.key)) != 1 {
		slog.Warn("rejected admin request", "path", c.Path(), "ip", c.IP())
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status": "error",
			"error":  "invalid or missing API key",
		})
	}

	return c.Next()
}
