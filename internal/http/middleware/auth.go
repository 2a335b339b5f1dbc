package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	// UserIDHeader carries the authenticated user's ID, set by the gateway
	// in front of this service.
	UserIDHeader = "X-User-ID"
	// UserIDLocalKey is the key used to store the user ID in Fiber's context locals.
	UserIDLocalKey = "user_id"
)

// Auth requires every request to carry an X-User-ID header and exposes its
// value to downstream handlers via context locals. Requests without one are
// rejected with 401.
func Auth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(UserIDHeader)
		if id == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
		}

		c.Locals(UserIDLocalKey, id)
		return c.Next()
	}
}

// UserIDFromCtx returns the authenticated user ID stored by Auth, or "" when
// the middleware did not run.
func UserIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(UserIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
