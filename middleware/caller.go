package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UnknownCaller is the bucket for requests with no forwarded-address header
const UnknownCaller = "unknown"

// forwardHeaders is checked in order; the first present header wins
var forwardHeaders = []string{"X-Forwarded-For", "X-Real-Ip"}

// CallerKey extracts the rate-limit bucket key for a request from its
// forwarded-address headers and stores it in locals for downstream handlers.
func CallerKey(c *fiber.Ctx) error {
	key := UnknownCaller
	for _, h := range forwardHeaders {
		if v := c.Get(h); v != "" {
			// X-Forwarded-For may carry a chain; the first hop is the caller
			key = strings.TrimSpace(strings.Split(v, ",")[0])
			break
		}
	}
	c.Locals("caller_key", key)
	return c.Next()
}

// CallerKeyFromCtx reads the key stored by CallerKey, defaulting to unknown
func CallerKeyFromCtx(c *fiber.Ctx) string {
	if key, ok := c.Locals("caller_key").(string); ok && key != "" {
		return key
	}
	return UnknownCaller
}
