package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/xid"
)

const (
	ContextKeyRequestID = "requestid"
	HeaderRequestID     = "X-Midgard-Request-ID"
)

func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := xid.New().String()
		c.Locals(ContextKeyRequestID, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}
