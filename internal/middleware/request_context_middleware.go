package middleware

import (
	"github.com/fadilmartias/review-composer/internal/logger"
	"github.com/gofiber/fiber/v2"
)

// RequestContext copies the id set by the requestid middleware into the
// user context so usecase logs carry it.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals("requestid").(string); ok && id != "" {
			c.SetUserContext(logger.WithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}
