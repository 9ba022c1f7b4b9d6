package middleware

import (
	"errors"
	"strings"

	"github.com/fadilmartias/review-composer/internal/logger"
	"github.com/fadilmartias/review-composer/internal/service"
	"github.com/fadilmartias/review-composer/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userIDLocal = "user_id"

type TokenParser interface {
	Parse(raw string) (uuid.UUID, error)
}

// Auth requires a bearer access token and stores the caller's id in the
// request locals and the user context.
func Auth(tokens TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "missing bearer token",
			})
		}
		userID, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			message := "invalid token"
			if errors.Is(err, service.ErrTokenExpired) {
				message = "token expired"
			}
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: message,
			}, err)
		}
		c.Locals(userIDLocal, userID)
		c.SetUserContext(logger.WithUserID(c.UserContext(), userID.String()))
		return c.Next()
	}
}

// UserID returns the id stored by Auth, or uuid.Nil on unauthenticated routes.
func UserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(userIDLocal).(uuid.UUID)
	return id
}
