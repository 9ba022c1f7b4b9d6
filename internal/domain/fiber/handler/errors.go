package handler

import (
	"errors"

	"github.com/fadilmartias/review-composer/internal/logger"
	"github.com/fadilmartias/review-composer/internal/usecase"
	"github.com/fadilmartias/review-composer/internal/util"
	"github.com/fadilmartias/review-composer/internal/verdict"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func statusFromError(err error) int {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, usecase.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, usecase.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, verdict.ErrTaskFinalized),
		errors.Is(err, verdict.ErrUnresolvedReview),
		errors.Is(err, verdict.ErrInvalidTransition),
		errors.Is(err, verdict.ErrMissingVerdict):
		return fiber.StatusConflict
	case errors.Is(err, usecase.ErrDraftFailed):
		return fiber.StatusBadGateway
	case errors.Is(err, usecase.ErrSimilarityUnavailable):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// respondError maps a usecase error onto the error envelope. Client errors
// carry the error text as the message. Server errors are logged and use
// fallback, except 503 whose text never includes upstream detail.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	code := statusFromError(err)
	message := err.Error()
	if code >= fiber.StatusInternalServerError && code != fiber.StatusServiceUnavailable {
		logger.Ctx(c.UserContext()).Error(fallback, zap.Error(err), zap.String("path", c.Path()))
		message = fallback
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    code,
		Message: message,
	}, err)
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusBadRequest,
		Message: message,
	}, err)
}
