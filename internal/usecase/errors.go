package usecase

import (
	"errors"
	"fmt"

	"github.com/fadilmartias/review-composer/internal/repository"
)

var (
	ErrNotFound              = repository.ErrNotFound
	ErrValidation            = errors.New("validation failed")
	ErrUnauthorized          = errors.New("invalid email or password")
	ErrEmailTaken            = errors.New("email is already registered")
	ErrDraftFailed           = errors.New("AI draft generation failed")
	ErrSimilarityUnavailable = errors.New("similarity search is not configured")
)

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
