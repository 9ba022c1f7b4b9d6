package usecase

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

func requireLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n < min {
		return validationErrorf("%s is required", field)
	}
	if n > max {
		return validationErrorf("%s must be at most %d characters", field, max)
	}
	return nil
}

// optionalUUID parses an id that may be sent as an empty string.
func optionalUUID(field, raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, validationErrorf("%s is not a valid id", field)
	}
	return &id, nil
}

func optionalURL(field, raw string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, validationErrorf("%s must be an http(s) URL", field)
	}
	return &raw, nil
}
