package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/review-composer/internal/config"
	"github.com/fadilmartias/review-composer/internal/logger"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var (
	ErrDrafterNotConfigured = errors.New("drafter is not configured")
	ErrEmptyDraft           = errors.New("no response from drafter")
)

// Drafter produces the raw JSON verdict for a submission.
type Drafter interface {
	Draft(ctx context.Context, req DraftRequest) (string, error)
}

type OpenRouterService struct {
	client      *resty.Client
	apiKey      string
	model       string
	temperature float64
}

func NewOpenRouterService(cfg *config.OpenRouterConfig, temperature float64) *OpenRouterService {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetRetryCount(2)
	return &OpenRouterService{
		client:      client,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: temperature,
	}
}

func (s *OpenRouterService) Draft(ctx context.Context, req DraftRequest) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("%w: OPENROUTER_API_KEY not set", ErrDrafterNotConfigured)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.apiKey).
		SetBody(map[string]any{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "system", "content": draftSystemPrompt},
				{"role": "user", "content": buildDraftUserPrompt(req)},
			},
			"temperature":     s.temperature,
			"response_format": map[string]string{"type": "json_object"},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}
	if resp.IsError() {
		msg := gjson.Get(resp.String(), "error.message").String()
		logger.Ctx(ctx).Warn("openrouter returned error",
			zap.Int("status", resp.StatusCode()),
			zap.String("message", msg))
		return "", fmt.Errorf("openrouter returned status %d: %s", resp.StatusCode(), msg)
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyDraft
	}
	logger.Ctx(ctx).Debug("openrouter draft received",
		zap.String("model", s.model),
		zap.Int64("total_tokens", gjson.Get(resp.String(), "usage.total_tokens").Int()))
	return text, nil
}
