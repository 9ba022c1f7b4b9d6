package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/review-composer/internal/dto"
	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/google/uuid"
)

const (
	maxPolicyTitleLength = 100
	maxPolicyTextLength  = 5000
)

type PolicyUsecase struct {
	policies PolicyStore
}

func NewPolicyUsecase(policies PolicyStore) *PolicyUsecase {
	return &PolicyUsecase{policies: policies}
}

func (uc *PolicyUsecase) List(ctx context.Context, userID uuid.UUID) ([]model.EvaluationPolicy, error) {
	return uc.policies.List(ctx, userID)
}

func (uc *PolicyUsecase) Get(ctx context.Context, userID, id uuid.UUID) (*model.EvaluationPolicy, error) {
	return uc.policies.FindByID(ctx, userID, id)
}

func (uc *PolicyUsecase) Create(ctx context.Context, userID uuid.UUID, req dto.PolicyRequest) (*model.EvaluationPolicy, error) {
	if err := validatePolicy(req); err != nil {
		return nil, err
	}
	p := &model.EvaluationPolicy{
		UserID:     userID,
		Title:      strings.TrimSpace(req.Title),
		PolicyText: req.PolicyText,
	}
	if err := uc.policies.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create policy: %w", err)
	}
	return p, nil
}

func (uc *PolicyUsecase) Update(ctx context.Context, userID, id uuid.UUID, req dto.PolicyRequest) (*model.EvaluationPolicy, error) {
	if err := validatePolicy(req); err != nil {
		return nil, err
	}
	p := &model.EvaluationPolicy{
		ID:         id,
		UserID:     userID,
		Title:      strings.TrimSpace(req.Title),
		PolicyText: req.PolicyText,
	}
	if err := uc.policies.Update(ctx, p); err != nil {
		return nil, err
	}
	return uc.policies.FindByID(ctx, userID, id)
}

func (uc *PolicyUsecase) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return uc.policies.Delete(ctx, userID, id)
}

func validatePolicy(req dto.PolicyRequest) error {
	if err := requireLength("title", req.Title, 1, maxPolicyTitleLength); err != nil {
		return err
	}
	return requireLength("policy_text", req.PolicyText, 1, maxPolicyTextLength)
}
