package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/fadilmartias/review-composer/internal/logger"
	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AssignmentUsecase struct {
	assignments AssignmentStore
}

func NewAssignmentUsecase(assignments AssignmentStore) *AssignmentUsecase {
	return &AssignmentUsecase{assignments: assignments}
}

func (uc *AssignmentUsecase) List(ctx context.Context) ([]model.Assignment, error) {
	return uc.assignments.List(ctx)
}

func (uc *AssignmentUsecase) Get(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	return uc.assignments.FindByID(ctx, id)
}

// Seed inserts the given assignments, skipping codes that already exist.
func (uc *AssignmentUsecase) Seed(ctx context.Context, items []model.Assignment) (created, skipped int, err error) {
	for i := range items {
		a := items[i]
		_, err := uc.assignments.FindByCode(ctx, a.Code)
		if err == nil {
			logger.Ctx(ctx).Info("assignment exists, skipped", zap.String("code", a.Code))
			skipped++
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return created, skipped, fmt.Errorf("lookup %s: %w", a.Code, err)
		}
		if err := uc.assignments.Create(ctx, &a); err != nil {
			return created, skipped, fmt.Errorf("create %s: %w", a.Code, err)
		}
		logger.Ctx(ctx).Info("assignment created", zap.String("code", a.Code), zap.String("title", a.Title))
		created++
	}
	return created, skipped, nil
}

// DefaultAssignments is the built-in catalog used by the seed command.
var DefaultAssignments = []model.Assignment{
	{
		Code:  "9-6",
		Title: "【提出課題①】LengthBasedExampleSelector",
		Description: `この課題では、LengthBasedExampleSelectorを実装します。

【要件】
1. 入力文字列の長さに基づいて適切な例を選択する
2. 最大トークン数を超えないように例を選択する
3. 選択された例を返す

【評価基準】
- 要件1〜3をすべて満たしていること
- コードが動作すること`,
	},
}
