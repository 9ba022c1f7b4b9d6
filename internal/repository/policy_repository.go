package repository

import (
	"context"

	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PolicyRepository struct {
	db *gorm.DB
}

func NewPolicyRepository(db *gorm.DB) *PolicyRepository {
	return &PolicyRepository{db}
}

func (r *PolicyRepository) List(ctx context.Context, userID uuid.UUID) ([]model.EvaluationPolicy, error) {
	var out []model.EvaluationPolicy
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

func (r *PolicyRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.EvaluationPolicy, error) {
	var p model.EvaluationPolicy
	err := r.db.WithContext(ctx).First(&p, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PolicyRepository) Create(ctx context.Context, p *model.EvaluationPolicy) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *PolicyRepository) Update(ctx context.Context, p *model.EvaluationPolicy) error {
	res := r.db.WithContext(ctx).
		Model(&model.EvaluationPolicy{}).
		Where("id = ? AND user_id = ?", p.ID, p.UserID).
		Updates(map[string]any{"title": p.Title, "policy_text": p.PolicyText})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PolicyRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.EvaluationPolicy{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
