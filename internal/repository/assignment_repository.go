package repository

import (
	"context"

	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db}
}

func (r *AssignmentRepository) List(ctx context.Context) ([]model.Assignment, error) {
	var out []model.Assignment
	err := r.db.WithContext(ctx).Order("code asc").Find(&out).Error
	return out, err
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	var a model.Assignment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *AssignmentRepository) FindByCode(ctx context.Context, code string) (*model.Assignment, error) {
	var a model.Assignment
	if err := r.db.WithContext(ctx).First(&a, "code = ?", code).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *AssignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	return translate(r.db.WithContext(ctx).Create(a).Error)
}
