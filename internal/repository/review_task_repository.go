package repository

import (
	"context"
	"fmt"

	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/fadilmartias/review-composer/internal/verdict"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewTaskRepository struct {
	db *gorm.DB
}

func NewReviewTaskRepository(db *gorm.DB) *ReviewTaskRepository {
	return &ReviewTaskRepository{db}
}

// Create inserts the task together with its empty output row.
func (r *ReviewTaskRepository) Create(ctx context.Context, task *model.ReviewTask) error {
	if task.Output == nil {
		task.Output = &model.ReviewOutput{}
	}
	return translate(r.db.WithContext(ctx).Create(task).Error)
}

func (r *ReviewTaskRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.ReviewTask, error) {
	var task model.ReviewTask
	err := r.db.WithContext(ctx).
		Preload("Output").
		Preload("Policy").
		Preload("Assignment").
		First(&task, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

func (r *ReviewTaskRepository) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]model.ReviewTask, int64, error) {
	var (
		tasks []model.ReviewTask
		total int64
	)
	q := r.db.WithContext(ctx).Model(&model.ReviewTask{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at desc").Offset(offset).Limit(limit).Find(&tasks).Error
	return tasks, total, err
}

func (r *ReviewTaskRepository) CountByStatus(ctx context.Context, userID uuid.UUID) (map[verdict.TaskStatus]int64, error) {
	var rows []struct {
		Status verdict.TaskStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.ReviewTask{}).
		Select("status, count(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[verdict.TaskStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// UpdateLocked loads the task under a row lock, lets fn mutate it and its
// output, then persists both in the same transaction. Concurrent callers on
// the same task are serialized by the lock, so fn always sees the latest
// status.
func (r *ReviewTaskRepository) UpdateLocked(ctx context.Context, userID, id uuid.UUID, fn func(task *model.ReviewTask) error) (*model.ReviewTask, error) {
	var task model.ReviewTask
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&task, "id = ? AND user_id = ?", id, userID).Error
		if err != nil {
			return translate(err)
		}

		var output model.ReviewOutput
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&output, "review_task_id = ?", task.ID).Error
		if err != nil {
			return fmt.Errorf("load review output: %w", translate(err))
		}
		task.Output = &output

		if err := fn(&task); err != nil {
			return err
		}

		if err := tx.Save(task.Output).Error; err != nil {
			return fmt.Errorf("save review output: %w", err)
		}
		return tx.Model(&model.ReviewTask{}).
			Where("id = ?", task.ID).
			Update("status", task.Status).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *ReviewTaskRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.ReviewTask{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
