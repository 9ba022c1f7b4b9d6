package repository

import (
	"context"

	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/fadilmartias/review-composer/internal/verdict"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewEmbeddingRepository struct {
	db *gorm.DB
}

func NewReviewEmbeddingRepository(db *gorm.DB) *ReviewEmbeddingRepository {
	return &ReviewEmbeddingRepository{db}
}

func (r *ReviewEmbeddingRepository) Upsert(ctx context.Context, e *model.ReviewEmbedding) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "review_task_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"embedding"}),
		}).
		Create(e).Error
}

func (r *ReviewEmbeddingRepository) FindByTaskID(ctx context.Context, taskID uuid.UUID) (*model.ReviewEmbedding, error) {
	var e model.ReviewEmbedding
	if err := r.db.WithContext(ctx).First(&e, "review_task_id = ?", taskID).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

// SearchSimilar returns the user's finalized tasks nearest to embedding,
// closest first, excluding the task itself.
func (r *ReviewEmbeddingRepository) SearchSimilar(ctx context.Context, userID, excludeTaskID uuid.UUID, embedding pgvector.Vector, topK int) ([]model.ReviewTask, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
        SELECT e.review_task_id
        FROM review_embeddings e
        JOIN review_tasks t ON t.id = e.review_task_id
        WHERE e.user_id = ? AND e.review_task_id <> ? AND t.status = ?
        ORDER BY e.embedding <-> ?
        LIMIT ?
    `, userID, excludeTaskID, string(verdict.StatusFinalized), embedding, topK).Scan(&ids).Error
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	var tasks []model.ReviewTask
	err = r.db.WithContext(ctx).Preload("Output").Where("id IN ?", ids).Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]model.ReviewTask, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	ordered := make([]model.ReviewTask, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered, nil
}
