package usecase

import (
	"context"

	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/fadilmartias/review-composer/internal/verdict"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type ReviewTaskStore interface {
	Create(ctx context.Context, task *model.ReviewTask) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.ReviewTask, error)
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]model.ReviewTask, int64, error)
	CountByStatus(ctx context.Context, userID uuid.UUID) (map[verdict.TaskStatus]int64, error)
	UpdateLocked(ctx context.Context, userID, id uuid.UUID, fn func(task *model.ReviewTask) error) (*model.ReviewTask, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type PolicyStore interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.EvaluationPolicy, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.EvaluationPolicy, error)
	Create(ctx context.Context, p *model.EvaluationPolicy) error
	Update(ctx context.Context, p *model.EvaluationPolicy) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type AssignmentStore interface {
	List(ctx context.Context) ([]model.Assignment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error)
	FindByCode(ctx context.Context, code string) (*model.Assignment, error)
	Create(ctx context.Context, a *model.Assignment) error
}

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type EmbeddingStore interface {
	Upsert(ctx context.Context, e *model.ReviewEmbedding) error
	FindByTaskID(ctx context.Context, taskID uuid.UUID) (*model.ReviewEmbedding, error)
	SearchSimilar(ctx context.Context, userID, excludeTaskID uuid.UUID, embedding pgvector.Vector, topK int) ([]model.ReviewTask, error)
}

// TextExtractor reads submission text out of an uploaded file.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}
