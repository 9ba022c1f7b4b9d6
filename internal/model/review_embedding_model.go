package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// ReviewEmbedding indexes a finalized submission for similarity lookups.
type ReviewEmbedding struct {
	ReviewTaskID uuid.UUID       `gorm:"type:uuid;primaryKey" json:"review_task_id"`
	UserID       uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
	Embedding    pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (e *ReviewEmbedding) TableName() string {
	return "review_embeddings"
}
