package model

import (
	"time"

	"github.com/google/uuid"
)

// EvaluationPolicy is a mentor-owned grading guideline passed to the drafter.
type EvaluationPolicy struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Title      string    `gorm:"type:varchar(100);not null" json:"title"`
	PolicyText string    `gorm:"type:text;not null" json:"policy_text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
