package model

import (
	"time"

	"github.com/fadilmartias/review-composer/internal/verdict"
	"github.com/google/uuid"
)

type SourceType string

const (
	SourceColab SourceType = "colab"
	SourceDocs  SourceType = "docs"
	SourceText  SourceType = "text"
	SourcePDF   SourceType = "pdf"
	SourceOther SourceType = "other"
)

func (s SourceType) Valid() bool {
	switch s {
	case SourceColab, SourceDocs, SourceText, SourcePDF, SourceOther:
		return true
	}
	return false
}

type ReviewTask struct {
	ID            uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID          `gorm:"type:uuid;index;not null" json:"user_id"`
	PolicyID      *uuid.UUID         `gorm:"type:uuid" json:"policy_id"`
	AssignmentID  *uuid.UUID         `gorm:"type:uuid" json:"assignment_id"`
	SourceType    SourceType         `gorm:"type:varchar(20);not null" json:"source_type"`
	SourceURL     *string            `gorm:"type:text" json:"source_url"`
	InputSnapshot string             `gorm:"type:text;not null" json:"input_snapshot"`
	Status        verdict.TaskStatus `gorm:"type:varchar(20);index;not null" json:"status"` // draft, reviewed, finalized
	Output        *ReviewOutput      `gorm:"foreignKey:ReviewTaskID;constraint:OnDelete:CASCADE" json:"review_output,omitempty"`
	Policy        *EvaluationPolicy  `gorm:"foreignKey:PolicyID;constraint:OnDelete:SET NULL" json:"policy,omitempty"`
	Assignment    *Assignment        `gorm:"foreignKey:AssignmentID;constraint:OnDelete:SET NULL" json:"assignment,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ReviewOutput holds the verdicts of a task. AIResult is what the drafter
// returned, DraftResult is the mentor's working copy and FinalResult the
// locked-in verdict together with its Slack text.
type ReviewOutput struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ReviewTaskID uuid.UUID        `gorm:"type:uuid;uniqueIndex;not null" json:"review_task_id"`
	AIResult     *verdict.Verdict `gorm:"type:jsonb;serializer:json" json:"ai_result"`
	DraftResult  *verdict.Verdict `gorm:"type:jsonb;serializer:json" json:"draft_result"`
	FinalResult  *verdict.Verdict `gorm:"type:jsonb;serializer:json" json:"final_result"`
	SlackText    *string          `gorm:"type:text" json:"slack_text"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// CurrentVerdict is the verdict a finalization would lock in.
func (t *ReviewTask) CurrentVerdict() *verdict.Verdict {
	if t.Output == nil {
		return nil
	}
	if t.Output.FinalResult != nil {
		return t.Output.FinalResult
	}
	return t.Output.DraftResult
}
