package dto

import (
	"time"

	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/fadilmartias/review-composer/internal/verdict"
	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	SourceType    string `json:"source_type" form:"source_type"`
	SourceURL     string `json:"source_url" form:"source_url"`
	InputSnapshot string `json:"input_snapshot" form:"input_snapshot"`
	PolicyID      string `json:"policy_id" form:"policy_id"`
	AssignmentID  string `json:"assignment_id" form:"assignment_id"`
}

type ReviewTaskDTO struct {
	ID           uuid.UUID          `json:"id"`
	PolicyID     *uuid.UUID         `json:"policy_id"`
	AssignmentID *uuid.UUID         `json:"assignment_id"`
	SourceType   model.SourceType   `json:"source_type"`
	SourceURL    *string            `json:"source_url"`
	Status       verdict.TaskStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type PolicySummaryDTO struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	PolicyText string    `json:"policy_text"`
}

type ReviewTaskDetailDTO struct {
	ReviewTaskDTO
	InputSnapshot string              `json:"input_snapshot"`
	Editable      bool                `json:"editable"`
	ReviewOutput  *model.ReviewOutput `json:"review_output"`
	Policy        *PolicySummaryDTO   `json:"policy"`
	Assignment    *model.Assignment   `json:"assignment"`
	Preview       PreviewDTO          `json:"preview"`
}

// PreviewDTO tells the presentation layer what it may show for the current
// verdict. SlackText is nil whenever nothing may be displayed or copied.
type PreviewDTO struct {
	HasVerdict  bool              `json:"has_verdict"`
	Category    *verdict.Category `json:"category,omitempty"`
	IsReview    bool              `json:"is_review"`
	CanCopy     bool              `json:"can_copy"`
	CanFinalize bool              `json:"can_finalize"`
	SlackText   *string           `json:"slack_text"`
	Warnings    []string          `json:"warnings,omitempty"`
}

type SimilarTaskDTO struct {
	ID          uuid.UUID        `json:"id"`
	FinalResult *verdict.Verdict `json:"final_result"`
	SlackText   *string          `json:"slack_text"`
	CreatedAt   time.Time        `json:"created_at"`
}

type DashboardDTO struct {
	DraftCount     int64           `json:"draft_count"`
	ReviewedCount  int64           `json:"reviewed_count"`
	FinalizedCount int64           `json:"finalized_count"`
	RecentTasks    []ReviewTaskDTO `json:"recent_tasks"`
}

func NewReviewTaskDTO(t *model.ReviewTask) ReviewTaskDTO {
	return ReviewTaskDTO{
		ID:           t.ID,
		PolicyID:     t.PolicyID,
		AssignmentID: t.AssignmentID,
		SourceType:   t.SourceType,
		SourceURL:    t.SourceURL,
		Status:       t.Status,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func NewReviewTaskDTOs(tasks []model.ReviewTask) []ReviewTaskDTO {
	out := make([]ReviewTaskDTO, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewReviewTaskDTO(&tasks[i]))
	}
	return out
}
