package usecase

import (
	"github.com/fadilmartias/review-composer/internal/dto"
	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/fadilmartias/review-composer/internal/verdict"
)

const blockedWarning = "判断保留（Review）のため、Slack用メッセージは作成されません。提出不備があれば記載してください。"

// BuildPreview derives what the presentation layer may display for v.
func BuildPreview(status verdict.TaskStatus, v *verdict.Verdict) dto.PreviewDTO {
	if v == nil {
		return dto.PreviewDTO{}
	}
	category := verdict.Classify(*v)
	p := dto.PreviewDTO{
		HasVerdict:  true,
		Category:    &category,
		IsReview:    verdict.IsReviewState(*v),
		CanCopy:     verdict.CanCopyToSlack(*v),
		CanFinalize: status == verdict.StatusReviewed && verdict.CanFinalize(*v),
		Warnings:    verdict.Advisories(*v),
	}
	if text, ok := verdict.Render(*v); ok && p.CanCopy {
		p.SlackText = &text
	} else {
		p.Warnings = append(p.Warnings, blockedWarning)
	}
	return p
}

func NewReviewTaskDetail(task *model.ReviewTask) *dto.ReviewTaskDetailDTO {
	d := &dto.ReviewTaskDetailDTO{
		ReviewTaskDTO: dto.NewReviewTaskDTO(task),
		InputSnapshot: task.InputSnapshot,
		Editable:      verdict.IsEditable(task.Status),
		ReviewOutput:  task.Output,
		Assignment:    task.Assignment,
		Preview:       BuildPreview(task.Status, task.CurrentVerdict()),
	}
	if task.Policy != nil {
		d.Policy = &dto.PolicySummaryDTO{
			ID:         task.Policy.ID,
			Title:      task.Policy.Title,
			PolicyText: task.Policy.PolicyText,
		}
	}
	return d
}
