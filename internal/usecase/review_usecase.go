package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fadilmartias/review-composer/internal/dto"
	"github.com/fadilmartias/review-composer/internal/logger"
	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/fadilmartias/review-composer/internal/response"
	"github.com/fadilmartias/review-composer/internal/service"
	"github.com/fadilmartias/review-composer/internal/verdict"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

const (
	maxSnapshotLength = 50000
	recentTaskCount   = 5
	defaultSimilarK   = 5
	maxSimilarK       = 20
)

type ReviewUsecase struct {
	tasks        ReviewTaskStore
	policies     PolicyStore
	assignments  AssignmentStore
	embeddings   EmbeddingStore
	drafter      service.Drafter
	embedder     service.Embedder
	extractor    TextExtractor
	draftTimeout time.Duration
}

type ReviewUsecaseDeps struct {
	Tasks        ReviewTaskStore
	Policies     PolicyStore
	Assignments  AssignmentStore
	Embeddings   EmbeddingStore
	Drafter      service.Drafter
	Embedder     service.Embedder
	Extractor    TextExtractor
	DraftTimeout time.Duration
}

func NewReviewUsecase(deps ReviewUsecaseDeps) *ReviewUsecase {
	if deps.DraftTimeout == 0 {
		deps.DraftTimeout = 90 * time.Second
	}
	return &ReviewUsecase{
		tasks:        deps.Tasks,
		policies:     deps.Policies,
		assignments:  deps.Assignments,
		embeddings:   deps.Embeddings,
		drafter:      deps.Drafter,
		embedder:     deps.Embedder,
		extractor:    deps.Extractor,
		draftTimeout: deps.DraftTimeout,
	}
}

func (uc *ReviewUsecase) CreateTask(ctx context.Context, userID uuid.UUID, req dto.CreateTaskRequest) (*model.ReviewTask, error) {
	sourceType := model.SourceType(req.SourceType)
	if !sourceType.Valid() {
		return nil, validationErrorf("source_type %q is not supported", req.SourceType)
	}
	if err := requireLength("input_snapshot", req.InputSnapshot, 1, maxSnapshotLength); err != nil {
		return nil, err
	}
	sourceURL, err := optionalURL("source_url", req.SourceURL)
	if err != nil {
		return nil, err
	}
	policyID, err := optionalUUID("policy_id", req.PolicyID)
	if err != nil {
		return nil, err
	}
	if policyID != nil {
		if _, err := uc.policies.FindByID(ctx, userID, *policyID); err != nil {
			return nil, fmt.Errorf("policy: %w", err)
		}
	}
	assignmentID, err := optionalUUID("assignment_id", req.AssignmentID)
	if err != nil {
		return nil, err
	}
	if assignmentID != nil {
		if _, err := uc.assignments.FindByID(ctx, *assignmentID); err != nil {
			return nil, fmt.Errorf("assignment: %w", err)
		}
	}

	task := &model.ReviewTask{
		UserID:        userID,
		PolicyID:      policyID,
		AssignmentID:  assignmentID,
		SourceType:    sourceType,
		SourceURL:     sourceURL,
		InputSnapshot: req.InputSnapshot,
		Status:        verdict.StatusDraft,
		Output:        &model.ReviewOutput{},
	}
	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	logger.Ctx(ctx).Info("review task created",
		zap.String("task_id", task.ID.String()),
		zap.String("source_type", string(task.SourceType)))
	return task, nil
}

// CreateTaskFromPDF extracts the submission text from the file at path and
// creates a task of source type pdf.
func (uc *ReviewUsecase) CreateTaskFromPDF(ctx context.Context, userID uuid.UUID, path string, req dto.CreateTaskRequest) (*model.ReviewTask, error) {
	if uc.extractor == nil {
		return nil, validationErrorf("PDF upload is not supported")
	}
	text, err := uc.extractor.Extract(ctx, path)
	if err != nil {
		return nil, validationErrorf("could not read PDF: %v", err)
	}
	req.SourceType = string(model.SourcePDF)
	req.InputSnapshot = text
	return uc.CreateTask(ctx, userID, req)
}

func (uc *ReviewUsecase) ListTasks(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]model.ReviewTask, *response.Pagination, error) {
	page, pageSize, offset := response.NormalizePage(page, pageSize)
	tasks, total, err := uc.tasks.List(ctx, userID, offset, pageSize)
	if err != nil {
		return nil, nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, response.NewPagination(page, pageSize, total, len(tasks)), nil
}

func (uc *ReviewUsecase) GetTask(ctx context.Context, userID, id uuid.UUID) (*dto.ReviewTaskDetailDTO, error) {
	task, err := uc.tasks.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return NewReviewTaskDetail(task), nil
}

func (uc *ReviewUsecase) Preview(ctx context.Context, userID, id uuid.UUID) (dto.PreviewDTO, error) {
	task, err := uc.tasks.FindByID(ctx, userID, id)
	if err != nil {
		return dto.PreviewDTO{}, err
	}
	return BuildPreview(task.Status, task.CurrentVerdict()), nil
}

// GenerateDraft asks the drafter for a verdict and records it as the task's
// working draft. The drafter call happens outside any lock; the status is
// re-checked when the result is written.
func (uc *ReviewUsecase) GenerateDraft(ctx context.Context, userID, id uuid.UUID) (*model.ReviewTask, error) {
	if uc.drafter == nil {
		return nil, fmt.Errorf("%w: %w", ErrDraftFailed, service.ErrDrafterNotConfigured)
	}
	task, err := uc.tasks.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !verdict.IsEditable(task.Status) {
		return nil, verdict.ErrTaskFinalized
	}

	req := service.DraftRequest{InputSnapshot: task.InputSnapshot}
	if task.Assignment != nil {
		req.AssignmentTitle = task.Assignment.Title
		req.AssignmentDescription = task.Assignment.Description
	}
	if task.Policy != nil {
		req.PolicyText = task.Policy.PolicyText
	}

	draftCtx, cancel := context.WithTimeout(ctx, uc.draftTimeout)
	defer cancel()

	log := logger.Ctx(ctx).With(zap.String("task_id", id.String()))
	start := time.Now()
	raw, err := uc.drafter.Draft(draftCtx, req)
	if err != nil {
		log.Error("draft generation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrDraftFailed, err)
	}
	v, err := service.ParseDraft(raw)
	if err != nil {
		log.Warn("draft rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrDraftFailed, err)
	}
	if task.Assignment != nil {
		v.TaskName = task.Assignment.Title
	}
	for _, a := range verdict.Advisories(v) {
		log.Warn("draft violates drafting contract", zap.String("advisory", a))
	}

	updated, err := uc.tasks.UpdateLocked(ctx, userID, id, func(t *model.ReviewTask) error {
		next, err := verdict.Transition(t.Status, verdict.StatusReviewed, nil)
		if err != nil {
			return err
		}
		ai := v
		draft := v
		t.Output.AIResult = &ai
		t.Output.DraftResult = &draft
		t.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("draft generated",
		zap.String("outcome", string(v.Outcome)),
		zap.Stringer("category", verdict.Classify(v)),
		zap.Duration("elapsed", time.Since(start)))
	return updated, nil
}

// UpdateVerdict stores a mentor-edited verdict as the working draft. A manual
// edit counts as the draft step, so a task still in draft moves to reviewed.
// The verdict is cleaned the same way drafter output is before validation.
func (uc *ReviewUsecase) UpdateVerdict(ctx context.Context, userID, id uuid.UUID, v verdict.Verdict) (*model.ReviewTask, error) {
	v = service.NormalizeVerdict(v)
	if err := service.ValidateVerdict(v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return uc.tasks.UpdateLocked(ctx, userID, id, func(t *model.ReviewTask) error {
		next, err := verdict.Transition(t.Status, verdict.StatusReviewed, nil)
		if err != nil {
			return err
		}
		t.Output.DraftResult = &v
		t.Status = next
		return nil
	})
}

// FinalizeTask locks in the working draft and its rendered Slack text. The
// gate and the write happen under the task's row lock, so at most one of
// several concurrent finalizations succeeds.
func (uc *ReviewUsecase) FinalizeTask(ctx context.Context, userID, id uuid.UUID) (*model.ReviewTask, error) {
	task, err := uc.tasks.UpdateLocked(ctx, userID, id, func(t *model.ReviewTask) error {
		v := t.Output.DraftResult
		next, err := verdict.Transition(t.Status, verdict.StatusFinalized, v)
		if err != nil {
			return err
		}
		text, ok := verdict.Render(*v)
		if !ok {
			return verdict.ErrUnresolvedReview
		}
		final := *v
		t.Output.FinalResult = &final
		t.Output.SlackText = &text
		t.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info("review task finalized",
		zap.String("task_id", id.String()),
		zap.Stringer("category", verdict.Classify(*task.Output.FinalResult)))

	uc.indexTask(ctx, task)
	return task, nil
}

func (uc *ReviewUsecase) DeleteTask(ctx context.Context, userID, id uuid.UUID) error {
	if err := uc.tasks.Delete(ctx, userID, id); err != nil {
		return err
	}
	logger.Ctx(ctx).Info("review task deleted", zap.String("task_id", id.String()))
	return nil
}

func (uc *ReviewUsecase) DashboardStats(ctx context.Context, userID uuid.UUID) (*dto.DashboardDTO, error) {
	counts, err := uc.tasks.CountByStatus(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	recent, _, err := uc.tasks.List(ctx, userID, 0, recentTaskCount)
	if err != nil {
		return nil, fmt.Errorf("recent tasks: %w", err)
	}
	return &dto.DashboardDTO{
		DraftCount:     counts[verdict.StatusDraft],
		ReviewedCount:  counts[verdict.StatusReviewed],
		FinalizedCount: counts[verdict.StatusFinalized],
		RecentTasks:    dto.NewReviewTaskDTOs(recent),
	}, nil
}

// SimilarTasks returns the user's finalized reviews whose submissions are
// closest to the given task's submission.
func (uc *ReviewUsecase) SimilarTasks(ctx context.Context, userID, id uuid.UUID, k int) ([]dto.SimilarTaskDTO, error) {
	if uc.embeddings == nil {
		return nil, ErrSimilarityUnavailable
	}
	if k < 1 {
		k = defaultSimilarK
	}
	if k > maxSimilarK {
		k = maxSimilarK
	}
	task, err := uc.tasks.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	var vec pgvector.Vector
	stored, err := uc.embeddings.FindByTaskID(ctx, task.ID)
	switch {
	case err == nil:
		vec = stored.Embedding
	case errors.Is(err, ErrNotFound):
		if uc.embedder == nil {
			return nil, ErrSimilarityUnavailable
		}
		values, err := uc.embedder.GenerateEmbedding(ctx, task.InputSnapshot)
		if err != nil {
			return nil, fmt.Errorf("embed submission: %w", err)
		}
		vec = pgvector.NewVector(values)
	default:
		return nil, fmt.Errorf("load embedding: %w", err)
	}

	similar, err := uc.embeddings.SearchSimilar(ctx, userID, task.ID, vec, k)
	if err != nil {
		return nil, fmt.Errorf("search similar: %w", err)
	}
	out := make([]dto.SimilarTaskDTO, 0, len(similar))
	for _, s := range similar {
		item := dto.SimilarTaskDTO{ID: s.ID, CreatedAt: s.CreatedAt}
		if s.Output != nil {
			item.FinalResult = s.Output.FinalResult
			item.SlackText = s.Output.SlackText
		}
		out = append(out, item)
	}
	return out, nil
}

// indexTask stores the submission embedding of a finalized task. Failures
// are logged and never undo the finalization.
func (uc *ReviewUsecase) indexTask(ctx context.Context, task *model.ReviewTask) {
	if uc.embedder == nil || uc.embeddings == nil {
		return
	}
	log := logger.Ctx(ctx).With(zap.String("task_id", task.ID.String()))
	values, err := uc.embedder.GenerateEmbedding(ctx, task.InputSnapshot)
	if err != nil {
		log.Warn("embedding finalized task failed", zap.Error(err))
		return
	}
	err = uc.embeddings.Upsert(ctx, &model.ReviewEmbedding{
		ReviewTaskID: task.ID,
		UserID:       task.UserID,
		Embedding:    pgvector.NewVector(values),
	})
	if err != nil {
		log.Warn("storing embedding failed", zap.Error(err))
	}
}
