package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fadilmartias/review-composer/internal/dto"
	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/fadilmartias/review-composer/internal/usecase"
	"github.com/fadilmartias/review-composer/internal/verdict"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviewService struct {
	ReviewService
	userID   uuid.UUID
	created  dto.CreateTaskRequest
	verdict  verdict.Verdict
	finalErr error
	draftErr error
}

func (f *fakeReviewService) CreateTask(_ context.Context, userID uuid.UUID, req dto.CreateTaskRequest) (*model.ReviewTask, error) {
	f.userID = userID
	f.created = req
	return &model.ReviewTask{ID: uuid.New(), UserID: userID, SourceType: model.SourceType(req.SourceType), Status: verdict.StatusDraft}, nil
}

func (f *fakeReviewService) UpdateVerdict(_ context.Context, _ uuid.UUID, id uuid.UUID, v verdict.Verdict) (*model.ReviewTask, error) {
	f.verdict = v
	return &model.ReviewTask{ID: id, Status: verdict.StatusReviewed, Output: &model.ReviewOutput{DraftResult: &v}}, nil
}

func (f *fakeReviewService) GenerateDraft(_ context.Context, _, _ uuid.UUID) (*model.ReviewTask, error) {
	return nil, f.draftErr
}

func (f *fakeReviewService) FinalizeTask(_ context.Context, _, id uuid.UUID) (*model.ReviewTask, error) {
	if f.finalErr != nil {
		return nil, f.finalErr
	}
	text := "@受講生"
	return &model.ReviewTask{ID: id, Status: verdict.StatusFinalized, Output: &model.ReviewOutput{SlackText: &text}}, nil
}

func newReviewApp(svc ReviewService, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	})
	NewReviewHandler(svc, "").RegisterRoutes(api)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestReviewHandler_Create(t *testing.T) {
	svc := &fakeReviewService{}
	userID := uuid.New()
	app := newReviewApp(svc, userID)

	code, body := doJSON(t, app, http.MethodPost, "/api/tasks", `{"source_type":"colab","input_snapshot":"code"}`)
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, userID, svc.userID)
	assert.Equal(t, "code", svc.created.InputSnapshot)
}

func TestReviewHandler_UpdateVerdict(t *testing.T) {
	svc := &fakeReviewService{}
	app := newReviewApp(svc, uuid.New())

	path := fmt.Sprintf("/api/tasks/%s/verdict", uuid.New())
	code, _ := doJSON(t, app, http.MethodPut, path, `{"result":"Fail","task_name":"9-6","fail_reasons":["要件2が未実装"]}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, verdict.OutcomeFail, svc.verdict.Outcome)
	assert.Equal(t, []string{"要件2が未実装"}, svc.verdict.FailReasons)
}

func TestReviewHandler_Finalize(t *testing.T) {
	app := newReviewApp(&fakeReviewService{}, uuid.New())

	code, body := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/tasks/%s/finalize", uuid.New()), "")
	assert.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]any)
	output := data["review_output"].(map[string]any)
	assert.Equal(t, "@受講生", output["slack_text"])
}

func TestReviewHandler_FinalizeErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unresolved review", verdict.ErrUnresolvedReview, http.StatusConflict},
		{"already finalized", verdict.ErrTaskFinalized, http.StatusConflict},
		{"not found", usecase.ErrNotFound, http.StatusNotFound},
		{"unexpected", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newReviewApp(&fakeReviewService{finalErr: tt.err}, uuid.New())
			code, body := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/tasks/%s/finalize", uuid.New()), "")
			assert.Equal(t, tt.want, code)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestReviewHandler_DraftFailure(t *testing.T) {
	upstream := errors.New("openrouter returned status 401: invalid key sk-or-abc")
	svc := &fakeReviewService{draftErr: fmt.Errorf("%w: %w", usecase.ErrDraftFailed, upstream)}
	app := newReviewApp(svc, uuid.New())

	code, body := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/tasks/%s/draft", uuid.New()), "")
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, "failed to generate draft", body["message"])
	assert.NotContains(t, fmt.Sprint(body["message"]), "sk-or-abc")
}

func TestReviewHandler_InvalidID(t *testing.T) {
	app := newReviewApp(&fakeReviewService{}, uuid.New())

	code, body := doJSON(t, app, http.MethodPost, "/api/tasks/not-a-uuid/finalize", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid task id", body["message"])
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, statusFromError(fmt.Errorf("%w: title is required", usecase.ErrValidation)))
	assert.Equal(t, fiber.StatusUnauthorized, statusFromError(usecase.ErrUnauthorized))
	assert.Equal(t, fiber.StatusConflict, statusFromError(usecase.ErrEmailTaken))
	assert.Equal(t, fiber.StatusConflict, statusFromError(verdict.ErrInvalidTransition))
	assert.Equal(t, fiber.StatusServiceUnavailable, statusFromError(usecase.ErrSimilarityUnavailable))
}
