package handler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fadilmartias/review-composer/internal/dto"
	"github.com/fadilmartias/review-composer/internal/middleware"
	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/fadilmartias/review-composer/internal/response"
	"github.com/fadilmartias/review-composer/internal/util"
	"github.com/fadilmartias/review-composer/internal/verdict"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxUploadSize = 5 * 1024 * 1024

type ReviewService interface {
	CreateTask(ctx context.Context, userID uuid.UUID, req dto.CreateTaskRequest) (*model.ReviewTask, error)
	CreateTaskFromPDF(ctx context.Context, userID uuid.UUID, path string, req dto.CreateTaskRequest) (*model.ReviewTask, error)
	ListTasks(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]model.ReviewTask, *response.Pagination, error)
	GetTask(ctx context.Context, userID, id uuid.UUID) (*dto.ReviewTaskDetailDTO, error)
	Preview(ctx context.Context, userID, id uuid.UUID) (dto.PreviewDTO, error)
	GenerateDraft(ctx context.Context, userID, id uuid.UUID) (*model.ReviewTask, error)
	UpdateVerdict(ctx context.Context, userID, id uuid.UUID, v verdict.Verdict) (*model.ReviewTask, error)
	FinalizeTask(ctx context.Context, userID, id uuid.UUID) (*model.ReviewTask, error)
	DeleteTask(ctx context.Context, userID, id uuid.UUID) error
	DashboardStats(ctx context.Context, userID uuid.UUID) (*dto.DashboardDTO, error)
	SimilarTasks(ctx context.Context, userID, id uuid.UUID, k int) ([]dto.SimilarTaskDTO, error)
}

type ReviewHandler struct {
	uc        ReviewService
	uploadDir string
}

func NewReviewHandler(uc ReviewService, uploadDir string) *ReviewHandler {
	return &ReviewHandler{uc: uc, uploadDir: uploadDir}
}

// RegisterRoutes mounts the task routes on r, which must already require
// authentication.
func (h *ReviewHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/dashboard", h.Dashboard)

	tasks := r.Group("/tasks")
	tasks.Get("/", h.List)
	tasks.Post("/", h.Create)
	tasks.Post("/upload", middleware.RateLimiter(10, time.Minute), h.Upload)
	tasks.Get("/:id", h.Get)
	tasks.Delete("/:id", h.Delete)
	tasks.Post("/:id/draft", middleware.RateLimiter(1, 4*time.Second), h.Draft)
	tasks.Put("/:id/verdict", h.UpdateVerdict)
	tasks.Get("/:id/preview", h.Preview)
	tasks.Post("/:id/finalize", h.Finalize)
	tasks.Get("/:id/similar", h.Similar)
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	task, err := h.uc.CreateTask(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err, "failed to create task")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create task",
		Data:    dto.NewReviewTaskDTO(task),
	})
}

// Upload accepts a multipart PDF in the "file" field plus the optional
// policy_id and assignment_id form values.
func (h *ReviewHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required", err)
	}
	if file.Size > maxUploadSize {
		return badRequest(c, "file size is too large (max 5MB)", nil)
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		return badRequest(c, "unsupported file type, only PDF is accepted", nil)
	}

	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid form", err)
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return respondError(c, fmt.Errorf("prepare upload dir: %w", err), "cannot save file")
	}
	savePath := filepath.Join(h.uploadDir, uuid.NewString()+".pdf")
	if err := c.SaveFile(file, savePath); err != nil {
		return respondError(c, fmt.Errorf("save upload: %w", err), "cannot save file")
	}
	defer os.Remove(savePath)

	task, err := h.uc.CreateTaskFromPDF(c.UserContext(), middleware.UserID(c), savePath, req)
	if err != nil {
		return respondError(c, err, "failed to create task from PDF")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create task",
		Data:    dto.NewReviewTaskDTO(task),
	})
}

func (h *ReviewHandler) List(c *fiber.Ctx) error {
	tasks, page, err := h.uc.ListTasks(c.UserContext(), middleware.UserID(c), c.QueryInt("page", 1), c.QueryInt("page_size", response.DefaultPageSize))
	if err != nil {
		return respondError(c, err, "failed to list tasks")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success list tasks",
		Data:       dto.NewReviewTaskDTOs(tasks),
		Pagination: page,
	})
}

func (h *ReviewHandler) Get(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return badRequest(c, "invalid task id", err)
	}
	detail, err := h.uc.GetTask(c.UserContext(), middleware.UserID(c), id)
	if err != nil {
		return respondError(c, err, "failed to get task")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get task",
		Data:    detail,
	})
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return badRequest(c, "invalid task id", err)
	}
	if err := h.uc.DeleteTask(c.UserContext(), middleware.UserID(c), id); err != nil {
		return respondError(c, err, "failed to delete task")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete task",
	})
}

func (h *ReviewHandler) Draft(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return badRequest(c, "invalid task id", err)
	}
	task, err := h.uc.GenerateDraft(c.UserContext(), middleware.UserID(c), id)
	if err != nil {
		return respondError(c, err, "failed to generate draft")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success generate draft",
		Data:    fiber.Map{"task": dto.NewReviewTaskDTO(task), "review_output": task.Output},
	})
}

func (h *ReviewHandler) UpdateVerdict(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return badRequest(c, "invalid task id", err)
	}
	var v verdict.Verdict
	if err := c.BodyParser(&v); err != nil {
		return badRequest(c, "invalid verdict body", err)
	}
	task, err := h.uc.UpdateVerdict(c.UserContext(), middleware.UserID(c), id, v)
	if err != nil {
		return respondError(c, err, "failed to update verdict")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update verdict",
		Data:    fiber.Map{"task": dto.NewReviewTaskDTO(task), "review_output": task.Output},
	})
}

func (h *ReviewHandler) Preview(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return badRequest(c, "invalid task id", err)
	}
	preview, err := h.uc.Preview(c.UserContext(), middleware.UserID(c), id)
	if err != nil {
		return respondError(c, err, "failed to build preview")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success build preview",
		Data:    preview,
	})
}

func (h *ReviewHandler) Finalize(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return badRequest(c, "invalid task id", err)
	}
	task, err := h.uc.FinalizeTask(c.UserContext(), middleware.UserID(c), id)
	if err != nil {
		return respondError(c, err, "failed to finalize task")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success finalize task",
		Data:    fiber.Map{"task": dto.NewReviewTaskDTO(task), "review_output": task.Output},
	})
}

func (h *ReviewHandler) Similar(c *fiber.Ctx) error {
	id, err := taskID(c)
	if err != nil {
		return badRequest(c, "invalid task id", err)
	}
	similar, err := h.uc.SimilarTasks(c.UserContext(), middleware.UserID(c), id, c.QueryInt("k", 0))
	if err != nil {
		return respondError(c, err, "failed to search similar tasks")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success search similar tasks",
		Data:    similar,
	})
}

func (h *ReviewHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.uc.DashboardStats(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err, "failed to load dashboard")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success load dashboard",
		Data:    stats,
	})
}

func taskID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}
