package handler

import (
	"context"

	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/fadilmartias/review-composer/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AssignmentService interface {
	List(ctx context.Context) ([]model.Assignment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Assignment, error)
}

type AssignmentHandler struct {
	uc AssignmentService
}

func NewAssignmentHandler(uc AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

func (h *AssignmentHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/assignments", h.List)
	r.Get("/assignments/:id", h.Get)
}

func (h *AssignmentHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err, "failed to list assignments")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success list assignments",
		Data:    items,
	})
}

func (h *AssignmentHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid assignment id", err)
	}
	item, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "failed to get assignment")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get assignment",
		Data:    item,
	})
}
