package handler

import (
	"context"

	"github.com/fadilmartias/review-composer/internal/dto"
	"github.com/fadilmartias/review-composer/internal/middleware"
	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/fadilmartias/review-composer/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PolicyService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.EvaluationPolicy, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.EvaluationPolicy, error)
	Create(ctx context.Context, userID uuid.UUID, req dto.PolicyRequest) (*model.EvaluationPolicy, error)
	Update(ctx context.Context, userID, id uuid.UUID, req dto.PolicyRequest) (*model.EvaluationPolicy, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type PolicyHandler struct {
	uc PolicyService
}

func NewPolicyHandler(uc PolicyService) *PolicyHandler {
	return &PolicyHandler{uc: uc}
}

func (h *PolicyHandler) RegisterRoutes(r fiber.Router) {
	policies := r.Group("/policies")
	policies.Get("/", h.List)
	policies.Post("/", h.Create)
	policies.Get("/:id", h.Get)
	policies.Put("/:id", h.Update)
	policies.Delete("/:id", h.Delete)
}

func (h *PolicyHandler) List(c *fiber.Ctx) error {
	policies, err := h.uc.List(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err, "failed to list policies")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success list policies",
		Data:    policies,
	})
}

func (h *PolicyHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid policy id", err)
	}
	policy, err := h.uc.Get(c.UserContext(), middleware.UserID(c), id)
	if err != nil {
		return respondError(c, err, "failed to get policy")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get policy",
		Data:    policy,
	})
}

func (h *PolicyHandler) Create(c *fiber.Ctx) error {
	var req dto.PolicyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	policy, err := h.uc.Create(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err, "failed to create policy")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create policy",
		Data:    policy,
	})
}

func (h *PolicyHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid policy id", err)
	}
	var req dto.PolicyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	policy, err := h.uc.Update(c.UserContext(), middleware.UserID(c), id, req)
	if err != nil {
		return respondError(c, err, "failed to update policy")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update policy",
		Data:    policy,
	})
}

func (h *PolicyHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid policy id", err)
	}
	if err := h.uc.Delete(c.UserContext(), middleware.UserID(c), id); err != nil {
		return respondError(c, err, "failed to delete policy")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete policy",
	})
}
