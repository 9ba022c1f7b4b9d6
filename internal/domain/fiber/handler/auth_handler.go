package handler

import (
	"context"
	"time"

	"github.com/fadilmartias/review-composer/internal/dto"
	"github.com/fadilmartias/review-composer/internal/middleware"
	"github.com/fadilmartias/review-composer/internal/util"
	"github.com/gofiber/fiber/v2"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthDTO, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthDTO, error)
}

type AuthHandler struct {
	uc AuthService
}

func NewAuthHandler(uc AuthService) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	auth := r.Group("/auth", middleware.RateLimiter(10, time.Minute))
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	auth, err := h.uc.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "failed to register")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success register",
		Data:    auth,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	auth, err := h.uc.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "failed to login")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success login",
		Data:    auth,
	})
}
