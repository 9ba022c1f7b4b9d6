package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/fadilmartias/review-composer/internal/dto"
	"github.com/fadilmartias/review-composer/internal/logger"
	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/fadilmartias/review-composer/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 72
)

type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, time.Time, error)
}

type AuthUsecase struct {
	users      UserStore
	tokens     TokenIssuer
	bcryptCost int
}

func NewAuthUsecase(users UserStore, tokens TokenIssuer) *AuthUsecase {
	return &AuthUsecase{users: users, tokens: tokens, bcryptCost: 12}
}

func (uc *AuthUsecase) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthDTO, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if n := len(req.Password); n < minPasswordLength || n > maxPasswordLength {
		return nil, validationErrorf("password must be %d to %d characters", minPasswordLength, maxPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), uc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	logger.Ctx(ctx).Info("user registered", zap.String("user_id", user.ID.String()))
	return uc.issue(user)
}

func (uc *AuthUsecase) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthDTO, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil || req.Password == "" {
		return nil, ErrUnauthorized
	}
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrUnauthorized
	}
	return uc.issue(user)
}

func (uc *AuthUsecase) issue(user *model.User) (*dto.AuthDTO, error) {
	token, expiresAt, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthDTO{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        dto.UserDTO{ID: user.ID, Email: user.Email, Name: user.Name},
	}, nil
}

func normalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return "", validationErrorf("email is not a valid address")
	}
	return strings.ToLower(addr.Address), nil
}
