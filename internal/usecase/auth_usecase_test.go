package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/fadilmartias/review-composer/internal/dto"
	"github.com/fadilmartias/review-composer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUsecase() (*AuthUsecase, *fakeUserStore) {
	users := &fakeUserStore{users: map[string]*model.User{}}
	uc := NewAuthUsecase(users, fakeTokens{})
	uc.bcryptCost = bcrypt.MinCost
	return uc, users
}

func TestRegisterAndLogin(t *testing.T) {
	uc, users := newAuthUsecase()
	ctx := context.Background()

	auth, err := uc.Register(ctx, dto.RegisterRequest{Email: " Mentor@Example.com ", Password: "secret1", Name: "Mentor"})
	require.NoError(t, err)
	assert.Equal(t, "mentor@example.com", auth.User.Email)
	assert.Equal(t, "token-"+auth.User.ID.String(), auth.AccessToken)

	stored := users.users["mentor@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.PasswordHash)

	login, err := uc.Login(ctx, dto.LoginRequest{Email: "mentor@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, auth.User.ID, login.User.ID)
}

func TestRegister_Validation(t *testing.T) {
	uc, _ := newAuthUsecase()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "not-an-email", Password: "secret1"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "a@example.com", Password: "123"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "a@example.com", Password: strings.Repeat("x", 73)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, _ := newAuthUsecase()
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "A@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Rejected(t *testing.T) {
	uc, _ := newAuthUsecase()
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"wrong password", dto.LoginRequest{Email: "a@example.com", Password: "secret2"}},
		{"unknown email", dto.LoginRequest{Email: "b@example.com", Password: "secret1"}},
		{"empty password", dto.LoginRequest{Email: "a@example.com"}},
		{"malformed email", dto.LoginRequest{Email: "a@", Password: "secret1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Login(ctx, tt.req)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}
