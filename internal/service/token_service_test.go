package service

import (
	"testing"
	"time"

	"github.com/fadilmartias/review-composer/internal/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() *TokenService {
	return NewTokenService(&config.AuthConfig{
		JWTSecret:      []byte("test-secret"),
		JWTIssuer:      "review-composer",
		AccessTokenTTL: time.Hour,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	s := newTestTokenService()
	userID := uuid.New()

	raw, expiresAt, err := s.Issue(userID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	got, err := s.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenExpired(t *testing.T) {
	s := newTestTokenService()
	raw, _, err := s.Issue(uuid.New())
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = s.Parse(raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenInvalid(t *testing.T) {
	s := newTestTokenService()
	raw, _, err := s.Issue(uuid.New())
	require.NoError(t, err)

	other := NewTokenService(&config.AuthConfig{JWTSecret: []byte("other"), JWTIssuer: "review-composer", AccessTokenTTL: time.Hour})
	_, err = other.Parse(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.Parse("")
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = s.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenIssueWithoutSecret(t *testing.T) {
	s := NewTokenService(&config.AuthConfig{})
	_, _, err := s.Issue(uuid.New())
	assert.Error(t, err)
}
