package service

import (
	"context"
	"testing"

	"skillmatrix/training-app/internal/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewAuthService(repo, testJWTSecret, 0)

	user, err := svc.Register(context.Background(), "Asha", "Verma", "asha@example.com", "secret123", domain.RoleTrainee, "Backend Dev")
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	// The hash never leaves the service.
	assert.Empty(t, user.PasswordHash)

	_, err = svc.Register(context.Background(), "Asha", "Verma", "asha@example.com", "secret123", domain.RoleTrainee, "Backend Dev")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	token, loggedIn, err := svc.Login(context.Background(), "asha@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)

	// The token carries the uid and role claims the middleware expects.
	claims := struct {
		UserID string      `json:"uid"`
		Role   domain.Role `json:"role"`
		jwt.RegisteredClaims
	}{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, domain.RoleTrainee, claims.Role)
	assert.Equal(t, "training-app", claims.Issuer)
}

func TestLogin_Failures(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewAuthService(repo, testJWTSecret, 0)

	_, err := svc.Register(context.Background(), "Asha", "Verma", "asha@example.com", "secret123", domain.RoleTrainee, "Backend Dev")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	// Unknown users get the same generic failure.
	_, _, err = svc.Login(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestRegister_InvalidRole(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{}, testJWTSecret, 0)

	_, err := svc.Register(context.Background(), "Asha", "Verma", "asha@example.com", "secret123", "superuser", "Backend Dev")
	assert.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewAuthService(repo, testJWTSecret, 0)

	user, err := svc.Register(context.Background(), "Asha", "Verma", "asha@example.com", "secret123", domain.RoleTrainee, "Backend Dev")
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, "wrong", "newsecret")
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = svc.ChangePassword(context.Background(), user.ID, "secret123", "newsecret")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "asha@example.com", "secret123")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	_, _, err = svc.Login(context.Background(), "asha@example.com", "newsecret")
	assert.NoError(t, err)
}
