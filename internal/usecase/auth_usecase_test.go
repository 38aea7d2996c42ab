package usecase

import (
	"context"
	"testing"
	"time"

	"hireflow/internal/pkg/jwt"
	ucauth "hireflow/internal/usecase/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_LoginAndRefresh(t *testing.T) {
	admins := &memAdmins{}
	svc := ucauth.NewService(admins)
	created, err := svc.EnsureDefault(context.Background(), "HR", "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureDefault(context.Background(), "other", "s3cret-pass")
	require.NoError(t, err)
	assert.False(t, created)

	tokens := jwt.NewHMACService("a", "r", time.Minute, time.Hour)
	uc := NewAuthUsecase(admins, tokens)

	a, access, refresh, err := uc.Login(context.Background(), ucauth.LoginInput{Username: "hr", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "hr", a.Username)
	assert.Empty(t, a.PasswordHash)
	assert.NotEmpty(t, access)

	_, _, _, err = uc.Login(context.Background(), ucauth.LoginInput{Username: "hr", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidCredentials)

	newAccess, newRefresh, err := uc.Refresh(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)

	_, _, err = uc.Refresh(context.Background(), access)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, _, err = uc.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_CreateValidation(t *testing.T) {
	svc := ucauth.NewService(&memAdmins{})
	_, err := svc.Create(context.Background(), "hr", "short")
	assert.ErrorIs(t, err, ucauth.ErrInvalidInput)

	_, err = svc.Create(context.Background(), "hr", "long-enough")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), " HR ", "long-enough")
	assert.ErrorIs(t, err, ucauth.ErrUsernameTaken)
}
