package usecase

import (
	"context"
	"errors"

	"hireflow/internal/domain/admin"
	"hireflow/internal/pkg/jwt"
	"hireflow/internal/repository"
	ucauth "hireflow/internal/usecase/auth"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

type AuthUsecase interface {
	Login(ctx context.Context, in ucauth.LoginInput) (admin.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	authSvc *ucauth.Service
	admins  repository.AdminRepository
	jwt     jwt.Service
}

func NewAuthUsecase(admins repository.AdminRepository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(admins), admins: admins, jwt: jwtSvc}
}

func (u *Auth) tokens(a admin.User) (string, string, error) {
	access, err := u.jwt.GenerateAccessToken(a.ID, a.Username)
	if err != nil {
		return "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(a.ID)
	if err != nil {
		return "", "", ErrInternal
	}
	return access, refresh, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (admin.User, string, string, error) {
	a, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return admin.User{}, "", "", err
	}
	access, refresh, err := u.tokens(a)
	if err != nil {
		return admin.User{}, "", "", err
	}
	return a, access, refresh, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	a, err := u.admins.GetByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}
	return u.tokens(a)
}
