package middleware

import (
	"errors"
	"strings"

	"hireflow/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxAdminIDKey  = "admin_id"
	CtxUsernameKey = "username"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, nil)
		}

		c.Locals(CtxAdminIDKey, claims.AdminID)
		c.Locals(CtxUsernameKey, claims.Username)

		return c.Next()
	}
}

// AdminID returns the authenticated admin set by AuthMiddleware.
func AdminID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(CtxAdminIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}

// TokenFromQuery lets clients that cannot set headers, such as browser
// WebSockets, pass the access token as a query parameter.
func TokenFromQuery(param string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			if tok := strings.TrimSpace(c.Query(param)); tok != "" {
				c.Request().Header.Set("Authorization", "Bearer "+tok)
			}
		}
		return c.Next()
	}
}
