package routes

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"hireflow/internal/delivery/http/handler"
	"hireflow/internal/delivery/http/middleware"
	v1 "hireflow/internal/delivery/http/routes/v1"
	"hireflow/internal/domain/assessment"
	"hireflow/internal/pkg/jwt"
	"hireflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyBoard struct{}

func (emptyBoard) Board(context.Context) ([]usecase.BoardRound, error) { return nil, nil }

type emptySecondRound struct{}

func (emptySecondRound) Start(context.Context, uuid.UUID) (usecase.SecondRoundSession, error) {
	return usecase.SecondRoundSession{}, nil
}

func (emptySecondRound) Submit(context.Context, uuid.UUID, assessment.SecondRoundAnswers) (usecase.SecondRoundScore, error) {
	return usecase.SecondRoundScore{}, nil
}

func (emptySecondRound) Result(context.Context, uuid.UUID) (usecase.SecondRoundScore, error) {
	return usecase.SecondRoundScore{MaxScore: assessment.SecondRoundMax}, nil
}

func TestRegistry_ProtectsHRRoutes(t *testing.T) {
	svc := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	reg := NewRegistry(nil, v1.Handlers{
		Board:       handler.NewBoardHandler(emptyBoard{}),
		SecondRound: handler.NewSecondRoundHandler(emptySecondRound{}),
	}, middleware.NewAuthMiddleware(svc))

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	reg.Register(app)

	status := func(path, token string) int {
		req := httptest.NewRequest(fiber.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusOK, status("/health", ""))
	assert.Equal(t, fiber.StatusOK, status("/api/v1/second-round/"+uuid.NewString()+"/result", ""))
	assert.Equal(t, fiber.StatusUnauthorized, status("/api/v1/board", ""))

	token, err := svc.GenerateAccessToken(uuid.New(), "hr")
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, status("/api/v1/board", token))
}
