package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"hireflow/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}


func do(t *testing.T, app *fiber.App, method, path, auth string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestErrorMiddleware_MasksServerErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	app := fiber.New()
	app.Use(NewErrorMiddleware(zap.New(core)).Middleware())
	app.Get("/boom", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadGateway, "smtp relay refused", nil, errors.New("dial tcp"))
	})
	app.Get("/bad", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadRequest, "email is required", map[string]string{"field": "email"}, nil)
	})

	status, env := do(t, app, fiber.MethodGet, "/boom", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", env.Message)
	assert.Equal(t, 1, logs.FilterMessage("request_failed").Len())

	status, env = do(t, app, fiber.MethodGet, "/bad", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "email is required", env.Message)
	assert.JSONEq(t, `{"field":"email"}`, string(env.Data))
}

func TestErrorMiddleware_RecoversPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	app := fiber.New()
	app.Use(NewErrorMiddleware(zap.New(core)).Middleware())
	app.Get("/panic", func(c fiber.Ctx) error { panic("nil map") })

	status, env := do(t, app, fiber.MethodGet, "/panic", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, fiber.StatusInternalServerError, env.Status)
	assert.Equal(t, 1, logs.FilterMessage("panic_recovered").Len())
}

func TestErrorMiddleware_FiberError(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())

	status, env := do(t, app, fiber.MethodGet, "/missing", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, fiber.StatusNotFound, env.Status)
}

func newAuthApp(svc jwt.Service) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/me", NewAuthMiddleware(svc).Middleware(), func(c fiber.Ctx) error {
		id, ok := AdminID(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "", nil, nil)
		}
		return c.JSON(envelope{Status: 200, Message: id.String() + "|" + c.Locals(CtxUsernameKey).(string)})
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	app := newAuthApp(svc)
	adminID := uuid.New()

	access, err := svc.GenerateAccessToken(adminID, "hr")
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(adminID)
	require.NoError(t, err)

	status, env := do(t, app, fiber.MethodGet, "/me", "Bearer "+access)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, adminID.String()+"|hr", env.Message)

	status, _ = do(t, app, fiber.MethodGet, "/me", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, env = do(t, app, fiber.MethodGet, "/me", "Bearer "+refresh)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", env.Message)

	status, _ = do(t, app, fiber.MethodGet, "/me", "Basic abc")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("  bearer  abc.def ")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", tok)

	for _, h := range []string{"", "Bearer", "Bearer   ", "Token abc"} {
		_, ok := BearerToken(h)
		assert.False(t, ok, h)
	}
}

func TestAccessLog_PropagatesRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(zap.New(core)).Middleware())
	app.Get("/ping", func(c fiber.Ctx) error { return c.SendString("pong") })

	req := httptest.NewRequest(fiber.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "rid-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "rid-123", resp.Header.Get(HeaderRequestID))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/ping", nil))
	require.NoError(t, err)
	_, err = uuid.Parse(resp.Header.Get(HeaderRequestID))
	assert.NoError(t, err)

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "rid-123", entries[0].ContextMap()["rid"])
	assert.Equal(t, int64(200), entries[0].ContextMap()["status"])
}

func TestTokenFromQuery(t *testing.T) {
	svc := jwt.NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	access, err := svc.GenerateAccessToken(uuid.New(), "hr")
	require.NoError(t, err)

	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/ws", TokenFromQuery("access_token"), NewAuthMiddleware(svc).Middleware(), func(c fiber.Ctx) error {
		return c.JSON(envelope{Status: 200, Message: "ok"})
	})

	status, _ := do(t, app, fiber.MethodGet, "/ws?access_token="+access, "")
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = do(t, app, fiber.MethodGet, "/ws", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
