package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess_DefaultsMessageAndClampsStatus(t *testing.T) {
	app := fiber.New()
	app.Get("/created", func(c fiber.Ctx) error { return Success(c, fiber.StatusCreated, "", map[string]int{"n": 1}) })
	app.Get("/bogus", func(c fiber.Ctx) error { return Error(c, 42, "", nil) })

	resp, err := app.Test(httptest.NewRequest("GET", "/created", nil))
	require.NoError(t, err)
	var env SemanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, fiber.StatusCreated, env.Status)
	assert.Equal(t, MessageCreated, env.Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/bogus", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	env = SemanticResponse{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, MessageInternalServerError, env.Message)
}

func TestDefaultMessage(t *testing.T) {
	assert.Equal(t, MessageServiceUnavailable, DefaultMessage(fiber.StatusServiceUnavailable))
	assert.Equal(t, MessageInternalServerError, DefaultMessage(fiber.StatusBadGateway))
	assert.Equal(t, MessageError, DefaultMessage(fiber.StatusTeapot))
}

func TestAttachmentAndInline(t *testing.T) {
	app := fiber.New()
	app.Get("/xlsx", func(c fiber.Ctx) error {
		return Attachment(c, "reports/screening-1.xlsx", "application/octet-stream", []byte("xlsx"))
	})
	app.Get("/pdf", func(c fiber.Ctx) error {
		return Inline(c, "cv/ada.pdf", strings.NewReader("%PDF"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/xlsx", nil))
	require.NoError(t, err)
	assert.Equal(t, `attachment; filename="screening-1.xlsx"`, resp.Header.Get(fiber.HeaderContentDisposition))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "xlsx", string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/pdf", nil))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `inline; filename="ada.pdf"`, resp.Header.Get(fiber.HeaderContentDisposition))
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF", string(body))
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, fiber.MIMEOctetStream, ContentTypeFor("resume.unknownext"))
	assert.Contains(t, ContentTypeFor("notes.txt"), "text/plain")
}
