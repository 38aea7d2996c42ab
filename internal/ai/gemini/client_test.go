package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"hireflow/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	mu      sync.Mutex
	replies []fakeReply
	prompts []string
	models  []string
}

type fakeReply struct {
	resp *genai.GenerateContentResponse
	err  error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.models = append(f.models, model)
	for _, c := range contents {
		for _, p := range c.Parts {
			f.prompts = append(f.prompts, p.Text)
		}
	}
	if len(f.replies) == 0 {
		return nil, errors.New("unexpected call")
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r.resp, r.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: "model"}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func noSleep(t *testing.T) {
	t.Helper()
	original := sleep
	sleep = func(time.Duration) {}
	t.Cleanup(func() { sleep = original })
}

func TestGenerateContent_JoinsParts(t *testing.T) {
	models := &fakeModels{replies: []fakeReply{{resp: textResponse(" [1, ", "", "2] ")}}}
	c := newClient(models, config.GeminiConfig{}, nil)

	out, err := c.GenerateContent(context.Background(), "  list numbers ")
	require.NoError(t, err)
	assert.Equal(t, "[1,\n2]", out)
	assert.Equal(t, []string{"list numbers"}, models.prompts)
	assert.Equal(t, defaultModel, models.models[0])
}

func TestGenerateContent_RetriesTemporaryErrors(t *testing.T) {
	noSleep(t)
	models := &fakeModels{replies: []fakeReply{
		{err: genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"}},
		{resp: textResponse("ok")},
	}}
	c := newClient(models, config.GeminiConfig{Model: "gemini-pro"}, nil)

	out, err := c.GenerateContent(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Len(t, models.models, 2)
}

func TestGenerateContent_DoesNotRetryClientErrors(t *testing.T) {
	noSleep(t)
	models := &fakeModels{replies: []fakeReply{
		{err: genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"}},
		{resp: textResponse("unused")},
	}}
	c := newClient(models, config.GeminiConfig{}, nil)

	_, err := c.GenerateContent(context.Background(), "hi")
	require.Error(t, err)
	assert.Len(t, models.models, 1)
}

func TestGenerateContent_EmptyResponse(t *testing.T) {
	models := &fakeModels{replies: []fakeReply{{resp: &genai.GenerateContentResponse{}}}}
	c := newClient(models, config.GeminiConfig{}, nil)

	_, err := c.GenerateContent(context.Background(), "hi")
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateContent_Validation(t *testing.T) {
	var nilClient *Client
	_, err := nilClient.GenerateContent(context.Background(), "hi")
	require.Error(t, err)

	c := newClient(&fakeModels{}, config.GeminiConfig{}, nil)
	_, err = c.GenerateContent(context.Background(), "   ")
	require.Error(t, err)
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), config.GeminiConfig{APIKey: " "}, nil)
	require.Error(t, err)
}
