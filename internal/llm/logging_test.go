package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/llmfaker/internal/store"
)

type recordingRepo struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error {
	// Like database/sql, refuse to write on a finished context.
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Text:  `["Alice","Bob"]`,
		Usage: Usage{InputTokens: 12, OutputTokens: 4},
	})
	p := WithLogging(mock, "mock", repo, nil)

	ctx := WithRequestID(WithPurpose(context.Background(), "fake-values"), "req-42")
	resp, err := p.Generate(ctx, Request{System: "sys", Prompt: "List 2 first names"})
	require.NoError(t, err)
	assert.Equal(t, `["Alice","Bob"]`, resp.Text)

	require.Len(t, repo.events, 1)
	ev := repo.events[0]
	assert.Equal(t, "req-42", ev.RequestID)
	assert.Equal(t, "fake-values", ev.Purpose)
	assert.Equal(t, "mock", ev.Provider)
	assert.Equal(t, "mock", ev.Model)
	assert.True(t, ev.Success)
	assert.Equal(t, 12, ev.InputTokens)
	assert.Equal(t, 4, ev.OutputTokens)
	assert.Equal(t, `["Alice","Bob"]`, ev.ResponseBody)
	assert.Contains(t, ev.RequestBody, "[system]\nsys")
	assert.Contains(t, ev.RequestBody, "[user]\nList 2 first names")
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection refused")}})
	p := WithLogging(mock, "ollama", repo, zap.New(core))

	_, err := p.Generate(context.Background(), Request{Prompt: "x", Model: "llama3"})
	require.Error(t, err)

	require.Len(t, repo.events, 1)
	ev := repo.events[0]
	assert.False(t, ev.Success)
	assert.Equal(t, "llama3", ev.Model)
	assert.Equal(t, "unknown", ev.Purpose)
	assert.Contains(t, ev.ErrorMessage, "connection refused")

	failed := logs.FilterMessage("llm request failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.WarnLevel, failed[0].Level)
	assert.Equal(t, "ollama", failed[0].ContextMap()["provider"])
}

func TestLoggingProvider_RecordsTimedOutRequest(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Text: `["late"]`})
	mock.Block = make(chan struct{})
	defer close(mock.Block)

	p := WithTimeout(WithLogging(mock, "ollama", repo, nil), 20*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{Prompt: "x"})
	require.ErrorIs(t, err, context.DeadlineExceeded)

	require.Len(t, repo.events, 1)
	assert.False(t, repo.events[0].Success)
	assert.Contains(t, repo.events[0].ErrorMessage, "deadline exceeded")
}

func TestLoggingProvider_RepoErrorDoesNotFailRequest(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockResponse{Text: `["ok"]`}), "mock", repo, zap.New(core))

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, `["ok"]`, resp.Text)
	assert.Equal(t, 1, logs.FilterMessage("failed to record llm request event").Len())
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Text: `["ok"]`}), "mock", nil, nil)
	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}

func TestSerializeRequest_IncludesSchema(t *testing.T) {
	out := serializeRequest(Request{Prompt: "List 5 cities", Schema: testValuesSchema})
	assert.False(t, strings.HasPrefix(out, "[system]"))
	assert.Contains(t, out, "[schema: test-values]")
	assert.Contains(t, out, `"values"`)
}
