package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var titleSchema = &Schema{
	Name: "anthropic-title",
	Definition: map[string]any{
		"type":       "object",
		"properties": map[string]any{"title": map[string]any{"type": "string"}},
		"required":   []any{"title"},
	},
}

// anthropicServer answers every request with status and body, and records
// the decoded request.
func anthropicServer(t *testing.T, status int, header http.Header, body map[string]any, seen *map[string]any) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		for k, v := range header {
			w.Header()[k] = v
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku", BaseURL: srv.URL})
	require.NoError(t, err)
	return p
}

func anthropicReply(stop string, texts ...string) map[string]any {
	content := make([]map[string]any, len(texts))
	for i, txt := range texts {
		content[i] = map[string]any{"type": "text", "text": txt}
	}
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"content":     content,
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 40, "output_tokens": 25},
	}
}

func anthropicFailure(kind string) map[string]any {
	return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": kind}}
}

func TestAnthropicProvider_StructuredReply(t *testing.T) {
	var seen map[string]any
	p := anthropicServer(t, http.StatusOK, nil, anthropicReply("end_turn", `{"title":`, `"Capitals"}`), &seen)

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write quizzes.",
		Messages:  []Message{{Role: RoleUser, Content: "Capitals of Europe"}},
		Schema:    titleSchema,
		MaxTokens: 512,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"title":"Capitals"}`, string(resp.Content))
	assert.Equal(t, "end", resp.StopReason)
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)
	assert.Equal(t, "claude-haiku-4-5-20251001", seen["model"])
	assert.EqualValues(t, 512, seen["max_tokens"])
}

func TestAnthropicProvider_TruncatedReply(t *testing.T) {
	p := anthropicServer(t, http.StatusOK, nil, anthropicReply("max_tokens", `{"title":"Capi`), nil)

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "x"}},
		Schema:    titleSchema,
		MaxTokens: 8,
	})

	var maxTok *ErrMaxTokensExceeded
	require.True(t, errors.As(err, &maxTok), "got %T (%v)", err, err)
	assert.Equal(t, retryNever, classify(err))
}

func TestAnthropicProvider_NoText(t *testing.T) {
	p := anthropicServer(t, http.StatusOK, nil, anthropicReply("end_turn"), nil)

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}, MaxTokens: 8})

	var inv *ErrInvalidResponse
	assert.True(t, errors.As(err, &inv), "got %T (%v)", err, err)
}

func TestAnthropicProvider_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header http.Header
		kind   string
		check  func(t *testing.T, err error)
	}{
		{"rate limit with retry-after", http.StatusTooManyRequests, http.Header{"Retry-After": {"7"}}, "rate_limit_error", func(t *testing.T, err error) {
			var rl *ErrRateLimit
			require.True(t, errors.As(err, &rl), "got %T (%v)", err, err)
			assert.Equal(t, 7*time.Second, rl.RetryAfter)
			assert.Equal(t, 7*time.Second, retryAfter(err))
		}},
		{"bad key", http.StatusUnauthorized, nil, "authentication_error", func(t *testing.T, err error) {
			var auth *ErrAuth
			require.True(t, errors.As(err, &auth), "got %T (%v)", err, err)
			assert.Equal(t, retryNever, classify(err))
		}},
		{"server error", http.StatusInternalServerError, nil, "api_error", func(t *testing.T, err error) {
			var unavail *ErrProviderUnavailable
			require.True(t, errors.As(err, &unavail), "got %T (%v)", err, err)
			assert.Equal(t, retryTransient, classify(err))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := anthropicServer(t, tt.status, tt.header, anthropicFailure(tt.kind), nil)

			_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}, MaxTokens: 8})

			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestNewAnthropicProvider(t *testing.T) {
	_, err := NewAnthropicProvider(AnthropicConfig{})
	assert.Error(t, err)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: "claude-sonnet"})
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-5-20250929", p.ModelID())

	p, err = NewAnthropicProvider(AnthropicConfig{APIKey: "k", Model: "claude-opus-4-1"})
	require.NoError(t, err)
	assert.Equal(t, "claude-opus-4-1", p.ModelID(), "unknown names pass through")
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 3*time.Second, parseRetryAfter(" 3 "))
	assert.Zero(t, parseRetryAfter(""))
	assert.Zero(t, parseRetryAfter("Wed, 21 Oct 2026 07:28:00 GMT"))
	assert.Zero(t, parseRetryAfter("-1"))
}
