package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMockProvider_FIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"title":"a"}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"title":"b"}`)},
	)

	first, err := mock.Generate(context.Background(), Request{System: "sys"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"a"}`, string(first.Content))
	assert.Equal(t, 10, first.Usage.InputTokens)
	assert.Equal(t, "end", first.StopReason)

	second, err := mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"b"}`, string(second.Content))

	assert.Equal(t, 2, mock.CallCount())
	assert.Equal(t, "sys", mock.Calls[0].System)
	assert.Equal(t, "mock", mock.ModelID())
}

func TestMockProvider_ScriptExhausted(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{Schema: &Schema{Name: "no-example"}})

	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail), "got %T", err)
}

func TestMockProvider_FallsBackToSchemaExample(t *testing.T) {
	schema := &Schema{Name: "with-example", Example: json.RawMessage(`{"title":"Sample"}`)}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"title":"scripted"}`)})

	first, err := mock.Generate(context.Background(), Request{Schema: schema})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"scripted"}`, string(first.Content))

	for range 2 {
		resp, err := mock.Generate(context.Background(), Request{Schema: schema})
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"Sample"}`, string(resp.Content))
	}
	assert.Equal(t, 3, mock.CallCount())
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "quiz-draft", PurposeFrom(WithPurpose(ctx, "quiz-draft")))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "sk"}}, false},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"openrouter with key", Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "sk"}}, false},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"nothing configured", Config{}, true},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearStandardKeys(t *testing.T) {
	for _, k := range standardKeys {
		t.Setenv(k.env, "")
	}
}

func TestConfig_Discover(t *testing.T) {
	t.Run("picks first key in order", func(t *testing.T) {
		clearStandardKeys(t)
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
		t.Setenv("OPENAI_API_KEY", "sk-oai")

		cfg := DefaultConfig()
		require.True(t, cfg.Discover())
		assert.Equal(t, ProviderOpenAI, cfg.Provider)
		assert.Equal(t, "sk-ant", cfg.Anthropic.APIKey)
	})

	t.Run("configured provider keeps its key", func(t *testing.T) {
		clearStandardKeys(t)
		t.Setenv("GEMINI_API_KEY", "env-key")

		cfg := DefaultConfig()
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = "file-key"
		require.True(t, cfg.Discover())
		assert.Equal(t, "file-key", cfg.Gemini.APIKey)
	})

	t.Run("nothing found", func(t *testing.T) {
		clearStandardKeys(t)
		cfg := DefaultConfig()
		assert.False(t, cfg.Discover())
	})
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: ProviderOpenAI}, nil)
	assert.Error(t, err)
}

func TestLoggingProvider(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`), Usage: Usage{InputTokens: 3, OutputTokens: 4}},
		MockResponse{Err: &ErrProviderUnavailable{}},
	)
	p := WithLogging(mock, ProviderMock, zap.New(core))
	ctx := WithPurpose(context.Background(), "quiz-draft")

	_, err := p.Generate(ctx, Request{Schema: &Schema{Name: "quiz-draft"}})
	require.NoError(t, err)
	_, err = p.Generate(ctx, Request{})
	require.Error(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "llm request", entries[0].Message)
	assert.Equal(t, "quiz-draft", entries[0].ContextMap()["purpose"])
	assert.Equal(t, "quiz-draft", entries[0].ContextMap()["schema"])
	assert.Equal(t, int64(3), entries[0].ContextMap()["input_tokens"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	require.NotNil(t, c)
	assert.InDelta(t, 0.75, c.Cost(1_000_000, 1_000_000), 1e-9)
	assert.Nil(t, LookupCost("mock"))
}
