package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIEmbedder_OrdersByIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"first", "second"}, req.Input)
		assert.Equal(t, defaultOpenAIModel, req.Model)

		// returned out of order on purpose
		_, _ = w.Write([]byte(`{"data":[
			{"index":1,"embedding":[0,1]},
			{"index":0,"embedding":[1,0]}
		]}`))
	}))
	defer srv.Close()

	embedder := NewOpenAIEmbedder(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})

	got, err := embedder.GenerateEmbeddings(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0}, {0, 1}}, got)
}

func TestOpenAIEmbedder_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"slow down"}`))
	}))
	defer srv.Close()

	embedder := NewOpenAIEmbedder(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})

	_, err := embedder.GenerateEmbedding(context.Background(), "q")
	assert.ErrorContains(t, err, "status 429")

	_, err = embedder.GenerateEmbeddings(context.Background(), nil)
	assert.Error(t, err)
}

func TestOpenAIEmbedder_CountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"index":0,"embedding":[1]}]}`))
	}))
	defer srv.Close()

	embedder := NewOpenAIEmbedder(OpenAIConfig{APIKey: "k", BaseURL: srv.URL})

	_, err := embedder.GenerateEmbeddings(context.Background(), []string{"a", "b"})
	assert.ErrorContains(t, err, "expected 2 embeddings")
}

func TestAnthropicGenerator_GenerateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ak-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "be brief", req.System)
		assert.Equal(t, defaultMaxTokens, req.MaxTokens)
		require.Len(t, req.Messages, 1)

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"  Stop eating at midnight. "}],
			"usage":{"input_tokens":12,"output_tokens":5}}`))
	}))
	defer srv.Close()

	gen := NewAnthropicGenerator(AnthropicConfig{APIKey: "ak-test", BaseURL: srv.URL})

	resp, err := gen.GenerateText(context.Background(), TextGenerationRequest{
		SystemPrompt: "be brief",
		Messages:     []Message{{Role: "user", Content: "when do I stop eating?"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Stop eating at midnight.", resp.Text)
	assert.Equal(t, 12, resp.Usage.InputTokens)
}

func TestNewLLMWithConfig(t *testing.T) {
	client, err := NewLLMWithConfig(&Config{
		EmbedderProvider: ProviderOpenAI,
		EmbedderAPIKey:   "sk",
	})
	require.NoError(t, err)
	assert.Nil(t, client.Generator(), "no generator without an API key")

	client, err = NewLLMWithConfig(&Config{
		EmbedderProvider:  ProviderOpenAI,
		EmbedderAPIKey:    "sk",
		GeneratorProvider: ProviderAnthropic,
		GeneratorAPIKey:   "ak",
	})
	require.NoError(t, err)
	assert.NotNil(t, client.Generator())

	_, err = NewLLMWithConfig(&Config{EmbedderProvider: "cohere"})
	assert.Error(t, err)

	_, err = NewLLMWithConfig(nil)
	assert.Error(t, err)
}
