package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-share-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"response":"[\"algebra\",\"notes\"]","done":true}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL+"/", "")
	text, err := p.Generate(context.Background(), "tags please", llm.WithMaxTokens(64))
	require.NoError(t, err)

	assert.Equal(t, `["algebra","notes"]`, text)
	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, "tags please", got.Prompt)
	assert.False(t, got.Stream)
	assert.Equal(t, 64, got.Options.NumPredict)
}

func TestChat_MapsRolesAndModelOverride(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"hi"}}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "gemma:2b")
	text, err := p.Chat(context.Background(), []llm.Message{
		{Role: "user", Content: "hello"},
		{Role: "model", Content: "hey"},
	}, llm.WithModel("qwen2"))
	require.NoError(t, err)

	assert.Equal(t, "hi", text)
	assert.Equal(t, "qwen2", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "assistant", got.Messages[1].Role)
}

func TestErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/chat" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"model not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"response":"  "}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "")

	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")

	_, err = p.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, llm.ErrUnexpectedFormat)
}
