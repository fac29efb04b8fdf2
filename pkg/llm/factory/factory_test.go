package factory

import (
	"testing"

	"campus-share-be/pkg/llm/gemini"
	"campus-share-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(Settings{Provider: "gemini", GeminiAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &gemini.GeminiProvider{}, p)

	p, err = NewLLMProvider(Settings{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	if o, ok := p.(*ollama.OllamaProvider); assert.True(t, ok) {
		assert.Equal(t, "http://localhost:11434", o.BaseURL)
	}

	_, err = NewLLMProvider(Settings{Provider: "openai"})
	assert.Error(t, err)
}
