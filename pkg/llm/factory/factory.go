package factory

import (
	"fmt"

	"campus-share-be/pkg/llm"
	"campus-share-be/pkg/llm/gemini"
	"campus-share-be/pkg/llm/ollama"
)

type Settings struct {
	Provider      string // "gemini" or "ollama"
	Model         string
	OllamaBaseURL string
	GeminiAPIKey  string
}

func NewLLMProvider(s Settings) (llm.LLMProvider, error) {
	switch s.Provider {
	case "gemini", "":
		return gemini.NewGeminiProvider(s.GeminiAPIKey, s.Model), nil
	case "ollama":
		return ollama.NewOllamaProvider(s.OllamaBaseURL, s.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
}
