// Package llm abstracts the text-generation backends the agents prompt.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client generates a completion for a single prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Settings selects and configures a backend.
type Settings struct {
	Provider string // "gemini" (default), "openai", "deepseek"
	Model    string
	APIKey   string
	BaseURL  string
}

// New builds a Client for the configured provider.
func New(ctx context.Context, s Settings) (Client, error) {
	switch s.Provider {
	case "", "gemini":
		return NewGemini(ctx, s)
	case "openai":
		return NewOpenAI(s)
	case "deepseek":
		if s.BaseURL == "" {
			return nil, errors.New("deepseek provider requires base_url")
		}
		return NewOpenAI(s)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", s.Provider)
	}
}
