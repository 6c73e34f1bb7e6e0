package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAI implements Client using the official openai-go SDK (chat
// completions). DeepSeek is served by the same client via base_url.
type OpenAI struct {
	model string
	opts  []option.RequestOption
}

func NewOpenAI(s Settings) (*OpenAI, error) {
	if s.APIKey == "" {
		return nil, errors.New("openai api key missing; provide llm.api_key or the provider's API key env var")
	}
	model := s.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	opts := []option.RequestOption{option.WithAPIKey(s.APIKey)}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	return &OpenAI{model: model, opts: opts}, nil
}

func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	client := openai.NewClient(o.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
