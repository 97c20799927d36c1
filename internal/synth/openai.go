package synth

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	ProviderOpenAI     = "openai"
	OpenAIDefaultModel = "gpt-4o"
)

type openAIBackend struct {
	client *openai.Client
	model  string
}

func newOpenAIBackend(cfg Config) (Backend, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	model := cfg.Model
	if model == "" {
		model = OpenAIDefaultModel
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &openAIBackend{client: openai.NewClientWithConfig(clientConfig), model: model}, nil
}

func (b *openAIBackend) Name() string  { return ProviderOpenAI }
func (b *openAIBackend) Model() string { return b.model }

func (b *openAIBackend) Complete(ctx context.Context, system, user string) (Completion, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     b.model,
		MaxTokens: DefaultMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return Completion{}, &Error{Provider: ProviderOpenAI, StatusCode: apiErr.HTTPStatusCode, Err: err}
		}
		return Completion{}, &Error{Provider: ProviderOpenAI, Err: err}
	}
	if len(resp.Choices) == 0 {
		return Completion{}, &Error{Provider: ProviderOpenAI, Err: ErrEmptyResponse}
	}
	return Completion{
		Text:         resp.Choices[0].Message.Content,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}
