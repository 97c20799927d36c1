package synth

import (
	"context"

	"google.golang.org/genai"
)

const (
	ProviderGoogle     = "google"
	GoogleDefaultModel = "gemini-2.0-flash"
)

type googleBackend struct {
	client *genai.Client
	model  string
}

func newGoogleBackend(ctx context.Context, cfg Config) (Backend, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	model := cfg.Model
	if model == "" {
		model = GoogleDefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &Error{Provider: ProviderGoogle, Err: err}
	}
	return &googleBackend{client: client, model: model}, nil
}

func (b *googleBackend) Name() string  { return ProviderGoogle }
func (b *googleBackend) Model() string { return b.model }

func (b *googleBackend) Complete(ctx context.Context, system, user string) (Completion, error) {
	resp, err := b.client.Models.GenerateContent(ctx, b.model,
		[]*genai.Content{genai.NewContentFromText(user, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			MaxOutputTokens:   DefaultMaxTokens,
		},
	)
	if err != nil {
		return Completion{}, &Error{Provider: ProviderGoogle, Err: err}
	}
	text := resp.Text()
	if text == "" {
		return Completion{}, &Error{Provider: ProviderGoogle, Err: ErrEmptyResponse}
	}
	out := Completion{Text: text}
	if u := resp.UsageMetadata; u != nil {
		out.InputTokens = int(u.PromptTokenCount)
		out.OutputTokens = int(u.CandidatesTokenCount)
	}
	if out.InputTokens == 0 {
		out.InputTokens = estimateTokens(user)
	}
	if out.OutputTokens == 0 {
		out.OutputTokens = estimateTokens(text)
	}
	return out, nil
}
