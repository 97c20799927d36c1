// Package synth turns free-form questions into analysis programs by
// prompting a language model.
package synth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"jeopardy-stats-service/internal/logging"
	"jeopardy-stats-service/internal/metrics"
)

// DefaultMaxTokens caps the length of a generated program.
const DefaultMaxTokens = 2048

// Completion is the raw reply of a model call.
type Completion struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// Backend sends one system and user prompt pair to a model.
type Backend interface {
	Name() string
	Model() string
	Complete(ctx context.Context, system, user string) (Completion, error)
}

// Middleware decorates a backend.
type Middleware func(Backend) Backend

// Chain applies middlewares so the first one listed is outermost.
func Chain(b Backend, mws ...Middleware) Backend {
	for i := len(mws) - 1; i >= 0; i-- {
		b = mws[i](b)
	}
	return b
}

// Generated is a synthesized analysis program.
type Generated struct {
	Code     string `json:"code"`
	Usage    Usage  `json:"usage"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// Synthesizer generates analysis code for a question.
type Synthesizer interface {
	Generate(ctx context.Context, question string) (Generated, error)
}

// Client is the Synthesizer over a Backend.
type Client struct {
	backend Backend
	pricing Pricing
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewClient wraps backend with the given middlewares.
func NewClient(backend Backend, logger *slog.Logger, recorder *metrics.Recorder, mws ...Middleware) *Client {
	return &Client{
		backend: Chain(backend, mws...),
		pricing: DefaultPricing,
		logger:  logger,
		metrics: recorder,
	}
}

// Provider names the backing model provider.
func (c *Client) Provider() string {
	return c.backend.Name()
}

// Generate prompts the model and returns the program with fences removed.
func (c *Client) Generate(ctx context.Context, question string) (Generated, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Generated{}, ErrEmptyQuestion
	}

	start := time.Now()
	completion, err := c.backend.Complete(ctx, SystemPrompt, UserPrompt(question))
	elapsed := time.Since(start)
	c.metrics.RecordSynthCall(c.backend.Name(), elapsed, completion.InputTokens, completion.OutputTokens, err)

	logger := logging.FromContext(ctx, c.logger)
	if err != nil {
		logging.Error(logger, "code synthesis failed", err,
			slog.String(logging.FieldProvider, c.backend.Name()),
			slog.String(logging.FieldModel, c.backend.Model()),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
		)
		return Generated{}, err
	}

	code := StripFences(completion.Text)
	if code == "" {
		return Generated{}, &Error{Provider: c.backend.Name(), Err: ErrEmptyResponse}
	}

	usage := c.pricing.Cost(completion.InputTokens, completion.OutputTokens)
	logging.Info(logger, "code synthesized",
		slog.String(logging.FieldProvider, c.backend.Name()),
		slog.String(logging.FieldModel, c.backend.Model()),
		slog.Int("input_tokens", usage.InputTokens),
		slog.Int("output_tokens", usage.OutputTokens),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	return Generated{
		Code:     code,
		Usage:    usage,
		Provider: c.backend.Name(),
		Model:    c.backend.Model(),
	}, nil
}
