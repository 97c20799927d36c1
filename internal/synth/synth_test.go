package synth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"golang.org/x/time/rate"

	"jeopardy-stats-service/internal/metrics"
	"jeopardy-stats-service/internal/testutil"
)

type stubBackend struct {
	text  string
	err   error
	calls int
	ctx   context.Context
}

func (s *stubBackend) Name() string  { return "stub" }
func (s *stubBackend) Model() string { return "stub-1" }

func (s *stubBackend) Complete(ctx context.Context, system, user string) (Completion, error) {
	s.calls++
	s.ctx = ctx
	if s.err != nil {
		return Completion{}, s.err
	}
	return Completion{Text: s.text, InputTokens: 1000, OutputTokens: 200}, nil
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```go\npackage main\n```", "package main"},
		{"```golang\npackage main\n```\n", "package main"},
		{"```\npackage main```", "package main"},
		{"  package main  ", "package main"},
		{"```go\n```", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StripFences(tc.in), tc.in)
	}
}

func TestPricingCost(t *testing.T) {
	u := DefaultPricing.Cost(1_000_000, 100_000)
	assert.Equal(t, 1_000_000, u.InputTokens)
	assert.InDelta(t, 3.0, u.InputCost, 1e-9)
	assert.InDelta(t, 1.5, u.OutputCost, 1e-9)
	assert.InDelta(t, 4.5, u.TotalCost, 1e-9)

	assert.Equal(t, Usage{}, DefaultPricing.Cost(0, 0))
}

func TestGenerateStripsFencesAndPrices(t *testing.T) {
	rec := metrics.NewRecorder()
	logger, buf := testutil.NewBufferLogger()
	backend := &stubBackend{text: "```go\npackage main\n```"}
	c := NewClient(backend, logger, rec)

	got, err := c.Generate(context.Background(), "  Who wins?  ")
	require.NoError(t, err)

	assert.Equal(t, "package main", got.Code)
	assert.Equal(t, "stub", got.Provider)
	assert.Equal(t, "stub-1", got.Model)
	assert.InDelta(t, 0.003+0.003, got.Usage.TotalCost, 1e-9)
	assert.Equal(t, 1, rec.SynthCalls("stub"))
	assert.Equal(t, 1000, rec.Snapshot("stub").InputTokens)
	assert.Contains(t, buf.String(), "code synthesized")
	assert.Equal(t, "stub", c.Provider())
}

func TestGenerateErrors(t *testing.T) {
	rec := metrics.NewRecorder()
	c := NewClient(&stubBackend{err: errors.New("boom")}, nil, rec)

	_, err := c.Generate(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)

	_, err = c.Generate(context.Background(), "q")
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, rec.SynthErrors("stub"))

	empty := NewClient(&stubBackend{text: "```\n```"}, nil, nil)
	_, err = empty.Generate(context.Background(), "q")
	assert.ErrorIs(t, err, ErrEmptyResponse)
	synthErr, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, "stub", synthErr.Provider)
}

func TestUserPromptQuotesQuestion(t *testing.T) {
	p := UserPrompt(`Who "wins"?`)
	assert.Contains(t, p, `"Who \"wins\"?"`)
	assert.Contains(t, p, "func Analyze")
	assert.True(t, strings.Contains(SystemPrompt, "helpers.GetWinner"))
}

func TestErrorString(t *testing.T) {
	err := &Error{Provider: "openai", StatusCode: 429, Err: errors.New("slow down")}
	assert.Equal(t, "openai request failed (status=429): slow down", err.Error())
	assert.Equal(t, "openai request failed: x", (&Error{Provider: "openai", Err: errors.New("x")}).Error())
	_, ok := AsError(errors.New("plain"))
	assert.False(t, ok)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next Backend) Backend {
			return &recordingBackend{Backend: next, name: name, order: &order}
		}
	}
	b := Chain(&stubBackend{text: "x"}, mark("outer"), mark("inner"))
	_, err := b.Complete(context.Background(), "s", "u")
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

type recordingBackend struct {
	Backend
	name  string
	order *[]string
}

func (r *recordingBackend) Complete(ctx context.Context, system, user string) (Completion, error) {
	*r.order = append(*r.order, r.name)
	return r.Backend.Complete(ctx, system, user)
}

func TestRateLimitMiddleware(t *testing.T) {
	rec := metrics.NewRecorder()
	limiter := rate.NewLimiter(rate.Every(50*time.Millisecond), 1)
	b := RateLimit(limiter, rec)(&stubBackend{text: "x"})

	for range 2 {
		_, err := b.Complete(context.Background(), "s", "u")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, rec.Snapshot("stub").RateLimitWaits)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.Complete(ctx, "s", "u")
	require.Error(t, err)
	_, ok := AsError(err)
	assert.True(t, ok)
}

func TestTimeoutMiddleware(t *testing.T) {
	stub := &stubBackend{text: "x"}
	_, err := Timeout(time.Second)(stub).Complete(context.Background(), "s", "u")
	require.NoError(t, err)
	_, hasDeadline := stub.ctx.Deadline()
	assert.True(t, hasDeadline)

	assert.Same(t, Backend(stub), Timeout(0)(stub))
}

func TestTracingMiddleware(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	tracer := tp.Tracer("test")

	_, err := Tracing(tracer)(&stubBackend{text: "x"}).Complete(context.Background(), "s", "u")
	require.NoError(t, err)
	_, err = Tracing(tracer)(&stubBackend{err: errors.New("down")}).Complete(context.Background(), "s", "u")
	require.Error(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "synth.complete", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)

	attrs := map[string]any{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, "stub", attrs["synth.provider"])
	assert.Equal(t, int64(1000), attrs["synth.tokens.input"])
}

func TestNewBackend(t *testing.T) {
	ctx := context.Background()

	b, err := NewBackend(ctx, Config{})
	require.NoError(t, err)
	assert.Equal(t, ProviderFixture, b.Name())

	for _, p := range []string{ProviderAnthropic, ProviderOpenAI, ProviderGoogle} {
		_, err := NewBackend(ctx, Config{Provider: p})
		assert.ErrorIs(t, err, ErrMissingAPIKey, p)
	}

	b, err = NewBackend(ctx, Config{Provider: "Anthropic", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, AnthropicDefaultModel, b.Model())

	b, err = NewBackend(ctx, Config{Provider: ProviderOpenAI, APIKey: "k", Model: "gpt-x", Timeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, "gpt-x", b.Model())

	_, err = NewBackend(ctx, Config{Provider: "watson"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNewFixtureClientGeneratesProgram(t *testing.T) {
	c, err := New(context.Background(), Config{Provider: ProviderFixture, Rate: 100, Burst: 0}, nil, nil)
	require.NoError(t, err)

	got, err := c.Generate(context.Background(), "Does the leader win?")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.Code, "package main"))
	assert.False(t, strings.Contains(got.Code, "```"))
	assert.Positive(t, got.Usage.InputTokens)
	assert.Equal(t, ProviderFixture, got.Provider)
}
