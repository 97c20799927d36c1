package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"jeopardy-stats-service/internal/app/ingest"
	"jeopardy-stats-service/internal/domain/games"
	"jeopardy-stats-service/internal/synth"
)

// StubRawProvider is a test double for providers.RawGameProvider.
type StubRawProvider struct {
	Games  []games.RawGame
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// Name identifies the stub provider.
func (s *StubRawProvider) Name() string { return "stub" }

// FetchRawGames returns configured games and error while tracking calls.
func (s *StubRawProvider) FetchRawGames(ctx context.Context) ([]games.RawGame, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Games, s.Err
}

// StubBucketWriter is a test double for ingest.BucketWriter.
type StubBucketWriter struct {
	mu      sync.Mutex
	Written map[string][]games.Game
	Err     error
}

// WriteBuckets records the buckets for verification in tests.
func (w *StubBucketWriter) WriteBuckets(buckets map[string][]games.Game) error {
	if w.Err != nil {
		return w.Err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.Written == nil {
		w.Written = make(map[string][]games.Game)
	}
	for name, gs := range buckets {
		w.Written[name] = gs
	}
	return nil
}

// Bucket returns the last games written to name.
func (w *StubBucketWriter) Bucket(name string) []games.Game {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Written[name]
}

// StubRunner is a test double for an ingest run.
type StubRunner struct {
	mu      sync.Mutex
	Summary ingest.Summary
	Err     error
	Calls   atomic.Int32
	Notify  chan struct{}
}

// Run returns the configured summary and error while tracking calls.
func (r *StubRunner) Run(ctx context.Context) (ingest.Summary, error) {
	_ = ctx
	if r.Notify != nil {
		select {
		case <-r.Notify:
		default:
			close(r.Notify)
		}
	}
	r.Calls.Add(1)
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Summary, r.Err
}

// SetErr swaps the error returned by later runs.
func (r *StubRunner) SetErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Err = err
}

// StubSynthesizer is a test double for synth.Synthesizer.
type StubSynthesizer struct {
	Code      string
	Err       error
	Questions []string
}

// Generate records the question and returns the configured code.
func (s *StubSynthesizer) Generate(ctx context.Context, question string) (synth.Generated, error) {
	_ = ctx
	s.Questions = append(s.Questions, question)
	if s.Err != nil {
		return synth.Generated{}, s.Err
	}
	return synth.Generated{
		Code:     s.Code,
		Usage:    synth.DefaultPricing.Cost(100, 50),
		Provider: "stub",
		Model:    "stub",
	}, nil
}
