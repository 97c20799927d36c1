package metrics

import (
	"sync"
	"time"
)

type synthStats struct {
	calls           int
	errors          int
	inputTokens     int
	outputTokens    int
	rateLimitWaits  int
	lastWait        time.Duration
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about synthesizer calls,
// query runs and sandbox executions, mirrored to OpenTelemetry when enabled.
type Recorder struct {
	mu         sync.Mutex
	synth      map[string]*synthStats
	queries    map[string]int
	sandbox    map[string]int
	normalized int
	unparsed   int
	ingestRuns int
	ingestErrs int
	otel       *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		synth:   make(map[string]*synthStats),
		queries: make(map[string]int),
		sandbox: make(map[string]int),
		otel:    otel,
	}
}

// RecordSynthCall increments counters for a code synthesizer call and stores the last observed latency.
func (r *Recorder) RecordSynthCall(provider string, duration time.Duration, inputTokens, outputTokens int, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureSynth(provider)
	stats.calls++
	stats.lastCallLatency = duration
	stats.inputTokens += inputTokens
	stats.outputTokens += outputTokens
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSynthCall(provider, duration, inputTokens, outputTokens, err)
	}
}

// RecordRateLimitWait tracks that a synthesizer call waited on the local rate limiter.
func (r *Recorder) RecordRateLimitWait(provider string, wait time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureSynth(provider)
	stats.rateLimitWaits++
	if wait > 0 {
		stats.lastWait = wait
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimitWait(provider, wait)
	}
}

// RecordQuery counts a canned query run over the given number of games.
func (r *Recorder) RecordQuery(query string, games int, duration time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.queries[query]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordQuery(query, games, duration)
	}
}

// RecordSandboxRun counts an analysis program execution by outcome.
func (r *Recorder) RecordSandboxRun(outcome string, duration time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.sandbox[outcome]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSandboxRun(outcome, duration)
	}
}

// RecordGamesNormalized counts normalized games and the unparseable tokens seen in them.
func (r *Recorder) RecordGamesNormalized(games, unparsed int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.normalized += games
	r.unparsed += unparsed
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordNormalized(games, unparsed)
	}
}

// RecordIngestRun counts a refresh of the season buckets.
func (r *Recorder) RecordIngestRun(duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.ingestRuns++
	if err != nil {
		r.ingestErrs++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordIngestRun(duration, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// SynthCalls returns the total calls recorded for a synthesizer provider.
func (r *Recorder) SynthCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// SynthErrors returns the failed calls recorded for a synthesizer provider.
func (r *Recorder) SynthErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// QueryRuns returns how often a canned query ran.
func (r *Recorder) QueryRuns(query string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.queries[query]
}

// SandboxRuns returns how many executions ended with the outcome.
func (r *Recorder) SandboxRuns(outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sandbox[outcome]
}

// GamesNormalized returns the normalized game and unparseable token totals.
func (r *Recorder) GamesNormalized() (games, unparsed int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.normalized, r.unparsed
}

// IngestRuns returns the total and failed ingest runs.
func (r *Recorder) IngestRuns() (runs, failures int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ingestRuns, r.ingestErrs
}

// Snapshot returns a copy of the current stats for a synthesizer provider.
type Snapshot struct {
	Calls           int
	Errors          int
	InputTokens     int
	OutputTokens    int
	RateLimitWaits  int
	LastWait        time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.synth[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		InputTokens:     stats.inputTokens,
		OutputTokens:    stats.outputTokens,
		RateLimitWaits:  stats.rateLimitWaits,
		LastWait:        stats.lastWait,
		LastCallLatency: stats.lastCallLatency,
	}
}

// ensureSynth must be called with r.mu held.
func (r *Recorder) ensureSynth(provider string) *synthStats {
	stats, ok := r.synth[provider]
	if !ok {
		stats = &synthStats{}
		r.synth[provider] = stats
	}
	return stats
}
