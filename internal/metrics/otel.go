package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// DefaultServiceName names the meter and resource when none is configured.
const DefaultServiceName = "jeopardy-stats-service"

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

type otelInstruments struct {
	ctx              context.Context
	meter            metric.Meter
	requests         metric.Int64Counter
	requestLatencyMs metric.Float64Histogram
	synthCalls       metric.Int64Counter
	synthErrors      metric.Int64Counter
	synthLatencyMs   metric.Float64Histogram
	synthTokens      metric.Int64Counter
	rateLimitWaits   metric.Int64Counter
	rateLimitWaitMs  metric.Float64Histogram
	queryRuns        metric.Int64Counter
	queryGames       metric.Float64Histogram
	queryLatencyMs   metric.Float64Histogram
	sandboxRuns      metric.Int64Counter
	sandboxLatencyMs metric.Float64Histogram
	gamesNormalized  metric.Int64Counter
	unparsedTokens   metric.Int64Counter
	ingestRuns       metric.Int64Counter
	ingestErrors     metric.Int64Counter
	ingestLatencyMs  metric.Float64Histogram
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter(DefaultServiceName)
	o := &otelInstruments{ctx: context.Background(), meter: meter}

	counters := []struct {
		name string
		dst  *metric.Int64Counter
	}{
		{"http_requests_total", &o.requests},
		{"synth_calls_total", &o.synthCalls},
		{"synth_errors_total", &o.synthErrors},
		{"synth_tokens_total", &o.synthTokens},
		{"synth_rate_limit_waits_total", &o.rateLimitWaits},
		{"query_runs_total", &o.queryRuns},
		{"sandbox_runs_total", &o.sandboxRuns},
		{"games_normalized_total", &o.gamesNormalized},
		{"unparsed_tokens_total", &o.unparsedTokens},
		{"ingest_runs_total", &o.ingestRuns},
		{"ingest_errors_total", &o.ingestErrors},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name)
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}

	histograms := []struct {
		name string
		dst  *metric.Float64Histogram
	}{
		{"http_request_duration_ms", &o.requestLatencyMs},
		{"synth_duration_ms", &o.synthLatencyMs},
		{"synth_rate_limit_wait_ms", &o.rateLimitWaitMs},
		{"query_games", &o.queryGames},
		{"query_duration_ms", &o.queryLatencyMs},
		{"sandbox_duration_ms", &o.sandboxLatencyMs},
		{"ingest_duration_ms", &o.ingestLatencyMs},
	}
	for _, h := range histograms {
		hist, err := meter.Float64Histogram(h.name)
		if err != nil {
			return nil, err
		}
		*h.dst = hist
	}

	return o, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.recordCounter(o.requests, 1, attrs...)
	o.recordHistogram(o.requestLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordSynthCall(provider string, duration time.Duration, inputTokens, outputTokens int, err error) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	o.recordCounter(o.synthCalls, 1, attrs...)
	o.recordHistogram(o.synthLatencyMs, float64(duration.Milliseconds()), attrs...)
	o.recordCounter(o.synthTokens, int64(inputTokens), append(attrs, attribute.String("direction", "input"))...)
	o.recordCounter(o.synthTokens, int64(outputTokens), append(attrs, attribute.String("direction", "output"))...)
	if err != nil {
		o.recordCounter(o.synthErrors, 1, attrs...)
	}
}

func (o *otelInstruments) recordRateLimitWait(provider string, wait time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrProvider, provider)}
	o.recordCounter(o.rateLimitWaits, 1, attrs...)
	if wait > 0 {
		o.recordHistogram(o.rateLimitWaitMs, float64(wait.Milliseconds()), attrs...)
	}
}

func (o *otelInstruments) recordQuery(query string, games int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrQuery, query)}
	o.recordCounter(o.queryRuns, 1, attrs...)
	o.recordHistogram(o.queryGames, float64(games), attrs...)
	o.recordHistogram(o.queryLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordSandboxRun(outcome string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String(AttrOutcome, outcome)}
	o.recordCounter(o.sandboxRuns, 1, attrs...)
	o.recordHistogram(o.sandboxLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordNormalized(games, unparsed int) {
	if o == nil {
		return
	}
	o.recordCounter(o.gamesNormalized, int64(games))
	if unparsed > 0 {
		o.recordCounter(o.unparsedTokens, int64(unparsed))
	}
}

func (o *otelInstruments) recordIngestRun(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.recordCounter(o.ingestRuns, 1)
	o.recordHistogram(o.ingestLatencyMs, float64(duration.Milliseconds()))
	if err != nil {
		o.recordCounter(o.ingestErrors, 1)
	}
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil || counter == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil || hist == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
