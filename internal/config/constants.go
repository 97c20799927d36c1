package config

import "time"

const (
	envConfigFile      = "JSTATS_CONFIG"
	envPort            = "PORT"
	envPollInterval    = "POLL_INTERVAL"
	envPollEnabled     = "POLL_ENABLED"
	envRawSource       = "RAW_SOURCE"
	envRawDir          = "RAW_DATA_DIR"
	envRawURL          = "RAW_URL"
	envRawAPIKey       = "RAW_API_KEY"
	envGameDir         = "GAME_DATA_DIR"
	envQuestionsFile   = "QUESTIONS_FILE"
	envStartSeason     = "START_SEASON"
	envLoadConcurrency = "SEASON_LOAD_CONCURRENCY"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envSynthProvider   = "SYNTH_PROVIDER"
	envSynthModel      = "SYNTH_MODEL"
	envSynthAPIKey     = "SYNTH_API_KEY"
	envSynthBaseURL    = "SYNTH_BASE_URL"
	envSynthRate       = "SYNTH_RATE"
	envSynthBurst      = "SYNTH_BURST"
	envSynthTimeout    = "SYNTH_TIMEOUT"
	envSandboxTimeout  = "SANDBOX_TIMEOUT"
	envAnthropicAPIKey = "ANTHROPIC_API_KEY"
	envOpenAIAPIKey    = "OPENAI_API_KEY"
	envGeminiAPIKey    = "GEMINI_API_KEY"

	defaultPort = "4000"
	// Raw game directories change rarely; a slow refresh keeps disk churn low.
	defaultPollInterval    = 15 * Duration(time.Minute)
	defaultPollEnabled     = false
	defaultRawSource       = "fs"
	defaultRawDir          = "data/raw"
	defaultGameDir         = "data/games"
	defaultQuestionsFile   = "data/questions.json"
	defaultStartSeason     = 1
	defaultLoadConcurrency = 4
	defaultMetricsPort     = "9090"
	defaultServiceName     = "jeopardy-stats-service"
	defaultSynthProvider   = "fixture"
	defaultSynthRate       = 0.5
	defaultSynthBurst      = 1
	defaultSynthTimeout    = 60 * Duration(time.Second)
	defaultSandboxTimeout  = 30 * Duration(time.Second)
)
