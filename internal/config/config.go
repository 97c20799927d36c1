// Package config loads runtime settings from an optional YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the server and CLI.
type Config struct {
	Port         string        `yaml:"port" validate:"required,numeric"`
	PollInterval Duration      `yaml:"pollInterval" validate:"gt=0"`
	PollEnabled  bool          `yaml:"pollEnabled"`
	Log          LogConfig     `yaml:"log"`
	Data         DataConfig    `yaml:"data"`
	Metrics      MetricsConfig `yaml:"metrics"`
	Synth        SynthConfig   `yaml:"synth"`
	Sandbox      SandboxConfig `yaml:"sandbox"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// DataConfig locates raw games, season buckets and saved questions.
// Source picks where raw games come from: a directory, an HTTP archive or
// the built-in fixture.
type DataConfig struct {
	Source          string `yaml:"source" validate:"oneof=fs remote fixture"`
	RawDir          string `yaml:"rawDir" validate:"required_if=Source fs"`
	RawURL          string `yaml:"rawURL" validate:"required_if=Source remote,omitempty,url"`
	RawAPIKey       string `yaml:"rawAPIKey"`
	GameDir         string `yaml:"gameDir" validate:"required"`
	QuestionsFile   string `yaml:"questionsFile" validate:"required"`
	StartSeason     int    `yaml:"startSeason" validate:"gte=1"`
	LoadConcurrency int    `yaml:"loadConcurrency" validate:"gte=1,lte=64"`
}

// Defaults returns the configuration used when neither file nor
// environment sets a value.
func Defaults() Config {
	return Config{
		Port:         defaultPort,
		PollInterval: defaultPollInterval,
		PollEnabled:  defaultPollEnabled,
		Data: DataConfig{
			Source:          defaultRawSource,
			RawDir:          defaultRawDir,
			GameDir:         defaultGameDir,
			QuestionsFile:   defaultQuestionsFile,
			StartSeason:     defaultStartSeason,
			LoadConcurrency: defaultLoadConcurrency,
		},
		Metrics: MetricsConfig{
			Enabled:      true,
			Port:         defaultMetricsPort,
			ServiceName:  defaultServiceName,
			OtlpInsecure: true,
		},
		Synth: SynthConfig{
			Provider: defaultSynthProvider,
			Rate:     defaultSynthRate,
			Burst:    defaultSynthBurst,
			Timeout:  defaultSynthTimeout,
		},
		Sandbox: SandboxConfig{Timeout: defaultSandboxTimeout},
	}
}

// Load reads JSTATS_CONFIG when set, applies environment overrides and
// validates the result.
func Load() (Config, error) {
	base := Defaults()
	if path := os.Getenv(envConfigFile); path != "" {
		if err := readFile(path, &base); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		Port:         envOrDefault(envPort, base.Port),
		PollInterval: durationEnvOrDefault(envPollInterval, base.PollInterval),
		PollEnabled:  boolEnvOrDefault(envPollEnabled, base.PollEnabled),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, base.Log.Level),
			Format: envOrDefault(envLogFormat, base.Log.Format),
		},
		Data: DataConfig{
			Source:          strings.ToLower(envOrDefault(envRawSource, base.Data.Source)),
			RawDir:          envOrDefault(envRawDir, base.Data.RawDir),
			RawURL:          envOrDefault(envRawURL, base.Data.RawURL),
			RawAPIKey:       envOrDefault(envRawAPIKey, base.Data.RawAPIKey),
			GameDir:         envOrDefault(envGameDir, base.Data.GameDir),
			QuestionsFile:   envOrDefault(envQuestionsFile, base.Data.QuestionsFile),
			StartSeason:     intEnvOrDefault(envStartSeason, base.Data.StartSeason),
			LoadConcurrency: intEnvOrDefault(envLoadConcurrency, base.Data.LoadConcurrency),
		},
		Metrics: loadMetrics(base.Metrics),
		Synth:   loadSynth(base.Synth),
		Sandbox: loadSandbox(base.Sandbox),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func readFile(path string, dst *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// IsValidationError reports whether err came from field validation.
func IsValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}
