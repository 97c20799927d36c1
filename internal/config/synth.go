package config

import "strings"

// SynthConfig selects the model provider used to write analysis programs.
type SynthConfig struct {
	Provider string   `yaml:"provider" validate:"oneof=fixture anthropic openai google"`
	Model    string   `yaml:"model"`
	APIKey   string   `yaml:"apiKey"`
	BaseURL  string   `yaml:"baseURL" validate:"omitempty,url"`
	Rate     float64  `yaml:"rate" validate:"gte=0"`
	Burst    int      `yaml:"burst" validate:"gte=0"`
	Timeout  Duration `yaml:"timeout" validate:"gte=0"`
}

// SandboxConfig bounds analysis program execution.
type SandboxConfig struct {
	Timeout Duration `yaml:"timeout" validate:"gte=0"`
}

var providerKeyEnv = map[string]string{
	"anthropic": envAnthropicAPIKey,
	"openai":    envOpenAIAPIKey,
	"google":    envGeminiAPIKey,
}

func loadSynth(base SynthConfig) SynthConfig {
	cfg := SynthConfig{
		Provider: strings.ToLower(envOrDefault(envSynthProvider, base.Provider)),
		Model:    envOrDefault(envSynthModel, base.Model),
		APIKey:   envOrDefault(envSynthAPIKey, base.APIKey),
		BaseURL:  envOrDefault(envSynthBaseURL, base.BaseURL),
		Rate:     floatEnvOrDefault(envSynthRate, base.Rate),
		Burst:    intEnvOrDefault(envSynthBurst, base.Burst),
		Timeout:  durationEnvOrDefault(envSynthTimeout, base.Timeout),
	}
	if cfg.APIKey == "" {
		if key, ok := providerKeyEnv[cfg.Provider]; ok {
			cfg.APIKey = envOrDefault(key, "")
		}
	}
	return cfg
}

func loadSandbox(base SandboxConfig) SandboxConfig {
	return SandboxConfig{
		Timeout: durationEnvOrDefault(envSandboxTimeout, base.Timeout),
	}
}
