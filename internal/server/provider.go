package server

import (
	"fmt"
	"log/slog"

	"jeopardy-stats-service/internal/config"
	"jeopardy-stats-service/internal/providers"
	"jeopardy-stats-service/internal/providers/fixture"
	"jeopardy-stats-service/internal/providers/fs"
	"jeopardy-stats-service/internal/providers/remote"
)

// selectProvider builds the raw game source named by cfg.Data.Source,
// wrapped with retries.
func selectProvider(cfg config.DataConfig, logger *slog.Logger) (providers.RawGameProvider, error) {
	var base providers.RawGameProvider
	switch cfg.Source {
	case fs.ProviderName, "":
		base = fs.New(cfg.RawDir, logger)
	case remote.ProviderName:
		client, err := remote.NewClient(remote.Config{BaseURL: cfg.RawURL, APIKey: cfg.RawAPIKey}, logger)
		if err != nil {
			return nil, err
		}
		base = client
	case fixture.ProviderName:
		base = fixture.New()
	default:
		return nil, fmt.Errorf("unknown raw source %q", cfg.Source)
	}
	return providers.NewRetryingProvider(base, logger, 0, 0), nil
}
