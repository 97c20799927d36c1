// Package fs reads scraped game records from a directory of JSON files.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"jeopardy-stats-service/internal/domain/games"
	"jeopardy-stats-service/internal/logging"
	"jeopardy-stats-service/internal/providers"
)

// ProviderName identifies this provider in logs and config.
const ProviderName = "fs"

// Provider loads every *.json file in a directory, one game per file.
type Provider struct {
	dir    string
	logger *slog.Logger
}

// New constructs a directory provider.
func New(dir string, logger *slog.Logger) *Provider {
	return &Provider{dir: dir, logger: logger}
}

func (p *Provider) Name() string {
	return ProviderName
}

// FetchRawGames decodes the files in name order. Files that fail to decode
// are logged and skipped.
func (p *Provider) FetchRawGames(ctx context.Context) ([]games.RawGame, error) {
	files, err := p.files()
	if err != nil {
		return nil, err
	}

	out := make([]games.RawGame, 0, len(files))
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := p.decode(name)
		if err != nil {
			providers.LogWarn(ctx, p.logger, ProviderName, "skipping raw game", err,
				slog.String(logging.FieldFile, name),
			)
			continue
		}
		out = append(out, raw)
	}
	providers.LogInfo(ctx, p.logger, ProviderName, "raw games loaded",
		slog.Int(logging.FieldCount, len(out)),
		slog.Int("files", len(files)),
	)
	return out, nil
}

func (p *Provider) files() ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, fmt.Errorf("read raw game dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names, nil
}

func (p *Provider) decode(name string) (games.RawGame, error) {
	data, err := os.ReadFile(filepath.Join(p.dir, name))
	if err != nil {
		return games.RawGame{}, err
	}
	var raw games.RawGame
	if err := json.Unmarshal(data, &raw); err != nil {
		return games.RawGame{}, &providers.DecodeError{Provider: ProviderName, File: name, Err: err}
	}
	return raw, nil
}
