// Package providers yields scraped game records for ingestion.
package providers

import (
	"context"

	"jeopardy-stats-service/internal/domain/games"
)

// RawGameProvider yields scraped game records in source order.
type RawGameProvider interface {
	Name() string
	FetchRawGames(ctx context.Context) ([]games.RawGame, error)
}
