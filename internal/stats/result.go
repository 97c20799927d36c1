// Package stats holds the aggregate queries run over normalized games.
// Every aggregator is a pure fold: it builds a fresh accumulator, never
// mutates its input and returns a tabular Result.
package stats

import (
	"math"
	"strconv"

	"jeopardy-stats-service/internal/domain/games"
)

// Row is one flat result row of column name to scalar.
type Row map[string]any

// Result is the tabular output shared by canned queries and analysis programs.
type Result struct {
	Query       string `json:"query,omitempty"`
	Description string `json:"description" validate:"required"`
	TotalGames  int    `json:"totalGames" validate:"gte=0"`
	Results     []Row  `json:"results" validate:"required"`
}

// Aggregator folds a game sequence into a Result.
type Aggregator func([]games.Game) Result

// Fixed1 formats x with one decimal, rounding halves away from zero.
func Fixed1(x float64) string {
	return strconv.FormatFloat(math.Round(x*10)/10, 'f', 1, 64)
}

// Percent formats count as a share of total, "0.0" when total is zero.
func Percent(count, total int) string {
	if total <= 0 {
		return "0.0"
	}
	return Fixed1(float64(count) / float64(total) * 100)
}

// Average formats sum/count, "0.0" when count is zero.
func Average(sum float64, count int) string {
	if count <= 0 {
		return "0.0"
	}
	return Fixed1(sum / float64(count))
}

// complement returns 100 minus an already formatted percentage.
func complement(pct string) string {
	v, err := strconv.ParseFloat(pct, 64)
	if err != nil {
		return "0.0"
	}
	return Fixed1(100 - v)
}
