package normalize

import (
	"context"
	"log/slog"

	"jeopardy-stats-service/internal/domain/games"
	"jeopardy-stats-service/internal/logging"
	"jeopardy-stats-service/internal/metrics"
)

// MaxContestants is the number of finalScores rows kept per game.
const MaxContestants = 3

// Normalize converts one scraped record into a canonical game. Absent
// rounds or scores are skipped; partial data never aborts normalization.
func Normalize(raw games.RawGame) games.Game {
	g, _ := normalize(raw)
	return g
}

func normalize(raw games.RawGame) (games.Game, int) {
	q := &quality{}

	g := games.Game{
		GameID:         raw.GameID,
		ShowNumber:     raw.ShowNumber.String(),
		Title:          raw.Title,
		Date:           raw.Date,
		Comments:       raw.Comments,
		Contestants:    cloneStrings(raw.Contestants),
		CoryatScores:   scoreEntries(raw.CoryatScores, q),
		Classification: raw.Classification,
	}

	players := make([]string, len(raw.FinalScores))
	for i, s := range raw.FinalScores {
		players[i] = s.Player
	}
	tracker := NewTracker(players)

	g.Rounds.Jeopardy = reconstructRound(raw.Rounds.Jeopardy, tracker, q)
	g.Rounds.DoubleJeopardy = reconstructRound(raw.Rounds.DoubleJeopardy, tracker, q)

	if fj := raw.Rounds.FinalJeopardy; fj != nil {
		g.Rounds.FinalJeopardy = &games.FinalRound{
			Category:  fj.Category,
			Clue:      fj.Clue,
			Answer:    fj.Answer,
			Responses: PairFinalResponses(fj.Responses, tracker.Totals()),
		}
	}

	final := raw.FinalScores
	if len(final) > MaxContestants {
		final = final[:MaxContestants]
	}
	g.FinalScores = scoreEntries(final, q)
	if len(g.FinalScores) > 0 {
		g.Contestants = make([]string, len(g.FinalScores))
		for i, s := range g.FinalScores {
			g.Contestants[i] = s.Player
		}
	}

	return g, q.unparsed
}

// Normalizer wraps Normalize with data-quality logging and metrics.
type Normalizer struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func NewNormalizer(logger *slog.Logger, recorder *metrics.Recorder) *Normalizer {
	return &Normalizer{logger: logger, metrics: recorder}
}

// Normalize normalizes one record. Unparseable tokens are logged at debug
// level and coerced to 0.
func (n *Normalizer) Normalize(ctx context.Context, raw games.RawGame) games.Game {
	g, unparsed := normalize(raw)
	if unparsed > 0 && n.logger != nil {
		n.logger.DebugContext(ctx, "unparseable tokens coerced to zero",
			logging.FieldGameID, raw.GameID,
			logging.FieldDate, raw.Date,
			logging.FieldCount, unparsed,
		)
	}
	n.metrics.RecordGamesNormalized(1, unparsed)
	return g
}

// NormalizeAll normalizes a batch in order.
func (n *Normalizer) NormalizeAll(ctx context.Context, raw []games.RawGame) []games.Game {
	out := make([]games.Game, 0, len(raw))
	for _, r := range raw {
		out = append(out, n.Normalize(ctx, r))
	}
	return out
}
