// Package normalize turns scraped game records into score-consistent games.
package normalize

import (
	"strings"

	"jeopardy-stats-service/internal/domain/games"
)

// TripleStumper is the scraped placeholder for "nobody answered".
const TripleStumper = "Triple Stumper"

var scoreStripper = strings.NewReplacer("$", "", ",", "")

// Coerce parses a clue value or wager token into a signed integer. It never
// fails: tokens without digits yield 0 and numeric tokens pass through.
func Coerce(t games.Token) int {
	return t.Int()
}

// CoerceString is Coerce for plain strings.
func CoerceString(s string) int {
	return games.StringToken(s).Int()
}

// ParseScore parses a scoreboard token, which only carries "$" and ","
// decoration. Empty or unparseable tokens yield 0.
func ParseScore(t games.Token) int {
	if t.Numeric {
		return t.Num
	}
	return games.LeadingInt(scoreStripper.Replace(t.Text))
}

func scoreEntries(raw []games.RawScore, q *quality) []games.ScoreEntry {
	if raw == nil {
		return nil
	}
	out := make([]games.ScoreEntry, len(raw))
	for i, s := range raw {
		q.check(s.Score)
		out[i] = games.ScoreEntry{Player: s.Player, Score: ParseScore(s.Score)}
	}
	return out
}

// quality counts tokens that carried text but no digits.
type quality struct {
	unparsed int
}

func (q *quality) check(t games.Token) {
	if q == nil || t.Empty() || t.Parseable() {
		return
	}
	q.unparsed++
}
