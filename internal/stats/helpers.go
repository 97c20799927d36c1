package stats

import (
	"encoding/json"
	"math"
	"slices"
	"strings"

	"jeopardy-stats-service/internal/domain/games"
)

// ParseScore returns numbers unchanged (truncated to int) and parses
// strings after removing "$" and ",". Anything else yields 0.
func ParseScore(v any) int {
	switch s := v.(type) {
	case int:
		return s
	case int32:
		return int(s)
	case int64:
		return int(s)
	case float64:
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return 0
		}
		return int(s)
	case json.Number:
		return ParseScore(string(s))
	case games.Token:
		if s.Numeric {
			return s.Num
		}
		return ParseScore(s.Text)
	case string:
		return games.LeadingInt(strings.NewReplacer("$", "", ",", "").Replace(s))
	default:
		return 0
	}
}

// Ranking orders a round's scores. Missing places are empty strings.
type Ranking struct {
	First  string             `json:"first"`
	Second string             `json:"second"`
	Third  string             `json:"third"`
	Scores []games.ScoreEntry `json:"scores"`
}

// sortedDesc returns a copy of scores ordered high to low; ties keep their
// original order.
func sortedDesc(scores []games.ScoreEntry) []games.ScoreEntry {
	out := slices.Clone(scores)
	slices.SortStableFunc(out, func(a, b games.ScoreEntry) int {
		return b.Score - a.Score
	})
	return out
}

// RankByEndOfRound ranks players by score, highest first.
func RankByEndOfRound(scores []games.ScoreEntry) Ranking {
	sorted := sortedDesc(scores)
	if sorted == nil {
		sorted = []games.ScoreEntry{}
	}
	r := Ranking{Scores: sorted}
	if len(sorted) > 0 {
		r.First = sorted[0].Player
	}
	if len(sorted) > 1 {
		r.Second = sorted[1].Player
	}
	if len(sorted) > 2 {
		r.Third = sorted[2].Player
	}
	return r
}

// scoreAt returns the score at rank i, or 0 when absent.
func (r Ranking) scoreAt(i int) int {
	if i < len(r.Scores) {
		return r.Scores[i].Score
	}
	return 0
}

// GetWinner returns the player with the highest final score, first listed
// on ties, or "" when the game has no final scores.
func GetWinner(g games.Game) string {
	if len(g.FinalScores) == 0 {
		return ""
	}
	return sortedDesc(g.FinalScores)[0].Player
}

// CountCorrectAnswers counts clues player answered correctly.
func CountCorrectAnswers(clues []games.Clue, player string) int {
	if player == "" {
		return 0
	}
	n := 0
	for _, c := range clues {
		if slices.Contains(c.CorrectContestants, player) {
			n++
		}
	}
	return n
}

// GetFJResponse returns the first Final Jeopardy response by player.
func GetFJResponse(g games.Game, player string) *games.FinalResponse {
	fj := g.Rounds.FinalJeopardy
	if fj == nil {
		return nil
	}
	for i := range fj.Responses {
		if fj.Responses[i].Contestant == player {
			resp := fj.Responses[i]
			return &resp
		}
	}
	return nil
}

// IsValidGame reports whether all three rounds and two final scores exist.
func IsValidGame(g games.Game) bool {
	return g.Rounds.Jeopardy != nil &&
		g.Rounds.DoubleJeopardy != nil &&
		g.Rounds.FinalJeopardy != nil &&
		len(g.FinalScores) >= 2
}

// GetJeopardyEndScores returns the Jeopardy round end scores, nil when absent.
func GetJeopardyEndScores(g games.Game) []games.ScoreEntry {
	if g.Rounds.Jeopardy == nil {
		return nil
	}
	return g.Rounds.Jeopardy.EndOfRoundScores
}

// GetDoubleJeopardyEndScores returns the Double Jeopardy end scores, nil when absent.
func GetDoubleJeopardyEndScores(g games.Game) []games.ScoreEntry {
	if g.Rounds.DoubleJeopardy == nil {
		return nil
	}
	return g.Rounds.DoubleJeopardy.EndOfRoundScores
}

// boardClues concatenates Jeopardy and Double Jeopardy clues.
func boardClues(g games.Game) []games.Clue {
	var clues []games.Clue
	if g.Rounds.Jeopardy != nil {
		clues = append(clues, g.Rounds.Jeopardy.Clues...)
	}
	if g.Rounds.DoubleJeopardy != nil {
		clues = append(clues, g.Rounds.DoubleJeopardy.Clues...)
	}
	return clues
}

// Helpers is the function table handed to analysis programs.
type Helpers struct {
	ParseScore                 func(any) int
	GetWinner                  func(games.Game) string
	RankByEndOfRound           func([]games.ScoreEntry) Ranking
	CountCorrectAnswers        func([]games.Clue, string) int
	GetFJResponse              func(games.Game, string) *games.FinalResponse
	IsValidGame                func(games.Game) bool
	GetJeopardyEndScores       func(games.Game) []games.ScoreEntry
	GetDoubleJeopardyEndScores func(games.Game) []games.ScoreEntry
	Percent                    func(int, int) string
}

// DefaultHelpers returns the helper table backed by this package.
func DefaultHelpers() Helpers {
	return Helpers{
		ParseScore:                 ParseScore,
		GetWinner:                  GetWinner,
		RankByEndOfRound:           RankByEndOfRound,
		CountCorrectAnswers:        CountCorrectAnswers,
		GetFJResponse:              GetFJResponse,
		IsValidGame:                IsValidGame,
		GetJeopardyEndScores:       GetJeopardyEndScores,
		GetDoubleJeopardyEndScores: GetDoubleJeopardyEndScores,
		Percent:                    Percent,
	}
}
