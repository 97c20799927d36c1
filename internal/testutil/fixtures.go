package testutil

import (
	"jeopardy-stats-service/internal/domain/games"
)

// GameOption customizes a fixture game.
type GameOption func(*games.Game)

// Score builds a score entry.
func Score(player string, score int) games.ScoreEntry {
	return games.ScoreEntry{Player: player, Score: score}
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}

// NewGame returns a minimal regular game with the supplied options applied.
func NewGame(id int, opts ...GameOption) games.Game {
	g := games.Game{
		GameID:         id,
		ShowNumber:     "1000",
		Date:           "2020-01-01",
		Classification: games.ClassRegularGame,
	}
	for _, opt := range opts {
		opt(&g)
	}
	return g
}

// WithFinalScores sets finalScores and the matching contestants.
func WithFinalScores(entries ...games.ScoreEntry) GameOption {
	return func(g *games.Game) {
		g.FinalScores = entries
		g.Contestants = make([]string, len(entries))
		for i, e := range entries {
			g.Contestants[i] = e.Player
		}
	}
}

// WithJeopardyEnd sets the Jeopardy round end scores.
func WithJeopardyEnd(entries ...games.ScoreEntry) GameOption {
	return func(g *games.Game) {
		ensureRound(&g.Rounds.Jeopardy).EndOfRoundScores = entries
	}
}

// WithDoubleJeopardyEnd sets the Double Jeopardy end scores.
func WithDoubleJeopardyEnd(entries ...games.ScoreEntry) GameOption {
	return func(g *games.Game) {
		ensureRound(&g.Rounds.DoubleJeopardy).EndOfRoundScores = entries
	}
}

// WithJeopardyClues appends clues to the Jeopardy round.
func WithJeopardyClues(clues ...games.Clue) GameOption {
	return func(g *games.Game) {
		r := ensureRound(&g.Rounds.Jeopardy)
		r.Clues = append(r.Clues, clues...)
	}
}

// WithDoubleJeopardyClues appends clues to the Double Jeopardy round.
func WithDoubleJeopardyClues(clues ...games.Clue) GameOption {
	return func(g *games.Game) {
		r := ensureRound(&g.Rounds.DoubleJeopardy)
		r.Clues = append(r.Clues, clues...)
	}
}

// WithWager appends a paired Final Jeopardy response. prior is the
// contestant's Double Jeopardy score.
func WithWager(player string, prior, wager int, correct bool) GameOption {
	return func(g *games.Game) {
		if g.Rounds.FinalJeopardy == nil {
			g.Rounds.FinalJeopardy = &games.FinalRound{}
		}
		final := prior - wager
		if correct {
			final = prior + wager
		}
		g.Rounds.FinalJeopardy.Responses = append(g.Rounds.FinalJeopardy.Responses, games.FinalResponse{
			Contestant:  player,
			Response:    "What is something?",
			IsCorrect:   correct,
			IsIncorrect: !correct,
			Value:       IntPtr(wager),
			FinalScore:  IntPtr(final),
		})
	}
}

// WithComments sets the show comments used by classification.
func WithComments(comments string) GameOption {
	return func(g *games.Game) {
		g.Comments = comments
	}
}

// WithDate sets the air date.
func WithDate(date string) GameOption {
	return func(g *games.Game) {
		g.Date = date
	}
}

// Correct builds a clue answered correctly by players.
func Correct(value int, players ...string) games.Clue {
	return games.Clue{Value: value, CorrectContestants: players, IncorrectContestants: []string{}}
}

// Stumper builds a clue nobody answered.
func Stumper(value int) games.Clue {
	return games.Clue{
		Value:                value,
		CorrectContestants:   []string{},
		IncorrectContestants: []string{},
		WasTripleStumper:     true,
	}
}

// DailyDouble builds a Daily Double clue for player whose running score
// after the clue is after.
func DailyDouble(player string, wager int, correct bool, after int) games.Clue {
	c := games.Clue{
		Value:                wager,
		IsDailyDouble:        true,
		CorrectContestants:   []string{},
		IncorrectContestants: []string{},
		RunningScores:        []games.ScoreEntry{Score(player, after)},
	}
	if correct {
		c.CorrectContestants = []string{player}
	} else {
		c.IncorrectContestants = []string{player}
	}
	return c
}

func ensureRound(r **games.Round) *games.Round {
	if *r == nil {
		*r = &games.Round{}
	}
	return *r
}
