// Package fixture provides a deterministic set of scraped games for local
// runs and tests.
package fixture

import (
	"context"

	"jeopardy-stats-service/internal/domain/games"
)

// ProviderName identifies this provider in logs and config.
const ProviderName = "fixture"

// Provider returns a static set of raw games.
type Provider struct{}

// New creates a fixture provider.
func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string {
	return ProviderName
}

// FetchRawGames returns three games: a season 1 opener, a tournament game
// and a season 2 opener.
func (p *Provider) FetchRawGames(ctx context.Context) ([]games.RawGame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []games.RawGame{
		rawGame(1, "1", "1984-09-10", "First game of Season 1.", []string{"Greg", "Lois", "Frank"},
			[]string{"$400", "$1,200", "-$200"},
			[]string{"$2,000", "$3,600", "$800"},
			[2]string{"Lois", "$2,000"}, true,
			[]string{"$4,000", "$5,600", "$800"}),
		rawGame(2, "2", "1985-02-11", "1985 Tournament of Champions quarterfinal game 1.", []string{"Ann", "Bob", "Cat"},
			[]string{"$1,000", "$200", "$0"},
			[]string{"$6,000", "$4,000", "$1,000"},
			[2]string{"Ann", "$2,001"}, false,
			[]string{"$3,999", "$4,000", "$1,000"}),
		rawGame(3, "3", "1985-09-09", "First game of Season 2.", []string{"Dee", "Eli", "Fay"},
			[]string{"$600", "$800", "$200"},
			[]string{"$3,000", "$3,000", "$1,400"},
			[2]string{"Dee", "$3,000"}, true,
			[]string{"$6,000", "$3,000", "$1,400"}),
	}, nil
}

func rawGame(id int, show, date, comments string, players []string, jEnd, djEnd []string, wager [2]string, correct bool, final []string) games.RawGame {
	order := func(n int) *int { return &n }
	scores := func(vals []string) []games.RawScore {
		out := make([]games.RawScore, len(players))
		for i, p := range players {
			out[i] = games.RawScore{Player: p, Score: games.StringToken(vals[i])}
		}
		return out
	}

	return games.RawGame{
		GameID:      id,
		ShowNumber:  games.StringToken(show),
		Title:       "Show #" + show,
		Date:        date,
		Comments:    comments,
		Contestants: players,
		Rounds: games.RawRounds{
			Jeopardy: &games.RawRound{
				Categories: []string{"POTPOURRI", "SCIENCE", "HISTORY", "SPORTS", "WORDS", "MUSIC"},
				Clues: []games.RawClue{
					{Category: "SCIENCE", Value: games.StringToken("$200"), OrderNumber: order(2), CorrectContestants: []string{players[1]}},
					{Category: "POTPOURRI", Value: games.StringToken("$100"), OrderNumber: order(1), CorrectContestants: []string{players[0]}, IncorrectContestants: []string{players[2]}},
					{Category: "HISTORY", Value: games.StringToken("$300"), OrderNumber: order(3), IncorrectContestants: []string{"Triple Stumper"}, WasTripleStumper: true},
				},
				EndOfRoundScores: scores(jEnd),
			},
			DoubleJeopardy: &games.RawRound{
				Categories: []string{"ART", "BOOKS", "FOOD", "TRAVEL", "TV", "RHYME TIME"},
				Clues: []games.RawClue{
					{Category: "ART", Value: games.StringToken("DD: $1,000"), IsDailyDouble: true, OrderNumber: order(1), CorrectContestants: []string{players[0]}},
					{Category: "BOOKS", Value: games.StringToken("$800"), OrderNumber: order(2), CorrectContestants: []string{players[1]}},
				},
				EndOfRoundScores: scores(djEnd),
			},
			FinalJeopardy: &games.RawFinalRound{
				Category: "WORLD CAPITALS",
				Clue:     "It sits on the Tiber",
				Answer:   "Rome",
				Responses: []games.RawFinalResponse{
					{Contestant: wager[0], Response: "What is Rome?", IsCorrect: correct, IsIncorrect: !correct},
					{Contestant: wager[0], Response: wager[1]},
				},
			},
		},
		FinalScores: scores(final),
	}
}
