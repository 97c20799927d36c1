package synth

import "context"

const (
	ProviderFixture     = "fixture"
	FixtureDefaultModel = "canned"
)

// FixtureProgram is the analysis program returned by the fixture backend.
// It reports how often the leader after Double Jeopardy goes on to win.
const FixtureProgram = "```go\n" + `package main

import (
	"jeopardy"
)

func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result {
	total := 0
	leaderWins := 0
	for _, g := range games {
		if !helpers.IsValidGame(g) {
			continue
		}
		rank := helpers.RankByEndOfRound(helpers.GetDoubleJeopardyEndScores(g))
		winner := helpers.GetWinner(g)
		if rank.First == "" || winner == "" {
			continue
		}
		total++
		if rank.First == winner {
			leaderWins++
		}
	}
	return jeopardy.Result{
		Description: "How often the Double Jeopardy leader wins",
		TotalGames:  total,
		Results: []jeopardy.Row{
			{"outcome": "Leader won", "games": leaderWins, "percentage": helpers.Percent(leaderWins, total)},
			{"outcome": "Leader lost", "games": total - leaderWins, "percentage": helpers.Percent(total-leaderWins, total)},
		},
	}
}
` + "```"

type fixtureBackend struct {
	text string
}

// NewFixtureBackend returns a backend that always answers with text.
// An empty text uses FixtureProgram.
func NewFixtureBackend(text string) Backend {
	if text == "" {
		text = FixtureProgram
	}
	return &fixtureBackend{text: text}
}

func (b *fixtureBackend) Name() string  { return ProviderFixture }
func (b *fixtureBackend) Model() string { return FixtureDefaultModel }

func (b *fixtureBackend) Complete(ctx context.Context, system, user string) (Completion, error) {
	if err := ctx.Err(); err != nil {
		return Completion{}, &Error{Provider: ProviderFixture, Err: err}
	}
	return Completion{
		Text:         b.text,
		InputTokens:  estimateTokens(system) + estimateTokens(user),
		OutputTokens: estimateTokens(b.text),
	}, nil
}
