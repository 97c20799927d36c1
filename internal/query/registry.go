package query

import "jeopardy-stats-service/internal/stats"

// Definition is a registered canned query.
type Definition struct {
	ID          string
	Name        string
	Description string
	Run         stats.Aggregator
}

// Info is the public listing of a query.
type Info struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Registry returns the canned queries in listing order.
func Registry() []Definition {
	return []Definition{
		{
			ID:          "position-win-rate-dj",
			Name:        "Position Win Rate (After Double Jeopardy)",
			Description: "How often does 1st/2nd/3rd place after Double Jeopardy win the game?",
			Run:         stats.PositionWinRateAfterDJ,
		},
		{
			ID:          "position-win-rate-j",
			Name:        "Position Win Rate (After Jeopardy)",
			Description: "How often does 1st/2nd/3rd place after the Jeopardy round win the game?",
			Run:         stats.PositionWinRateAfterJ,
		},
		{
			ID:          "first-place-cover",
			Name:        "First Place Covers",
			Description: "How often does 1st place bet enough to beat both opponents if they bet everything?",
			Run:         stats.FirstPlaceBetsCover,
		},
		{
			ID:          "second-place-90pct",
			Name:        "Second Place Bets 90%+",
			Description: "How often does 2nd place bet at least 90% of their total?",
			Run:         stats.SecondPlaceBettingBands,
		},
		{
			ID:          "second-place-just-enough",
			Name:        "Second Place Bets Just Enough",
			Description: "How often does 2nd place bet just enough to beat 1st (101-110% of difference)?",
			Run:         stats.SecondPlaceJustEnough,
		},
		{
			ID:          "correct-answers",
			Name:        "Correct Answers by Placement",
			Description: "Average number of correct answers for winner vs 2nd vs 3rd place",
			Run:         stats.CorrectAnswersByPlacement,
		},
		{
			ID:          "daily-double-bets",
			Name:        "Daily Double Betting",
			Description: "How much do players wager on Daily Doubles relative to their score?",
			Run:         stats.DailyDoubleBets,
		},
		{
			ID:          "fj-betting-by-position",
			Name:        "Final Jeopardy Betting by Position",
			Description: "How do 1st/2nd/3rd place bet in Final Jeopardy relative to their score?",
			Run:         stats.FinalJeopardyBettingByPosition,
		},
		{
			ID:          "triple-stumpers",
			Name:        "Triple Stumpers",
			Description: "How often does nobody answer a clue, by clue value?",
			Run:         stats.TripleStumpers,
		},
		{
			ID:          "lockouts",
			Name:        "Lockouts",
			Description: "How often is the game locked up before Final Jeopardy?",
			Run:         stats.Lockouts,
		},
		{
			ID:          "correct-answers-by-round",
			Name:        "Correct Answers by Round",
			Description: "Average correct responses per game in each round",
			Run:         stats.CorrectAnswersByRound,
		},
	}
}
