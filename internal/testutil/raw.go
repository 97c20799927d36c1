package testutil

import "jeopardy-stats-service/internal/domain/games"

// RawClue builds a scraped clue.
func RawClue(order int, value string, correct, incorrect []string) games.RawClue {
	return games.RawClue{
		Category:             "POTPOURRI",
		Value:                games.StringToken(value),
		OrderNumber:          IntPtr(order),
		CorrectContestants:   correct,
		IncorrectContestants: incorrect,
	}
}

// RawScores builds scraped score rows from alternating player/score strings.
func RawScores(pairs ...string) []games.RawScore {
	out := make([]games.RawScore, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, games.RawScore{Player: pairs[i], Score: games.StringToken(pairs[i+1])})
	}
	return out
}

// SampleRawGame returns a scraped game with out-of-order clues, a Triple
// Stumper row, interleaved Final Jeopardy wager rows and a stray fourth
// finalScores row. Ann finishes on 2,600, Bob on -800 and Cat on 400.
func SampleRawGame(id int) games.RawGame {
	return games.RawGame{
		GameID:      id,
		ShowNumber:  games.StringToken("8000"),
		Title:       "Show #8000",
		Date:        "2019-09-09",
		Comments:    "First game of Season 36.",
		Contestants: []string{"Ann", "Bob", "Cat", "Host"},
		Rounds: games.RawRounds{
			Jeopardy: &games.RawRound{
				Categories: []string{"A", "B", "C", "D", "E", "F"},
				Clues: []games.RawClue{
					RawClue(2, "$400", []string{"Bob"}, []string{"Ann"}),
					RawClue(1, "$200", []string{"Ann"}, nil),
					RawClue(3, "$600", nil, []string{"Cat", "Triple Stumper"}),
				},
				EndOfRoundScores: RawScores("Ann", "-$200", "Bob", "$400", "Cat", "-$600"),
			},
			DoubleJeopardy: &games.RawRound{
				Categories: []string{"G", "H", "I", "J", "K", "L"},
				Clues: []games.RawClue{
					RawClue(1, "$1,200", []string{"Ann"}, []string{"Bob"}),
					RawClue(2, "DD: $1,000", []string{"Cat"}, nil),
				},
				EndOfRoundScores: RawScores("Ann", "$1,000", "Bob", "-$800", "Cat", "$400"),
			},
			FinalJeopardy: &games.RawFinalRound{
				Category: "WORLD CAPITALS",
				Clue:     "It sits on the Tiber",
				Answer:   "Rome",
				Responses: []games.RawFinalResponse{
					{Contestant: "Ann", Response: "What is Rome?", IsCorrect: true},
					{Contestant: "Ann", Response: "$1,600"},
					{Contestant: "Cat", Response: "What is Paris?", IsIncorrect: true},
					{Contestant: "Cat", Response: "$0"},
				},
			},
		},
		FinalScores: RawScores("Ann", "$2,600", "Bob", "-$800", "Cat", "$400", "Extra", "$1"),
	}
}
