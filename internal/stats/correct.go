package stats

import "jeopardy-stats-service/internal/domain/games"

// CorrectAnswersByPlacement averages correct Jeopardy and Double Jeopardy
// responses by final placement. Each place is averaged over the games where
// that place exists.
func CorrectAnswersByPlacement(gs []games.Game) Result {
	var totals, counts [3]int

	for _, g := range gs {
		clues := boardClues(g)
		if len(clues) == 0 || len(g.FinalScores) < 2 {
			continue
		}
		ranked := RankByEndOfRound(g.FinalScores)
		if ranked.First == "" {
			continue
		}

		for i, player := range []string{ranked.First, ranked.Second, ranked.Third} {
			if player == "" {
				continue
			}
			totals[i] += CountCorrectAnswers(clues, player)
			counts[i]++
		}
	}

	labels := [3]string{"1st Place (Winner)", "2nd Place", "3rd Place"}
	rows := make([]Row, len(labels))
	for i, label := range labels {
		rows[i] = Row{
			"position":      label,
			"avgCorrect":    Average(float64(totals[i]), counts[i]),
			"totalCorrect":  totals[i],
			"gamesAnalyzed": counts[i],
		}
	}
	return Result{
		Query:       "correct-answers",
		Description: "Average correct answers by final placement (Jeopardy + Double Jeopardy)",
		TotalGames:  counts[0],
		Results:     rows,
	}
}

// CorrectAnswersByRound averages correct responses per game in each round.
func CorrectAnswersByRound(gs []games.Game) Result {
	var jeopardy, double, final int

	for _, g := range gs {
		if r := g.Rounds.Jeopardy; r != nil {
			for _, c := range r.Clues {
				jeopardy += len(c.CorrectContestants)
			}
		}
		if r := g.Rounds.DoubleJeopardy; r != nil {
			for _, c := range r.Clues {
				double += len(c.CorrectContestants)
			}
		}
		if fj := g.Rounds.FinalJeopardy; fj != nil {
			for _, resp := range fj.Responses {
				if resp.IsCorrect {
					final++
				}
			}
		}
	}

	total := len(gs)
	row := func(round string, correct int) Row {
		return Row{"round": round, "totalCorrect": correct, "avgPerGame": Average(float64(correct), total)}
	}
	return Result{
		Query:       "correct-answers-by-round",
		Description: "Average correct responses per game by round",
		TotalGames:  total,
		Results: []Row{
			row("Jeopardy", jeopardy),
			row("Double Jeopardy", double),
			row("Final Jeopardy", final),
		},
	}
}
