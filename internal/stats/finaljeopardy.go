package stats

import (
	"slices"

	"jeopardy-stats-service/internal/domain/games"
)

// FinalJeopardyBettingByPosition reports average and median Final Jeopardy
// wagers as a share of each player's Double Jeopardy score, by position.
func FinalJeopardyBettingByPosition(gs []games.Game) Result {
	var bets [3][]float64
	var contributing int

	for _, g := range gs {
		dj := GetDoubleJeopardyEndScores(g)
		fj := g.Rounds.FinalJeopardy
		if len(dj) < 2 || fj == nil {
			continue
		}
		ranked := RankByEndOfRound(dj)

		counted := false
		for _, resp := range fj.Responses {
			if resp.Value == nil {
				continue
			}
			idx := slices.IndexFunc(dj, func(s games.ScoreEntry) bool { return s.Player == resp.Contestant })
			if idx < 0 || dj[idx].Score <= 0 {
				continue
			}
			pos := slices.IndexFunc(ranked.Scores, func(s games.ScoreEntry) bool { return s.Player == resp.Contestant })
			if pos < 0 || pos > 2 {
				continue
			}
			bets[pos] = append(bets[pos], float64(*resp.Value)/float64(dj[idx].Score)*100)
			counted = true
		}
		if counted {
			contributing++
		}
	}

	labels := [3]string{"1st", "2nd", "3rd"}
	rows := make([]Row, len(labels))
	for i, label := range labels {
		rows[i] = Row{
			"position":     label,
			"avgBetPct":    Average(sum(bets[i]), len(bets[i])),
			"medianBetPct": Fixed1(median(bets[i])),
			"count":        len(bets[i]),
		}
	}
	return Result{
		Query:       "fj-betting-by-position",
		Description: "Final Jeopardy wager as % of pre-Final score, by position after Double Jeopardy",
		TotalGames:  contributing,
		Results:     rows,
	}
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
