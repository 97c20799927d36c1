package stats

import "jeopardy-stats-service/internal/domain/games"

var placeLabels = [3]string{"1st Place", "2nd Place", "3rd Place"}

// PositionWinRateAfterDJ tallies which Double Jeopardy position the eventual
// winner held.
func PositionWinRateAfterDJ(gs []games.Game) Result {
	return positionWinRate(gs, GetDoubleJeopardyEndScores,
		"position-win-rate-dj", "Win rate by position after Double Jeopardy")
}

// PositionWinRateAfterJ tallies which Jeopardy round position the eventual
// winner held.
func PositionWinRateAfterJ(gs []games.Game) Result {
	return positionWinRate(gs, GetJeopardyEndScores,
		"position-win-rate-j", "Win rate by position after Jeopardy round")
}

func positionWinRate(gs []games.Game, scores func(games.Game) []games.ScoreEntry, query, description string) Result {
	var total int
	var wins [3]int

	for _, g := range gs {
		end := scores(g)
		if len(end) < 2 {
			continue
		}
		ranked := RankByEndOfRound(end)
		winner := GetWinner(g)
		if winner == "" || ranked.First == "" {
			continue
		}

		total++
		switch winner {
		case ranked.First:
			wins[0]++
		case ranked.Second:
			wins[1]++
		case ranked.Third:
			wins[2]++
		}
	}

	rows := make([]Row, len(placeLabels))
	for i, label := range placeLabels {
		rows[i] = Row{"position": label, "wins": wins[i], "percentage": Percent(wins[i], total)}
	}
	return Result{Query: query, Description: description, TotalGames: total, Results: rows}
}
