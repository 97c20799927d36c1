package stats

import (
	"slices"

	"jeopardy-stats-service/internal/domain/games"
)

type betBand struct {
	label    string
	min, max float64
}

var dailyDoubleBands = []betBand{
	{"0-25%", 0, 25},
	{"25-50%", 25, 50},
	{"50-75%", 50, 75},
	{"75-100%", 75, 100},
	{"100%+ (True DD)", 100, -1},
}

// DailyDoubleBets measures Daily Double wagers as a share of the player's
// score before the clue. The pre-clue score is recovered from the clue's
// running scores; only positive pre-clue scores count.
func DailyDoubleBets(gs []games.Game) Result {
	var jBets, djBets []float64
	var contributing int

	for _, g := range gs {
		j := dailyDoublePercents(g.Rounds.Jeopardy)
		dj := dailyDoublePercents(g.Rounds.DoubleJeopardy)
		if len(j)+len(dj) > 0 {
			contributing++
		}
		jBets = append(jBets, j...)
		djBets = append(djBets, dj...)
	}

	all := slices.Concat(jBets, djBets)
	rows := []Row{
		{"segment": "Overall average", "count": len(all), "percentage": Average(sum(all), len(all))},
		{"segment": "Jeopardy round average", "count": len(jBets), "percentage": Average(sum(jBets), len(jBets))},
		{"segment": "Double Jeopardy average", "count": len(djBets), "percentage": Average(sum(djBets), len(djBets))},
	}
	for _, band := range dailyDoubleBands {
		n := 0
		for _, pct := range all {
			if pct >= band.min && (band.max < 0 || pct < band.max) {
				n++
			}
		}
		rows = append(rows, Row{"segment": "Bet " + band.label, "count": n, "percentage": Percent(n, len(all))})
	}

	return Result{
		Query:       "daily-double-bets",
		Description: "Daily Double wagers as % of the player's score before the clue",
		TotalGames:  contributing,
		Results:     rows,
	}
}

func dailyDoublePercents(r *games.Round) []float64 {
	if r == nil {
		return nil
	}
	var out []float64
	for _, c := range r.Clues {
		if !c.IsDailyDouble {
			continue
		}
		player := firstOf(c.CorrectContestants)
		if player == "" {
			player = firstOf(c.IncorrectContestants)
		}
		if player == "" || c.RunningScores == nil {
			continue
		}
		idx := slices.IndexFunc(c.RunningScores, func(s games.ScoreEntry) bool { return s.Player == player })
		if idx < 0 {
			continue
		}

		after := c.RunningScores[idx].Score
		before := after + c.Value
		if slices.Contains(c.CorrectContestants, player) {
			before = after - c.Value
		}
		if before > 0 {
			out = append(out, float64(c.Value)/float64(before)*100)
		}
	}
	return out
}

func firstOf(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

func sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}
