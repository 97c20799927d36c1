package stats

import (
	"slices"

	"jeopardy-stats-service/internal/domain/games"
)

// TripleStumpers reports how often nobody answered a clue, by clue value.
func TripleStumpers(gs []games.Game) Result {
	type tally struct{ clues, stumpers int }
	byValue := map[int]*tally{}
	var total, stumpers, contributing int

	for _, g := range gs {
		clues := boardClues(g)
		if len(clues) == 0 {
			continue
		}
		contributing++
		for _, c := range clues {
			t, ok := byValue[c.Value]
			if !ok {
				t = &tally{}
				byValue[c.Value] = t
			}
			t.clues++
			total++
			if c.WasTripleStumper {
				t.stumpers++
				stumpers++
			}
		}
	}

	values := make([]int, 0, len(byValue))
	for v := range byValue {
		values = append(values, v)
	}
	slices.Sort(values)

	rows := make([]Row, 0, len(values)+1)
	for _, v := range values {
		t := byValue[v]
		rows = append(rows, Row{"value": v, "clues": t.clues, "tripleStumpers": t.stumpers, "percentage": Percent(t.stumpers, t.clues)})
	}
	rows = append(rows, Row{"value": "All", "clues": total, "tripleStumpers": stumpers, "percentage": Percent(stumpers, total)})

	return Result{
		Query:       "triple-stumpers",
		Description: "Share of clues no one answered correctly, by clue value",
		TotalGames:  contributing,
		Results:     rows,
	}
}

// Lockouts counts three-player games where the Double Jeopardy leader has
// more than double each opponent.
func Lockouts(gs []games.Game) Result {
	var total, lockouts int

	for _, g := range gs {
		dj := GetDoubleJeopardyEndScores(g)
		if len(dj) != 3 {
			continue
		}
		total++
		if isLockout(dj) {
			lockouts++
		}
	}

	return Result{
		Query:       "lockouts",
		Description: "Games locked up before Final Jeopardy (leader has more than double each opponent)",
		TotalGames:  total,
		Results: []Row{
			{"metric": "Lockout", "count": lockouts, "percentage": Percent(lockouts, total)},
			{"metric": "Competitive", "count": total - lockouts, "percentage": Percent(total-lockouts, total)},
		},
	}
}

func isLockout(scores []games.ScoreEntry) bool {
	for i, s := range scores {
		locked := true
		for j, other := range scores {
			if i != j && s.Score <= other.Score*2 {
				locked = false
				break
			}
		}
		if locked {
			return true
		}
	}
	return false
}
