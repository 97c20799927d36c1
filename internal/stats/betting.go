package stats

import "jeopardy-stats-service/internal/domain/games"

// FirstPlaceBetsCover counts games where the Double Jeopardy leader wagered
// enough to beat either opponent doubling up.
func FirstPlaceBetsCover(gs []games.Game) Result {
	var total, covered int

	for _, g := range gs {
		dj := GetDoubleJeopardyEndScores(g)
		if len(dj) < 2 {
			continue
		}
		ranked := RankByEndOfRound(dj)
		first := ranked.scoreAt(0)
		if first <= 0 {
			continue
		}

		secondMax := maxIfPositive(ranked.scoreAt(1))
		thirdMax := maxIfPositive(ranked.scoreAt(2))

		resp := GetFJResponse(g, ranked.First)
		if resp == nil || resp.Value == nil {
			continue
		}

		needed := max(secondMax, thirdMax) - first + 1
		total++
		if needed <= 0 || *resp.Value >= needed {
			covered++
		}
	}

	pct := Percent(covered, total)
	return Result{
		Query:       "first-place-cover",
		Description: "First place bets enough to cover max possible opponent scores",
		TotalGames:  total,
		Results: []Row{
			{"metric": "Bet enough to cover", "count": covered, "percentage": pct},
			{"metric": "Did not bet enough", "count": total - covered, "percentage": complement(pct)},
		},
	}
}

func maxIfPositive(score int) int {
	if score > 0 {
		return score * 2
	}
	return 0
}

// SecondPlaceBettingBands buckets the second place wager as a share of their
// Double Jeopardy score.
func SecondPlaceBettingBands(gs []games.Game) Result {
	var total int
	var bands [4]int

	for _, g := range gs {
		dj := GetDoubleJeopardyEndScores(g)
		if len(dj) < 2 {
			continue
		}
		ranked := RankByEndOfRound(dj)
		second := ranked.scoreAt(1)
		if second <= 0 || ranked.Second == "" {
			continue
		}

		resp := GetFJResponse(g, ranked.Second)
		if resp == nil || resp.Value == nil {
			continue
		}

		betPct := float64(*resp.Value) / float64(second) * 100
		total++
		switch {
		case betPct >= 90:
			bands[0]++
		case betPct >= 75:
			bands[1]++
		case betPct >= 50:
			bands[2]++
		default:
			bands[3]++
		}
	}

	labels := [4]string{"Bet 90%+", "Bet 75-90%", "Bet 50-75%", "Bet under 50%"}
	rows := make([]Row, len(labels))
	for i, label := range labels {
		rows[i] = Row{"metric": label, "count": bands[i], "percentage": Percent(bands[i], total)}
	}
	return Result{
		Query:       "second-place-90pct",
		Description: "Second place betting patterns (% of their score wagered)",
		TotalGames:  total,
		Results:     rows,
	}
}

// JustEnoughFactor is the upper bound of a "just enough" wager relative to
// the gap between first and second place.
const JustEnoughFactor = 1.1

// SecondPlaceJustEnough classifies second place wagers against the gap to
// first place: gap+1 up to gap*1.1 is "just enough".
func SecondPlaceJustEnough(gs []games.Game) Result {
	var total, justEnough, more, less int

	for _, g := range gs {
		dj := GetDoubleJeopardyEndScores(g)
		if len(dj) < 2 {
			continue
		}
		ranked := RankByEndOfRound(dj)
		first := ranked.scoreAt(0)
		second := ranked.scoreAt(1)
		if second <= 0 || first <= second || ranked.Second == "" {
			continue
		}

		resp := GetFJResponse(g, ranked.Second)
		if resp == nil || resp.Value == nil {
			continue
		}

		wager := float64(*resp.Value)
		difference := first - second
		minTarget := float64(difference + 1)
		maxTarget := float64(difference) * JustEnoughFactor

		total++
		switch {
		case wager >= minTarget && wager <= maxTarget:
			justEnough++
		case wager > maxTarget:
			more++
		default:
			less++
		}
	}

	return Result{
		Query:       "second-place-just-enough",
		Description: "Second place bets 'just enough' to beat first (difference + 1 to 110%)",
		TotalGames:  total,
		Results: []Row{
			{"metric": "Bet just enough (diff+1 to 110%)", "count": justEnough, "percentage": Percent(justEnough, total)},
			{"metric": "Bet more than enough (>110%)", "count": more, "percentage": Percent(more, total)},
			{"metric": "Bet less than needed", "count": less, "percentage": Percent(less, total)},
		},
	}
}
