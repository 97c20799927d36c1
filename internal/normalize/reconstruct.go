package normalize

import (
	"slices"

	"jeopardy-stats-service/internal/domain/games"
)

// ReconstructRound replays a round's clues in presentation order, applying
// each response to the tracker and snapshotting totals onto every clue.
// The tracker keeps its state so the next round continues from here.
func ReconstructRound(raw *games.RawRound, t *Tracker) *games.Round {
	return reconstructRound(raw, t, nil)
}

func reconstructRound(raw *games.RawRound, t *Tracker, q *quality) *games.Round {
	if raw == nil {
		return nil
	}

	round := &games.Round{
		Categories:       cloneStrings(raw.Categories),
		FirstBreakScores: scoreEntries(raw.FirstBreakScores, q),
		EndOfRoundScores: scoreEntries(raw.EndOfRoundScores, q),
	}

	ordered := SortClues(raw.Clues)
	round.Clues = make([]games.Clue, 0, len(ordered))
	for _, rc := range ordered {
		q.check(rc.Value)
		value := Coerce(rc.Value)

		correct := cloneStrings(rc.CorrectContestants)
		incorrect := make([]string, 0, len(rc.IncorrectContestants))
		for _, name := range rc.IncorrectContestants {
			if name == TripleStumper {
				continue
			}
			incorrect = append(incorrect, name)
		}

		for _, name := range correct {
			t.Apply(name, value)
		}
		for _, name := range incorrect {
			t.Apply(name, -value)
		}

		round.Clues = append(round.Clues, games.Clue{
			Category:             rc.Category,
			Value:                value,
			Clue:                 rc.Clue,
			Answer:               rc.Answer,
			IsDailyDouble:        rc.IsDailyDouble,
			OrderNumber:          cloneInt(rc.OrderNumber),
			CorrectContestants:   correct,
			IncorrectContestants: incorrect,
			WasTripleStumper:     rc.WasTripleStumper,
			RunningScores:        t.Snapshot(),
		})
	}
	return round
}

// SortClues returns the clues ordered by order number. Clues without a
// positive order number keep their scrape order after all numbered clues.
func SortClues(clues []games.RawClue) []games.RawClue {
	out := slices.Clone(clues)
	slices.SortStableFunc(out, func(a, b games.RawClue) int {
		ka, oka := sortKey(a.OrderNumber)
		kb, okb := sortKey(b.OrderNumber)
		switch {
		case oka && okb:
			return ka - kb
		case oka:
			return -1
		case okb:
			return 1
		default:
			return 0
		}
	})
	return out
}

func sortKey(order *int) (int, bool) {
	if order == nil || *order <= 0 {
		return 0, false
	}
	return *order, true
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
