package normalize

import "jeopardy-stats-service/internal/domain/games"

// Tracker holds running totals for the contestants of one game. Only names
// it was seeded with are tracked; order is first-seen.
type Tracker struct {
	order  []string
	totals map[string]int
}

// NewTracker seeds a tracker at zero for each distinct player.
func NewTracker(players []string) *Tracker {
	t := &Tracker{totals: make(map[string]int, len(players))}
	for _, p := range players {
		if _, ok := t.totals[p]; ok {
			continue
		}
		t.order = append(t.order, p)
		t.totals[p] = 0
	}
	return t
}

// Tracks reports whether name is a tracked contestant.
func (t *Tracker) Tracks(name string) bool {
	_, ok := t.totals[name]
	return ok
}

// Apply adds delta to a tracked contestant. Unknown names are ignored.
func (t *Tracker) Apply(name string, delta int) {
	if _, ok := t.totals[name]; ok {
		t.totals[name] += delta
	}
}

// Snapshot returns the current totals in first-seen order.
func (t *Tracker) Snapshot() []games.ScoreEntry {
	out := make([]games.ScoreEntry, len(t.order))
	for i, p := range t.order {
		out[i] = games.ScoreEntry{Player: p, Score: t.totals[p]}
	}
	return out
}

// Totals returns a copy of the current totals.
func (t *Tracker) Totals() map[string]int {
	out := make(map[string]int, len(t.totals))
	for k, v := range t.totals {
		out[k] = v
	}
	return out
}
