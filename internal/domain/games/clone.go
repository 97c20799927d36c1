package games

import "slices"

// Clone returns a deep copy of g.
func (g Game) Clone() Game {
	out := g
	out.Contestants = slices.Clone(g.Contestants)
	out.FinalScores = slices.Clone(g.FinalScores)
	out.CoryatScores = slices.Clone(g.CoryatScores)
	out.Rounds.Jeopardy = g.Rounds.Jeopardy.clone()
	out.Rounds.DoubleJeopardy = g.Rounds.DoubleJeopardy.clone()
	out.Rounds.FinalJeopardy = g.Rounds.FinalJeopardy.clone()
	return out
}

// CloneAll deep copies a game slice.
func CloneAll(gs []Game) []Game {
	if gs == nil {
		return nil
	}
	out := make([]Game, len(gs))
	for i, g := range gs {
		out[i] = g.Clone()
	}
	return out
}

func (r *Round) clone() *Round {
	if r == nil {
		return nil
	}
	out := *r
	out.Categories = slices.Clone(r.Categories)
	out.FirstBreakScores = slices.Clone(r.FirstBreakScores)
	out.EndOfRoundScores = slices.Clone(r.EndOfRoundScores)
	if r.Clues != nil {
		out.Clues = make([]Clue, len(r.Clues))
		for i, c := range r.Clues {
			out.Clues[i] = c.clone()
		}
	}
	return &out
}

func (c Clue) clone() Clue {
	out := c
	out.OrderNumber = cloneInt(c.OrderNumber)
	out.CorrectContestants = slices.Clone(c.CorrectContestants)
	out.IncorrectContestants = slices.Clone(c.IncorrectContestants)
	out.RunningScores = slices.Clone(c.RunningScores)
	return out
}

func (f *FinalRound) clone() *FinalRound {
	if f == nil {
		return nil
	}
	out := *f
	if f.Responses != nil {
		out.Responses = make([]FinalResponse, len(f.Responses))
		for i, r := range f.Responses {
			r.Value = cloneInt(r.Value)
			r.FinalScore = cloneInt(r.FinalScore)
			out.Responses[i] = r
		}
	}
	return &out
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
