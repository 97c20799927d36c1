package normalize

import "jeopardy-stats-service/internal/domain/games"

// PairFinalResponses merges interleaved response and wager rows into one
// response per contestant. The wager row's text is the amount; the final
// score is prior plus or minus the wager depending on correctness. An odd
// trailing row passes through without a wager, and fewer than two rows are
// returned as-is.
func PairFinalResponses(raw []games.RawFinalResponse, prior map[string]int) []games.FinalResponse {
	if raw == nil {
		return nil
	}
	if len(raw) < 2 {
		out := make([]games.FinalResponse, len(raw))
		for i, r := range raw {
			out[i] = unpaired(r)
		}
		return out
	}

	out := make([]games.FinalResponse, 0, (len(raw)+1)/2)
	for i := 0; i < len(raw); i += 2 {
		if i+1 >= len(raw) {
			out = append(out, unpaired(raw[i]))
			break
		}

		resp := raw[i]
		wager := CoerceString(raw[i+1].Response)
		final := prior[resp.Contestant]
		switch {
		case resp.IsCorrect:
			final += wager
		case resp.IsIncorrect:
			final -= wager
		}

		paired := unpaired(resp)
		paired.Value = &wager
		paired.FinalScore = &final
		out = append(out, paired)
	}
	return out
}

func unpaired(r games.RawFinalResponse) games.FinalResponse {
	return games.FinalResponse{
		Contestant:  r.Contestant,
		Response:    r.Response,
		IsCorrect:   r.IsCorrect,
		IsIncorrect: r.IsIncorrect,
	}
}
