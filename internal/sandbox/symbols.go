package sandbox

import (
	"path"
	"reflect"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"jeopardy-stats-service/internal/domain/games"
	"jeopardy-stats-service/internal/stats"
)

// stdlibSymbols narrows the yaegi stdlib table to the allowlisted packages.
func stdlibSymbols() interp.Exports {
	out := make(interp.Exports, len(allowedImports))
	for pkg := range allowedImports {
		key := pkg + "/" + path.Base(pkg)
		if syms, ok := stdlib.Symbols[key]; ok {
			out[key] = syms
		}
	}
	return out
}

// hostSymbols exposes the game model, the helper table and the program
// inputs as the "jeopardy" package.
func hostSymbols(input []games.Game, helpers stats.Helpers) interp.Exports {
	return interp.Exports{
		hostImportPath + "/" + hostImportPath: {
			"Classification": reflect.ValueOf((*games.Classification)(nil)),
			"Clue":           reflect.ValueOf((*games.Clue)(nil)),
			"FinalResponse":  reflect.ValueOf((*games.FinalResponse)(nil)),
			"FinalRound":     reflect.ValueOf((*games.FinalRound)(nil)),
			"Game":           reflect.ValueOf((*games.Game)(nil)),
			"Helpers":        reflect.ValueOf((*stats.Helpers)(nil)),
			"Ranking":        reflect.ValueOf((*stats.Ranking)(nil)),
			"Result":         reflect.ValueOf((*stats.Result)(nil)),
			"Round":          reflect.ValueOf((*games.Round)(nil)),
			"Rounds":         reflect.ValueOf((*games.Rounds)(nil)),
			"Row":            reflect.ValueOf((*stats.Row)(nil)),
			"ScoreEntry":     reflect.ValueOf((*games.ScoreEntry)(nil)),

			"Average": reflect.ValueOf(stats.Average),
			"Fixed1":  reflect.ValueOf(stats.Fixed1),
			"Percent": reflect.ValueOf(stats.Percent),

			"Games": reflect.ValueOf(&input).Elem(),
			"Funcs": reflect.ValueOf(&helpers).Elem(),
		},
	}
}
