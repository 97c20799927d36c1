package sandbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jeopardy-stats-service/internal/domain/games"
	"jeopardy-stats-service/internal/metrics"
	"jeopardy-stats-service/internal/testutil"
)

const winsProgram = `package main

import (
	"fmt"
	"jeopardy"
)

func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result {
	wins := map[string]int{}
	for _, g := range games {
		if w := helpers.GetWinner(g); w != "" {
			wins[w]++
		}
	}
	rows := []jeopardy.Row{}
	for _, name := range []string{"Ann", "Bob"} {
		rows = append(rows, jeopardy.Row{
			"player":  name,
			"wins":    wins[name],
			"winRate": helpers.Percent(wins[name], len(games)),
		})
	}
	return jeopardy.Result{
		Description: fmt.Sprintf("Wins across %d games", len(games)),
		TotalGames:  len(games),
		Results:     rows,
	}
}
`

func sampleGames() []games.Game {
	return []games.Game{
		testutil.NewGame(1, testutil.WithFinalScores(testutil.Score("Ann", 100), testutil.Score("Bob", 50))),
		testutil.NewGame(2, testutil.WithFinalScores(testutil.Score("Ann", 300), testutil.Score("Bob", 0))),
		testutil.NewGame(3, testutil.WithFinalScores(testutil.Score("Ann", 0), testutil.Score("Bob", 20))),
	}
}

func newTestEvaluator(timeout time.Duration) (*Evaluator, *metrics.Recorder) {
	rec := metrics.NewRecorder()
	logger, _ := testutil.NewBufferLogger()
	return NewEvaluator(timeout, logger, rec), rec
}

func requireKind(t *testing.T, err error, want Kind) *ExecError {
	t.Helper()
	execErr, ok := AsExecError(err)
	require.True(t, ok, "expected ExecError, got %v", err)
	require.Equal(t, want, execErr.Kind, "err: %v", execErr.Err)
	return execErr
}

func TestEvaluateRunsProgram(t *testing.T) {
	ev, rec := newTestEvaluator(5 * time.Second)

	res, err := ev.Evaluate(context.Background(), winsProgram, sampleGames())
	require.NoError(t, err)

	assert.Equal(t, "Wins across 3 games", res.Description)
	assert.Equal(t, 3, res.TotalGames)
	require.Len(t, res.Results, 2)
	assert.Equal(t, "Ann", res.Results[0]["player"])
	assert.Equal(t, 2, res.Results[0]["wins"])
	assert.Equal(t, "66.7", res.Results[0]["winRate"])
	assert.Equal(t, "33.3", res.Results[1]["winRate"])
	assert.Equal(t, 1, rec.SandboxRuns(outcomeOK))
}

func TestEvaluateWithoutPackageClause(t *testing.T) {
	ev, _ := newTestEvaluator(5 * time.Second)
	code := `import "jeopardy"

func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result {
	return jeopardy.Result{Description: "count", TotalGames: len(games), Results: []jeopardy.Row{}}
}`

	res, err := ev.Evaluate(context.Background(), code, sampleGames())
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalGames)
	assert.Empty(t, res.Results)
}

func TestEvaluateAliasedHostImport(t *testing.T) {
	ev, _ := newTestEvaluator(5 * time.Second)
	code := `package main

import j "jeopardy"

func Analyze(games []j.Game, helpers j.Helpers) j.Result {
	return j.Result{Description: "aliased", TotalGames: len(games), Results: []j.Row{{"pct": j.Percent(1, 3)}}}
}`

	res, err := ev.Evaluate(context.Background(), code, sampleGames())
	require.NoError(t, err)
	assert.Equal(t, "33.3", res.Results[0]["pct"])
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	ev, _ := newTestEvaluator(5 * time.Second)
	code := `package main

import "jeopardy"

func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result {
	for i := range games {
		games[i].FinalScores[0].Score = -1
		games[i].Contestants[0] = "X"
	}
	return jeopardy.Result{Description: "mutate", TotalGames: len(games), Results: []jeopardy.Row{}}
}`
	input := sampleGames()

	_, err := ev.Evaluate(context.Background(), code, input)
	require.NoError(t, err)
	assert.Equal(t, sampleGames(), input)
}

func TestEvaluateRejectsUnsafePrograms(t *testing.T) {
	cases := map[string]string{
		"os import": `package main
import (
	"jeopardy"
	"os"
)
func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result {
	os.Exit(1)
	return jeopardy.Result{}
}`,
		"net import": `package main
import (
	"jeopardy"
	"net/http"
)
func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result {
	http.Get("http://example.com")
	return jeopardy.Result{}
}`,
		"cgo": `package main
import "C"
import "jeopardy"
func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result { return jeopardy.Result{} }`,
		"directive": `package main
import "jeopardy"
//go:noinline
func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result { return jeopardy.Result{} }`,
		"goroutine": `package main
import "jeopardy"
func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result {
	go func() {}()
	return jeopardy.Result{}
}`,
	}

	for name, code := range cases {
		t.Run(name, func(t *testing.T) {
			ev, rec := newTestEvaluator(time.Second)
			_, err := ev.Evaluate(context.Background(), code, sampleGames())
			execErr := requireKind(t, err, KindUnsafe)
			assert.Equal(t, code, execErr.Code)
			assert.Equal(t, 1, rec.SandboxRuns(string(KindUnsafe)))
		})
	}
}

func TestEvaluateCompileErrors(t *testing.T) {
	cases := map[string]string{
		"syntax": `package main
import "jeopardy"
func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result {`,
		"missing Analyze": `package main
import "jeopardy"
func Other() {}`,
		"missing host import": `package main
func Analyze() {}`,
		"wrong package": `package stats
import "jeopardy"
func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result { return jeopardy.Result{} }`,
		"type error": `package main
import "jeopardy"
func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result {
	return undefinedThing
}`,
		"empty": "   ",
	}

	for name, code := range cases {
		t.Run(name, func(t *testing.T) {
			ev, _ := newTestEvaluator(5 * time.Second)
			_, err := ev.Evaluate(context.Background(), code, sampleGames())
			requireKind(t, err, KindCompile)
		})
	}
}

func TestEvaluateRuntimePanic(t *testing.T) {
	ev, _ := newTestEvaluator(5 * time.Second)
	code := `package main
import "jeopardy"
func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result {
	var rows []jeopardy.Row
	_ = rows[10]
	return jeopardy.Result{Description: "never", Results: rows}
}`

	_, err := ev.Evaluate(context.Background(), code, sampleGames())
	requireKind(t, err, KindRuntime)
}

func TestEvaluateInvalidResult(t *testing.T) {
	cases := map[string]string{
		"missing description": `package main
import "jeopardy"
func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result {
	return jeopardy.Result{TotalGames: len(games), Results: []jeopardy.Row{}}
}`,
		"nil results": `package main
import "jeopardy"
func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result {
	return jeopardy.Result{Description: "no rows", TotalGames: len(games)}
}`,
		"negative total": `package main
import "jeopardy"
func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result {
	return jeopardy.Result{Description: "neg", TotalGames: -1, Results: []jeopardy.Row{}}
}`,
	}

	for name, code := range cases {
		t.Run(name, func(t *testing.T) {
			ev, _ := newTestEvaluator(5 * time.Second)
			_, err := ev.Evaluate(context.Background(), code, sampleGames())
			requireKind(t, err, KindInvalidResult)
		})
	}
}

func TestEvaluateTimeout(t *testing.T) {
	ev, rec := newTestEvaluator(100 * time.Millisecond)
	code := `package main
import "jeopardy"
func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result {
	n := 0
	for {
		n++
	}
	return jeopardy.Result{Description: "never", Results: []jeopardy.Row{}}
}`

	start := time.Now()
	_, err := ev.Evaluate(context.Background(), code, sampleGames())
	execErr := requireKind(t, err, KindTimeout)
	assert.True(t, errors.Is(execErr, ErrTimeout))
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, 1, rec.SandboxRuns(string(KindTimeout)))
}

func TestEvaluateParentCanceled(t *testing.T) {
	ev, _ := newTestEvaluator(5 * time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ev.Evaluate(ctx, winsProgram, sampleGames())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	_, isExec := AsExecError(err)
	assert.False(t, isExec)
}

func TestNewEvaluatorDefaultTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewEvaluator(0, nil, nil).Timeout())
	assert.Equal(t, time.Second, NewEvaluator(time.Second, nil, nil).Timeout())
}

func TestExecErrorFormatting(t *testing.T) {
	err := &ExecError{Kind: KindRuntime, Err: errors.New("boom")}
	assert.Equal(t, "analysis runtime error: boom", err.Error())
	assert.Equal(t, "analysis compile error", (&ExecError{Kind: KindCompile}).Error())

	_, ok := AsExecError(errors.New("plain"))
	assert.False(t, ok)
}
