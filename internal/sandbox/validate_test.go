package sandbox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareAppendsEntryShim(t *testing.T) {
	prog, err := prepare(`package main
import "jeopardy"
func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result { return jeopardy.Result{} }`)
	require.NoError(t, err)

	assert.Equal(t, "main.jstatsEntry()", prog.entry)
	assert.Contains(t, prog.source, "func jstatsEntry() jeopardy.Result {")
	assert.Contains(t, prog.source, "return Analyze(jeopardy.Games, jeopardy.Funcs)")
}

func TestPrepareDotImport(t *testing.T) {
	prog, err := prepare(`package main
import . "jeopardy"
func Analyze(games []Game, helpers Helpers) Result { return Result{} }`)
	require.NoError(t, err)
	assert.Contains(t, prog.source, "return Analyze(Games, Funcs)")
}

func TestPrepareReservedNames(t *testing.T) {
	for _, name := range []string{"jstatsEntry", "init"} {
		_, err := prepare(`package main
import "jeopardy"
func ` + name + `() {}
func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result { return jeopardy.Result{} }`)
		requireKind(t, err, KindCompile)
	}
}

func TestPrepareMethodNamedAnalyzeIsNotEntry(t *testing.T) {
	_, err := prepare(`package main
import "jeopardy"
type T struct{}
func (T) Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result { return jeopardy.Result{} }`)
	execErr := requireKind(t, err, KindCompile)
	assert.True(t, strings.Contains(execErr.Error(), "must define func Analyze"))
}

func TestPrepareBannedIdentifiers(t *testing.T) {
	for _, snippet := range []string{"reflect.TypeOf(1)", "unsafe.Sizeof(1)", "runtime.GC()", "syscall.Exit(1)", "exec.Command(\"ls\")", "interp.New"} {
		_, err := prepare(`package main
import "jeopardy"
func Analyze(games []jeopardy.Game, helpers jeopardy.Helpers) jeopardy.Result {
	_ = ` + snippet + `
	return jeopardy.Result{}
}`)
		requireKind(t, err, KindUnsafe)
	}
}

func TestStdlibSymbolsAllowlist(t *testing.T) {
	syms := stdlibSymbols()
	assert.Contains(t, syms, "strings/strings")
	assert.Contains(t, syms, "fmt/fmt")
	assert.NotContains(t, syms, "os/os")
	assert.LessOrEqual(t, len(syms), len(allowedImports))
}
