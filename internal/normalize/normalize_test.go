package normalize

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"jeopardy-stats-service/internal/domain/games"
	"jeopardy-stats-service/internal/metrics"
	"jeopardy-stats-service/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCoerce(t *testing.T) {
	cases := []struct {
		in   games.Token
		want int
	}{
		{games.StringToken("$1,200"), 1200},
		{games.StringToken("$2,000:"), 2000},
		{games.StringToken("garbage"), 0},
		{games.StringToken("DD: $1,000"), 1000},
		{games.StringToken("-$500"), -500},
		{games.StringToken(""), 0},
		{games.IntToken(400), 400},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Coerce(tc.in), "coerce %q", tc.in.String())
	}
	assert.Equal(t, 2000, CoerceString("$2,000:"))
}

func TestParseScoreOnlyStripsCurrency(t *testing.T) {
	assert.Equal(t, 20200, ParseScore(games.StringToken("$20,200")))
	assert.Equal(t, -1000, ParseScore(games.StringToken("-$1,000")))
	assert.Equal(t, 0, ParseScore(games.StringToken("")))
	assert.Equal(t, 7, ParseScore(games.IntToken(7)))
}

func TestTrackerCollapsesDuplicatesAndIgnoresUnknown(t *testing.T) {
	tr := NewTracker([]string{"Ann", "Bob", "Ann"})
	tr.Apply("Ann", 400)
	tr.Apply("Zed", 1000)

	assert.True(t, tr.Tracks("Bob"))
	assert.False(t, tr.Tracks("Zed"))
	assert.Equal(t, []games.ScoreEntry{{Player: "Ann", Score: 400}, {Player: "Bob", Score: 0}}, tr.Snapshot())

	totals := tr.Totals()
	totals["Ann"] = 0
	assert.Equal(t, 400, tr.Totals()["Ann"], "totals must be a copy")
}

func TestSortCluesPutsMissingOrderLast(t *testing.T) {
	clues := []games.RawClue{
		{Clue: "none-a"},
		{Clue: "three", OrderNumber: testutil.IntPtr(3)},
		{Clue: "zero", OrderNumber: testutil.IntPtr(0)},
		{Clue: "one", OrderNumber: testutil.IntPtr(1)},
		{Clue: "none-b"},
	}

	sorted := SortClues(clues)
	got := make([]string, len(sorted))
	for i, c := range sorted {
		got[i] = c.Clue
	}
	assert.Equal(t, []string{"one", "three", "none-a", "zero", "none-b"}, got)
	assert.Equal(t, "none-a", clues[0].Clue, "input must not be reordered")
}

func TestReconstructRoundRunningScoresArePrefixSums(t *testing.T) {
	raw := &games.RawRound{
		Clues: []games.RawClue{
			testutil.RawClue(4, "$800", []string{"Cat"}, []string{"Ann", "Bob"}),
			testutil.RawClue(1, "$200", []string{"Ann"}, nil),
			testutil.RawClue(3, "$600", nil, []string{"Triple Stumper"}),
			testutil.RawClue(2, "$400", []string{"Bob"}, []string{"Ann", "Stranger"}),
		},
	}
	players := []string{"Ann", "Bob", "Cat"}
	tr := NewTracker(players)

	round := ReconstructRound(raw, tr)
	require.Len(t, round.Clues, 4)

	sums := map[string]int{}
	for i, clue := range round.Clues {
		assert.Equal(t, i+1, *clue.OrderNumber)
		for _, p := range clue.CorrectContestants {
			if tr.Tracks(p) {
				sums[p] += clue.Value
			}
		}
		for _, p := range clue.IncorrectContestants {
			if tr.Tracks(p) {
				sums[p] -= clue.Value
			}
		}
		require.Len(t, clue.RunningScores, len(players))
		for j, entry := range clue.RunningScores {
			assert.Equal(t, players[j], entry.Player)
			assert.Equal(t, sums[entry.Player], entry.Score, "clue %d player %s", i, entry.Player)
		}
		assert.NotContains(t, clue.IncorrectContestants, TripleStumper)
	}
	assert.Equal(t, []games.ScoreEntry{{Player: "Ann", Score: -1000}, {Player: "Bob", Score: -400}, {Player: "Cat", Score: 800}}, tr.Snapshot())
}

func TestReconstructRoundContinuesFromSeed(t *testing.T) {
	tr := NewTracker([]string{"Ann", "Bob"})
	tr.Apply("Ann", 1000)

	round := ReconstructRound(&games.RawRound{
		Clues: []games.RawClue{testutil.RawClue(1, "$2,000", []string{"Bob"}, []string{"Ann"})},
	}, tr)

	assert.Equal(t, []games.ScoreEntry{{Player: "Ann", Score: -1000}, {Player: "Bob", Score: 2000}}, round.Clues[0].RunningScores)
}

func TestReconstructRoundHandlesMissingLists(t *testing.T) {
	tr := NewTracker([]string{"Ann"})
	round := ReconstructRound(&games.RawRound{
		Clues: []games.RawClue{{Value: games.StringToken("junk")}},
	}, tr)

	require.Len(t, round.Clues, 1)
	assert.Equal(t, 0, round.Clues[0].Value)
	assert.Empty(t, round.Clues[0].CorrectContestants)
	assert.NotNil(t, round.Clues[0].IncorrectContestants)
	assert.Nil(t, ReconstructRound(nil, tr))
}

func TestPairFinalResponses(t *testing.T) {
	prior := map[string]int{"Ann": 10000, "Bob": 6000}
	raw := []games.RawFinalResponse{
		{Contestant: "Ann", Response: "What is X?", IsCorrect: true},
		{Contestant: "Ann", Response: "$5,000"},
		{Contestant: "Bob", Response: "What is Y?", IsIncorrect: true},
		{Contestant: "Bob", Response: "$2,000"},
		{Contestant: "Cat", Response: "What is Z?"},
		{Contestant: "Cat", Response: "$100"},
		{Contestant: "New", Response: "What is W?", IsCorrect: true},
		{Contestant: "New", Response: "$50"},
		{Contestant: "Odd", Response: "trailing"},
	}

	got := PairFinalResponses(raw, prior)
	require.Len(t, got, 5)

	assert.Equal(t, "What is X?", got[0].Response)
	assert.Equal(t, 5000, *got[0].Value)
	assert.Equal(t, 15000, *got[0].FinalScore)
	assert.Equal(t, 4000, *got[1].FinalScore)
	assert.Equal(t, 0, *got[2].FinalScore, "neither flag keeps prior")
	assert.Equal(t, 50, *got[3].FinalScore, "unknown contestant starts at zero")
	assert.Nil(t, got[4].Value)
	assert.Nil(t, got[4].FinalScore)
}

func TestPairFinalResponsesShortInput(t *testing.T) {
	assert.Nil(t, PairFinalResponses(nil, nil))
	assert.Empty(t, PairFinalResponses([]games.RawFinalResponse{}, nil))

	single := PairFinalResponses([]games.RawFinalResponse{{Contestant: "Ann", Response: "$5,000", IsCorrect: true}}, map[string]int{"Ann": 1})
	require.Len(t, single, 1)
	assert.Equal(t, "$5,000", single[0].Response)
	assert.True(t, single[0].IsCorrect)
	assert.Nil(t, single[0].Value)
}

func TestNormalizeSampleGame(t *testing.T) {
	g := Normalize(testutil.SampleRawGame(42))

	assert.Equal(t, 42, g.GameID)
	assert.Equal(t, "8000", g.ShowNumber)
	assert.Equal(t, []games.ScoreEntry{{Player: "Ann", Score: 2600}, {Player: "Bob", Score: -800}, {Player: "Cat", Score: 400}}, g.FinalScores)
	assert.Equal(t, []string{"Ann", "Bob", "Cat"}, g.Contestants)

	j := g.Rounds.Jeopardy
	require.NotNil(t, j)
	assert.Equal(t, []games.ScoreEntry{{Player: "Ann", Score: -200}, {Player: "Bob", Score: 400}, {Player: "Cat", Score: -600}}, j.EndOfRoundScores)
	last := j.Clues[len(j.Clues)-1]
	assert.Equal(t, []string{"Cat"}, last.IncorrectContestants)
	assert.Equal(t, []games.ScoreEntry{{Player: "Ann", Score: -200}, {Player: "Bob", Score: 400}, {Player: "Cat", Score: -600}, {Player: "Extra", Score: 0}}, last.RunningScores)

	dj := g.Rounds.DoubleJeopardy
	require.NotNil(t, dj)
	assert.Equal(t, 1000, dj.Clues[1].Value)
	assert.Equal(t, []games.ScoreEntry{{Player: "Ann", Score: 1000}, {Player: "Bob", Score: -800}, {Player: "Cat", Score: 400}, {Player: "Extra", Score: 0}}, dj.Clues[1].RunningScores)

	fj := g.Rounds.FinalJeopardy
	require.NotNil(t, fj)
	require.Len(t, fj.Responses, 2)
	assert.Equal(t, 1600, *fj.Responses[0].Value)
	assert.Equal(t, 2600, *fj.Responses[0].FinalScore)
	assert.Equal(t, 400, *fj.Responses[1].FinalScore)
}

func TestNormalizeNeverLeavesTripleStumper(t *testing.T) {
	g := Normalize(testutil.SampleRawGame(1))
	for _, round := range []*games.Round{g.Rounds.Jeopardy, g.Rounds.DoubleJeopardy} {
		for _, clue := range round.Clues {
			assert.NotContains(t, clue.IncorrectContestants, TripleStumper)
		}
	}
}

func TestNormalizeSkipsAbsentParts(t *testing.T) {
	g := Normalize(games.RawGame{GameID: 3, Contestants: []string{"Ann", "Bob"}})

	assert.Nil(t, g.Rounds.Jeopardy)
	assert.Nil(t, g.Rounds.DoubleJeopardy)
	assert.Nil(t, g.Rounds.FinalJeopardy)
	assert.Nil(t, g.FinalScores)
	assert.Equal(t, []string{"Ann", "Bob"}, g.Contestants)
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	raw := testutil.SampleRawGame(9)
	Normalize(raw)
	assert.Equal(t, "Triple Stumper", raw.Rounds.Jeopardy.Clues[2].IncorrectContestants[1])
	assert.Len(t, raw.FinalScores, 4)
}

func TestNormalizerLogsUnparseableTokens(t *testing.T) {
	logger, buf := testutil.NewDebugBufferLogger()
	rec := metrics.NewRecorder()
	n := NewNormalizer(logger, rec)

	raw := testutil.SampleRawGame(5)
	raw.Rounds.Jeopardy.Clues[0].Value = games.StringToken("n/a")

	out := n.NormalizeAll(context.Background(), []games.RawGame{raw, testutil.SampleRawGame(6)})
	require.Len(t, out, 2)

	gamesSeen, unparsed := rec.GamesNormalized()
	assert.Equal(t, 2, gamesSeen)
	assert.Equal(t, 1, unparsed)
	assert.True(t, strings.Contains(buf.String(), "unparseable tokens"), buf.String())
}
