package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"jeopardy-stats-service/internal/domain/games"
	"jeopardy-stats-service/internal/metrics"
	"jeopardy-stats-service/internal/normalize"
	"jeopardy-stats-service/internal/providers/fixture"
	"jeopardy-stats-service/internal/seasons"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type failingProvider struct{ err error }

func (p failingProvider) Name() string { return "broken" }

func (p failingProvider) FetchRawGames(context.Context) ([]games.RawGame, error) {
	return nil, p.err
}

type failingWriter struct{}

func (failingWriter) WriteBuckets(map[string][]games.Game) error {
	return errors.New("read-only")
}

type resetCounter struct{ resets int }

func (r *resetCounter) Reset() { r.resets++ }

func TestRunWritesSeasonAndEventBuckets(t *testing.T) {
	dir := t.TempDir()
	rec := metrics.NewRecorder()
	cache := &resetCounter{}
	svc := NewService(fixture.New(), normalize.NewNormalizer(nil, rec), seasons.NewWriter(dir, nil), cache, 1, nil)

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixture.ProviderName, summary.Provider)
	assert.Equal(t, 3, summary.Games)
	assert.Equal(t, 2, summary.LastSeason)
	assert.Equal(t, map[string]int{
		"season-01":             1,
		"season-02":             1,
		"tournamentOfChampions": 1,
	}, summary.Buckets)
	assert.Equal(t, 1, cache.resets)
	normalized, _ := rec.GamesNormalized()
	assert.Equal(t, 3, normalized)

	store := seasons.NewFSStore(dir, nil)
	s1, err := store.LoadSeason(1)
	require.NoError(t, err)
	require.Len(t, s1, 1)
	assert.Equal(t, games.ClassRegularGame, s1[0].Classification)
	assert.Equal(t, 1, s1[0].GameID)

	toc, err := store.LoadBucket("tournamentOfChampions")
	require.NoError(t, err)
	require.Len(t, toc, 1)
	assert.Equal(t, games.ClassTournamentOfChampions, toc[0].Classification)

	list, err := store.Seasons()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, list)

	m, err := seasons.ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Buckets["season-02"].Games)
}

func TestRunPropagatesFailures(t *testing.T) {
	norm := normalize.NewNormalizer(nil, nil)

	_, err := NewService(nil, norm, failingWriter{}, nil, 1, nil).Run(context.Background())
	assert.ErrorIs(t, err, ErrNoProvider)

	_, err = NewService(failingProvider{err: errors.New("offline")}, norm, failingWriter{}, nil, 1, nil).Run(context.Background())
	assert.EqualError(t, err, "fetch raw games from broken: offline")

	cache := &resetCounter{}
	_, err = NewService(fixture.New(), norm, failingWriter{}, cache, 1, nil).Run(context.Background())
	assert.EqualError(t, err, "write buckets: read-only")
	assert.Zero(t, cache.resets)
}

func TestRunHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewService(fixture.New(), normalize.NewNormalizer(nil, nil), seasons.NewWriter(t.TempDir(), nil), nil, 1, nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
