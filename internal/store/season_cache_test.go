package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"jeopardy-stats-service/internal/domain/games"
	"jeopardy-stats-service/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingLoader struct {
	mu      sync.Mutex
	data    map[int][]games.Game
	calls   map[int]int
	release chan struct{}
	err     error
	started atomic.Int32
}

func newCountingLoader(data map[int][]games.Game) *countingLoader {
	return &countingLoader{data: data, calls: map[int]int{}}
}

func (l *countingLoader) LoadSeason(season int) ([]games.Game, error) {
	l.started.Add(1)
	if l.release != nil {
		<-l.release
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls[season]++
	if l.err != nil {
		return nil, l.err
	}
	gs, ok := l.data[season]
	if !ok {
		return []games.Game{}, nil
	}
	return gs, nil
}

func (l *countingLoader) callCount(season int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[season]
}

func seasonData() map[int][]games.Game {
	return map[int][]games.Game{
		1: {testutil.NewGame(1), testutil.NewGame(2)},
		2: {testutil.NewGame(3)},
		4: {testutil.NewGame(4), testutil.NewGame(5)},
	}
}

func TestSeasonCachesNonEmptySeasons(t *testing.T) {
	loader := newCountingLoader(seasonData())
	c := NewSeasonCache(loader, 0, nil)

	for range 3 {
		gs, err := c.Season(context.Background(), 1)
		require.NoError(t, err)
		assert.Len(t, gs, 2)
	}
	assert.Equal(t, 1, loader.callCount(1))
	assert.True(t, c.Cached(1))

	for range 2 {
		gs, err := c.Season(context.Background(), 3)
		require.NoError(t, err)
		assert.Empty(t, gs)
	}
	assert.Equal(t, 2, loader.callCount(3), "empty seasons are re-read")
	assert.False(t, c.Cached(3))

	c.Reset()
	assert.False(t, c.Cached(1))
}

func TestSeasonDeduplicatesConcurrentLoads(t *testing.T) {
	loader := newCountingLoader(seasonData())
	loader.release = make(chan struct{})
	c := NewSeasonCache(loader, 0, nil)

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gs, err := c.Season(context.Background(), 4)
			if err == nil {
				results[i] = len(gs)
			}
		}()
	}
	require.Eventually(t, func() bool { return loader.started.Load() >= 1 }, time.Second, 5*time.Millisecond)
	close(loader.release)
	wg.Wait()

	assert.Equal(t, 1, loader.callCount(4))
	for _, n := range results {
		assert.Equal(t, 2, n)
	}
}

func TestRangeConcatenatesInSeasonOrder(t *testing.T) {
	c := NewSeasonCache(newCountingLoader(seasonData()), 2, nil)

	gs, err := c.Range(context.Background(), 1, 5)
	require.NoError(t, err)

	ids := make([]int, len(gs))
	for i, g := range gs {
		ids[i] = g.GameID
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids)

	empty, err := c.Range(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRangePropagatesErrors(t *testing.T) {
	loader := newCountingLoader(seasonData())
	loader.err = errors.New("disk gone")
	c := NewSeasonCache(loader, 0, nil)

	_, err := c.Range(context.Background(), 1, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestSeasonWithoutLoader(t *testing.T) {
	c := NewSeasonCache(nil, 0, nil)
	_, err := c.Season(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoLoader)
}

func TestSeasonCanceledContext(t *testing.T) {
	c := NewSeasonCache(newCountingLoader(seasonData()), 0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Range(ctx, 1, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
