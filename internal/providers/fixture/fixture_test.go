package fixture

import (
	"context"
	"testing"
)

func TestFetchRawGamesReturnsDeterministicGames(t *testing.T) {
	p := New()
	if p.Name() != ProviderName {
		t.Fatalf("unexpected name %q", p.Name())
	}

	raws, err := p.FetchRawGames(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(raws) != 3 {
		t.Fatalf("expected 3 games, got %d", len(raws))
	}

	first := raws[0]
	if first.GameID != 1 || first.Comments != "First game of Season 1." {
		t.Fatalf("unexpected first game: %+v", first)
	}
	if got := first.Rounds.DoubleJeopardy.Clues[0].Value.Int(); got != 1000 {
		t.Fatalf("expected daily double value 1000, got %d", got)
	}
	if got := len(first.FinalScores); got != 3 {
		t.Fatalf("expected 3 final scores, got %d", got)
	}

	again, _ := p.FetchRawGames(context.Background())
	if again[1].FinalScores[0].Score.Int() != raws[1].FinalScores[0].Score.Int() {
		t.Fatalf("expected deterministic output")
	}
}

func TestFetchRawGamesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().FetchRawGames(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}
