package nightmare

import (
	"context"
	"errors"
	"testing"
	"time"

	memrepo "lotusadvisor/internal/adapter/repo/memory"
	"lotusadvisor/internal/app/ports"
	"lotusadvisor/internal/domain/garden"
)

func newFixture() (UseCase, *memrepo.Store) {
	store := memrepo.NewStore()
	uc := UseCase{
		TxManager:  memrepo.NewTxManager(store),
		VisionRepo: memrepo.NewVisionRepo(store),
		EventRepo:  memrepo.NewEventRepo(store),
		Engine:     garden.Engine{NewID: garden.NewSequentialIDs("night"), RNG: garden.NewSeededSource(7)},
		Now:        func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
	return uc, store
}

func dreamBubbles(n int) []garden.Bubble {
	out := make([]garden.Bubble, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, garden.Bubble{ID: string(rune('a' + i)), Type: garden.TypeDream, Quality: garden.QualityWhite})
	}
	return out
}

func TestNightmareUnknownPlayer(t *testing.T) {
	uc, _ := newFixture()
	_, err := uc.Execute(context.Background(), Request{PlayerID: "ghost"})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestNightmareWithoutFundamentalIsNoop(t *testing.T) {
	uc, store := newFixture()
	v := garden.NewVision("p1")
	v.Bubbles = dreamBubbles(3)
	v.Version = 2
	store.SeedVision(v)

	resp, err := uc.Execute(context.Background(), Request{PlayerID: "p1"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.Applied {
		t.Fatal("applied without a fundamental")
	}
	if resp.UpdatedVision.Version != 2 {
		t.Fatalf("version = %d, want unchanged 2", resp.UpdatedVision.Version)
	}

	saved, _ := memrepo.NewVisionRepo(store).GetByPlayerID(context.Background(), "p1")
	if saved.Version != 2 {
		t.Fatalf("stored version = %d, no-op must not persist", saved.Version)
	}
}

func TestNightmareAppliesFundamental(t *testing.T) {
	uc, store := newFixture()

	root := garden.Lotus{
		ID:          "rainbow-root",
		Fundamental: true,
		Effect:      garden.MultiplyOnEnterEffect{Type: &garden.TypeRule{Type: garden.TypeDream}},
	}
	v := garden.NewVision("p1")
	v.Bubbles = dreamBubbles(6)
	v.Version = 1
	attached, err := v.WithFundamental(root)
	if err != nil {
		t.Fatalf("attach fundamental: %v", err)
	}
	store.SeedVision(attached)

	resp, err := uc.Execute(context.Background(), Request{PlayerID: "p1"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !resp.Applied || resp.FundamentalID != "rainbow-root" {
		t.Fatalf("resp = %+v, want applied rainbow-root", resp)
	}
	// Six dream bubbles at the default third multiplier bloom two rainbows,
	// on top of the originals.
	if len(resp.UpdatedVision.Bubbles) != 8 {
		t.Fatalf("bubbles = %d, want 8", len(resp.UpdatedVision.Bubbles))
	}
	rainbows := 0
	for _, b := range resp.UpdatedVision.Bubbles {
		if b.Quality == garden.QualityRainbow {
			rainbows++
		}
	}
	if rainbows != 2 {
		t.Fatalf("rainbow bubbles = %d, want 2", rainbows)
	}
	if resp.UpdatedVision.Version != 2 {
		t.Fatalf("version = %d, want 2", resp.UpdatedVision.Version)
	}

	events, err := memrepo.NewEventRepo(store).ListByPlayerID(context.Background(), "p1", 0)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 || events[0].Type != EventNightmareEntered {
		t.Fatalf("events = %+v, want one %s event", events, EventNightmareEntered)
	}
}

func TestNightmareRejectsEmptyPlayer(t *testing.T) {
	uc, _ := newFixture()
	if _, err := uc.Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("err = %v, want ErrInvalidRequest", err)
	}
}
