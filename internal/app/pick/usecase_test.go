package pick

import (
	"context"
	"errors"
	"testing"
	"time"

	memrepo "lotusadvisor/internal/adapter/repo/memory"
	"lotusadvisor/internal/app/ports"
	"lotusadvisor/internal/domain/garden"
)

type stubCatalog []garden.Lotus

func (c stubCatalog) All(context.Context) ([]garden.Lotus, error) {
	return c, nil
}

func (c stubCatalog) ByID(_ context.Context, id string) (garden.Lotus, error) {
	for _, l := range c {
		if l.ID == id {
			return l, nil
		}
	}
	return garden.Lotus{}, ports.ErrNotFound
}

type spyMetrics struct {
	picks     int
	conflicts int
	failures  int
	lastCode  string
}

func (m *spyMetrics) RecordAdvice(int)       {}
func (m *spyMetrics) RecordPick(code string) { m.picks++; m.lastCode = code }
func (m *spyMetrics) RecordConflict()        { m.conflicts++ }
func (m *spyMetrics) RecordFailure()         { m.failures++ }

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func newFixture(catalog stubCatalog) (UseCase, *memrepo.Store, *spyMetrics) {
	store := memrepo.NewStore()
	metrics := &spyMetrics{}
	uc := UseCase{
		TxManager:  memrepo.NewTxManager(store),
		VisionRepo: memrepo.NewVisionRepo(store),
		PickRepo:   memrepo.NewPickExecutionRepo(store),
		EventRepo:  memrepo.NewEventRepo(store),
		Catalog:    catalog,
		Metrics:    metrics,
		Engine:     garden.Engine{NewID: garden.NewSequentialIDs("pick"), RNG: garden.NewSeededSource(7)},
		Now:        fixedNow,
	}
	return uc, store, metrics
}

func sproutLotus() garden.Lotus {
	return garden.Lotus{
		ID:     "fresh-sprout",
		Name:   "Fresh Sprout",
		Effect: garden.AddEffect{Count: garden.FixedCount(2)},
	}
}

func rootLotus() garden.Lotus {
	return garden.Lotus{
		ID:          "rainbow-root",
		Name:        "Rainbow Root",
		Fundamental: true,
		Effect:      garden.MultiplyOnEnterEffect{Type: &garden.TypeRule{Type: garden.TypeDream}},
	}
}

func TestPickAppliesEffectAndRecordsEvent(t *testing.T) {
	uc, store, metrics := newFixture(stubCatalog{sproutLotus()})

	resp, err := uc.Execute(context.Background(), Request{
		PlayerID:       "p1",
		IdempotencyKey: "k1",
		LotusID:        "fresh-sprout",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.ResultCode != ResultOK {
		t.Fatalf("result code = %q, want %q", resp.ResultCode, ResultOK)
	}
	if len(resp.UpdatedVision.Bubbles) != 2 {
		t.Fatalf("bubbles = %d, want 2", len(resp.UpdatedVision.Bubbles))
	}
	if resp.UpdatedVision.Version != 1 {
		t.Fatalf("version = %d, want 1", resp.UpdatedVision.Version)
	}
	if len(resp.Events) != 1 || resp.Events[0].Type != EventLotusPicked {
		t.Fatalf("events = %+v, want one %s event", resp.Events, EventLotusPicked)
	}
	if metrics.picks != 1 || metrics.lastCode != ResultOK {
		t.Fatalf("metrics = %+v, want one OK pick", metrics)
	}

	saved, err := memrepo.NewVisionRepo(store).GetByPlayerID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("load saved vision: %v", err)
	}
	if len(saved.Bubbles) != 2 || saved.Version != 1 {
		t.Fatalf("saved vision = %+v, want 2 bubbles at version 1", saved)
	}
}

func TestPickIsIdempotent(t *testing.T) {
	uc, _, metrics := newFixture(stubCatalog{sproutLotus()})
	req := Request{PlayerID: "p1", IdempotencyKey: "k1", LotusID: "fresh-sprout"}

	first, err := uc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("first execute: %v", err)
	}
	second, err := uc.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("second execute: %v", err)
	}

	if second.UpdatedVision.Version != first.UpdatedVision.Version {
		t.Fatalf("replay version = %d, want %d", second.UpdatedVision.Version, first.UpdatedVision.Version)
	}
	if len(second.UpdatedVision.Bubbles) != len(first.UpdatedVision.Bubbles) {
		t.Fatalf("replay reapplied the effect: %d bubbles vs %d", len(second.UpdatedVision.Bubbles), len(first.UpdatedVision.Bubbles))
	}
	if metrics.picks != 2 {
		t.Fatalf("picks = %d, want 2", metrics.picks)
	}
}

func TestPickSetsFundamental(t *testing.T) {
	uc, _, _ := newFixture(stubCatalog{rootLotus()})

	resp, err := uc.Execute(context.Background(), Request{
		PlayerID:       "p1",
		IdempotencyKey: "k1",
		LotusID:        "rainbow-root",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.UpdatedVision.Fundamental == nil || resp.UpdatedVision.Fundamental.ID != "rainbow-root" {
		t.Fatalf("fundamental = %+v, want rainbow-root", resp.UpdatedVision.Fundamental)
	}
}

func TestPickRejectsSecondFundamental(t *testing.T) {
	beastHeart := garden.Lotus{
		ID:          "beast-heart",
		Fundamental: true,
		Effect:      garden.MultiplyOnEnterEffect{Type: &garden.TypeRule{Type: garden.TypeBeast}},
	}
	uc, store, metrics := newFixture(stubCatalog{rootLotus(), beastHeart})

	if _, err := uc.Execute(context.Background(), Request{
		PlayerID: "p1", IdempotencyKey: "k1", LotusID: "rainbow-root",
	}); err != nil {
		t.Fatalf("first pick: %v", err)
	}

	resp, err := uc.Execute(context.Background(), Request{
		PlayerID: "p1", IdempotencyKey: "k2", LotusID: "beast-heart",
	})
	if err != nil {
		t.Fatalf("second pick: %v", err)
	}
	if resp.ResultCode != ResultFundamentalAlreadySet {
		t.Fatalf("result code = %q, want %q", resp.ResultCode, ResultFundamentalAlreadySet)
	}
	if resp.UpdatedVision.Fundamental.ID != "rainbow-root" {
		t.Fatalf("fundamental = %q, want the first one kept", resp.UpdatedVision.Fundamental.ID)
	}

	saved, _ := memrepo.NewVisionRepo(store).GetByPlayerID(context.Background(), "p1")
	if saved.Version != 1 {
		t.Fatalf("rejected pick bumped version to %d", saved.Version)
	}
	if metrics.lastCode != ResultFundamentalAlreadySet {
		t.Fatalf("metrics last code = %q", metrics.lastCode)
	}
}

func TestPickRejectedFundamentalIsReplayable(t *testing.T) {
	beastHeart := garden.Lotus{
		ID:          "beast-heart",
		Fundamental: true,
		Effect:      garden.MultiplyOnEnterEffect{},
	}
	uc, _, _ := newFixture(stubCatalog{rootLotus(), beastHeart})

	ctx := context.Background()
	if _, err := uc.Execute(ctx, Request{PlayerID: "p1", IdempotencyKey: "k1", LotusID: "rainbow-root"}); err != nil {
		t.Fatalf("first pick: %v", err)
	}
	rejected, err := uc.Execute(ctx, Request{PlayerID: "p1", IdempotencyKey: "k2", LotusID: "beast-heart"})
	if err != nil {
		t.Fatalf("rejected pick: %v", err)
	}
	replayed, err := uc.Execute(ctx, Request{PlayerID: "p1", IdempotencyKey: "k2", LotusID: "beast-heart"})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if replayed.ResultCode != rejected.ResultCode {
		t.Fatalf("replay code = %q, want %q", replayed.ResultCode, rejected.ResultCode)
	}
}

func TestPickUnknownLotus(t *testing.T) {
	uc, _, metrics := newFixture(stubCatalog{})

	_, err := uc.Execute(context.Background(), Request{
		PlayerID: "p1", IdempotencyKey: "k1", LotusID: "no-such-lotus",
	})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if metrics.failures != 1 {
		t.Fatalf("failures = %d, want 1", metrics.failures)
	}
}

func TestPickValidatesRequest(t *testing.T) {
	uc, _, _ := newFixture(stubCatalog{sproutLotus()})

	for _, req := range []Request{
		{IdempotencyKey: "k", LotusID: "fresh-sprout"},
		{PlayerID: "p1", LotusID: "fresh-sprout"},
		{PlayerID: "p1", IdempotencyKey: "k"},
	} {
		if _, err := uc.Execute(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("req %+v: err = %v, want ErrInvalidRequest", req, err)
		}
	}
}
