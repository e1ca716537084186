package advise

import (
	"context"
	"errors"
	"testing"

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

type countingMetrics struct {
	advice     int
	candidates int
}

func (m *countingMetrics) RecordAdvice(candidates int) { m.advice++; m.candidates = candidates }
func (m *countingMetrics) RecordPick(string)           {}
func (m *countingMetrics) RecordConflict()             {}
func (m *countingMetrics) RecordFailure()              {}

func newFixture(catalog stubCatalog) (UseCase, *memrepo.Store, *countingMetrics) {
	store := memrepo.NewStore()
	metrics := &countingMetrics{}
	uc := UseCase{
		VisionRepo:  memrepo.NewVisionRepo(store),
		WeightsRepo: memrepo.NewWeightsRepo(store),
		Catalog:     catalog,
		Metrics:     metrics,
		Engine:      garden.Engine{NewID: garden.NewSequentialIDs("advise"), RNG: garden.NewSeededSource(7)},
	}
	return uc, store, metrics
}

func testCatalog() stubCatalog {
	return stubCatalog{
		{
			ID:     "morning-dew",
			Name:   "Morning Dew",
			Effect: garden.UpgradeEffect{Count: 3, Tiers: 1},
		},
		{
			ID:     "fresh-sprout",
			Name:   "Fresh Sprout",
			Effect: garden.AddEffect{Count: garden.FixedCount(2)},
		},
		{
			ID:     "withering-thorn",
			Name:   "Withering Thorn",
			Effect: garden.RemoveEffect{Count: 2},
		},
	}
}

func TestAdviseRanksCatalogForNewPlayer(t *testing.T) {
	uc, _, metrics := newFixture(testCatalog())

	resp, err := uc.Execute(context.Background(), Request{PlayerID: "p1"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(resp.Recommendations) != 3 {
		t.Fatalf("recommendations = %d, want full catalog of 3", len(resp.Recommendations))
	}
	// An empty collection gains from adding and loses nothing from the rest,
	// so the add lotus leads.
	if resp.Recommendations[0].LotusID != "fresh-sprout" {
		t.Fatalf("top pick = %q, want fresh-sprout", resp.Recommendations[0].LotusID)
	}
	for i := 1; i < len(resp.Recommendations); i++ {
		if resp.Recommendations[i].Score > resp.Recommendations[i-1].Score {
			t.Fatalf("scores not descending at %d: %+v", i, resp.Recommendations)
		}
	}
	if metrics.advice != 1 || metrics.candidates != 3 {
		t.Fatalf("metrics = %+v, want one advice over 3 candidates", metrics)
	}
}

func TestAdviseRespectsRequestedCandidates(t *testing.T) {
	uc, _, _ := newFixture(testCatalog())

	resp, err := uc.Execute(context.Background(), Request{
		PlayerID: "p1",
		LotusIDs: []string{"withering-thorn"},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(resp.Recommendations) != 1 || resp.Recommendations[0].LotusID != "withering-thorn" {
		t.Fatalf("recommendations = %+v, want only withering-thorn", resp.Recommendations)
	}
}

func TestAdviseUnknownCandidate(t *testing.T) {
	uc, _, _ := newFixture(testCatalog())

	_, err := uc.Execute(context.Background(), Request{
		PlayerID: "p1",
		LotusIDs: []string{"no-such-lotus"},
	})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAdviseUsesStoredVisionAndWeights(t *testing.T) {
	uc, store, _ := newFixture(testCatalog())

	v := garden.NewVision("p1")
	v.Bubbles = []garden.Bubble{
		{ID: "b1", Type: garden.TypeDream, Quality: garden.QualityWhite},
		{ID: "b2", Type: garden.TypeDream, Quality: garden.QualityWhite},
		{ID: "b3", Type: garden.TypeDream, Quality: garden.QualityWhite},
	}
	store.SeedVision(v)

	resp, err := uc.Execute(context.Background(), Request{PlayerID: "p1", TopN: 1})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(resp.Recommendations) != 1 {
		t.Fatalf("recommendations = %d, want 1", len(resp.Recommendations))
	}
	// Upgrading three whites to green triples their grade weight, which beats
	// adding two more whites.
	if got := resp.Recommendations[0].LotusID; got != "morning-dew" {
		t.Fatalf("top pick = %q, want morning-dew", got)
	}
}

func TestAdviseGoalBiasesRanking(t *testing.T) {
	floraAdd := garden.Lotus{
		ID:     "verdant-bloom",
		Effect: garden.AddEffect{Count: garden.FixedCount(1), Type: &garden.TypeRule{Type: garden.TypeFlora}},
	}
	dreamAdd := garden.Lotus{
		ID:     "fresh-sprout",
		Effect: garden.AddEffect{Count: garden.FixedCount(1)},
	}
	uc, _, _ := newFixture(stubCatalog{dreamAdd, floraAdd})

	resp, err := uc.Execute(context.Background(), Request{PlayerID: "p1", Goal: "flora"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.Recommendations[0].LotusID != "verdant-bloom" {
		t.Fatalf("top pick with flora goal = %q, want verdant-bloom", resp.Recommendations[0].LotusID)
	}
}

func TestAdviseLookaheadFillsFutureValue(t *testing.T) {
	uc, _, _ := newFixture(testCatalog())

	resp, err := uc.Execute(context.Background(), Request{PlayerID: "p1", Lookahead: true, TopN: 1})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	top := resp.Recommendations[0]
	if top.LookaheadScore != top.Score+top.FutureValue {
		t.Fatalf("lookahead score = %v, want score %v + future %v", top.LookaheadScore, top.Score, top.FutureValue)
	}
}

func TestAdviseRejectsEmptyPlayer(t *testing.T) {
	uc, _, _ := newFixture(testCatalog())
	if _, err := uc.Execute(context.Background(), Request{PlayerID: "  "}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("err = %v, want ErrInvalidRequest", err)
	}
}
