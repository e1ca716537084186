package memory

import (
	"context"
	"sync"

	"lotusadvisor/internal/app/ports"
	"lotusadvisor/internal/domain/garden"
)

type Store struct {
	mu         sync.RWMutex
	visions    map[string]garden.Vision
	weights    map[string]garden.Weights
	executions map[string]ports.PickExecutionRecord
	events     map[string][]garden.DomainEvent
}

func NewStore() *Store {
	return &Store{
		visions:    make(map[string]garden.Vision),
		weights:    make(map[string]garden.Weights),
		executions: make(map[string]ports.PickExecutionRecord),
		events:     make(map[string][]garden.DomainEvent),
	}
}

func execKey(playerID, key string) string {
	return playerID + "::" + key
}

// Repo calls made inside TxManager.RunInTx run under the store's write lock
// already; the context marker tells them not to lock again. sync.RWMutex is
// not reentrant.
type txKeyType struct{}

var txKey = txKeyType{}

func withTx(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey, true)
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey).(bool)
	return v
}

func (s *Store) rlock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) SeedVision(v garden.Vision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visions[v.PlayerID] = v
}
