package memory

import (
	"context"

	"lotusadvisor/internal/app/ports"
)

type PickExecutionRepo struct {
	store *Store
}

func NewPickExecutionRepo(store *Store) PickExecutionRepo {
	return PickExecutionRepo{store: store}
}

func (r PickExecutionRepo) GetByIdempotencyKey(ctx context.Context, playerID, key string) (*ports.PickExecutionRecord, error) {
	defer r.store.rlock(ctx)()
	rec, ok := r.store.executions[execKey(playerID, key)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &rec, nil
}

func (r PickExecutionRepo) SaveExecution(ctx context.Context, execution ports.PickExecutionRecord) error {
	defer r.store.lock(ctx)()
	r.store.executions[execKey(execution.PlayerID, execution.IdempotencyKey)] = execution
	return nil
}
