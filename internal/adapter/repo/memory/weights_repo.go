package memory

import (
	"context"

	"lotusadvisor/internal/app/ports"
	"lotusadvisor/internal/domain/garden"
)

type WeightsRepo struct {
	store *Store
}

func NewWeightsRepo(store *Store) WeightsRepo {
	return WeightsRepo{store: store}
}

func (r WeightsRepo) GetByPlayerID(ctx context.Context, playerID string) (garden.Weights, error) {
	defer r.store.rlock(ctx)()
	w, ok := r.store.weights[playerID]
	if !ok {
		return garden.Weights{}, ports.ErrNotFound
	}
	return w, nil
}

func (r WeightsRepo) Save(ctx context.Context, playerID string, weights garden.Weights) error {
	defer r.store.lock(ctx)()
	r.store.weights[playerID] = weights
	return nil
}
