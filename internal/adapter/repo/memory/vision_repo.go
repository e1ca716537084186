package memory

import (
	"context"

	"lotusadvisor/internal/app/ports"
	"lotusadvisor/internal/domain/garden"
)

type VisionRepo struct {
	store *Store
}

func NewVisionRepo(store *Store) VisionRepo {
	return VisionRepo{store: store}
}

func (r VisionRepo) GetByPlayerID(ctx context.Context, playerID string) (garden.Vision, error) {
	defer r.store.rlock(ctx)()
	v, ok := r.store.visions[playerID]
	if !ok {
		return garden.Vision{}, ports.ErrNotFound
	}
	return v.Clone(), nil
}

func (r VisionRepo) SaveWithVersion(ctx context.Context, vision garden.Vision, expectedVersion int64) error {
	defer r.store.lock(ctx)()
	current, ok := r.store.visions[vision.PlayerID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.visions[vision.PlayerID] = vision.Clone()
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.visions[vision.PlayerID] = vision.Clone()
	return nil
}
