package memory

import (
	"context"

	"lotusadvisor/internal/app/ports"
	"lotusadvisor/internal/domain/garden"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(ctx context.Context, playerID string, events []garden.DomainEvent) error {
	defer r.store.lock(ctx)()
	r.store.events[playerID] = append(r.store.events[playerID], events...)
	return nil
}

func (r EventRepo) ListByPlayerID(ctx context.Context, playerID string, limit int) ([]garden.DomainEvent, error) {
	defer r.store.rlock(ctx)()
	events, ok := r.store.events[playerID]
	if !ok || len(events) == 0 {
		return nil, ports.ErrNotFound
	}
	// newest first, mirroring the gorm adapter's ordering
	out := make([]garden.DomainEvent, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		out = append(out, events[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
