package history

import (
	"context"
	"errors"
	"strings"

	"lotusadvisor/internal/app/ports"
	"lotusadvisor/internal/domain/garden"
)

var ErrInvalidRequest = errors.New("invalid history request")

type UseCase struct {
	Events ports.EventRepository
}

type Request struct {
	PlayerID     string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

type Response struct {
	Events []garden.DomainEvent `json:"events"`
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.PlayerID) == "" {
		return Response{}, ErrInvalidRequest
	}
	events, err := u.Events.ListByPlayerID(ctx, req.PlayerID, req.Limit)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return Response{Events: []garden.DomainEvent{}}, nil
		}
		return Response{}, err
	}
	return Response{Events: filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)}, nil
}

func filterByTimeWindow(events []garden.DomainEvent, from, to int64) []garden.DomainEvent {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]garden.DomainEvent, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}
