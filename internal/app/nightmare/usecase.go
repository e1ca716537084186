package nightmare

import (
	"context"
	"errors"
	"strings"
	"time"

	"lotusadvisor/internal/app/ports"
	"lotusadvisor/internal/domain/garden"
)

var ErrInvalidRequest = errors.New("invalid nightmare request")

const EventNightmareEntered = "nightmare_entered"

// UseCase runs the entering-phase transition: the attached fundamental
// re-applies, stochastically, against the live random source.
type UseCase struct {
	TxManager  ports.TxManager
	VisionRepo ports.VisionRepository
	EventRepo  ports.EventRepository
	Engine     garden.Engine
	Now        func() time.Time
}

type Request struct {
	PlayerID string
}

type Response struct {
	UpdatedVision garden.Vision `json:"updated_vision"`
	Applied       bool          `json:"applied"`
	FundamentalID string        `json:"fundamental_id,omitempty"`
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	if req.PlayerID == "" {
		return Response{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		vision, err := u.VisionRepo.GetByPlayerID(txCtx, req.PlayerID)
		if err != nil {
			return err
		}

		if vision.Fundamental == nil {
			out = Response{UpdatedVision: vision, Applied: false}
			return nil
		}

		now := nowFn()
		next := u.Engine.ApplyFundamental(vision, true)
		next.Version = vision.Version + 1
		next.UpdatedAt = now

		if err := u.VisionRepo.SaveWithVersion(txCtx, next, vision.Version); err != nil {
			return err
		}

		event := garden.DomainEvent{
			Type:       EventNightmareEntered,
			OccurredAt: now,
			Payload: map[string]any{
				"state_before":   vision,
				"fundamental_id": vision.Fundamental.ID,
				"state_after":    next,
			},
		}
		if err := u.EventRepo.Append(txCtx, req.PlayerID, []garden.DomainEvent{event}); err != nil {
			return err
		}

		out = Response{
			UpdatedVision: next,
			Applied:       true,
			FundamentalID: vision.Fundamental.ID,
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	return out, nil
}
