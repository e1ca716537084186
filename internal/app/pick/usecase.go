package pick

import (
	"context"
	"errors"
	"strings"
	"time"

	"lotusadvisor/internal/app/ports"
	"lotusadvisor/internal/domain/garden"
)

var ErrInvalidRequest = errors.New("invalid pick request")

const (
	ResultOK                    = "OK"
	ResultFundamentalAlreadySet = "FUNDAMENTAL_ALREADY_SET"

	EventLotusPicked = "lotus_picked"
)

// UseCase commits a chosen lotus into the player's vision. The first-wins
// fundamental rule is enforced here, at the point of commit; the simulator
// itself only records what it is given.
type UseCase struct {
	TxManager   ports.TxManager
	VisionRepo  ports.VisionRepository
	PickRepo    ports.PickExecutionRepository
	EventRepo   ports.EventRepository
	Catalog     ports.CatalogProvider
	Metrics     ports.AdvisorMetrics
	Engine      garden.Engine
	Now         func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	req.IdempotencyKey = strings.TrimSpace(req.IdempotencyKey)
	req.LotusID = strings.TrimSpace(req.LotusID)
	if req.PlayerID == "" || req.IdempotencyKey == "" || req.LotusID == "" {
		return Response{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		exec, err := u.PickRepo.GetByIdempotencyKey(txCtx, req.PlayerID, req.IdempotencyKey)
		if err == nil && exec != nil {
			out = Response{
				UpdatedVision: exec.Result.UpdatedVision,
				Reasons:       exec.Result.Reasons,
				ResultCode:    exec.Result.ResultCode,
			}
			return nil
		}
		if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return err
		}

		lotus, err := u.Catalog.ByID(txCtx, req.LotusID)
		if err != nil {
			return err
		}

		expectedVersion := int64(0)
		vision, err := u.VisionRepo.GetByPlayerID(txCtx, req.PlayerID)
		if errors.Is(err, ports.ErrNotFound) {
			vision = garden.NewVision(req.PlayerID)
		} else if err != nil {
			return err
		} else {
			expectedVersion = vision.Version
		}

		now := nowFn()
		if lotus.Fundamental && vision.Fundamental != nil {
			out = Response{
				UpdatedVision: vision,
				Reasons:       []garden.Reason{},
				ResultCode:    ResultFundamentalAlreadySet,
			}
			return u.recordExecution(txCtx, req, out, now)
		}

		next := u.Engine.Simulate(vision, lotus.Effect)
		if lotus.Fundamental {
			attached, err := next.WithFundamental(lotus)
			if err != nil {
				return err
			}
			next = attached
		}
		next.Version = expectedVersion + 1
		next.UpdatedAt = now

		if err := u.VisionRepo.SaveWithVersion(txCtx, next, expectedVersion); err != nil {
			return err
		}

		reasons := garden.Explain(vision, lotus, next, "")
		event := garden.DomainEvent{
			Type:       EventLotusPicked,
			OccurredAt: now,
			Payload: map[string]any{
				"state_before": vision,
				"decision": map[string]any{
					"lotus_id":    lotus.ID,
					"fundamental": lotus.Fundamental,
					"reasons":     reasons,
				},
				"state_after": next,
			},
		}
		if err := u.EventRepo.Append(txCtx, req.PlayerID, []garden.DomainEvent{event}); err != nil {
			return err
		}

		out = Response{
			UpdatedVision: next,
			Reasons:       reasons,
			Events:        []garden.DomainEvent{event},
			ResultCode:    ResultOK,
		}
		return u.recordExecution(txCtx, req, out, now)
	})
	if err != nil {
		u.recordError(err)
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordPick(out.ResultCode)
	}
	return out, nil
}

func (u UseCase) recordExecution(ctx context.Context, req Request, out Response, at time.Time) error {
	return u.PickRepo.SaveExecution(ctx, ports.PickExecutionRecord{
		PlayerID:       req.PlayerID,
		IdempotencyKey: req.IdempotencyKey,
		LotusID:        req.LotusID,
		Result: ports.PickResult{
			UpdatedVision: out.UpdatedVision,
			Reasons:       out.Reasons,
			ResultCode:    out.ResultCode,
		},
		AppliedAt: at,
	})
}

func (u UseCase) recordError(err error) {
	if u.Metrics == nil {
		return
	}
	if errors.Is(err, ports.ErrConflict) {
		u.Metrics.RecordConflict()
		return
	}
	u.Metrics.RecordFailure()
}
