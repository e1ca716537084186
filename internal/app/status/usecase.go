package status

import (
	"context"
	"errors"
	"strings"

	"lotusadvisor/internal/app/ports"
	"lotusadvisor/internal/domain/garden"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	VisionRepo  ports.VisionRepository
	WeightsRepo ports.WeightsRepository
}

type Request struct {
	PlayerID string
}

type Response struct {
	Vision        garden.Vision `json:"vision"`
	Value         float64       `json:"value"`
	FundamentalID string        `json:"fundamental_id,omitempty"`
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	if req.PlayerID == "" {
		return Response{}, ErrInvalidRequest
	}
	vision, err := u.VisionRepo.GetByPlayerID(ctx, req.PlayerID)
	if errors.Is(err, ports.ErrNotFound) {
		vision = garden.NewVision(req.PlayerID)
	} else if err != nil {
		return Response{}, err
	}
	weights, err := u.WeightsRepo.GetByPlayerID(ctx, req.PlayerID)
	if errors.Is(err, ports.ErrNotFound) {
		weights = garden.DefaultWeights()
	} else if err != nil {
		return Response{}, err
	}
	out := Response{
		Vision: vision,
		Value:  garden.Value(vision, weights),
	}
	if vision.Fundamental != nil {
		out.FundamentalID = vision.Fundamental.ID
	}
	return out, nil
}
