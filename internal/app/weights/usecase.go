package weights

import (
	"context"
	"errors"
	"strings"

	"lotusadvisor/internal/app/ports"
	"lotusadvisor/internal/domain/garden"
)

var (
	ErrInvalidRequest = errors.New("invalid weights request")
	ErrInvalidWeights = errors.New("grade weights must be non-negative and non-decreasing")
)

type UseCase struct {
	WeightsRepo ports.WeightsRepository
}

type GetRequest struct {
	PlayerID string
}

type UpdateRequest struct {
	PlayerID string
	Weights  garden.Weights
}

type Response struct {
	PlayerID string         `json:"player_id"`
	Weights  garden.Weights `json:"weights"`
}

// Get returns the player's weights, falling back to the defaults for a
// player who never customized them.
func (u UseCase) Get(ctx context.Context, req GetRequest) (Response, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	if req.PlayerID == "" {
		return Response{}, ErrInvalidRequest
	}
	w, err := u.WeightsRepo.GetByPlayerID(ctx, req.PlayerID)
	if errors.Is(err, ports.ErrNotFound) {
		w = garden.DefaultWeights()
	} else if err != nil {
		return Response{}, err
	}
	return Response{PlayerID: req.PlayerID, Weights: w}, nil
}

// Update validates and stores new weights; they affect the next advise call
// immediately.
func (u UseCase) Update(ctx context.Context, req UpdateRequest) (Response, error) {
	req.PlayerID = strings.TrimSpace(req.PlayerID)
	if req.PlayerID == "" {
		return Response{}, ErrInvalidRequest
	}
	if err := validate(req.Weights); err != nil {
		return Response{}, err
	}
	if err := u.WeightsRepo.Save(ctx, req.PlayerID, req.Weights); err != nil {
		return Response{}, err
	}
	return Response{PlayerID: req.PlayerID, Weights: req.Weights}, nil
}

func validate(w garden.Weights) error {
	prev := 0.0
	for q := garden.QualityWhite; q <= garden.QualityRainbow; q++ {
		m, ok := w.Grade[q]
		if !ok || m < 0 || m < prev {
			return ErrInvalidWeights
		}
		prev = m
	}
	for _, m := range w.Type {
		if m < 0 {
			return ErrInvalidWeights
		}
	}
	return nil
}
