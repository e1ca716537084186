package advise

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lotusadvisor/internal/app/ports"
	"lotusadvisor/internal/domain/garden"
)

var ErrInvalidRequest = errors.New("invalid advise request")

type UseCase struct {
	VisionRepo  ports.VisionRepository
	WeightsRepo ports.WeightsRepository
	Catalog     ports.CatalogProvider
	Metrics     ports.AdvisorMetrics
	Engine      garden.Engine
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

	candidates, err := u.resolveCandidates(ctx, req.LotusIDs)
	if err != nil {
		return Response{}, err
	}

	opts := garden.RankOptions{
		TopN:       req.TopN,
		Stochastic: req.Stochastic,
		Trials:     req.Trials,
		Lookahead:  req.Lookahead,
		Goal:       garden.BubbleType(req.Goal),
	}
	ranked := u.Engine.RankWithLookahead(vision, candidates, weights, opts)

	recs := make([]Recommendation, 0, len(ranked))
	for _, rec := range ranked {
		recs = append(recs, Recommendation{
			LotusID:        rec.Lotus.ID,
			Name:           rec.Lotus.Name,
			Description:    rec.Lotus.Description,
			Risk:           rec.Lotus.Risk,
			Fundamental:    rec.Lotus.Fundamental,
			Score:          rec.Score,
			FutureValue:    rec.FutureValue,
			LookaheadScore: rec.LookaheadScore,
			Result:         rec.Result,
			Reasons:        garden.Explain(vision, rec.Lotus, rec.Result, opts.Goal),
		})
	}
	if u.Metrics != nil {
		u.Metrics.RecordAdvice(len(candidates))
	}
	return Response{
		PlayerID:        req.PlayerID,
		Stochastic:      req.Stochastic,
		Lookahead:       req.Lookahead,
		Goal:            req.Goal,
		Recommendations: recs,
	}, nil
}

// resolveCandidates maps requested lotus IDs onto catalog entries, or the
// whole catalog when none are named.
func (u UseCase) resolveCandidates(ctx context.Context, ids []string) ([]garden.Lotus, error) {
	if len(ids) == 0 {
		return u.Catalog.All(ctx)
	}
	out := make([]garden.Lotus, 0, len(ids))
	for _, id := range ids {
		l, err := u.Catalog.ByID(ctx, strings.TrimSpace(id))
		if err != nil {
			return nil, fmt.Errorf("resolve lotus %q: %w", id, err)
		}
		out = append(out, l)
	}
	return out, nil
}
