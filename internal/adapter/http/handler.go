package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"lotusadvisor/internal/app/advise"
	"lotusadvisor/internal/app/catalog"
	"lotusadvisor/internal/app/history"
	"lotusadvisor/internal/app/nightmare"
	"lotusadvisor/internal/app/pick"
	"lotusadvisor/internal/app/status"
	"lotusadvisor/internal/app/weights"
	"lotusadvisor/internal/domain/garden"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const playerIDHeader = "X-Player-ID"

var ErrMissingPlayerHeader = errors.New("missing player header")

type Handler struct {
	AdviseUC    advise.UseCase
	PickUC      pick.UseCase
	NightmareUC nightmare.UseCase
	StatusUC    status.UseCase
	WeightsUC   weights.UseCase
	CatalogUC   catalog.UseCase
	HistoryUC   history.UseCase
	KPI         kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api/advisor")
	api.POST("/advise", h.advise)
	api.POST("/pick", h.pick)
	api.POST("/nightmare", h.nightmare)
	api.GET("/status", h.status)
	api.GET("/weights", h.getWeights)
	api.PUT("/weights", h.putWeights)
	api.GET("/catalog", h.catalog)
	api.GET("/history", h.history)

	s.GET("/ops/kpi", h.kpi)
}

type adviseRequest struct {
	LotusIDs   []string `json:"lotus_ids,omitempty"`
	TopN       int      `json:"top_n,omitempty"`
	Stochastic bool     `json:"stochastic,omitempty"`
	Trials     int      `json:"trials,omitempty"`
	Lookahead  bool     `json:"lookahead,omitempty"`
	Goal       string   `json:"goal,omitempty"`
}

type pickRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	LotusID        string `json:"lotus_id"`
}

func (h Handler) advise(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body adviseRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.AdviseUC.Execute(c, advise.Request{
		PlayerID:   playerID,
		LotusIDs:   body.LotusIDs,
		TopN:       body.TopN,
		Stochastic: body.Stochastic,
		Trials:     body.Trials,
		Lookahead:  body.Lookahead,
		Goal:       body.Goal,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) pick(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body pickRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.PickUC.Execute(c, pick.Request{
		PlayerID:       playerID,
		IdempotencyKey: body.IdempotencyKey,
		LotusID:        body.LotusID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) nightmare(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.NightmareUC.Execute(c, nightmare.Request{PlayerID: playerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.StatusUC.Execute(c, status.Request{PlayerID: playerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) getWeights(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.WeightsUC.Get(c, weights.GetRequest{PlayerID: playerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) putWeights(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var body garden.Weights
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	resp, err := h.WeightsUC.Update(c, weights.UpdateRequest{PlayerID: playerID, Weights: body})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) catalog(c context.Context, ctx *app.RequestContext) {
	resp, err := h.CatalogUC.Execute(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) history(c context.Context, ctx *app.RequestContext) {
	playerID, err := requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)

	resp, err := h.HistoryUC.Execute(c, history.Request{
		PlayerID:     playerID,
		Limit:        limit,
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func requirePlayer(ctx *app.RequestContext) (string, error) {
	playerID := strings.TrimSpace(string(ctx.Request.Header.Peek(playerIDHeader)))
	if playerID == "" {
		return "", ErrMissingPlayerHeader
	}
	return playerID, nil
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}
