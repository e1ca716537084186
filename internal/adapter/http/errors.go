package httpadapter

import (
	"errors"

	"lotusadvisor/internal/app/advise"
	"lotusadvisor/internal/app/history"
	"lotusadvisor/internal/app/nightmare"
	"lotusadvisor/internal/app/pick"
	"lotusadvisor/internal/app/ports"
	"lotusadvisor/internal/app/status"
	"lotusadvisor/internal/app/weights"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeErrorBody(ctx *app.RequestContext, httpStatus int, code, message string) {
	ctx.JSON(httpStatus, errorBody{Code: code, Message: message})
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingPlayerHeader):
		writeErrorBody(ctx, consts.StatusUnauthorized, "missing_player", "X-Player-ID header required")
	case errors.Is(err, advise.ErrInvalidRequest),
		errors.Is(err, pick.ErrInvalidRequest),
		errors.Is(err, nightmare.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, history.ErrInvalidRequest),
		errors.Is(err, weights.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, weights.ErrInvalidWeights):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_weights", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal", "internal error")
	}
}
