package game

import (
	"errors"
	"net/http"

	dto "minigames_backend/internal/api/dto/game"
	"minigames_backend/internal/converter"
	"minigames_backend/internal/engine"
	"minigames_backend/internal/middleware"
	"minigames_backend/internal/service"
	gamesrv "minigames_backend/internal/service/game"
	"minigames_backend/pkg/req"
	"minigames_backend/pkg/resp"

	"github.com/go-chi/chi/v5"
)

type HandlerDeps struct {
	Serv service.GameService
}

type Handler struct {
	serv service.GameService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// PlaceBet POST /games/{game}/bet
func (h *Handler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.BetRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if payload.OverrideProbability != nil && !middleware.IsDev(r.Context()) {
		resp.WriteError(w, http.StatusForbidden, "odds override not allowed")
		return
	}

	result, err := h.serv.PlaceBet(
		r.Context(),
		chi.URLParam(r, "game"),
		converter.ToBetRequest(payload),
		payload.OverrideProbability,
	)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBetResponse(*result))
}

// Session GET /games/{game}/session
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	snap, err := h.serv.Snapshot(r.Context(), chi.URLParam(r, "game"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSessionResponse(*snap))
}

// Reset POST /games/{game}/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	snap, err := h.serv.Reset(r.Context(), chi.URLParam(r, "game"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSessionResponse(*snap))
}

// Stats GET /games/{game}/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.serv.Stats(chi.URLParam(r, "game"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(*stats))
}

// List GET /games
func (h *Handler) List(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToGameInfos(h.serv.Games()))
}

// writeServiceError переводит ошибку сервиса в HTTP статус.
// Ставка, не записанная в кошелёк, отдаётся как 500
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidStake),
		errors.Is(err, engine.ErrInvalidSelection),
		errors.Is(err, engine.ErrInvalidOverride):
		resp.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrConcurrentBet):
		resp.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, gamesrv.ErrUnknownGame):
		resp.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, gamesrv.ErrNoUser):
		resp.WriteError(w, http.StatusUnauthorized, err.Error())
	default:
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
