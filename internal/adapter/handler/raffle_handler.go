package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/srgjo27/raffle_ticket/internal/core/services"
)

type RaffleHandler struct {
	svc *services.RaffleService
}

func NewRaffleHandler(svc *services.RaffleService) *RaffleHandler {
	return &RaffleHandler{svc: svc}
}

func (h *RaffleHandler) ListRaffles(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Code: "INVALID_INPUT", Error: "limit must be a number"})
			return
		}
		limit = n
	}

	raffles, err := h.svc.ListRaffles(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, raffles)
}

func (h *RaffleHandler) GetRaffle(w http.ResponseWriter, r *http.Request) {
	raffle, err := h.svc.GetRaffle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, raffle)
}
