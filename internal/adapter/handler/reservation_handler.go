package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/srgjo27/raffle_ticket/internal/core/services"
)

type ReservationHandler struct {
	reservations *services.ReservationService
	payments     *services.PaymentService
}

func NewReservationHandler(reservations *services.ReservationService, payments *services.PaymentService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations, payments: payments}
}

func (h *ReservationHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req services.ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "INVALID_INPUT", Error: "invalid json body"})
		return
	}
	req.BuyerID = BuyerID(r.Context())

	resp, err := h.reservations.Reserve(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	view, err := h.reservations.GetReservation(r.Context(), chi.URLParam(r, "id"), BuyerID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	views, err := h.reservations.ListMyReservations(r.Context(), BuyerID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

// BindPayment returns the reservation's payment id and amount; reloading the checkout yields the same pair.
func (h *ReservationHandler) BindPayment(w http.ResponseWriter, r *http.Request) {
	binding, err := h.payments.BindPayment(r.Context(), chi.URLParam(r, "id"), BuyerID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, binding)
}
