package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/srgjo27/raffle_ticket/internal/core/domain"
)

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
	Limit *int   `json:"limit,omitempty"`
	Held  *int   `json:"held,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, resp := classify(err)
	if status == http.StatusInternalServerError {
		log.Printf("Request failed: %v", err)
	}

	writeJSON(w, status, resp)
}

func classify(err error) (int, errorResponse) {
	var quotaErr *domain.QuotaError

	switch {
	case errors.As(err, &quotaErr):
		return http.StatusBadRequest, errorResponse{
			Code:  "QUOTA_EXCEEDED",
			Error: quotaErr.Error(),
			Limit: &quotaErr.Limit,
			Held:  &quotaErr.Held,
		}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorResponse{Code: "NOT_FOUND", Error: domain.ErrNotFound.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, errorResponse{Code: "INVALID_INPUT", Error: err.Error()}
	case errors.Is(err, domain.ErrInsufficientInventory):
		return http.StatusBadRequest, errorResponse{Code: "INSUFFICIENT_INVENTORY", Error: err.Error()}
	case errors.Is(err, domain.ErrExpired):
		return http.StatusGone, errorResponse{Code: "EXPIRED", Error: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, errorResponse{Code: "CONFLICT", Error: err.Error()}
	default:
		return http.StatusInternalServerError, errorResponse{Code: "INTERNAL", Error: "internal server error"}
	}
}
