package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(raffles *RaffleHandler, reservations *ReservationHandler, jwtSecret []byte) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/raffles", raffles.ListRaffles)
	r.Get("/raffles/{id}", raffles.GetRaffle)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(jwtSecret))
		r.Post("/tickets/reserve", reservations.Reserve)
		r.Get("/tickets/reservations/{id}", reservations.GetReservation)
		r.Post("/tickets/reservations/{id}/payment", reservations.BindPayment)
		r.Get("/me/reservations", reservations.ListMine)
	})

	return r
}
