package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReserveRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "raffle_reserve_requests_total",
		Help: "Reservation requests by outcome",
	}, []string{"outcome"})

	ReserveRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "raffle_reserve_retries_total",
		Help: "Reservation attempts lost to a concurrent number claim",
	})

	TicketsReserved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "raffle_tickets_reserved_total",
		Help: "Ticket numbers handed out by the allocator",
	})

	HoldsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "raffle_holds_expired_total",
		Help: "Ticket holds moved to expired by the sweeper",
	})

	PaymentsBound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "raffle_payment_ids_minted_total",
		Help: "Payment ids minted and bound to a reservation",
	})

	PaymentsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "raffle_payments_confirmed_total",
		Help: "Reservations moved to paid",
	})
)
