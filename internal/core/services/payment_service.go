package services

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/srgjo27/raffle_ticket/internal/core/domain"
	"github.com/srgjo27/raffle_ticket/internal/core/ports"
	"github.com/srgjo27/raffle_ticket/internal/platform/metrics"
)

type PaymentBinding struct {
	ReservationID string          `json:"reservation_id"`
	PaymentID     string          `json:"payment_id"`
	Amount        decimal.Decimal `json:"amount"`
}

type PaymentService struct {
	reservations ports.ReservationRepository
	sweeper      *ExpirationSweeper
	minter       ports.PaymentIDMinter
	settings
}

func NewPaymentService(reservations ports.ReservationRepository, sweeper *ExpirationSweeper, minter ports.PaymentIDMinter, opts ...Option) *PaymentService {
	return &PaymentService{
		reservations: reservations,
		sweeper:      sweeper,
		minter:       minter,
		settings:     newSettings(opts),
	}
}

// BindPayment returns the payment id of a reservation, minting one on first request.
// Repeated calls return the same id and amount for as long as the reservation is not expired.
func (s *PaymentService) BindPayment(ctx context.Context, reservationID, buyerID string) (*PaymentBinding, error) {
	reservation, err := loadFreshReservation(ctx, s.reservations, s.sweeper, reservationID, buyerID)
	if err != nil {
		return nil, err
	}

	if reservation.Status == domain.StatusExpired {
		return nil, domain.ErrExpired
	}

	if reservation.PaymentID != nil {
		return bindingOf(reservation), nil
	}

	paymentID := s.minter.Mint()
	bound, err := s.reservations.BindPaymentID(ctx, reservation.ID, paymentID)
	if err != nil {
		return nil, fmt.Errorf("bind payment id: %w", err)
	}

	if !bound {
		// Another request bound first, or the hold expired in between.
		reservation, err = s.reservations.GetByID(ctx, reservation.ID)
		if err != nil {
			return nil, err
		}

		if reservation.Status == domain.StatusExpired {
			return nil, domain.ErrExpired
		}

		if reservation.PaymentID == nil {
			return nil, domain.ErrConflict
		}

		return bindingOf(reservation), nil
	}

	reservation.PaymentID = &paymentID
	metrics.PaymentsBound.Inc()
	s.publish(ctx, domain.ReservationEvent{
		Type:          domain.EventPaymentBound,
		RaffleID:      reservation.RaffleID,
		ReservationID: reservation.ID,
		BuyerID:       reservation.BuyerID,
		Amount:        &reservation.TotalPrice,
		PaymentID:     paymentID,
	})

	return bindingOf(reservation), nil
}

// ConfirmPayment marks the reservation holding paymentID as paid. Holds that already expired stay expired
// and are reported as domain.ErrNotFound.
func (s *PaymentService) ConfirmPayment(ctx context.Context, paymentID string) (*domain.Reservation, error) {
	if paymentID == "" {
		return nil, domain.InvalidInput("missing payment id")
	}

	reservation, err := s.reservations.MarkPaid(ctx, paymentID, s.now())
	if err != nil {
		return nil, err
	}

	metrics.PaymentsConfirmed.Inc()
	log.Printf("Reservation %s paid with payment id %s.", reservation.ID, paymentID)
	s.publish(ctx, domain.ReservationEvent{
		Type:          domain.EventReservationPaid,
		RaffleID:      reservation.RaffleID,
		ReservationID: reservation.ID,
		BuyerID:       reservation.BuyerID,
		Amount:        &reservation.TotalPrice,
		PaymentID:     paymentID,
	})

	return reservation, nil
}

func bindingOf(r *domain.Reservation) *PaymentBinding {
	return &PaymentBinding{
		ReservationID: r.ID.String(),
		PaymentID:     *r.PaymentID,
		Amount:        r.TotalPrice,
	}
}
