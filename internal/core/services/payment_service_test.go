package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/raffle_ticket/internal/core/domain"
	"github.com/srgjo27/raffle_ticket/internal/core/ports/mocks"
	"github.com/srgjo27/raffle_ticket/internal/core/services"
)

func liveReservation(buyerID uuid.UUID) *domain.Reservation {
	return &domain.Reservation{
		ID:         uuid.New(),
		RaffleID:   uuid.New(),
		BuyerID:    buyerID,
		Quantity:   2,
		TotalPrice: decimal.NewFromInt(20),
		Status:     domain.StatusReserved,
		ExpiresAt:  fixedNow.Add(10 * time.Minute),
	}
}

func newPaymentService(t *testing.T, m repoMocks, minter *mocks.PaymentIDMinter, opts ...services.Option) *services.PaymentService {
	t.Helper()
	opts = append(opts, services.WithClock(func() time.Time { return fixedNow }))
	sweeper := services.NewExpirationSweeper(m.reservations, m.tickets, opts...)
	return services.NewPaymentService(m.reservations, sweeper, minter, opts...)
}

func TestBindPayment_MintsOnce(t *testing.T) {
	m := newRepoMocks(t)
	minter := mocks.NewPaymentIDMinter(t)
	publisher := mocks.NewEventPublisher(t)
	service := newPaymentService(t, m, minter, services.WithPublisher(publisher))

	ctx := context.Background()
	buyerID := uuid.New()
	res := liveReservation(buyerID)
	bound := *res
	bound.PaymentID = func(s string) *string { return &s }("RF3F8XK2M0QZ4")

	m.reservations.On("GetByIDForBuyer", ctx, res.ID, buyerID).Return(res, nil)
	m.expectSweep(ctx, res.RaffleID)
	m.reservations.On("GetByID", ctx, res.ID).Return(res, nil).Once()
	minter.On("Mint").Return("RF3F8XK2M0QZ4").Once()
	m.reservations.On("BindPaymentID", ctx, res.ID, "RF3F8XK2M0QZ4").Return(true, nil).Once()
	publisher.On("Publish", ctx, mock.MatchedBy(func(e domain.ReservationEvent) bool {
		return e.Type == domain.EventPaymentBound && e.PaymentID == "RF3F8XK2M0QZ4"
	})).Return(nil).Once()

	first, err := service.BindPayment(ctx, res.ID.String(), buyerID.String())
	require.NoError(t, err)
	assert.Equal(t, "RF3F8XK2M0QZ4", first.PaymentID)
	assert.True(t, decimal.NewFromInt(20).Equal(first.Amount))

	// The reload sees the bound id and must not mint again.
	m.reservations.On("GetByID", ctx, res.ID).Return(&bound, nil).Once()

	second, err := service.BindPayment(ctx, res.ID.String(), buyerID.String())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBindPayment_LosesRaceToConcurrentBind(t *testing.T) {
	m := newRepoMocks(t)
	minter := mocks.NewPaymentIDMinter(t)
	service := newPaymentService(t, m, minter)

	ctx := context.Background()
	buyerID := uuid.New()
	res := liveReservation(buyerID)
	winner := *res
	winner.PaymentID = func(s string) *string { return &s }("RFWINNER")

	m.reservations.On("GetByIDForBuyer", ctx, res.ID, buyerID).Return(res, nil)
	m.expectSweep(ctx, res.RaffleID)
	m.reservations.On("GetByID", ctx, res.ID).Return(res, nil).Once()
	minter.On("Mint").Return("RFLOSER").Once()
	m.reservations.On("BindPaymentID", ctx, res.ID, "RFLOSER").Return(false, nil).Once()
	m.reservations.On("GetByID", ctx, res.ID).Return(&winner, nil).Once()

	binding, err := service.BindPayment(ctx, res.ID.String(), buyerID.String())
	require.NoError(t, err)
	assert.Equal(t, "RFWINNER", binding.PaymentID)
}

func TestBindPayment_Fail_Expired(t *testing.T) {
	m := newRepoMocks(t)
	minter := mocks.NewPaymentIDMinter(t)
	service := newPaymentService(t, m, minter)

	ctx := context.Background()
	buyerID := uuid.New()
	res := liveReservation(buyerID)
	expired := *res
	expired.Status = domain.StatusExpired

	m.reservations.On("GetByIDForBuyer", ctx, res.ID, buyerID).Return(res, nil)
	m.expectSweep(ctx, res.RaffleID)
	m.reservations.On("GetByID", ctx, res.ID).Return(&expired, nil)

	_, err := service.BindPayment(ctx, res.ID.String(), buyerID.String())
	assert.ErrorIs(t, err, domain.ErrExpired)
}

func TestBindPayment_Fail_OtherBuyer(t *testing.T) {
	m := newRepoMocks(t)
	minter := mocks.NewPaymentIDMinter(t)
	service := newPaymentService(t, m, minter)

	ctx := context.Background()
	reservationID, stranger := uuid.New(), uuid.New()

	m.reservations.On("GetByIDForBuyer", ctx, reservationID, stranger).Return(nil, domain.ErrNotFound)

	_, err := service.BindPayment(ctx, reservationID.String(), stranger.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfirmPayment(t *testing.T) {
	m := newRepoMocks(t)
	minter := mocks.NewPaymentIDMinter(t)
	service := newPaymentService(t, m, minter)

	ctx := context.Background()
	paid := liveReservation(uuid.New())
	paid.Status = domain.StatusPaid

	m.reservations.On("MarkPaid", ctx, "RF1", fixedNow).Return(paid, nil)
	m.reservations.On("MarkPaid", ctx, "RF-EXPIRED", fixedNow).Return(nil, domain.ErrNotFound)

	res, err := service.ConfirmPayment(ctx, "RF1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, res.Status)

	_, err = service.ConfirmPayment(ctx, "RF-EXPIRED")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.ConfirmPayment(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
