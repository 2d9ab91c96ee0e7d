package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/raffle_ticket/internal/core/domain"
	"github.com/srgjo27/raffle_ticket/internal/core/ports/mocks"
	"github.com/srgjo27/raffle_ticket/internal/core/services"
)

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type repoMocks struct {
	raffles      *mocks.RaffleRepository
	reservations *mocks.ReservationRepository
	tickets      *mocks.TicketRepository
}

func newRepoMocks(t *testing.T) repoMocks {
	return repoMocks{
		raffles:      mocks.NewRaffleRepository(t),
		reservations: mocks.NewReservationRepository(t),
		tickets:      mocks.NewTicketRepository(t),
	}
}

func (m repoMocks) expectSweep(ctx context.Context, raffleID uuid.UUID) {
	scope := uuid.NullUUID{UUID: raffleID, Valid: true}
	m.tickets.On("ExpireStale", ctx, scope, fixedNow).Return(int64(0), nil)
	m.reservations.On("ExpireStale", ctx, scope, fixedNow).Return([]uuid.UUID(nil), nil)
}

func testRaffle() *domain.Raffle {
	return &domain.Raffle{
		ID:                uuid.New(),
		Title:             "Rifa da Sorte",
		TotalTickets:      10,
		MaxTicketsPerUser: 5,
		TicketPrice:       decimal.NewFromInt(10),
		HoldMinutes:       15,
	}
}

func ticketNumbers(numbers ...int) interface{} {
	return mock.MatchedBy(func(tickets []domain.Ticket) bool {
		if len(tickets) != len(numbers) {
			return false
		}
		for i, tk := range tickets {
			if tk.NumberSelected != numbers[i] || tk.Status != domain.StatusReserved {
				return false
			}
		}
		return true
	})
}

func TestReserve_Success(t *testing.T) {
	m := newRepoMocks(t)
	publisher := mocks.NewEventPublisher(t)
	db, mockRedis := redismock.NewClientMock()

	opts := []services.Option{services.WithClock(func() time.Time { return fixedNow })}
	sweeper := services.NewExpirationSweeper(m.reservations, m.tickets, opts...)
	service := services.NewReservationService(m.raffles, m.reservations, m.tickets, sweeper,
		append(opts, services.WithCache(db, time.Minute), services.WithPublisher(publisher))...)

	ctx := context.Background()
	raffle := testRaffle()
	buyerID := uuid.New()

	m.expectSweep(ctx, raffle.ID)
	m.raffles.On("GetByID", ctx, raffle.ID).Return(raffle, nil)
	m.tickets.On("CountLiveByBuyer", ctx, raffle.ID, buyerID).Return(0, nil)
	m.tickets.On("ListLiveNumbers", ctx, raffle.ID).Return([]int{}, nil)
	m.reservations.On("Create", ctx, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.Quantity == 3 &&
			r.Status == domain.StatusReserved &&
			r.TotalPrice.Equal(decimal.NewFromInt(30)) &&
			r.ExpiresAt.Equal(fixedNow.Add(15*time.Minute))
	})).Return(nil)
	m.tickets.On("CreateBatch", ctx, ticketNumbers(1, 2, 3)).Return(nil)
	publisher.On("Publish", ctx, mock.MatchedBy(func(e domain.ReservationEvent) bool {
		return e.Type == domain.EventReservationCreated && e.RaffleID == raffle.ID
	})).Return(nil)

	mockRedis.ExpectIncr(services.GenerationKey(raffle.ID)).SetVal(1)

	resp, err := service.Reserve(ctx, services.ReserveRequest{
		RaffleID: raffle.ID.String(),
		BuyerID:  buyerID.String(),
		Quantity: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, resp.TicketNumbers)
	assert.True(t, decimal.NewFromInt(30).Equal(resp.TotalPrice))
	assert.Equal(t, fixedNow.Add(15*time.Minute).Format(time.RFC3339), resp.ExpiresAt)
	_, err = uuid.Parse(resp.ReservationID)
	assert.NoError(t, err)

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestReserve_Fail_QuotaExceeded(t *testing.T) {
	m := newRepoMocks(t)
	clock := services.WithClock(func() time.Time { return fixedNow })
	sweeper := services.NewExpirationSweeper(m.reservations, m.tickets, clock)
	service := services.NewReservationService(m.raffles, m.reservations, m.tickets, sweeper, clock)

	ctx := context.Background()
	raffle := testRaffle()
	buyerID := uuid.New()

	m.expectSweep(ctx, raffle.ID)
	m.raffles.On("GetByID", ctx, raffle.ID).Return(raffle, nil)
	m.tickets.On("CountLiveByBuyer", ctx, raffle.ID, buyerID).Return(4, nil)
	m.tickets.On("ListLiveNumbers", ctx, raffle.ID).Return([]int{1, 2, 3, 4}, nil)

	resp, err := service.Reserve(ctx, services.ReserveRequest{
		RaffleID: raffle.ID.String(),
		BuyerID:  buyerID.String(),
		Quantity: 2,
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)

	var quotaErr *domain.QuotaError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, 5, quotaErr.Limit)
	assert.Equal(t, 4, quotaErr.Held)
}

func TestReserve_Fail_AboveRequestCap(t *testing.T) {
	m := newRepoMocks(t)
	clock := services.WithClock(func() time.Time { return fixedNow })
	sweeper := services.NewExpirationSweeper(m.reservations, m.tickets, clock)
	service := services.NewReservationService(m.raffles, m.reservations, m.tickets, sweeper, clock)

	ctx := context.Background()
	raffle := testRaffle()

	m.expectSweep(ctx, raffle.ID)
	m.raffles.On("GetByID", ctx, raffle.ID).Return(raffle, nil)

	_, err := service.Reserve(ctx, services.ReserveRequest{
		RaffleID: raffle.ID.String(),
		BuyerID:  uuid.NewString(),
		Quantity: 6,
	})

	var quotaErr *domain.QuotaError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, 5, quotaErr.Limit)
	assert.Zero(t, quotaErr.Held)
}

func TestReserve_Fail_RaffleNotFound(t *testing.T) {
	m := newRepoMocks(t)
	clock := services.WithClock(func() time.Time { return fixedNow })
	sweeper := services.NewExpirationSweeper(m.reservations, m.tickets, clock)
	service := services.NewReservationService(m.raffles, m.reservations, m.tickets, sweeper, clock)

	ctx := context.Background()
	raffleID := uuid.New()

	m.expectSweep(ctx, raffleID)
	m.raffles.On("GetByID", ctx, raffleID).Return(nil, domain.ErrNotFound)

	_, err := service.Reserve(ctx, services.ReserveRequest{
		RaffleID: raffleID.String(),
		BuyerID:  uuid.NewString(),
		Quantity: 1,
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReserve_Fail_InsufficientInventory(t *testing.T) {
	m := newRepoMocks(t)
	clock := services.WithClock(func() time.Time { return fixedNow })
	sweeper := services.NewExpirationSweeper(m.reservations, m.tickets, clock)
	service := services.NewReservationService(m.raffles, m.reservations, m.tickets, sweeper, clock)

	ctx := context.Background()
	raffle := testRaffle()
	buyerID := uuid.New()

	m.expectSweep(ctx, raffle.ID)
	m.raffles.On("GetByID", ctx, raffle.ID).Return(raffle, nil)
	m.tickets.On("CountLiveByBuyer", ctx, raffle.ID, buyerID).Return(0, nil)
	m.tickets.On("ListLiveNumbers", ctx, raffle.ID).Return([]int{1, 2, 3, 4, 5, 6, 7, 8, 9}, nil)

	_, err := service.Reserve(ctx, services.ReserveRequest{
		RaffleID: raffle.ID.String(),
		BuyerID:  buyerID.String(),
		Quantity: 2,
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
}

func TestReserve_Fail_InvalidInput(t *testing.T) {
	m := newRepoMocks(t)
	sweeper := services.NewExpirationSweeper(m.reservations, m.tickets)
	service := services.NewReservationService(m.raffles, m.reservations, m.tickets, sweeper)

	tests := []services.ReserveRequest{
		{RaffleID: "not-a-uuid", BuyerID: uuid.NewString(), Quantity: 1},
		{RaffleID: uuid.NewString(), BuyerID: "", Quantity: 1},
		{RaffleID: uuid.NewString(), BuyerID: uuid.NewString(), Quantity: 0},
		{RaffleID: uuid.NewString(), BuyerID: uuid.NewString(), Quantity: -3},
	}

	for _, req := range tests {
		_, err := service.Reserve(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestReserve_RetriesAfterLosingNumberRace(t *testing.T) {
	m := newRepoMocks(t)
	clock := services.WithClock(func() time.Time { return fixedNow })
	sweeper := services.NewExpirationSweeper(m.reservations, m.tickets, clock)
	service := services.NewReservationService(m.raffles, m.reservations, m.tickets, sweeper, clock)

	ctx := context.Background()
	raffle := testRaffle()
	buyerID := uuid.New()

	m.expectSweep(ctx, raffle.ID)
	m.raffles.On("GetByID", ctx, raffle.ID).Return(raffle, nil)
	m.tickets.On("CountLiveByBuyer", ctx, raffle.ID, buyerID).Return(0, nil)
	m.tickets.On("ListLiveNumbers", ctx, raffle.ID).Return([]int{}, nil).Once()
	m.tickets.On("ListLiveNumbers", ctx, raffle.ID).Return([]int{1, 2}, nil).Once()
	m.reservations.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil).Twice()
	m.tickets.On("CreateBatch", ctx, ticketNumbers(1, 2)).
		Return(fmt.Errorf("ticket 1: %w", domain.ErrNumberTaken)).Once()
	m.reservations.On("Delete", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil).Once()
	m.tickets.On("CreateBatch", ctx, ticketNumbers(3, 4)).Return(nil).Once()

	resp, err := service.Reserve(ctx, services.ReserveRequest{
		RaffleID: raffle.ID.String(),
		BuyerID:  buyerID.String(),
		Quantity: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, resp.TicketNumbers)
}

func TestReserve_Fail_ConflictAfterMaxAttempts(t *testing.T) {
	m := newRepoMocks(t)
	clock := services.WithClock(func() time.Time { return fixedNow })
	sweeper := services.NewExpirationSweeper(m.reservations, m.tickets, clock)
	service := services.NewReservationService(m.raffles, m.reservations, m.tickets, sweeper, clock)

	ctx := context.Background()
	raffle := testRaffle()
	buyerID := uuid.New()

	m.expectSweep(ctx, raffle.ID)
	m.raffles.On("GetByID", ctx, raffle.ID).Return(raffle, nil)
	m.tickets.On("CountLiveByBuyer", ctx, raffle.ID, buyerID).Return(0, nil)
	m.tickets.On("ListLiveNumbers", ctx, raffle.ID).Return([]int{}, nil)
	m.reservations.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil).Times(services.MaxReserveAttempts)
	m.tickets.On("CreateBatch", ctx, mock.Anything).Return(domain.ErrNumberTaken).Times(services.MaxReserveAttempts)
	m.reservations.On("Delete", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil).Times(services.MaxReserveAttempts)

	resp, err := service.Reserve(ctx, services.ReserveRequest{
		RaffleID: raffle.ID.String(),
		BuyerID:  buyerID.String(),
		Quantity: 1,
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReserve_Fail_InsertErrorIsNotRetried(t *testing.T) {
	m := newRepoMocks(t)
	clock := services.WithClock(func() time.Time { return fixedNow })
	sweeper := services.NewExpirationSweeper(m.reservations, m.tickets, clock)
	service := services.NewReservationService(m.raffles, m.reservations, m.tickets, sweeper, clock)

	ctx := context.Background()
	raffle := testRaffle()
	buyerID := uuid.New()
	storeDown := errors.New("connection reset by peer")

	m.expectSweep(ctx, raffle.ID)
	m.raffles.On("GetByID", ctx, raffle.ID).Return(raffle, nil)
	m.tickets.On("CountLiveByBuyer", ctx, raffle.ID, buyerID).Return(0, nil)
	m.tickets.On("ListLiveNumbers", ctx, raffle.ID).Return([]int{}, nil)
	m.reservations.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil).Once()
	m.tickets.On("CreateBatch", ctx, mock.Anything).Return(storeDown).Once()
	m.reservations.On("Delete", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil).Once()

	_, err := service.Reserve(ctx, services.ReserveRequest{
		RaffleID: raffle.ID.String(),
		BuyerID:  buyerID.String(),
		Quantity: 1,
	})

	assert.ErrorIs(t, err, storeDown)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}

func TestReserve_Fail_SweepError(t *testing.T) {
	m := newRepoMocks(t)
	clock := services.WithClock(func() time.Time { return fixedNow })
	sweeper := services.NewExpirationSweeper(m.reservations, m.tickets, clock)
	service := services.NewReservationService(m.raffles, m.reservations, m.tickets, sweeper, clock)

	ctx := context.Background()
	raffleID := uuid.New()
	scope := uuid.NullUUID{UUID: raffleID, Valid: true}

	m.tickets.On("ExpireStale", ctx, scope, fixedNow).Return(int64(0), errors.New("timeout"))

	_, err := service.Reserve(ctx, services.ReserveRequest{
		RaffleID: raffleID.String(),
		BuyerID:  uuid.NewString(),
		Quantity: 1,
	})

	assert.ErrorContains(t, err, "expire stale tickets")
}

func TestReserve_RecountCatchesBuyerRacingOwnQuota(t *testing.T) {
	m := newRepoMocks(t)
	clock := services.WithClock(func() time.Time { return fixedNow })
	sweeper := services.NewExpirationSweeper(m.reservations, m.tickets, clock)
	service := services.NewReservationService(m.raffles, m.reservations, m.tickets, sweeper, clock)

	ctx := context.Background()
	raffle := testRaffle()
	buyerID := uuid.New()

	m.expectSweep(ctx, raffle.ID)
	m.raffles.On("GetByID", ctx, raffle.ID).Return(raffle, nil)
	m.tickets.On("ListLiveNumbers", ctx, raffle.ID).Return([]int{}, nil)
	// Quota check passes, then a parallel request of the same buyer lands 5 more tickets.
	m.tickets.On("CountLiveByBuyer", ctx, raffle.ID, buyerID).Return(0, nil).Once()
	m.reservations.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil).Once()
	m.tickets.On("CreateBatch", ctx, ticketNumbers(1)).Return(nil).Once()
	m.tickets.On("CountLiveByBuyer", ctx, raffle.ID, buyerID).Return(6, nil).Once()
	m.reservations.On("Delete", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil).Once()
	m.tickets.On("CountLiveByBuyer", ctx, raffle.ID, buyerID).Return(5, nil).Once()

	resp, err := service.Reserve(ctx, services.ReserveRequest{
		RaffleID: raffle.ID.String(),
		BuyerID:  buyerID.String(),
		Quantity: 1,
	})

	assert.Nil(t, resp)
	var quotaErr *domain.QuotaError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, 5, quotaErr.Held)
}

func TestReserve_Fail_RollbackErrorStopsRetries(t *testing.T) {
	m := newRepoMocks(t)
	clock := services.WithClock(func() time.Time { return fixedNow })
	sweeper := services.NewExpirationSweeper(m.reservations, m.tickets, clock)
	service := services.NewReservationService(m.raffles, m.reservations, m.tickets, sweeper, clock)

	ctx := context.Background()
	raffle := testRaffle()
	buyerID := uuid.New()
	deleteErr := errors.New("connection closed")

	m.expectSweep(ctx, raffle.ID)
	m.raffles.On("GetByID", ctx, raffle.ID).Return(raffle, nil)
	m.tickets.On("CountLiveByBuyer", ctx, raffle.ID, buyerID).Return(0, nil)
	m.tickets.On("ListLiveNumbers", ctx, raffle.ID).Return([]int{}, nil)
	m.reservations.On("Create", ctx, mock.AnythingOfType("*domain.Reservation")).Return(nil).Once()
	m.tickets.On("CreateBatch", ctx, mock.Anything).Return(domain.ErrNumberTaken).Once()
	m.reservations.On("Delete", ctx, mock.AnythingOfType("uuid.UUID")).Return(deleteErr).Once()

	_, err := service.Reserve(ctx, services.ReserveRequest{
		RaffleID: raffle.ID.String(),
		BuyerID:  buyerID.String(),
		Quantity: 1,
	})

	assert.ErrorIs(t, err, deleteErr)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}
