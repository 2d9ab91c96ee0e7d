package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/srgjo27/raffle_ticket/internal/core/domain"
)

type TicketRepository struct {
	db *sqlx.DB
}

func NewTicketRepository(db *sqlx.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// CreateBatch inserts the tickets in one transaction. The partial unique index on live
// (raffle_id, number_selected) rejects the whole batch if any number is already held.
func (r *TicketRepository) CreateBatch(ctx context.Context, tickets []domain.Ticket) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	stmt, err := tx.PrepareNamedContext(ctx, `
	INSERT INTO tickets (id, raffle_id, reservation_id, buyer_id, number_selected, status, expires_at, created_at)
	VALUES (:id, :raffle_id, :reservation_id, :buyer_id, :number_selected, :status, :expires_at, :created_at)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare ticket statement: %w", err)
	}

	defer stmt.Close()

	for i := range tickets {
		if _, err := stmt.ExecContext(ctx, &tickets[i]); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("ticket %d: %w", tickets[i].NumberSelected, domain.ErrNumberTaken)
			}
			return fmt.Errorf("failed to insert ticket %d: %w", tickets[i].NumberSelected, err)
		}
	}

	if err = tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNumberTaken
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *TicketRepository) CountLiveByBuyer(ctx context.Context, raffleID uuid.UUID, buyerID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
	SELECT COUNT(*) FROM tickets
	WHERE raffle_id = $1 AND buyer_id = $2 AND status = ANY($3)
	`, raffleID, buyerID, liveStatuses())

	return count, err
}

func (r *TicketRepository) CountLive(ctx context.Context, raffleID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
	SELECT COUNT(*) FROM tickets
	WHERE raffle_id = $1 AND status = ANY($2)
	`, raffleID, liveStatuses())

	return count, err
}

func (r *TicketRepository) ListLiveNumbers(ctx context.Context, raffleID uuid.UUID) ([]int, error) {
	numbers := []int{}
	err := r.db.SelectContext(ctx, &numbers, `
	SELECT number_selected FROM tickets
	WHERE raffle_id = $1 AND status = ANY($2)
	`, raffleID, liveStatuses())

	return numbers, err
}

func (r *TicketRepository) ListNumbersByReservation(ctx context.Context, reservationID uuid.UUID) ([]int, error) {
	numbers := []int{}
	err := r.db.SelectContext(ctx, &numbers, `
	SELECT number_selected FROM tickets
	WHERE reservation_id = $1 AND status = ANY($2)
	ORDER BY number_selected ASC
	`, reservationID, liveStatuses())

	return numbers, err
}

func (r *TicketRepository) ExpireStale(ctx context.Context, raffleID uuid.NullUUID, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
	UPDATE tickets
	SET status = 'expired'
	WHERE status = 'reserved'
		AND expires_at < $1
		AND ($2::uuid IS NULL OR raffle_id = $2)
	`, now, raffleID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
