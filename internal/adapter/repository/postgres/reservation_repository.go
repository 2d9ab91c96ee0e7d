package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/srgjo27/raffle_ticket/internal/core/domain"
)

type ReservationRepository struct {
	db *sqlx.DB
}

func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `id, raffle_id, buyer_id, quantity, total_price, status, expires_at, payment_id, created_at, updated_at`

func (r *ReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	_, err := r.db.NamedExecContext(ctx, `
	INSERT INTO raffle_reservations (id, raffle_id, buyer_id, quantity, total_price, status, expires_at, created_at, updated_at)
	VALUES (:id, :raffle_id, :buyer_id, :quantity, :total_price, :status, :expires_at, :created_at, :updated_at)
	`, reservation)

	return err
}

func (r *ReservationRepository) Delete(ctx context.Context, reservationID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM raffle_reservations WHERE id = $1`, reservationID)

	return err
}

func (r *ReservationRepository) GetByID(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error) {
	var reservation domain.Reservation
	err := r.db.GetContext(ctx, &reservation, `SELECT `+reservationColumns+` FROM raffle_reservations WHERE id = $1`, reservationID)
	if err != nil {
		return nil, notFound(err)
	}

	return &reservation, nil
}

func (r *ReservationRepository) GetByIDForBuyer(ctx context.Context, reservationID uuid.UUID, buyerID uuid.UUID) (*domain.Reservation, error) {
	var reservation domain.Reservation
	err := r.db.GetContext(ctx, &reservation, `
	SELECT `+reservationColumns+`
	FROM raffle_reservations
	WHERE id = $1 AND buyer_id = $2
	`, reservationID, buyerID)
	if err != nil {
		return nil, notFound(err)
	}

	return &reservation, nil
}

func (r *ReservationRepository) ListLiveByBuyer(ctx context.Context, buyerID uuid.UUID) ([]domain.Reservation, error) {
	reservations := []domain.Reservation{}
	err := r.db.SelectContext(ctx, &reservations, `
	SELECT `+reservationColumns+`
	FROM raffle_reservations
	WHERE buyer_id = $1 AND status = ANY($2)
	ORDER BY updated_at DESC
	`, buyerID, liveStatuses())
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *ReservationRepository) ExpireStale(ctx context.Context, raffleID uuid.NullUUID, now time.Time) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, `
	UPDATE raffle_reservations
	SET status = 'expired', updated_at = $1
	WHERE status = 'reserved'
		AND expires_at < $1
		AND ($2::uuid IS NULL OR raffle_id = $2)
	RETURNING raffle_id
	`, now, raffleID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var raffles []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		raffles = append(raffles, id)
	}

	return raffles, rows.Err()
}

func (r *ReservationRepository) BindPaymentID(ctx context.Context, reservationID uuid.UUID, paymentID string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}

	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
	UPDATE raffle_reservations
	SET payment_id = $1, updated_at = NOW()
	WHERE id = $2 AND payment_id IS NULL AND status <> 'expired'
	`, paymentID, reservationID)
	if err != nil {
		return false, fmt.Errorf("failed to bind reservation payment id: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	if rowsAffected == 0 {
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
	UPDATE tickets
	SET payment_id = $1
	WHERE reservation_id = $2 AND payment_id IS NULL
	`, paymentID, reservationID)
	if err != nil {
		return false, fmt.Errorf("failed to bind ticket payment ids: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return true, nil
}

func (r *ReservationRepository) MarkPaid(ctx context.Context, paymentID string, now time.Time) (*domain.Reservation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer tx.Rollback()

	var reservation domain.Reservation
	err = tx.GetContext(ctx, &reservation, `
	UPDATE raffle_reservations
	SET status = 'paid', updated_at = $2
	WHERE payment_id = $1 AND status = 'reserved' AND expires_at >= $2
	RETURNING `+reservationColumns, paymentID, now)
	if err != nil {
		return nil, notFound(err)
	}

	_, err = tx.ExecContext(ctx, `
	UPDATE tickets
	SET status = 'paid'
	WHERE reservation_id = $1 AND status = 'reserved'
	`, reservation.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark tickets paid: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &reservation, nil
}
