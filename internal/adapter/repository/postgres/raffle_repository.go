package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/srgjo27/raffle_ticket/internal/core/domain"
)

type RaffleRepository struct {
	db *sqlx.DB
}

func NewRaffleRepository(db *sqlx.DB) *RaffleRepository {
	return &RaffleRepository{db: db}
}

const raffleColumns = `id, title, total_tickets, max_tickets_per_user, ticket_price, hold_minutes, created_at`

func (r *RaffleRepository) GetByID(ctx context.Context, raffleID uuid.UUID) (*domain.Raffle, error) {
	var raffle domain.Raffle
	err := r.db.GetContext(ctx, &raffle, `SELECT `+raffleColumns+` FROM raffles WHERE id = $1`, raffleID)
	if err != nil {
		return nil, notFound(err)
	}

	return &raffle, nil
}

func (r *RaffleRepository) List(ctx context.Context, limit int) ([]domain.Raffle, error) {
	raffles := []domain.Raffle{}
	err := r.db.SelectContext(ctx, &raffles, `
	SELECT `+raffleColumns+`
	FROM raffles
	ORDER BY created_at DESC
	LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}

	return raffles, nil
}

// Create stores raffle configuration unless a raffle with the same id exists. Raffle management lives
// elsewhere; this is used for seeding.
func (r *RaffleRepository) Create(ctx context.Context, raffle *domain.Raffle) error {
	_, err := r.db.NamedExecContext(ctx, `
	INSERT INTO raffles (id, title, total_tickets, max_tickets_per_user, ticket_price, hold_minutes, created_at)
	VALUES (:id, :title, :total_tickets, :max_tickets_per_user, :ticket_price, :hold_minutes, :created_at)
	ON CONFLICT (id) DO NOTHING
	`, raffle)

	return err
}
