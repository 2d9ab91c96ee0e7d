package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/srgjo27/raffle_ticket/internal/core/domain"
)

const uniqueViolation = pq.ErrorCode("23505")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}

	return err
}

func liveStatuses() pq.StringArray {
	out := make(pq.StringArray, 0, len(domain.LiveStatuses))
	for _, s := range domain.LiveStatuses {
		out = append(out, string(s))
	}

	return out
}
