package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// AcknowledgementRepositoryPG implements AcknowledgementRepository using PostgreSQL.
type AcknowledgementRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewAcknowledgementRepository creates a new acknowledgement repo.
func NewAcknowledgementRepository(pool *pgxpool.Pool) *AcknowledgementRepositoryPG {
	return &AcknowledgementRepositoryPG{pool: pool}
}

// Create inserts a new thank-you note.
func (r *AcknowledgementRepositoryPG) Create(ctx context.Context, ack *domain.Acknowledgement) (*domain.Acknowledgement, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO acknowledgements (message, from_account_id, to_account_id, request_id)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at;
`, ack.Message, ack.FromAccountID, ack.ToAccountID, ack.RequestID)

	created := *ack
	if err := row.Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListByRequest returns a request's thank-you notes, oldest first.
func (r *AcknowledgementRepositoryPG) ListByRequest(ctx context.Context, requestID string) ([]domain.Acknowledgement, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, message, from_account_id, to_account_id, request_id, created_at
FROM acknowledgements
WHERE request_id = $1
ORDER BY created_at;
`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Acknowledgement
	for rows.Next() {
		var ack domain.Acknowledgement
		if err := rows.Scan(&ack.ID, &ack.Message, &ack.FromAccountID, &ack.ToAccountID, &ack.RequestID, &ack.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, ack)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
