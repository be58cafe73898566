package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// RequestRepositoryPG implements RequestRepository using PostgreSQL.
type RequestRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewRequestRepository creates a new funding request repo.
func NewRequestRepository(pool *pgxpool.Pool) *RequestRepositoryPG {
	return &RequestRepositoryPG{pool: pool}
}

const requestColumns = `id, title, description, amount_needed, amount_collected, group_id, requester_id, status, created_at`

func scanRequest(row pgx.Row) (*domain.FundingRequest, error) {
	var req domain.FundingRequest
	err := row.Scan(
		&req.ID,
		&req.Title,
		&req.Description,
		&req.AmountNeeded,
		&req.AmountCollected,
		&req.GroupID,
		&req.RequesterID,
		&req.Status,
		&req.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create inserts a new funding request. Collected starts at zero and
// the status at active.
func (r *RequestRepositoryPG) Create(ctx context.Context, request *domain.FundingRequest) (*domain.FundingRequest, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO funding_requests (title, description, amount_needed, group_id, requester_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING `+requestColumns+`;
`, request.Title, request.Description, request.AmountNeeded, request.GroupID, request.RequesterID)
	return scanRequest(row)
}

// GetByID returns the funding request with the given id.
func (r *RequestRepositoryPG) GetByID(ctx context.Context, id string) (*domain.FundingRequest, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+requestColumns+`
FROM funding_requests
WHERE id = $1;
`, id)
	return scanRequest(row)
}

// ListByGroup returns a group's funding requests, newest first.
func (r *RequestRepositoryPG) ListByGroup(ctx context.Context, groupID string) ([]domain.FundingRequest, error) {
	return r.list(ctx, `
SELECT `+requestColumns+`
FROM funding_requests
WHERE group_id = $1
ORDER BY created_at DESC;
`, groupID)
}

// ListByRequester returns the requests an account has authored, newest first.
func (r *RequestRepositoryPG) ListByRequester(ctx context.Context, accountID string) ([]domain.FundingRequest, error) {
	return r.list(ctx, `
SELECT `+requestColumns+`
FROM funding_requests
WHERE requester_id = $1
ORDER BY created_at DESC;
`, accountID)
}

func (r *RequestRepositoryPG) list(ctx context.Context, query string, args ...any) ([]domain.FundingRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.FundingRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ApplyContribution records a contribution and advances the request's
// collected amount and status in a single transaction. The request row
// is locked FOR UPDATE so concurrent contributions against the same
// request serialize their read-modify-write; a partial application is
// never observable. Completion is one-way: a completed request never
// reverts, it only keeps accumulating.
func (r *RequestRepositoryPG) ApplyContribution(ctx context.Context, input domain.ContributionInput) (*domain.FundingRequest, *domain.Contribution, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("begin contribution tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	req, err := scanRequest(tx.QueryRow(ctx, `
SELECT `+requestColumns+`
FROM funding_requests
WHERE id = $1
FOR UPDATE;
`, input.RequestID))
	if err != nil {
		return nil, nil, err
	}

	contribution := domain.Contribution{
		Amount:        input.Amount,
		ContributorID: input.ContributorID,
		RequestID:     input.RequestID,
		IsAnonymous:   input.IsAnonymous,
	}
	row := tx.QueryRow(ctx, `
INSERT INTO contributions (amount, contributor_id, request_id, is_anonymous)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at;
`, input.Amount, input.ContributorID, input.RequestID, input.IsAnonymous)
	if err := row.Scan(&contribution.ID, &contribution.CreatedAt); err != nil {
		return nil, nil, err
	}

	req.AmountCollected = req.AmountCollected.Add(input.Amount)
	if req.Status == domain.RequestStatusActive && req.Completed() {
		req.Status = domain.RequestStatusCompleted
	}

	if _, err := tx.Exec(ctx, `
UPDATE funding_requests
SET amount_collected = $2, status = $3
WHERE id = $1;
`, req.ID, req.AmountCollected, req.Status); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit contribution tx: %w", err)
	}
	return req, &contribution, nil
}

// ListContributions returns a request's contributions, oldest first.
func (r *RequestRepositoryPG) ListContributions(ctx context.Context, requestID string) ([]domain.Contribution, error) {
	return r.listContributions(ctx, `
SELECT id, amount, contributor_id, request_id, is_anonymous, created_at
FROM contributions
WHERE request_id = $1
ORDER BY created_at;
`, requestID)
}

// ListContributionsByAccount returns an account's contributions, newest first.
func (r *RequestRepositoryPG) ListContributionsByAccount(ctx context.Context, accountID string) ([]domain.Contribution, error) {
	return r.listContributions(ctx, `
SELECT id, amount, contributor_id, request_id, is_anonymous, created_at
FROM contributions
WHERE contributor_id = $1
ORDER BY created_at DESC;
`, accountID)
}

func (r *RequestRepositoryPG) listContributions(ctx context.Context, query string, args ...any) ([]domain.Contribution, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Contribution
	for rows.Next() {
		var c domain.Contribution
		if err := rows.Scan(&c.ID, &c.Amount, &c.ContributorID, &c.RequestID, &c.IsAnonymous, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FirstContributor returns the account id behind the earliest
// contribution to the request, or domain.ErrNotFound when nobody has
// contributed yet.
func (r *RequestRepositoryPG) FirstContributor(ctx context.Context, requestID string) (string, error) {
	row := r.pool.QueryRow(ctx, `
SELECT contributor_id
FROM contributions
WHERE request_id = $1
ORDER BY created_at
LIMIT 1;
`, requestID)

	var accountID string
	err := row.Scan(&accountID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return accountID, nil
}

// ListRepayments returns a request's repayments, oldest first.
func (r *RequestRepositoryPG) ListRepayments(ctx context.Context, requestID string) ([]domain.Repayment, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, amount, request_id, repaid_by, created_at
FROM repayments
WHERE request_id = $1
ORDER BY created_at;
`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Repayment
	for rows.Next() {
		var rp domain.Repayment
		if err := rows.Scan(&rp.ID, &rp.Amount, &rp.RequestID, &rp.RepaidBy, &rp.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// GroupStats aggregates request counts and the contribution total for a group.
func (r *RequestRepositoryPG) GroupStats(ctx context.Context, groupID string) (*domain.GroupStats, error) {
	row := r.pool.QueryRow(ctx, `
SELECT
    count(*),
    count(*) FILTER (WHERE status = 'active'),
    COALESCE((
        SELECT sum(c.amount)
        FROM contributions c
        JOIN funding_requests fr ON fr.id = c.request_id
        WHERE fr.group_id = $1
    ), 0)
FROM funding_requests
WHERE group_id = $1;
`, groupID)

	var stats domain.GroupStats
	if err := row.Scan(&stats.TotalRequests, &stats.ActiveRequests, &stats.TotalContributions); err != nil {
		return nil, err
	}
	return &stats, nil
}
