package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// GroupRepositoryPG implements GroupRepository using PostgreSQL.
type GroupRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewGroupRepository creates a new group repo.
func NewGroupRepository(pool *pgxpool.Pool) *GroupRepositoryPG {
	return &GroupRepositoryPG{pool: pool}
}

// Create inserts a new group record.
func (r *GroupRepositoryPG) Create(ctx context.Context, group *domain.Group) (*domain.Group, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO groups (name, description, created_by)
VALUES ($1, $2, $3)
RETURNING id, created_at;
`, group.Name, group.Description, group.CreatedBy)

	created := *group
	if err := row.Scan(&created.ID, &created.CreatedAt); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID returns the group with the given id.
func (r *GroupRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, name, description, created_by, created_at
FROM groups
WHERE id = $1;
`, id)

	var group domain.Group
	err := row.Scan(&group.ID, &group.Name, &group.Description, &group.CreatedBy, &group.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// ListByMember returns the groups the account belongs to, oldest first.
func (r *GroupRepositoryPG) ListByMember(ctx context.Context, accountID string) ([]domain.Group, error) {
	rows, err := r.pool.Query(ctx, `
SELECT g.id, g.name, g.description, g.created_by, g.created_at
FROM groups g
JOIN memberships m ON m.group_id = g.id
WHERE m.account_id = $1
ORDER BY g.created_at;
`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Group
	for rows.Next() {
		var group domain.Group
		if err := rows.Scan(&group.ID, &group.Name, &group.Description, &group.CreatedBy, &group.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, group)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// AddMember records a membership. Joining a group twice is a no-op; the
// unique index on (account_id, group_id) absorbs the duplicate.
func (r *GroupRepositoryPG) AddMember(ctx context.Context, accountID, groupID string) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO memberships (account_id, group_id)
VALUES ($1, $2)
ON CONFLICT (account_id, group_id) DO NOTHING;
`, accountID, groupID)
	return err
}

// IsMember reports whether a membership record exists for the pair. No
// caching: membership can change between requests.
func (r *GroupRepositoryPG) IsMember(ctx context.Context, accountID, groupID string) (bool, error) {
	row := r.pool.QueryRow(ctx, `
SELECT EXISTS (
    SELECT 1 FROM memberships WHERE account_id = $1 AND group_id = $2
);
`, accountID, groupID)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
