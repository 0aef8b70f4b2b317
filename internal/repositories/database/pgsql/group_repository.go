package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/splitkit/split_ledger_app/internal/apperrors"
	"github.com/splitkit/split_ledger_app/internal/core/domain"
	portsrepo "github.com/splitkit/split_ledger_app/internal/core/ports/repositories"
	"github.com/splitkit/split_ledger_app/internal/models"
	"github.com/splitkit/split_ledger_app/internal/utils/mapping"
)

const groupColumns = `group_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxGroupRepository struct {
	db *pgxpool.Pool
}

func newPgxGroupRepository(db *pgxpool.Pool) portsrepo.GroupRepositoryFacade {
	return &PgxGroupRepository{db: db}
}

// Ensure PgxGroupRepository implements portsrepo.GroupRepositoryFacade
var _ portsrepo.GroupRepositoryFacade = (*PgxGroupRepository)(nil)

func scanGroup(row pgx.Row) (*models.Group, error) {
	var m models.Group
	err := row.Scan(
		&m.GroupID,
		&m.Name,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxGroupRepository) SaveGroup(ctx context.Context, group domain.Group) error {
	m := mapping.ToModelGroup(group)
	query := `
        INSERT INTO groups (group_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		m.GroupID,
		m.Name,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save group: %w", err)
	}
	return nil
}

func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE group_id = $1;`
	m, err := scanGroup(r.db.QueryRow(ctx, query, groupID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find group by ID %s: %w", groupID, err)
	}
	g := mapping.ToDomainGroup(*m)
	return &g, nil
}

func (r *PgxGroupRepository) ListGroupsByUserID(ctx context.Context, userID string) ([]domain.Group, error) {
	query := `
        SELECT g.group_id, g.name, g.description, g.is_active, g.created_at, g.created_by, g.last_updated_at, g.last_updated_by
        FROM groups g
        JOIN user_groups ug ON ug.group_id = g.group_id
        WHERE ug.user_id = $1 AND ug.role != $2
        ORDER BY g.created_at DESC;
    `
	rows, err := r.db.Query(ctx, query, userID, string(domain.RoleRemoved))
	if err != nil {
		return nil, fmt.Errorf("failed to query groups for user %s: %w", userID, err)
	}
	defer rows.Close()

	modelGroups := []models.Group{}
	for rows.Next() {
		m, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		modelGroups = append(modelGroups, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group rows: %w", err)
	}

	return mapping.ToDomainGroupSlice(modelGroups), nil
}

func (r *PgxGroupRepository) FindUserGroupRole(ctx context.Context, userID, groupID string) (*domain.UserGroup, error) {
	query := `
        SELECT user_id, group_id, role, joined_at
        FROM user_groups
        WHERE user_id = $1 AND group_id = $2;
    `
	var m models.UserGroup
	err := r.db.QueryRow(ctx, query, userID, groupID).Scan(
		&m.UserID,
		&m.GroupID,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership for user %s in group %s: %w", userID, groupID, err)
	}
	ug := mapping.ToDomainUserGroup(m)
	return &ug, nil
}

func (r *PgxGroupRepository) ListGroupMembers(ctx context.Context, groupID string) ([]domain.UserGroup, error) {
	// Join users so responses can show member names without extra lookups.
	query := `
        SELECT ug.user_id, u.name, ug.group_id, ug.role, ug.joined_at
        FROM user_groups ug
        JOIN users u ON u.user_id = ug.user_id
        WHERE ug.group_id = $1
        ORDER BY ug.joined_at ASC;
    `
	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members of group %s: %w", groupID, err)
	}
	defer rows.Close()

	members := []domain.UserGroup{}
	for rows.Next() {
		var m models.UserGroup
		var userName string
		if err := rows.Scan(&m.UserID, &userName, &m.GroupID, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		ug := mapping.ToDomainUserGroup(m)
		ug.UserName = userName
		members = append(members, ug)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", err)
	}

	return members, nil
}

func (r *PgxGroupRepository) AddUserToGroup(ctx context.Context, membership domain.UserGroup) error {
	m := mapping.ToModelUserGroup(membership)
	query := `
        INSERT INTO user_groups (user_id, group_id, role, joined_at)
        VALUES ($1, $2, $3, $4);
    `
	_, err := r.db.Exec(ctx, query, m.UserID, m.GroupID, m.Role, m.JoinedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: user %s is already in group %s", apperrors.ErrDuplicate, membership.UserID, membership.GroupID)
		}
		return fmt.Errorf("failed to add user %s to group %s: %w", membership.UserID, membership.GroupID, err)
	}
	return nil
}

func (r *PgxGroupRepository) UpdateUserGroupRole(ctx context.Context, userID, groupID string, role domain.UserGroupRole) error {
	query := `
        UPDATE user_groups
        SET role = $3
        WHERE user_id = $1 AND group_id = $2;
    `
	tag, err := r.db.Exec(ctx, query, userID, groupID, string(role))
	if err != nil {
		return fmt.Errorf("failed to update role for user %s in group %s: %w", userID, groupID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
