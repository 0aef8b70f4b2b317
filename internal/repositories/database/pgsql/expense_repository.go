package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/splitkit/split_ledger_app/internal/apperrors"
	"github.com/splitkit/split_ledger_app/internal/core/domain"
	portsrepo "github.com/splitkit/split_ledger_app/internal/core/ports/repositories"
	"github.com/splitkit/split_ledger_app/internal/models"
	"github.com/splitkit/split_ledger_app/internal/utils/mapping"
	"github.com/splitkit/split_ledger_app/internal/utils/pagination"
)

const expenseColumns = `expense_id, group_id, description, amount, paid_by, split_type, occurred_at, created_at, created_by, last_updated_at, last_updated_by`

const shareColumns = `share_id, expense_id, user_id, amount, percentage, created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(db *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryFacade
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.GroupID,
		&m.Description,
		&m.Amount,
		&m.PaidBy,
		&m.SplitType,
		&m.OccurredAt,
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

func scanShare(row pgx.Row) (*models.ExpenseShare, error) {
	var m models.ExpenseShare
	err := row.Scan(
		&m.ShareID,
		&m.ExpenseID,
		&m.UserID,
		&m.Amount,
		&m.Percentage,
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

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	m, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}
	e := mapping.ToDomainExpense(*m)
	return &e, nil
}

// ListExpensesByGroup pages through a group's expenses newest-first using a
// keyset token over (occurred_at, created_at).
func (r *PgxExpenseRepository) ListExpensesByGroup(ctx context.Context, groupID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE group_id = $1`
	args := []any{groupID}

	if nextToken != nil && *nextToken != "" {
		occurredAt, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (occurred_at, created_at) < ($2, $3)`
		args = append(args, occurredAt, createdAt)
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY occurred_at DESC, created_at DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query expenses for group %s: %w", groupID, err)
	}
	defer rows.Close()

	modelExpenses := []models.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		modelExpenses = append(modelExpenses, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating expense rows: %w", err)
	}

	var newNextToken *string
	if len(modelExpenses) > limit {
		modelExpenses = modelExpenses[:limit]
		last := modelExpenses[len(modelExpenses)-1]
		token := pagination.EncodeToken(last.OccurredAt, last.CreatedAt)
		newNextToken = &token
	}

	return mapping.ToDomainExpenseSlice(modelExpenses), newNextToken, nil
}

func (r *PgxExpenseRepository) FindAllExpensesByGroup(ctx context.Context, groupID string) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE group_id = $1 ORDER BY occurred_at ASC, created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query all expenses for group %s: %w", groupID, err)
	}
	defer rows.Close()

	modelExpenses := []models.Expense{}
	for rows.Next() {
		m, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		modelExpenses = append(modelExpenses, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}

	return mapping.ToDomainExpenseSlice(modelExpenses), nil
}

func (r *PgxExpenseRepository) FindSharesByExpenseID(ctx context.Context, expenseID string) ([]domain.ExpenseShare, error) {
	query := `SELECT ` + shareColumns + ` FROM expense_shares WHERE expense_id = $1 ORDER BY created_at ASC, share_id ASC;`
	return r.queryShares(ctx, query, expenseID)
}

func (r *PgxExpenseRepository) FindSharesByGroup(ctx context.Context, groupID string) ([]domain.ExpenseShare, error) {
	query := `
        SELECT s.share_id, s.expense_id, s.user_id, s.amount, s.percentage, s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
        FROM expense_shares s
        JOIN expenses e ON e.expense_id = s.expense_id
        WHERE e.group_id = $1
        ORDER BY s.created_at ASC, s.share_id ASC;
    `
	return r.queryShares(ctx, query, groupID)
}

func (r *PgxExpenseRepository) queryShares(ctx context.Context, query string, arg any) ([]domain.ExpenseShare, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense shares: %w", err)
	}
	defer rows.Close()

	modelShares := []models.ExpenseShare{}
	for rows.Next() {
		m, err := scanShare(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense share row: %w", err)
		}
		modelShares = append(modelShares, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense share rows: %w", err)
	}

	return mapping.ToDomainExpenseShareSlice(modelShares), nil
}

// SaveExpense persists an expense and its shares in a single transaction.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense, shares []domain.ExpenseShare) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := insertExpense(ctx, tx, expense); err != nil {
		return err
	}
	if err := insertShares(ctx, tx, shares); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateExpense replaces an expense row and its shares in a single
// transaction.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense, shares []domain.ExpenseShare) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := mapping.ToModelExpense(expense)
	query := `
        UPDATE expenses
        SET description = $2, amount = $3, paid_by = $4, split_type = $5, occurred_at = $6, last_updated_at = $7, last_updated_by = $8
        WHERE expense_id = $1;
    `
	tag, err := tx.Exec(ctx, query,
		m.ExpenseID,
		m.Description,
		m.Amount,
		m.PaidBy,
		m.SplitType,
		m.OccurredAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", expense.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM expense_shares WHERE expense_id = $1;`, expense.ExpenseID); err != nil {
		return fmt.Errorf("failed to clear shares for expense %s: %w", expense.ExpenseID, err)
	}
	if err := insertShares(ctx, tx, shares); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM expense_shares WHERE expense_id = $1;`, expenseID); err != nil {
		return fmt.Errorf("failed to delete shares for expense %s: %w", expenseID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

func insertExpense(ctx context.Context, tx pgx.Tx, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)
	query := `
        INSERT INTO expenses (expense_id, group_id, description, amount, paid_by, split_type, occurred_at, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := tx.Exec(ctx, query,
		m.ExpenseID,
		m.GroupID,
		m.Description,
		m.Amount,
		m.PaidBy,
		m.SplitType,
		m.OccurredAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense %s: %w", expense.ExpenseID, err)
	}
	return nil
}

func insertShares(ctx context.Context, tx pgx.Tx, shares []domain.ExpenseShare) error {
	query := `
        INSERT INTO expense_shares (share_id, expense_id, user_id, amount, percentage, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	for _, share := range shares {
		m := mapping.ToModelExpenseShare(share)
		_, err := tx.Exec(ctx, query,
			m.ShareID,
			m.ExpenseID,
			m.UserID,
			m.Amount,
			m.Percentage,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert share %s: %w", share.ShareID, err)
		}
	}
	return nil
}
