package repositories

import (
	"context"

	"github.com/splitkit/split_ledger_app/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves a specific expense by its unique identifier.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpensesByGroup retrieves a paginated list of expenses for a group
	// using token-based pagination. It returns the expenses and a token for
	// the next page.
	ListExpensesByGroup(ctx context.Context, groupID string, limit int, nextToken *string) ([]domain.Expense, *string, error)

	// FindAllExpensesByGroup retrieves the full expense history of a group.
	FindAllExpensesByGroup(ctx context.Context, groupID string) ([]domain.Expense, error)

	// FindSharesByExpenseID retrieves all shares of a single expense.
	FindSharesByExpenseID(ctx context.Context, expenseID string) ([]domain.ExpenseShare, error)

	// FindSharesByGroup retrieves all shares belonging to a group's expenses.
	FindSharesByGroup(ctx context.Context, groupID string) ([]domain.ExpenseShare, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists an expense and its shares within a DB transaction.
	SaveExpense(ctx context.Context, expense domain.Expense, shares []domain.ExpenseShare) error

	// UpdateExpense replaces an expense and its shares within a DB transaction.
	UpdateExpense(ctx context.Context, expense domain.Expense, shares []domain.ExpenseShare) error

	// DeleteExpense removes an expense and its shares.
	DeleteExpense(ctx context.Context, expenseID string) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
