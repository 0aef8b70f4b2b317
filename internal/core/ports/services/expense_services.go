package services

import (
	"context"

	"github.com/splitkit/split_ledger_app/internal/core/domain"
	"github.com/splitkit/split_ledger_app/internal/dto"
)

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves an expense and its shares.
	GetExpenseByID(ctx context.Context, groupID, expenseID, requestingUserID string) (*domain.Expense, []domain.ExpenseShare, error)

	// ListExpenses retrieves a paginated list of expenses in a group.
	ListExpenses(ctx context.Context, groupID, requestingUserID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error)
}

// ExpenseWriterSvc defines write operations for expense data
type ExpenseWriterSvc interface {
	// CreateExpense creates a new expense with its shares after validation.
	CreateExpense(ctx context.Context, groupID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, []domain.ExpenseShare, error)

	// UpdateExpense replaces an expense and its shares. Only the expense's
	// creator may edit it.
	UpdateExpense(ctx context.Context, groupID, expenseID string, req dto.CreateExpenseRequest, requestingUserID string) (*domain.Expense, []domain.ExpenseShare, error)

	// DeleteExpense removes an expense and its shares. Only the expense's
	// creator may delete it.
	DeleteExpense(ctx context.Context, groupID, expenseID, requestingUserID string) error
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
