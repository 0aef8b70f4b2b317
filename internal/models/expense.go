package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a row in the expenses table.
type Expense struct {
	ExpenseID   string          `db:"expense_id"`
	GroupID     string          `db:"group_id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	PaidBy      string          `db:"paid_by"`
	SplitType   string          `db:"split_type"`
	OccurredAt  time.Time       `db:"occurred_at"`
	AuditFields
}

// ExpenseShare represents a row in the expense_shares table.
type ExpenseShare struct {
	ShareID    string           `db:"share_id"`
	ExpenseID  string           `db:"expense_id"`
	UserID     string           `db:"user_id"`
	Amount     decimal.Decimal  `db:"amount"`
	Percentage *decimal.Decimal `db:"percentage"` // Nullable, set for CUSTOM splits
	AuditFields
}
