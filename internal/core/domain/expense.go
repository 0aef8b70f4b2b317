package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitType indicates how an expense is divided among its participants.
type SplitType string

const (
	SplitEven   SplitType = "EVEN"
	SplitCustom SplitType = "CUSTOM"
)

// Expense represents a shared cost paid by one member on behalf of the group.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`   // Primary Key (e.g., UUID)
	GroupID     string          `json:"groupID"`     // FK -> groups.group_id (Not Null)
	Description string          `json:"description"` // User description
	Amount      decimal.Decimal `json:"amount"`      // Total amount, 2 decimal places
	PaidBy      string          `json:"paidBy"`      // FK -> users.user_id of the payer
	SplitType   SplitType       `json:"splitType"`   // EVEN or CUSTOM
	OccurredAt  time.Time       `json:"occurredAt"`  // When the expense happened
	AuditFields
}

// ExpenseShare represents one participant's portion of an expense.
// For a given expense the share amounts sum to the expense amount to the cent;
// the rounding remainder is carried by one designated participant.
type ExpenseShare struct {
	ShareID    string           `json:"shareID"`              // Primary Key (e.g., UUID)
	ExpenseID  string           `json:"expenseID"`            // FK -> expenses.expense_id (Not Null)
	UserID     string           `json:"userID"`               // FK -> users.user_id (Not Null)
	Amount     decimal.Decimal  `json:"amount"`               // Owed amount, 2 decimal places
	Percentage *decimal.Decimal `json:"percentage,omitempty"` // 0-100, set for CUSTOM splits
	AuditFields
}
