package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt is a derived pairwise obligation: debtor owes creditor the amount.
// Debts are value objects owned by the caller; they are never persisted.
type Debt struct {
	GroupID    string          `json:"groupID"`
	DebtorID   string          `json:"debtorID"`
	CreditorID string          `json:"creditorID"`
	Amount     decimal.Decimal `json:"amount"` // > 0, 2 decimal places
	ComputedAt time.Time       `json:"computedAt"`
}

// SimplifiedTransaction is a single payment in the reduced settlement plan.
// Recording an actual payment against it creates a new Settlement.
type SimplifiedTransaction struct {
	FromUserID string          `json:"fromUserID"`
	ToUserID   string          `json:"toUserID"`
	Amount     decimal.Decimal `json:"amount"` // > 0, 2 decimal places
}

// SimplificationSummary reports how many transactions the simplification saved.
type SimplificationSummary struct {
	OriginalCount     int `json:"originalCount"`
	SimplifiedCount   int `json:"simplifiedCount"`
	TransactionsSaved int `json:"transactionsSaved"`
}
