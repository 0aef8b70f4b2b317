// Package ledger implements the pure balance, debt and settlement-plan
// computations for a group. Everything in this package is synchronous,
// allocation-local and free of I/O; callers own all inputs and outputs, so
// concurrent invocations need no locking. Results are always recomputed from
// the full supplied history, never cached.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/splitkit/split_ledger_app/internal/core/domain"
)

// settledEpsilon is the one-cent tolerance below which a balance is treated
// as settled. It absorbs rounding drift from repeated additions.
var settledEpsilon = decimal.New(1, -2) // 0.01

// ComputeBalances folds expenses, their per-member shares and confirmed
// settlements into one signed net balance per member. Positive means the
// member is owed money, negative means the member owes.
//
// The payer of an expense is credited its full amount and every share
// participant is debited their share, so a payer who also participates nets
// to roughly zero for that expense. Only CONFIRMED settlements are applied:
// a settlement where A pays B moves A's balance up and B's balance down,
// cancelling existing debt.
//
// An empty or nil expense list yields an empty map; that is a valid result,
// not an error. The function is pure and idempotent.
func ComputeBalances(expenses []domain.Expense, shares []domain.ExpenseShare, settlements []domain.Settlement) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal)
	if len(expenses) == 0 {
		return balances
	}

	expenseIDs := make(map[string]struct{}, len(expenses))
	for _, exp := range expenses {
		expenseIDs[exp.ExpenseID] = struct{}{}
		balances[exp.PaidBy] = balances[exp.PaidBy].Add(exp.Amount)
	}

	for _, share := range shares {
		// Shares referencing expenses outside the supplied snapshot are skipped.
		if _, ok := expenseIDs[share.ExpenseID]; !ok {
			continue
		}
		balances[share.UserID] = balances[share.UserID].Sub(share.Amount)
	}

	for _, settlement := range settlements {
		if settlement.Status != domain.SettlementConfirmed {
			continue
		}
		balances[settlement.PayerID] = balances[settlement.PayerID].Add(settlement.Amount)
		balances[settlement.PayeeID] = balances[settlement.PayeeID].Sub(settlement.Amount)
	}

	return balances
}
