package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitkit/split_ledger_app/internal/core/domain"
)

// MaterializeDebts converts a net balance map into pairwise Debt records
// whose net effect reproduces the same balances. A fully settled group (all
// balances within one cent of zero) yields an empty list.
//
// Amounts are rounded to 2 decimal places when each debt is emitted, not
// accumulated in rounded form during the matching loop.
func MaterializeDebts(groupID string, balances map[string]decimal.Decimal, now time.Time) []domain.Debt {
	transfers := matchGreedy(balances)

	debts := make([]domain.Debt, 0, len(transfers))
	for _, t := range transfers {
		debts = append(debts, domain.Debt{
			GroupID:    groupID,
			DebtorID:   t.from,
			CreditorID: t.to,
			Amount:     t.amount.Round(2),
			ComputedAt: now,
		})
	}
	return debts
}
