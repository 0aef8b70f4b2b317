package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/splitkit/split_ledger_app/internal/core/domain"
)

// SimplifyDebts reduces any list of pairwise debts to a shorter settlement
// plan with the same net effect, plus a before/after summary. The input need
// not come from MaterializeDebts; hand-built lists (e.g. what-if analysis)
// work the same way.
//
// Net positions are recomputed directly from the debt list (creditor gains,
// debtor loses per record) and then matched with the same greedy
// largest-vs-largest rule used for materialization. The total amount moved by
// the simplified plan never exceeds the total of the original list, and for N
// members with nonzero net balance the plan has at most N-1 transactions.
//
// There is no failure path: malformed or empty input simply produces
// empty or short output.
func SimplifyDebts(debts []domain.Debt) ([]domain.SimplifiedTransaction, domain.SimplificationSummary) {
	balances := make(map[string]decimal.Decimal, len(debts)*2)
	for _, debt := range debts {
		balances[debt.CreditorID] = balances[debt.CreditorID].Add(debt.Amount)
		balances[debt.DebtorID] = balances[debt.DebtorID].Sub(debt.Amount)
	}

	transfers := matchGreedy(balances)

	transactions := make([]domain.SimplifiedTransaction, 0, len(transfers))
	for _, t := range transfers {
		transactions = append(transactions, domain.SimplifiedTransaction{
			FromUserID: t.from,
			ToUserID:   t.to,
			Amount:     t.amount.Round(2),
		})
	}

	summary := domain.SimplificationSummary{
		OriginalCount:     len(debts),
		SimplifiedCount:   len(transactions),
		TransactionsSaved: len(debts) - len(transactions),
	}
	return transactions, summary
}
