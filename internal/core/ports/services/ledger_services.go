package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/splitkit/split_ledger_app/internal/core/domain"
)

// LedgerSvcFacade exposes the balance and settlement-plan computations over a
// group's stored history. All results are derived fresh from the full expense
// and settlement snapshot on every call; nothing is cached or persisted.
type LedgerSvcFacade interface {
	// GetGroupBalances computes the signed net balance per member.
	GetGroupBalances(ctx context.Context, groupID, requestingUserID string) (map[string]decimal.Decimal, error)

	// GetGroupDebts computes the pairwise debts implied by the group history.
	GetGroupDebts(ctx context.Context, groupID, requestingUserID string) ([]domain.Debt, error)

	// SimplifyGroupDebts computes the group's debts and reduces them to a
	// minimal-by-heuristic settlement plan with a savings summary.
	SimplifyGroupDebts(ctx context.Context, groupID, requestingUserID string) ([]domain.SimplifiedTransaction, domain.SimplificationSummary, error)

	// SimplifyDebtList reduces a caller-supplied debt list, e.g. for what-if
	// analysis. The input need not correspond to any stored group state.
	SimplifyDebtList(ctx context.Context, debts []domain.Debt) ([]domain.SimplifiedTransaction, domain.SimplificationSummary)
}
