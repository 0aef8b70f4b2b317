package dto

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitkit/split_ledger_app/internal/core/domain"
)

// BalanceResponse is one member's signed net position.
// Positive = owed money, negative = owes.
type BalanceResponse struct {
	UserID string          `json:"userID"`
	Amount decimal.Decimal `json:"amount"`
}

// GroupBalancesResponse wraps the net balances of a group.
type GroupBalancesResponse struct {
	GroupID  string            `json:"groupID"`
	Balances []BalanceResponse `json:"balances"`
}

// DebtResponse defines the data returned for one pairwise debt.
type DebtResponse struct {
	DebtorID   string          `json:"debtorID"`
	CreditorID string          `json:"creditorID"`
	Amount     decimal.Decimal `json:"amount"`
	ComputedAt time.Time       `json:"computedAt"`
}

// GroupDebtsResponse wraps the pairwise debts of a group.
type GroupDebtsResponse struct {
	GroupID string         `json:"groupID"`
	Debts   []DebtResponse `json:"debts"`
}

// DebtInput is one caller-supplied debt for standalone simplification.
type DebtInput struct {
	DebtorID   string          `json:"debtorID" binding:"required"`
	CreditorID string          `json:"creditorID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// SimplifyDebtsRequest carries a what-if debt list to the simplifier.
type SimplifyDebtsRequest struct {
	Debts []DebtInput `json:"debts" binding:"required,dive"`
}

// SimplifiedTransactionResponse is one payment of the reduced plan.
type SimplifiedTransactionResponse struct {
	FromUserID string          `json:"fromUserID"`
	ToUserID   string          `json:"toUserID"`
	Amount     decimal.Decimal `json:"amount"`
}

// SimplifyDebtsResponse wraps the reduced plan and its savings summary.
type SimplifyDebtsResponse struct {
	Transactions []SimplifiedTransactionResponse `json:"transactions"`
	Summary      domain.SimplificationSummary    `json:"summary"`
}

// ToGroupBalancesResponse converts a balance map to its DTO, sorted by user
// ID for a stable response body.
func ToGroupBalancesResponse(groupID string, balances map[string]decimal.Decimal) GroupBalancesResponse {
	resp := GroupBalancesResponse{GroupID: groupID, Balances: make([]BalanceResponse, 0, len(balances))}
	for userID, amount := range balances {
		resp.Balances = append(resp.Balances, BalanceResponse{UserID: userID, Amount: amount.Round(2)})
	}
	sort.Slice(resp.Balances, func(i, j int) bool {
		return resp.Balances[i].UserID < resp.Balances[j].UserID
	})
	return resp
}

// ToGroupDebtsResponse converts domain Debts to the group debts DTO.
func ToGroupDebtsResponse(groupID string, debts []domain.Debt) GroupDebtsResponse {
	resp := GroupDebtsResponse{GroupID: groupID, Debts: make([]DebtResponse, len(debts))}
	for i, debt := range debts {
		resp.Debts[i] = DebtResponse{
			DebtorID:   debt.DebtorID,
			CreditorID: debt.CreditorID,
			Amount:     debt.Amount,
			ComputedAt: debt.ComputedAt,
		}
	}
	return resp
}

// ToDomainDebts converts caller-supplied debt inputs to domain Debts.
func ToDomainDebts(inputs []DebtInput, now time.Time) []domain.Debt {
	debts := make([]domain.Debt, len(inputs))
	for i, in := range inputs {
		debts[i] = domain.Debt{
			DebtorID:   in.DebtorID,
			CreditorID: in.CreditorID,
			Amount:     in.Amount,
			ComputedAt: now,
		}
	}
	return debts
}

// ToSimplifyDebtsResponse converts the simplifier output to its DTO.
func ToSimplifyDebtsResponse(txns []domain.SimplifiedTransaction, summary domain.SimplificationSummary) SimplifyDebtsResponse {
	resp := SimplifyDebtsResponse{
		Transactions: make([]SimplifiedTransactionResponse, len(txns)),
		Summary:      summary,
	}
	for i, txn := range txns {
		resp.Transactions[i] = SimplifiedTransactionResponse{
			FromUserID: txn.FromUserID,
			ToUserID:   txn.ToUserID,
			Amount:     txn.Amount,
		}
	}
	return resp
}
