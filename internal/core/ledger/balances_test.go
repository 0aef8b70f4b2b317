package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitkit/split_ledger_app/internal/core/domain"
	"github.com/splitkit/split_ledger_app/internal/core/ledger"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(id, groupID, paidBy, amount string) domain.Expense {
	return domain.Expense{
		ExpenseID:  id,
		GroupID:    groupID,
		Amount:     d(amount),
		PaidBy:     paidBy,
		SplitType:  domain.SplitEven,
		OccurredAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func share(expenseID, userID, amount string) domain.ExpenseShare {
	return domain.ExpenseShare{
		ShareID:   expenseID + "-" + userID,
		ExpenseID: expenseID,
		UserID:    userID,
		Amount:    d(amount),
	}
}

func settlement(payerID, payeeID, amount string, status domain.SettlementStatus) domain.Settlement {
	return domain.Settlement{
		SettlementID: payerID + "-" + payeeID,
		GroupID:      "grp-1",
		PayerID:      payerID,
		PayeeID:      payeeID,
		Amount:       d(amount),
		Status:       status,
	}
}

func TestComputeBalances_SingleExpenseEvenSplit(t *testing.T) {
	expenses := []domain.Expense{expense("exp-1", "grp-1", "alice", "120.00")}
	shares := []domain.ExpenseShare{
		share("exp-1", "alice", "40.00"),
		share("exp-1", "bob", "40.00"),
		share("exp-1", "carol", "40.00"),
	}

	balances := ledger.ComputeBalances(expenses, shares, nil)

	require.Len(t, balances, 3)
	assert.True(t, balances["alice"].Equal(d("80.00")), "alice: %s", balances["alice"])
	assert.True(t, balances["bob"].Equal(d("-40.00")), "bob: %s", balances["bob"])
	assert.True(t, balances["carol"].Equal(d("-40.00")), "carol: %s", balances["carol"])
}

func TestComputeBalances_EmptyExpenseListIsEmptyResult(t *testing.T) {
	balances := ledger.ComputeBalances(nil, nil, nil)
	assert.Empty(t, balances)

	// Settlements alone do not produce balances without expense history.
	balances = ledger.ComputeBalances(nil, nil, []domain.Settlement{
		settlement("bob", "alice", "40.00", domain.SettlementConfirmed),
	})
	assert.Empty(t, balances)
}

func TestComputeBalances_OnlyConfirmedSettlementsApply(t *testing.T) {
	expenses := []domain.Expense{expense("exp-1", "grp-1", "alice", "100.00")}
	shares := []domain.ExpenseShare{
		share("exp-1", "alice", "50.00"),
		share("exp-1", "bob", "50.00"),
	}

	tests := []struct {
		name        string
		status      domain.SettlementStatus
		wantAlice   string
		wantBob     string
	}{
		{name: "confirmed settlement cancels debt", status: domain.SettlementConfirmed, wantAlice: "0.00", wantBob: "0.00"},
		{name: "pending settlement ignored", status: domain.SettlementPending, wantAlice: "50.00", wantBob: "-50.00"},
		{name: "cancelled settlement ignored", status: domain.SettlementCancelled, wantAlice: "50.00", wantBob: "-50.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settlements := []domain.Settlement{settlement("bob", "alice", "50.00", tt.status)}
			balances := ledger.ComputeBalances(expenses, shares, settlements)

			assert.True(t, balances["alice"].Equal(d(tt.wantAlice)), "alice: %s", balances["alice"])
			assert.True(t, balances["bob"].Equal(d(tt.wantBob)), "bob: %s", balances["bob"])
		})
	}
}

func TestComputeBalances_SettlementMovesPayerUpPayeeDown(t *testing.T) {
	expenses := []domain.Expense{expense("exp-1", "grp-1", "alice", "60.00")}
	shares := []domain.ExpenseShare{
		share("exp-1", "alice", "20.00"),
		share("exp-1", "bob", "20.00"),
		share("exp-1", "carol", "20.00"),
	}
	// Bob pays Alice half of what he owes.
	settlements := []domain.Settlement{settlement("bob", "alice", "10.00", domain.SettlementConfirmed)}

	balances := ledger.ComputeBalances(expenses, shares, settlements)

	assert.True(t, balances["alice"].Equal(d("30.00")), "alice: %s", balances["alice"])
	assert.True(t, balances["bob"].Equal(d("-10.00")), "bob: %s", balances["bob"])
	assert.True(t, balances["carol"].Equal(d("-20.00")), "carol: %s", balances["carol"])
}

func TestComputeBalances_SharesForUnknownExpensesSkipped(t *testing.T) {
	expenses := []domain.Expense{expense("exp-1", "grp-1", "alice", "50.00")}
	shares := []domain.ExpenseShare{
		share("exp-1", "bob", "50.00"),
		share("exp-other", "bob", "999.00"), // outside the snapshot
	}

	balances := ledger.ComputeBalances(expenses, shares, nil)

	assert.True(t, balances["bob"].Equal(d("-50.00")), "bob: %s", balances["bob"])
}

func TestComputeBalances_Conservation(t *testing.T) {
	// Total credit equals total debit for any well-formed history: the sum of
	// all balances is exactly zero.
	expenses := []domain.Expense{
		expense("exp-1", "grp-1", "alice", "100.00"),
		expense("exp-2", "grp-1", "bob", "33.34"),
		expense("exp-3", "grp-1", "carol", "7.19"),
	}
	var shares []domain.ExpenseShare
	members := []string{"alice", "bob", "carol"}
	for _, exp := range expenses {
		split := ledger.EvenShares(exp.Amount, len(members))
		for i, m := range members {
			shares = append(shares, domain.ExpenseShare{
				ExpenseID: exp.ExpenseID, UserID: m, Amount: split[i],
			})
		}
	}
	settlements := []domain.Settlement{
		settlement("carol", "alice", "12.50", domain.SettlementConfirmed),
		settlement("bob", "alice", "3.00", domain.SettlementPending),
	}

	balances := ledger.ComputeBalances(expenses, shares, settlements)

	sum := decimal.Zero
	positives := decimal.Zero
	negatives := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b)
		if b.IsPositive() {
			positives = positives.Add(b)
		} else {
			negatives = negatives.Add(b)
		}
	}
	assert.True(t, sum.IsZero(), "sum of balances: %s", sum)
	assert.True(t, positives.Equal(negatives.Neg()), "credit %s vs debit %s", positives, negatives.Neg())
}

func TestComputeBalances_Idempotent(t *testing.T) {
	expenses := []domain.Expense{expense("exp-1", "grp-1", "alice", "99.99")}
	shares := []domain.ExpenseShare{
		share("exp-1", "alice", "33.33"),
		share("exp-1", "bob", "33.33"),
		share("exp-1", "carol", "33.33"),
	}

	first := ledger.ComputeBalances(expenses, shares, nil)
	second := ledger.ComputeBalances(expenses, shares, nil)

	require.Equal(t, len(first), len(second))
	for userID, balance := range first {
		assert.True(t, balance.Equal(second[userID]), "user %s: %s vs %s", userID, balance, second[userID])
	}
}
