package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitkit/split_ledger_app/internal/core/domain"
	"github.com/splitkit/split_ledger_app/internal/core/ledger"
)

func debt(debtorID, creditorID, amount string) domain.Debt {
	return domain.Debt{
		GroupID:    "grp-1",
		DebtorID:   debtorID,
		CreditorID: creditorID,
		Amount:     d(amount),
		ComputedAt: computedAt,
	}
}

func totalAmount(debts []domain.Debt) decimal.Decimal {
	sum := decimal.Zero
	for _, dbt := range debts {
		sum = sum.Add(dbt.Amount)
	}
	return sum
}

func totalTransactionAmount(txns []domain.SimplifiedTransaction) decimal.Decimal {
	sum := decimal.Zero
	for _, txn := range txns {
		sum = sum.Add(txn.Amount)
	}
	return sum
}

func TestSimplifyDebts_ThreeMemberCycle(t *testing.T) {
	debts := []domain.Debt{
		debt("user1", "user2", "50.00"),
		debt("user2", "user3", "30.00"),
		debt("user3", "user1", "20.00"),
	}

	txns, summary := ledger.SimplifyDebts(debts)

	assert.LessOrEqual(t, len(txns), 2)
	assert.True(t, totalTransactionAmount(txns).LessThanOrEqual(d("50.00")),
		"total simplified amount: %s", totalTransactionAmount(txns))
	assert.Equal(t, 3, summary.OriginalCount)
	assert.Equal(t, len(txns), summary.SimplifiedCount)
	assert.Equal(t, 3-len(txns), summary.TransactionsSaved)
}

func TestSimplifyDebts_AlreadyOptimalUnchanged(t *testing.T) {
	// Two debtors owing the same creditor equally cannot be reduced further.
	debts := []domain.Debt{
		debt("user1", "user3", "50.00"),
		debt("user2", "user3", "50.00"),
	}

	txns, summary := ledger.SimplifyDebts(debts)

	require.Len(t, txns, 2)
	for _, txn := range txns {
		assert.Equal(t, "user3", txn.ToUserID)
		assert.True(t, txn.Amount.Equal(d("50.00")), "amount: %s", txn.Amount)
	}
	assert.Equal(t, 0, summary.TransactionsSaved)
}

func TestSimplifyDebts_EmptyInput(t *testing.T) {
	txns, summary := ledger.SimplifyDebts(nil)

	assert.Empty(t, txns)
	assert.Equal(t, domain.SimplificationSummary{}, summary)
}

func TestSimplifyDebts_MutualDebtsCancel(t *testing.T) {
	debts := []domain.Debt{
		debt("alice", "bob", "25.00"),
		debt("bob", "alice", "25.00"),
	}

	txns, summary := ledger.SimplifyDebts(debts)

	assert.Empty(t, txns)
	assert.Equal(t, 2, summary.OriginalCount)
	assert.Equal(t, 0, summary.SimplifiedCount)
	assert.Equal(t, 2, summary.TransactionsSaved)
}

func TestSimplifyDebts_Properties(t *testing.T) {
	tests := []struct {
		name  string
		debts []domain.Debt
	}{
		{
			name: "chain of four",
			debts: []domain.Debt{
				debt("u1", "u2", "10.00"),
				debt("u2", "u3", "10.00"),
				debt("u3", "u4", "10.00"),
			},
		},
		{
			name: "dense pairings",
			debts: []domain.Debt{
				debt("u1", "u2", "12.34"),
				debt("u1", "u3", "7.66"),
				debt("u2", "u3", "20.00"),
				debt("u4", "u1", "5.00"),
				debt("u4", "u2", "15.00"),
			},
		},
		{
			name: "fractional cents",
			debts: []domain.Debt{
				debt("u1", "u2", "33.33"),
				debt("u2", "u3", "33.34"),
				debt("u3", "u1", "33.33"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txns, summary := ledger.SimplifyDebts(tt.debts)

			// Simplified count never exceeds the original count.
			assert.LessOrEqual(t, summary.SimplifiedCount, summary.OriginalCount)

			// At most N-1 transactions for N members with nonzero net balance.
			nets := make(map[string]decimal.Decimal)
			for _, dbt := range tt.debts {
				nets[dbt.CreditorID] = nets[dbt.CreditorID].Add(dbt.Amount)
				nets[dbt.DebtorID] = nets[dbt.DebtorID].Sub(dbt.Amount)
			}
			nonzero := 0
			for _, net := range nets {
				if net.Abs().GreaterThan(d("0.01")) {
					nonzero++
				}
			}
			if nonzero > 0 {
				assert.LessOrEqual(t, len(txns), nonzero-1)
			} else {
				assert.Empty(t, txns)
			}

			// Money moved by the plan never exceeds the original flow.
			assert.True(t, totalTransactionAmount(txns).LessThanOrEqual(totalAmount(tt.debts)),
				"simplified total %s exceeds original %s", totalTransactionAmount(txns), totalAmount(tt.debts))

			// The plan reproduces the same net positions.
			implied := make(map[string]decimal.Decimal)
			for _, txn := range txns {
				implied[txn.ToUserID] = implied[txn.ToUserID].Add(txn.Amount)
				implied[txn.FromUserID] = implied[txn.FromUserID].Sub(txn.Amount)
			}
			for userID, net := range nets {
				diff := net.Sub(implied[userID]).Abs()
				assert.True(t, diff.LessThanOrEqual(d("0.01")), "user %s: net %s, implied %s", userID, net, implied[userID])
			}
		})
	}
}

func TestSimplifyDebts_MatchesMaterializerOutput(t *testing.T) {
	// Feeding the materializer's output back through the simplifier must not
	// change the plan: both passes apply the same greedy rule.
	balances := map[string]decimal.Decimal{
		"alice": d("80.00"),
		"bob":   d("-40.00"),
		"carol": d("-40.00"),
	}

	debts := ledger.MaterializeDebts("grp-1", balances, computedAt)
	txns, summary := ledger.SimplifyDebts(debts)

	require.Equal(t, len(debts), len(txns))
	for i := range debts {
		assert.Equal(t, debts[i].DebtorID, txns[i].FromUserID)
		assert.Equal(t, debts[i].CreditorID, txns[i].ToUserID)
		assert.True(t, debts[i].Amount.Equal(txns[i].Amount))
	}
	assert.Equal(t, 0, summary.TransactionsSaved)
}
