package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

// transfer is one payment produced by the greedy matcher. Amounts are kept
// unrounded here; callers round to 2 decimals at emission time so rounding
// error never compounds through the loop.
type transfer struct {
	from   string
	to     string
	amount decimal.Decimal
}

type position struct {
	userID    string
	remaining decimal.Decimal
}

// matchGreedy reduces a balance map to a list of transfers using the greedy
// largest-creditor/largest-debtor rule. Members whose balance is within one
// cent of zero are treated as settled and excluded. The result is
// deterministic: positions are ordered by balance with ties broken by user ID
// (a Go map has no insertion order to fall back on).
//
// The heuristic does not guarantee a globally minimal transaction count; it
// does guarantee at most N-1 transfers for N members with nonzero balance,
// since every inner step fully clears one side of the pair.
func matchGreedy(balances map[string]decimal.Decimal) []transfer {
	var creditors, debtors []position
	for userID, balance := range balances {
		switch {
		case balance.GreaterThan(settledEpsilon):
			creditors = append(creditors, position{userID: userID, remaining: balance})
		case balance.LessThan(settledEpsilon.Neg()):
			debtors = append(debtors, position{userID: userID, remaining: balance})
		}
	}

	// Creditors descending by balance, debtors ascending (most negative first).
	sort.Slice(creditors, func(i, j int) bool {
		if !creditors[i].remaining.Equal(creditors[j].remaining) {
			return creditors[i].remaining.GreaterThan(creditors[j].remaining)
		}
		return creditors[i].userID < creditors[j].userID
	})
	sort.Slice(debtors, func(i, j int) bool {
		if !debtors[i].remaining.Equal(debtors[j].remaining) {
			return debtors[i].remaining.LessThan(debtors[j].remaining)
		}
		return debtors[i].userID < debtors[j].userID
	})

	var transfers []transfer
	for di := range debtors {
		owed := debtors[di].remaining.Neg()
		for ci := range creditors {
			if owed.LessThan(settledEpsilon) {
				break
			}
			if creditors[ci].remaining.LessThan(settledEpsilon) {
				continue // creditor already exhausted
			}
			settled := decimal.Min(owed, creditors[ci].remaining)
			transfers = append(transfers, transfer{
				from:   debtors[di].userID,
				to:     creditors[ci].userID,
				amount: settled,
			})
			owed = owed.Sub(settled)
			creditors[ci].remaining = creditors[ci].remaining.Sub(settled)
		}
	}
	return transfers
}
