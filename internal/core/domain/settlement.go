package domain

import "github.com/shopspring/decimal"

// SettlementStatus indicates the state of a recorded payment between members.
type SettlementStatus string

const (
	SettlementPending   SettlementStatus = "PENDING"
	SettlementConfirmed SettlementStatus = "CONFIRMED"
	SettlementCancelled SettlementStatus = "CANCELLED"
)

// Settlement represents a real-world payment between two members that offsets
// computed debt once confirmed. Only CONFIRMED settlements participate in
// balance computation.
type Settlement struct {
	SettlementID string           `json:"settlementID"` // Primary Key (e.g., UUID)
	GroupID      string           `json:"groupID"`      // FK -> groups.group_id (Not Null)
	PayerID      string           `json:"payerID"`      // FK -> users.user_id, the member who paid
	PayeeID      string           `json:"payeeID"`      // FK -> users.user_id, the member who was paid
	Amount       decimal.Decimal  `json:"amount"`       // Positive, 2 decimal places
	Status       SettlementStatus `json:"status"`       // Default: PENDING
	Note         string           `json:"note"`         // Optional description
	AuditFields
}

// CanTransitionTo reports whether the settlement may move to the target status.
// Only PENDING settlements may be confirmed or cancelled; CONFIRMED and
// CANCELLED are terminal.
func (s Settlement) CanTransitionTo(target SettlementStatus) bool {
	if s.Status != SettlementPending {
		return false
	}
	return target == SettlementConfirmed || target == SettlementCancelled
}
