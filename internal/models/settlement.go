package models

import "github.com/shopspring/decimal"

// Settlement represents a row in the settlements table.
type Settlement struct {
	SettlementID string          `db:"settlement_id"`
	GroupID      string          `db:"group_id"`
	PayerID      string          `db:"payer_id"`
	PayeeID      string          `db:"payee_id"`
	Amount       decimal.Decimal `db:"amount"`
	Status       string          `db:"status"`
	Note         string          `db:"note"`
	AuditFields
}
