package dto

import (
	"github.com/shopspring/decimal"

	"github.com/splitkit/split_ledger_app/internal/core/domain"
)

// RecordSettlementRequest defines the data for recording a payment between
// two members. The settlement starts PENDING; a separate confirmation action
// moves it to CONFIRMED or CANCELLED.
type RecordSettlementRequest struct {
	PayerID string          `json:"payerID" binding:"required"`
	PayeeID string          `json:"payeeID" binding:"required,nefield=PayerID"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Note    string          `json:"note"`
}

// SettlementResponse defines the data returned for a settlement.
type SettlementResponse struct {
	SettlementID string          `json:"settlementID"`
	GroupID      string          `json:"groupID"`
	PayerID      string          `json:"payerID"`
	PayeeID      string          `json:"payeeID"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	Note         string          `json:"note,omitempty"`
}

// ListSettlementsResponse wraps the settlements of a group.
type ListSettlementsResponse struct {
	Settlements []SettlementResponse `json:"settlements"`
}

// ToSettlementResponse converts a domain.Settlement to its DTO.
func ToSettlementResponse(s *domain.Settlement) SettlementResponse {
	return SettlementResponse{
		SettlementID: s.SettlementID,
		GroupID:      s.GroupID,
		PayerID:      s.PayerID,
		PayeeID:      s.PayeeID,
		Amount:       s.Amount,
		Status:       string(s.Status),
		Note:         s.Note,
	}
}

// ToListSettlementsResponse converts domain Settlements to the list DTO.
func ToListSettlementsResponse(settlements []domain.Settlement) ListSettlementsResponse {
	responses := make([]SettlementResponse, len(settlements))
	for i, s := range settlements {
		responses[i] = ToSettlementResponse(&s)
	}
	return ListSettlementsResponse{Settlements: responses}
}
