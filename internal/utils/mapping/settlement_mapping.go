package mapping

import (
	"github.com/splitkit/split_ledger_app/internal/core/domain"
	"github.com/splitkit/split_ledger_app/internal/models"
)

// ToModelSettlement converts a domain Settlement to a model Settlement
func ToModelSettlement(d domain.Settlement) models.Settlement {
	return models.Settlement{
		SettlementID: d.SettlementID,
		GroupID:      d.GroupID,
		PayerID:      d.PayerID,
		PayeeID:      d.PayeeID,
		Amount:       d.Amount,
		Status:       string(d.Status),
		Note:         d.Note,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSettlement converts a model Settlement to a domain Settlement
func ToDomainSettlement(m models.Settlement) domain.Settlement {
	return domain.Settlement{
		SettlementID: m.SettlementID,
		GroupID:      m.GroupID,
		PayerID:      m.PayerID,
		PayeeID:      m.PayeeID,
		Amount:       m.Amount,
		Status:       domain.SettlementStatus(m.Status),
		Note:         m.Note,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSettlementSlice converts model Settlements to domain Settlements
func ToDomainSettlementSlice(ms []models.Settlement) []domain.Settlement {
	ds := make([]domain.Settlement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSettlement(m)
	}
	return ds
}
