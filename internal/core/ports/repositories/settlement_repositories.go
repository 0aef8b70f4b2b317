package repositories

import (
	"context"
	"time"

	"github.com/splitkit/split_ledger_app/internal/core/domain"
)

// SettlementReader defines read operations for settlement data
type SettlementReader interface {
	// FindSettlementByID retrieves a specific settlement by its identifier.
	FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error)

	// ListSettlementsByGroup retrieves all settlements recorded for a group.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]domain.Settlement, error)
}

// SettlementWriter defines write operations for settlement data
type SettlementWriter interface {
	// SaveSettlement persists a new settlement.
	SaveSettlement(ctx context.Context, settlement domain.Settlement) error

	// UpdateSettlementStatus updates the status of an existing settlement.
	UpdateSettlementStatus(ctx context.Context, settlementID string, status domain.SettlementStatus, updatedByUserID string, updatedAt time.Time) error
}

// SettlementRepositoryFacade combines all settlement-related repository interfaces
type SettlementRepositoryFacade interface {
	SettlementReader
	SettlementWriter
}
