package services

import (
	"context"

	"github.com/splitkit/split_ledger_app/internal/core/domain"
	"github.com/splitkit/split_ledger_app/internal/dto"
)

// SettlementSvcFacade defines operations for recording and resolving
// settlements between group members.
type SettlementSvcFacade interface {
	// RecordSettlement records a new PENDING settlement.
	RecordSettlement(ctx context.Context, groupID string, req dto.RecordSettlementRequest, recordingUserID string) (*domain.Settlement, error)

	// ConfirmSettlement transitions a PENDING settlement to CONFIRMED.
	ConfirmSettlement(ctx context.Context, groupID, settlementID, requestingUserID string) (*domain.Settlement, error)

	// CancelSettlement transitions a PENDING settlement to CANCELLED.
	CancelSettlement(ctx context.Context, groupID, settlementID, requestingUserID string) (*domain.Settlement, error)

	// ListSettlements retrieves the settlements recorded for a group.
	ListSettlements(ctx context.Context, groupID, requestingUserID string) ([]domain.Settlement, error)
}
