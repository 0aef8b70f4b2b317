package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/splitkit/split_ledger_app/internal/apperrors"
	"github.com/splitkit/split_ledger_app/internal/core/domain"
	portsrepo "github.com/splitkit/split_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/splitkit/split_ledger_app/internal/core/ports/services"
	"github.com/splitkit/split_ledger_app/internal/dto"
	"github.com/splitkit/split_ledger_app/internal/middleware"
)

// settlementService records payments between members and drives their
// PENDING -> CONFIRMED/CANCELLED lifecycle.
type settlementService struct {
	settlementRepo portsrepo.SettlementRepositoryFacade
	groupAuth      portssvc.GroupAuthorizerSvc
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(settlementRepo portsrepo.SettlementRepositoryFacade, groupAuth portssvc.GroupAuthorizerSvc) portssvc.SettlementSvcFacade {
	return &settlementService{settlementRepo: settlementRepo, groupAuth: groupAuth}
}

// Ensure settlementService implements the portssvc.SettlementSvcFacade interface
var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// RecordSettlement records a new PENDING settlement between two members.
func (s *settlementService) RecordSettlement(ctx context.Context, groupID string, req dto.RecordSettlementRequest, recordingUserID string) (*domain.Settlement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.groupAuth.AuthorizeUserAction(ctx, recordingUserID, groupID, domain.RoleMember); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: settlement amount must be positive", apperrors.ErrValidation)
	}
	if req.PayerID == req.PayeeID {
		return nil, fmt.Errorf("%w: payer and payee must differ", apperrors.ErrValidation)
	}

	now := time.Now()
	settlement := domain.Settlement{
		SettlementID: uuid.NewString(),
		GroupID:      groupID,
		PayerID:      req.PayerID,
		PayeeID:      req.PayeeID,
		Amount:       req.Amount.Round(2),
		Status:       domain.SettlementPending,
		Note:         req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     recordingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: recordingUserID,
		},
	}

	if err := s.settlementRepo.SaveSettlement(ctx, settlement); err != nil {
		logger.Error("Failed to save settlement", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return nil, fmt.Errorf("failed to record settlement: %w", err)
	}

	logger.Info("Settlement recorded",
		slog.String("settlement_id", settlement.SettlementID),
		slog.String("group_id", groupID),
		slog.String("amount", settlement.Amount.String()))
	return &settlement, nil
}

// ConfirmSettlement transitions a PENDING settlement to CONFIRMED. Only the
// payee (or a group admin) can confirm that they received the payment.
func (s *settlementService) ConfirmSettlement(ctx context.Context, groupID, settlementID, requestingUserID string) (*domain.Settlement, error) {
	return s.transitionSettlement(ctx, groupID, settlementID, requestingUserID, domain.SettlementConfirmed)
}

// CancelSettlement transitions a PENDING settlement to CANCELLED.
func (s *settlementService) CancelSettlement(ctx context.Context, groupID, settlementID, requestingUserID string) (*domain.Settlement, error) {
	return s.transitionSettlement(ctx, groupID, settlementID, requestingUserID, domain.SettlementCancelled)
}

func (s *settlementService) transitionSettlement(ctx context.Context, groupID, settlementID, requestingUserID string, target domain.SettlementStatus) (*domain.Settlement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.groupAuth.AuthorizeUserAction(ctx, requestingUserID, groupID, domain.RoleMember); err != nil {
		return nil, err
	}

	settlement, err := s.settlementRepo.FindSettlementByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if settlement.GroupID != groupID {
		return nil, apperrors.ErrNotFound
	}

	// Confirming receipt is the payee's call; cancelling is open to either
	// party or whoever recorded it.
	switch target {
	case domain.SettlementConfirmed:
		if requestingUserID != settlement.PayeeID {
			if err := s.groupAuth.AuthorizeUserAction(ctx, requestingUserID, groupID, domain.RoleAdmin); err != nil {
				return nil, apperrors.ErrForbidden
			}
		}
	case domain.SettlementCancelled:
		if requestingUserID != settlement.PayerID && requestingUserID != settlement.PayeeID && requestingUserID != settlement.CreatedBy {
			if err := s.groupAuth.AuthorizeUserAction(ctx, requestingUserID, groupID, domain.RoleAdmin); err != nil {
				return nil, apperrors.ErrForbidden
			}
		}
	}

	if !settlement.CanTransitionTo(target) {
		logger.Warn("Invalid settlement transition",
			slog.String("settlement_id", settlementID),
			slog.String("from", string(settlement.Status)),
			slog.String("to", string(target)))
		return nil, fmt.Errorf("%w: settlement %s is %s and cannot become %s",
			apperrors.ErrValidation, settlementID, settlement.Status, target)
	}

	now := time.Now()
	if err := s.settlementRepo.UpdateSettlementStatus(ctx, settlementID, target, requestingUserID, now); err != nil {
		logger.Error("Failed to update settlement status", slog.String("error", err.Error()), slog.String("settlement_id", settlementID))
		return nil, fmt.Errorf("failed to update settlement %s: %w", settlementID, err)
	}

	settlement.Status = target
	settlement.LastUpdatedAt = now
	settlement.LastUpdatedBy = requestingUserID
	logger.Info("Settlement status updated", slog.String("settlement_id", settlementID), slog.String("status", string(target)))
	return settlement, nil
}

// ListSettlements retrieves the settlements recorded for a group.
func (s *settlementService) ListSettlements(ctx context.Context, groupID, requestingUserID string) ([]domain.Settlement, error) {
	if err := s.groupAuth.AuthorizeUserAction(ctx, requestingUserID, groupID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	settlements, err := s.settlementRepo.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements for group %s: %w", groupID, err)
	}
	if settlements == nil {
		return []domain.Settlement{}, nil
	}
	return settlements, nil
}
