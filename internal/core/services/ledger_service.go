package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitkit/split_ledger_app/internal/core/domain"
	"github.com/splitkit/split_ledger_app/internal/core/ledger"
	portsrepo "github.com/splitkit/split_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/splitkit/split_ledger_app/internal/core/ports/services"
	"github.com/splitkit/split_ledger_app/internal/middleware"
)

// ledgerService derives balances and settlement plans from a group's stored
// expense and settlement history. Results are computed fresh on every call.
type ledgerService struct {
	expenseRepo    portsrepo.ExpenseRepositoryFacade
	settlementRepo portsrepo.SettlementRepositoryFacade
	groupAuth      portssvc.GroupAuthorizerSvc
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(expenseRepo portsrepo.ExpenseRepositoryFacade, settlementRepo portsrepo.SettlementRepositoryFacade, groupAuth portssvc.GroupAuthorizerSvc) portssvc.LedgerSvcFacade {
	return &ledgerService{
		expenseRepo:    expenseRepo,
		settlementRepo: settlementRepo,
		groupAuth:      groupAuth,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetGroupBalances computes the signed net balance per member from the full
// group history. Positive means the member is owed money.
func (s *ledgerService) GetGroupBalances(ctx context.Context, groupID, requestingUserID string) (map[string]decimal.Decimal, error) {
	if err := s.groupAuth.AuthorizeUserAction(ctx, requestingUserID, groupID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	expenses, shares, settlements, err := s.loadGroupHistory(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return ledger.ComputeBalances(expenses, shares, settlements), nil
}

// GetGroupDebts computes the pairwise debts implied by the group history.
func (s *ledgerService) GetGroupDebts(ctx context.Context, groupID, requestingUserID string) ([]domain.Debt, error) {
	if err := s.groupAuth.AuthorizeUserAction(ctx, requestingUserID, groupID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	expenses, shares, settlements, err := s.loadGroupHistory(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances := ledger.ComputeBalances(expenses, shares, settlements)
	return ledger.MaterializeDebts(groupID, balances, time.Now()), nil
}

// SimplifyGroupDebts computes the group's debts and reduces them to a smaller
// settlement plan, reporting how many transactions the reduction saved.
func (s *ledgerService) SimplifyGroupDebts(ctx context.Context, groupID, requestingUserID string) ([]domain.SimplifiedTransaction, domain.SimplificationSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	debts, err := s.GetGroupDebts(ctx, groupID, requestingUserID)
	if err != nil {
		return nil, domain.SimplificationSummary{}, err
	}

	transactions, summary := ledger.SimplifyDebts(debts)
	logger.Info("Group debts simplified",
		slog.String("group_id", groupID),
		slog.Int("original_count", summary.OriginalCount),
		slog.Int("simplified_count", summary.SimplifiedCount))
	return transactions, summary, nil
}

// SimplifyDebtList reduces a caller-supplied debt list without touching any
// stored state.
func (s *ledgerService) SimplifyDebtList(_ context.Context, debts []domain.Debt) ([]domain.SimplifiedTransaction, domain.SimplificationSummary) {
	return ledger.SimplifyDebts(debts)
}

func (s *ledgerService) loadGroupHistory(ctx context.Context, groupID string) ([]domain.Expense, []domain.ExpenseShare, []domain.Settlement, error) {
	expenses, err := s.expenseRepo.FindAllExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load expenses for group %s: %w", groupID, err)
	}
	shares, err := s.expenseRepo.FindSharesByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load expense shares for group %s: %w", groupID, err)
	}
	settlements, err := s.settlementRepo.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load settlements for group %s: %w", groupID, err)
	}
	return expenses, shares, settlements, nil
}
