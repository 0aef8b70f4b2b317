package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitkit/split_ledger_app/internal/apperrors"
	"github.com/splitkit/split_ledger_app/internal/core/domain"
	"github.com/splitkit/split_ledger_app/internal/core/ledger"
	portsrepo "github.com/splitkit/split_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/splitkit/split_ledger_app/internal/core/ports/services"
	"github.com/splitkit/split_ledger_app/internal/dto"
	"github.com/splitkit/split_ledger_app/internal/middleware"
)

// expenseService provides expense recording with share computation.
type expenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
	groupAuth   portssvc.GroupAuthorizerSvc
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, groupAuth portssvc.GroupAuthorizerSvc) portssvc.ExpenseSvcFacade {
	return &expenseService{expenseRepo: expenseRepo, groupAuth: groupAuth}
}

// Ensure expenseService implements the portssvc.ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

// GetExpenseByID retrieves an expense and its shares.
func (s *expenseService) GetExpenseByID(ctx context.Context, groupID, expenseID, requestingUserID string) (*domain.Expense, []domain.ExpenseShare, error) {
	if err := s.groupAuth.AuthorizeUserAction(ctx, requestingUserID, groupID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, nil, err
	}
	if expense.GroupID != groupID {
		return nil, nil, apperrors.ErrNotFound
	}

	shares, err := s.expenseRepo.FindSharesByExpenseID(ctx, expenseID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load shares for expense %s: %w", expenseID, err)
	}
	return expense, shares, nil
}

// ListExpenses retrieves a token-paginated page of a group's expenses.
func (s *expenseService) ListExpenses(ctx context.Context, groupID, requestingUserID string, params dto.ListExpensesParams) (*dto.ListExpensesResponse, error) {
	if err := s.groupAuth.AuthorizeUserAction(ctx, requestingUserID, groupID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	expenses, nextToken, err := s.expenseRepo.ListExpensesByGroup(ctx, groupID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for group %s: %w", groupID, err)
	}

	return &dto.ListExpensesResponse{
		Expenses:  dto.ToExpenseResponses(expenses),
		NextToken: nextToken,
	}, nil
}

// CreateExpense validates the request, computes the per-participant shares
// and persists the expense atomically with its shares.
func (s *expenseService) CreateExpense(ctx context.Context, groupID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, []domain.ExpenseShare, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.groupAuth.AuthorizeUserAction(ctx, creatorUserID, groupID, domain.RoleMember); err != nil {
		return nil, nil, err
	}

	expense, shares, err := buildExpense(groupID, req, creatorUserID, time.Now())
	if err != nil {
		return nil, nil, err
	}

	if err := s.expenseRepo.SaveExpense(ctx, *expense, shares); err != nil {
		logger.Error("Failed to save expense", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return nil, nil, fmt.Errorf("failed to create expense: %w", err)
	}

	logger.Info("Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("group_id", groupID),
		slog.String("amount", expense.Amount.String()))
	return expense, shares, nil
}

// UpdateExpense replaces an expense and its shares. Only the creator may
// edit an expense.
func (s *expenseService) UpdateExpense(ctx context.Context, groupID, expenseID string, req dto.CreateExpenseRequest, requestingUserID string) (*domain.Expense, []domain.ExpenseShare, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.groupAuth.AuthorizeUserAction(ctx, requestingUserID, groupID, domain.RoleMember); err != nil {
		return nil, nil, err
	}

	existing, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, nil, err
	}
	if existing.GroupID != groupID {
		return nil, nil, apperrors.ErrNotFound
	}
	if existing.CreatedBy != requestingUserID {
		logger.Warn("User attempted to edit an expense they did not create",
			slog.String("user_id", requestingUserID), slog.String("expense_id", expenseID))
		return nil, nil, apperrors.ErrForbidden
	}

	expense, shares, err := buildExpense(groupID, req, existing.CreatedBy, time.Now())
	if err != nil {
		return nil, nil, err
	}
	expense.ExpenseID = existing.ExpenseID
	expense.CreatedAt = existing.CreatedAt
	expense.LastUpdatedBy = requestingUserID
	for i := range shares {
		shares[i].ExpenseID = existing.ExpenseID
	}

	if err := s.expenseRepo.UpdateExpense(ctx, *expense, shares); err != nil {
		logger.Error("Failed to update expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return nil, nil, fmt.Errorf("failed to update expense %s: %w", expenseID, err)
	}
	return expense, shares, nil
}

// DeleteExpense removes an expense and its shares. Only the creator may
// delete an expense.
func (s *expenseService) DeleteExpense(ctx context.Context, groupID, expenseID, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.groupAuth.AuthorizeUserAction(ctx, requestingUserID, groupID, domain.RoleMember); err != nil {
		return err
	}

	existing, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if existing.GroupID != groupID {
		return apperrors.ErrNotFound
	}
	if existing.CreatedBy != requestingUserID {
		return apperrors.ErrForbidden
	}

	if err := s.expenseRepo.DeleteExpense(ctx, expenseID); err != nil {
		logger.Error("Failed to delete expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	logger.Info("Expense deleted", slog.String("expense_id", expenseID), slog.String("group_id", groupID))
	return nil
}

// buildExpense validates a create/update request and materializes the expense
// with its computed shares. Share amounts always sum to the expense amount to
// the cent.
func buildExpense(groupID string, req dto.CreateExpenseRequest, creatorUserID string, now time.Time) (*domain.Expense, []domain.ExpenseShare, error) {
	if !req.Amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}
	amount := req.Amount.Round(2)

	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		GroupID:     groupID,
		Description: req.Description,
		Amount:      amount,
		PaidBy:      req.PaidBy,
		SplitType:   domain.SplitType(req.SplitType),
		OccurredAt:  req.OccurredAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	var shares []domain.ExpenseShare
	switch expense.SplitType {
	case domain.SplitEven:
		if len(req.Participants) == 0 {
			return nil, nil, fmt.Errorf("%w: an even split needs at least one participant", apperrors.ErrValidation)
		}
		if hasDuplicateUser(req.Participants) {
			return nil, nil, fmt.Errorf("%w: duplicate participant in even split", apperrors.ErrValidation)
		}
		amounts := ledger.EvenShares(amount, len(req.Participants))
		for i, userID := range req.Participants {
			shares = append(shares, newShare(expense, userID, amounts[i], nil, now))
		}
	case domain.SplitCustom:
		if len(req.Shares) == 0 {
			return nil, nil, fmt.Errorf("%w: a custom split needs at least one share", apperrors.ErrValidation)
		}
		userIDs := make([]string, len(req.Shares))
		percentages := make([]decimal.Decimal, len(req.Shares))
		for i, in := range req.Shares {
			userIDs[i] = in.UserID
			percentages[i] = in.Percentage
		}
		if hasDuplicateUser(userIDs) {
			return nil, nil, fmt.Errorf("%w: duplicate participant in custom split", apperrors.ErrValidation)
		}
		amounts := ledger.CustomShares(amount, percentages)
		for i, in := range req.Shares {
			pct := in.Percentage
			shares = append(shares, newShare(expense, in.UserID, amounts[i], &pct, now))
		}
	default:
		return nil, nil, fmt.Errorf("%w: unknown split type %q", apperrors.ErrValidation, req.SplitType)
	}

	return &expense, shares, nil
}

func newShare(expense domain.Expense, userID string, amount decimal.Decimal, percentage *decimal.Decimal, now time.Time) domain.ExpenseShare {
	return domain.ExpenseShare{
		ShareID:    uuid.NewString(),
		ExpenseID:  expense.ExpenseID,
		UserID:     userID,
		Amount:     amount,
		Percentage: percentage,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     expense.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: expense.CreatedBy,
		},
	}
}

func hasDuplicateUser(userIDs []string) bool {
	seen := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
