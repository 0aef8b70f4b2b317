package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/splitkit/split_ledger_app/internal/apperrors"
	"github.com/splitkit/split_ledger_app/internal/core/domain"
	portssvc "github.com/splitkit/split_ledger_app/internal/core/ports/services"
	"github.com/splitkit/split_ledger_app/internal/core/services"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mockExpenseRepo    *MockExpenseRepository
	mockSettlementRepo *MockSettlementRepository
	mockAuth           *MockGroupAuthorizer
	service            portssvc.LedgerSvcFacade

	groupID string
	userID  string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockExpenseRepo = new(MockExpenseRepository)
	suite.mockSettlementRepo = new(MockSettlementRepository)
	suite.mockAuth = new(MockGroupAuthorizer)
	suite.service = services.NewLedgerService(suite.mockExpenseRepo, suite.mockSettlementRepo, suite.mockAuth)
	suite.groupID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// stubHistory wires the three repository reads the ledger service performs.
func (suite *LedgerServiceTestSuite) stubHistory(ctx context.Context, expenses []domain.Expense, shares []domain.ExpenseShare, settlements []domain.Settlement) {
	suite.mockExpenseRepo.On("FindAllExpensesByGroup", ctx, suite.groupID).Return(expenses, nil).Once()
	suite.mockExpenseRepo.On("FindSharesByGroup", ctx, suite.groupID).Return(shares, nil).Once()
	suite.mockSettlementRepo.On("ListSettlementsByGroup", ctx, suite.groupID).Return(settlements, nil).Once()
}

func (suite *LedgerServiceTestSuite) authorize(ctx context.Context) {
	suite.mockAuth.On("AuthorizeUserAction", ctx, suite.userID, suite.groupID, domain.RoleReadOnly).Return(nil)
}

func (suite *LedgerServiceTestSuite) TestGetGroupBalances_AppliesConfirmedSettlementsOnly() {
	ctx := context.Background()
	alice := "user-a"
	bob := "user-b"
	expenseID := uuid.NewString()

	expenses := []domain.Expense{{
		ExpenseID: expenseID,
		GroupID:   suite.groupID,
		Amount:    decimal.RequireFromString("100.00"),
		PaidBy:    alice,
		SplitType: domain.SplitEven,
	}}
	shares := []domain.ExpenseShare{
		{ExpenseID: expenseID, UserID: alice, Amount: decimal.RequireFromString("50.00")},
		{ExpenseID: expenseID, UserID: bob, Amount: decimal.RequireFromString("50.00")},
	}
	settlements := []domain.Settlement{
		{GroupID: suite.groupID, PayerID: bob, PayeeID: alice, Amount: decimal.RequireFromString("30.00"), Status: domain.SettlementConfirmed},
		{GroupID: suite.groupID, PayerID: bob, PayeeID: alice, Amount: decimal.RequireFromString("20.00"), Status: domain.SettlementPending},
	}

	suite.authorize(ctx)
	suite.stubHistory(ctx, expenses, shares, settlements)

	balances, err := suite.service.GetGroupBalances(ctx, suite.groupID, suite.userID)

	suite.Require().NoError(err)
	// alice: +100 -50 -30 = 20; bob: -50 +30 = -20. The pending 20 is ignored.
	suite.True(balances[alice].Equal(decimal.RequireFromString("20.00")))
	suite.True(balances[bob].Equal(decimal.RequireFromString("-20.00")))
}

func (suite *LedgerServiceTestSuite) TestGetGroupBalances_Unauthorized() {
	ctx := context.Background()

	suite.mockAuth.On("AuthorizeUserAction", ctx, suite.userID, suite.groupID, domain.RoleReadOnly).
		Return(apperrors.ErrForbidden).Once()

	balances, err := suite.service.GetGroupBalances(ctx, suite.groupID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(balances)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "FindAllExpensesByGroup", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestGetGroupDebts_SingleCreditor() {
	ctx := context.Background()
	alice := "user-a"
	bob := "user-b"
	carol := "user-c"
	expenseID := uuid.NewString()

	expenses := []domain.Expense{{
		ExpenseID: expenseID,
		GroupID:   suite.groupID,
		Amount:    decimal.RequireFromString("120.00"),
		PaidBy:    alice,
		SplitType: domain.SplitEven,
	}}
	shares := []domain.ExpenseShare{
		{ExpenseID: expenseID, UserID: alice, Amount: decimal.RequireFromString("40.00")},
		{ExpenseID: expenseID, UserID: bob, Amount: decimal.RequireFromString("40.00")},
		{ExpenseID: expenseID, UserID: carol, Amount: decimal.RequireFromString("40.00")},
	}

	suite.authorize(ctx)
	suite.stubHistory(ctx, expenses, shares, nil)

	debts, err := suite.service.GetGroupDebts(ctx, suite.groupID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(debts, 2)
	for _, debt := range debts {
		suite.Equal(suite.groupID, debt.GroupID)
		suite.Equal(alice, debt.CreditorID)
		suite.True(debt.Amount.Equal(decimal.RequireFromString("40.00")))
	}
}

func (suite *LedgerServiceTestSuite) TestGetGroupDebts_NoExpensesMeansNoDebts() {
	ctx := context.Background()

	suite.authorize(ctx)
	suite.stubHistory(ctx, []domain.Expense{}, []domain.ExpenseShare{}, []domain.Settlement{})

	debts, err := suite.service.GetGroupDebts(ctx, suite.groupID, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(debts)
}

func (suite *LedgerServiceTestSuite) TestSimplifyGroupDebts_ReportsSavings() {
	ctx := context.Background()
	u1 := "user-1"
	u2 := "user-2"
	u3 := "user-3"

	// Three expenses forming a cycle of debts: u1->u2, u2->u3, u3->u1.
	e1, e2, e3 := uuid.NewString(), uuid.NewString(), uuid.NewString()
	expenses := []domain.Expense{
		{ExpenseID: e1, GroupID: suite.groupID, Amount: decimal.RequireFromString("40.00"), PaidBy: u2},
		{ExpenseID: e2, GroupID: suite.groupID, Amount: decimal.RequireFromString("30.00"), PaidBy: u3},
		{ExpenseID: e3, GroupID: suite.groupID, Amount: decimal.RequireFromString("20.00"), PaidBy: u1},
	}
	shares := []domain.ExpenseShare{
		{ExpenseID: e1, UserID: u1, Amount: decimal.RequireFromString("40.00")},
		{ExpenseID: e2, UserID: u2, Amount: decimal.RequireFromString("30.00")},
		{ExpenseID: e3, UserID: u3, Amount: decimal.RequireFromString("20.00")},
	}

	suite.authorize(ctx)
	suite.stubHistory(ctx, expenses, shares, nil)

	transactions, summary, err := suite.service.SimplifyGroupDebts(ctx, suite.groupID, suite.userID)

	suite.Require().NoError(err)
	// Nets: u1 = -40+20 = -20, u2 = +40-30 = +10, u3 = +30-20 = +10.
	suite.Equal(summary.OriginalCount, len(transactions)+summary.TransactionsSaved)
	suite.LessOrEqual(len(transactions), summary.OriginalCount)

	total := decimal.Zero
	for _, txn := range transactions {
		suite.Equal(u1, txn.FromUserID)
		total = total.Add(txn.Amount)
	}
	suite.True(total.Equal(decimal.RequireFromString("20.00")))
}

func (suite *LedgerServiceTestSuite) TestSimplifyDebtList_StatelessWhatIf() {
	ctx := context.Background()
	now := time.Now()
	debts := []domain.Debt{
		{GroupID: "adhoc", DebtorID: "a", CreditorID: "b", Amount: decimal.RequireFromString("10.00"), ComputedAt: now},
		{GroupID: "adhoc", DebtorID: "b", CreditorID: "a", Amount: decimal.RequireFromString("10.00"), ComputedAt: now},
	}

	transactions, summary := suite.service.SimplifyDebtList(ctx, debts)

	suite.Empty(transactions)
	suite.Equal(2, summary.OriginalCount)
	suite.Equal(0, summary.SimplifiedCount)
	suite.Equal(2, summary.TransactionsSaved)
	suite.mockExpenseRepo.AssertNotCalled(suite.T(), "FindAllExpensesByGroup", mock.Anything, mock.Anything)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
