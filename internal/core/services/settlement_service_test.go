package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/splitkit/split_ledger_app/internal/apperrors"
	"github.com/splitkit/split_ledger_app/internal/core/domain"
	portssvc "github.com/splitkit/split_ledger_app/internal/core/ports/services"
	"github.com/splitkit/split_ledger_app/internal/core/services"
	"github.com/splitkit/split_ledger_app/internal/dto"
)

type SettlementServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSettlementRepository
	mockAuth *MockGroupAuthorizer
	service  portssvc.SettlementSvcFacade
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSettlementRepository)
	suite.mockAuth = new(MockGroupAuthorizer)
	suite.service = services.NewSettlementService(suite.mockRepo, suite.mockAuth)
}

func (suite *SettlementServiceTestSuite) TestRecordSettlement_StartsPending() {
	ctx := context.Background()
	groupID := uuid.NewString()
	payer := uuid.NewString()
	payee := uuid.NewString()
	req := dto.RecordSettlementRequest{
		PayerID: payer,
		PayeeID: payee,
		Amount:  decimal.RequireFromString("25.50"),
		Note:    "venmo",
	}

	suite.mockAuth.On("AuthorizeUserAction", ctx, payer, groupID, domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("SaveSettlement", ctx, mock.MatchedBy(func(s domain.Settlement) bool {
		return s.Status == domain.SettlementPending && s.PayerID == payer && s.PayeeID == payee &&
			s.Amount.Equal(decimal.RequireFromString("25.50"))
	})).Return(nil).Once()

	settlement, err := suite.service.RecordSettlement(ctx, groupID, req, payer)

	suite.Require().NoError(err)
	suite.Equal(domain.SettlementPending, settlement.Status)
	suite.Equal("venmo", settlement.Note)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestRecordSettlement_NonPositiveAmountRejected() {
	ctx := context.Background()
	groupID := uuid.NewString()
	payer := uuid.NewString()
	req := dto.RecordSettlementRequest{
		PayerID: payer,
		PayeeID: uuid.NewString(),
		Amount:  decimal.RequireFromString("-5"),
	}

	suite.mockAuth.On("AuthorizeUserAction", ctx, payer, groupID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.RecordSettlement(ctx, groupID, req, payer)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSettlement", mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestRecordSettlement_SelfPaymentRejected() {
	ctx := context.Background()
	groupID := uuid.NewString()
	payer := uuid.NewString()
	req := dto.RecordSettlementRequest{
		PayerID: payer,
		PayeeID: payer,
		Amount:  decimal.RequireFromString("10"),
	}

	suite.mockAuth.On("AuthorizeUserAction", ctx, payer, groupID, domain.RoleMember).Return(nil).Once()

	_, err := suite.service.RecordSettlement(ctx, groupID, req, payer)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SettlementServiceTestSuite) TestConfirmSettlement_PayeeConfirms() {
	ctx := context.Background()
	groupID := uuid.NewString()
	payer := uuid.NewString()
	payee := uuid.NewString()
	settlementID := uuid.NewString()

	suite.mockAuth.On("AuthorizeUserAction", ctx, payee, groupID, domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("FindSettlementByID", ctx, settlementID).Return(&domain.Settlement{
		SettlementID: settlementID,
		GroupID:      groupID,
		PayerID:      payer,
		PayeeID:      payee,
		Status:       domain.SettlementPending,
	}, nil).Once()
	suite.mockRepo.On("UpdateSettlementStatus", ctx, settlementID, domain.SettlementConfirmed, payee, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	settlement, err := suite.service.ConfirmSettlement(ctx, groupID, settlementID, payee)

	suite.Require().NoError(err)
	suite.Equal(domain.SettlementConfirmed, settlement.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestConfirmSettlement_PayerCannotConfirm() {
	ctx := context.Background()
	groupID := uuid.NewString()
	payer := uuid.NewString()
	payee := uuid.NewString()
	settlementID := uuid.NewString()

	suite.mockAuth.On("AuthorizeUserAction", ctx, payer, groupID, domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("FindSettlementByID", ctx, settlementID).Return(&domain.Settlement{
		SettlementID: settlementID,
		GroupID:      groupID,
		PayerID:      payer,
		PayeeID:      payee,
		Status:       domain.SettlementPending,
	}, nil).Once()
	suite.mockAuth.On("AuthorizeUserAction", ctx, payer, groupID, domain.RoleAdmin).
		Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.ConfirmSettlement(ctx, groupID, settlementID, payer)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateSettlementStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestConfirmSettlement_ConfirmedIsTerminal() {
	ctx := context.Background()
	groupID := uuid.NewString()
	payee := uuid.NewString()
	settlementID := uuid.NewString()

	suite.mockAuth.On("AuthorizeUserAction", ctx, payee, groupID, domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("FindSettlementByID", ctx, settlementID).Return(&domain.Settlement{
		SettlementID: settlementID,
		GroupID:      groupID,
		PayerID:      uuid.NewString(),
		PayeeID:      payee,
		Status:       domain.SettlementConfirmed,
	}, nil).Once()

	_, err := suite.service.ConfirmSettlement(ctx, groupID, settlementID, payee)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SettlementServiceTestSuite) TestCancelSettlement_PayerMayCancel() {
	ctx := context.Background()
	groupID := uuid.NewString()
	payer := uuid.NewString()
	settlementID := uuid.NewString()

	suite.mockAuth.On("AuthorizeUserAction", ctx, payer, groupID, domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("FindSettlementByID", ctx, settlementID).Return(&domain.Settlement{
		SettlementID: settlementID,
		GroupID:      groupID,
		PayerID:      payer,
		PayeeID:      uuid.NewString(),
		Status:       domain.SettlementPending,
	}, nil).Once()
	suite.mockRepo.On("UpdateSettlementStatus", ctx, settlementID, domain.SettlementCancelled, payer, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	settlement, err := suite.service.CancelSettlement(ctx, groupID, settlementID, payer)

	suite.Require().NoError(err)
	suite.Equal(domain.SettlementCancelled, settlement.Status)
}

func (suite *SettlementServiceTestSuite) TestTransition_WrongGroupIsNotFound() {
	ctx := context.Background()
	groupID := uuid.NewString()
	payee := uuid.NewString()
	settlementID := uuid.NewString()

	suite.mockAuth.On("AuthorizeUserAction", ctx, payee, groupID, domain.RoleMember).Return(nil).Once()
	suite.mockRepo.On("FindSettlementByID", ctx, settlementID).Return(&domain.Settlement{
		SettlementID: settlementID,
		GroupID:      uuid.NewString(), // recorded in another group
		PayeeID:      payee,
		Status:       domain.SettlementPending,
	}, nil).Once()

	_, err := suite.service.ConfirmSettlement(ctx, groupID, settlementID, payee)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SettlementServiceTestSuite) TestListSettlements_EmptyIsNotNil() {
	ctx := context.Background()
	groupID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAuth.On("AuthorizeUserAction", ctx, userID, groupID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockRepo.On("ListSettlementsByGroup", ctx, groupID).Return([]domain.Settlement(nil), nil).Once()

	settlements, err := suite.service.ListSettlements(ctx, groupID, userID)

	suite.Require().NoError(err)
	suite.NotNil(settlements)
	suite.Empty(settlements)
}

func TestSettlementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
