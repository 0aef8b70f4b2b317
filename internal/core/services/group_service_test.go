package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/splitkit/split_ledger_app/internal/apperrors"
	"github.com/splitkit/split_ledger_app/internal/core/domain"
	portssvc "github.com/splitkit/split_ledger_app/internal/core/ports/services"
	"github.com/splitkit/split_ledger_app/internal/core/services"
)

type GroupServiceTestSuite struct {
	suite.Suite
	mockGroupRepo *MockGroupRepository
	mockUserRepo  *MockUserRepository
	service       portssvc.GroupSvcFacade
}

func (suite *GroupServiceTestSuite) SetupTest() {
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewGroupService(suite.mockGroupRepo, suite.mockUserRepo)
}

func (suite *GroupServiceTestSuite) TestCreateGroup_Success() {
	ctx := context.Background()
	creatorID := uuid.NewString()

	suite.mockGroupRepo.On("SaveGroup", ctx, mock.MatchedBy(func(g domain.Group) bool {
		return g.Name == "Ski Trip" && g.IsActive && g.CreatedBy == creatorID
	})).Return(nil).Once()
	suite.mockGroupRepo.On("AddUserToGroup", ctx, mock.MatchedBy(func(m domain.UserGroup) bool {
		return m.UserID == creatorID && m.Role == domain.RoleAdmin
	})).Return(nil).Once()

	group, err := suite.service.CreateGroup(ctx, "Ski Trip", "Annual trip", creatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(group)
	suite.Equal("Ski Trip", group.Name)
	suite.True(group.IsActive)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestCreateGroup_EmptyName() {
	group, err := suite.service.CreateGroup(context.Background(), "", "", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(group)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *GroupServiceTestSuite) TestAuthorizeUserAction_AdminSatisfiesMember() {
	ctx := context.Background()
	userID := uuid.NewString()
	groupID := uuid.NewString()

	suite.mockGroupRepo.On("FindUserGroupRole", ctx, userID, groupID).
		Return(&domain.UserGroup{UserID: userID, GroupID: groupID, Role: domain.RoleAdmin}, nil).Once()

	err := suite.service.AuthorizeUserAction(ctx, userID, groupID, domain.RoleMember)

	suite.NoError(err)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestAuthorizeUserAction_ReadOnlyCannotWrite() {
	ctx := context.Background()
	userID := uuid.NewString()
	groupID := uuid.NewString()

	suite.mockGroupRepo.On("FindUserGroupRole", ctx, userID, groupID).
		Return(&domain.UserGroup{UserID: userID, GroupID: groupID, Role: domain.RoleReadOnly}, nil).Once()

	err := suite.service.AuthorizeUserAction(ctx, userID, groupID, domain.RoleMember)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *GroupServiceTestSuite) TestAuthorizeUserAction_RemovedMemberForbidden() {
	ctx := context.Background()
	userID := uuid.NewString()
	groupID := uuid.NewString()

	suite.mockGroupRepo.On("FindUserGroupRole", ctx, userID, groupID).
		Return(&domain.UserGroup{UserID: userID, GroupID: groupID, Role: domain.RoleRemoved}, nil).Once()

	err := suite.service.AuthorizeUserAction(ctx, userID, groupID, domain.RoleReadOnly)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *GroupServiceTestSuite) TestAuthorizeUserAction_NonMemberForbiddenNotNotFound() {
	ctx := context.Background()
	userID := uuid.NewString()
	groupID := uuid.NewString()

	suite.mockGroupRepo.On("FindUserGroupRole", ctx, userID, groupID).
		Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.AuthorizeUserAction(ctx, userID, groupID, domain.RoleReadOnly)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *GroupServiceTestSuite) TestAddUserToGroup_RequiresAdmin() {
	ctx := context.Background()
	addingUserID := uuid.NewString()
	targetUserID := uuid.NewString()
	groupID := uuid.NewString()

	suite.mockGroupRepo.On("FindUserGroupRole", ctx, addingUserID, groupID).
		Return(&domain.UserGroup{UserID: addingUserID, GroupID: groupID, Role: domain.RoleMember}, nil).Once()

	err := suite.service.AddUserToGroup(ctx, addingUserID, targetUserID, groupID, domain.RoleMember)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "AddUserToGroup", mock.Anything, mock.Anything)
}

func (suite *GroupServiceTestSuite) TestAddUserToGroup_NewMember() {
	ctx := context.Background()
	adminID := uuid.NewString()
	targetUserID := uuid.NewString()
	groupID := uuid.NewString()

	suite.mockGroupRepo.On("FindUserGroupRole", ctx, adminID, groupID).
		Return(&domain.UserGroup{UserID: adminID, GroupID: groupID, Role: domain.RoleAdmin}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, targetUserID).
		Return(&domain.User{UserID: targetUserID}, nil).Once()
	suite.mockGroupRepo.On("FindUserGroupRole", ctx, targetUserID, groupID).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockGroupRepo.On("AddUserToGroup", ctx, mock.MatchedBy(func(m domain.UserGroup) bool {
		return m.UserID == targetUserID && m.GroupID == groupID && m.Role == domain.RoleMember
	})).Return(nil).Once()

	err := suite.service.AddUserToGroup(ctx, adminID, targetUserID, groupID, domain.RoleMember)

	suite.NoError(err)
	suite.mockGroupRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestAddUserToGroup_ExistingMemberRoleUpdated() {
	ctx := context.Background()
	adminID := uuid.NewString()
	targetUserID := uuid.NewString()
	groupID := uuid.NewString()

	suite.mockGroupRepo.On("FindUserGroupRole", ctx, adminID, groupID).
		Return(&domain.UserGroup{UserID: adminID, GroupID: groupID, Role: domain.RoleAdmin}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, targetUserID).
		Return(&domain.User{UserID: targetUserID}, nil).Once()
	suite.mockGroupRepo.On("FindUserGroupRole", ctx, targetUserID, groupID).
		Return(&domain.UserGroup{UserID: targetUserID, GroupID: groupID, Role: domain.RoleRemoved}, nil).Once()
	suite.mockGroupRepo.On("UpdateUserGroupRole", ctx, targetUserID, groupID, domain.RoleMember).
		Return(nil).Once()

	err := suite.service.AddUserToGroup(ctx, adminID, targetUserID, groupID, domain.RoleMember)

	suite.NoError(err)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "AddUserToGroup", mock.Anything, mock.Anything)
	suite.mockGroupRepo.AssertExpectations(suite.T())
}

func (suite *GroupServiceTestSuite) TestListUserGroups_EmptyIsNotNil() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockGroupRepo.On("ListGroupsByUserID", ctx, userID).Return([]domain.Group(nil), nil).Once()

	groups, err := suite.service.ListUserGroups(ctx, userID)

	suite.Require().NoError(err)
	suite.NotNil(groups)
	suite.Empty(groups)
}

func (suite *GroupServiceTestSuite) TestListGroupMembers_RepoError() {
	ctx := context.Background()
	userID := uuid.NewString()
	groupID := uuid.NewString()

	suite.mockGroupRepo.On("FindUserGroupRole", ctx, userID, groupID).
		Return(&domain.UserGroup{UserID: userID, GroupID: groupID, Role: domain.RoleMember}, nil).Once()
	suite.mockGroupRepo.On("ListGroupMembers", ctx, groupID).Return(nil, assert.AnError).Once()

	members, err := suite.service.ListGroupMembers(ctx, groupID, userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Nil(members)
}

func TestGroupServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GroupServiceTestSuite))
}
