package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/splitkit/split_ledger_app/internal/apperrors"
	"github.com/splitkit/split_ledger_app/internal/core/domain"
	portsrepo "github.com/splitkit/split_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/splitkit/split_ledger_app/internal/core/ports/services"
	"github.com/splitkit/split_ledger_app/internal/middleware"
)

// roleRank orders group roles for authorization checks. Higher ranks satisfy
// lower requirements; REMOVED satisfies nothing.
var roleRank = map[domain.UserGroupRole]int{
	domain.RoleAdmin:    3,
	domain.RoleMember:   2,
	domain.RoleReadOnly: 1,
	domain.RoleRemoved:  0,
}

// groupService provides group management and per-group authorization.
type groupService struct {
	groupRepo portsrepo.GroupRepositoryFacade
	userRepo  portsrepo.UserRepositoryFacade
}

// NewGroupService creates a new GroupService.
func NewGroupService(groupRepo portsrepo.GroupRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.GroupSvcFacade {
	return &groupService{groupRepo: groupRepo, userRepo: userRepo}
}

// Ensure groupService implements the portssvc.GroupSvcFacade interface
var _ portssvc.GroupSvcFacade = (*groupService)(nil)

// CreateGroup creates a new group and adds the creator as its first admin.
func (s *groupService) CreateGroup(ctx context.Context, name, description, creatorUserID string) (*domain.Group, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", apperrors.ErrValidation)
	}

	now := time.Now()
	group := domain.Group{
		GroupID:     uuid.NewString(),
		Name:        name,
		Description: description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.groupRepo.SaveGroup(ctx, group); err != nil {
		logger.Error("Failed to save group", slog.String("error", err.Error()), slog.String("group_name", name))
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	membership := domain.UserGroup{
		UserID:   creatorUserID,
		GroupID:  group.GroupID,
		Role:     domain.RoleAdmin,
		JoinedAt: now,
	}
	if err := s.groupRepo.AddUserToGroup(ctx, membership); err != nil {
		logger.Error("Failed to add creator to group", slog.String("error", err.Error()), slog.String("group_id", group.GroupID))
		return nil, fmt.Errorf("failed to add creator to group %s: %w", group.GroupID, err)
	}

	logger.Info("Group created", slog.String("group_id", group.GroupID), slog.String("created_by", creatorUserID))
	return &group, nil
}

// GetGroupByID retrieves a group by its ID.
func (s *groupService) GetGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// ListUserGroups retrieves the groups the given user belongs to.
func (s *groupService) ListUserGroups(ctx context.Context, userID string) ([]domain.Group, error) {
	groups, err := s.groupRepo.ListGroupsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for user %s: %w", userID, err)
	}
	if groups == nil {
		return []domain.Group{}, nil
	}
	return groups, nil
}

// ListGroupMembers retrieves the memberships of a group. The requesting user
// must be at least a read-only member.
func (s *groupService) ListGroupMembers(ctx context.Context, groupID string, requestingUserID string) ([]domain.UserGroup, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, groupID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	members, err := s.groupRepo.ListGroupMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of group %s: %w", groupID, err)
	}
	return members, nil
}

// AddUserToGroup adds (or re-activates) a member. Only group admins may
// manage membership. Re-adding an existing member updates their role.
func (s *groupService) AddUserToGroup(ctx context.Context, addingUserID, targetUserID, groupID string, role domain.UserGroupRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, addingUserID, groupID, domain.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		return fmt.Errorf("failed to find user %s: %w", targetUserID, err)
	}

	existing, err := s.groupRepo.FindUserGroupRole(ctx, targetUserID, groupID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if existing != nil {
		if err := s.groupRepo.UpdateUserGroupRole(ctx, targetUserID, groupID, role); err != nil {
			return fmt.Errorf("failed to update role for user %s in group %s: %w", targetUserID, groupID, err)
		}
		logger.Info("Group member role updated", slog.String("group_id", groupID), slog.String("user_id", targetUserID), slog.String("role", string(role)))
		return nil
	}

	membership := domain.UserGroup{
		UserID:   targetUserID,
		GroupID:  groupID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	if err := s.groupRepo.AddUserToGroup(ctx, membership); err != nil {
		return fmt.Errorf("failed to add user %s to group %s: %w", targetUserID, groupID, err)
	}
	logger.Info("Group member added", slog.String("group_id", groupID), slog.String("user_id", targetUserID), slog.String("role", string(role)))
	return nil
}

// AuthorizeUserAction checks whether the user holds at least the required role
// in the group. Non-members get ErrForbidden rather than ErrNotFound so the
// check does not leak group existence.
func (s *groupService) AuthorizeUserAction(ctx context.Context, userID, groupID string, requiredRole domain.UserGroupRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	membership, err := s.groupRepo.FindUserGroupRole(ctx, userID, groupID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Authorization failed: user is not a group member", slog.String("user_id", userID), slog.String("group_id", groupID))
			return apperrors.ErrForbidden
		}
		return fmt.Errorf("failed to check group role: %w", err)
	}

	if roleRank[membership.Role] < roleRank[requiredRole] || membership.Role == domain.RoleRemoved {
		logger.Warn("Authorization failed: insufficient role",
			slog.String("user_id", userID),
			slog.String("group_id", groupID),
			slog.String("role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}
	return nil
}
