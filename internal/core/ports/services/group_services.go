package services

import (
	"context"

	"github.com/splitkit/split_ledger_app/internal/core/domain"
)

// GroupReaderSvc defines read operations for group data
type GroupReaderSvc interface {
	// GetGroupByID retrieves a group by its ID.
	GetGroupByID(ctx context.Context, groupID string) (*domain.Group, error)

	// ListUserGroups retrieves the groups the given user belongs to.
	ListUserGroups(ctx context.Context, userID string) ([]domain.Group, error)

	// ListGroupMembers retrieves the memberships of a group.
	ListGroupMembers(ctx context.Context, groupID string, requestingUserID string) ([]domain.UserGroup, error)
}

// GroupWriterSvc defines write operations for group data
type GroupWriterSvc interface {
	// CreateGroup creates a new group and makes the creator the initial admin.
	CreateGroup(ctx context.Context, name, description, creatorUserID string) (*domain.Group, error)

	// AddUserToGroup adds a user to a group with a specific role.
	AddUserToGroup(ctx context.Context, addingUserID, targetUserID, groupID string, role domain.UserGroupRole) error
}

// GroupAuthorizerSvc defines authorization checks scoped to a group
type GroupAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has the required role (or higher)
	// within a specific group.
	AuthorizeUserAction(ctx context.Context, userID, groupID string, requiredRole domain.UserGroupRole) error
}

// GroupSvcFacade combines all group-related service interfaces
type GroupSvcFacade interface {
	GroupReaderSvc
	GroupWriterSvc
	GroupAuthorizerSvc
}
