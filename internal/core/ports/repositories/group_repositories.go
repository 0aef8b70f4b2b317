package repositories

import (
	"context"

	"github.com/splitkit/split_ledger_app/internal/core/domain"
)

// GroupReader defines read operations for group data
type GroupReader interface {
	// FindGroupByID retrieves a specific group by its unique identifier.
	FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error)

	// ListGroupsByUserID retrieves all groups a user is a member of.
	ListGroupsByUserID(ctx context.Context, userID string) ([]domain.Group, error)

	// FindUserGroupRole retrieves the membership of a user in a group.
	FindUserGroupRole(ctx context.Context, userID, groupID string) (*domain.UserGroup, error)

	// ListGroupMembers retrieves all memberships of a group.
	ListGroupMembers(ctx context.Context, groupID string) ([]domain.UserGroup, error)
}

// GroupWriter defines write operations for group data
type GroupWriter interface {
	// SaveGroup persists a new group.
	SaveGroup(ctx context.Context, group domain.Group) error

	// AddUserToGroup persists a group membership.
	AddUserToGroup(ctx context.Context, membership domain.UserGroup) error

	// UpdateUserGroupRole changes the role of an existing membership.
	UpdateUserGroupRole(ctx context.Context, userID, groupID string, role domain.UserGroupRole) error
}

// GroupRepositoryFacade combines all group-related repository interfaces
type GroupRepositoryFacade interface {
	GroupReader
	GroupWriter
}
