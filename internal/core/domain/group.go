package domain

import "time"

// Group represents a set of people who share expenses with each other.
type Group struct {
	GroupID     string `json:"groupID"`     // Primary Key (e.g., UUID)
	Name        string `json:"name"`        // User-defined name for the group
	Description string `json:"description"` // Optional description
	IsActive    bool   `json:"isActive"`    // Indicates whether the group is active or disabled
	AuditFields        // Embed common audit fields
}

// UserGroupRole defines the possible roles a user can have within a group.
type UserGroupRole string

const (
	RoleAdmin    UserGroupRole = "ADMIN"
	RoleMember   UserGroupRole = "MEMBER"
	RoleReadOnly UserGroupRole = "READONLY" // Users with read-only access to group data
	RoleRemoved  UserGroupRole = "REMOVED"  // For users who have been removed from the group
)

// UserGroup represents the membership of a User in a Group.
type UserGroup struct {
	UserID   string        `json:"userID"`   // FK -> users.user_id
	UserName string        `json:"userName"` // Name of the user
	GroupID  string        `json:"groupID"`  // FK -> groups.group_id
	Role     UserGroupRole `json:"role"`     // Role of the user in this specific group
	JoinedAt time.Time     `json:"joinedAt"` // Timestamp when the user joined the group
}
