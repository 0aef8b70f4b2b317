package dto

import (
	"time"

	"github.com/splitkit/split_ledger_app/internal/core/domain"
)

// CreateGroupRequest defines the data for creating a group.
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	Description string `json:"description"`
}

// AddGroupMemberRequest defines the data for adding a member to a group.
type AddGroupMemberRequest struct {
	UserID string `json:"userID" binding:"required"`
	Role   string `json:"role" binding:"omitempty,oneof=ADMIN MEMBER READONLY"`
}

// GroupResponse defines the data returned for a group.
type GroupResponse struct {
	GroupID     string    `json:"groupID"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// ListGroupsResponse wraps the list of groups a user belongs to.
type ListGroupsResponse struct {
	Groups []GroupResponse `json:"groups"`
}

// GroupMemberResponse defines the data returned for a group membership.
type GroupMemberResponse struct {
	UserID   string    `json:"userID"`
	UserName string    `json:"userName"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// ToGroupResponse converts a domain.Group to GroupResponse DTO.
func ToGroupResponse(g *domain.Group) GroupResponse {
	return GroupResponse{
		GroupID:     g.GroupID,
		Name:        g.Name,
		Description: g.Description,
		CreatedAt:   g.CreatedAt,
		CreatedBy:   g.CreatedBy,
	}
}

// ToListGroupsResponse converts domain Groups to ListGroupsResponse DTO.
func ToListGroupsResponse(groups []domain.Group) ListGroupsResponse {
	responses := make([]GroupResponse, len(groups))
	for i, group := range groups {
		responses[i] = ToGroupResponse(&group)
	}
	return ListGroupsResponse{Groups: responses}
}

// ToGroupMemberResponses converts domain UserGroup memberships to DTOs.
func ToGroupMemberResponses(memberships []domain.UserGroup) []GroupMemberResponse {
	responses := make([]GroupMemberResponse, len(memberships))
	for i, m := range memberships {
		responses[i] = GroupMemberResponse{
			UserID:   m.UserID,
			UserName: m.UserName,
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
		}
	}
	return responses
}
