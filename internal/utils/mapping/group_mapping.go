package mapping

import (
	"github.com/splitkit/split_ledger_app/internal/core/domain"
	"github.com/splitkit/split_ledger_app/internal/models"
)

// ToModelGroup converts a domain Group to a model Group
func ToModelGroup(d domain.Group) models.Group {
	return models.Group{
		GroupID:     d.GroupID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGroup converts a model Group to a domain Group
func ToDomainGroup(m models.Group) domain.Group {
	return domain.Group{
		GroupID:     m.GroupID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainGroupSlice converts a slice of model Groups to a slice of domain Groups
func ToDomainGroupSlice(ms []models.Group) []domain.Group {
	ds := make([]domain.Group, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainGroup(m)
	}
	return ds
}

// ToModelUserGroup converts a domain UserGroup membership to its model form
func ToModelUserGroup(d domain.UserGroup) models.UserGroup {
	return models.UserGroup{
		UserID:   d.UserID,
		GroupID:  d.GroupID,
		Role:     string(d.Role),
		JoinedAt: d.JoinedAt,
	}
}

// ToDomainUserGroup converts a model UserGroup membership to its domain form
func ToDomainUserGroup(m models.UserGroup) domain.UserGroup {
	return domain.UserGroup{
		UserID:   m.UserID,
		GroupID:  m.GroupID,
		Role:     domain.UserGroupRole(m.Role),
		JoinedAt: m.JoinedAt,
	}
}
