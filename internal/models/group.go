package models

import "time"

// Group represents a row in the groups table.
type Group struct {
	GroupID     string `db:"group_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}

// UserGroup represents a row in the user_groups membership table.
type UserGroup struct {
	UserID   string    `db:"user_id"`
	GroupID  string    `db:"group_id"`
	Role     string    `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
}
