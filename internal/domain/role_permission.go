package domain

import "time"

// RolePermission links a role to a named permission. A role's set is fully
// replaced on update, never incrementally patched.
type RolePermission struct {
	ID         string
	Role       Role
	Permission string
	CreatedAt  time.Time
}
