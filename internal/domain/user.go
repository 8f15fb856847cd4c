package domain

import "time"

// Role enumerates operator roles. Role checks are always set-membership
// against these values, never free-form string comparison.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleAgent      Role = "AGENT"
	RoleBSS        Role = "BSS"
	RoleInfosec    Role = "INFOSEC"
)

// ValidRole reports whether the value is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleAgent, RoleBSS, RoleInfosec:
		return true
	}
	return false
}

// UserStatus represents account lifecycle states. DELETED is a soft marker;
// deleted rows stay in the table and are excluded from default listings.
type UserStatus string

const (
	UserStatusPending  UserStatus = "PENDING"
	UserStatusApproved UserStatus = "APPROVED"
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusRejected UserStatus = "REJECTED"
	UserStatusDeleted  UserStatus = "DELETED"
)

// User models an operator account. PasswordHash is nil until the user
// completes registration; RegistrationToken is set on approval and cleared
// once registration completes.
type User struct {
	ID                  string
	FullName            string
	Email               string
	PasswordHash        *string
	Role                Role
	Status              UserStatus
	SBU                 *string
	RegistrationToken   *string
	RegistrationExpires *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
