package domain

import "time"

// Role classifies an account. Roles are a flat set: admin does not inherit
// support capabilities, every privileged path enumerates the roles it accepts.
type Role string

const (
	RoleUser    Role = "user"
	RoleSupport Role = "support"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleSupport, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for every account: customers, support staff and
// administrators alike, distinguished only by Role. The role is never embedded
// in issued credentials; it is re-read from the store on every decision.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
