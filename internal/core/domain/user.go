package domain

import "time"

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
	RoleManager  = "manager"
)

// DefaultRoles is applied when a signup carries no explicit role set.
var DefaultRoles = []string{RoleEmployee}

// User models a repair-shop account. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidRole reports whether r belongs to the fixed role enumeration.
func ValidRole(r string) bool {
	switch r {
	case RoleEmployee, RoleAdmin, RoleManager:
		return true
	}
	return false
}

// UserPatch is a sparse update: nil fields are left untouched.
// UpdatedAt is always refreshed by the repository.
type UserPatch struct {
	Name         *string
	Email        *string
	Roles        []string
	PasswordHash *string
}

// Empty reports whether the patch would change nothing but the timestamp.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && len(p.Roles) == 0 && p.PasswordHash == nil
}
