package models

import "time"

// Role is the fixed set of account roles. The role determines which front-end
// panel an authenticated account is routed to; the server only tags it.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
	RoleParent  Role = "parent"
)

// ParseRole returns the Role for s, or false if s is not a permitted role.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleStudent, RoleTeacher, RoleAdmin, RoleParent:
		return r, true
	}
	return "", false
}

func (r Role) String() string { return string(r) }

// Account is one registered identity. Email is globally unique across all
// accounts, not per-role. PasswordHash never leaves the server: it is excluded
// from JSON serialization.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}
