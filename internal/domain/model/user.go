package model

import (
	"time"
)

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// AllRoles is the fixed role enumeration seeded at startup.
var AllRoles = []string{RoleUser, RoleModerator, RoleAdmin}

type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	MobileNumber   string    `json:"mobile_number"`
	FullName       string    `json:"full_name"`
	AadhaarNumber  *string   `json:"aadhaar_number,omitempty"`
	HashedPassword string    `json:"-"` // Not exposed
	Roles          []string  `json:"roles"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasRole reports whether the user carries the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}
