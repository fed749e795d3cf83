package models

import (
	"strings"
	"time"
)

// Roles a user can hold. Signup always grants RoleUser; the others are
// assigned by an admin.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User is an account in the campus community. Emails are restricted to the
// institutional student domain.
type User struct {
	ID       string `gorm:"primaryKey;size:24" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	// Roles is stored comma-joined; use RoleList for the parsed set.
	Roles     string    `gorm:"not null;default:user" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleList returns the user's roles as a slice.
func (u *User) RoleList() []string {
	if u.Roles == "" {
		return []string{RoleUser}
	}
	return strings.Split(u.Roles, ",")
}

// SetRoles stores the given roles, defaulting to RoleUser when empty.
func (u *User) SetRoles(roles []string) {
	if len(roles) == 0 {
		u.Roles = RoleUser
		return
	}
	u.Roles = strings.Join(roles, ",")
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.RoleList() {
		if r == role {
			return true
		}
	}
	return false
}
