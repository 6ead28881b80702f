package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is deactivated")
)

// User models a registered account on the platform.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Roles            RoleSet   `json:"roles"`
	ReputationPoints int       `json:"reputation_points"`
	IsActive         bool      `json:"is_active"`
	Bio              string    `json:"bio,omitempty"`
	Location         string    `json:"location,omitempty"`
	Website          string    `json:"website,omitempty"`
	DateJoined       time.Time `json:"date_joined"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// HasRole reports whether the user currently holds the given role.
func (u *User) HasRole(r Role) bool {
	return u.Roles.Has(r)
}
