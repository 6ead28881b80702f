package domain

import "errors"

// Role is a named capability tier governing access to dashboards and actions.
// The set is closed: anything outside it is rejected at parse time so a typo
// can never silently grant or deny access.
type Role string

const (
	RoleUser      Role = "User"
	RoleAdmin     Role = "Admin"
	RoleEditor    Role = "Editor"
	RoleModerator Role = "Moderator"
	RoleSupport   Role = "Support"
)

var ErrUnknownRole = errors.New("unknown role")

// allRoles is the exhaustive enumeration. Keep in sync with the constants above.
var allRoles = []Role{RoleUser, RoleAdmin, RoleEditor, RoleModerator, RoleSupport}

// ParseRole converts a raw string into a Role, rejecting anything outside the
// closed set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", ErrUnknownRole
	}
	return r, nil
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleEditor, RoleModerator, RoleSupport:
		return true
	}
	return false
}

// Elevated reports whether r grants capabilities beyond the base role.
func (r Role) Elevated() bool {
	return r.Valid() && r != RoleUser
}

// AllRoles returns the full role enumeration.
func AllRoles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// RoleSet is the set of roles a user currently holds. It is never empty and
// always contains RoleUser; membership is unique and order is irrelevant.
type RoleSet []Role

// NewRoleSet builds a normalized role set: the base role plus any valid
// elevated roles, deduplicated. Invalid roles are dropped.
func NewRoleSet(elevated ...Role) RoleSet {
	set := RoleSet{RoleUser}
	for _, r := range elevated {
		if r.Valid() && !set.Has(r) {
			set = append(set, r)
		}
	}
	return set
}

// Has reports whether the set contains r.
func (s RoleSet) Has(r Role) bool {
	for _, have := range s {
		if have == r {
			return true
		}
	}
	return false
}

// Highest returns the single elevated role in the set, or RoleUser when the
// user holds only the base role. The platform runs single-active-role
// semantics, so at most one elevated role is present at a time.
func (s RoleSet) Highest() Role {
	for _, r := range s {
		if r.Elevated() {
			return r
		}
	}
	return RoleUser
}
