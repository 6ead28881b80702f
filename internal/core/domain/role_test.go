package domain

import "testing"

func TestParseRole(t *testing.T) {
	for _, r := range AllRoles() {
		parsed, err := ParseRole(string(r))
		if err != nil {
			t.Fatalf("ParseRole(%q) returned error: %v", r, err)
		}
		if parsed != r {
			t.Fatalf("ParseRole(%q) = %q", r, parsed)
		}
	}

	if _, err := ParseRole("SuperAdmin"); err != ErrUnknownRole {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if _, err := ParseRole(""); err != ErrUnknownRole {
		t.Fatalf("expected ErrUnknownRole for empty string, got %v", err)
	}
	if _, err := ParseRole("admin"); err != ErrUnknownRole {
		t.Fatalf("role names are case sensitive, got %v", err)
	}
}

func TestRoleElevated(t *testing.T) {
	if RoleUser.Elevated() {
		t.Fatalf("base role must not be elevated")
	}
	for _, r := range []Role{RoleAdmin, RoleEditor, RoleModerator, RoleSupport} {
		if !r.Elevated() {
			t.Fatalf("expected %s to be elevated", r)
		}
	}
	if Role("Ghost").Elevated() {
		t.Fatalf("invalid role must not be elevated")
	}
}

func TestNewRoleSet_AlwaysContainsBase(t *testing.T) {
	cases := [][]Role{
		nil,
		{},
		{RoleAdmin},
		{RoleUser},
		{RoleAdmin, RoleAdmin},
		{Role("Ghost")},
	}
	for _, elevated := range cases {
		set := NewRoleSet(elevated...)
		if !set.Has(RoleUser) {
			t.Fatalf("NewRoleSet(%v) lost the base role: %v", elevated, set)
		}
	}
}

func TestNewRoleSet_DeduplicatesAndDropsInvalid(t *testing.T) {
	set := NewRoleSet(RoleAdmin, RoleAdmin, Role("Ghost"), RoleUser)
	if len(set) != 2 {
		t.Fatalf("expected {User, Admin}, got %v", set)
	}
	if !set.Has(RoleAdmin) {
		t.Fatalf("expected admin membership, got %v", set)
	}
	if set.Has(Role("Ghost")) {
		t.Fatalf("invalid role leaked into the set: %v", set)
	}
}

func TestRoleSetHighest(t *testing.T) {
	if got := NewRoleSet().Highest(); got != RoleUser {
		t.Fatalf("base-only set: expected User, got %s", got)
	}
	if got := NewRoleSet(RoleModerator).Highest(); got != RoleModerator {
		t.Fatalf("expected Moderator, got %s", got)
	}
}
