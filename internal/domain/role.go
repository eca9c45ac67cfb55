package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRole is returned by ParseRole for names outside the role set.
var ErrUnknownRole = errors.New("unknown role")

// Role is a privilege tier, ordered by increasing privilege.
type Role int

// Roles.
const (
	Guest Role = iota
	User
	Moderator
	Admin
)

var roleNames = map[Role]string{
	Guest:     "guest",
	User:      "user",
	Moderator: "moderator",
	Admin:     "admin",
}

// Roles returns every role, least privileged first.
func Roles() []Role {
	return []Role{Guest, User, Moderator, Admin}
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// ParseRole resolves a role name, ignoring case.
func ParseRole(name string) (Role, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for r, n := range roleNames {
		if n == want {
			return r, nil
		}
	}
	return Guest, fmt.Errorf("parse role %q: %w", name, ErrUnknownRole)
}

// Identity is a caller's display name and role.
type Identity struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}
