package model

import (
	"fmt"
	"strings"
)

// Role is the fixed set of account roles. The zero value is not a valid role.
type Role uint8

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleFreelancer
	RoleAdmin
)

// String returns the wire form of the role.
func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "CUSTOMER"
	case RoleFreelancer:
		return "FREELANCER"
	case RoleAdmin:
		return "ADMIN"
	case RoleUnknown:
		return "UNKNOWN"
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleFreelancer, RoleAdmin:
		return true
	case RoleUnknown:
		return false
	}
	return false
}

// ParseRole converts the wire form into a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CUSTOMER":
		return RoleCustomer, nil
	case "FREELANCER":
		return RoleFreelancer, nil
	case "ADMIN":
		return RoleAdmin, nil
	}
	return RoleUnknown, fmt.Errorf("unknown role %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", uint8(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Identity is a verified caller.
type Identity struct {
	UserID string
	Role   Role
}

// IsZero reports an anonymous caller.
func (i Identity) IsZero() bool {
	return i.UserID == "" || !i.Role.Valid()
}
