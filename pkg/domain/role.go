package domain

import "fmt"

// Role classifies an account and drives the shape of its profile bag.
// This is a domain primitive that enforces validity at parse time.
type Role string

// Supported roles.
const (
	RoleYouth       Role = "youth"
	RoleEmployer    Role = "employer"
	RoleGovernment  Role = "government"
	RoleInstitution Role = "institution"
)

// domainPrefixes maps each role to the short prefix used when deriving the
// public domain handle. Youth accounts carry no prefix.
var domainPrefixes = map[Role]string{
	RoleYouth:       "",
	RoleEmployer:    "emp",
	RoleGovernment:  "gov",
	RoleInstitution: "ins",
}

// ParseRole validates and returns a Role.
// Returns an error if the role is unknown.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := domainPrefixes[r]; !ok {
		return "", fmt.Errorf("unknown role: %s", s)
	}
	return r, nil
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsNil returns true if the role is empty.
func (r Role) IsNil() bool {
	return r == ""
}

// DomainPrefix returns the derivation prefix for the role. Unknown roles
// get no prefix, matching the youth default.
func (r Role) DomainPrefix() string {
	return domainPrefixes[r]
}

// SupportedRoles returns all currently supported roles.
func SupportedRoles() []Role {
	return []Role{RoleYouth, RoleEmployer, RoleGovernment, RoleInstitution}
}
