package types

import "fmt"

// Role is the acting identity supplied by the caller on every request
type Role string

const (
	RoleClient Role = "client"
	RoleOKW    Role = "okw"
	RoleCDD    Role = "cdd"
)

// Team labels used for CurrentAssignee. TeamLabel is the only place that maps a
// role to its label; permission checks compare against it.
const (
	LabelSystem = "System"
	LabelClient = "Client"
	LabelOKW    = "OKW Team"
	LabelCDD    = "CDD Team"
)

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{RoleClient, RoleOKW, RoleCDD}
}

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleOKW, RoleCDD:
		return true
	default:
		return false
	}
}

// TeamLabel returns the assignee label of the team acting under the role
func (r Role) TeamLabel() string {
	switch r {
	case RoleClient:
		return LabelClient
	case RoleOKW:
		return LabelOKW
	case RoleCDD:
		return LabelCDD
	default:
		return ""
	}
}

// IsReviewer reports whether the role belongs to one of the review teams
func (r Role) IsReviewer() bool {
	return r == RoleOKW || r == RoleCDD
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return role, nil
}
