package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
)

// Permissions is the set of actions a role may take on a case in its current state
type Permissions struct {
	CanComment     bool `json:"canComment"`
	CanApprove     bool `json:"canApprove"`
	CanReject      bool `json:"canReject"`
	CanMoveForward bool `json:"canMoveForward"`
}

// IsAssigned reports whether the role's team is the case's current assignee
func IsAssigned(role types.Role, c *Case) bool {
	label := role.TeamLabel()
	return label != "" && label == c.CurrentAssignee
}

// PermissionsFor derives the permissions of role on c. Clients are never the
// assignee of a review state, so they cannot comment or edit attachments
// once the case has left intake.
func PermissionsFor(role types.Role, c *Case) Permissions {
	assigned := IsAssigned(role, c)

	return Permissions{
		CanComment:     assigned,
		CanApprove:     assigned && c.Status == types.CaseStatusWithCDD,
		CanReject:      assigned && c.Status == types.CaseStatusWithCDD,
		CanMoveForward: (role == types.RoleOKW && c.Status == types.CaseStatusPending) || (assigned && c.Status == types.CaseStatusWithOKW),
	}
}

// Allows reports whether the permissions cover the transition class.
// Intake is performed by the system and is never granted to a role.
func (p Permissions) Allows(class TransitionClass) bool {
	switch class {
	case TransitionMoveForward:
		return p.CanMoveForward
	case TransitionApprove:
		return p.CanApprove
	case TransitionReject:
		return p.CanReject
	default:
		return false
	}
}

// CheckTransition returns ErrPermissionDenied unless role may perform class on c
func CheckTransition(role types.Role, c *Case, class TransitionClass) error {
	if !PermissionsFor(role, c).Allows(class) {
		return goerr.Wrap(ErrPermissionDenied, "role may not perform transition",
			goerr.V(CaseIDKey, c.ID),
			goerr.V(RoleKey, role),
			goerr.V(StatusKey, c.Status),
			goerr.V("transition", class))
	}
	return nil
}

// CheckAssigned returns ErrPermissionDenied unless role is the current assignee
// of c. Comments and attachment edits share this gate.
func CheckAssigned(role types.Role, c *Case) error {
	if !PermissionsFor(role, c).CanComment {
		return goerr.Wrap(ErrPermissionDenied, "role is not assigned to case",
			goerr.V(CaseIDKey, c.ID),
			goerr.V(RoleKey, role),
			goerr.V("assignee", c.CurrentAssignee))
	}
	return nil
}

// CanView reports whether actor may see c. Review teams see every case so
// they can triage the whole queue; a client only sees cases it submitted.
func CanView(actor Actor, c *Case) bool {
	switch actor.Role {
	case types.RoleOKW, types.RoleCDD:
		return true
	case types.RoleClient:
		return actor.ClientRef != "" && c.SubmittedBy == actor.ClientRef
	default:
		return false
	}
}

// VisibleCases filters cases down to those actor may see, preserving order
func VisibleCases(actor Actor, cases []*Case) []*Case {
	visible := make([]*Case, 0, len(cases))
	for _, c := range cases {
		if CanView(actor, c) {
			visible = append(visible, c)
		}
	}
	return visible
}
