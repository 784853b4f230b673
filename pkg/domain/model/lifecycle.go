package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
)

// TransitionClass is the kind of action that moves a case into a status
type TransitionClass string

const (
	TransitionIntake      TransitionClass = "intake"
	TransitionMoveForward TransitionClass = "move-forward"
	TransitionApprove     TransitionClass = "approve"
	TransitionReject      TransitionClass = "reject"
)

type transition struct {
	from types.CaseStatus
	to   types.CaseStatus
}

// The lifecycle is linear; approved and rejected have no outgoing edge.
var transitions = map[transition]TransitionClass{
	{types.CaseStatusPending, types.CaseStatusWithOKW}:  TransitionIntake,
	{types.CaseStatusPending, types.CaseStatusWithCDD}:  TransitionMoveForward,
	{types.CaseStatusWithOKW, types.CaseStatusWithCDD}:  TransitionMoveForward,
	{types.CaseStatusWithCDD, types.CaseStatusApproved}: TransitionApprove,
	{types.CaseStatusWithCDD, types.CaseStatusRejected}: TransitionReject,
}

// ClassOf returns the transition class that leads into the target status.
// pending is only ever entered at creation and has no class.
func ClassOf(to types.CaseStatus) (TransitionClass, bool) {
	switch to {
	case types.CaseStatusWithOKW:
		return TransitionIntake, true
	case types.CaseStatusWithCDD:
		return TransitionMoveForward, true
	case types.CaseStatusApproved:
		return TransitionApprove, true
	case types.CaseStatusRejected:
		return TransitionReject, true
	default:
		return "", false
	}
}

// CanTransition reports whether from -> to is in the lifecycle table
func CanTransition(from, to types.CaseStatus) bool {
	_, ok := transitions[transition{from: from, to: to}]
	return ok
}

// Transition moves the case into status to and hands it to assignee. On error
// the case is not modified.
func Transition(c *Case, to types.CaseStatus, assignee string, now time.Time) error {
	if !CanTransition(c.Status, to) {
		return goerr.Wrap(ErrInvalidTransition, "transition is not allowed",
			goerr.V(CaseIDKey, c.ID),
			goerr.V(StatusKey, c.Status),
			goerr.V(TargetStatusKey, to))
	}

	c.Status = to
	c.CurrentAssignee = assignee
	c.Touch(now)
	return nil
}

// AssigneeFor returns the assignee label a case carries once it enters status to.
// Decided cases are handed back to the system.
func AssigneeFor(to types.CaseStatus) string {
	switch to {
	case types.CaseStatusWithOKW:
		return types.LabelOKW
	case types.CaseStatusWithCDD:
		return types.LabelCDD
	default:
		return types.LabelSystem
	}
}
