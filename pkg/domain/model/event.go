package model

import (
	"time"

	"github.com/secmon-lab/caseflow/pkg/domain/types"
)

// CaseEventType names a state change observers may react to
type CaseEventType string

const (
	CaseEventSubmitted     CaseEventType = "case.submitted"
	CaseEventStatusChanged CaseEventType = "case.status_changed"
	CaseEventCommented     CaseEventType = "case.commented"
)

// CaseEvent carries the post-mutation snapshot of a case to observers
type CaseEvent struct {
	Type       CaseEventType
	Case       *Case
	PrevStatus types.CaseStatus
	Actor      Actor
	OccurredAt time.Time
}

// IsDecision reports whether the event moved the case into a terminal status
func (e *CaseEvent) IsDecision() bool {
	return e.Type == CaseEventStatusChanged && e.Case != nil && e.Case.Status.IsTerminal()
}
