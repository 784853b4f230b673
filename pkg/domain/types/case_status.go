package types

import "fmt"

// CaseStatus represents the review status of a case
type CaseStatus string

const (
	CaseStatusPending  CaseStatus = "pending"
	CaseStatusWithOKW  CaseStatus = "with-okw"
	CaseStatusWithCDD  CaseStatus = "with-cdd"
	CaseStatusApproved CaseStatus = "approved"
	CaseStatusRejected CaseStatus = "rejected"
)

// AllCaseStatuses returns all valid case statuses in workflow order
func AllCaseStatuses() []CaseStatus {
	return []CaseStatus{
		CaseStatusPending,
		CaseStatusWithOKW,
		CaseStatusWithCDD,
		CaseStatusApproved,
		CaseStatusRejected,
	}
}

// IsValid checks if the case status is valid
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusPending,
		CaseStatusWithOKW,
		CaseStatusWithCDD,
		CaseStatusApproved,
		CaseStatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no transition is defined out of the status
func (s CaseStatus) IsTerminal() bool {
	return s == CaseStatusApproved || s == CaseStatusRejected
}

// String returns the string representation of the case status
func (s CaseStatus) String() string {
	return string(s)
}

// ParseCaseStatus parses a string into a CaseStatus
func ParseCaseStatus(s string) (CaseStatus, error) {
	status := CaseStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid case status: %s", s)
	}
	return status, nil
}
