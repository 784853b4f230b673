package model

import "github.com/m-mizutani/goerr/v2"

// Failure kinds surfaced by case operations. Every error returned from the
// domain and use case layers wraps exactly one of them, so callers branch with
// errors.Is. None of them is retryable except ErrConflict.
var (
	// ErrValidation is malformed input: empty comment text, missing target reference, etc.
	ErrValidation = goerr.New("validation failed")

	// ErrPermissionDenied means the role lacks the capability for the action in the current case state
	ErrPermissionDenied = goerr.New("permission denied")

	// ErrInvalidTransition is a status change that is not in the lifecycle table
	ErrInvalidTransition = goerr.New("invalid status transition")

	// ErrNotFound is an unknown case, document or change request
	ErrNotFound = goerr.New("not found")

	// ErrConflict is a stale write detected by the repository version check
	ErrConflict = goerr.New("case was modified concurrently")
)

// Context keys for error values
const (
	CaseIDKey          = "case_id"
	DocumentIDKey      = "document_id"
	ChangeRequestIDKey = "change_request_id"
	RoleKey            = "role"
	StatusKey          = "status"
	TargetStatusKey    = "target_status"
	FieldKey           = "field"
	VersionKey         = "version"
)
