package types

import "fmt"

// CommentTarget is the sub-entity of a case a comment is attached to
type CommentTarget string

const (
	CommentTargetClientInfo    CommentTarget = "client-info"
	CommentTargetChangeRequest CommentTarget = "change-request"
)

// IsValid checks if the comment target is valid
func (t CommentTarget) IsValid() bool {
	return t == CommentTargetClientInfo || t == CommentTargetChangeRequest
}

// String returns the string representation of the comment target
func (t CommentTarget) String() string {
	return string(t)
}

// ParseCommentTarget parses a string into a CommentTarget
func ParseCommentTarget(s string) (CommentTarget, error) {
	t := CommentTarget(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid comment target: %s", s)
	}
	return t, nil
}
