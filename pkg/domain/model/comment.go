package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
)

// Comment is an immutable discussion entry attached to a part of a case
type Comment struct {
	ID        CommentID           `json:"id" firestore:"id"`
	Text      string              `json:"text" firestore:"text"`
	Author    string              `json:"author" firestore:"author"`
	Timestamp time.Time           `json:"timestamp" firestore:"timestamp"`
	Target    types.CommentTarget `json:"target" firestore:"target"`
	TargetID  ChangeRequestID     `json:"targetId,omitempty" firestore:"target_id,omitempty"`
}

// CommentThread is the append-only list of comments of a case
type CommentThread []Comment

// Add validates the comment against the case's change requests and appends it
// with a fresh ID and timestamp. The thread is left untouched on error.
func (t *CommentThread) Add(c Comment, changeRequests []ChangeRequest, now time.Time) (*Comment, error) {
	text := strings.TrimSpace(c.Text)
	if text == "" {
		return nil, goerr.Wrap(ErrValidation, "comment text is required", goerr.V(FieldKey, "text"))
	}

	switch c.Target {
	case types.CommentTargetClientInfo:
		c.TargetID = ""

	case types.CommentTargetChangeRequest:
		if c.TargetID == "" {
			return nil, goerr.Wrap(ErrValidation, "change request comment requires target ID",
				goerr.V(FieldKey, "targetId"))
		}
		found := false
		for _, cr := range changeRequests {
			if cr.ID == c.TargetID {
				found = true
				break
			}
		}
		if !found {
			return nil, goerr.Wrap(ErrValidation, "comment target change request does not exist",
				goerr.V(FieldKey, "targetId"),
				goerr.V(ChangeRequestIDKey, c.TargetID))
		}

	default:
		return nil, goerr.Wrap(ErrValidation, "unknown comment target",
			goerr.V(FieldKey, "target"), goerr.V("target", c.Target))
	}

	c.ID = NewCommentID()
	c.Text = text
	c.Timestamp = now
	*t = append(*t, c)

	return &(*t)[len(*t)-1], nil
}

// Query returns comments on target in insertion order. targetID selects the
// change request thread and is ignored for client-info.
func (t CommentThread) Query(target types.CommentTarget, targetID ChangeRequestID) []Comment {
	result := []Comment{}
	for _, c := range t {
		if c.Target != target {
			continue
		}
		if target == types.CommentTargetChangeRequest && c.TargetID != targetID {
			continue
		}
		result = append(result, c)
	}
	return result
}
