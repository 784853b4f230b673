package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
)

// CaseID is a UUID-based identifier for Case
type CaseID string

// NewCaseID generates a new UUID v7 CaseID. IDs from one process sort in
// creation order, which breaks ties between equal submission times.
func NewCaseID() CaseID {
	return CaseID(uuid.Must(uuid.NewV7()).String())
}

func (id CaseID) String() string {
	return string(id)
}

// ChangeRequestID identifies a change request within its case
type ChangeRequestID string

// NewChangeRequestID generates a new UUID v4 ChangeRequestID
func NewChangeRequestID() ChangeRequestID {
	return ChangeRequestID(uuid.New().String())
}

// DocumentID identifies a document slot within its case
type DocumentID string

// NewDocumentID generates a new UUID v4 DocumentID
func NewDocumentID() DocumentID {
	return DocumentID(uuid.New().String())
}

// CommentID identifies a comment
type CommentID string

// NewCommentID generates a new UUID v4 CommentID
func NewCommentID() CommentID {
	return CommentID(uuid.New().String())
}

// Case is one client-submitted bundle of change requests and its review state
type Case struct {
	ID              CaseID           `json:"id" firestore:"id"`
	ClientInfo      ClientInfo       `json:"clientInfo" firestore:"client_info"`
	ChangeRequests  []ChangeRequest  `json:"changeRequests" firestore:"change_requests"`
	Documents       []Document       `json:"documents" firestore:"documents"`
	Comments        CommentThread    `json:"comments" firestore:"comments"`
	Status          types.CaseStatus `json:"status" firestore:"status"`
	CurrentAssignee string           `json:"currentAssignee" firestore:"current_assignee"`
	SubmittedBy     string           `json:"submittedBy" firestore:"submitted_by"` // ClientRef of the submitting actor
	SubmittedAt     time.Time        `json:"submittedAt" firestore:"submitted_at"`
	UpdatedAt       time.Time        `json:"updatedAt" firestore:"updated_at"`
	Version         int64            `json:"version" firestore:"version"`
}

// ClientInfo holds the account details supplied at submission
type ClientInfo struct {
	ClientName        string `json:"clientName" firestore:"client_name"`
	Address           string `json:"address" firestore:"address"`
	DateOfInformation string `json:"dateOfInformation" firestore:"date_of_information"`
	AccountID         string `json:"accountId,omitempty" firestore:"account_id,omitempty"`
	Email             string `json:"email,omitempty" firestore:"email,omitempty"`
}

// ChangeRequest is one requested account modification
type ChangeRequest struct {
	ID           ChangeRequestID  `json:"id" firestore:"id"`
	HDINumber    string           `json:"hdiNumber" firestore:"hdi_number"`
	Country      string           `json:"country" firestore:"country"`
	TypeOfChange types.ChangeType `json:"typeOfChange" firestore:"type_of_change"`
}

// Document is a supporting document slot. Required is derived from the case's
// change requests and never taken from the caller.
type Document struct {
	ID         DocumentID `json:"id" firestore:"id"`
	Name       string     `json:"name" firestore:"name"`
	Required   bool       `json:"required" firestore:"required"`
	Uploaded   bool       `json:"uploaded" firestore:"uploaded"`
	Awaiting   bool       `json:"awaiting" firestore:"awaiting"`
	FileHandle string     `json:"fileHandle,omitempty" firestore:"file_handle,omitempty"`
}

// Touch records a mutation at now
func (c *Case) Touch(now time.Time) {
	if now.Before(c.SubmittedAt) {
		now = c.SubmittedAt
	}
	c.UpdatedAt = now
}

// FindChangeRequest returns the change request with the given ID
func (c *Case) FindChangeRequest(id ChangeRequestID) (*ChangeRequest, bool) {
	for i := range c.ChangeRequests {
		if c.ChangeRequests[i].ID == id {
			return &c.ChangeRequests[i], true
		}
	}
	return nil, false
}

// documentIndex returns the position of the document in the case or -1
func (c *Case) documentIndex(id DocumentID) int {
	for i := range c.Documents {
		if c.Documents[i].ID == id {
			return i
		}
	}
	return -1
}

// FindDocument returns the document with the given ID
func (c *Case) FindDocument(id DocumentID) (*Document, bool) {
	if i := c.documentIndex(id); i >= 0 {
		return &c.Documents[i], true
	}
	return nil, false
}

// MissingRequiredDocuments returns names of required documents not uploaded yet
func (c *Case) MissingRequiredDocuments() []string {
	var missing []string
	for _, d := range c.Documents {
		if d.Required && !d.Uploaded {
			missing = append(missing, d.Name)
		}
	}
	return missing
}

// Copy returns a deep copy of the case
func (c *Case) Copy() *Case {
	copied := *c

	if c.ChangeRequests != nil {
		copied.ChangeRequests = make([]ChangeRequest, len(c.ChangeRequests))
		copy(copied.ChangeRequests, c.ChangeRequests)
	}
	if c.Documents != nil {
		copied.Documents = make([]Document, len(c.Documents))
		copy(copied.Documents, c.Documents)
	}
	if c.Comments != nil {
		copied.Comments = make(CommentThread, len(c.Comments))
		copy(copied.Comments, c.Comments)
	}

	return &copied
}
