package model

import (
	"net/mail"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Submission is the client input a case is created from
type Submission struct {
	ClientInfo     ClientInfo
	ChangeRequests []ChangeRequest
	Documents      []Document
}

// Normalize trims free-text input and fills in missing change request and document IDs.
// Upload state is derived from the file handle; caller supplied flags are ignored.
func (s *Submission) Normalize() {
	s.ClientInfo.ClientName = strings.TrimSpace(s.ClientInfo.ClientName)
	s.ClientInfo.Address = strings.TrimSpace(s.ClientInfo.Address)
	s.ClientInfo.DateOfInformation = strings.TrimSpace(s.ClientInfo.DateOfInformation)
	s.ClientInfo.AccountID = strings.TrimSpace(s.ClientInfo.AccountID)
	s.ClientInfo.Email = strings.TrimSpace(s.ClientInfo.Email)

	for i := range s.ChangeRequests {
		cr := &s.ChangeRequests[i]
		if cr.ID == "" {
			cr.ID = NewChangeRequestID()
		}
		cr.HDINumber = strings.TrimSpace(cr.HDINumber)
		cr.Country = strings.TrimSpace(cr.Country)
	}

	for i := range s.Documents {
		d := &s.Documents[i]
		if d.ID == "" {
			d.ID = NewDocumentID()
		}
		d.Name = strings.TrimSpace(d.Name)
		d.FileHandle = strings.TrimSpace(d.FileHandle)
		d.Uploaded = d.FileHandle != ""
		d.Awaiting = false
	}
}

// Validate checks the submission. Call Normalize first.
func (s *Submission) Validate() error {
	if s.ClientInfo.ClientName == "" {
		return goerr.Wrap(ErrValidation, "client name is required", goerr.V(FieldKey, "clientName"))
	}
	if s.ClientInfo.Address == "" {
		return goerr.Wrap(ErrValidation, "address is required", goerr.V(FieldKey, "address"))
	}
	if s.ClientInfo.DateOfInformation == "" {
		return goerr.Wrap(ErrValidation, "date of information is required", goerr.V(FieldKey, "dateOfInformation"))
	}
	if s.ClientInfo.Email != "" {
		if _, err := mail.ParseAddress(s.ClientInfo.Email); err != nil {
			return goerr.Wrap(ErrValidation, "email is malformed", goerr.V(FieldKey, "email"))
		}
	}

	seenCR := make(map[ChangeRequestID]struct{}, len(s.ChangeRequests))
	for i, cr := range s.ChangeRequests {
		if cr.HDINumber == "" {
			return goerr.Wrap(ErrValidation, "HDI number is required",
				goerr.V(FieldKey, "hdiNumber"), goerr.V("index", i))
		}
		if cr.Country == "" {
			return goerr.Wrap(ErrValidation, "country is required",
				goerr.V(FieldKey, "country"), goerr.V("index", i))
		}
		if !cr.TypeOfChange.IsValid() {
			return goerr.Wrap(ErrValidation, "type of change is invalid",
				goerr.V(FieldKey, "typeOfChange"), goerr.V("index", i), goerr.V("type", cr.TypeOfChange))
		}
		if _, dup := seenCR[cr.ID]; dup {
			return goerr.Wrap(ErrValidation, "duplicate change request ID",
				goerr.V(ChangeRequestIDKey, cr.ID))
		}
		seenCR[cr.ID] = struct{}{}
	}

	seenDoc := make(map[DocumentID]struct{}, len(s.Documents))
	for i, d := range s.Documents {
		if d.Name == "" {
			return goerr.Wrap(ErrValidation, "document name is required",
				goerr.V(FieldKey, "name"), goerr.V("index", i))
		}
		if _, dup := seenDoc[d.ID]; dup {
			return goerr.Wrap(ErrValidation, "duplicate document ID", goerr.V(DocumentIDKey, d.ID))
		}
		seenDoc[d.ID] = struct{}{}
	}

	return nil
}
