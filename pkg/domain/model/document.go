package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// AddAttachment appends a manually requested document slot with no file bound yet.
// Names are unique within a case so a required slot cannot be shadowed by an optional one.
func (c *Case) AddAttachment(name string, now time.Time) (*Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, goerr.Wrap(ErrValidation, "attachment name is required", goerr.V(FieldKey, "name"))
	}
	for _, d := range c.Documents {
		if d.Name == name {
			return nil, goerr.Wrap(ErrValidation, "document with the same name already exists",
				goerr.V(CaseIDKey, c.ID), goerr.V(DocumentIDKey, d.ID), goerr.V(FieldKey, "name"))
		}
	}

	c.Documents = append(c.Documents, Document{
		ID:       NewDocumentID(),
		Name:     name,
		Required: false,
		Uploaded: false,
		Awaiting: true,
	})
	c.Touch(now)

	return &c.Documents[len(c.Documents)-1], nil
}

// UploadAttachment binds an opaque file handle to the document
func (c *Case) UploadAttachment(id DocumentID, fileHandle string, now time.Time) (*Document, error) {
	if fileHandle == "" {
		return nil, goerr.Wrap(ErrValidation, "file handle is required", goerr.V(FieldKey, "fileHandle"))
	}

	doc, ok := c.FindDocument(id)
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "document not found",
			goerr.V(CaseIDKey, c.ID), goerr.V(DocumentIDKey, id))
	}

	doc.Uploaded = true
	doc.Awaiting = false
	doc.FileHandle = fileHandle
	c.Touch(now)

	return doc, nil
}

// RemoveAttachment resets a required document and deletes any other one.
// It reports whether the document was deleted.
func (c *Case) RemoveAttachment(id DocumentID, now time.Time) (bool, error) {
	i := c.documentIndex(id)
	if i < 0 {
		return false, goerr.Wrap(ErrNotFound, "document not found",
			goerr.V(CaseIDKey, c.ID), goerr.V(DocumentIDKey, id))
	}

	deleted := false
	if c.Documents[i].Required {
		c.Documents[i].Uploaded = false
		c.Documents[i].FileHandle = ""
	} else {
		c.Documents = append(c.Documents[:i], c.Documents[i+1:]...)
		deleted = true
	}
	c.Touch(now)

	return deleted, nil
}

// ApplyRequirements retags the case's documents against required and adds an
// empty slot for every required name the case does not have yet.
func (c *Case) ApplyRequirements(required RequiredDocuments) {
	for _, name := range required.Apply(c.Documents) {
		c.Documents = append(c.Documents, Document{
			ID:       NewDocumentID(),
			Name:     name,
			Required: true,
		})
	}
}
