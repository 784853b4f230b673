package usecase

import (
	"context"

	"github.com/secmon-lab/caseflow/pkg/domain/model"
	"github.com/secmon-lab/caseflow/pkg/utils/logging"
)

// AddAttachment requests an additional document from the client
func (uc *CaseUseCase) AddAttachment(ctx context.Context, id model.CaseID, name string) (*model.Case, error) {
	return uc.editDocuments(ctx, id, func(c *model.Case) error {
		doc, err := c.AddAttachment(name, uc.now())
		if err != nil {
			return err
		}
		logging.From(ctx).Info("attachment requested", "case_id", id, "document_id", doc.ID)
		return nil
	})
}

// RemoveAttachment resets a required document or deletes an optional one
func (uc *CaseUseCase) RemoveAttachment(ctx context.Context, id model.CaseID, documentID model.DocumentID) (*model.Case, error) {
	return uc.editDocuments(ctx, id, func(c *model.Case) error {
		deleted, err := c.RemoveAttachment(documentID, uc.now())
		if err != nil {
			return err
		}
		logging.From(ctx).Info("attachment removed",
			"case_id", id, "document_id", documentID, "deleted", deleted)
		return nil
	})
}

// UploadAttachment binds a file handle to a document
func (uc *CaseUseCase) UploadAttachment(ctx context.Context, id model.CaseID, documentID model.DocumentID, fileHandle string) (*model.Case, error) {
	return uc.editDocuments(ctx, id, func(c *model.Case) error {
		if _, err := c.UploadAttachment(documentID, fileHandle, uc.now()); err != nil {
			return err
		}
		logging.From(ctx).Info("attachment uploaded", "case_id", id, "document_id", documentID)
		return nil
	})
}

// editDocuments gates document edits on the actor's team being assigned
func (uc *CaseUseCase) editDocuments(ctx context.Context, id model.CaseID, fn func(c *model.Case) error) (*model.Case, error) {
	actor, err := model.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	return uc.mutateAs(ctx, actor, id, func(c *model.Case) error {
		if err := model.CheckAssigned(actor.Role, c); err != nil {
			return err
		}
		return fn(c)
	})
}
