package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/caseflow/pkg/domain/model"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
)

func TestAttachments(t *testing.T) {
	t.Run("assigned team requests, uploads and removes a document", func(t *testing.T) {
		uc, _ := newUseCases(t)
		created := submitComplete(t, uc)
		moveTo(t, uc, created.ID, types.CaseStatusWithOKW)

		updated, err := uc.Case.AddAttachment(okwCtx(), created.ID, "Bank Statement")
		gt.NoError(t, err).Required()
		gt.Array(t, updated.Documents).Length(2)
		added := updated.Documents[1]
		gt.Bool(t, added.Awaiting).True()
		gt.Bool(t, added.Required).False()

		updated, err = uc.Case.UploadAttachment(okwCtx(), created.ID, added.ID, "blob:statement")
		gt.NoError(t, err).Required()
		gt.Bool(t, updated.Documents[1].Uploaded).True()
		gt.Bool(t, updated.Documents[1].Awaiting).False()

		updated, err = uc.Case.RemoveAttachment(okwCtx(), created.ID, added.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, updated.Documents).Length(1)
	})

	t.Run("removing a required document resets it", func(t *testing.T) {
		uc, _ := newUseCases(t)
		created := submitComplete(t, uc)
		moveTo(t, uc, created.ID, types.CaseStatusWithOKW)
		required := created.Documents[0]

		updated, err := uc.Case.RemoveAttachment(okwCtx(), created.ID, required.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, updated.Documents).Length(1)
		gt.Bool(t, updated.Documents[0].Uploaded).False()
		gt.Value(t, updated.Documents[0].FileHandle).Equal("")
		gt.Value(t, updated.MissingRequiredDocuments()).Equal([]string{"Proof of Address"})
	})

	t.Run("only the assigned team edits documents", func(t *testing.T) {
		uc, _ := newUseCases(t)
		created := submitComplete(t, uc)

		_, err := uc.Case.AddAttachment(okwCtx(), created.ID, "Bank Statement")
		gt.Error(t, err).Is(model.ErrPermissionDenied)

		moveTo(t, uc, created.ID, types.CaseStatusWithOKW)
		_, err = uc.Case.AddAttachment(cddCtx(), created.ID, "Bank Statement")
		gt.Error(t, err).Is(model.ErrPermissionDenied)
		_, err = uc.Case.UploadAttachment(clientCtx(), created.ID, created.Documents[0].ID, "blob:x")
		gt.Error(t, err).Is(model.ErrPermissionDenied)
	})

	t.Run("invalid input", func(t *testing.T) {
		uc, _ := newUseCases(t)
		created := submitComplete(t, uc)
		moveTo(t, uc, created.ID, types.CaseStatusWithOKW)

		_, err := uc.Case.AddAttachment(okwCtx(), created.ID, " ")
		gt.Error(t, err).Is(model.ErrValidation)

		_, err = uc.Case.AddAttachment(okwCtx(), created.ID, "Proof of Address")
		gt.Error(t, err).Is(model.ErrValidation)

		_, err = uc.Case.UploadAttachment(okwCtx(), created.ID, created.Documents[0].ID, "")
		gt.Error(t, err).Is(model.ErrValidation)

		_, err = uc.Case.RemoveAttachment(okwCtx(), created.ID, "doc-404")
		gt.Error(t, err).Is(model.ErrNotFound)

		current, err := uc.Case.GetCase(okwCtx(), created.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, current.Documents).Length(1)
	})
}
