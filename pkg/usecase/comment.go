package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseflow/pkg/domain/model"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
	"github.com/secmon-lab/caseflow/pkg/utils/logging"
)

// AddComment appends a comment authored by the actor's team. Only the
// assigned team may comment.
func (uc *CaseUseCase) AddComment(ctx context.Context, id model.CaseID, comment model.Comment) (*model.Case, error) {
	actor, err := model.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	comment.Author = actor.TeamLabel()
	updated, err := uc.mutateAs(ctx, actor, id, func(c *model.Case) error {
		if err := model.CheckAssigned(actor.Role, c); err != nil {
			return err
		}
		now := uc.now()
		if _, err := c.Comments.Add(comment, c.ChangeRequests, now); err != nil {
			return goerr.Wrap(err, "failed to add comment", goerr.V(model.CaseIDKey, c.ID))
		}
		c.Touch(now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Info("comment added",
		"case_id", id,
		"target", comment.Target,
		"author", comment.Author)
	uc.notify(ctx, &model.CaseEvent{
		Type:       model.CaseEventCommented,
		Case:       updated,
		PrevStatus: updated.Status,
		Actor:      actor,
		OccurredAt: updated.UpdatedAt,
	})

	return updated, nil
}

// Comments returns the comments on a target of the case in insertion order.
// An unknown change request is reported as not found.
func (uc *CaseUseCase) Comments(ctx context.Context, id model.CaseID, target types.CommentTarget, targetID model.ChangeRequestID) ([]model.Comment, error) {
	if !target.IsValid() {
		return nil, goerr.Wrap(model.ErrValidation, "unknown comment target", goerr.V("target", target))
	}

	c, err := uc.GetCase(ctx, id)
	if err != nil {
		return nil, err
	}

	if target == types.CommentTargetChangeRequest {
		if _, ok := c.FindChangeRequest(targetID); !ok {
			return nil, goerr.Wrap(model.ErrNotFound, "change request not found",
				goerr.V(model.CaseIDKey, id), goerr.V(model.ChangeRequestIDKey, targetID))
		}
	}

	return c.Comments.Query(target, targetID), nil
}
