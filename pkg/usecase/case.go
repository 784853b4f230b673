package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseflow/pkg/domain/interfaces"
	"github.com/secmon-lab/caseflow/pkg/domain/model"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
	"github.com/secmon-lab/caseflow/pkg/utils/async"
	"github.com/secmon-lab/caseflow/pkg/utils/logging"
)

type CaseUseCase struct {
	repo         interfaces.Repository
	requirements model.RequirementTable
	notifier     interfaces.Notifier
	clock        func() time.Time
}

func NewCaseUseCase(repo interfaces.Repository, requirements model.RequirementTable, notifier interfaces.Notifier, clock func() time.Time) *CaseUseCase {
	if requirements == nil {
		requirements = model.DefaultRequirementTable()
	}
	if clock == nil {
		clock = time.Now
	}
	return &CaseUseCase{
		repo:         repo,
		requirements: requirements,
		notifier:     notifier,
		clock:        clock,
	}
}

func (uc *CaseUseCase) now() time.Time {
	return uc.clock().UTC()
}

// CreateCase opens a pending case for the submission of the actor in ctx.
// Caller supplied Required flags are ignored; the requirement table decides them.
func (uc *CaseUseCase) CreateCase(ctx context.Context, clientInfo model.ClientInfo, changeRequests []model.ChangeRequest, documents []model.Document) (*model.Case, error) {
	actor, err := model.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	sub := model.Submission{
		ClientInfo:     clientInfo,
		ChangeRequests: append([]model.ChangeRequest(nil), changeRequests...),
		Documents:      append([]model.Document(nil), documents...),
	}
	sub.Normalize()
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	now := uc.now()
	c := &model.Case{
		ID:              model.NewCaseID(),
		ClientInfo:      sub.ClientInfo,
		ChangeRequests:  sub.ChangeRequests,
		Documents:       sub.Documents,
		Comments:        model.CommentThread{},
		Status:          types.CaseStatusPending,
		CurrentAssignee: types.LabelSystem,
		SubmittedBy:     actor.ClientRef,
		SubmittedAt:     now,
		UpdatedAt:       now,
	}
	if c.ChangeRequests == nil {
		c.ChangeRequests = []model.ChangeRequest{}
	}
	if c.Documents == nil {
		c.Documents = []model.Document{}
	}
	c.ApplyRequirements(uc.requirements.Resolve(c.ChangeRequests))

	created, err := uc.repo.Case().Create(ctx, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create case", goerr.V(model.CaseIDKey, c.ID))
	}

	logging.From(ctx).Info("case submitted",
		"case_id", created.ID,
		"change_requests", len(created.ChangeRequests),
		"missing_documents", len(created.MissingRequiredDocuments()))

	uc.notify(ctx, &model.CaseEvent{
		Type:       model.CaseEventSubmitted,
		Case:       created,
		Actor:      actor,
		OccurredAt: now,
	})

	return created, nil
}

// AssignIntake hands a pending case to the OKW team. It is performed by the
// system and takes no actor.
func (uc *CaseUseCase) AssignIntake(ctx context.Context, id model.CaseID) (*model.Case, error) {
	var prev types.CaseStatus
	updated, err := uc.mutate(ctx, id, func(c *model.Case) error {
		prev = c.Status
		return model.Transition(c, types.CaseStatusWithOKW, model.AssigneeFor(types.CaseStatusWithOKW), uc.now())
	})
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Info("case assigned to intake", "case_id", id)
	uc.notify(ctx, &model.CaseEvent{
		Type:       model.CaseEventStatusChanged,
		Case:       updated,
		PrevStatus: prev,
		OccurredAt: updated.UpdatedAt,
	})

	return updated, nil
}

// UpdateStatus moves a case into target on behalf of the actor in ctx.
// actingLabel may be empty; otherwise it must be the canonical assignee of target
// (AssigneeFor). Free-text labels are rejected with ErrValidation, and the stored
// assignee is always the canonical one.
func (uc *CaseUseCase) UpdateStatus(ctx context.Context, id model.CaseID, target types.CaseStatus, actingLabel string) (*model.Case, error) {
	actor, err := model.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	class, ok := model.ClassOf(target)
	if !ok {
		return nil, goerr.Wrap(model.ErrInvalidTransition, "no transition leads into target status",
			goerr.V(model.CaseIDKey, id), goerr.V(model.TargetStatusKey, target))
	}

	assignee := model.AssigneeFor(target)
	if actingLabel != "" && actingLabel != assignee {
		return nil, goerr.Wrap(model.ErrValidation, "assignee does not match target status",
			goerr.V(model.CaseIDKey, id),
			goerr.V(model.TargetStatusKey, target),
			goerr.V("assignee", actingLabel))
	}

	var prev types.CaseStatus
	updated, err := uc.mutateAs(ctx, actor, id, func(c *model.Case) error {
		prev = c.Status
		if err := model.CheckTransition(actor.Role, c, class); err != nil {
			return err
		}
		if class == model.TransitionMoveForward {
			if missing := c.MissingRequiredDocuments(); len(missing) > 0 {
				return goerr.Wrap(model.ErrValidation, "required documents are not uploaded",
					goerr.V(model.CaseIDKey, c.ID), goerr.V("missing", missing))
			}
		}
		return model.Transition(c, target, assignee, uc.now())
	})
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Info("case status updated",
		"case_id", id,
		"from", prev,
		"to", updated.Status,
		"role", actor.Role)
	uc.notify(ctx, &model.CaseEvent{
		Type:       model.CaseEventStatusChanged,
		Case:       updated,
		PrevStatus: prev,
		Actor:      actor,
		OccurredAt: updated.UpdatedAt,
	})

	return updated, nil
}

// GetCase returns the case if it exists and the actor may see it. Cases the
// actor may not see are reported as not found.
func (uc *CaseUseCase) GetCase(ctx context.Context, id model.CaseID) (*model.Case, error) {
	actor, err := model.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return uc.getVisible(ctx, actor, id)
}

// VisibleCases lists the cases the actor may see in creation order
func (uc *CaseUseCase) VisibleCases(ctx context.Context, opts ...interfaces.ListCaseOption) ([]*model.Case, error) {
	actor, err := model.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if actor.Role == types.RoleClient {
		if actor.ClientRef == "" {
			return []*model.Case{}, nil
		}
		opts = append(opts, interfaces.WithSubmittedBy(actor.ClientRef))
	}

	cases, err := uc.repo.Case().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases")
	}

	return model.VisibleCases(actor, cases), nil
}

// Permissions returns what the actor may do on the case right now
func (uc *CaseUseCase) Permissions(ctx context.Context, id model.CaseID) (model.Permissions, error) {
	c, err := uc.GetCase(ctx, id)
	if err != nil {
		return model.Permissions{}, err
	}
	actor, _ := model.ActorFromContext(ctx)
	return model.PermissionsFor(actor.Role, c), nil
}

// RequiredDocumentNames returns the sorted required document names of the case
func (uc *CaseUseCase) RequiredDocumentNames(ctx context.Context, id model.CaseID) ([]string, error) {
	c, err := uc.GetCase(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.ResolveRequirements(c.ChangeRequests), nil
}

// ResolveRequirements previews the required document names for change requests
func (uc *CaseUseCase) ResolveRequirements(changeRequests []model.ChangeRequest) []string {
	return uc.requirements.Resolve(changeRequests).Names()
}

func (uc *CaseUseCase) getVisible(ctx context.Context, actor model.Actor, id model.CaseID) (*model.Case, error) {
	c, err := uc.repo.Case().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get case", goerr.V(model.CaseIDKey, id))
	}
	if !model.CanView(actor, c) {
		return nil, goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
	}
	return c, nil
}

// mutateAs applies fn to a fresh copy of a case visible to actor and persists
// it, re-reading and re-applying fn when the stored version moved underneath.
func (uc *CaseUseCase) mutateAs(ctx context.Context, actor model.Actor, id model.CaseID, fn func(c *model.Case) error) (*model.Case, error) {
	return uc.update(ctx, id, func(ctx context.Context) (*model.Case, error) {
		return uc.getVisible(ctx, actor, id)
	}, fn)
}

// mutate is mutateAs for system operations that see every case
func (uc *CaseUseCase) mutate(ctx context.Context, id model.CaseID, fn func(c *model.Case) error) (*model.Case, error) {
	return uc.update(ctx, id, func(ctx context.Context) (*model.Case, error) {
		c, err := uc.repo.Case().Get(ctx, id)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get case", goerr.V(model.CaseIDKey, id))
		}
		return c, nil
	}, fn)
}

func (uc *CaseUseCase) update(ctx context.Context, id model.CaseID, load func(ctx context.Context) (*model.Case, error), fn func(c *model.Case) error) (*model.Case, error) {
	var lastErr error
	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		c, err := load(ctx)
		if err != nil {
			return nil, err
		}

		if err := fn(c); err != nil {
			return nil, err
		}

		updated, err := uc.repo.Case().Update(ctx, c)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, model.ErrConflict) {
			return nil, goerr.Wrap(err, "failed to update case", goerr.V(model.CaseIDKey, id))
		}

		logging.From(ctx).Debug("case update conflicted, retrying",
			"case_id", id, "attempt", attempt)
		lastErr = err
	}

	return nil, goerr.Wrap(lastErr, "case kept changing while updating",
		goerr.V(model.CaseIDKey, id), goerr.V(AttemptKey, maxUpdateAttempts))
}

func (uc *CaseUseCase) notify(ctx context.Context, event *model.CaseEvent) {
	if uc.notifier == nil {
		return
	}

	snapshot := *event
	snapshot.Case = event.Case.Copy()
	async.Dispatch(ctx, func(ctx context.Context) error {
		return uc.notifier.Notify(ctx, &snapshot)
	})
}
