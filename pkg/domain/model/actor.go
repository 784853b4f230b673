package model

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
)

// Actor is the identity a request acts under. The binding between a caller
// and ClientRef is established outside the core; the core only compares it
// with Case.SubmittedBy.
type Actor struct {
	Role      types.Role
	ClientRef string
}

// TeamLabel returns the assignee label of the actor's team
func (a Actor) TeamLabel() string {
	return a.Role.TeamLabel()
}

// Validate checks that the actor carries a known role
func (a Actor) Validate() error {
	if !a.Role.IsValid() {
		return goerr.Wrap(ErrValidation, "unknown role", goerr.V(RoleKey, a.Role))
	}
	return nil
}

type actorCtxKey struct{}

// ContextWithActor returns a context carrying the actor
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actor)
}

// ActorFromContext extracts the actor from the context
func ActorFromContext(ctx context.Context) (Actor, error) {
	actor, ok := ctx.Value(actorCtxKey{}).(Actor)
	if !ok {
		return Actor{}, goerr.Wrap(ErrPermissionDenied, "no actor in context")
	}
	if err := actor.Validate(); err != nil {
		return Actor{}, err
	}
	return actor, nil
}
