package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseflow/pkg/domain/interfaces"
	"github.com/secmon-lab/caseflow/pkg/domain/model"
)

type caseRepository struct {
	mu    sync.RWMutex
	cases map[model.CaseID]*model.Case
	order []model.CaseID
}

func newCaseRepository() *caseRepository {
	return &caseRepository{
		cases: make(map[model.CaseID]*model.Case),
	}
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) (*model.Case, error) {
	if c.ID == "" {
		return nil, goerr.Wrap(model.ErrValidation, "case ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cases[c.ID]; exists {
		return nil, goerr.Wrap(model.ErrConflict, "case already exists", goerr.V(model.CaseIDKey, c.ID))
	}

	created := c.Copy()
	created.Version = 1
	r.cases[created.ID] = created
	r.order = append(r.order, created.ID)

	return created.Copy(), nil
}

func (r *caseRepository) Get(ctx context.Context, id model.CaseID) (*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.cases[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
	}

	return c.Copy(), nil
}

func (r *caseRepository) List(ctx context.Context, opts ...interfaces.ListCaseOption) ([]*model.Case, error) {
	cfg := interfaces.BuildListCaseConfig(opts...)

	r.mu.RLock()
	defer r.mu.RUnlock()

	cases := make([]*model.Case, 0, len(r.order))
	for _, id := range r.order {
		c := r.cases[id]
		if s := cfg.Status(); s != nil && c.Status != *s {
			continue
		}
		if ref := cfg.SubmittedBy(); ref != nil && c.SubmittedBy != *ref {
			continue
		}
		cases = append(cases, c.Copy())
	}

	return cases, nil
}

func (r *caseRepository) Update(ctx context.Context, c *model.Case) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.cases[c.ID]
	if !exists {
		return nil, goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, c.ID))
	}
	if existing.Version != c.Version {
		return nil, goerr.Wrap(model.ErrConflict, "case version mismatch",
			goerr.V(model.CaseIDKey, c.ID),
			goerr.V(model.VersionKey, c.Version),
			goerr.V("stored_version", existing.Version))
	}

	updated := c.Copy()
	updated.SubmittedAt = existing.SubmittedAt
	updated.SubmittedBy = existing.SubmittedBy
	updated.Version = existing.Version + 1
	r.cases[updated.ID] = updated

	return updated.Copy(), nil
}
