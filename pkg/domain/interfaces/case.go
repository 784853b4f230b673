package interfaces

import (
	"context"

	"github.com/secmon-lab/caseflow/pkg/domain/model"
)

// CaseRepository defines the interface for Case data access
type CaseRepository interface {
	// Create stores a new case. The case ID must be set and unused; the
	// stored version starts at 1.
	Create(ctx context.Context, c *model.Case) (*model.Case, error)

	// Get retrieves a case by ID
	Get(ctx context.Context, id model.CaseID) (*model.Case, error)

	// List retrieves cases in creation order with optional filtering
	List(ctx context.Context, opts ...ListCaseOption) ([]*model.Case, error)

	// Update replaces a stored case if its stored version still equals
	// c.Version, and returns the stored copy with the version incremented.
	// A stale version fails with model.ErrConflict.
	Update(ctx context.Context, c *model.Case) (*model.Case, error)
}
