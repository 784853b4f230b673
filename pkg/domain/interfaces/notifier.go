package interfaces

import (
	"context"

	"github.com/secmon-lab/caseflow/pkg/domain/model"
)

// Notifier receives case events after a mutation has been persisted.
// A failing notifier never rolls back the mutation.
type Notifier interface {
	Notify(ctx context.Context, event *model.CaseEvent) error
}
