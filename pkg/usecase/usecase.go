package usecase

import (
	"time"

	"github.com/secmon-lab/caseflow/pkg/domain/interfaces"
	"github.com/secmon-lab/caseflow/pkg/domain/model"
)

type UseCases struct {
	repo         interfaces.Repository
	requirements model.RequirementTable
	notifier     interfaces.Notifier
	clock        func() time.Time

	Case   *CaseUseCase
	Report *ReportUseCase
}

type Option func(*UseCases)

// WithRequirementTable replaces the default change type to document table
func WithRequirementTable(table model.RequirementTable) Option {
	return func(uc *UseCases) {
		uc.requirements = table
	}
}

// WithNotifier sets the receiver of case events
func WithNotifier(notifier interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = notifier
	}
}

// WithClock overrides the time source, mainly for tests
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:         repo,
		requirements: model.DefaultRequirementTable(),
		clock:        time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Case = NewCaseUseCase(repo, uc.requirements, uc.notifier, uc.clock)
	uc.Report = NewReportUseCase(repo, uc.clock)

	return uc
}
