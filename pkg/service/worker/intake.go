package worker

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseflow/pkg/domain/interfaces"
	"github.com/secmon-lab/caseflow/pkg/domain/model"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
	"github.com/secmon-lab/caseflow/pkg/utils/errutil"
	"github.com/secmon-lab/caseflow/pkg/utils/logging"
)

// IntakeAssigner performs the system intake transition of a case
type IntakeAssigner interface {
	AssignIntake(ctx context.Context, id model.CaseID) (*model.Case, error)
}

// IntakeWorker periodically hands pending cases to the OKW team once they
// have waited for the intake delay.
//
// Architecture assumptions:
// - Several instances may run; the repository version check makes each
//   intake happen once and the losers skip the case
type IntakeWorker struct {
	repo     interfaces.Repository
	assigner IntakeAssigner
	interval time.Duration
	delay    time.Duration
	clock    func() time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
}

type IntakeOption func(*IntakeWorker)

// WithClock sets the time source compared against submission times. It should
// be the clock the use case stamps cases with.
func WithClock(clock func() time.Time) IntakeOption {
	return func(w *IntakeWorker) {
		if clock != nil {
			w.clock = clock
		}
	}
}

// NewIntakeWorker creates a new worker for assigning pending cases
func NewIntakeWorker(repo interfaces.Repository, assigner IntakeAssigner, interval, delay time.Duration, opts ...IntakeOption) *IntakeWorker {
	w := &IntakeWorker{
		repo:     repo,
		assigner: assigner,
		interval: interval,
		delay:    delay,
		clock:    time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins the background intake loop
// - Initial pass and periodic passes both run in a background goroutine
// - Does not block server startup
func (w *IntakeWorker) Start(ctx context.Context) error {
	if w.interval <= 0 {
		return goerr.New("intake interval must be positive", goerr.V("interval", w.interval))
	}

	logging.Default().Info("Intake worker starting",
		"interval", w.interval.String(),
		"delay", w.delay.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *IntakeWorker) Stop() {
	logging.Default().Info("Intake worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Intake worker stopped")
}

// run is the main worker loop (runs in goroutine)
func (w *IntakeWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if _, err := w.intake(ctx); err != nil {
		logging.Default().Error("Initial intake pass failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := w.intake(ctx); err != nil {
				logging.Default().Error("Intake pass failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("Intake worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Intake worker context cancelled")
			return
		}
	}
}

// intake performs a single pass and returns the number of cases assigned.
// A failing case is logged and skipped so it does not hold back the others.
func (w *IntakeWorker) intake(ctx context.Context) (int, error) {
	pending, err := w.repo.Case().List(ctx, interfaces.WithStatus(types.CaseStatusPending))
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list pending cases")
	}

	deadline := w.clock().Add(-w.delay)
	assigned := 0
	for _, c := range pending {
		if c.SubmittedAt.After(deadline) {
			continue
		}

		if _, err := w.assigner.AssignIntake(ctx, c.ID); err != nil {
			// Another instance or a reviewer moved the case first
			if errors.Is(err, model.ErrInvalidTransition) || errors.Is(err, model.ErrConflict) {
				logging.Default().Debug("Case left pending state before intake", "case_id", c.ID)
				continue
			}
			_ = errutil.Handle(ctx, goerr.Wrap(err, "failed to assign intake", goerr.V(model.CaseIDKey, c.ID)), "intake skipped case")
			continue
		}
		assigned++
	}

	if assigned > 0 {
		logging.Default().Info("Intake pass completed", "assigned", assigned, "pending", len(pending))
	}
	return assigned, nil
}
