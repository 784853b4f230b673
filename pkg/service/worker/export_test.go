package worker

import "context"

// RunIntake runs a single intake pass for testing
func (w *IntakeWorker) RunIntake(ctx context.Context) (int, error) {
	return w.intake(ctx)
}
