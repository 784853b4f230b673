package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/caseflow/pkg/domain/interfaces"
	"github.com/secmon-lab/caseflow/pkg/domain/model"
)

type ReportUseCase struct {
	repo  interfaces.Repository
	clock func() time.Time
}

func NewReportUseCase(repo interfaces.Repository, clock func() time.Time) *ReportUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &ReportUseCase{
		repo:  repo,
		clock: clock,
	}
}

// Export summarizes every case, optionally narrowed by list options
func (uc *ReportUseCase) Export(ctx context.Context, opts ...interfaces.ListCaseOption) (*model.Report, error) {
	cases, err := uc.repo.Case().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases for report")
	}
	return model.BuildReport(cases, uc.clock().UTC()), nil
}
