package model

import (
	"math"
	"time"

	"github.com/secmon-lab/caseflow/pkg/domain/types"
)

// okwDayAllowance is the share of a case's elapsed days attributed to the OKW
// team; the remainder is attributed to CDD.
const okwDayAllowance = 3

// Report is the exported summary of the case queue
type Report struct {
	GeneratedAt time.Time     `json:"generatedAt"`
	Summary     ReportSummary `json:"summary"`
	Cases       []CaseSummary `json:"caseDetails"`
}

// ReportSummary aggregates the queue
type ReportSummary struct {
	TotalCases         int                      `json:"totalCases"`
	TeamMetrics        TeamMetrics              `json:"teamMetrics"`
	StatusDistribution map[types.CaseStatus]int `json:"statusDistribution"`
}

// TeamMetrics holds processing time per team
type TeamMetrics struct {
	OKW     TeamMetric `json:"okw"`
	CDD     TeamMetric `json:"cdd"`
	Overall TeamMetric `json:"overall"`
}

// TeamMetric is the number of cases a team handled and the days they took
type TeamMetric struct {
	TotalCases int     `json:"totalCases"`
	TotalDays  int     `json:"totalDays"`
	AvgDays    float64 `json:"avgDays"`
}

// CaseSummary is the flat per-case export record
type CaseSummary struct {
	ID                  CaseID           `json:"id"`
	ClientName          string           `json:"clientName"`
	Status              types.CaseStatus `json:"status"`
	SubmittedAt         time.Time        `json:"submittedAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
	DaysSinceSubmission int              `json:"daysSinceSubmission"`
	CurrentAssignee     string           `json:"currentAssignee"`
}

// ceilDays returns the number of started days in d
func ceilDays(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

func (m *TeamMetric) add(days int) {
	m.TotalCases++
	m.TotalDays += days
}

func (m *TeamMetric) finalize() {
	if m.TotalCases > 0 {
		m.AvgDays = float64(m.TotalDays) / float64(m.TotalCases)
	}
}

// BuildReport summarizes cases, which must be in creation order
func BuildReport(cases []*Case, now time.Time) *Report {
	report := &Report{
		GeneratedAt: now,
		Summary: ReportSummary{
			TotalCases:         len(cases),
			StatusDistribution: make(map[types.CaseStatus]int),
		},
		Cases: make([]CaseSummary, 0, len(cases)),
	}
	for _, s := range types.AllCaseStatuses() {
		report.Summary.StatusDistribution[s] = 0
	}

	metrics := &report.Summary.TeamMetrics
	for _, c := range cases {
		days := ceilDays(c.UpdatedAt.Sub(c.SubmittedAt))
		metrics.Overall.TotalDays += days

		switch c.Status {
		case types.CaseStatusWithOKW:
			metrics.OKW.add(min(days, okwDayAllowance))
		case types.CaseStatusWithCDD, types.CaseStatusApproved, types.CaseStatusRejected:
			metrics.OKW.add(min(days, okwDayAllowance))
			metrics.CDD.add(max(0, days-okwDayAllowance))
		}

		report.Summary.StatusDistribution[c.Status]++
		report.Cases = append(report.Cases, CaseSummary{
			ID:                  c.ID,
			ClientName:          c.ClientInfo.ClientName,
			Status:              c.Status,
			SubmittedAt:         c.SubmittedAt,
			UpdatedAt:           c.UpdatedAt,
			DaysSinceSubmission: ceilDays(now.Sub(c.SubmittedAt)),
			CurrentAssignee:     c.CurrentAssignee,
		})
	}

	metrics.Overall.TotalCases = len(cases)
	metrics.OKW.finalize()
	metrics.CDD.finalize()
	metrics.Overall.finalize()

	return report
}
