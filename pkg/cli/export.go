package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/caseflow/pkg/cli/config"
	"github.com/secmon-lab/caseflow/pkg/domain/interfaces"
	"github.com/secmon-lab/caseflow/pkg/domain/model"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
	"github.com/secmon-lab/caseflow/pkg/usecase"
	"github.com/secmon-lab/caseflow/pkg/utils/logging"
	"github.com/secmon-lab/caseflow/pkg/utils/safe"
)

const (
	formatJSON  = "json"
	formatCSV   = "csv"
	formatTable = "table"
)

func cmdExport() *cli.Command {
	var format string
	var status string
	var output string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format [json|csv|table]",
			Value:       formatTable,
			Destination: &format,
		},
		&cli.StringFlag{
			Name:        "status",
			Usage:       "Only include cases in this status",
			Destination: &status,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output file path (default: stdout)",
			Destination: &output,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "export",
		Aliases: []string{"e"},
		Usage:   "Export the case report",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			var opts []interfaces.ListCaseOption
			if status != "" {
				s, err := types.ParseCaseStatus(status)
				if err != nil {
					return goerr.Wrap(err, "invalid status filter")
				}
				opts = append(opts, interfaces.WithStatus(s))
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			report, err := usecase.New(repo).Report.Export(ctx, opts...)
			if err != nil {
				return goerr.Wrap(err, "failed to build report")
			}

			var buf bytes.Buffer
			if err := renderReport(&buf, report, format); err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			if output != "" {
				// #nosec G304 - path is provided by CLI argument
				f, err := os.Create(output)
				if err != nil {
					return goerr.Wrap(err, "failed to create output file", goerr.V("path", output))
				}
				defer safe.Close(ctx, f)
				w = f
			}
			safe.Write(ctx, w, buf.Bytes())

			logging.Default().Debug("Report exported",
				"format", format,
				"cases", report.Summary.TotalCases,
				"output", output)
			return nil
		},
	}
}

func renderReport(w io.Writer, report *model.Report, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return goerr.Wrap(err, "failed to encode report")
		}
		return nil
	case formatCSV:
		return renderCSV(w, report)
	case formatTable:
		return renderTable(w, report)
	default:
		return goerr.New("unknown export format", goerr.V("format", format))
	}
}

var csvHeader = []string{
	"id", "client_name", "status", "submitted_at", "updated_at", "days_since_submission", "current_assignee",
}

func renderCSV(w io.Writer, report *model.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}
	for _, c := range report.Cases {
		record := []string{
			string(c.ID),
			c.ClientName,
			string(c.Status),
			c.SubmittedAt.Format(time.RFC3339),
			c.UpdatedAt.Format(time.RFC3339),
			strconv.Itoa(c.DaysSinceSubmission),
			c.CurrentAssignee,
		}
		if err := cw.Write(record); err != nil {
			return goerr.Wrap(err, "failed to write CSV record", goerr.V(model.CaseIDKey, c.ID))
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV")
	}
	return nil
}

var statusColors = map[types.CaseStatus]*color.Color{
	types.CaseStatusPending:  color.New(color.FgYellow),
	types.CaseStatusWithOKW:  color.New(color.FgCyan),
	types.CaseStatusWithCDD:  color.New(color.FgBlue),
	types.CaseStatusApproved: color.New(color.FgGreen),
	types.CaseStatusRejected: color.New(color.FgRed),
}

func colorStatus(s types.CaseStatus) string {
	if c, ok := statusColors[s]; ok {
		return c.Sprint(s)
	}
	return string(s)
}

func renderTable(w io.Writer, report *model.Report) error {
	bold := color.New(color.Bold)
	summary := report.Summary
	metrics := summary.TeamMetrics

	lines := []string{
		bold.Sprintf("Case report generated at %s", report.GeneratedAt.Format(time.RFC3339)),
		fmt.Sprintf("Total cases: %d", summary.TotalCases),
		fmt.Sprintf("OKW: %d cases, avg %.1f days", metrics.OKW.TotalCases, metrics.OKW.AvgDays),
		fmt.Sprintf("CDD: %d cases, avg %.1f days", metrics.CDD.TotalCases, metrics.CDD.AvgDays),
		fmt.Sprintf("Overall: avg %.1f days", metrics.Overall.AvgDays),
	}
	for _, s := range types.AllCaseStatuses() {
		lines = append(lines, fmt.Sprintf("  %s: %d", colorStatus(s), summary.StatusDistribution[s]))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return goerr.Wrap(err, "failed to write summary")
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return goerr.Wrap(err, "failed to write summary")
	}

	// Status is last so color escapes do not skew column widths
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, bold.Sprint("ID\tCLIENT\tSUBMITTED\tDAYS\tASSIGNEE\tSTATUS")); err != nil {
		return goerr.Wrap(err, "failed to write table header")
	}
	for _, c := range report.Cases {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			c.ID,
			c.ClientName,
			c.SubmittedAt.Format(time.DateOnly),
			c.DaysSinceSubmission,
			c.CurrentAssignee,
			colorStatus(c.Status),
		); err != nil {
			return goerr.Wrap(err, "failed to write table row", goerr.V(model.CaseIDKey, c.ID))
		}
	}
	if err := tw.Flush(); err != nil {
		return goerr.Wrap(err, "failed to flush table")
	}
	return nil
}
