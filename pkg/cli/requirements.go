package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/caseflow/pkg/cli/config"
	"github.com/secmon-lab/caseflow/pkg/domain/model"
	"github.com/secmon-lab/caseflow/pkg/domain/types"
)

func cmdRequirements() *cli.Command {
	var reqCfg config.Requirements

	return &cli.Command{
		Name:    "requirements",
		Aliases: []string{"r"},
		Usage:   "Validate and print the documents required per change type",
		Flags:   reqCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			table, err := reqCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load requirement table")
			}
			_, err = fmt.Fprint(c.Root().Writer, formatRequirementTable(table))
			return err
		},
	}
}

// formatRequirementTable lists change types in form order
func formatRequirementTable(table model.RequirementTable) string {
	var b strings.Builder
	for _, changeType := range types.AllChangeTypes() {
		docs := table[changeType]
		if len(docs) == 0 {
			fmt.Fprintf(&b, "%s: (none)\n", changeType)
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", changeType, strings.Join(docs, ", "))
	}
	return b.String()
}
