// Package command provides CLI command definitions for snapreg.
package command

import (
	"github.com/urfave/cli/v2"

	"github.com/datalode/snapreg/internal/cli/output"
	"github.com/datalode/snapreg/internal/core/domain"
)

// AuditCommand returns the audit command.
func AuditCommand() *cli.Command {
	return &cli.Command{
		Name:  "audit",
		Usage: "Show recent audit ledger events, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Value:   20,
				Usage:   "Maximum number of events (0 for all)",
			},
		},
		Action: auditAction,
	}
}

func auditAction(c *cli.Context) error {
	r, err := openRuntime(c)
	if err != nil {
		return err
	}
	defer r.close()

	if r.ledger == nil {
		return domain.ErrConfigInvalid.WithDetails("audit.path is not configured")
	}

	events, err := r.ledger.Events(commandContext(c), c.Int("limit"))
	if err != nil {
		return err
	}

	tbl := output.NewTable("AT", "KIND", "SOURCE", "DATASET", "DATE", "DETAIL")
	for _, ev := range events {
		tbl.AddRow(ev.At.UTC().Format("2006-01-02 15:04:05"), string(ev.Kind),
			ev.Source, ev.Dataset, ev.SnapshotDate, ev.Detail)
	}
	return emit(c, output.Result{Table: tbl, Data: events})
}
