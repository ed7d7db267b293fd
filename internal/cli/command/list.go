// Package command provides CLI command definitions for snapreg.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/datalode/snapreg/internal/cli/output"
	"github.com/datalode/snapreg/internal/core/domain"
)

// ListCommand returns the list command.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List registry entries",
		ArgsUsage: "[SOURCE [DATASET]]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "status",
				Aliases: []string{"s"},
				Usage:   "Filter by status (repeatable): pending, current, historical, superseded, archived",
			},
		},
		Action: listAction,
	}
}

func listAction(c *cli.Context) error {
	r, err := openRuntime(c)
	if err != nil {
		return err
	}
	defer r.close()

	statuses, err := parseStatuses(c.StringSlice("status"))
	if err != nil {
		return err
	}

	ctx := commandContext(c)
	var entries []*domain.SnapshotEntry
	switch c.NArg() {
	case 0, 1:
		all, err := r.store.All(ctx)
		if err != nil {
			return err
		}
		source := c.Args().Get(0)
		for _, e := range all {
			if source != "" && e.Source != source {
				continue
			}
			if len(statuses) > 0 && !containsStatus(statuses, e.Status) {
				continue
			}
			entries = append(entries, e)
		}
	case 2:
		entries, err = r.store.Query(ctx, c.Args().Get(0), c.Args().Get(1), statuses...)
		if err != nil {
			return err
		}
	default:
		return domain.ErrInvalidArgument.WithDetails("usage: list [SOURCE [DATASET]]")
	}

	tbl := output.NewTable("SOURCE", "DATASET", "DATE", "STATUS", "ROWS", "COVERAGE", "PROMOTED")
	for _, e := range entries {
		coverage := ""
		if e.CoverageStart != "" || e.CoverageEnd != "" {
			coverage = e.CoverageStart + ".." + e.CoverageEnd
		}
		promoted := ""
		if !e.PromotedAt.IsZero() {
			promoted = e.PromotedAt.UTC().Format("2006-01-02 15:04")
		}
		tbl.AddRow(e.Source, e.Dataset, e.SnapshotDate.String(), e.Status.String(),
			fmt.Sprintf("%d", e.RowCount), coverage, promoted)
	}
	return emit(c, output.Result{Table: tbl, Data: entries})
}

func parseStatuses(names []string) ([]domain.Status, error) {
	out := make([]domain.Status, 0, len(names))
	for _, name := range names {
		s, err := domain.ParseStatus(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func containsStatus(set []domain.Status, s domain.Status) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}
