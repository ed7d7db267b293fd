// Package command provides CLI command definitions for snapreg.
package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/datalode/snapreg/internal/cli/output"
	"github.com/datalode/snapreg/internal/core/domain"
	"github.com/datalode/snapreg/internal/core/service"
	"github.com/datalode/snapreg/internal/storage/manifest"
)

// PromoteCommand returns the promote command.
func PromoteCommand() *cli.Command {
	return &cli.Command{
		Name:      "promote",
		Usage:     "Promote a snapshot to Current for its dataset",
		ArgsUsage: "SOURCE DATASET DATE",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:    "rows",
				Aliases: []string{"r"},
				Usage:   "Row count of the snapshot (defaults to the manifest's)",
			},
			&cli.BoolFlag{
				Name:  "baseline",
				Usage: "Demote the superseded entry to Historical instead of Superseded",
			},
			&cli.BoolFlag{
				Name:  "strict-anomaly",
				Usage: "Refuse the promotion when the anomaly check flags it",
			},
			&cli.StringFlag{
				Name:  "coverage-start",
				Usage: "Start of the logical coverage range (e.g., 2020)",
			},
			&cli.StringFlag{
				Name:  "coverage-end",
				Usage: "End of the logical coverage range (e.g., 2024)",
			},
			&cli.StringFlag{
				Name:  "notes",
				Usage: "Free-text annotation for the registry entry",
			},
			&cli.TimestampFlag{
				Name:   "source-modified",
				Usage:  "Upstream modification time (RFC 3339), recorded for skip-detection",
				Layout: time.RFC3339,
			},
		},
		Action: promoteAction,
	}
}

func promoteAction(c *cli.Context) error {
	if c.NArg() != 3 {
		return domain.ErrMissingArgument.WithDetails("usage: promote SOURCE DATASET DATE")
	}
	source, dataset := c.Args().Get(0), c.Args().Get(1)
	date, err := domain.ParseDate(c.Args().Get(2))
	if err != nil {
		return err
	}

	r, err := openRuntime(c)
	if err != nil {
		return err
	}
	defer r.close()

	entry := &domain.SnapshotEntry{
		Source:        source,
		Dataset:       dataset,
		SnapshotDate:  date,
		Status:        domain.StatusPending,
		CoverageStart: c.String("coverage-start"),
		CoverageEnd:   c.String("coverage-end"),
		Notes:         c.String("notes"),
		RowCount:      c.Int64("rows"),
	}

	// Without an explicit row count, trust the ingestion manifest.
	if !c.IsSet("rows") {
		rec, err := r.layout.Read(entry.EntryKey())
		if errors.Is(err, manifest.ErrNotFound) {
			return domain.ErrMissingArgument.WithDetails(
				"--rows not given and no manifest at " + r.layout.ManifestPath(entry.EntryKey()))
		}
		if err != nil {
			return err
		}
		entry.RowCount = rec.RowCount
	}

	req := service.PromoteRequest{
		Entry:         entry,
		AsBaseline:    c.Bool("baseline"),
		StrictAnomaly: c.Bool("strict-anomaly"),
	}
	if t := c.Timestamp("source-modified"); t != nil {
		req.SourceModifiedAt = *t
	}

	res, err := r.promoter().Promote(commandContext(c), req)
	if err != nil {
		code := domain.GetErrorCode(err)
		r.metrics.PromotionRejects.WithLabelValues(source, dataset, code).Inc()
		return err
	}

	r.metrics.Promotions.WithLabelValues(source, dataset).Inc()
	if res.Anomaly.Flagged {
		r.metrics.AnomaliesFlagged.WithLabelValues(source, dataset).Inc()
	}

	return emit(c, promoteResult(res))
}

func promoteResult(res *service.PromoteResult) output.Result {
	e := res.Promotion.Entry

	tbl := output.NewTable("SOURCE", "DATASET", "DATE", "STATUS", "ROWS", "SUPERSEDED")
	superseded := ""
	if d := res.Promotion.Demoted; d != nil {
		superseded = fmt.Sprintf("%s (%s)", d.SnapshotDate, d.Status)
	}
	tbl.AddRow(e.Source, e.Dataset, e.SnapshotDate.String(), e.Status.String(),
		fmt.Sprintf("%d", e.RowCount), superseded)

	data := map[string]any{
		"entry":      e,
		"idempotent": res.Promotion.Idempotent,
	}
	if res.Promotion.Demoted != nil {
		data["superseded"] = res.Promotion.Demoted
	}
	if res.Anomaly != nil && !res.Anomaly.FirstLoad {
		data["anomaly"] = res.Anomaly
	}
	return output.Result{Table: tbl, Data: data}
}
