// Package command provides CLI command definitions for snapreg.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/datalode/snapreg/internal/cli/output"
	"github.com/datalode/snapreg/internal/core/domain"
	"github.com/datalode/snapreg/internal/telemetry/metric"
)

// FreshnessCommand returns the check-freshness command.
//
// The exit code is the number of non-fresh datasets (capped), so CI can
// gate on staleness.
func FreshnessCommand() *cli.Command {
	return &cli.Command{
		Name:      "check-freshness",
		Usage:     "Classify every Current snapshot's age against policy",
		ArgsUsage: "[SOURCE...]",
		Action:    freshnessAction,
	}
}

func freshnessAction(c *cli.Context) error {
	r, err := openRuntime(c)
	if err != nil {
		return err
	}
	defer r.close()

	statuses, err := r.monitor().Assess(commandContext(c), c.Args().Slice()...)
	if err != nil {
		return err
	}

	findings := 0
	tbl := output.NewTable("SOURCE", "DATASET", "DATE", "AGE", "TIER")
	for _, s := range statuses {
		if s.Tier != domain.TierFresh {
			findings++
		}
		r.metrics.SnapshotAgeSeconds.
			WithLabelValues(s.Key.Source, s.Key.Dataset).Set(s.Age.Seconds())
		r.metrics.FreshnessTier.
			WithLabelValues(s.Key.Source, s.Key.Dataset).Set(metric.TierValue(string(s.Tier)))

		tbl.AddRow(s.Key.Source, s.Key.Dataset, s.SnapshotDate.String(),
			fmt.Sprintf("%dd", int(s.Age.Hours()/24)), string(s.Tier))
	}

	if err := emit(c, output.Result{Table: tbl, Data: statuses}); err != nil {
		return err
	}
	return gateExit(findings)
}
