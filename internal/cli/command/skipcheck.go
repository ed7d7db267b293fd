// Package command provides CLI command definitions for snapreg.
package command

import (
	"context"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/datalode/snapreg/internal/cli/output"
	"github.com/datalode/snapreg/internal/core/domain"
	"github.com/datalode/snapreg/internal/core/service"
)

// skipExitCode signals "source unchanged, skip the fetch" to callers.
// Distinct from 1 (error) so pipelines can branch on it.
const skipExitCode = 3

// SkipCheckCommand returns the skip-check command.
func SkipCheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "skip-check",
		Usage:     "Decide whether a source must be re-fetched",
		ArgsUsage: "SOURCE DATASET",
		Flags: []cli.Flag{
			&cli.TimestampFlag{
				Name:     "modified",
				Aliases:  []string{"m"},
				Usage:    "Modification time the source reports now (RFC 3339)",
				Layout:   time.RFC3339,
				Required: true,
			},
		},
		Action: skipCheckAction,
	}
}

func skipCheckAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return domain.ErrMissingArgument.WithDetails("usage: skip-check SOURCE DATASET")
	}
	key := domain.Key{Source: c.Args().Get(0), Dataset: c.Args().Get(1)}

	r, err := openRuntime(c)
	if err != nil {
		return err
	}
	defer r.close()

	var state service.ModifiedState = noState{}
	var recorder service.SkipRecorder
	if r.ledger != nil {
		state = r.ledger
		recorder = r.ledger
	}
	checker := service.NewSkipChecker(r.store, state, recorder)

	reported := *c.Timestamp("modified")
	decision, reason, err := checker.Check(commandContext(c), key, reported)
	if err != nil {
		return err
	}

	r.metrics.SkipDecisions.
		WithLabelValues(key.Source, key.Dataset, string(decision)).Inc()

	tbl := output.NewTable("SOURCE", "DATASET", "DECISION", "REASON")
	tbl.AddRow(key.Source, key.Dataset, string(decision), reason)
	if err := emit(c, output.Result{Table: tbl, Data: map[string]string{
		"source":   key.Source,
		"dataset":  key.Dataset,
		"decision": string(decision),
		"reason":   reason,
	}}); err != nil {
		return err
	}

	if decision == service.DecisionSkip {
		return cli.Exit("", skipExitCode)
	}
	return nil
}

// noState is the ModifiedState used when the audit ledger is disabled:
// nothing is ever recorded, so every check decides fetch.
type noState struct{}

func (noState) LastSourceModified(_ context.Context, _ domain.Key) (time.Time, bool, error) {
	return time.Time{}, false, nil
}
