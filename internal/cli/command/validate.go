// Package command provides CLI command definitions for snapreg.
package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"

	"github.com/datalode/snapreg/internal/cli/output"
	"github.com/datalode/snapreg/internal/core/service"
	"github.com/datalode/snapreg/internal/infra/confloader"
	"github.com/datalode/snapreg/internal/infra/shutdown"
	"github.com/datalode/snapreg/internal/telemetry/logger"
)

// ValidateCommand returns the validate command.
//
// The exit code is the violation count (capped), so CI can gate on it.
func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Cross-check registry entries against manifests and snapshot files",
		ArgsUsage: "[SOURCE...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Keep running and re-validate when the registry or data tree changes",
			},
		},
		Action: validateAction,
	}
}

func validateAction(c *cli.Context) error {
	r, err := openRuntime(c)
	if err != nil {
		return err
	}
	defer r.close()

	sources := c.Args().Slice()
	if c.Bool("watch") {
		return validateWatch(c, r, sources)
	}

	report, err := runValidation(commandContext(c), r, sources)
	if err != nil {
		return err
	}
	if err := emit(c, validationResult(report)); err != nil {
		return err
	}
	return gateExit(report.Count())
}

// runValidation executes one validation pass and records its metrics.
func runValidation(ctx context.Context, r *runtime, sources []string) (*service.Report, error) {
	report, err := r.validator().Validate(ctx, sources...)
	if err != nil {
		return nil, err
	}

	byKind := report.CountByKind()
	for _, kind := range []service.ViolationKind{
		service.KindMissingManifest,
		service.KindUnreadableManifest,
		service.KindRowCountMismatch,
		service.KindRowCountDrift,
		service.KindContentHashMismatch,
	} {
		r.metrics.ValidationViolations.WithLabelValues(string(kind)).Set(float64(byKind[kind]))
	}
	return report, nil
}

// validateWatch re-runs validation whenever the registry file or the data
// root changes, until interrupted. Change bursts are rate-limited so one
// ingestion run triggers one re-validation, not hundreds.
func validateWatch(c *cli.Context, r *runtime, sources []string) error {
	ctx, stop := shutdown.WithSignals(commandContext(c))
	defer stop()

	watcher, err := confloader.NewWatcher(confloader.WithRateLimit(rate.Limit(0.2), 1))
	if err != nil {
		return err
	}
	defer watcher.Stop()

	if err := watcher.Watch(r.cfg.Registry.Path); err != nil {
		return err
	}
	if err := watcher.WatchDir(r.cfg.Registry.DataRoot); err != nil {
		return err
	}

	trigger := make(chan struct{}, 1)
	watcher.OnChange(func(string) {
		select {
		case trigger <- struct{}{}:
		default:
		}
	})
	watcher.StartAsync()

	// Initial pass before the first change.
	for {
		report, err := runValidation(ctx, r, sources)
		if err != nil {
			return err
		}
		logger.L(ctx).Info("validation pass complete",
			"checked", report.Checked,
			"violations", report.Count(),
		)
		if path := r.cfg.Metrics.Textfile; path != "" {
			if err := r.metrics.WriteTextfile(path); err != nil {
				logger.L(ctx).Error("write metrics textfile", "path", path, "error", err)
			}
		}

		select {
		case <-trigger:
		case <-ctx.Done():
			return nil
		}
	}
}

func validationResult(report *service.Report) output.Result {
	tbl := output.NewTable("KIND", "SOURCE", "DATASET", "DATE", "EXPECTED", "ACTUAL", "DETAIL")
	for _, v := range report.Violations {
		expected, actual := "", ""
		if v.Expected != 0 || v.Actual != 0 {
			expected = fmt.Sprintf("%d", v.Expected)
			actual = fmt.Sprintf("%d", v.Actual)
		}
		tbl.AddRow(string(v.Kind), v.Source, v.Dataset, v.Date, expected, actual, v.Detail)
	}
	return output.Result{Table: tbl, Data: report}
}
