// Package command provides CLI command definitions for snapreg.
package command

import (
	"github.com/urfave/cli/v2"

	"github.com/datalode/snapreg/internal/cli/output"
	"github.com/datalode/snapreg/internal/core/domain"
)

// ResolveCommand returns the resolve command.
func ResolveCommand() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Resolve the snapshot dates a reader should load for a dataset",
		ArgsUsage: "SOURCE DATASET",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "strategy",
				Aliases: []string{"s"},
				Usage:   "Override the configured strategy: latest, baseline-plus-latest, all",
			},
			&cli.StringFlag{
				Name:    "baseline",
				Aliases: []string{"b"},
				Usage:   "Override the configured baseline date (YYYY-MM-DD)",
			},
		},
		Action: resolveAction,
	}
}

func resolveAction(c *cli.Context) error {
	if c.NArg() != 2 {
		return domain.ErrMissingArgument.WithDetails("usage: resolve SOURCE DATASET")
	}
	source, dataset := c.Args().Get(0), c.Args().Get(1)

	r, err := openRuntime(c)
	if err != nil {
		return err
	}
	defer r.close()

	sel, err := resolveSelection(c, source)
	if err != nil {
		return err
	}

	dates, err := r.resolver().Resolve(commandContext(c), source, dataset, sel)
	if err != nil {
		return err
	}

	tbl := output.NewTable("DATE")
	names := make([]string, len(dates))
	for i, d := range dates {
		names[i] = d.String()
		tbl.AddRow(d.String())
	}
	return emit(c, output.Result{Table: tbl, Data: map[string]any{
		"source":   source,
		"dataset":  dataset,
		"strategy": sel.Strategy.String(),
		"dates":    names,
	}})
}

// resolveSelection builds the selection from flags, falling back to the
// per-source configuration for anything not overridden.
func resolveSelection(c *cli.Context, source string) (domain.Selection, error) {
	cfg := getConfig(c)

	var sel domain.Selection
	if c.IsSet("strategy") {
		strategy, err := domain.ParseStrategy(c.String("strategy"))
		if err != nil {
			return domain.Selection{}, err
		}
		sel.Strategy = strategy
	} else {
		configured, err := cfg.SelectionFor(source)
		if err != nil {
			return domain.Selection{}, err
		}
		sel = configured
	}

	if c.IsSet("baseline") {
		baseline, err := domain.ParseDate(c.String("baseline"))
		if err != nil {
			return domain.Selection{}, err
		}
		sel.Baseline = baseline
	}
	return sel, sel.Validate()
}
