// Package command provides CLI command definitions for snapreg.
package command

import (
	"context"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/urfave/cli/v2"

	"github.com/datalode/snapreg/internal/config"
	"github.com/datalode/snapreg/internal/infra/buildinfo"
	"github.com/datalode/snapreg/internal/telemetry/logger"
)

const configMetadataKey = "snapreg.config"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "snapreg",
		Usage:   "snapshot registry and governance tool",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			PromoteCommand(),
			ValidateCommand(),
			FreshnessCommand(),
			ResolveCommand(),
			SkipCheckCommand(),
			ListCommand(),
			AuditCommand(),
			VersionCommand(),
		},
		Before: setup,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file path",
			EnvVars: []string{"SNAPREG_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
	}
}

// setup loads configuration and initializes logging before any command.
func setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if c.Bool("verbose") {
		level = "debug"
	}
	log, err := logger.New(logger.Config{
		Level:  level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return err
	}
	logger.SetDefault(log)

	c.App.Metadata[configMetadataKey] = cfg
	return nil
}

// getConfig retrieves the loaded configuration from app metadata.
func getConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configMetadataKey].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// commandContext returns the command context enriched with the default
// logger and a fresh run ID, so every log line of one invocation can be
// correlated.
func commandContext(c *cli.Context) context.Context {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithLogger(ctx, logger.Default())
	return logger.WithRunID(ctx, strings.ToLower(ulid.Make().String()))
}

// maxExitCode caps finding-count exit codes below the shell's special
// range (126+ and signal codes).
const maxExitCode = 125

// gateExit converts a finding count to a process exit code.
func gateExit(count int) error {
	if count == 0 {
		return nil
	}
	if count > maxExitCode {
		count = maxExitCode
	}
	return cli.Exit("", count)
}
