// Package command provides CLI command definitions for snapreg.
package command

import (
	"github.com/urfave/cli/v2"

	"github.com/datalode/snapreg/internal/cli/output"
	"github.com/datalode/snapreg/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show build information",
		Action: versionAction,
	}
}

func versionAction(c *cli.Context) error {
	info := buildinfo.Get()

	tbl := output.NewTable("VERSION", "COMMIT", "BUILT", "GO")
	tbl.AddRow(info.Version, info.Commit, info.BuildTime, info.GoVersion)
	return emit(c, output.Result{Table: tbl, Data: info})
}
