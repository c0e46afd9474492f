package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/rbaliyan/cipherbench/harness"
	"github.com/rbaliyan/cipherbench/internal/report"
)

// EnvCommandAction prints the environment block a run report starts with.
func EnvCommandAction(ctx context.Context, cmd *cli.Command) error {
	format, err := report.ParseFormat(cmd.String("output"))
	if err != nil {
		return err
	}
	return report.WriteEnvironment(writer(cmd), format, harness.DetectEnvironment())
}

// EnvCommandBuilder constructs the cli.Command for "env".
func EnvCommandBuilder(configFile string) *cli.Command {
	return &cli.Command{
		Name:      "env",
		Usage:     "describe the Go runtime and CPU",
		UsageText: "cipherbench env [options]",
		Action:    EnvCommandAction,
		Flags: []cli.Flag{
			outputFlag(configFile, "env"),
		},
	}
}
