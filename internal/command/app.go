// Package command builds the cipherbench command line.
package command

import (
	"os"
	"sort"

	"github.com/urfave/cli/v3"
)

// DefaultConfigFile is read for flag defaults unless CIPHERBENCH_CONFIG names another file.
const DefaultConfigFile = "cipherbench.yaml"

// ConfigFile returns the YAML file flag values are sourced from.
func ConfigFile() string {
	if p := os.Getenv("CIPHERBENCH_CONFIG"); p != "" {
		return p
	}
	return DefaultConfigFile
}

// NewApp returns the root command. Flag values come from the command line,
// then CIPHERBENCH_* env variables, then configFile.
func NewApp(configFile string) *cli.Command {
	app := &cli.Command{
		Name:  "cipherbench",
		Usage: "compare cached and fresh AES cipher construction",
		Commands: []*cli.Command{
			RunCommandBuilder(configFile),
			EnvCommandBuilder(configFile),
		},
	}

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app
}
