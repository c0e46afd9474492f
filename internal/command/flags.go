package command

import (
	"fmt"
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/rbaliyan/cipherbench/internal/report"
)

// sources chains the CIPHERBENCH_<NAME> env variable and the <section>.<name>
// key of configFile.
func sources(configFile, section, name string) cli.ValueSourceChain {
	env := "CIPHERBENCH_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	return cli.NewValueSourceChain(
		cli.EnvVar(env),
		yaml.YAML(section+"."+name, altsrc.StringSourcer(configFile)),
	)
}

func outputFlag(configFile, section string) cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format (text, json, yaml)",
		Sources: sources(configFile, section, "output"),
		Value:   string(report.Text),
		Validator: func(value string) error {
			if _, err := report.ParseFormat(value); err != nil {
				return fmt.Errorf("invalid --output: %w", err)
			}
			return nil
		},
	}
}
