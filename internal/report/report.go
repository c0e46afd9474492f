// Package report renders harness results for the terminal or for machines.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/rbaliyan/config/codec"
	"gopkg.in/yaml.v3"

	"github.com/rbaliyan/cipherbench"
	"github.com/rbaliyan/cipherbench/harness"
)

// Format is an output format.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{Text, JSON, YAML}
}

// ParseFormat validates s as a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("report: unknown format %q", s)
}

// Write renders res to w.
func Write(w io.Writer, f Format, res *harness.Result) error {
	switch f {
	case Text:
		return writeText(w, res)
	default:
		return encode(w, f, res)
	}
}

// WriteEnvironment renders env to w.
func WriteEnvironment(w io.Writer, f Format, env harness.Environment) error {
	if f == Text {
		_, err := io.WriteString(w, environmentLines(env))
		return err
	}
	return encode(w, f, env)
}

func encode(w io.Writer, f Format, v any) error {
	var (
		data []byte
		err  error
	)
	switch f {
	case JSON:
		data, err = codec.JSON().Encode(v)
	case YAML:
		data, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("report: unknown format %q", f)
	}
	if err != nil {
		return fmt.Errorf("report: %s encode failed: %w", f, err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if f == JSON {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

func environmentLines(env harness.Environment) string {
	aes := "no"
	if env.AESHardware {
		aes = "yes"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Go %s %s/%s, GOMAXPROCS %d, AES hardware: %s\n",
		env.GoVersion, env.OS, env.Arch, env.GOMAXPROCS, aes)
	if env.CPUModel != "" {
		fmt.Fprintf(&b, "# CPU: %s (%d logical)\n", env.CPUModel, env.LogicalCPUs)
	}
	return b.String()
}

func writeText(w io.Writer, res *harness.Result) error {
	cfg := res.Config
	var b strings.Builder
	b.WriteString(environmentLines(res.Environment))
	fmt.Fprintf(&b, "# Warmup: %d x %s, Measurement: %d x %s, Threads: %d, Order: %s\n",
		cfg.WarmupIterations, cfg.WarmupTime,
		cfg.Iterations, cfg.IterationTime,
		cfg.Threads, cfg.Order)
	if cfg.Order == harness.OrderRandomized {
		fmt.Fprintf(&b, "# Seed: %d\n", cfg.Seed)
	}
	b.WriteString("\n")

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Operation\tMode\tCnt\tScore\t\tError\tUnits\tOps\tHandles\t")
	for _, s := range res.Scores {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t±\t%s\t%s\t%s\t%s\t\n",
			s.Operation, s.Mode, s.Samples,
			humanize.FormatFloat("#,###.###", s.Mean),
			humanize.FormatFloat("#,###.###", s.Error),
			s.Unit,
			humanize.Comma(s.Ops),
			humanize.Comma(s.Constructions))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	// Ratios against the cached path.
	sep := "\n"
	for _, s := range res.Scores {
		if s.Operation == cipherbench.OpCached {
			continue
		}
		if x, ok := res.Speedup(cipherbench.OpCached, s.Operation); ok {
			fmt.Fprintf(&b, "%s%s/%s: %sx\n", sep, s.Operation, cipherbench.OpCached, humanize.FormatFloat("#,###.##", x))
			sep = ""
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
