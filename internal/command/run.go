package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/rbaliyan/cipherbench"
	"github.com/rbaliyan/cipherbench/harness"
	"github.com/rbaliyan/cipherbench/internal/report"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitSetup = 1
	ExitRun   = 2
)

// ExitCode maps an error returned by the app to a process exit code.
// Setup failures (bad configuration, no key, unsupported cipher) exit 1;
// anything that fails once the run is under way exits 2.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case cipherbench.IsFatal(err), errors.Is(err, harness.ErrInvalidConfig):
		return ExitSetup
	default:
		return ExitRun
	}
}

// RunCommandAction runs the harness and writes the report.
func RunCommandAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := harnessConfig(cmd)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(cmd.String("output"))
	if err != nil {
		return err
	}

	keys := cipherbench.ProcessKeyHolder()
	if size := cmd.Int("key-size"); size != 32 {
		keys = cipherbench.NewKeyHolder(cipherbench.WithKeySize(size))
	}
	b, err := cipherbench.NewBench(cipherbench.WithKeyHolder(keys))
	if err != nil {
		log.WithError(err).Error("setup failed")
		return err
	}

	h, err := harness.New(b, harness.WithLogger(log.Log))
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"operations": cfg.Operations,
		"threads":    cfg.Threads,
		"order":      cfg.Order,
	}).Debug("starting run")

	res, err := h.Run(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("run failed")
		return fmt.Errorf("run failed: %w", err)
	}

	return report.Write(writer(cmd), format, res)
}

func harnessConfig(cmd *cli.Command) (harness.Config, error) {
	cfg := harness.Config{
		WarmupIterations: cmd.Int("warmup"),
		WarmupTime:       cmd.Duration("warmup-time"),
		Iterations:       cmd.Int("iterations"),
		IterationTime:    cmd.Duration("time"),
		Threads:          cmd.Int("threads"),
		Order:            harness.Order(cmd.String("order")),
		Seed:             cmd.Uint64("seed"),
	}
	for _, name := range cmd.StringSlice("ops") {
		op, err := cipherbench.ParseOperation(name)
		if err != nil {
			return harness.Config{}, fmt.Errorf("%w: %w", harness.ErrInvalidConfig, err)
		}
		cfg.Operations = append(cfg.Operations, op)
	}
	return cfg, cfg.Validate()
}

func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// RunCommandBuilder constructs the cli.Command for "run".
func RunCommandBuilder(configFile string) *cli.Command {
	def := harness.DefaultConfig()
	ops := make([]string, 0, len(def.Operations))
	for _, op := range def.Operations {
		ops = append(ops, string(op))
	}

	return &cli.Command{
		Name:      "run",
		Usage:     "run the benchmark and print a report",
		UsageText: "cipherbench run [options]",
		Action:    RunCommandAction,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "ops",
				Usage:   "operations to measure (cached, fresh, pooled)",
				Sources: sources(configFile, "run", "ops"),
				Value:   ops,
			},
			&cli.IntFlag{
				Name:    "warmup",
				Aliases: []string{"wi"},
				Usage:   "warm-up iterations per operation",
				Sources: sources(configFile, "run", "warmup"),
				Value:   def.WarmupIterations,
			},
			&cli.DurationFlag{
				Name:    "warmup-time",
				Aliases: []string{"w"},
				Usage:   "duration of each warm-up iteration",
				Sources: sources(configFile, "run", "warmup-time"),
				Value:   def.WarmupTime,
			},
			&cli.IntFlag{
				Name:    "iterations",
				Aliases: []string{"i"},
				Usage:   "measured iterations per operation",
				Sources: sources(configFile, "run", "iterations"),
				Value:   def.Iterations,
			},
			&cli.DurationFlag{
				Name:    "time",
				Aliases: []string{"r"},
				Usage:   "duration of each measured iteration",
				Sources: sources(configFile, "run", "time"),
				Value:   def.IterationTime,
			},
			&cli.IntFlag{
				Name:    "threads",
				Aliases: []string{"t"},
				Usage:   "concurrent workers, each with its own cached cipher",
				Sources: sources(configFile, "run", "threads"),
				Value:   def.Threads,
			},
			&cli.StringFlag{
				Name:    "order",
				Usage:   "iteration order (grouped, randomized)",
				Sources: sources(configFile, "run", "order"),
				Value:   string(def.Order),
			},
			&cli.Uint64Flag{
				Name:    "seed",
				Usage:   "seed for randomized order",
				Sources: sources(configFile, "run", "seed"),
			},
			&cli.IntFlag{
				Name:    "key-size",
				Usage:   "AES key size in bytes (16, 24, 32)",
				Sources: sources(configFile, "run", "key-size"),
				Value:   32,
			},
			outputFlag(configFile, "run"),
		},
	}
}
