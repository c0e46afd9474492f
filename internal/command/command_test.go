package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/rbaliyan/cipherbench"
	"github.com/rbaliyan/cipherbench/harness"
)

func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.yaml")
}

// captureConfig runs "run" with args and returns the harness config the
// action would use, without running the benchmark.
func captureConfig(t *testing.T, configFile string, args ...string) (harness.Config, error) {
	t.Helper()
	app := NewApp(configFile)
	var got harness.Config
	var cfgErr error
	for _, cmd := range app.Commands {
		if cmd.Name == "run" {
			cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
				got, cfgErr = harnessConfig(cmd)
				return nil
			}
		}
	}
	require.NoError(t, app.Run(context.Background(), append([]string{"cipherbench", "run"}, args...)))
	return got, cfgErr
}

func TestRunDefaults(t *testing.T) {
	cfg, err := captureConfig(t, missingConfig(t))
	require.NoError(t, err)
	assert.Equal(t, harness.DefaultConfig(), cfg)
}

func TestRunFlags(t *testing.T) {
	cfg, err := captureConfig(t, missingConfig(t),
		"--threads", "4",
		"--iterations", "5",
		"--time", "250ms",
		"--warmup", "0",
		"--order", "randomized",
		"--seed", "42",
	)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Threads)
	assert.Equal(t, 5, cfg.Iterations)
	assert.Equal(t, 250*time.Millisecond, cfg.IterationTime)
	assert.Equal(t, 0, cfg.WarmupIterations)
	assert.Equal(t, harness.OrderRandomized, cfg.Order)
	assert.Equal(t, uint64(42), cfg.Seed)
}

func TestRunEnvOverridesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cipherbench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("run:\n  threads: 3\n  iterations: 7\n"), 0o600))
	t.Setenv("CIPHERBENCH_THREADS", "6")

	cfg, err := captureConfig(t, path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Threads, "env wins over the config file")
	assert.Equal(t, 7, cfg.Iterations, "config file wins over the default")
}

func TestRunInvalidOrder(t *testing.T) {
	_, err := captureConfig(t, missingConfig(t), "--order", "sideways")
	assert.ErrorIs(t, err, harness.ErrInvalidConfig)
	assert.Equal(t, ExitSetup, ExitCode(err))
}

func TestConfigFile(t *testing.T) {
	t.Setenv("CIPHERBENCH_CONFIG", "")
	assert.Equal(t, DefaultConfigFile, ConfigFile())
	t.Setenv("CIPHERBENCH_CONFIG", "/etc/cipherbench.yaml")
	assert.Equal(t, "/etc/cipherbench.yaml", ConfigFile())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitSetup, ExitCode(cipherbench.ErrKeyGeneration))
	assert.Equal(t, ExitSetup, ExitCode(harness.ErrInvalidConfig))
	assert.Equal(t, ExitRun, ExitCode(context.Canceled))
	assert.Equal(t, ExitRun, ExitCode(errors.New("boom")))
}

func TestRunCommandJSON(t *testing.T) {
	app := NewApp(missingConfig(t))
	var out bytes.Buffer
	app.Writer = &out

	err := app.Run(context.Background(), []string{
		"cipherbench", "run",
		"--warmup", "0",
		"--iterations", "2",
		"--time", "5ms",
		"--output", "json",
	})
	require.NoError(t, err)

	var res harness.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	require.Len(t, res.Scores, 2)
	for _, s := range res.Scores {
		assert.Equal(t, 2, s.Samples)
		assert.Positive(t, s.Mean)
	}
}

func TestRunCommandText(t *testing.T) {
	app := NewApp(missingConfig(t))
	var out bytes.Buffer
	app.Writer = &out

	err := app.Run(context.Background(), []string{
		"cipherbench", "run",
		"--warmup", "0",
		"--iterations", "2",
		"--time", "5ms",
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Operation")
	assert.Contains(t, text, "ns/op")
	assert.Contains(t, text, "fresh/cached:")
}

func TestRunCommandInvalidKeySize(t *testing.T) {
	app := NewApp(missingConfig(t))
	app.Writer = &bytes.Buffer{}

	err := app.Run(context.Background(), []string{
		"cipherbench", "run",
		"--warmup", "0",
		"--iterations", "1",
		"--time", "1ms",
		"--key-size", "20",
	})
	require.Error(t, err)
	assert.True(t, cipherbench.IsInvalidKeySize(err), "got %v", err)
	assert.Equal(t, ExitSetup, ExitCode(err))
}

func TestEnvCommand(t *testing.T) {
	app := NewApp(missingConfig(t))
	var out bytes.Buffer
	app.Writer = &out

	require.NoError(t, app.Run(context.Background(), []string{"cipherbench", "env"}))
	assert.True(t, strings.HasPrefix(out.String(), "# Go "), out.String())
}
