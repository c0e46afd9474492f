package harness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbaliyan/cipherbench"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no operations", func(c *Config) { c.Operations = nil }},
		{"unknown operation", func(c *Config) { c.Operations = []cipherbench.Operation{"slow"} }},
		{"duplicate operation", func(c *Config) {
			c.Operations = []cipherbench.Operation{cipherbench.OpFresh, cipherbench.OpFresh}
		}},
		{"negative warmup", func(c *Config) { c.WarmupIterations = -1 }},
		{"zero warmup time", func(c *Config) { c.WarmupTime = 0 }},
		{"no iterations", func(c *Config) { c.Iterations = 0 }},
		{"zero iteration time", func(c *Config) { c.IterationTime = 0 }},
		{"no threads", func(c *Config) { c.Threads = 0 }},
		{"unknown order", func(c *Config) { c.Order = "sideways" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfigValidateNoWarmup(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WarmupIterations = 0
	cfg.WarmupTime = 0
	assert.NoError(t, cfg.Validate())
}

func TestPlanGrouped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WarmupIterations = 1
	cfg.Iterations = 2

	want := []Step{
		{cipherbench.OpCached, PhaseWarmup, 1},
		{cipherbench.OpCached, PhaseMeasurement, 1},
		{cipherbench.OpCached, PhaseMeasurement, 2},
		{cipherbench.OpFresh, PhaseWarmup, 1},
		{cipherbench.OpFresh, PhaseMeasurement, 1},
		{cipherbench.OpFresh, PhaseMeasurement, 2},
	}
	assert.Equal(t, want, Plan(cfg))
}

func TestPlanRandomized(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Operations = cipherbench.Operations()
	cfg.WarmupIterations = 4
	cfg.Iterations = 6
	cfg.WarmupTime = time.Millisecond
	cfg.Order = OrderRandomized
	cfg.Seed = 7

	plan := Plan(cfg)
	require.Len(t, plan, 3*(4+6))
	assert.Equal(t, plan, Plan(cfg), "same seed must give the same plan")

	// Every warm-up step precedes every measured step.
	for i, s := range plan {
		if i < 12 {
			assert.Equal(t, PhaseWarmup, s.Phase)
		} else {
			assert.Equal(t, PhaseMeasurement, s.Phase)
		}
	}

	counts := make(map[cipherbench.Operation]int)
	for _, s := range plan {
		counts[s.Operation]++
	}
	for _, op := range cfg.Operations {
		assert.Equal(t, 10, counts[op], "operation %s", op)
	}

	cfg.Seed = 8
	assert.NotEqual(t, plan, Plan(cfg), "different seeds should shuffle differently")
}
