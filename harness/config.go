package harness

import (
	"errors"
	"fmt"
	"time"

	"github.com/rbaliyan/cipherbench"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("harness: invalid config")

// Order controls how iterations of different operations are scheduled.
type Order string

const (
	// OrderGrouped runs all iterations of one operation before the next.
	OrderGrouped Order = "grouped"
	// OrderRandomized shuffles warm-up steps, then shuffles measurement steps,
	// so no operation always runs on a colder or hotter machine.
	OrderRandomized Order = "randomized"
)

// Config describes one harness run.
type Config struct {
	Operations       []cipherbench.Operation `json:"operations" yaml:"operations"`
	WarmupIterations int                     `json:"warmup_iterations" yaml:"warmup_iterations"`
	WarmupTime       time.Duration           `json:"warmup_time" yaml:"warmup_time"`
	Iterations       int                     `json:"iterations" yaml:"iterations"`
	IterationTime    time.Duration           `json:"iteration_time" yaml:"iteration_time"`
	Threads          int                     `json:"threads" yaml:"threads"`
	Order            Order                   `json:"order" yaml:"order"`
	Seed             uint64                  `json:"seed" yaml:"seed"`
}

// DefaultConfig returns a short run of the cached and fresh operations:
// 3 warm-up and 3 measured iterations of one second on one worker.
func DefaultConfig() Config {
	return Config{
		Operations:       []cipherbench.Operation{cipherbench.OpCached, cipherbench.OpFresh},
		WarmupIterations: 3,
		WarmupTime:       time.Second,
		Iterations:       3,
		IterationTime:    time.Second,
		Threads:          1,
		Order:            OrderGrouped,
	}
}

// Validate checks that c describes a runnable benchmark.
func (c Config) Validate() error {
	if len(c.Operations) == 0 {
		return fmt.Errorf("%w: no operations", ErrInvalidConfig)
	}
	seen := make(map[cipherbench.Operation]bool, len(c.Operations))
	for _, op := range c.Operations {
		if _, err := cipherbench.ParseOperation(string(op)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		if seen[op] {
			return fmt.Errorf("%w: duplicate operation %q", ErrInvalidConfig, op)
		}
		seen[op] = true
	}
	if c.WarmupIterations < 0 {
		return fmt.Errorf("%w: negative warm-up iterations", ErrInvalidConfig)
	}
	if c.WarmupIterations > 0 && c.WarmupTime <= 0 {
		return fmt.Errorf("%w: warm-up time must be positive", ErrInvalidConfig)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("%w: at least one measured iteration is required", ErrInvalidConfig)
	}
	if c.IterationTime <= 0 {
		return fmt.Errorf("%w: iteration time must be positive", ErrInvalidConfig)
	}
	if c.Threads < 1 {
		return fmt.Errorf("%w: at least one thread is required", ErrInvalidConfig)
	}
	switch c.Order {
	case OrderGrouped, OrderRandomized:
	default:
		return fmt.Errorf("%w: unknown order %q", ErrInvalidConfig, c.Order)
	}
	return nil
}
