package harness

import (
	"github.com/rbaliyan/cipherbench"
)

// Score is the measured latency of one operation.
type Score struct {
	Operation cipherbench.Operation `json:"operation" yaml:"operation"`
	Mode      string                `json:"mode" yaml:"mode"`
	Unit      string                `json:"unit" yaml:"unit"`
	Summary   `yaml:",inline"`
	// Ops counts measured invocations across all workers and iterations.
	Ops int64 `json:"ops" yaml:"ops"`
	// Constructions counts cipher handles built during measurement.
	Constructions int64 `json:"constructions" yaml:"constructions"`
}

// Result is the outcome of a harness run.
type Result struct {
	Environment Environment `json:"environment" yaml:"environment"`
	Config      Config      `json:"config" yaml:"config"`
	Scores      []Score     `json:"scores" yaml:"scores"`
}

// Score returns the score of op.
func (r *Result) Score(op cipherbench.Operation) (Score, bool) {
	for _, s := range r.Scores {
		if s.Operation == op {
			return s, true
		}
	}
	return Score{}, false
}

// Speedup returns how many times faster base is than other, by mean latency.
// It reports false unless both operations were measured.
func (r *Result) Speedup(base, other cipherbench.Operation) (float64, bool) {
	b, ok := r.Score(base)
	if !ok || b.Mean <= 0 {
		return 0, false
	}
	o, ok := r.Score(other)
	if !ok {
		return 0, false
	}
	return o.Mean / b.Mean, true
}
