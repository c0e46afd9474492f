// Package harness times cipherbench operations the way JMH times benchmark
// methods in average-time mode: warm-up iterations are run and discarded,
// then each measured iteration yields one ns/op sample per operation, and
// samples are summarized as a mean with a 99.9% confidence error.
//
// Usage:
//
//	b, err := cipherbench.NewBench()
//	h, err := harness.New(b)
//	res, err := h.Run(ctx, harness.DefaultConfig())
package harness

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/apex/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/rbaliyan/cipherbench"
)

const instrumentationName = "github.com/rbaliyan/cipherbench/harness"

// Phase distinguishes discarded warm-up iterations from measured ones.
type Phase string

const (
	PhaseWarmup      Phase = "warmup"
	PhaseMeasurement Phase = "measurement"
)

// Step is one scheduled iteration.
type Step struct {
	Operation cipherbench.Operation
	Phase     Phase
	Iteration int // 1-based within its operation and phase
}

// Harness runs iterations against a Bench.
type Harness struct {
	bench  *cipherbench.Bench
	log    log.Interface
	tracer trace.Tracer

	opsCounter metric.Int64Counter
	scoreHist  metric.Float64Histogram

	sink atomic.Uint64
}

// Option configures a Harness.
type Option func(*options)

type options struct {
	logger         log.Interface
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
}

// WithLogger sets the logger. Defaults to the apex/log package logger.
func WithLogger(l log.Interface) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTracerProvider sets the tracer provider. Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider. Defaults to the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meterProvider = mp
	}
}

// New creates a harness for b.
func New(b *cipherbench.Bench, opts ...Option) (*Harness, error) {
	if b == nil {
		return nil, fmt.Errorf("harness: New bench is nil")
	}
	o := options{
		logger:         log.Log,
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	meter := o.meterProvider.Meter(instrumentationName)
	opsCounter, err := meter.Int64Counter("cipherbench.operations",
		metric.WithDescription("Operations completed by harness workers."),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("harness: failed to create counter: %w", err)
	}
	scoreHist, err := meter.Float64Histogram("cipherbench.iteration.duration",
		metric.WithDescription("Average latency per operation of measured iterations."),
		metric.WithUnit("ns"),
	)
	if err != nil {
		return nil, fmt.Errorf("harness: failed to create histogram: %w", err)
	}

	return &Harness{
		bench:      b,
		log:        o.logger,
		tracer:     o.tracerProvider.Tracer(instrumentationName),
		opsCounter: opsCounter,
		scoreHist:  scoreHist,
	}, nil
}

// Plan returns the iterations cfg schedules, in execution order.
// Randomized plans depend only on cfg.Seed.
func Plan(cfg Config) []Step {
	var warmup, measure []Step
	for _, op := range cfg.Operations {
		for i := 1; i <= cfg.WarmupIterations; i++ {
			warmup = append(warmup, Step{Operation: op, Phase: PhaseWarmup, Iteration: i})
		}
		for i := 1; i <= cfg.Iterations; i++ {
			measure = append(measure, Step{Operation: op, Phase: PhaseMeasurement, Iteration: i})
		}
	}

	if cfg.Order != OrderRandomized {
		steps := make([]Step, 0, len(warmup)+len(measure))
		for _, op := range cfg.Operations {
			for _, s := range warmup {
				if s.Operation == op {
					steps = append(steps, s)
				}
			}
			for _, s := range measure {
				if s.Operation == op {
					steps = append(steps, s)
				}
			}
		}
		return steps
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	rng.Shuffle(len(warmup), func(i, j int) { warmup[i], warmup[j] = warmup[j], warmup[i] })
	rng.Shuffle(len(measure), func(i, j int) { measure[i], measure[j] = measure[j], measure[i] })
	return append(warmup, measure...)
}

// Run executes cfg. The first operation error, or cancellation of ctx,
// aborts the run and is returned.
func (h *Harness) Run(ctx context.Context, cfg Config) (res *Result, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, span := h.tracer.Start(ctx, "harness.Run", trace.WithAttributes(
		attribute.Int("threads", cfg.Threads),
		attribute.String("order", string(cfg.Order)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	// Workers, and so their cache slots, live for the whole run.
	workers := make([]*cipherbench.Worker, cfg.Threads)
	for i := range workers {
		workers[i] = h.bench.NewWorker()
	}
	defer func() {
		for _, w := range workers {
			w.Close()
		}
	}()

	samples := make(map[cipherbench.Operation][]float64, len(cfg.Operations))
	ops := make(map[cipherbench.Operation]int64, len(cfg.Operations))
	built := make(map[cipherbench.Operation]int64, len(cfg.Operations))

	for _, step := range Plan(cfg) {
		d := cfg.IterationTime
		if step.Phase == PhaseWarmup {
			d = cfg.WarmupTime
		}

		before := h.constructions(step.Operation)
		it, err := h.iteration(ctx, step, d, workers)
		if err != nil {
			return nil, err
		}

		logger := h.log.WithFields(log.Fields{
			"operation": step.Operation,
			"phase":     step.Phase,
			"iteration": step.Iteration,
		})
		logger.Debugf("%.3f ns/op over %d ops", it.score, it.ops)

		if step.Phase == PhaseMeasurement {
			samples[step.Operation] = append(samples[step.Operation], it.score)
			ops[step.Operation] += it.ops
			if step.Operation == cipherbench.OpFresh {
				built[step.Operation] += it.ops
			} else {
				built[step.Operation] += h.constructions(step.Operation) - before
			}
			h.scoreHist.Record(ctx, it.score, metric.WithAttributes(
				attribute.String("operation", string(step.Operation)),
			))
		}
	}

	res = &Result{
		Environment: DetectEnvironment(),
		Config:      cfg,
	}
	for _, op := range cfg.Operations {
		s := Score{
			Operation:     op,
			Mode:          "avgt",
			Unit:          "ns/op",
			Summary:       Summarize(samples[op]),
			Ops:           ops[op],
			Constructions: built[op],
		}
		res.Scores = append(res.Scores, s)
		h.log.WithFields(log.Fields{
			"operation": op,
			"samples":   s.Samples,
		}).Infof("%.3f ± %.3f ns/op", s.Mean, s.Error)
	}
	return res, nil
}

func (h *Harness) constructions(op cipherbench.Operation) int64 {
	switch op {
	case cipherbench.OpCached:
		return h.bench.Cache().Constructions()
	case cipherbench.OpPooled:
		return h.bench.Pool().Constructions()
	default:
		return 0
	}
}

type iterationResult struct {
	score float64 // mean ns/op across workers
	ops   int64
}

// iteration runs every worker on step's operation for d. Each worker
// completes at least one operation.
func (h *Harness) iteration(ctx context.Context, step Step, d time.Duration, workers []*cipherbench.Worker) (iterationResult, error) {
	threads := len(workers)
	attrs := []attribute.KeyValue{
		attribute.String("operation", string(step.Operation)),
		attribute.String("phase", string(step.Phase)),
	}
	ctx, span := h.tracer.Start(ctx, "harness.iteration", trace.WithAttributes(
		append(attrs, attribute.Int("iteration", step.Iteration))...,
	))
	defer span.End()

	var done atomic.Bool
	g, gctx := errgroup.WithContext(ctx)
	stop := context.AfterFunc(gctx, func() { done.Store(true) })
	defer stop()

	start := make(chan struct{})
	perOp := make([]float64, threads)
	counts := make([]int64, threads)

	for i := range threads {
		w := workers[i]
		g.Go(func() error {
			var sink Sink
			defer sink.Drain(&h.sink)

			<-start
			begin := time.Now()
			var n int64
			for {
				ct, err := w.Do(step.Operation)
				if err != nil {
					return fmt.Errorf("harness: %s: %w", step.Operation, err)
				}
				sink.Consume(ct)
				n++
				if done.Load() {
					break
				}
			}
			elapsed := time.Since(begin)

			if err := gctx.Err(); err != nil {
				return err
			}
			counts[i] = n
			perOp[i] = float64(elapsed.Nanoseconds()) / float64(n)
			return nil
		})
	}

	timer := time.AfterFunc(d, func() { done.Store(true) })
	close(start)
	err := g.Wait()
	timer.Stop()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return iterationResult{}, err
	}

	var res iterationResult
	for i := range threads {
		res.ops += counts[i]
		res.score += perOp[i]
	}
	res.score /= float64(threads)
	h.opsCounter.Add(ctx, res.ops, metric.WithAttributes(attrs...))
	return res, nil
}
