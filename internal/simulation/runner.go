package simulation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/nvandessel/opspread/internal/brickwork"
	"github.com/nvandessel/opspread/internal/clifford"
	"github.com/nvandessel/opspread/internal/constants"
	"github.com/nvandessel/opspread/internal/logging"
	"github.com/nvandessel/opspread/internal/metrics"
	"github.com/nvandessel/opspread/internal/pauli"
	"github.com/nvandessel/opspread/internal/sampler"
	"github.com/nvandessel/opspread/internal/tableau"
)

// Runner executes scenarios. A Runner holds no per-run state and may be
// reused; it is not safe for concurrent Run calls that share a TraceLogger
// or Collector unless those are themselves safe.
type Runner struct {
	logger  *slog.Logger
	trace   *logging.TraceLogger
	metrics *metrics.Collector
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the operational logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTrace writes one JSONL line per period. A nil trace is allowed.
func WithTrace(t *logging.TraceLogger) RunnerOption {
	return func(r *Runner) {
		r.trace = t
	}
}

// WithMetrics records gates and periods in c.
func WithMetrics(c *metrics.Collector) RunnerOption {
	return func(r *Runner) {
		r.metrics = c
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{logger: logging.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the scenario and returns the collected results. It checks
// ctx between periods; on cancellation it returns the periods completed so
// far together with ctx.Err().
func (r *Runner) Run(ctx context.Context, sc Scenario) (*Result, error) {
	st, err := tableau.New(sc.ChainLength, sc.DefectChains, sc.Periods)
	if err != nil {
		return nil, fmt.Errorf("creating tableau: %w", err)
	}

	// Phase 1: Seed the starting operator on row 0. Each site is seeded at
	// most once.
	seeded := make(map[int]bool, len(sc.Initial))
	for _, s := range sc.Initial {
		if seeded[s.Site] {
			return nil, fmt.Errorf("seeding %s@%d: %w", s.Label, s.Site,
				errors.Wrapf(tableau.ErrInvalidConfiguration, "site %d seeded twice", s.Site))
		}
		seeded[s.Site] = true
		z, x := s.Label.Bits()
		if err := st.SetSite(0, s.Site, z, x); err != nil {
			return nil, fmt.Errorf("seeding %s@%d: %w", s.Label, s.Site, err)
		}
	}

	// Phase 2: Build the gate pipeline.
	rule := sc.PhaseRule
	if rule == "" {
		rule = constants.PhaseRuleDocumented
	}
	classes := sc.EntanglingClasses
	if classes == 0 {
		classes = constants.DocumentedEntanglingClasses
	}
	samplerOpts := []sampler.Option{sampler.WithEntanglingClasses(classes)}
	if r.metrics != nil {
		samplerOpts = append(samplerOpts, sampler.WithObserver(r.metrics))
	}
	smp := sampler.NewSeeded(clifford.NewGateSet(clifford.WithPhaseRule(rule)), sc.Seed, samplerOpts...)
	sched := brickwork.NewScheduler(smp)

	result := &Result{
		RunID:       uuid.New().String(),
		Name:        sc.Name,
		ChainLength: sc.ChainLength,
		Seed:        sc.Seed,
		PhaseRule:   rule.String(),
		Classes:     smp.EntanglingClasses(),
		Periods:     make([]PeriodResult, 0, sc.Periods),
	}
	logger := r.logger.With("run_id", result.RunID)

	initial, err := snapshot(st, 0)
	if err != nil {
		return nil, err
	}
	result.Initial = initial

	logger.Info("simulation started",
		"name", sc.Name,
		"length", sc.ChainLength,
		"periods", sc.Periods,
		"seed", sc.Seed,
		"phase_rule", rule,
		"classes", result.Classes,
		"initial", initial.Pauli)

	// Phase 3: Run periods.
	traceDraws := logger.Enabled(ctx, logging.LevelTrace)
	for p := 1; p <= sc.Periods; p++ {
		if err := ctx.Err(); err != nil {
			logger.Info("simulation cancelled", "completed_periods", p-1)
			return result, err
		}
		if sc.BeforePeriod != nil {
			sc.BeforePeriod(p, st)
		}

		if traceDraws {
			draws, err := sched.PeriodDraws(st)
			if err != nil {
				return result, fmt.Errorf("period %d: %w", p, err)
			}
			for _, d := range draws {
				logger.Log(ctx, logging.LevelTrace, "two-qubit draw",
					"period", p, "i", d.I, "j", d.J, "class", d.Class.String(), "outcome", d.Outcome)
			}
		} else if err := sched.Period(st); err != nil {
			return result, fmt.Errorf("period %d: %w", p, err)
		}

		pr, err := snapshot(st, p)
		if err != nil {
			return result, err
		}
		result.Periods = append(result.Periods, pr)
		r.record(result.RunID, pr)

		logger.Debug("period completed",
			"period", p, "weight", pr.Weight, "left", pr.Left, "right", pr.Right, "counts", pr.Counts)
	}

	final := result.Final()
	logger.Info("simulation finished", "periods", len(result.Periods), "weight", final.Weight)
	return result, nil
}

// record forwards a period to the trace and metrics sinks.
func (r *Runner) record(runID string, pr PeriodResult) {
	r.trace.LogPeriod(logging.PeriodEvent{
		RunID:  runID,
		Period: pr.Period,
		Pauli:  pr.Pauli,
		Counts: pr.Counts,
		Weight: pr.Weight,
		Left:   pr.Left,
		Right:  pr.Right,
	})
	if r.metrics != nil {
		r.metrics.PeriodCompleted(pr.Labels, pr.Counts)
	}
}

// snapshot decodes row 0 of st.
func snapshot(st *tableau.State, period int) (PeriodResult, error) {
	labels, counts, err := pauli.DecodeWithStats(st, 0)
	if err != nil {
		return PeriodResult{}, fmt.Errorf("decoding period %d: %w", period, err)
	}
	left, right, _ := pauli.Support(labels)
	return PeriodResult{
		Period: period,
		Labels: labels,
		Pauli:  pauli.String(labels),
		Counts: counts,
		Weight: counts.Weight(),
		Left:   left,
		Right:  right,
	}, nil
}
