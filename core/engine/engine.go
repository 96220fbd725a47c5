// Package engine provides the API-primary billing projection engine.
// CLI and any other surface are thin wrappers around this engine.
package engine

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"budgetcast/core/aggregate"
	"budgetcast/core/allocate"
	"budgetcast/core/period"
	"budgetcast/core/quality"
	"budgetcast/core/types"
	"budgetcast/internal/errors"
	"budgetcast/internal/logging"
)

// Engine resolves pay periods, projects occurrences, and allocates
// budgets. It holds no mutable state; every call is a deterministic
// transformation of its inputs plus the injected clock.
type Engine struct {
	clock      Clock
	calculator period.Calculator
	logger     *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithClock injects a clock (tests use FixedClock)
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithAnchor sets the pay-period anchor weekday
func WithAnchor(calc period.Calculator) Option {
	return func(e *Engine) { e.calculator = calc }
}

// WithLogger injects a logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an engine with the system clock and default anchor.
func New(opts ...Option) *Engine {
	e := &Engine{
		clock:      SystemClock{},
		calculator: period.NewCalculator(),
		logger:     logging.Logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Report is the full output of one projection and allocation pass.
type Report struct {
	// RunID uniquely identifies this computation for traceability
	RunID string `json:"run_id"`

	// Period is the pay period the report covers
	Period types.PayPeriod `json:"period"`

	// Summary is the aggregated billing picture
	Summary *aggregate.PeriodSummary `json:"summary"`

	// Allocation is the budget allocation verdict; nil when the report
	// was built without categories
	Allocation *types.AllocationResult `json:"allocation,omitempty"`

	// Warnings merges every data-quality substitution made during the run
	Warnings []quality.Warning `json:"warnings,omitempty"`
}

// Report projects the current pay period for the given subscriptions
// and allocates the given categories against it.
func (e *Engine) Report(subs []*types.Subscription, cats []*types.BudgetCategory, filter aggregate.StatusFilter) (*Report, error) {
	p := e.calculator.PeriodContaining(e.clock.Now())
	return e.ReportForPeriod(subs, cats, filter, p)
}

// ReportForPeriod is Report for an explicit window.
func (e *Engine) ReportForPeriod(subs []*types.Subscription, cats []*types.BudgetCategory, filter aggregate.StatusFilter, p types.PayPeriod) (*Report, error) {
	summary, err := aggregate.Aggregate(subs, p, filter)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:    uuid.NewString(),
		Period:   p,
		Summary:  summary,
		Warnings: append([]quality.Warning(nil), summary.Warnings...),
	}

	if cats != nil {
		res, err := allocate.Allocate(cats, summary)
		if err != nil {
			return nil, err
		}
		report.Allocation = &res.Allocation
		report.Warnings = append(report.Warnings, res.Warnings...)
	}

	e.logRun(report)
	return report, nil
}

// Horizon projects count consecutive pay periods starting from the one
// containing the clock's current date. Categories are allocated only
// against the first period; later periods carry summaries only.
func (e *Engine) Horizon(subs []*types.Subscription, cats []*types.BudgetCategory, filter aggregate.StatusFilter, count int) ([]*Report, error) {
	periods, err := e.calculator.PeriodsFrom(e.clock.Now(), count)
	if err != nil {
		return nil, err
	}

	reports := make([]*Report, 0, len(periods))
	for i, p := range periods {
		periodCats := cats
		if i > 0 {
			periodCats = nil
		}
		r, err := e.ReportForPeriod(subs, periodCats, filter, p)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeInternal, err,
				"projecting period starting %s", p.Start.Format("2006-01-02"))
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// logRun surfaces the run and its data-quality warnings through the
// structured log so callers can audit substitutions.
func (e *Engine) logRun(r *Report) {
	if e.logger == nil {
		return
	}
	e.logger.Debug("projection run complete",
		zap.String("run_id", r.RunID),
		zap.String("period_start", r.Period.Start.Format("2006-01-02")),
		zap.Int("occurrences", r.Summary.OccurrenceCount),
		zap.String("total_cost", r.Summary.TotalCost.String()),
	)
	for _, w := range r.Warnings {
		e.logger.Warn("data quality substitution",
			zap.String("run_id", r.RunID),
			zap.String("code", string(w.Code)),
			zap.String("subject", w.SubjectID),
			zap.String("message", w.Message),
		)
	}
}
