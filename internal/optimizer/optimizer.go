// Package optimizer searches for the parameter value at which buying starts
// paying off by a chosen year.
package optimizer

import (
	"errors"
	"fmt"
	"math"

	"github.com/finaly55/opti-credit/internal/config"
	"github.com/finaly55/opti-credit/internal/simulation"
	"github.com/finaly55/opti-credit/pkg/constants"
	"github.com/finaly55/opti-credit/pkg/expenses"
	"github.com/finaly55/opti-credit/pkg/format"
	"github.com/finaly55/opti-credit/pkg/optimization"
	"go.uber.org/zap"
)

// ErrInfeasible is returned when no value within the bounds reaches
// break-even by the target year.
var ErrInfeasible = errors.New("no break-even within bounds")

// Runner bisects one simulation parameter.
type Runner struct {
	logger *zap.Logger
	sim    simulation.Runner
	conf   config.OptimizerConfig
}

type evaluation struct {
	value    float64
	month    int // 0 when buying never catches up
	deadline int
}

func (e evaluation) feasible() bool {
	return e.month > 0 && e.month <= e.deadline
}

// NewRunner constructs a Runner for the provided directive.
func NewRunner(logger *zap.Logger, sim simulation.Runner, conf *config.OptimizerConfig) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("optimizer configuration cannot be nil")
	}
	if sim == nil {
		return nil, fmt.Errorf("simulation runner cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	normalized := *conf
	normalized.Normalize()
	if err := normalized.Validate(); err != nil {
		return nil, err
	}

	return &Runner{logger: logger, sim: sim, conf: normalized}, nil
}

// Run finds the smallest value of the configured field for which the owner's
// wealth reaches the tenant's no later than targetYear. The params are not
// modified.
func (r *Runner) Run(params simulation.Params, customExpenses []expenses.CustomExpense, targetYear int) optimization.Summary {
	totals := expenses.Aggregate(params.ExpenseBase(), customExpenses)
	deadline := deadlineMonth(targetYear)
	lowerBound, upperBound := *r.conf.Min, *r.conf.Max

	original := r.get(params)
	summary := optimization.Summary{
		Field:           r.conf.Field,
		Original:        original,
		Min:             lowerBound,
		Max:             upperBound,
		TargetYear:      deadline / constants.MonthsPerYear,
		OriginalDisplay: r.display(original),
	}

	best, iterations, atLowerBound, err := r.search(params, totals, deadline)
	summary.Iterations = iterations
	summary.Value = best.value
	summary.ValueDisplay = r.display(best.value)
	summary.BreakEvenMonth = best.month

	if errors.Is(err, ErrInfeasible) {
		summary.Converged = false
		summary.Notes = []string{fmt.Sprintf(
			"buying does not break even by year %d for %s between %s and %s",
			summary.TargetYear, r.conf.Field, r.display(lowerBound), r.display(upperBound),
		)}
		r.logger.Info("optimizer found no feasible value",
			zap.String("op", "optimizer.Run"),
			zap.String("field", r.conf.Field),
		)
		return summary
	}

	summary.Converged = err == nil
	if err != nil {
		summary.Notes = []string{err.Error()}
	}
	if atLowerBound {
		summary.Notes = append(summary.Notes, "the lower bound already breaks even")
	}

	r.logger.Debug("optimizer finished",
		zap.String("op", "optimizer.Run"),
		zap.String("field", r.conf.Field),
		zap.Float64("value", best.value),
		zap.Int("iterations", iterations),
	)

	return summary
}

// search returns the best feasible evaluation, the number of bisection
// steps taken and whether the lower bound itself was feasible.
func (r *Runner) search(params simulation.Params, totals expenses.Totals, deadline int) (evaluation, int, bool, error) {
	upper := r.evaluate(params, totals, *r.conf.Max, deadline)
	if !upper.feasible() {
		return upper, 0, false, ErrInfeasible
	}

	lower := r.evaluate(params, totals, *r.conf.Min, deadline)
	if lower.feasible() {
		return lower, 0, true, nil
	}

	iterations := 0
	for iterations < r.conf.MaxIterations && math.Abs(upper.value-lower.value) > r.conf.Tolerance {
		mid := r.evaluate(params, totals, lower.value+(upper.value-lower.value)/2, deadline)
		iterations++
		if mid.feasible() {
			upper = mid
		} else {
			lower = mid
		}
	}

	if math.Abs(upper.value-lower.value) > r.conf.Tolerance {
		return upper, iterations, false, fmt.Errorf("stopped after %d iterations with a gap of %.4f", iterations, upper.value-lower.value)
	}
	return upper, iterations, false, nil
}

func (r *Runner) evaluate(params simulation.Params, totals expenses.Totals, value float64, deadline int) evaluation {
	candidate := params
	r.set(&candidate, value)

	result := r.sim.Run(candidate, totals)
	eval := evaluation{value: value, deadline: deadline}
	if point := simulation.FindWealthBreakEven(result.MonthlyData); point != nil {
		eval.month = point.Month
	}
	return eval
}

func (r *Runner) get(params simulation.Params) float64 {
	if r.conf.Field == config.OptimizerFieldMonthlyRent {
		return params.MonthlyRent
	}
	return params.AppreciationRate
}

func (r *Runner) set(params *simulation.Params, value float64) {
	if r.conf.Field == config.OptimizerFieldMonthlyRent {
		params.MonthlyRent = value
		return
	}
	params.AppreciationRate = value
}

func (r *Runner) display(value float64) string {
	if r.conf.Field == config.OptimizerFieldMonthlyRent {
		return format.Currency(value)
	}
	return format.Percent(value)
}

// deadlineMonth is the last month of targetYear, or of the horizon when the
// year falls outside it.
func deadlineMonth(targetYear int) int {
	if targetYear < 1 || targetYear > constants.HorizonYears {
		return constants.HorizonMonths
	}
	return targetYear * constants.MonthsPerYear
}
