package simulation

import (
	"github.com/finaly55/opti-credit/pkg/expenses"
)

// Analysis bundles a projection with the figures derived from it.
type Analysis struct {
	Params               Params          `json:"params"`
	Totals               expenses.Totals `json:"totals"`
	AnnualRecurringCosts float64         `json:"annualRecurringCosts"`
	Result               Result          `json:"result"`
	WealthBreakEven      *DataPoint      `json:"wealthBreakEven"`
	CostBreakEven        *DataPoint      `json:"costBreakEven"`
	TargetYear           int             `json:"targetYear"`
	Target               DataPoint       `json:"target"`
}

// Analyze aggregates the expenses, runs the projection through runner and
// locates the break-even points and the target year snapshot.
func Analyze(runner Runner, params Params, customExpenses []expenses.CustomExpense, targetYear int) Analysis {
	base := params.ExpenseBase()
	totals := expenses.Aggregate(base, customExpenses)
	result := runner.Run(params, totals)

	return Analysis{
		Params:               params,
		Totals:               totals,
		AnnualRecurringCosts: expenses.AnnualRecurringCosts(base, customExpenses),
		Result:               result,
		WealthBreakEven:      FindWealthBreakEven(result.MonthlyData),
		CostBreakEven:        FindMonthlyCostBreakEven(result.MonthlyData),
		TargetYear:           targetYear,
		Target:               PointAtYear(result, targetYear),
	}
}
