// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/finaly55/opti-credit/pkg/constants"
	"github.com/finaly55/opti-credit/pkg/expenses"
	"github.com/finaly55/opti-credit/pkg/loans"
)

// ValidateLoan returns warnings for a loan whose parameters will produce
// surprising or undefined results.
func ValidateLoan(loan loans.Loan) []string {
	var warnings []string

	if loan.DurationMonths <= 0 {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' has no duration", loan.Name))
	} else if loan.DeferredMonths >= loan.DurationMonths {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' is deferred for its whole duration (%d >= %d months) - payment is undefined",
			loan.Name, loan.DeferredMonths, loan.DurationMonths))
	}

	if loan.DurationMonths > constants.HorizonMonths {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' runs past the %d-year horizon (%d months) - debt will remain at the end",
			loan.Name, constants.HorizonYears, loan.DurationMonths))
	}

	if loan.Amount < 0 || loan.Rate < 0 || loan.InsuranceRate < 0 || loan.DeferredMonths < 0 {
		warnings = append(warnings, fmt.Sprintf("Loan '%s' has negative values", loan.Name))
	}

	return warnings
}

// ValidateFinancing checks that loans and personal contribution roughly
// cover the upfront cost of the purchase.
func ValidateFinancing(upfrontCost, personalContribution, borrowed float64) string {
	gap := upfrontCost - personalContribution - borrowed
	if gap > constants.CurrencyTolerance {
		return fmt.Sprintf("Financing falls short of the upfront cost by %.2f", gap)
	}
	if gap < -constants.CurrencyTolerance {
		return fmt.Sprintf("Financing exceeds the upfront cost by %.2f", -gap)
	}
	return ""
}

// ValidateTargetYear checks that the highlighted year lies within the horizon.
func ValidateTargetYear(year int) string {
	if year < 1 || year > constants.HorizonYears {
		return fmt.Sprintf("Target year %d is outside 1-%d - the last year will be used", year, constants.HorizonYears)
	}
	return ""
}

// ValidateCustomExpenses returns warnings for expenses that will be ignored.
func ValidateCustomExpenses(list []expenses.CustomExpense) []string {
	var warnings []string
	for _, expense := range list {
		if !expense.Type.Valid() {
			warnings = append(warnings, fmt.Sprintf("Expense '%s' has unknown type %q and will be ignored", expense.Name, expense.Type))
		}
	}
	return warnings
}
