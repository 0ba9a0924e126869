// Package expenses aggregates the base running costs of a property with
// user-defined custom expenses.
package expenses

import (
	"github.com/finaly55/opti-credit/pkg/constants"
	"github.com/shopspring/decimal"
)

// Type tags when a custom expense is paid.
type Type string

const (
	// Initial expenses are paid once at purchase time.
	Initial Type = "initial"
	// Monthly expenses are paid every month.
	Monthly Type = "monthly"
	// Yearly expenses are paid once a year.
	Yearly Type = "yearly"
)

// Valid reports whether the type is one of the known tags.
func (t Type) Valid() bool {
	switch t {
	case Initial, Monthly, Yearly:
		return true
	}
	return false
}

// CustomExpense is a user-defined cost attached to the purchase.
type CustomExpense struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Amount float64 `json:"amount" yaml:"amount"`
	Type   Type    `json:"type" yaml:"type"`
}

// Base holds the expense figures of the simulation parameters that custom
// expenses are added to.
type Base struct {
	RenovationCost    float64
	MonthlyExtraCosts float64
	YearlyExtraCosts  float64
	CondoFees         float64
	PropertyTax       float64
}

// Totals are the aggregated expense figures consumed by the simulation.
type Totals struct {
	Initial float64 `json:"totalInitialExpenses"`
	Monthly float64 `json:"totalMonthlyExpenses"`
	Yearly  float64 `json:"totalYearlyExpenses"`
}

func sumOfType(expenses []CustomExpense, t Type) decimal.Decimal {
	total := decimal.Zero
	for _, expense := range expenses {
		if expense.Type == t {
			total = total.Add(decimal.NewFromFloat(expense.Amount))
		}
	}
	return total
}

func withBase(base float64, expenses []CustomExpense, t Type) float64 {
	return decimal.NewFromFloat(base).Add(sumOfType(expenses, t)).InexactFloat64()
}

// TotalInitial returns the renovation cost plus every initial custom expense.
func TotalInitial(base Base, expenses []CustomExpense) float64 {
	return withBase(base.RenovationCost, expenses, Initial)
}

// TotalMonthly returns the monthly extra costs plus every monthly custom expense.
func TotalMonthly(base Base, expenses []CustomExpense) float64 {
	return withBase(base.MonthlyExtraCosts, expenses, Monthly)
}

// TotalYearly returns the yearly extra costs plus every yearly custom expense.
func TotalYearly(base Base, expenses []CustomExpense) float64 {
	return withBase(base.YearlyExtraCosts, expenses, Yearly)
}

// Aggregate computes the three totals at once.
func Aggregate(base Base, expenses []CustomExpense) Totals {
	return Totals{
		Initial: TotalInitial(base, expenses),
		Monthly: TotalMonthly(base, expenses),
		Yearly:  TotalYearly(base, expenses),
	}
}

// AnnualRecurringCosts annualizes every recurring charge of the owner:
// condo fees and monthly costs over twelve months plus property tax and
// yearly costs.
func AnnualRecurringCosts(base Base, expenses []CustomExpense) float64 {
	monthly := decimal.NewFromFloat(base.CondoFees).Add(decimal.NewFromFloat(TotalMonthly(base, expenses)))
	yearly := decimal.NewFromFloat(base.PropertyTax).Add(decimal.NewFromFloat(TotalYearly(base, expenses)))
	return monthly.Mul(decimal.NewFromInt(constants.MonthsPerYear)).Add(yearly).InexactFloat64()
}
