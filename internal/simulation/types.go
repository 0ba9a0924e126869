// Package simulation projects the buy versus rent comparison month by month
// over the fixed horizon and locates the break-even points.
package simulation

import (
	"context"

	"github.com/finaly55/opti-credit/pkg/expenses"
	"github.com/finaly55/opti-credit/pkg/loans"
)

// Params holds every input of one buy versus rent comparison.
type Params struct {
	PurchasePrice        float64      `json:"purchasePrice" yaml:"purchasePrice"`
	NotaryFees           float64      `json:"notaryFees" yaml:"notaryFees"`
	NotaryFeesPercent    float64      `json:"notaryFeesPercent" yaml:"notaryFeesPercent"`
	RenovationCost       float64      `json:"renovationCost" yaml:"renovationCost"`
	AppreciationRate     float64      `json:"appreciationRate" yaml:"appreciationRate"` // annual %
	AgencyFeesPercent    float64      `json:"agencyFeesPercent" yaml:"agencyFeesPercent"`
	SaleDiagnostics      float64      `json:"saleDiagnostics" yaml:"saleDiagnostics"`
	PersonalContribution float64      `json:"personalContribution" yaml:"personalContribution"`
	Loans                []loans.Loan `json:"loans" yaml:"loans"`
	PropertyTax          float64      `json:"propertyTax" yaml:"propertyTax"` // yearly
	CondoFees            float64      `json:"condoFees" yaml:"condoFees"`     // monthly
	MonthlyExtraCosts    float64      `json:"monthlyExtraCosts" yaml:"monthlyExtraCosts"`
	YearlyExtraCosts     float64      `json:"yearlyExtraCosts" yaml:"yearlyExtraCosts"`
	MonthlyRent          float64      `json:"monthlyRent" yaml:"monthlyRent"`
	SavingsRate          float64      `json:"savingsRate" yaml:"savingsRate"`     // annual %
	RentInflation        float64      `json:"rentInflation" yaml:"rentInflation"` // annual %
}

// ExpenseBase extracts the figures custom expenses are aggregated onto.
func (p Params) ExpenseBase() expenses.Base {
	return expenses.Base{
		RenovationCost:    p.RenovationCost,
		MonthlyExtraCosts: p.MonthlyExtraCosts,
		YearlyExtraCosts:  p.YearlyExtraCosts,
		CondoFees:         p.CondoFees,
		PropertyTax:       p.PropertyTax,
	}
}

// TotalBorrowed sums the amount of every loan.
func (p Params) TotalBorrowed() float64 {
	total := 0.0
	for _, loan := range p.Loans {
		total += loan.Amount
	}
	return total
}

// DataPoint is the rounded snapshot of one month of the projection.
type DataPoint struct {
	Month                  int     `json:"month"`
	Year                   float64 `json:"year"`
	OwnerWealth            float64 `json:"ownerWealth"`
	TenantWealth           float64 `json:"tenantWealth"`
	MonthlyCostOwner       float64 `json:"monthlyCostOwner"`
	MonthlyCostTenant      float64 `json:"monthlyCostTenant"`
	MonthlyInterestsEarned float64 `json:"monthlyInterestsEarned"`
	PropertyValue          float64 `json:"propertyValue"`
	NetSalePrice           float64 `json:"netSalePrice"`
	SellingCosts           float64 `json:"sellingCosts"`
	DebtRemaining          float64 `json:"debtRemaining"`
	SunkCosts              float64 `json:"sunkCosts"`
}

// Result is the full projection: one point per month and one per year.
type Result struct {
	MonthlyData []DataPoint `json:"monthlyData"`
	YearlyData  []DataPoint `json:"yearlyData"`
}

// Runner computes a projection from parameters and aggregated expense totals.
type Runner interface {
	Run(params Params, totals expenses.Totals) Result
}

// ContextRunner is a Runner whose I/O, such as a cache round trip, can be
// bounded by a context.
type ContextRunner interface {
	Runner
	RunContext(ctx context.Context, params Params, totals expenses.Totals) Result
}

type boundRunner struct {
	ctx  context.Context
	next ContextRunner
}

func (b boundRunner) Run(params Params, totals expenses.Totals) Result {
	return b.next.RunContext(b.ctx, params, totals)
}

// WithContext returns a Runner that hands ctx to r on every run. Runners
// without context support are returned unchanged.
func WithContext(ctx context.Context, r Runner) Runner {
	if cr, ok := r.(ContextRunner); ok {
		return boundRunner{ctx: ctx, next: cr}
	}
	return r
}
