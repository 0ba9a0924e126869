// Package loans provides common loan processing utilities.
package loans

import (
	"math"

	"github.com/finaly55/opti-credit/pkg/mathutil"
)

// Loan describes one loan financing the purchase.
type Loan struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Amount         float64 `json:"amount" yaml:"amount"`
	Rate           float64 `json:"rate" yaml:"rate"` // annual %
	DurationMonths int     `json:"durationMonths" yaml:"durationMonths"`
	InsuranceRate  float64 `json:"insuranceRate" yaml:"insuranceRate"` // annual %, on the borrowed amount
	DeferredMonths int     `json:"deferredMonths" yaml:"deferredMonths"`
}

// AmortizationMonths is the number of months over which principal is repaid.
func (l Loan) AmortizationMonths() int {
	return l.DurationMonths - l.DeferredMonths
}

// LoanState is the running state of a loan during one simulation run.
type LoanState struct {
	Loan
	RemainingCapital float64
	MonthlyPayment   float64
}

// Payment holds the values for a given month of a loan.
type Payment struct {
	Month              int     `json:"month"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	Insurance          float64 `json:"insurance"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// CalculateMonthlyPayment calculates the fixed monthly payment of a loan using
// the standard annuity formula. A zero rate repays the amount linearly.
func CalculateMonthlyPayment(amount, annualInterestRate float64, amortizationMonths int) float64 {
	if annualInterestRate == 0 {
		return amount / float64(amortizationMonths)
	}

	periodicInterestRate := mathutil.MonthlyRate(annualInterestRate)
	return amount * periodicInterestRate / (1 - math.Pow(1+periodicInterestRate, -float64(amortizationMonths)))
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * mathutil.MonthlyRate(annualInterestRate)
}

// CalculateMonthlyInsurance calculates the monthly borrower insurance premium,
// which is based on the initial amount and not the remaining capital.
func CalculateMonthlyInsurance(amount, annualInsuranceRate float64) float64 {
	return amount * mathutil.MonthlyRate(annualInsuranceRate)
}

// InitializeLoanStates prepares the per-run state of every loan.
func InitializeLoanStates(loans []Loan) []LoanState {
	states := make([]LoanState, len(loans))
	for i, loan := range loans {
		states[i] = LoanState{
			Loan:             loan,
			RemainingCapital: loan.Amount,
			MonthlyPayment:   CalculateMonthlyPayment(loan.Amount, loan.Rate, loan.AmortizationMonths()),
		}
	}
	return states
}

// Step advances the loan by one month and returns the interest and principal
// paid that month. Months start at 1.
func (s *LoanState) Step(month int) (interest, principal float64) {
	switch {
	case month <= s.DeferredMonths:
		if s.Rate > 0 && s.DeferredMonths > 0 {
			interest = CalculateInterestPayment(s.RemainingCapital, s.Rate)
		}
	case month <= s.DurationMonths:
		interest = CalculateInterestPayment(s.RemainingCapital, s.Rate)
		principal = s.MonthlyPayment - interest
		s.RemainingCapital -= principal
		if s.RemainingCapital < 0 {
			s.RemainingCapital = 0
		}
	}
	return interest, principal
}

// Schedule generates the month by month repayment table of a single loan,
// deferment included, up to its duration.
func Schedule(loan Loan) []Payment {
	if loan.DurationMonths <= 0 {
		return nil
	}

	state := InitializeLoanStates([]Loan{loan})[0]
	insurance := CalculateMonthlyInsurance(loan.Amount, loan.InsuranceRate)
	schedule := make([]Payment, 0, loan.DurationMonths)

	for month := 1; month <= loan.DurationMonths; month++ {
		interest, principal := state.Step(month)
		schedule = append(schedule, Payment{
			Month:              month,
			Payment:            interest + principal + insurance,
			Principal:          principal,
			Interest:           interest,
			Insurance:          insurance,
			RemainingPrincipal: state.RemainingCapital,
		})
	}

	return schedule
}

// TotalCost sums the interest and insurance paid over the life of a loan.
func TotalCost(schedule []Payment) (interest, insurance float64) {
	for _, payment := range schedule {
		interest += payment.Interest
		insurance += payment.Insurance
	}
	return interest, insurance
}
