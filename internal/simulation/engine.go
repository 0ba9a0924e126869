package simulation

import (
	"fmt"

	"github.com/finaly55/opti-credit/pkg/constants"
	"github.com/finaly55/opti-credit/pkg/expenses"
	"github.com/finaly55/opti-credit/pkg/loans"
	"github.com/finaly55/opti-credit/pkg/mathutil"
	"go.uber.org/zap"
)

// Engine runs projections. It holds no state between runs.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an Engine logging to the given logger.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Run projects the comparison without logging.
func Run(params Params, totals expenses.Totals) Result {
	return NewEngine(nil).Run(params, totals)
}

// state carries the full-precision accumulators of one run.
type state struct {
	propertyValue    float64
	rent             float64
	accumulatedRent  float64
	accumulatedSunk  float64
	tenantSavings    float64
	tenantInterest   float64
	initialOwnerCost float64
}

// Run projects the buy versus rent comparison over the fixed horizon.
func (e *Engine) Run(params Params, totals expenses.Totals) Result {
	loanStates := loans.InitializeLoanStates(params.Loans)
	paidOff := make([]bool, len(loanStates))

	s := state{
		propertyValue:    params.PurchasePrice,
		rent:             params.MonthlyRent,
		tenantSavings:    params.PersonalContribution + params.NotaryFees + totals.Initial,
		initialOwnerCost: params.PurchasePrice + params.NotaryFees + totals.Initial,
	}

	monthlyAppreciation := mathutil.CompoundMonthlyRate(params.AppreciationRate)
	monthlySavingsRate := mathutil.MonthlyRate(params.SavingsRate)
	rentIndexation := 1 + params.RentInflation/constants.PercentageMultiplier
	fixedMonthlyCosts := params.PropertyTax/constants.MonthsPerYear + params.CondoFees +
		totals.Monthly + totals.Yearly/constants.MonthsPerYear

	result := Result{
		MonthlyData: make([]DataPoint, 0, constants.HorizonMonths),
		YearlyData:  make([]DataPoint, 0, constants.HorizonYears),
	}

	for month := 1; month <= constants.HorizonMonths; month++ {
		s.propertyValue *= 1 + monthlyAppreciation

		if month > 1 && (month-1)%constants.MonthsPerYear == 0 {
			s.rent *= rentIndexation
		}
		s.accumulatedRent += s.rent

		var interest, principal, insurance, debtRemaining float64
		for i := range loanStates {
			loan := &loanStates[i]
			// Insurance is charged for the whole horizon, even once the loan is repaid.
			insurance += loans.CalculateMonthlyInsurance(loan.Amount, loan.InsuranceRate)

			loanInterest, loanPrincipal := loan.Step(month)
			interest += loanInterest
			principal += loanPrincipal
			debtRemaining += loan.RemainingCapital

			if !paidOff[i] && month > loan.DeferredMonths && loan.RemainingCapital == 0 {
				paidOff[i] = true
				e.logger.Debug(fmt.Sprintf("loan %s repaid at month %d", loanLabel(loan.Loan, i), month),
					zap.String("op", "simulation.Run"),
				)
			}
		}

		sunkCost := interest + insurance + fixedMonthlyCosts
		s.accumulatedSunk += sunkCost

		cashFlowDifference := sunkCost + principal - s.rent

		if s.tenantSavings > 0 {
			earned := s.tenantSavings * monthlySavingsRate
			s.tenantSavings += earned
			s.tenantInterest += earned
		}
		s.tenantSavings += cashFlowDifference

		sellingCosts := mathutil.ApplyPercentage(s.propertyValue, params.AgencyFeesPercent) + params.SaleDiagnostics
		ownerWealth := s.propertyValue - sellingCosts - debtRemaining
		totalCostAbsolute := s.initialOwnerCost + s.accumulatedSunk + sellingCosts - s.propertyValue

		point := DataPoint{
			Month:                  month,
			Year:                   mathutil.RoundYear(float64(month) / constants.MonthsPerYear),
			OwnerWealth:            mathutil.RoundUnit(ownerWealth),
			TenantWealth:           mathutil.RoundUnit(s.tenantSavings),
			MonthlyCostOwner:       mathutil.RoundUnit(totalCostAbsolute / float64(month)),
			MonthlyCostTenant:      mathutil.RoundUnit(s.accumulatedRent / float64(month)),
			MonthlyInterestsEarned: mathutil.RoundUnit(s.tenantInterest / float64(month)),
			PropertyValue:          mathutil.RoundUnit(s.propertyValue),
			NetSalePrice:           mathutil.RoundUnit(s.propertyValue - sellingCosts),
			SellingCosts:           mathutil.RoundUnit(sellingCosts),
			DebtRemaining:          mathutil.RoundUnit(debtRemaining),
			SunkCosts:              mathutil.RoundUnit(s.accumulatedSunk),
		}
		result.MonthlyData = append(result.MonthlyData, point)

		if month%constants.MonthsPerYear == 0 {
			yearly := point
			yearly.Year = float64(month / constants.MonthsPerYear)
			result.YearlyData = append(result.YearlyData, yearly)
		}
	}

	return result
}

func loanLabel(loan loans.Loan, index int) string {
	if loan.Name != "" {
		return loan.Name
	}
	if loan.ID != "" {
		return loan.ID
	}
	return fmt.Sprintf("#%d", index+1)
}
