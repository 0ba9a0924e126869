package simulation

import (
	"testing"

	"github.com/finaly55/opti-credit/pkg/expenses"
	"github.com/finaly55/opti-credit/pkg/loans"
)

func series(owner, tenant []float64) []DataPoint {
	points := make([]DataPoint, len(owner))
	for i := range owner {
		points[i] = DataPoint{
			Month:             i + 1,
			OwnerWealth:       owner[i],
			TenantWealth:      tenant[i],
			MonthlyCostOwner:  tenant[i],
			MonthlyCostTenant: owner[i],
		}
	}
	return points
}

func TestFindWealthBreakEven(t *testing.T) {
	tests := []struct {
		name     string
		owner    []float64
		tenant   []float64
		expected int // 0 means not found
	}{
		{"Crosses at month 3", []float64{-10, -5, 0, 10}, []float64{5, 5, 0, 5}, 3},
		{"Equal counts as break-even", []float64{1, 2}, []float64{2, 2}, 2},
		{"Owner ahead from the start", []float64{10, 0}, []float64{0, 20}, 1},
		{"Never", []float64{0, 1, 2}, []float64{5, 5, 5}, 0},
		{"Empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point := FindWealthBreakEven(series(tt.owner, tt.tenant))
			if tt.expected == 0 {
				if point != nil {
					t.Errorf("expected no break-even, got month %d", point.Month)
				}
				return
			}
			if point == nil {
				t.Fatalf("expected break-even at month %d, got none", tt.expected)
			}
			if point.Month != tt.expected {
				t.Errorf("break-even month = %d, expected %d", point.Month, tt.expected)
			}
		})
	}
}

func TestFindMonthlyCostBreakEven(t *testing.T) {
	// series() swaps the columns: cost owner = tenant input, cost tenant = owner input.
	points := series([]float64{900, 950, 1000, 1000}, []float64{3000, 1500, 1000, 800})

	point := FindMonthlyCostBreakEven(points)
	if point == nil {
		t.Fatal("expected a cost break-even")
	}
	if point.Month != 3 {
		t.Errorf("cost break-even month = %d, expected 3", point.Month)
	}

	never := series([]float64{900, 900}, []float64{1000, 1000})
	if point := FindMonthlyCostBreakEven(never); point != nil {
		t.Errorf("expected no cost break-even, got month %d", point.Month)
	}
}

func TestFindBreakEvenIgnoresMonthZero(t *testing.T) {
	points := []DataPoint{
		{Month: 0, OwnerWealth: 100, TenantWealth: 0},
		{Month: 1, OwnerWealth: 0, TenantWealth: 100},
		{Month: 2, OwnerWealth: 100, TenantWealth: 100},
	}

	point := FindWealthBreakEven(points)
	if point == nil || point.Month != 2 {
		t.Fatalf("expected break-even at month 2, got %+v", point)
	}
}

func TestFindBreakEvenReturnsCopy(t *testing.T) {
	points := series([]float64{5}, []float64{1})
	point := FindWealthBreakEven(points)
	point.OwnerWealth = -1
	if points[0].OwnerWealth != 5 {
		t.Error("modifying the result changed the series")
	}
}

func TestBreakEvenOnProjection(t *testing.T) {
	params := Params{
		PurchasePrice:        200000,
		NotaryFees:           15000,
		AppreciationRate:     2,
		AgencyFeesPercent:    4,
		PersonalContribution: 15000,
		Loans:                []loans.Loan{{Amount: 200000, Rate: 3, DurationMonths: 240}},
		PropertyTax:          1000,
		MonthlyRent:          1100,
		SavingsRate:          2,
		RentInflation:        2,
	}

	result := Run(params, expenses.Totals{})
	wealth := FindWealthBreakEven(result.MonthlyData)
	if wealth == nil {
		t.Fatal("expected buying to win on wealth within 25 years")
	}
	for _, earlier := range result.MonthlyData[:wealth.Month-1] {
		if earlier.OwnerWealth >= earlier.TenantWealth {
			t.Fatalf("month %d already satisfies the predicate before %d", earlier.Month, wealth.Month)
		}
	}

	// A very expensive purchase against a cheap rent never pays off.
	params.MonthlyRent = 200
	params.AppreciationRate = -2
	result = Run(params, expenses.Totals{})
	if point := FindWealthBreakEven(result.MonthlyData); point != nil {
		t.Errorf("expected no wealth break-even, got month %d", point.Month)
	}
}

func TestPointAtYear(t *testing.T) {
	result := Run(Params{PurchasePrice: 100000}, expenses.Totals{})

	tests := []struct {
		year          int
		expectedMonth int
	}{
		{1, 12},
		{10, 120},
		{25, 300},
		{26, 300},
		{0, 300},
		{-4, 300},
	}

	for _, tt := range tests {
		if got := PointAtYear(result, tt.year); got.Month != tt.expectedMonth {
			t.Errorf("PointAtYear(%d) month = %d, expected %d", tt.year, got.Month, tt.expectedMonth)
		}
	}

	if got := PointAtYear(Result{}, 5); got != (DataPoint{}) {
		t.Errorf("PointAtYear on empty result = %+v, expected zero value", got)
	}
}

func TestAnalyze(t *testing.T) {
	params := baselineParams()
	custom := []expenses.CustomExpense{
		{Name: "Kitchen", Amount: 6000, Type: expenses.Initial},
		{Name: "Fibre", Amount: 30, Type: expenses.Monthly},
	}

	analysis := Analyze(NewEngine(nil), params, custom, 10)

	if analysis.Totals.Initial != 16000 {
		t.Errorf("initial total = %v, expected 16000", analysis.Totals.Initial)
	}
	if analysis.Totals.Monthly != 60 {
		t.Errorf("monthly total = %v, expected 60", analysis.Totals.Monthly)
	}
	if analysis.AnnualRecurringCosts != (120+60)*12+1400+300 {
		t.Errorf("annual recurring = %v", analysis.AnnualRecurringCosts)
	}
	if analysis.Target.Month != 120 {
		t.Errorf("target month = %d, expected 120", analysis.Target.Month)
	}
	if len(analysis.Result.MonthlyData) != 300 {
		t.Errorf("monthly points = %d, expected 300", len(analysis.Result.MonthlyData))
	}
	if got := analysis.Result.MonthlyData[0].TenantWealth; got < 30000+22000+16000 {
		t.Errorf("tenant starts with %v, expected the upfront money invested", got)
	}
}
