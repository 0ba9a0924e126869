package expenses

import (
	"testing"
)

func sampleExpenses() []CustomExpense {
	return []CustomExpense{
		{ID: "1", Name: "Kitchen", Amount: 8000, Type: Initial},
		{ID: "2", Name: "Furniture", Amount: 3500.5, Type: Initial},
		{ID: "3", Name: "Internet", Amount: 30, Type: Monthly},
		{ID: "4", Name: "Home insurance", Amount: 25.2, Type: Monthly},
		{ID: "5", Name: "Boiler service", Amount: 120, Type: Yearly},
		{ID: "6", Name: "Unknown", Amount: 999, Type: Type("weekly")},
	}
}

func TestTotals(t *testing.T) {
	base := Base{
		RenovationCost:    10000,
		MonthlyExtraCosts: 50,
		YearlyExtraCosts:  200,
		CondoFees:         100,
		PropertyTax:       1200,
	}

	tests := []struct {
		name     string
		fn       func(Base, []CustomExpense) float64
		expected float64
	}{
		{"Initial", TotalInitial, 21500.5},
		{"Monthly", TotalMonthly, 105.2},
		{"Yearly", TotalYearly, 320},
		{"Annual recurring", AnnualRecurringCosts, (100+105.2)*12 + 1200 + 320},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(base, sampleExpenses()); got != tt.expected {
				t.Errorf("got %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestTotalsWithoutCustomExpenses(t *testing.T) {
	base := Base{RenovationCost: 5000, MonthlyExtraCosts: 20, YearlyExtraCosts: 100}

	totals := Aggregate(base, nil)
	if totals.Initial != 5000 || totals.Monthly != 20 || totals.Yearly != 100 {
		t.Errorf("Aggregate() = %+v, expected base figures only", totals)
	}
}

func TestTotalsOrderIndependent(t *testing.T) {
	base := Base{MonthlyExtraCosts: 0.1}
	forward := []CustomExpense{
		{Amount: 0.1, Type: Monthly},
		{Amount: 0.2, Type: Monthly},
		{Amount: 0.3, Type: Monthly},
	}
	reversed := []CustomExpense{forward[2], forward[1], forward[0]}

	a := TotalMonthly(base, forward)
	b := TotalMonthly(base, reversed)
	if a != b {
		t.Errorf("order changed the total: %v vs %v", a, b)
	}
	if a != 0.7 {
		t.Errorf("TotalMonthly() = %v, expected 0.7", a)
	}
}

func TestTotalsIdempotent(t *testing.T) {
	base := Base{RenovationCost: 1000}
	list := sampleExpenses()

	first := Aggregate(base, list)
	second := Aggregate(base, list)
	if first != second {
		t.Errorf("Aggregate() is not idempotent: %+v vs %+v", first, second)
	}
	if list[0].Amount != 8000 {
		t.Error("Aggregate() mutated its input")
	}
}

func TestTypeValid(t *testing.T) {
	for _, valid := range []Type{Initial, Monthly, Yearly} {
		if !valid.Valid() {
			t.Errorf("%q should be valid", valid)
		}
	}
	if Type("weekly").Valid() {
		t.Error("weekly should not be valid")
	}
}
