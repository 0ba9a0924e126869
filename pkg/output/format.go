// Package output provides utilities for formatting and displaying simulation results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/finaly55/opti-credit/internal/simulation"
	"github.com/finaly55/opti-credit/pkg/constants"
	"github.com/finaly55/opti-credit/pkg/format"
	"github.com/finaly55/opti-credit/pkg/optimization"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report is everything rendered for one comparison.
type Report struct {
	Analysis     simulation.Analysis   `json:"analysis"`
	Optimization *optimization.Summary `json:"optimization,omitempty"`
}

var csvHeader = []string{
	"month", "year", "ownerWealth", "tenantWealth", "monthlyCostOwner", "monthlyCostTenant",
	"monthlyInterestsEarned", "propertyValue", "netSalePrice", "sellingCosts", "debtRemaining", "sunkCosts",
}

// PrettyFormat writes a human-readable rather than machine-readable summary.
func PrettyFormat(w io.Writer, report Report) {
	p := message.NewPrinter(language.English)
	a := report.Analysis
	params := a.Params

	fmt.Fprintf(w, "--- Buy versus rent over %d years ---\n", constants.HorizonYears)
	_, _ = p.Fprintf(w, "Purchase price       | €%.2f\n", params.PurchasePrice)
	_, _ = p.Fprintf(w, "Notary fees          | €%.2f\n", params.NotaryFees)
	_, _ = p.Fprintf(w, "Initial expenses     | €%.2f\n", a.Totals.Initial)
	_, _ = p.Fprintf(w, "Personal contribution| €%.2f\n", params.PersonalContribution)
	_, _ = p.Fprintf(w, "Borrowed             | €%.2f\n", params.TotalBorrowed())
	_, _ = p.Fprintf(w, "Annual running costs | €%.2f\n", a.AnnualRecurringCosts)
	_, _ = p.Fprintf(w, "Starting rent        | €%.2f\n", params.MonthlyRent)
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "Wealth break-even    | %s\n", describeBreakEven(a.WealthBreakEven))
	fmt.Fprintf(w, "Cost break-even      | %s\n", describeBreakEven(a.CostBreakEven))
	fmt.Fprintf(w, "\n")

	target := a.Target
	fmt.Fprintf(w, "--- Position after year %d ---\n", int(target.Year))
	_, _ = p.Fprintf(w, "Owner net wealth     | €%.2f\n", target.OwnerWealth)
	_, _ = p.Fprintf(w, "Tenant net wealth    | €%.2f\n", target.TenantWealth)
	_, _ = p.Fprintf(w, "Difference           | €%.2f\n", target.OwnerWealth-target.TenantWealth)
	_, _ = p.Fprintf(w, "Property value       | €%.2f\n", target.PropertyValue)
	_, _ = p.Fprintf(w, "Debt remaining       | €%.2f\n", target.DebtRemaining)
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "Year | Owner wealth | Tenant wealth | Owner cost/month | Tenant cost/month | Debt remaining\n")
	fmt.Fprintf(w, "____ | ____________ | _____________ | ________________ | _________________ | ______________\n")
	for _, point := range a.Result.YearlyData {
		_, _ = p.Fprintf(w, "%4d | €%.0f | €%.0f | €%.0f | €%.0f | €%.0f\n",
			int(point.Year), point.OwnerWealth, point.TenantWealth,
			point.MonthlyCostOwner, point.MonthlyCostTenant, point.DebtRemaining)
	}

	if report.Optimization != nil {
		writeOptimization(w, *report.Optimization)
	}
}

func writeOptimization(w io.Writer, summary optimization.Summary) {
	fmt.Fprintf(w, "\n--- Optimizer: %s ---\n", summary.Field)
	fmt.Fprintf(w, "Configured value     | %s\n", summary.OriginalDisplay)
	if summary.Converged {
		fmt.Fprintf(w, "Break-even by year %d| %s (%d iterations)\n", summary.TargetYear, summary.ValueDisplay, summary.Iterations)
	} else {
		fmt.Fprintf(w, "Break-even by year %d| not reached\n", summary.TargetYear)
	}
	for _, note := range summary.Notes {
		fmt.Fprintf(w, "Note: %s\n", note)
	}
}

func describeBreakEven(point *simulation.DataPoint) string {
	if point == nil {
		return fmt.Sprintf("never within %d years", constants.HorizonYears)
	}
	return fmt.Sprintf("month %d (%s)", point.Month, format.Duration(point.Month))
}

// CsvFormat writes the monthly series in comma-separated value format.
func CsvFormat(w io.Writer, report Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, point := range report.Analysis.Result.MonthlyData {
		if err := writer.Write(csvRow(point)); err != nil {
			return fmt.Errorf("failed to write csv row for month %d: %w", point.Month, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// CsvString renders the CSV output for the report as a string.
func CsvString(report Report) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, report); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func csvRow(point simulation.DataPoint) []string {
	number := func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return []string{
		strconv.Itoa(point.Month),
		number(point.Year),
		number(point.OwnerWealth),
		number(point.TenantWealth),
		number(point.MonthlyCostOwner),
		number(point.MonthlyCostTenant),
		number(point.MonthlyInterestsEarned),
		number(point.PropertyValue),
		number(point.NetSalePrice),
		number(point.SellingCosts),
		number(point.DebtRemaining),
		number(point.SunkCosts),
	}
}
