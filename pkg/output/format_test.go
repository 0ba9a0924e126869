package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/finaly55/opti-credit/internal/simulation"
	"github.com/finaly55/opti-credit/pkg/expenses"
	"github.com/finaly55/opti-credit/pkg/loans"
	"github.com/finaly55/opti-credit/pkg/optimization"
)

func testReport() Report {
	params := simulation.Params{
		PurchasePrice:        200000,
		NotaryFees:           15000,
		AppreciationRate:     2,
		AgencyFeesPercent:    4,
		PersonalContribution: 15000,
		Loans:                []loans.Loan{{ID: "main", Name: "Main loan", Amount: 200000, Rate: 3, DurationMonths: 240}},
		PropertyTax:          1000,
		MonthlyRent:          1100,
		SavingsRate:          2,
		RentInflation:        2,
	}
	custom := []expenses.CustomExpense{{Name: "Kitchen", Amount: 6000, Type: expenses.Initial}}
	return Report{Analysis: simulation.Analyze(simulation.NewEngine(nil), params, custom, 10)}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, testReport())
	output := buf.String()

	expected := []string{
		"--- Buy versus rent over 25 years ---",
		"Purchase price       | €200,000.00",
		"Initial expenses     | €6,000.00",
		"--- Position after year 10 ---",
		"Year | Owner wealth | Tenant wealth",
		"  25 | €",
	}
	for _, element := range expected {
		if !strings.Contains(output, element) {
			t.Errorf("PrettyFormat missing %q", element)
		}
	}
	if strings.Contains(output, "Optimizer") {
		t.Error("PrettyFormat printed an optimizer section without a summary")
	}
}

func TestPrettyFormatBreakEvenNever(t *testing.T) {
	report := Report{Analysis: simulation.Analysis{
		Result: simulation.Result{YearlyData: []simulation.DataPoint{{Month: 12, Year: 1}}},
	}}

	var buf bytes.Buffer
	PrettyFormat(&buf, report)
	if !strings.Contains(buf.String(), "Wealth break-even    | never within 25 years") {
		t.Errorf("expected a never break-even line, got %q", buf.String())
	}
}

func TestPrettyFormatOptimizationSummary(t *testing.T) {
	report := testReport()
	report.Optimization = &optimization.Summary{
		Field:           "appreciationRate",
		OriginalDisplay: "2.00%",
		ValueDisplay:    "0.42%",
		TargetYear:      5,
		Iterations:      10,
		Converged:       true,
		Notes:           []string{"custom note"},
	}

	var buf bytes.Buffer
	PrettyFormat(&buf, report)
	output := buf.String()

	for _, element := range []string{"--- Optimizer: appreciationRate ---", "0.42% (10 iterations)", "Note: custom note"} {
		if !strings.Contains(output, element) {
			t.Errorf("PrettyFormat missing %q", element)
		}
	}
}

func TestCsvFormat(t *testing.T) {
	report := testReport()

	var buf bytes.Buffer
	if err := CsvFormat(&buf, report); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("CsvFormat produced unreadable csv: %v", err)
	}
	if len(records) != 301 {
		t.Fatalf("records = %d, expected header plus 300 months", len(records))
	}
	if records[0][0] != "month" || len(records[0]) != 12 {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "1" || records[300][0] != "300" {
		t.Errorf("month column = %s .. %s", records[1][0], records[300][0])
	}
	if records[12][1] != "1" {
		t.Errorf("year of month 12 = %s, expected 1", records[12][1])
	}
}

func TestCsvStringMatchesCsvFormat(t *testing.T) {
	report := testReport()

	expected, err := CsvString(report)
	if err != nil {
		t.Fatalf("CsvString() error = %v", err)
	}

	var buf bytes.Buffer
	if err := CsvFormat(&buf, report); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}
	if buf.String() != expected {
		t.Fatal("CsvString and CsvFormat output mismatch")
	}
}

func TestCsvFormatEmptyResults(t *testing.T) {
	output, err := CsvString(Report{})
	if err != nil {
		t.Fatalf("CsvString() error = %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(output), "\n"); len(lines) != 1 {
		t.Errorf("expected only the header, got %d lines", len(lines))
	}
}

func TestPDFReport(t *testing.T) {
	report := testReport()
	report.Optimization = &optimization.Summary{
		Field:      "monthlyRent",
		TargetYear: 5,
		Notes:      []string{"buying does not break even by year 5"},
	}

	data, err := PDFReport(report)
	if err != nil {
		t.Fatalf("PDFReport() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output does not look like a pdf: %q", data[:min(len(data), 8)])
	}
	if len(data) < 1000 {
		t.Errorf("pdf suspiciously small: %d bytes", len(data))
	}
}

func TestPDFReportEmpty(t *testing.T) {
	if _, err := PDFReport(Report{}); err != nil {
		t.Errorf("PDFReport() on empty report error = %v", err)
	}
}
