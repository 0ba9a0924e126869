package output

import (
	"bytes"
	"fmt"

	"github.com/finaly55/opti-credit/internal/simulation"
	"github.com/finaly55/opti-credit/pkg/constants"
	"github.com/finaly55/opti-credit/pkg/format"
	"github.com/finaly55/opti-credit/pkg/loans"
	"github.com/go-pdf/fpdf"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

type pdfReport struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	report Report
}

// PDFReport renders the report as an A4 document.
func PDFReport(report Report) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	r := &pdfReport{
		pdf:    doc,
		tr:     doc.UnicodeTranslatorFromDescriptor(""),
		report: report,
	}

	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetTitle("Buy versus rent", true)

	r.addSummaryPage()
	r.addYearlyTable()

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf report: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) addSummaryPage() {
	a := r.report.Analysis
	params := a.Params

	r.pdf.AddPage()
	r.pdf.SetFont("Arial", "B", 24)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 14, "Buy versus rent", "", 1, "C", false, 0, "")
	r.pdf.SetFont("Arial", "", 12)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.CellFormat(contentWidth, 8, fmt.Sprintf("Projection over %d years", constants.HorizonYears), "", 1, "C", false, 0, "")
	r.pdf.Ln(8)

	r.drawSectionHeader("Purchase")
	r.drawKeyValue("Purchase price", format.Currency(params.PurchasePrice))
	r.drawKeyValue("Notary fees", format.Currency(params.NotaryFees))
	r.drawKeyValue("Initial expenses", format.Currency(a.Totals.Initial))
	r.drawKeyValue("Personal contribution", format.Currency(params.PersonalContribution))
	r.drawKeyValue("Borrowed", format.Currency(params.TotalBorrowed()))
	r.drawKeyValue("Annual running costs", format.Currency(a.AnnualRecurringCosts))
	r.drawKeyValue("Appreciation", format.Percent(params.AppreciationRate))
	r.drawKeyValue("Starting rent", format.Currency(params.MonthlyRent))
	r.drawKeyValue("Savings rate", format.Percent(params.SavingsRate))
	r.pdf.Ln(4)

	if len(params.Loans) > 0 {
		r.drawSectionHeader("Loans")
		widths := []float64{45, 30, 18, 30, 27, 30}
		r.drawTableHeader([]string{"Loan", "Amount", "Rate", "Duration", "Deferred", "Interest"}, widths)
		for _, loan := range params.Loans {
			interest, _ := loans.TotalCost(loans.Schedule(loan))
			r.drawTableRow([]string{
				loan.Name,
				format.Currency(loan.Amount),
				format.Percent(loan.Rate),
				format.Duration(loan.DurationMonths),
				format.Duration(loan.DeferredMonths),
				format.Currency(interest),
			}, widths, false)
		}
		r.pdf.Ln(4)
	}

	r.drawSectionHeader("Break-even")
	r.drawKeyValue("Wealth", describeBreakEven(a.WealthBreakEven))
	r.drawKeyValue("Monthly cost", describeBreakEven(a.CostBreakEven))
	r.pdf.Ln(4)

	target := a.Target
	r.drawSectionHeader(fmt.Sprintf("Position after year %d", int(target.Year)))
	r.drawKeyValue("Owner net wealth", format.Currency(target.OwnerWealth))
	r.drawKeyValue("Tenant net wealth", format.Currency(target.TenantWealth))
	r.drawKeyValue("Difference", format.Currency(target.OwnerWealth-target.TenantWealth))
	r.drawKeyValue("Net sale price", format.Currency(target.NetSalePrice))
	r.drawKeyValue("Debt remaining", format.Currency(target.DebtRemaining))

	if summary := r.report.Optimization; summary != nil {
		r.pdf.Ln(4)
		r.drawSectionHeader("Optimizer: " + summary.Field)
		r.drawKeyValue("Configured value", summary.OriginalDisplay)
		if summary.Converged {
			r.drawKeyValue(fmt.Sprintf("Break-even by year %d", summary.TargetYear), summary.ValueDisplay)
		} else {
			r.drawKeyValue(fmt.Sprintf("Break-even by year %d", summary.TargetYear), "not reached")
		}
		r.pdf.SetFont("Arial", "I", 9)
		for _, note := range summary.Notes {
			r.pdf.MultiCell(contentWidth, 5, r.tr(note), "", "L", false)
		}
	}
}

func (r *pdfReport) addYearlyTable() {
	r.pdf.AddPage()
	r.drawSectionHeader("Year by year")

	widths := []float64{14, 30, 30, 28, 28, 25, 25}
	r.drawTableHeader([]string{"Year", "Owner", "Tenant", "Owner/month", "Tenant/month", "Value", "Debt"}, widths)

	highlight := r.report.Analysis.Target.Month
	for _, point := range r.report.Analysis.Result.YearlyData {
		r.drawTableRow(yearlyCells(point), widths, point.Month == highlight)
	}
}

func yearlyCells(point simulation.DataPoint) []string {
	return []string{
		fmt.Sprintf("%d", int(point.Year)),
		format.Currency(point.OwnerWealth),
		format.Currency(point.TenantWealth),
		format.Currency(point.MonthlyCostOwner),
		format.Currency(point.MonthlyCostTenant),
		format.Currency(point.PropertyValue),
		format.Currency(point.DebtRemaining),
	}
}

func (r *pdfReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 9, r.tr(title), "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(3)
}

func (r *pdfReport) drawKeyValue(key, value string) {
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.CellFormat(contentWidth/2, 6, r.tr(key), "", 0, "L", false, 0, "")
	r.pdf.SetFont("Arial", "B", 10)
	r.pdf.CellFormat(contentWidth/2, 6, r.tr(value), "", 1, "R", false, 0, "")
}

func (r *pdfReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, r.tr(header), "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) drawTableRow(cells []string, widths []float64, bold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.SetFont("Arial", "", 8)
	if bold {
		r.pdf.SetFont("Arial", "B", 8)
		r.pdf.SetFillColor(235, 240, 248)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, r.tr(cell), "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
