package integration

import (
	"bytes"
	"strings"
	"testing"

	"github.com/finaly55/opti-credit/internal/cache"
	"github.com/finaly55/opti-credit/internal/config"
	"github.com/finaly55/opti-credit/internal/optimizer"
	"github.com/finaly55/opti-credit/internal/simulation"
	"github.com/finaly55/opti-credit/pkg/mathutil"
	"github.com/finaly55/opti-credit/pkg/output"
	"github.com/finaly55/opti-credit/pkg/testutil"
	"go.uber.org/zap"
)

func loadReport(t *testing.T) (*config.Configuration, output.Report) {
	t.Helper()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	sim := cache.NewSimulator(zap.NewNop(), simulation.NewEngine(zap.NewNop()), cache.NewMemoryCache(0))
	report := output.Report{
		Analysis: simulation.Analyze(sim, conf.Simulation.Params, conf.Simulation.CustomExpenses, conf.Simulation.TargetYear),
	}
	return conf, report
}

// TestMainIntegrationBaseline runs the example configuration the same way the
// command line tool does and checks the headline figures.
func TestMainIntegrationBaseline(t *testing.T) {
	conf, report := loadReport(t)
	a := report.Analysis

	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	if a.Totals.Initial != 14000 || a.Totals.Monthly != 45 || a.Totals.Yearly != 400 {
		t.Errorf("totals = %+v", a.Totals)
	}

	if a.WealthBreakEven == nil || a.WealthBreakEven.Month != 226 {
		t.Errorf("wealth break-even = %+v, expected month 226", a.WealthBreakEven)
	}
	if a.CostBreakEven == nil || a.CostBreakEven.Month != 96 {
		t.Errorf("cost break-even = %+v, expected month 96", a.CostBreakEven)
	}

	expected := []struct {
		month  int
		owner  float64
		tenant float64
	}{
		{120, 118109, 171266},
		{300, 393722, 335510},
	}
	for _, e := range expected {
		point := testutil.FindMonth(a.Result.MonthlyData, e.month)
		if point == nil {
			t.Fatalf("month %d missing", e.month)
		}
		if !mathutil.WithinTolerance(point.OwnerWealth, e.owner, 1) {
			t.Errorf("month %d owner wealth = %v, expected %v", e.month, point.OwnerWealth, e.owner)
		}
		if !mathutil.WithinTolerance(point.TenantWealth, e.tenant, 1) {
			t.Errorf("month %d tenant wealth = %v, expected %v", e.month, point.TenantWealth, e.tenant)
		}
	}

	if a.Target.Month != 120 {
		t.Errorf("target month = %d, expected 120", a.Target.Month)
	}
	if last := a.Result.MonthlyData[len(a.Result.MonthlyData)-1]; last.DebtRemaining != 0 {
		t.Errorf("debt remaining at horizon = %v, expected 0", last.DebtRemaining)
	}
}

func TestOptimizerOnExampleConfiguration(t *testing.T) {
	conf, _ := loadReport(t)

	runner, err := optimizer.NewRunner(zap.NewNop(), simulation.NewEngine(nil), conf.Optimizer)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	sim := conf.Simulation
	summary := runner.Run(sim.Params, sim.CustomExpenses, sim.TargetYear)
	if !summary.Converged {
		t.Fatalf("expected convergence, got %+v", summary)
	}
	if summary.Value <= sim.Params.AppreciationRate {
		t.Errorf("appreciation %v should exceed the configured %v to break even by year %d",
			summary.Value, sim.Params.AppreciationRate, sim.TargetYear)
	}
	if summary.BreakEvenMonth > sim.TargetYear*12 {
		t.Errorf("break-even month %d after year %d", summary.BreakEvenMonth, sim.TargetYear)
	}
}

func TestOutputFormats(t *testing.T) {
	_, report := loadReport(t)

	var pretty bytes.Buffer
	output.PrettyFormat(&pretty, report)
	if !strings.Contains(pretty.String(), "Wealth break-even    | month 226 (18 years 10 months)") {
		t.Errorf("pretty output missing break-even line:\n%s", pretty.String())
	}

	csvOutput, err := output.CsvString(report)
	if err != nil {
		t.Fatalf("CsvString() error = %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(csvOutput), "\n"); len(lines) != 301 {
		t.Errorf("csv lines = %d, expected 301", len(lines))
	}

	pdf, err := output.PDFReport(report)
	if err != nil {
		t.Fatalf("PDFReport() error = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Error("PDFReport did not produce a pdf")
	}
}
