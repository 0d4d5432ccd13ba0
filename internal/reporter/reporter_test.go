package reporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"finance-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()

	gen, err := NewGenerator(filepath.Join(t.TempDir(), "reports"))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	return gen
}

func readArtifact(t *testing.T, gen *Generator, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(gen.OutputDir(), name))
	if err != nil {
		t.Fatalf("Failed to read %s: %v", name, err)
	}
	return string(data)
}

func TestNewGenerator_CreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "reports")
	gen, err := NewGenerator(dir)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	if _, err := os.Stat(gen.OutputDir()); err != nil {
		t.Errorf("Output directory not created: %v", err)
	}
}

func TestWriteTransactionsCSV(t *testing.T) {
	gen := newTestGenerator(t)

	date := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
	tx := models.NewTransaction(date, "Payroll ACME", decimal.RequireFromString("2500"))
	tx.Category = "Income"

	if err := gen.WriteTransactionsCSV([]*models.Transaction{tx}); err != nil {
		t.Fatalf("WriteTransactionsCSV() error = %v", err)
	}

	content := readArtifact(t, gen, TransactionsFile)
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if lines[0] != "date,description,amount,category" {
		t.Errorf("Unexpected header: %q", lines[0])
	}
	if lines[1] != "2026-01-03,Payroll ACME,2500.00,Income" {
		t.Errorf("Unexpected row: %q", lines[1])
	}
}

func TestWriteMonthlySummaryCSV(t *testing.T) {
	gen := newTestGenerator(t)

	summaries := []*models.MonthlySummary{
		{
			Month:       "2026-01",
			Income:      decimal.RequireFromString("4000"),
			Expenses:    decimal.RequireFromString("1646.99"),
			Net:         decimal.RequireFromString("2353.01"),
			SavingsRate: decimal.RequireFromString("0.5883"),
		},
	}

	if err := gen.WriteMonthlySummaryCSV(summaries); err != nil {
		t.Fatalf("WriteMonthlySummaryCSV() error = %v", err)
	}

	content := readArtifact(t, gen, MonthlySummaryFile)
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if lines[0] != "month,income,expenses,net,savings_rate" {
		t.Errorf("Unexpected header: %q", lines[0])
	}
	if lines[1] != "2026-01,4000.00,1646.99,2353.01,0.5883" {
		t.Errorf("Unexpected row: %q", lines[1])
	}
}

func TestWriteCategorySummaryCSV_Sorted(t *testing.T) {
	gen := newTestGenerator(t)

	byMonth := map[string]map[string]decimal.Decimal{
		"2026-02": {"Housing": decimal.RequireFromString("1200")},
		"2026-01": {
			"Housing":   decimal.RequireFromString("1200"),
			"Groceries": decimal.RequireFromString("75.75"),
		},
	}

	if err := gen.WriteCategorySummaryCSV(byMonth); err != nil {
		t.Fatalf("WriteCategorySummaryCSV() error = %v", err)
	}

	content := readArtifact(t, gen, CategorySummaryFile)
	want := "month,category,spend\n" +
		"2026-01,Groceries,75.75\n" +
		"2026-01,Housing,1200.00\n" +
		"2026-02,Housing,1200.00\n"
	if content != want {
		t.Errorf("Got:\n%s\nWant:\n%s", content, want)
	}
}

func TestWriteAlerts(t *testing.T) {
	gen := newTestGenerator(t)

	alerts := []string{
		"ALERT: Total spending for 2026-01 is $2750.50, which is $250.50 above your $2500.00 budget.",
		"NOTICE: Savings rate for 2026-01 is 7.5%, below the 20% target.",
	}
	if err := gen.WriteAlerts(alerts); err != nil {
		t.Fatalf("WriteAlerts() error = %v", err)
	}

	content := readArtifact(t, gen, AlertsFile)
	if content != alerts[0]+"\n"+alerts[1]+"\n" {
		t.Errorf("Unexpected alerts file:\n%s", content)
	}
}

func TestWriteSpendingTrendSVG(t *testing.T) {
	gen := newTestGenerator(t)

	series := []MonthPoint{
		{Month: "2026-01", Expenses: decimal.RequireFromString("1646.99")},
		{Month: "2026-02", Expenses: decimal.RequireFromString("900.00")},
	}
	if err := gen.WriteSpendingTrendSVG(series); err != nil {
		t.Fatalf("WriteSpendingTrendSVG() error = %v", err)
	}

	content := readArtifact(t, gen, TrendChartFile)
	for _, fragment := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		"<polyline",
		"Monthly Spending Trend",
		"2026-01",
		"2026-02",
		"</svg>",
	} {
		if !strings.Contains(content, fragment) {
			t.Errorf("Chart missing %q", fragment)
		}
	}
}

func TestWriteSpendingTrendSVG_Empty(t *testing.T) {
	gen := newTestGenerator(t)

	if err := gen.WriteSpendingTrendSVG(nil); err != nil {
		t.Fatalf("WriteSpendingTrendSVG() error = %v", err)
	}

	content := readArtifact(t, gen, TrendChartFile)
	if !strings.Contains(content, "No data") {
		t.Errorf("Empty chart must render a No data placeholder, got:\n%s", content)
	}
}

func TestWriteCategoryBarSVG_SortedDescending(t *testing.T) {
	gen := newTestGenerator(t)

	spending := map[string]decimal.Decimal{
		"Groceries": decimal.RequireFromString("75.75"),
		"Housing":   decimal.RequireFromString("1200"),
		"Dining":    decimal.RequireFromString("310.25"),
	}
	if err := gen.WriteCategoryBarSVG(spending, "Latest Month Category Spending"); err != nil {
		t.Fatalf("WriteCategoryBarSVG() error = %v", err)
	}

	content := readArtifact(t, gen, CategoryChartFile)
	housing := strings.Index(content, ">Housing<")
	dining := strings.Index(content, ">Dining<")
	groceries := strings.Index(content, ">Groceries<")
	if housing < 0 || dining < 0 || groceries < 0 {
		t.Fatalf("Missing category labels:\n%s", content)
	}
	if !(housing < dining && dining < groceries) {
		t.Errorf("Bars not sorted by spend descending: housing=%d dining=%d groceries=%d",
			housing, dining, groceries)
	}
	if !strings.Contains(content, "Latest Month Category Spending") {
		t.Error("Chart title missing")
	}
}

func TestWriteMarkdownReport(t *testing.T) {
	gen := newTestGenerator(t)

	summaries := []*models.MonthlySummary{
		{
			Month:       "2026-01",
			Income:      decimal.RequireFromString("4000"),
			Expenses:    decimal.RequireFromString("1646.99"),
			Net:         decimal.RequireFromString("2353.01"),
			SavingsRate: decimal.RequireFromString("0.5883"),
		},
	}
	alerts := []string{"OK: Spending for 2026-01 is within configured budget limits."}

	if err := gen.WriteMarkdownReport(summaries, alerts); err != nil {
		t.Fatalf("WriteMarkdownReport() error = %v", err)
	}

	content := readArtifact(t, gen, ReportFile)
	for _, fragment := range []string{
		"# Personal Finance Report",
		"Latest month: 2026-01 | Income: $4000.00 | Expenses: $1646.99 | Net: $2353.01 | Savings Rate: 58.8%",
		"## Budget Alerts",
		"- OK: Spending for 2026-01 is within configured budget limits.",
		"![Monthly Spending Trend](monthly_spending_trend.svg)",
		"![Latest Month Category Spending](latest_month_category_spending.svg)",
		"- normalized_transactions.csv",
		"- budget_alerts.txt",
	} {
		if !strings.Contains(content, fragment) {
			t.Errorf("Report missing %q", fragment)
		}
	}
}

func TestWriteMarkdownReport_NoTransactions(t *testing.T) {
	gen := newTestGenerator(t)

	if err := gen.WriteMarkdownReport(nil, []string{"No transactions found; no alerts generated."}); err != nil {
		t.Fatalf("WriteMarkdownReport() error = %v", err)
	}

	content := readArtifact(t, gen, ReportFile)
	if !strings.Contains(content, "No transactions available.") {
		t.Errorf("Expected empty-state headline, got:\n%s", content)
	}
}
