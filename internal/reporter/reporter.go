// Package reporter renders the analysis artifacts: normalized transaction
// and summary CSVs, the alert list, SVG charts, and a Markdown report tying
// them together.
package reporter

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"finance-analyzer/internal/analytics"
	"finance-analyzer/internal/models"
	"finance-analyzer/pkg/errors"
	"finance-analyzer/pkg/logger"

	"github.com/shopspring/decimal"
)

// Artifact file names within the output directory.
const (
	TransactionsFile    = "normalized_transactions.csv"
	MonthlySummaryFile  = "monthly_summary.csv"
	CategorySummaryFile = "category_summary.csv"
	AlertsFile          = "budget_alerts.txt"
	TrendChartFile      = "monthly_spending_trend.svg"
	CategoryChartFile   = "latest_month_category_spending.svg"
	ReportFile          = "report.md"
)

// Generator writes all report artifacts into a single output directory.
type Generator struct {
	outputDir string
	logger    logger.Logger
}

// NewGenerator creates the output directory if needed and returns a
// Generator rooted there.
func NewGenerator(outputDir string) (*Generator, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, errors.FileError(errors.CodeDirectoryError, outputDir, err).
			WithSuggestion("Check permissions on the output directory path")
	}

	return &Generator{
		outputDir: outputDir,
		logger:    logger.GetGlobalLogger().WithComponent("reporter"),
	}, nil
}

// OutputDir returns the directory artifacts are written to.
func (g *Generator) OutputDir() string {
	return g.outputDir
}

func (g *Generator) path(name string) string {
	return filepath.Join(g.outputDir, name)
}

func (g *Generator) writeCSV(name string, header []string, rows [][]string) error {
	file, err := os.Create(g.path(name))
	if err != nil {
		return errors.FileError(errors.CodeFilePermission, g.path(name), err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return errors.AnalysisError(errors.CodeReportFailed, name, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return errors.AnalysisError(errors.CodeReportFailed, name, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.AnalysisError(errors.CodeReportFailed, name, err)
	}

	g.logger.WithFields(logger.Fields{
		"file": name,
		"rows": len(rows),
	}).Debug("Wrote report CSV")
	return nil
}

// WriteTransactionsCSV writes the normalized, categorized transactions.
func (g *Generator) WriteTransactionsCSV(transactions []*models.Transaction) error {
	rows := make([][]string, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, []string{
			tx.Date.Format("2006-01-02"),
			tx.Description,
			tx.Amount.StringFixed(2),
			tx.Category,
		})
	}
	return g.writeCSV(TransactionsFile, []string{"date", "description", "amount", "category"}, rows)
}

// WriteMonthlySummaryCSV writes one row per month with income, expenses,
// net, and savings rate.
func (g *Generator) WriteMonthlySummaryCSV(summaries []*models.MonthlySummary) error {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Month,
			s.Income.StringFixed(2),
			s.Expenses.StringFixed(2),
			s.Net.StringFixed(2),
			s.SavingsRate.StringFixed(4),
		})
	}
	return g.writeCSV(MonthlySummaryFile, []string{"month", "income", "expenses", "net", "savings_rate"}, rows)
}

// WriteCategorySummaryCSV writes per-month per-category spending, months
// ascending and categories ascending within each month.
func (g *Generator) WriteCategorySummaryCSV(byMonth map[string]map[string]decimal.Decimal) error {
	var rows [][]string
	for _, month := range analytics.SortedMonths(byMonth) {
		categories := byMonth[month]
		for _, category := range analytics.SortedCategories(categories) {
			rows = append(rows, []string{month, category, categories[category].StringFixed(2)})
		}
	}
	return g.writeCSV(CategorySummaryFile, []string{"month", "category", "spend"}, rows)
}

// WriteAlerts writes the alert lines, one per line with a trailing newline.
func (g *Generator) WriteAlerts(alerts []string) error {
	var content string
	for _, alert := range alerts {
		content += alert + "\n"
	}
	if err := os.WriteFile(g.path(AlertsFile), []byte(content), 0644); err != nil {
		return errors.FileError(errors.CodeFilePermission, g.path(AlertsFile), err)
	}
	return nil
}
