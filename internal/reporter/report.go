package reporter

import (
	"fmt"
	"os"
	"strings"

	"finance-analyzer/internal/budget"
	"finance-analyzer/internal/models"
	"finance-analyzer/pkg/errors"
)

// WriteMarkdownReport writes the top-level Markdown report linking the
// charts and listing the other artifacts.
func (g *Generator) WriteMarkdownReport(summaries []*models.MonthlySummary, alerts []string) error {
	var headline string
	if len(summaries) > 0 {
		latest := summaries[len(summaries)-1]
		headline = fmt.Sprintf(
			"Latest month: %s | Income: $%s | Expenses: $%s | Net: $%s | Savings Rate: %s",
			latest.Month,
			latest.Income.StringFixed(2),
			latest.Expenses.StringFixed(2),
			latest.Net.StringFixed(2),
			budget.FormatRate(latest.SavingsRate),
		)
	} else {
		headline = "No transactions available."
	}

	lines := []string{
		"# Personal Finance Report",
		"",
		headline,
		"",
		"## Budget Alerts",
		"",
	}
	for _, alert := range alerts {
		lines = append(lines, "- "+alert)
	}
	lines = append(lines,
		"",
		"## Charts",
		"",
		fmt.Sprintf("![Monthly Spending Trend](%s)", TrendChartFile),
		"",
		fmt.Sprintf("![Latest Month Category Spending](%s)", CategoryChartFile),
		"",
		"## Output Files",
		"",
		"- "+TransactionsFile,
		"- "+MonthlySummaryFile,
		"- "+CategorySummaryFile,
		"- "+AlertsFile,
		"",
	)

	content := strings.Join(lines, "\n")
	if err := os.WriteFile(g.path(ReportFile), []byte(content), 0644); err != nil {
		return errors.FileError(errors.CodeFilePermission, g.path(ReportFile), err)
	}

	g.logger.WithField("file", ReportFile).Debug("Wrote markdown report")
	return nil
}
