// Package budget evaluates the most recent month of summaries against
// configured spending limits and produces human-readable alert lines.
package budget

import (
	"fmt"

	"finance-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// savingsRateTarget is the minimum savings rate before a notice is raised.
var savingsRateTarget = decimal.RequireFromString("0.2")

// CategoryLimit pairs a category with its monthly spending ceiling.
type CategoryLimit struct {
	Category string
	Limit    decimal.Decimal
}

// CategoryLimits is an ordered list of per-category ceilings. Alerts are
// emitted in this order, so it round-trips JSON without losing key order.
type CategoryLimits []CategoryLimit

// Config holds the spending thresholds for alert generation. A nil
// MonthlySpendingLimit disables the total-spending check.
type Config struct {
	MonthlySpendingLimit *decimal.Decimal
	CategoryLimits       CategoryLimits
}

// GenerateAlerts inspects the latest month and returns at least one line:
// threshold breaches, a low-savings notice, or a single all-clear line.
func GenerateAlerts(
	summaries []*models.MonthlySummary,
	categoriesByMonth map[string]map[string]decimal.Decimal,
	cfg Config,
) []string {
	if len(summaries) == 0 {
		return []string{"No transactions found; no alerts generated."}
	}

	latest := summaries[len(summaries)-1]
	latestCategories := categoriesByMonth[latest.Month]

	var alerts []string

	if cfg.MonthlySpendingLimit != nil && latest.Expenses.GreaterThan(*cfg.MonthlySpendingLimit) {
		delta := latest.Expenses.Sub(*cfg.MonthlySpendingLimit)
		alerts = append(alerts, fmt.Sprintf(
			"ALERT: Total spending for %s is $%s, which is $%s above your $%s budget.",
			latest.Month,
			latest.Expenses.StringFixed(2),
			delta.StringFixed(2),
			cfg.MonthlySpendingLimit.StringFixed(2),
		))
	}

	for _, limit := range cfg.CategoryLimits {
		spent := latestCategories[limit.Category]
		if spent.GreaterThan(limit.Limit) {
			alerts = append(alerts, fmt.Sprintf(
				"ALERT: %s spending for %s is $%s, which is $%s above your $%s budget.",
				limit.Category,
				latest.Month,
				spent.StringFixed(2),
				spent.Sub(limit.Limit).StringFixed(2),
				limit.Limit.StringFixed(2),
			))
		}
	}

	if latest.SavingsRate.LessThan(savingsRateTarget) {
		alerts = append(alerts, fmt.Sprintf(
			"NOTICE: Savings rate for %s is %s, below the 20%% target.",
			latest.Month,
			FormatRate(latest.SavingsRate),
		))
	}

	if len(alerts) == 0 {
		alerts = append(alerts, fmt.Sprintf(
			"OK: Spending for %s is within configured budget limits.", latest.Month,
		))
	}

	return alerts
}

// FormatRate renders a ratio as a percentage with one decimal place,
// e.g. 0.5883 becomes "58.8%".
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
