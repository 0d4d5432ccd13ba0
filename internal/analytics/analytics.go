// Package analytics aggregates normalized transactions into monthly and
// per-category summaries.
package analytics

import (
	"sort"

	"finance-analyzer/internal/models"
	"finance-analyzer/pkg/logger"

	"github.com/shopspring/decimal"
)

// MonthlySummaries buckets transactions by calendar month and computes
// income, expenses, net, and savings rate per month, sorted ascending.
// Non-negative amounts feed the income bucket; the expense bucket holds
// absolute values of negative amounts.
func MonthlySummaries(transactions []*models.Transaction) []*models.MonthlySummary {
	income := make(map[string]decimal.Decimal)
	expenses := make(map[string]decimal.Decimal)

	for _, tx := range transactions {
		month := tx.Month()
		if tx.Amount.Sign() >= 0 {
			income[month] = income[month].Add(tx.Amount)
		} else {
			expenses[month] = expenses[month].Add(tx.Amount.Abs())
		}
	}

	months := monthUnion(income, expenses)
	summaries := make([]*models.MonthlySummary, 0, len(months))

	for _, month := range months {
		monthIncome := income[month].Round(2)
		monthExpenses := expenses[month].Round(2)
		net := monthIncome.Sub(monthExpenses)

		savingsRate := decimal.Zero
		if monthIncome.IsPositive() {
			savingsRate = net.Div(monthIncome).Round(4)
		}

		summaries = append(summaries, &models.MonthlySummary{
			Month:       month,
			Income:      monthIncome,
			Expenses:    monthExpenses,
			Net:         net,
			SavingsRate: savingsRate,
		})
	}

	logger.GetGlobalLogger().WithComponent("analytics").WithFields(logger.Fields{
		"transactions": len(transactions),
		"months":       len(summaries),
	}).Debug("Computed monthly summaries")

	return summaries
}

// CategorySpendingByMonth totals expense transactions per month and
// category. Only negative amounts contribute; totals are stored as
// absolute values rounded to cents. Income never appears because positive
// amounts are excluded before category lookup.
func CategorySpendingByMonth(transactions []*models.Transaction) map[string]map[string]decimal.Decimal {
	raw := make(map[string]map[string]decimal.Decimal)

	for _, tx := range transactions {
		if tx.Amount.Sign() >= 0 {
			continue
		}
		month := tx.Month()
		if raw[month] == nil {
			raw[month] = make(map[string]decimal.Decimal)
		}
		raw[month][tx.Category] = raw[month][tx.Category].Add(tx.Amount.Abs())
	}

	for _, categories := range raw {
		for category, spend := range categories {
			categories[category] = spend.Round(2)
		}
	}

	return raw
}

// SortedMonths returns the month keys in ascending order.
func SortedMonths(byMonth map[string]map[string]decimal.Decimal) []string {
	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)
	return months
}

// SortedCategories returns the category keys of one month in ascending
// order.
func SortedCategories(categories map[string]decimal.Decimal) []string {
	names := make([]string, 0, len(categories))
	for category := range categories {
		names = append(names, category)
	}
	sort.Strings(names)
	return names
}

func monthUnion(income, expenses map[string]decimal.Decimal) []string {
	seen := make(map[string]struct{})
	for month := range income {
		seen[month] = struct{}{}
	}
	for month := range expenses {
		seen[month] = struct{}{}
	}

	months := make([]string, 0, len(seen))
	for month := range seen {
		months = append(months, month)
	}
	sort.Strings(months)
	return months
}
