package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category labels with fixed meaning across the pipeline.
const (
	// CategoryUncategorized is the sentinel assigned at parse time, before
	// the categorizer runs.
	CategoryUncategorized = "Uncategorized"
	// CategoryIncome is assigned to every positive-amount transaction.
	CategoryIncome = "Income"
	// CategoryOther is the fallback when no keyword rule matches.
	CategoryOther = "Other"
)

// Transaction represents one normalized financial event. Amount is signed:
// positive is an inflow (income/credit), negative an outflow (expense/debit),
// always rounded to 2 decimal places. Category is the only field mutated
// after construction, and only by the categorizer.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
}

// NewTransaction creates a normalized Transaction. The amount is rounded to
// 2 decimal places here; every downstream computation consumes the rounded
// value.
func NewTransaction(date time.Time, description string, amount decimal.Decimal) *Transaction {
	return &Transaction{
		Date:        date,
		Description: strings.TrimSpace(description),
		Amount:      amount.Round(2),
		Category:    CategoryUncategorized,
	}
}

// Month returns the calendar-month bucket key in YYYY-MM format.
func (t *Transaction) Month() string {
	return t.Date.Format("2006-01")
}

// Validate performs basic validation on the Transaction
func (t *Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("transaction date cannot be zero")
	}
	return nil
}

// String returns a string representation of the Transaction
func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction{Date: %s, Description: %s, Amount: %s, Category: %s}",
		t.Date.Format("2006-01-02"), t.Description, t.Amount.StringFixed(2), t.Category)
}

// MonthlySummary is one aggregate per calendar month. Income and Expenses
// are non-negative 2-decimal sums, Net = Income - Expenses, SavingsRate =
// Net/Income (4 decimal places) or zero when there is no income.
type MonthlySummary struct {
	Month       string          `json:"month"`
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	Net         decimal.Decimal `json:"net"`
	SavingsRate decimal.Decimal `json:"savings_rate"`
}

// String returns a string representation of the MonthlySummary
func (s MonthlySummary) String() string {
	return fmt.Sprintf("MonthlySummary{Month: %s, Income: %s, Expenses: %s, Net: %s, SavingsRate: %s}",
		s.Month, s.Income.StringFixed(2), s.Expenses.StringFixed(2),
		s.Net.StringFixed(2), s.SavingsRate.StringFixed(4))
}

// Date formats tried in priority order. First successful parse wins; trial
// order is fixed so ambiguous values are never reinterpreted between runs.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"01/02/06",
}

// ParseDate parses a calendar date trying ISO, US slash with 4-digit year,
// then US slash with 2-digit year. Anything else is an error; there is no
// fuzzy date inference.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date string cannot be empty")
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported date format: %s", s)
}

// ParseAmount parses a monetary value from a raw CSV field. Thousands
// separators and currency symbols are stripped, a parenthesized value is
// negative (accounting convention), and an empty value is exactly zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return decimal.Zero, nil
	}

	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.TrimSpace(cleaned)

	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		cleaned = "-" + cleaned[1:len(cleaned)-1]
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount format '%s': %w", s, err)
	}

	return d, nil
}
