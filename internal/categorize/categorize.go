// Package categorize assigns spending categories to transactions by
// matching keyword rules against descriptions. Rule order is priority
// order: the first rule whose keyword appears in the description wins,
// so rule sets are held as ordered slices rather than maps.
package categorize

import (
	"strings"

	"finance-analyzer/internal/models"
	"finance-analyzer/pkg/logger"

	"github.com/shopspring/decimal"
)

// Rule maps a category to the keywords that select it. Keywords are
// matched as case-insensitive substrings of the transaction description.
type Rule struct {
	Category string
	Keywords []string
}

// RuleSet is an ordered list of categorization rules. Earlier rules take
// priority over later ones when multiple keywords match.
type RuleSet []Rule

// DefaultRules returns the built-in rule set used when no custom rules
// are configured.
func DefaultRules() RuleSet {
	return RuleSet{
		{Category: "Housing", Keywords: []string{"rent", "mortgage", "apartment"}},
		{Category: "Groceries", Keywords: []string{"grocery", "market", "whole foods", "trader joe", "aldi", "kroger"}},
		{Category: "Dining", Keywords: []string{"restaurant", "coffee", "cafe", "uber eats", "doordash", "grubhub"}},
		{Category: "Transport", Keywords: []string{"uber", "lyft", "gas", "shell", "chevron", "transit", "metro"}},
		{Category: "Utilities", Keywords: []string{"electric", "water", "internet", "verizon", "att", "t-mobile"}},
		{Category: "Entertainment", Keywords: []string{"netflix", "spotify", "hulu", "movie", "steam"}},
		{Category: "Healthcare", Keywords: []string{"pharmacy", "clinic", "hospital", "medical", "dental"}},
		{Category: models.CategoryIncome, Keywords: []string{"payroll", "salary", "direct deposit", "bonus", "refund"}},
	}
}

// Categorizer applies a rule set to transactions.
type Categorizer struct {
	rules  RuleSet
	logger logger.Logger
}

// New creates a Categorizer over a copy of the given rules. A nil or
// empty rule set falls back to DefaultRules.
func New(rules RuleSet) *Categorizer {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	copied := make(RuleSet, len(rules))
	copy(copied, rules)

	return &Categorizer{
		rules:  copied,
		logger: logger.GetGlobalLogger().WithComponent("categorizer"),
	}
}

// Categorize returns the category for a single transaction. Positive
// amounts are always income regardless of description; negative amounts
// are matched against the rules in order, and anything unmatched becomes
// "Other".
func (c *Categorizer) Categorize(description string, amount decimal.Decimal) string {
	lowered := strings.ToLower(description)

	if amount.IsPositive() {
		// Income keywords are consulted for parity with the rule set,
		// but a positive amount is income either way.
		for _, rule := range c.rules {
			if rule.Category != models.CategoryIncome {
				continue
			}
			for _, keyword := range rule.Keywords {
				if strings.Contains(lowered, keyword) {
					return models.CategoryIncome
				}
			}
		}
		return models.CategoryIncome
	}

	for _, rule := range c.rules {
		if rule.Category == models.CategoryIncome {
			continue
		}
		for _, keyword := range rule.Keywords {
			if strings.Contains(lowered, keyword) {
				return rule.Category
			}
		}
	}

	return models.CategoryOther
}

// Apply categorizes every transaction in place and returns the slice for
// chaining.
func (c *Categorizer) Apply(transactions []*models.Transaction) []*models.Transaction {
	counts := make(map[string]int)

	for _, tx := range transactions {
		tx.Category = c.Categorize(tx.Description, tx.Amount)
		counts[tx.Category]++
	}

	c.logger.WithFields(logger.Fields{
		"transactions":    len(transactions),
		"category_counts": counts,
	}).Debug("Categorization completed")

	return transactions
}
