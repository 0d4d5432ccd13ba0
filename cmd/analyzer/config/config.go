// Package config loads and writes the analyzer's JSON configuration:
// budget limits plus categorization rules.
package config

import (
	"bytes"
	"encoding/json"
	"os"

	"finance-analyzer/internal/budget"
	"finance-analyzer/internal/categorize"
	"finance-analyzer/pkg/errors"

	"github.com/shopspring/decimal"
)

// AppConfig is the on-disk configuration shape.
type AppConfig struct {
	MonthlySpendingLimit *decimal.Decimal      `json:"monthly_spending_limit"`
	CategoryLimits       budget.CategoryLimits `json:"category_limits"`
	CategoryRules        categorize.RuleSet    `json:"category_rules"`
}

// Default returns the starter configuration written by init-config.
func Default() *AppConfig {
	limit := decimal.NewFromInt(2500)
	return &AppConfig{
		MonthlySpendingLimit: &limit,
		CategoryLimits: budget.CategoryLimits{
			{Category: "Dining", Limit: decimal.NewFromInt(250)},
			{Category: "Groceries", Limit: decimal.NewFromInt(450)},
			{Category: "Transport", Limit: decimal.NewFromInt(200)},
			{Category: "Entertainment", Limit: decimal.NewFromInt(120)},
		},
		CategoryRules: categorize.DefaultRules(),
	}
}

// Validate rejects limits that can never be exceeded meaningfully.
func (c *AppConfig) Validate() error {
	if c.MonthlySpendingLimit != nil && c.MonthlySpendingLimit.IsNegative() {
		return errors.ConfigurationError(errors.CodeInvalidConfig, "monthly_spending_limit",
			c.MonthlySpendingLimit.String(), nil).
			WithSuggestion("Set monthly_spending_limit to a non-negative amount or omit it")
	}
	for _, limit := range c.CategoryLimits {
		if limit.Limit.IsNegative() {
			return errors.ConfigurationError(errors.CodeInvalidConfig, "category_limits",
				limit.Category, nil).
				WithSuggestion("Category limits must be non-negative amounts")
		}
	}
	return nil
}

// Load reads a configuration file and splits it into budget settings and
// categorization rules. An empty path means no budget limits and the
// built-in rules.
func Load(path string) (budget.Config, categorize.RuleSet, error) {
	if path == "" {
		return budget.Config{}, categorize.DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return budget.Config{}, nil, errors.FileError(errors.CodeFileNotFound, path, err).
				WithSuggestion("Run 'finance-analyzer init-config' to create a starter config")
		}
		return budget.Config{}, nil, errors.FileError(errors.CodeFilePermission, path, err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return budget.Config{}, nil, errors.ConfigurationError(errors.CodeInvalidConfig, "config_file", path, err).
			WithSuggestion("Check the JSON syntax of the configuration file")
	}
	if err := cfg.Validate(); err != nil {
		return budget.Config{}, nil, err
	}

	rules := cfg.CategoryRules
	if len(rules) == 0 {
		rules = categorize.DefaultRules()
	}

	return budget.Config{
		MonthlySpendingLimit: cfg.MonthlySpendingLimit,
		CategoryLimits:       cfg.CategoryLimits,
	}, rules, nil
}

// WriteDefault writes the starter configuration as indented JSON.
func WriteDefault(path string) error {
	data, err := json.Marshal(Default())
	if err != nil {
		return errors.Wrap(err, errors.CategoryConfiguration, errors.CodeInvalidConfig,
			"failed to encode default configuration")
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return errors.Wrap(err, errors.CategoryConfiguration, errors.CodeInvalidConfig,
			"failed to format default configuration")
	}
	out.WriteByte('\n')

	if err := os.WriteFile(path, out.Bytes(), 0644); err != nil {
		return errors.FileError(errors.CodeFilePermission, path, err).
			WithSuggestion("Check permissions on the target directory")
	}
	return nil
}

// MarshalJSON emits limits and rules as plain JSON numbers and preserves
// their configured order.
func (c *AppConfig) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"monthly_spending_limit":`)
	if c.MonthlySpendingLimit != nil {
		buf.WriteString(c.MonthlySpendingLimit.String())
	} else {
		buf.WriteString("null")
	}

	buf.WriteString(`,"category_limits":`)
	limits, err := c.CategoryLimits.MarshalJSON()
	if err != nil {
		return nil, err
	}
	buf.Write(limits)

	buf.WriteString(`,"category_rules":`)
	rules, err := c.CategoryRules.MarshalJSON()
	if err != nil {
		return nil, err
	}
	buf.Write(rules)

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
