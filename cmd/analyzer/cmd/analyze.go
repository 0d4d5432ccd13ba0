package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"finance-analyzer/cmd/analyzer/config"
	"finance-analyzer/internal/analytics"
	"finance-analyzer/internal/budget"
	"finance-analyzer/internal/categorize"
	"finance-analyzer/internal/models"
	"finance-analyzer/internal/parsers"
	"finance-analyzer/internal/reporter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flags for the analyze command
var (
	inputFile    string
	outputDir    string
	budgetConfig string
	showProgress bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run full analysis from input CSV",
	Long: `Analyze parses a bank transaction CSV, assigns spending categories,
aggregates by month, checks budget limits, and writes all report
artifacts to the output directory.

Examples:
  # Analyze with built-in rules and no budget limits
  finance-analyzer analyze --input statement.csv

  # Custom output directory and budget configuration
  finance-analyzer analyze --input statement.csv \
    --output-dir reports/january --budget-config finance_config.json

  # With progress indicators
  finance-analyzer analyze --input statement.csv --progress`,

	PreRunE: validateAnalyzeFlags,
	RunE:    runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Required flags
	analyzeCmd.Flags().StringVarP(&inputFile, "input", "i", "", "path to bank CSV file (required)")

	// Output flags
	analyzeCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "reports", "directory for generated reports")
	analyzeCmd.Flags().StringVarP(&budgetConfig, "budget-config", "b", "", "JSON config with budget limits and category rules")

	// UI flags
	analyzeCmd.Flags().BoolVar(&showProgress, "progress", false, "show progress indicators")

	// Mark required flags
	analyzeCmd.MarkFlagRequired("input")

	// Bind flags to viper
	viper.BindPFlag("input", analyzeCmd.Flags().Lookup("input"))
	viper.BindPFlag("output-dir", analyzeCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("budget-config", analyzeCmd.Flags().Lookup("budget-config"))
	viper.BindPFlag("progress", analyzeCmd.Flags().Lookup("progress"))
}

func validateAnalyzeFlags(cmd *cobra.Command, args []string) error {
	// Get values from viper (allows override from config file)
	inputFile = viper.GetString("input")
	outputDir = viper.GetString("output-dir")
	budgetConfig = viper.GetString("budget-config")
	showProgress = viper.GetBool("progress")

	if inputFile == "" {
		return fmt.Errorf("input is required")
	}
	if err := validateFileExists(inputFile, "input CSV file"); err != nil {
		return err
	}

	if budgetConfig != "" {
		if err := validateFileExists(budgetConfig, "budget config file"); err != nil {
			return err
		}
	}

	if outputDir == "" {
		return fmt.Errorf("output-dir cannot be empty")
	}

	return nil
}

func validateFileExists(filePath, description string) error {
	if filePath == "" {
		return fmt.Errorf("%s path cannot be empty", description)
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist: %s", description, filePath)
	}
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", description, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file: %s", description, filePath)
	}

	// Check if file is readable
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("%s is not readable: %w", description, err)
	}
	file.Close()

	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Starting analysis...\n")
		fmt.Fprintf(os.Stderr, "Input file: %s\n", inputFile)
		fmt.Fprintf(os.Stderr, "Output directory: %s\n", outputDir)
		if budgetConfig != "" {
			fmt.Fprintf(os.Stderr, "Budget config: %s\n", budgetConfig)
		}
	}

	budgetCfg, rules, err := config.Load(budgetConfig)
	if err != nil {
		return err
	}

	parseConfig := parsers.DefaultParseConfig()
	parser := parsers.NewStatementParser(parseConfig)

	if showProgress {
		fmt.Fprintf(os.Stderr, "Parsing %s...\n", inputFile)
	}

	transactions, stats, err := parser.ParseStatement(inputFile)
	if err != nil {
		return err
	}

	categorize.New(rules).Apply(transactions)

	summaries := analytics.MonthlySummaries(transactions)
	categoriesByMonth := analytics.CategorySpendingByMonth(transactions)
	alerts := budget.GenerateAlerts(summaries, categoriesByMonth, budgetCfg)

	gen, err := reporter.NewGenerator(outputDir)
	if err != nil {
		return err
	}

	if showProgress {
		fmt.Fprintf(os.Stderr, "Writing reports to %s...\n", outputDir)
	}

	if err := gen.WriteTransactionsCSV(transactions); err != nil {
		return err
	}
	if err := gen.WriteMonthlySummaryCSV(summaries); err != nil {
		return err
	}
	if err := gen.WriteCategorySummaryCSV(categoriesByMonth); err != nil {
		return err
	}

	series := make([]reporter.MonthPoint, 0, len(summaries))
	for _, summary := range summaries {
		series = append(series, reporter.MonthPoint{Month: summary.Month, Expenses: summary.Expenses})
	}
	if err := gen.WriteSpendingTrendSVG(series); err != nil {
		return err
	}

	if err := gen.WriteCategoryBarSVG(latestCategorySpending(summaries, categoriesByMonth), "Latest Month Category Spending"); err != nil {
		return err
	}

	if err := gen.WriteAlerts(alerts); err != nil {
		return err
	}
	if err := gen.WriteMarkdownReport(summaries, alerts); err != nil {
		return err
	}

	absDir, err := filepath.Abs(gen.OutputDir())
	if err != nil {
		absDir = gen.OutputDir()
	}

	fmt.Printf("Analyzed %d transactions\n", stats.RecordsParsed)
	fmt.Printf("Generated reports in: %s\n", absDir)
	if len(summaries) > 0 {
		latest := summaries[len(summaries)-1]
		fmt.Printf("Latest month %s: expenses=$%s, net=$%s, savings_rate=%s\n",
			latest.Month,
			latest.Expenses.StringFixed(2),
			latest.Net.StringFixed(2),
			budget.FormatRate(latest.SavingsRate),
		)
	}
	for _, alert := range alerts {
		fmt.Println(alert)
	}

	return nil
}

// latestCategorySpending returns the category totals of the most recent
// month, or nil when there are no summaries.
func latestCategorySpending(
	summaries []*models.MonthlySummary,
	categoriesByMonth map[string]map[string]decimal.Decimal,
) map[string]decimal.Decimal {
	if len(summaries) == 0 {
		return nil
	}
	return categoriesByMonth[summaries[len(summaries)-1].Month]
}
