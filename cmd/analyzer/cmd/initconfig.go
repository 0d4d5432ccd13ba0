package cmd

import (
	"fmt"

	"finance-analyzer/cmd/analyzer/config"

	"github.com/spf13/cobra"
)

var initConfigOutput string

// initConfigCmd represents the init-config command
var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Create starter JSON config file",
	Long: `Init-config writes a starter configuration file with the default
budget limits and categorization rules. Edit it and pass it to analyze
with --budget-config.

Example:
  finance-analyzer init-config --output finance_config.json`,

	RunE: runInitConfig,
}

func init() {
	rootCmd.AddCommand(initConfigCmd)

	initConfigCmd.Flags().StringVarP(&initConfigOutput, "output", "o", "finance_config.json", "path for the generated config file")
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	if err := config.WriteDefault(initConfigOutput); err != nil {
		return err
	}

	fmt.Printf("Created config file: %s\n", initConfigOutput)
	return nil
}
