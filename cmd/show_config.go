package cmd

import (
	"fmt"

	"github.com/ethpandaops/robots-tester/internal/actions"
	"github.com/spf13/cobra"
)

var showConfigCmd = &cobra.Command{
	Use:   "show-config",
	Short: "Display the resolved configuration",
	Long:  `Shows the configuration after merging the environment, .env file, YAML config file and flags.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}

		if err := actions.ShowConfig(cmd.OutOrStdout(), cfg); err != nil {
			return fmt.Errorf("failed to show config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showConfigCmd)
}
