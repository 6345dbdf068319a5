package cmd

import (
	"karmaconf/internal/cli"
	"karmaconf/internal/config"
	"karmaconf/pkg/logging"

	"github.com/spf13/cobra"
)

var launchersOutputFormat string

// launchersCmd lists the remote launchers used when Sauce Labs is active
var launchersCmd = &cobra.Command{
	Use:   "launchers",
	Short: "List the Sauce Labs remote launchers",
	Long: `List the remote launcher table from the layered configuration.

These are the browsers a run uses when SAUCE=true and both Sauce Labs
credentials are set.`,
	Args: cobra.NoArgs,
	RunE: runLaunchers,
}

func runLaunchers(cmd *cobra.Command, args []string) error {
	logging.InitForCLI(cliLogLevel(), cmd.ErrOrStderr())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return cli.WriteLaunchers(cmd.OutOrStdout(), cfg.Karma.SauceLabs.Launchers, config.OutputFormat(launchersOutputFormat))
}

func cliLogLevel() logging.LogLevel {
	if debug {
		return logging.LevelDebug
	}
	return logging.LevelInfo
}

func init() {
	rootCmd.AddCommand(launchersCmd)

	launchersCmd.Flags().StringVarP(&launchersOutputFormat, "output", "o", "table", "Output format (table, json, yaml)")
}
