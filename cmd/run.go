package cmd

import (
	"karmaconf/internal/app"
	"karmaconf/internal/runner"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var flags envFlags

	cmd := &cobra.Command{
		Use:   "run [flags] -- COMMAND [ARGS...]",
		Short: "Write the Karma configuration and start the test runner",
		Long: `Builds the Karma run configuration, writes it to a file and runs COMMAND
with ` + runner.ConfigEnvVar + ` set to the file's absolute path.

The coverage token is detected among the runner arguments, so
"karmaconf run -- karma start --coverage" enables coverage. The exit status of
COMMAND becomes the exit status of karmaconf.

When CI=true and KARMA is not "true" a warning is logged, COMMAND is not
started and karmaconf exits 0.`,
		Example: `  karmaconf run -- npx karma start karma.conf.js --single-run
  karmaconf run --write /tmp/karma.json -- npx karma start --coverage`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApplication(cmd, flags.appConfig(cmd, app.ModeRun, args))
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.write, "write", "w", "", "Configuration file handed to the runner (default: karma.generated.json)")
	// Flags after COMMAND belong to the runner.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func init() {
	rootCmd.AddCommand(newRunCmd())
}
