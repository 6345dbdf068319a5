package cmd

import (
	"context"
	"fmt"

	"karmaconf/internal/app"
	"karmaconf/internal/config"

	"github.com/spf13/cobra"
)

// envFlags are the inputs shared by generate and run.
type envFlags struct {
	coverage bool
	platform string
	project  string
	envFile  string
	output   string
	write    string
}

func (f *envFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.coverage, "coverage", false, "Enable the code-coverage reporter")
	cmd.Flags().StringVar(&f.platform, "platform", "", "Host platform identifier such as linux, darwin or win32 (default: this host)")
	cmd.Flags().StringVar(&f.project, "project", "", "Project manifest read for Sauce Labs build labels (default: package.json)")
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "Dotenv file layered under the process environment (default: .env if present)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output format (json, yaml, table)")
}

// appConfig copies the flags into an application configuration.
func (f *envFlags) appConfig(cmd *cobra.Command, mode app.Mode, args []string) *app.Config {
	cfg := app.NewConfig(mode, debug, configPath)
	cfg.Coverage = f.coverage
	cfg.Platform = f.platform
	cfg.ProjectManifest = f.project
	cfg.EnvFile = f.envFile
	cfg.Output = config.OutputFormat(f.output)
	cfg.WriteFile = f.write
	cfg.Args = args
	cfg.Stdout = cmd.OutOrStdout()
	cfg.Stderr = cmd.ErrOrStderr()
	return cfg
}

func runApplication(cmd *cobra.Command, cfg *app.Config) error {
	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run(commandContext(cmd))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newGenerateCmd() *cobra.Command {
	var (
		flags   envFlags
		copyOut bool
		summary bool
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "generate [flags] [-- ARGS...]",
		Short: "Print the Karma configuration for the current environment",
		Long: `Builds the Karma run configuration and prints it to stdout after a
"Karma Config:" line.

Arguments after -- are treated as the test-runner arguments; --coverage among
them enables the coverage reporter just like the --coverage flag does.

When CI=true and KARMA is not "true" a warning is logged and nothing is printed.`,
		Example: `  karmaconf generate
  karmaconf generate --coverage --write karma.generated.json
  CI=true KARMA=true SAUCE=true karmaconf generate -o table --summary
  karmaconf generate --watch --write karma.generated.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.appConfig(cmd, app.ModeGenerate, args)
			cfg.Copy = copyOut
			cfg.Summary = summary
			if watch {
				return app.Watch(commandContext(cmd), cfg)
			}
			return runApplication(cmd, cfg)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.write, "write", "w", "", "Also write the configuration document to this file")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the configuration document to the clipboard")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a per-stage summary to stderr")
	cmd.Flags().BoolVar(&watch, "watch", false, "Regenerate whenever the configuration, manifest or env file changes")

	return cmd
}

func init() {
	rootCmd.AddCommand(newGenerateCmd())
}
