package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"karmaconf/internal/config"
	"karmaconf/internal/runner"

	"github.com/spf13/cobra"
)

// configPath replaces the user and project configuration layers with a single directory.
var configPath string

// debug enables verbose logging on stderr.
var debug bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "karmaconf",
	Short: "Build the Karma test-runner configuration for the current environment",
	Long: `karmaconf builds the configuration for a Karma browser test run from the
CI environment, the command-line arguments and the host platform.

Local runs get the browsers of the host platform. On CI the run only happens
when KARMA=true, and SAUCE=true with credentials redirects it to Sauce Labs.
Passing --coverage enables the code-coverage reporter.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. a missing env file or a failing runner)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set up version template
	rootCmd.SetVersionTemplate(`{{printf "karmaconf version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	os.Exit(exitCode(err))
}

// exitCode maps a command error to the process exit status. A failing
// runner keeps its own status; cobra has already printed anything else.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}

// loadConfig applies --config the same way the application bootstrap does.
func loadConfig() (config.KarmaconfConfig, error) {
	var (
		cfg config.KarmaconfConfig
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadConfigFromPath(configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return config.KarmaconfConfig{}, fmt.Errorf("failed to load karmaconf configuration: %w", err)
	}
	return cfg, nil
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration directory (replaces ~/.config/karmaconf and ./.karmaconf)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}
