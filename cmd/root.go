// Package cmd provides the command-line interface for djade.
//
// The formatter is deliberately configuration-free: there are no config
// files and no environment variables. Flags are the only input surface, and
// viper serves purely as the flag-value registry.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	djerrors "github.com/djade-fmt/djade/internal/errors"
	"github.com/djade-fmt/djade/internal/logging"
	"github.com/djade-fmt/djade/internal/runner"
	"github.com/djade-fmt/djade/internal/target"
)

var (
	targetVersionFlag string
	checkFlag         bool
)

// rootCmd represents the base command: format the given template files.
var rootCmd = &cobra.Command{
	Use:   "djade [flags] <template>...",
	Short: "A Django template formatter",
	Long: `Djade is an opinionated, configuration-free formatter for Django template
files. It rewrites templates in place to a canonical whitespace and token
style, and optionally migrates deprecated template syntax to its modern form.

Pass "-" as a filename to read from stdin and write the result to stdout.
Directories are not recursed into; list the files to format explicitly.

Valid --target-version values: ` + target.KnownList() + `

Examples:
  djade templates/base.html                  Reformat one file in place
  djade --check templates/*.html             Report files needing a rewrite
  djade --target-version 5.1 page.html       Also apply syntax migrations
  cat page.html | djade -                    Format stdin to stdout`,
	Args:          cobra.MinimumNArgs(1),
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitCodeError carries a non-zero exit code out of a completed run whose
// per-file reporting already happened.
type exitCodeError struct {
	code int
}

// Error implements the error interface.
func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// Execute runs the root command and returns the process exit code: 0 on a
// clean run, 1 when check mode found files to rewrite, 2 on usage, I/O, or
// parse errors.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return runner.ExitOK
	}
	var exit *exitCodeError
	if errors.As(err, &exit) {
		return exit.code
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return runner.ExitError
}

func init() {
	rootCmd.PersistentFlags().StringVar(&targetVersionFlag, "target-version", "",
		"Django version to target for syntax migrations ("+target.KnownList()+")")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.Flags().BoolVar(&checkFlag, "check", false,
		"Report files that would be reformatted without writing them")
}

func runRoot(cmd *cobra.Command, args []string) error {
	tv, err := parseTargetVersion()
	if err != nil {
		return err
	}

	r := runner.New(runner.Options{
		Target: tv,
		Check:  checkFlag,
	}, newLogger())

	_, code := r.Run(cmd.Context(), args)
	if code != runner.ExitOK {
		return &exitCodeError{code: code}
	}
	return nil
}

// parseTargetVersion validates the --target-version flag; an empty flag
// disables all version-gated fixers.
func parseTargetVersion() (target.Version, error) {
	if targetVersionFlag == "" {
		return target.None, nil
	}
	tv, err := target.Parse(targetVersionFlag)
	if err != nil {
		return target.None, djerrors.NewUsageError("%v", err)
	}
	return tv, nil
}

// newLogger builds the diagnostic logger from the --log-level flag.
func newLogger() logging.Logger {
	return logging.NewLogger(&logging.Config{
		Level:  logging.ParseLevel(viper.GetString("log-level")),
		Output: os.Stderr,
	})
}
