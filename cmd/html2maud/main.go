package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalOptions are shared by every subcommand
type globalOptions struct {
	verbose bool
	quiet   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errWarningsFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "html2maud",
		Short: "Convert HTML into maud html! markup",
		Long: `html2maud converts HTML documents and fragments into source for the
maud html! macro. Each element becomes a block with its id, classes and
attributes; text becomes string literals.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.quiet && opts.verbose {
				return fmt.Errorf("cannot specify both --quiet and --verbose")
			}
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), opts))
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output with debug logging")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress all output except errors")

	rootCmd.AddCommand(
		convertCmd(opts),
		checkCmd(opts),
		configCmd(),
		versionCmd(),
	)

	return rootCmd
}

// newLogger writes text logs to w: warnings by default, debug with
// --verbose, errors only with --quiet
func newLogger(w io.Writer, opts *globalOptions) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case opts.verbose:
		level = slog.LevelDebug
	case opts.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
