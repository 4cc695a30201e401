package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"html2maud/pkg/converter"
)

// errWarningsFound makes check exit non-zero after printing its report
var errWarningsFound = errors.New("conversion warnings found")

func checkCmd(global *globalOptions) *cobra.Command {
	opts := &convertOptions{globalOptions: global}

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Report lossy conversions without writing output",
		Long: `Check converts the input and lists what the conversion drops or guesses:
ids beyond the first, head content left out of body-only output, and
attributed <html>/<head>/<body> tags that auto mode does not detect.
It exits with status 1 when any warning is found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.takeInputArg(args); err != nil {
				return err
			}

			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}

			name, src, err := readInput(cmd, opts.inputFile)
			if err != nil {
				return err
			}

			warnings, err := converter.New(cfg).Validate(src)
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(warnings) == 0 {
				if !opts.quiet {
					fmt.Fprintf(out, "✓ %s: No conversion warnings\n", name)
				}
				return nil
			}

			fmt.Fprintf(out, "✗ %s: Found %d conversion warnings:\n", name, len(warnings))
			for _, warning := range warnings {
				fmt.Fprintf(out, "  %s\n", warning)
			}
			return errWarningsFound
		},
	}

	addInputFlag(cmd, opts)
	addFormatFlags(cmd, opts)

	return cmd
}
