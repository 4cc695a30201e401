package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"html2maud/internal/config"
	"html2maud/pkg/converter"
)

type convertOptions struct {
	*globalOptions

	// Input/Output
	inputFile  string
	outputFile string
	inputDir   string
	outputDir  string
	jobs       int

	// Formatting
	configFile string
	render     string
	idStyle    string
	classStyle string
	selector   string

	// Reporting
	stats        bool
	showWarnings bool
}

func convertCmd(global *globalOptions) *cobra.Command {
	opts := &convertOptions{globalOptions: global}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert HTML to maud markup",
		Long: `Convert reads HTML from a file, a directory of files or stdin and writes
maud markup. Without --render the output wraps the whole document only
when the input contains a literal <html>, <head> or <body> tag.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.takeInputArg(args); err != nil {
				return err
			}
			if err := opts.validate(); err != nil {
				return err
			}

			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			engine := converter.New(cfg, converter.WithLogger(slog.Default()))

			if opts.inputDir != "" {
				return runBatch(cmd, engine, opts)
			}
			return runSingle(cmd, engine, opts)
		},
	}

	flags := cmd.Flags()
	addInputFlag(cmd, opts)
	flags.StringVarP(&opts.outputFile, "output", "o", "", "Output file path (default: stdout)")
	flags.StringVar(&opts.inputDir, "input-dir", "", "Convert all HTML files in directory")
	flags.StringVar(&opts.outputDir, "output-dir", "", "Output directory for batch conversion")
	flags.IntVarP(&opts.jobs, "jobs", "j", runtime.NumCPU(), "Number of files converted concurrently in batch mode")
	addFormatFlags(cmd, opts)
	flags.StringVar(&opts.selector, "select", "", "Convert only elements matching this CSS selector")
	flags.BoolVar(&opts.stats, "stats", false, "Show processing statistics on stderr")
	flags.BoolVar(&opts.showWarnings, "warnings", true, "Show conversion warnings on stderr")

	return cmd
}

// addInputFlag registers --input, the flag form of the [file] argument
func addInputFlag(cmd *cobra.Command, opts *convertOptions) {
	cmd.Flags().StringVarP(&opts.inputFile, "input", "i", "", "Input HTML file path (default: stdin)")
}

// takeInputArg moves a positional file argument into inputFile
func (o *convertOptions) takeInputArg(args []string) error {
	if len(args) == 0 {
		return nil
	}
	if o.inputFile != "" {
		return fmt.Errorf("cannot specify both a file argument and --input")
	}
	o.inputFile = args[0]
	return nil
}

// addFormatFlags registers the flags that map onto config.Config
func addFormatFlags(cmd *cobra.Command, opts *convertOptions) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML settings file (default: "+defaultConfigPath()+")")
	flags.StringVar(&opts.render, "render", "", "Document wrapper ("+strings.Join(config.RenderValues(), ", ")+")")
	flags.StringVar(&opts.idStyle, "id-style", "", "Id formatting ("+strings.Join(config.StyleValues(), ", ")+")")
	flags.StringVar(&opts.classStyle, "class-style", "", "Class formatting ("+strings.Join(config.StyleValues(), ", ")+")")
}

func (o *convertOptions) validate() error {
	if o.inputFile != "" && o.inputDir != "" {
		return fmt.Errorf("cannot specify both --input and --input-dir")
	}
	if o.inputDir != "" && o.outputDir == "" {
		return fmt.Errorf("--output-dir required when using --input-dir")
	}
	if o.outputDir != "" && o.inputDir == "" {
		return fmt.Errorf("--output-dir requires --input-dir")
	}
	if o.jobs < 1 {
		return fmt.Errorf("--jobs must be at least 1, got %d", o.jobs)
	}
	return nil
}

// resolveConfig loads the settings file and applies explicitly set flags on
// top. Unrecognized values fall back to the per-field defaults.
func resolveConfig(cmd *cobra.Command, opts *convertOptions) (config.Config, error) {
	path := opts.configFile
	if path == "" {
		path = defaultConfigPath()
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("render") {
		cfg.Render = config.ParseRender(opts.render)
	}
	if flags.Changed("id-style") {
		cfg.IDStyle = config.ParseIDStyle(opts.idStyle)
	}
	if flags.Changed("class-style") {
		cfg.ClassStyle = config.ParseClassStyle(opts.classStyle)
	}

	slog.Debug("resolved configuration",
		"file", path,
		"render", cfg.Render,
		"id_style", cfg.IDStyle,
		"class_style", cfg.ClassStyle,
	)
	return cfg, nil
}

// convertOne runs the configured conversion on src
func convertOne(engine *converter.Converter, src, selector string) (*converter.Result, error) {
	if selector != "" {
		return engine.ConvertSelection(src, selector)
	}
	return engine.Convert(src)
}

// runSingle converts one file or stdin
func runSingle(cmd *cobra.Command, engine *converter.Converter, opts *convertOptions) error {
	name, src, err := readInput(cmd, opts.inputFile)
	if err != nil {
		return err
	}

	result, err := convertOne(engine, src, opts.selector)
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", name, err)
	}

	if err := writeOutput(cmd.OutOrStdout(), result.Output, opts.outputFile); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	stderr := cmd.ErrOrStderr()
	if (opts.stats || opts.verbose) && !opts.quiet {
		showProcessingStats(stderr, result, name)
	}
	if opts.showWarnings && !opts.quiet {
		showWarnings(stderr, result.Warnings)
	}

	return nil
}

// readInput reads the named file, or stdin when path is empty
func readInput(cmd *cobra.Command, path string) (string, string, error) {
	if path == "" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "<stdin>", "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return "<stdin>", string(content), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return path, "", fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	return path, string(content), nil
}

// writeOutput writes content plus a trailing newline to a file, or to
// stdout when filename is empty
func writeOutput(stdout io.Writer, content, filename string) error {
	if filename == "" {
		_, err := fmt.Fprintln(stdout, content)
		return err
	}
	return os.WriteFile(filename, []byte(content+"\n"), 0644)
}

// showProcessingStats displays processing statistics
func showProcessingStats(w io.Writer, result *converter.Result, name string) {
	fmt.Fprintf(w, "\nProcessing Statistics for %s:\n", name)
	fmt.Fprintf(w, "  Render mode: %s\n", result.Render)
	fmt.Fprintf(w, "  Elements processed: %d\n", result.Stats.ElementsProcessed)
	fmt.Fprintf(w, "  Void elements: %d\n", result.Stats.VoidElements)
	fmt.Fprintf(w, "  Text lines: %d\n", result.Stats.TextLines)
	fmt.Fprintf(w, "  Comments dropped: %d\n", result.Stats.CommentsDropped)
	fmt.Fprintf(w, "  Head lines: %d\n", result.Stats.HeadLines)
	fmt.Fprintf(w, "  Body lines: %d\n", result.Stats.BodyLines)
	fmt.Fprintf(w, "  Processing time: %dms\n", result.Stats.ProcessingTimeMs)
}

// showWarnings displays conversion warnings
func showWarnings(w io.Writer, warnings []converter.Warning) {
	if len(warnings) == 0 {
		return
	}

	fmt.Fprintf(w, "\nConversion Warnings:\n")
	for _, warning := range warnings {
		fmt.Fprintf(w, "  %s\n", warning)
	}
}
