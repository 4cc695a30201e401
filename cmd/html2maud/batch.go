package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"html2maud/pkg/converter"
)

// batchSummary accumulates results across files
type batchSummary struct {
	mu       sync.Mutex
	files    int
	failed   int
	stats    converter.ProcessingStats
	warnings int
}

func (s *batchSummary) add(result *converter.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files++
	s.stats.ElementsProcessed += result.Stats.ElementsProcessed
	s.stats.TextLines += result.Stats.TextLines
	s.stats.CommentsDropped += result.Stats.CommentsDropped
	s.stats.ProcessingTimeMs += result.Stats.ProcessingTimeMs
	s.warnings += len(result.Warnings)
}

func (s *batchSummary) fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed++
}

// runBatch converts every HTML file below --input-dir into a .rs file at
// the same relative path below --output-dir. Per-file failures are logged
// and skipped.
func runBatch(cmd *cobra.Command, engine *converter.Converter, opts *convertOptions) error {
	htmlFiles, err := findHTMLFiles(opts.inputDir)
	if err != nil {
		return fmt.Errorf("failed to find HTML files: %w", err)
	}
	if len(htmlFiles) == 0 {
		return fmt.Errorf("no HTML files found in directory: %s", opts.inputDir)
	}

	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	summary := &batchSummary{}
	var g errgroup.Group
	g.SetLimit(opts.jobs)

	for i, inputPath := range htmlFiles {
		i, inputPath := i, inputPath
		g.Go(func() error {
			slog.Debug("converting file", "index", i+1, "total", len(htmlFiles), "path", inputPath)

			result, err := convertFile(engine, opts, inputPath)
			if err != nil {
				slog.Warn("skipping file", "path", inputPath, "error", err)
				summary.fail()
				return nil
			}
			summary.add(result)

			if opts.showWarnings && !opts.quiet {
				for _, warning := range result.Warnings {
					slog.Warn("conversion warning", "path", inputPath, "kind", warning.Kind, "element", warning.Element, "message", warning.Message)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	if (opts.stats || opts.verbose) && !opts.quiet {
		w := cmd.ErrOrStderr()
		fmt.Fprintf(w, "\nBatch Conversion Summary:\n")
		fmt.Fprintf(w, "Files converted: %d\n", summary.files)
		fmt.Fprintf(w, "Files failed: %d\n", summary.failed)
		fmt.Fprintf(w, "Elements processed: %d\n", summary.stats.ElementsProcessed)
		fmt.Fprintf(w, "Text lines: %d\n", summary.stats.TextLines)
		fmt.Fprintf(w, "Comments dropped: %d\n", summary.stats.CommentsDropped)
		fmt.Fprintf(w, "Total processing time: %dms\n", summary.stats.ProcessingTimeMs)
		if summary.warnings > 0 {
			fmt.Fprintf(w, "Total warnings: %d\n", summary.warnings)
		}
	}

	if summary.files == 0 {
		return fmt.Errorf("all %d files failed to convert", summary.failed)
	}
	return nil
}

// convertFile converts inputPath and writes the result below the output dir
func convertFile(engine *converter.Converter, opts *convertOptions, inputPath string) (*converter.Result, error) {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	result, err := convertOne(engine, string(content), opts.selector)
	if err != nil {
		return nil, err
	}

	outputPath, err := batchOutputPath(opts.inputDir, opts.outputDir, inputPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", filepath.Dir(outputPath), err)
	}
	if err := writeOutput(nil, result.Output, outputPath); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	return result, nil
}

// batchOutputPath maps in/dir/a/b.html to out/dir/a/b.rs
func batchOutputPath(inputDir, outputDir, inputPath string) (string, error) {
	relPath, err := filepath.Rel(inputDir, inputPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", inputPath, err)
	}
	relPath = strings.TrimSuffix(relPath, filepath.Ext(relPath)) + ".rs"
	return filepath.Join(outputDir, relPath), nil
}

// findHTMLFiles finds all HTML files in a directory
func findHTMLFiles(dir string) ([]string, error) {
	var htmlFiles []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			ext := strings.ToLower(filepath.Ext(path))
			if ext == ".html" || ext == ".htm" {
				htmlFiles = append(htmlFiles, path)
			}
		}

		return nil
	})

	return htmlFiles, err
}
