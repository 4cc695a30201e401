package converter

import (
	"fmt"
	"log/slog"
	"time"

	"html2maud/internal/config"
	"html2maud/internal/html"
	"html2maud/internal/maud"
)

// Config re-exports the conversion options so callers outside this module
// can build one
type Config = config.Config

// Converter turns HTML into maud markup. It holds no per-call state and is
// safe for concurrent use.
type Converter struct {
	config config.Config
	parser *html.Parser
	logger *slog.Logger
}

// Option customizes a Converter
type Option func(*Converter)

// WithLogger sets the logger used for conversion diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithScripting controls how <noscript> content is parsed. Scripting is
// enabled by default, which keeps <noscript> content as text.
func WithScripting(enabled bool) Option {
	return func(c *Converter) {
		c.parser = html.NewParserWithScripting(enabled)
	}
}

// New creates a converter with the given configuration
func New(cfg config.Config, opts ...Option) *Converter {
	c := &Converter{
		config: cfg,
		parser: html.NewParser(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewWithDefaults creates a converter with config.Default()
func NewWithDefaults(opts ...Option) *Converter {
	return New(config.Default(), opts...)
}

// Config returns the converter's configuration
func (c *Converter) Config() config.Config {
	return c.config
}

// Result contains the output of a conversion
type Result struct {
	Output   string        // maud source
	Render   config.Render // render mode actually used, never RenderAuto
	Warnings []Warning     // lossy or surprising conversions
	Stats    ProcessingStats
}

// ProcessingStats describes what a conversion walked and produced
type ProcessingStats struct {
	ElementsProcessed int   // element nodes visited, including html/head/body
	VoidElements      int   // elements written without a block
	TextLines         int   // quoted text lines written
	CommentsDropped   int   // comment nodes skipped
	HeadLines         int   // lines collected for the head block
	BodyLines         int   // lines collected for the body block
	ProcessingTimeMs  int64 // parse plus format time in milliseconds
}

// Convert converts a complete HTML document
func (c *Converter) Convert(src string) (*Result, error) {
	start := time.Now()

	tree, err := c.parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc := maud.NewDoc(src)
	walker := maud.NewWalker(c.config, tree, doc)
	walker.Walk(0, tree.Root, maud.PlaceOther)

	render := maud.Resolve(c.config.Render, src)
	result := &Result{
		Output: doc.Render(c.config),
		Render: render,
	}
	result.Warnings = collectWarnings(src, doc, walker, c.config.Render, render)
	result.Stats = buildStats(doc, walker, start)

	c.logResult("converted document", result)
	return result, nil
}

// ConvertSelection converts only the elements matching a CSS selector.
// Each match is written as a top-level body block; the output always uses
// the body-only wrapper. A matched html, head or body element is nested like
// any other element.
func (c *Converter) ConvertSelection(src, selector string) (*Result, error) {
	start := time.Now()

	tree, err := c.parser.Select(src, selector)
	if err != nil {
		return nil, fmt.Errorf("failed to select %q: %w", selector, err)
	}

	cfg := c.config
	cfg.Render = config.RenderOnlyBody

	doc := maud.NewDoc(src)
	walker := maud.NewFragmentWalker(cfg, tree, doc)
	for _, match := range tree.Node(tree.Root).Children {
		walker.Walk(0, match, maud.PlaceBody)
	}

	result := &Result{
		Output: doc.Render(cfg),
		Render: config.RenderOnlyBody,
	}
	result.Warnings = collectWarnings(src, doc, walker, cfg.Render, config.RenderOnlyBody)
	result.Stats = buildStats(doc, walker, start)

	c.logResult("converted selection", result, "selector", selector, "matches", len(tree.Node(tree.Root).Children))
	return result, nil
}

// ConvertString is a convenience method that returns only the output
func (c *Converter) ConvertString(src string) (string, error) {
	result, err := c.Convert(src)
	if err != nil {
		return "", err
	}
	return result.Output, nil
}

// Validate converts src and returns only the warnings
func (c *Converter) Validate(src string) ([]Warning, error) {
	result, err := c.Convert(src)
	if err != nil {
		return nil, err
	}
	return result.Warnings, nil
}

func buildStats(doc *maud.Doc, walker *maud.Walker, start time.Time) ProcessingStats {
	return ProcessingStats{
		ElementsProcessed: walker.Stats.Elements,
		VoidElements:      walker.Stats.VoidElements,
		TextLines:         walker.Stats.TextLines,
		CommentsDropped:   walker.Stats.CommentsDropped,
		HeadLines:         len(doc.Head),
		BodyLines:         len(doc.Body),
		ProcessingTimeMs:  time.Since(start).Milliseconds(),
	}
}

func (c *Converter) logResult(msg string, result *Result, args ...any) {
	args = append(args,
		"render", result.Render,
		"elements", result.Stats.ElementsProcessed,
		"head_lines", result.Stats.HeadLines,
		"body_lines", result.Stats.BodyLines,
		"warnings", len(result.Warnings),
	)
	c.logger.Debug(msg, args...)
}

// Convert converts src with the given configuration
func Convert(src string, cfg config.Config) (string, error) {
	return New(cfg).ConvertString(src)
}

// ConvertWithDefaults converts src with config.Default()
func ConvertWithDefaults(src string) (string, error) {
	return NewWithDefaults().ConvertString(src)
}
