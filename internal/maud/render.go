package maud

import (
	"strings"

	"html2maud/internal/config"
)

// rootTags trigger full document output in auto mode. Only these exact
// spellings count: a tag carrying attributes, such as <body class="x">, is
// not detected, and the text can also match inside comments or attribute
// values.
var rootTags = []string{"<html>", "<head>", "<body>"}

// Doc collects the head and body lines of one conversion
type Doc struct {
	Input string
	Head  []string
	Body  []string
}

// NewDoc creates an empty Doc for the given input text
func NewDoc(input string) *Doc {
	return &Doc{Input: input}
}

// push appends line to the buffer for place and reports whether it was kept
func (d *Doc) push(place Placement, line string) bool {
	switch place {
	case PlaceHead:
		d.Head = append(d.Head, line)
	case PlaceBody:
		d.Body = append(d.Body, line)
	default:
		return false
	}
	return true
}

// HasRootTags reports whether input contains a literal <html>, <head> or
// <body> tag
func HasRootTags(input string) bool {
	for _, tag := range rootTags {
		if strings.Contains(input, tag) {
			return true
		}
	}
	return false
}

// Resolve turns RenderAuto into the concrete mode for input
func Resolve(render config.Render, input string) config.Render {
	if render != config.RenderAuto {
		return render
	}
	if HasRootTags(input) {
		return config.RenderFull
	}
	return config.RenderOnlyBody
}

// Render assembles the final maud source
func (d *Doc) Render(cfg config.Config) string {
	if Resolve(cfg.Render, d.Input) == config.RenderFull {
		return d.renderFull()
	}
	return d.renderBody()
}

func (d *Doc) renderFull() string {
	return strings.Join([]string{
		"html! {",
		"    (maud::DOCTYPE)",
		"    head {",
		indentLines(d.Head, 8),
		"    }",
		"    body {",
		indentLines(d.Body, 8),
		"    }",
		"}",
	}, "\n")
}

func (d *Doc) renderBody() string {
	return strings.Join([]string{
		"html! {",
		indentLines(d.Body, 4),
		"}",
	}, "\n")
}

func indentLines(lines []string, indent int) string {
	prefix := pad(indent)
	indented := make([]string, len(lines))
	for i, line := range lines {
		indented[i] = prefix + line
	}
	return strings.Join(indented, "\n")
}
