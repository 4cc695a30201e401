package converter

import (
	"fmt"
	"regexp"
	"strings"

	"html2maud/internal/config"
	"html2maud/internal/maud"
)

// WarningKind classifies a Warning
type WarningKind string

const (
	// WarnExtraID: an element had several ids and only the first was kept
	WarnExtraID WarningKind = "extra-id"
	// WarnHeadDiscarded: head content was collected but not rendered
	WarnHeadDiscarded WarningKind = "head-discarded"
	// WarnAutoHeuristic: auto mode missed a root tag that carries attributes
	WarnAutoHeuristic WarningKind = "auto-heuristic"
)

// Warning describes a lossy or surprising conversion
type Warning struct {
	Kind    WarningKind
	Element string
	Message string
}

func (w Warning) String() string {
	if w.Element == "" {
		return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", w.Kind, w.Element, w.Message)
}

// rootTagRegex finds html, head and body start tags in any spelling
var rootTagRegex = regexp.MustCompile(`(?i)<(html|head|body)\b[^>]*>`)

// collectWarnings inspects a finished walk. configured is the render mode
// asked for, render the one used.
func collectWarnings(src string, doc *maud.Doc, walker *maud.Walker, configured, render config.Render) []Warning {
	var warnings []Warning

	for _, dropped := range walker.DroppedIDs {
		warnings = append(warnings, Warning{
			Kind:    WarnExtraID,
			Element: dropped.TagName,
			Message: fmt.Sprintf("kept id %q, dropped %s", dropped.Kept, strings.Join(quoteAll(dropped.Dropped), ", ")),
		})
	}

	if render == config.RenderOnlyBody && len(doc.Head) > 0 {
		warnings = append(warnings, Warning{
			Kind:    WarnHeadDiscarded,
			Element: "head",
			Message: fmt.Sprintf("%d head line(s) not included in body-only output", len(doc.Head)),
		})
	}

	if configured == config.RenderAuto && !maud.HasRootTags(src) {
		if tag := rootTagRegex.FindString(src); tag != "" {
			warnings = append(warnings, Warning{
				Kind:    WarnAutoHeuristic,
				Element: strings.ToLower(rootTagRegex.FindStringSubmatch(tag)[1]),
				Message: fmt.Sprintf("found %s but auto mode only recognizes <html>, <head> and <body>; rendered body only", tag),
			})
		}
	}

	return warnings
}

func quoteAll(values []string) []string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return quoted
}
