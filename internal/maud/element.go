package maud

import (
	"strings"
	"unicode"

	"html2maud/internal/config"
	"html2maud/internal/html"
)

// voidElements never have children or a closing tag
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoid reports whether tag names a void element
func IsVoid(tag string) bool {
	return voidElements[tag]
}

// Element is the formatting view of one element node
type Element struct {
	TagName    string
	IDs        []string    // every id attribute, in source order
	Classes    []string    // class values split on whitespace
	Attributes []html.Attr // everything else, in source order
}

// NewElement sorts attrs into ids, classes and remaining attributes
func NewElement(tag string, attrs []html.Attr) Element {
	el := Element{TagName: tag}

	for _, attr := range attrs {
		switch attr.Name {
		case "id":
			el.IDs = append(el.IDs, attr.Value)
		case "class":
			el.Classes = append(el.Classes, strings.Fields(attr.Value)...)
		default:
			el.Attributes = append(el.Attributes, attr)
		}
	}

	return el
}

// Format renders the element's head token: tag name, id, classes and
// attributes joined by single spaces, skipping empty parts. A shorthand id
// directly followed by shorthand classes stays one token, as in #main.wide.
func (e Element) Format(cfg config.Config) string {
	id, classes := e.formatID(cfg.IDStyle), e.formatClasses(cfg.ClassStyle)
	if cfg.IDStyle != config.IDStyleFull && cfg.ClassStyle != config.ClassStyleFull {
		id, classes = id+classes, ""
	}

	parts := []string{
		e.formatTagName(cfg),
		id,
		classes,
		e.formatAttributes(),
	}

	nonEmpty := parts[:0]
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}

	return strings.Join(nonEmpty, " ")
}

func (e Element) formatTagName(cfg config.Config) string {
	if e.omitTagName(cfg) {
		return ""
	}
	return e.TagName
}

// omitTagName reports whether a div can be written as bare #id or .class
func (e Element) omitTagName(cfg config.Config) bool {
	if e.TagName != "div" {
		return false
	}
	if len(e.IDs) > 0 && cfg.IDStyle == config.IDStyleShortNoDiv {
		return true
	}
	return len(e.Classes) > 0 && cfg.ClassStyle == config.ClassStyleShortNoDiv
}

// formatID uses the first id only
func (e Element) formatID(style config.IDStyle) string {
	if len(e.IDs) == 0 {
		return ""
	}

	id := e.IDs[0]
	switch style {
	case config.IDStyleShort, config.IDStyleShortNoDiv:
		return "#" + shorthandQuote(id)
	default:
		return `id="` + id + `"`
	}
}

func (e Element) formatClasses(style config.ClassStyle) string {
	if len(e.Classes) == 0 {
		return ""
	}

	switch style {
	case config.ClassStyleShort, config.ClassStyleShortNoDiv:
		var b strings.Builder
		for _, class := range e.Classes {
			b.WriteByte('.')
			b.WriteString(shorthandQuote(class))
		}
		return b.String()
	default:
		return `class="` + strings.Join(e.Classes, " ") + `"`
	}
}

func (e Element) formatAttributes() string {
	attrs := make([]string, 0, len(e.Attributes))
	for _, attr := range e.Attributes {
		attrs = append(attrs, formatAttribute(attr))
	}
	return strings.Join(attrs, " ")
}

// formatAttribute writes the value verbatim, without escaping
func formatAttribute(attr html.Attr) string {
	if attr.Value == "" {
		return attr.Name
	}
	return attr.Name + `="` + attr.Value + `"`
}

// shorthandQuote wraps tokens maud cannot take bare after # or .
func shorthandQuote(token string) string {
	if needsQuotes(token) {
		return `"` + token + `"`
	}
	return token
}

func needsQuotes(token string) bool {
	return strings.ContainsFunc(token, func(r rune) bool {
		return r == ':' || unicode.IsNumber(r)
	})
}
