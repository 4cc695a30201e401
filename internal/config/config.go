package config

import "strings"

// Render selects how the collected head and body lines are wrapped
type Render int

const (
	// RenderAuto picks Full or OnlyBody by looking for literal <html>, <head>
	// or <body> tags in the input text
	RenderAuto Render = iota
	// RenderFull emits the DOCTYPE marker plus separate head and body blocks
	RenderFull
	// RenderOnlyBody emits only the body lines
	RenderOnlyBody
)

// IDStyle selects how an element's id is written
type IDStyle int

const (
	IDStyleFull       IDStyle = iota // id="value"
	IDStyleShort                     // #value
	IDStyleShortNoDiv                // #value, and a div tag name is dropped
)

// ClassStyle selects how an element's classes are written
type ClassStyle int

const (
	ClassStyleFull       ClassStyle = iota // class="a b"
	ClassStyleShort                        // .a.b
	ClassStyleShortNoDiv                   // .a.b, and a div tag name is dropped
)

// Config holds the formatting options of one conversion.
// The zero value equals Default().
type Config struct {
	// Render controls the document wrapper
	Render Render `yaml:"render" json:"render"`

	// IDStyle controls id formatting
	IDStyle IDStyle `yaml:"id_style" json:"id_style"`

	// ClassStyle controls class formatting
	ClassStyle ClassStyle `yaml:"class_style" json:"class_style"`
}

// Default returns the configuration used by the command line tool
func Default() Config {
	return Config{
		Render:     RenderAuto,
		IDStyle:    IDStyleFull,
		ClassStyle: ClassStyleFull,
	}
}

// normalize lowercases a setting value and strips separators so that
// "onlyBody", "only-body" and "only_body" compare equal.
func normalize(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(value)
}

// ParseRender parses a render mode. Unknown values yield RenderAuto.
func ParseRender(value string) Render {
	switch normalize(value) {
	case "full":
		return RenderFull
	case "onlybody", "body":
		return RenderOnlyBody
	default:
		return RenderAuto
	}
}

// ParseIDStyle parses an id style. Unknown values yield IDStyleFull.
func ParseIDStyle(value string) IDStyle {
	switch normalize(value) {
	case "short":
		return IDStyleShort
	case "shortnodiv":
		return IDStyleShortNoDiv
	default:
		return IDStyleFull
	}
}

// ParseClassStyle parses a class style. Unknown values yield ClassStyleFull.
func ParseClassStyle(value string) ClassStyle {
	switch normalize(value) {
	case "short":
		return ClassStyleShort
	case "shortnodiv":
		return ClassStyleShortNoDiv
	default:
		return ClassStyleFull
	}
}

func (r Render) String() string {
	switch r {
	case RenderFull:
		return "full"
	case RenderOnlyBody:
		return "onlyBody"
	default:
		return "auto"
	}
}

func (s IDStyle) String() string {
	switch s {
	case IDStyleShort:
		return "short"
	case IDStyleShortNoDiv:
		return "shortNoDiv"
	default:
		return "full"
	}
}

func (s ClassStyle) String() string {
	switch s {
	case ClassStyleShort:
		return "short"
	case ClassStyleShortNoDiv:
		return "shortNoDiv"
	default:
		return "full"
	}
}

// MarshalText implements encoding.TextMarshaler
func (r Render) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler and never fails
func (r *Render) UnmarshalText(text []byte) error {
	*r = ParseRender(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (s IDStyle) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler and never fails
func (s *IDStyle) UnmarshalText(text []byte) error {
	*s = ParseIDStyle(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (s ClassStyle) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler and never fails
func (s *ClassStyle) UnmarshalText(text []byte) error {
	*s = ParseClassStyle(string(text))
	return nil
}

// RenderValues lists the accepted render names, for help texts
func RenderValues() []string {
	return []string{RenderAuto.String(), RenderFull.String(), RenderOnlyBody.String()}
}

// StyleValues lists the accepted id and class style names, for help texts
func StyleValues() []string {
	return []string{IDStyleFull.String(), IDStyleShort.String(), IDStyleShortNoDiv.String()}
}
