package maud

import (
	"strings"

	"html2maud/internal/config"
	"html2maud/internal/html"
)

// Placement selects the buffer a line is written to
type Placement int

const (
	PlaceOther Placement = iota // discarded
	PlaceHead
	PlaceBody
)

// indentStep is the indentation added per nesting level
const indentStep = 4

// Stats counts what a walk produced
type Stats struct {
	Elements        int
	VoidElements    int
	TextLines       int
	CommentsDropped int
}

// DroppedID records an element whose ids beyond the first were ignored
type DroppedID struct {
	TagName string
	Kept    string
	Dropped []string
}

// Walker performs the depth-first traversal of a Tree into a Doc
type Walker struct {
	cfg  config.Config
	tree *html.Tree
	doc  *Doc

	// fragment keeps every line in the starting placement and nests html,
	// head and body like any other element
	fragment bool

	Stats      Stats
	DroppedIDs []DroppedID
}

// NewWalker creates a walker writing lines for tree into doc
func NewWalker(cfg config.Config, tree *html.Tree, doc *Doc) *Walker {
	return &Walker{cfg: cfg, tree: tree, doc: doc}
}

// NewFragmentWalker creates a walker for a subtree cut out of a document.
// A head or body element in the subtree opens a nested block instead of
// switching buffers.
func NewFragmentWalker(cfg config.Config, tree *html.Tree, doc *Doc) *Walker {
	return &Walker{cfg: cfg, tree: tree, doc: doc, fragment: true}
}

// Walk appends the lines for node id and its descendants to the doc
func (w *Walker) Walk(indent int, id html.NodeID, place Placement) {
	node := w.tree.Node(id)

	switch node.Kind {
	case html.DocumentNode:
		for _, child := range node.Children {
			w.Walk(indent+indentStep, child, place)
		}

	case html.DoctypeNode:
		// the renderer writes its own DOCTYPE marker

	case html.CommentNode:
		w.Stats.CommentsDropped++

	case html.TextNode:
		text := strings.TrimSpace(node.Data)
		if text == "" {
			return
		}
		if w.doc.push(place, pad(indent)+`"`+EscapeString(text)+`"`) {
			w.Stats.TextLines++
		}

	case html.ElementNode:
		w.walkElement(indent, node, place)
	}
}

func (w *Walker) walkElement(indent int, node *html.Node, place Placement) {
	el := NewElement(node.Data, node.Attrs)
	void := IsVoid(el.TagName)

	w.Stats.Elements++
	if void {
		w.Stats.VoidElements++
	}
	if len(el.IDs) > 1 {
		w.DroppedIDs = append(w.DroppedIDs, DroppedID{
			TagName: el.TagName,
			Kept:    el.IDs[0],
			Dropped: el.IDs[1:],
		})
	}

	terminator := " {"
	if void {
		terminator = ";"
	}
	w.doc.push(place, pad(indent)+el.Format(w.cfg)+terminator)

	childPlace, childIndent := place, indent+indentStep
	if !w.fragment {
		switch el.TagName {
		case "head":
			childPlace, childIndent = PlaceHead, 0
		case "body":
			childPlace, childIndent = PlaceBody, 0
		}
	}

	for _, child := range node.Children {
		w.Walk(childIndent, child, childPlace)
	}

	if !void {
		w.doc.push(place, pad(indent)+"}")
	}
}

func pad(indent int) string {
	return strings.Repeat(" ", indent)
}
