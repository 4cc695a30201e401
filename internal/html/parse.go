package html

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Parser turns HTML text into a Tree using the x/net/html HTML5 parser
type Parser struct {
	// scripting mirrors a browser with scripting enabled: <noscript>
	// content is kept as raw text
	scripting bool
}

// NewParser creates a parser with scripting enabled
func NewParser() *Parser {
	return &Parser{scripting: true}
}

// NewParserWithScripting creates a parser with the given scripting flag
func NewParserWithScripting(enabled bool) *Parser {
	return &Parser{scripting: enabled}
}

// Parse parses a complete HTML document. Missing html, head and body
// elements are synthesized by the parser.
func (p *Parser) Parse(src string) (*Tree, error) {
	root, err := p.parseNode(src)
	if err != nil {
		return nil, err
	}

	tree := &Tree{}
	id, err := tree.build(root)
	if err != nil {
		return nil, err
	}
	tree.Root = id

	return tree, nil
}

func (p *Parser) parseNode(src string) (*html.Node, error) {
	root, err := html.ParseWithOptions(strings.NewReader(src), html.ParseOptionEnableScripting(p.scripting))
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return root, nil
}

// build copies n and its descendants into the arena and returns its id
func (t *Tree) build(n *html.Node) (NodeID, error) {
	var rec Node

	switch n.Type {
	case html.DocumentNode:
		rec.Kind = DocumentNode
	case html.DoctypeNode:
		rec.Kind = DoctypeNode
		rec.Data = n.Data
	case html.TextNode:
		rec.Kind = TextNode
		rec.Data = n.Data
	case html.CommentNode:
		rec.Kind = CommentNode
		rec.Data = n.Data
	case html.ElementNode:
		rec.Kind = ElementNode
		rec.Data = n.Data
		if len(n.Attr) > 0 {
			rec.Attrs = make([]Attr, len(n.Attr))
			for i, a := range n.Attr {
				rec.Attrs[i] = Attr{Name: a.Key, Value: a.Val}
			}
		}
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedNode, n.Type)
	}

	id := t.add(rec)

	var children []NodeID
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		child, err := t.build(c)
		if err != nil {
			return 0, err
		}
		children = append(children, child)
	}
	t.Nodes[id].Children = children

	return id, nil
}
