package html

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Select parses src and returns a Tree whose document root holds only the
// elements matching selector, in document order. A match nested inside
// another match is reached through the outer one and not repeated.
func (p *Parser) Select(src, selector string) (*Tree, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, selector, err)
	}

	root, err := p.parseNode(src)
	if err != nil {
		return nil, err
	}

	doc := goquery.NewDocumentFromNode(root)
	matches := outermost(doc.FindMatcher(matcher).Nodes)

	tree := &Tree{}
	tree.Root = tree.add(Node{Kind: DocumentNode})

	children := make([]NodeID, 0, len(matches))
	for _, n := range matches {
		id, err := tree.build(n)
		if err != nil {
			return nil, err
		}
		children = append(children, id)
	}
	tree.Nodes[tree.Root].Children = children

	return tree, nil
}

// outermost drops every node that has an ancestor in nodes
func outermost(nodes []*html.Node) []*html.Node {
	matched := make(map[*html.Node]bool, len(nodes))
	for _, n := range nodes {
		matched[n] = true
	}

	var result []*html.Node
	for _, n := range nodes {
		nested := false
		for parent := n.Parent; parent != nil; parent = parent.Parent {
			if matched[parent] {
				nested = true
				break
			}
		}
		if !nested {
			result = append(result, n)
		}
	}

	return result
}
