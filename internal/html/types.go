package html

import (
	"errors"
	"fmt"
)

// Kind identifies what a tree node represents
type Kind uint8

const (
	DocumentNode Kind = iota
	DoctypeNode
	TextNode
	CommentNode
	ElementNode
)

func (k Kind) String() string {
	switch k {
	case DocumentNode:
		return "document"
	case DoctypeNode:
		return "doctype"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case ElementNode:
		return "element"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// NodeID addresses a node inside its Tree
type NodeID int

// Attr is a single attribute in source order
type Attr struct {
	Name  string
	Value string
}

// Node is one record of the tree arena.
// Data holds the tag name for elements and the content for text and comments.
type Node struct {
	Kind     Kind
	Data     string
	Attrs    []Attr
	Children []NodeID
}

// Tree is a parsed document stored as an arena of nodes.
// Children are referenced by index, nodes carry no parent links.
type Tree struct {
	Nodes []Node
	Root  NodeID
}

// Node returns the node with the given id
func (t *Tree) Node(id NodeID) *Node {
	return &t.Nodes[id]
}

// Len returns the number of nodes in the tree
func (t *Tree) Len() int {
	return len(t.Nodes)
}

func (t *Tree) add(n Node) NodeID {
	t.Nodes = append(t.Nodes, n)
	return NodeID(len(t.Nodes) - 1)
}

var (
	// ErrUnsupportedNode is returned when the parser yields a node type the
	// tree has no kind for
	ErrUnsupportedNode = errors.New("unsupported node type")

	// ErrInvalidSelector is returned when a CSS selector does not compile
	ErrInvalidSelector = errors.New("invalid selector")
)

// ParseError carries the diagnostic of a failed parse
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("html parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
