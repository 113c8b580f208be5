package jsx

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// Node is a read-only view of one syntax node over the original source.
// The zero Node is invalid; check IsZero before use. Nodes stay valid only
// while their Tree is open.
type Node struct {
	ts  sitter.Node
	src []byte
}

// IsZero reports whether the node is absent (failed lookup or past-the-end
// traversal).
func (n Node) IsZero() bool {
	return n.src == nil || n.ts.IsNull()
}

// Kind returns the classified kind of the node.
func (n Node) Kind() Kind {
	return KindOf(n.ts.Type())
}

// Type returns the raw grammar type string.
func (n Node) Type() string {
	return n.ts.Type()
}

// Start returns the inclusive start byte offset.
func (n Node) Start() int {
	return int(n.ts.StartByte())
}

// End returns the exclusive end byte offset.
func (n Node) End() int {
	return int(n.ts.EndByte())
}

// Line returns the 1-based line of the node start.
func (n Node) Line() int {
	return int(n.ts.StartPoint().Row) + 1
}

// Column returns the 1-based column of the node start.
func (n Node) Column() int {
	return int(n.ts.StartPoint().Column) + 1
}

// Text returns the node's text view over the original source. The source is
// never mutated; generated code is produced by splicing, not edits in place.
func (n Node) Text() string {
	return n.ts.Content(n.src)
}

// Field returns the child occupying the given grammar field, or a zero Node.
func (n Node) Field(name string) Node {
	child := n.ts.ChildByFieldName(name)
	if child.IsNull() {
		return Node{}
	}

	return Node{ts: child, src: n.src}
}

// NamedChildCount returns the number of named children.
func (n Node) NamedChildCount() int {
	return int(n.ts.NamedChildCount())
}

// NamedChild returns the i-th named child, or a zero Node when out of range.
func (n Node) NamedChild(i int) Node {
	if i < 0 || i >= n.NamedChildCount() {
		return Node{}
	}

	child := n.ts.NamedChild(uint32(i))
	if child.IsNull() {
		return Node{}
	}

	return Node{ts: child, src: n.src}
}

// NamedChildren returns all named children in document order.
func (n Node) NamedChildren() []Node {
	count := n.NamedChildCount()
	children := make([]Node, 0, count)

	for i := range count {
		child := n.NamedChild(i)
		if !child.IsZero() {
			children = append(children, child)
		}
	}

	return children
}

// isError reports whether this node is an ERROR node.
func (n Node) isError() bool {
	return n.ts.IsError()
}

// isMissing reports whether the parser inserted this node to recover from a
// syntax error.
func (n Node) isMissing() bool {
	return n.ts.IsMissing()
}

// Walk visits n and its named descendants in pre-order. The visitor returns
// false to stop the whole walk; Walk then returns false as well.
func (n Node) Walk(visit func(Node) bool) bool {
	if !visit(n) {
		return false
	}

	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)
		if child.IsZero() {
			continue
		}

		if !child.Walk(visit) {
			return false
		}
	}

	return true
}

// walkAll visits n and every descendant, anonymous and missing nodes
// included. Used for syntax-issue collection, where error markers frequently
// sit on unnamed tokens.
func (n Node) walkAll(visit func(Node) bool) bool {
	if !visit(n) {
		return false
	}

	for i := range int(n.ts.ChildCount()) {
		child := n.ts.Child(uint32(i))
		if child.IsNull() {
			continue
		}

		wrapped := Node{ts: child, src: n.src}
		if !wrapped.walkAll(visit) {
			return false
		}
	}

	return true
}
