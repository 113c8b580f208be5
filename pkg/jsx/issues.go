package jsx

import "fmt"

// Issue describes one error or missing node found in a parse tree.
// Input-side issues are not failures: queries keep working on unaffected
// regions, and callers decide whether the issues matter.
type Issue struct {
	// Line is the 1-based line of the offending node.
	Line int `json:"line"`

	// Column is the 1-based column of the offending node.
	Column int `json:"column"`

	// NodeType is the raw grammar type, prefixed with MISSING for nodes the
	// parser inserted during recovery.
	NodeType string `json:"node_type"`
}

// String renders the issue for human-readable error lists.
func (i Issue) String() string {
	return fmt.Sprintf("%d:%d: %s", i.Line, i.Column, i.NodeType)
}

// Issues returns every error and missing node in the tree, recursively, in
// document order. The scan runs once per tree and is cached.
func (t *Tree) Issues() []Issue {
	t.issuesOnce.Do(func() {
		t.issues = collectIssues(t.Root())
	})

	return t.issues
}

func collectIssues(root Node) []Issue {
	var issues []Issue

	root.walkAll(func(n Node) bool {
		switch {
		case n.isError():
			issues = append(issues, Issue{
				Line:     n.Line(),
				Column:   n.Column(),
				NodeType: n.Type(),
			})
		case n.isMissing():
			issues = append(issues, Issue{
				Line:     n.Line(),
				Column:   n.Column(),
				NodeType: "MISSING " + n.Type(),
			})
		}

		return true
	})

	return issues
}
