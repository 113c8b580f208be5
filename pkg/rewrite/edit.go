// Package rewrite accumulates declarative, position-anchored edits against
// one frozen parse tree and splices them into new source text in a single
// deterministic pass. The original text is never mutated; a failed splice
// leaves the caller's input untouched.
package rewrite

import (
	"fmt"
	"sort"
)

// EditKind discriminates the two edit operations.
type EditKind int

// Edit kinds.
const (
	// EditInsert inserts text at a point; Start == End.
	EditInsert EditKind = iota
	// EditReplace replaces the byte range [Start, End).
	EditReplace
)

// String returns the kind name.
func (k EditKind) String() string {
	if k == EditInsert {
		return "insert"
	}

	return "replace"
}

// Edit priorities. When two edits anchor at the same byte offset, lower
// priority applies first, so composed operations are deterministic
// regardless of enqueue order.
const (
	PriorityImport    = 10
	PriorityFunction  = 40
	PriorityWrapOpen  = 50
	PriorityDefault   = 100
	PriorityWrapClose = 150
)

// Edit is one position-anchored modification against the frozen source.
// Invariant: Start <= End; inserts have Start == End.
type Edit struct {
	Kind     EditKind
	Start    int
	End      int
	Text     string
	Priority int
	Desc     string
}

// valid reports whether the edit respects its range invariant within a
// source of length n.
func (e Edit) valid(n int) bool {
	if e.Start < 0 || e.End > n || e.Start > e.End {
		return false
	}

	if e.Kind == EditInsert && e.Start != e.End {
		return false
	}

	return true
}

func (e Edit) String() string {
	return fmt.Sprintf("%s [%d,%d) %q", e.Kind, e.Start, e.End, e.Desc)
}

// sortEdits orders edits by ascending start offset, then ascending
// priority, preserving enqueue order for full ties.
func sortEdits(edits []Edit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Start != edits[j].Start {
			return edits[i].Start < edits[j].Start
		}

		return edits[i].Priority < edits[j].Priority
	})
}
