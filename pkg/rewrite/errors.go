package rewrite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tsxmod/tsxmod/pkg/jsx"
)

// Sentinel errors for queue construction and splicing.
var (
	// ErrNilTree indicates the queue was built without a parse tree.
	ErrNilTree = errors.New("rewrite: nil parse tree")

	// ErrOverlappingEdits indicates two queued edits cover overlapping
	// ranges and neither is a shared-boundary pure insertion.
	ErrOverlappingEdits = errors.New("rewrite: overlapping edits")

	// ErrInvalidEdit indicates an edit violates its range invariant.
	ErrInvalidEdit = errors.New("rewrite: invalid edit range")

	// ErrNoChildSlot indicates a child insertion was requested on a
	// self-closing element.
	ErrNoChildSlot = errors.New("rewrite: self-closing element cannot take children")

	// ErrExpressionBody indicates a hook insertion targeted an
	// expression-bodied arrow function with no statement block.
	ErrExpressionBody = errors.New("rewrite: function body is not a statement block")

	// ErrEmptyName indicates a builder received an empty identifier name.
	ErrEmptyName = errors.New("rewrite: empty identifier name")

	// ErrEmptySnippet indicates a JSX insertion received blank markup.
	ErrEmptySnippet = errors.New("rewrite: empty JSX snippet")
)

// NotFoundError reports a structural lookup that produced no match. It is
// always recoverable and carries the target name for the caller's message.
type NotFoundError struct {
	What string
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("rewrite: %s not found", e.What)
	}

	return fmt.Sprintf("rewrite: %s %q not found", e.What, e.Name)
}

// notFound builds a NotFoundError.
func notFound(what, name string) error {
	return &NotFoundError{What: what, Name: name}
}

// ValidationError reports that spliced output failed re-parse validation.
// The splice is discarded; the caller's original text stands.
type ValidationError struct {
	Issues []jsx.Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}

	return "rewrite: generated code is not syntactically valid: " + strings.Join(parts, "; ")
}
