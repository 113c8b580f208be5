package operations

import (
	"fmt"
)

// UnknownOperationError reports a request whose Type has no handler.
type UnknownOperationError struct {
	Type OpType
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("operations: unknown operation %q", e.Type)
}

// CompositeError reports a multi-step operation that aborted mid-way.
// Completed counts the steps that had succeeded before the failure; none of
// their edits survive.
type CompositeError struct {
	Step      string
	Completed int
	Err       error
}

func (e *CompositeError) Error() string {
	return fmt.Sprintf("operations: %s failed after %d completed steps: %v",
		e.Step, e.Completed, e.Err)
}

func (e *CompositeError) Unwrap() error {
	return e.Err
}

// SequenceError reports the first failing operation of a batch. Applied is
// the number of operations that completed before the failure; the code
// returned alongside it reflects only those.
type SequenceError struct {
	Index   int
	Type    OpType
	Applied int
	Err     error
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("operations: sequence failed at %d (%s) after %d applied: %v",
		e.Index, e.Type, e.Applied, e.Err)
}

func (e *SequenceError) Unwrap() error {
	return e.Err
}
