package operations

import (
	"context"
	"errors"
	"fmt"

	"github.com/tsxmod/tsxmod/pkg/jsx"
	"github.com/tsxmod/tsxmod/pkg/rewrite"
)

// Result is the outcome of one executed operation. Edit operations set
// Code to the full rewritten source. Origination operations set FileName
// and FileCode; extract_component sets both Code (the rewritten original)
// and the new file fields.
type Result struct {
	Success        bool     `json:"success"`
	Code           string   `json:"code,omitempty"`
	FileName       string   `json:"fileName,omitempty"`
	FileCode       string   `json:"fileCode,omitempty"`
	Errors         []string `json:"errors,omitempty"`
	StepsCompleted int      `json:"stepsCompleted,omitempty"`
}

// FailureResult shapes an execution error into a transportable Result.
// Validation issues are expanded one per entry; composite and sequence
// failures carry their completed-step count.
func FailureResult(err error) *Result {
	res := &Result{Errors: []string{err.Error()}}

	var validation *rewrite.ValidationError
	if errors.As(err, &validation) {
		res.Errors = res.Errors[:0]
		for _, issue := range validation.Issues {
			res.Errors = append(res.Errors, issue.String())
		}
	}

	var composite *CompositeError
	if errors.As(err, &composite) {
		res.StepsCompleted = composite.Completed
	}

	var sequence *SequenceError
	if errors.As(err, &sequence) {
		res.StepsCompleted = sequence.Applied
	}

	return res
}

// Catalog executes operation requests against source text. Each invocation
// parses once and anchors every edit to that frozen tree; a Catalog is safe
// for concurrent use.
type Catalog struct {
	parser *jsx.Parser
}

// NewCatalog builds a catalog for one dialect.
func NewCatalog(dialect jsx.Dialect) (*Catalog, error) {
	parser, err := jsx.NewParser(dialect)
	if err != nil {
		return nil, err
	}

	return &Catalog{parser: parser}, nil
}

// Dialect returns the dialect the catalog parses.
func (c *Catalog) Dialect() jsx.Dialect {
	return c.parser.Dialect()
}

// Execute runs one operation against code. On failure the returned error is
// typed (rewrite.NotFoundError, rewrite.ValidationError, CompositeError,
// UnknownOperationError) and code remains the only valid text.
func (c *Catalog) Execute(ctx context.Context, code string, req Request) (*Result, error) {
	switch req.Type {
	case OpCreateContextProvider:
		return c.createContextProvider(ctx, req)
	case OpCreateStore:
		return c.createStore(ctx, req)
	case OpExtractComponent:
		return c.extractComponent(ctx, code, req)
	case OpAddAuthentication:
		return c.addAuthentication(ctx, code, req)
	default:
		return c.executeEdit(ctx, code, req)
	}
}

// executeEdit handles the 1:1 edit operations through a rewrite queue.
func (c *Catalog) executeEdit(ctx context.Context, code string, req Request) (*Result, error) {
	tree, err := c.parser.Parse(ctx, []byte(code))
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	queue, err := rewrite.NewQueue(c.parser, tree)
	if err != nil {
		return nil, err
	}

	if err := enqueueEdit(queue, req); err != nil {
		return nil, err
	}

	out, err := queue.Generate(ctx)
	if err != nil {
		return nil, err
	}

	return &Result{Success: true, Code: out}, nil
}

// enqueueEdit maps one request onto queue calls.
func enqueueEdit(queue *rewrite.Queue, req Request) error {
	switch req.Type {
	case OpAddImport:
		if req.Import == nil {
			return fmt.Errorf("operations: %s: missing import spec", req.Type)
		}

		queue.AddImport(*req.Import)

		return nil
	case OpAddState:
		return queue.AddStateVariable(req.Component, req.Name, req.Setter, req.Initial)
	case OpWrapElement:
		return queue.WrapElement(req.Target, req.Wrapper, req.Props, req.Import)
	case OpModifyClassName:
		return queue.ModifyClassName(req.Target, req.StaticClasses, req.Template)
	case OpInsertJSX:
		return queue.InsertJSX(req.Target, req.JSX, req.Position)
	case OpAddUseEffect:
		return queue.AddUseEffect(req.Component, req.Body, req.Deps, req.Cleanup)
	case OpModifyProp:
		return queue.ModifyProp(req.Target, req.Prop, req.Value, req.Action)
	case OpAddRef:
		return queue.AddRef(req.Component, req.Name, req.Initial)
	case OpAddMemo:
		return queue.AddMemo(req.Component, req.Name, req.Expr, req.Deps)
	case OpAddCallback:
		return queue.AddCallback(req.Component, req.Name, req.Params, req.Body, req.Deps)
	case OpAddReducer:
		return queue.AddReducer(req.Component, req.Name, req.Dispatch, req.Reducer, req.Initial, req.Cases)
	case OpWrapInConditional:
		return queue.WrapReturnInConditional(req.Component, req.Condition, req.Alternative)
	case OpAddFunction:
		return queue.AddFunction(req.Component, req.Name, req.Params, req.Body)
	default:
		return &UnknownOperationError{Type: req.Type}
	}
}

// SequenceResult is the outcome of an operation batch.
type SequenceResult struct {
	Code    string `json:"code"`
	Applied int    `json:"applied"`
}

// ExecuteSequence runs operations strictly in order, feeding each result
// into the next. The first failure stops the batch; the returned
// SequenceError reports how many operations had applied, and the caller's
// original code stands.
func (c *Catalog) ExecuteSequence(ctx context.Context, code string, reqs []Request) (*SequenceResult, error) {
	current := code

	for i, req := range reqs {
		res, err := c.Execute(ctx, current, req)
		if err != nil {
			return nil, &SequenceError{Index: i, Type: req.Type, Applied: i, Err: err}
		}

		// Pure origination leaves the working text untouched.
		if res.Code != "" {
			current = res.Code
		}
	}

	return &SequenceResult{Code: current, Applied: len(reqs)}, nil
}
