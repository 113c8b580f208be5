package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tsxmod/tsxmod/pkg/jsx"
	"github.com/tsxmod/tsxmod/pkg/operations"
	"github.com/tsxmod/tsxmod/pkg/textutil"
)

// ApplyReport is the structured output of tsx_apply.
type ApplyReport struct {
	Success bool   `json:"success"`
	Applied int    `json:"applied"`
	Code    string `json:"code"`
}

// handleApply runs an operation batch against inline source.
func handleApply(ctx context.Context, _ *mcpsdk.CallToolRequest, input ApplyInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateCodeInput(input.Code); err != nil {
		return errorResult(err)
	}

	if len(input.Operations) == 0 {
		return errorResult(ErrEmptyOperations)
	}

	dialect, err := resolveDialect(input.Dialect)
	if err != nil {
		return errorResult(err)
	}

	reqs, err := operations.ParseRequests(input.Operations)
	if err != nil {
		return errorResult(err)
	}

	catalog, err := operations.NewCatalog(dialect)
	if err != nil {
		return errorResult(err)
	}

	res, err := catalog.ExecuteSequence(ctx, input.Code, reqs)
	if err != nil {
		return failureResult(err)
	}

	return jsonResult(ApplyReport{Success: true, Applied: res.Applied, Code: res.Code})
}

// ImportReport is one import statement of the inspected source.
type ImportReport struct {
	Source    string   `json:"source"`
	Default   string   `json:"defaultImport,omitempty"`
	Named     []string `json:"namedImports,omitempty"`
	Namespace string   `json:"namespaceImport,omitempty"`
}

// StateHookReport is one recognized useState declaration.
type StateHookReport struct {
	Name    string `json:"name"`
	Setter  string `json:"setter"`
	Initial string `json:"initial"`
	Line    int    `json:"line"`
}

// FunctionReport locates a named function.
type FunctionReport struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	Line int    `json:"line"`
}

// VariableReport locates a named variable binding.
type VariableReport struct {
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	OriginalName string `json:"originalName,omitempty"`
	Line         int    `json:"line"`
}

// ElementReport locates a JSX element.
type ElementReport struct {
	Tag         string `json:"tag"`
	SelfClosing bool   `json:"selfClosing"`
	Line        int    `json:"line"`
}

// InspectReport is the structured output of tsx_inspect.
type InspectReport struct {
	Dialect    string            `json:"dialect"`
	Lines      int               `json:"lines"`
	Valid      bool              `json:"valid"`
	Issues     []jsx.Issue       `json:"issues,omitempty"`
	Imports    []ImportReport    `json:"imports"`
	StateHooks []StateHookReport `json:"stateHooks,omitempty"`
	Function   *FunctionReport   `json:"function,omitempty"`
	Variable   *VariableReport   `json:"variable,omitempty"`
	Element    *ElementReport    `json:"element,omitempty"`
	NotFound   []string          `json:"notFound,omitempty"`
}

// handleInspect answers structural queries against inline source.
func handleInspect(ctx context.Context, _ *mcpsdk.CallToolRequest, input InspectInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateCodeInput(input.Code); err != nil {
		return errorResult(err)
	}

	dialect, err := resolveDialect(input.Dialect)
	if err != nil {
		return errorResult(err)
	}

	parser, err := jsx.NewParser(dialect)
	if err != nil {
		return errorResult(err)
	}

	tree, err := parser.Parse(ctx, []byte(input.Code))
	if err != nil {
		return errorResult(err)
	}
	defer tree.Close()

	report := InspectReport{
		Dialect: string(dialect),
		Lines:   textutil.CountLines([]byte(input.Code)),
		Valid:   !tree.HasError(),
		Issues:  tree.Issues(),
		Imports: make([]ImportReport, 0),
	}

	for _, imp := range tree.Imports() {
		report.Imports = append(report.Imports, ImportReport{
			Source:    imp.Source,
			Default:   imp.Default,
			Named:     imp.Named,
			Namespace: imp.Namespace,
		})
	}

	for _, hook := range tree.StateHooks() {
		report.StateHooks = append(report.StateHooks, StateHookReport{
			Name:    hook.Name.Text(),
			Setter:  hook.Setter.Text(),
			Initial: hook.Initial,
			Line:    hook.Name.Line(),
		})
	}

	if input.Function != "" {
		if match := tree.FindFunction(input.Function); match != nil {
			report.Function = &FunctionReport{
				Name: input.Function,
				Kind: match.Kind.String(),
				Line: match.Node.Line(),
			}
		} else {
			report.NotFound = append(report.NotFound, "function "+input.Function)
		}
	}

	if input.Variable != "" {
		if match := tree.FindVariable(input.Variable); match != nil {
			report.Variable = &VariableReport{
				Name:         input.Variable,
				Kind:         match.Kind.String(),
				OriginalName: match.OriginalName,
				Line:         match.Node.Line(),
			}
		} else {
			report.NotFound = append(report.NotFound, "variable "+input.Variable)
		}
	}

	if input.Element != "" {
		if element := tree.FindElement(input.Element); !element.IsZero() {
			report.Element = &ElementReport{
				Tag:         input.Element,
				SelfClosing: element.Kind() == jsx.KindJSXSelfClosing,
				Line:        element.Line(),
			}
		} else {
			report.NotFound = append(report.NotFound, "element "+input.Element)
		}
	}

	return jsonResult(report)
}

// CheckReport is the structured output of tsx_check.
type CheckReport struct {
	Dialect string      `json:"dialect"`
	Lines   int         `json:"lines"`
	Valid   bool        `json:"valid"`
	Issues  []jsx.Issue `json:"issues,omitempty"`
}

// handleCheck reports syntax issues without failing on them.
func handleCheck(ctx context.Context, _ *mcpsdk.CallToolRequest, input CheckInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateCodeInput(input.Code); err != nil {
		return errorResult(err)
	}

	dialect, err := resolveDialect(input.Dialect)
	if err != nil {
		return errorResult(err)
	}

	parser, err := jsx.NewParser(dialect)
	if err != nil {
		return errorResult(err)
	}

	tree, err := parser.Parse(ctx, []byte(input.Code))
	if err != nil {
		return errorResult(err)
	}
	defer tree.Close()

	return jsonResult(CheckReport{
		Dialect: string(dialect),
		Lines:   textutil.CountLines([]byte(input.Code)),
		Valid:   !tree.HasError(),
		Issues:  tree.Issues(),
	})
}

// handleNew originates a provider, store or extracted component.
func handleNew(ctx context.Context, _ *mcpsdk.CallToolRequest, input NewInput) (*mcpsdk.CallToolResult, ToolOutput, error) {
	dialect, err := resolveDialect(input.Dialect)
	if err != nil {
		return errorResult(err)
	}

	catalog, err := operations.NewCatalog(dialect)
	if err != nil {
		return errorResult(err)
	}

	req := operations.Request{
		Originate: &operations.OriginateOptions{Name: input.Name, Fields: input.Fields},
	}

	switch input.Template {
	case "provider":
		req.Type = operations.OpCreateContextProvider
	case "store":
		req.Type = operations.OpCreateStore
	case "component":
		if err := validateCodeInput(input.Code); err != nil {
			return errorResult(err)
		}

		req.Type = operations.OpExtractComponent
		req.Target = input.Target
		req.Props = input.Props
	default:
		return errorResult(ErrUnknownTemplate)
	}

	res, err := catalog.Execute(ctx, input.Code, req)
	if err != nil {
		return failureResult(err)
	}

	return jsonResult(res)
}
