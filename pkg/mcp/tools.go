package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tsxmod/tsxmod/pkg/jsx"
	"github.com/tsxmod/tsxmod/pkg/operations"
)

// Tool name constants.
const (
	ToolNameApply   = "tsx_apply"
	ToolNameInspect = "tsx_inspect"
	ToolNameCheck   = "tsx_check"
	ToolNameNew     = "tsx_new"
)

// Input size limits.
const (
	// MaxCodeInputBytes is the maximum allowed size for inline code input (1 MB).
	MaxCodeInputBytes = 1 << 20
)

// Sentinel errors for tool input validation.
var (
	// ErrEmptyCode indicates the code parameter is empty.
	ErrEmptyCode = errors.New("code parameter is required and must not be empty")
	// ErrEmptyOperations indicates the operations parameter is empty.
	ErrEmptyOperations = errors.New("operations parameter is required and must not be empty")
	// ErrCodeTooLarge indicates the code input exceeds the size limit.
	ErrCodeTooLarge = errors.New("code input exceeds maximum size")
	// ErrUnsupportedDialect indicates the dialect is not javascript, typescript or tsx.
	ErrUnsupportedDialect = errors.New("unsupported dialect")
	// ErrUnknownTemplate indicates the tsx_new template name is not recognized.
	ErrUnknownTemplate = errors.New("unknown template (expected provider, store or component)")
)

// Input types (auto-generate JSON schemas via struct tags).

// ApplyInput is the input schema for the tsx_apply tool.
type ApplyInput struct {
	Code       string          `json:"code"              jsonschema:"JSX/TSX source to transform"`
	Operations json.RawMessage `json:"operations"        jsonschema:"JSON array of operation requests applied in order"`
	Dialect    string          `json:"dialect,omitempty" jsonschema:"source dialect: javascript typescript or tsx (default tsx)"`
}

// InspectInput is the input schema for the tsx_inspect tool.
type InspectInput struct {
	Code     string `json:"code"               jsonschema:"JSX/TSX source to inspect"`
	Dialect  string `json:"dialect,omitempty"  jsonschema:"source dialect: javascript typescript or tsx (default tsx)"`
	Function string `json:"function,omitempty" jsonschema:"function or component name to locate"`
	Variable string `json:"variable,omitempty" jsonschema:"variable binding name to locate"`
	Element  string `json:"element,omitempty"  jsonschema:"JSX tag or component name to locate"`
}

// CheckInput is the input schema for the tsx_check tool.
type CheckInput struct {
	Code    string `json:"code"              jsonschema:"JSX/TSX source to syntax-check"`
	Dialect string `json:"dialect,omitempty" jsonschema:"source dialect: javascript typescript or tsx (default tsx)"`
}

// NewInput is the input schema for the tsx_new tool.
type NewInput struct {
	Template string                  `json:"template"          jsonschema:"what to originate: provider store or component"`
	Name     string                  `json:"name"              jsonschema:"PascalCase name of the originated artifact"`
	Fields   []operations.StateField `json:"fields,omitempty"  jsonschema:"state fields for provider and store templates"`
	Code     string                  `json:"code,omitempty"    jsonschema:"source containing the element to extract (component template)"`
	Target   string                  `json:"target,omitempty"  jsonschema:"element to extract (component template)"`
	Props    map[string]string       `json:"props,omitempty"   jsonschema:"prop name to call-site expression map (component template)"`
	Dialect  string                  `json:"dialect,omitempty" jsonschema:"source dialect: javascript typescript or tsx (default tsx)"`
}

// Output type (used as structured output for generic AddTool).

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

// failureResult builds an isError result carrying the structured failure
// shape, so callers see per-issue errors and completed-step counts.
func failureResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	failure := operations.FailureResult(err)

	data, encErr := json.MarshalIndent(failure, "", "  ")
	if encErr != nil {
		return errorResult(err)
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
		IsError: true,
	}, ToolOutput{Data: failure}, nil
}

// validateCodeInput checks common code input constraints.
func validateCodeInput(code string) error {
	if code == "" {
		return ErrEmptyCode
	}

	if len(code) > MaxCodeInputBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrCodeTooLarge, len(code), MaxCodeInputBytes)
	}

	return nil
}

// resolveDialect maps the wire dialect string onto a parser dialect,
// defaulting to tsx.
func resolveDialect(name string) (jsx.Dialect, error) {
	switch name {
	case "":
		return jsx.DialectTSX, nil
	case string(jsx.DialectJavaScript), string(jsx.DialectTypeScript), string(jsx.DialectTSX):
		return jsx.Dialect(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDialect, name)
	}
}
