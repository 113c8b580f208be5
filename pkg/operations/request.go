// Package operations exposes the transformation catalog: a JSON request
// format, per-operation handlers built on pkg/rewrite, a composite
// authentication scaffold, template-driven file origination, and sequential
// batch execution. Handlers return typed results; they never panic on
// malformed or partial input.
package operations

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/tsxmod/tsxmod/pkg/rewrite"
)

//go:embed schema.json
var requestSchema []byte

// OpType discriminates operation requests.
type OpType string

// Catalog operation types.
const (
	OpAddImport             OpType = "add_import"
	OpAddState              OpType = "add_state"
	OpWrapElement           OpType = "wrap_element"
	OpModifyClassName       OpType = "modify_classname"
	OpInsertJSX             OpType = "insert_jsx"
	OpAddUseEffect          OpType = "add_use_effect"
	OpModifyProp            OpType = "modify_prop"
	OpAddRef                OpType = "add_ref"
	OpAddMemo               OpType = "add_memo"
	OpAddCallback           OpType = "add_callback"
	OpAddReducer            OpType = "add_reducer"
	OpWrapInConditional     OpType = "wrap_in_conditional"
	OpAddFunction           OpType = "add_function"
	OpAddAuthentication     OpType = "add_authentication"
	OpCreateContextProvider OpType = "create_context_provider"
	OpCreateStore           OpType = "create_store"
	OpExtractComponent      OpType = "extract_component"
)

// AuthOptions tunes the composite authentication scaffold.
type AuthOptions struct {
	// Style selects the login-form builder: "simple" (default) or "styled".
	Style string `json:"style,omitempty"`
	// WithEmail adds an email state variable and form field. The password
	// field is always scaffolded; only email is opt-in.
	WithEmail bool `json:"withEmail,omitempty"`
}

// StateField is one state slot of an originated provider or store.
type StateField struct {
	Name    string `json:"name"`
	Initial string `json:"initial,omitempty"`
}

// OriginateOptions names and shapes an originated file.
type OriginateOptions struct {
	Name   string       `json:"name"`
	Fields []StateField `json:"fields,omitempty"`
}

// Request is the tagged union of all catalog operations, keyed by Type.
// Fields beyond Type are read per operation; unread fields are ignored.
type Request struct {
	Type OpType `json:"type"`

	// Component names the target function for body-level edits. Empty
	// resolves the default-exported function.
	Component string `json:"component,omitempty"`

	Import *rewrite.ImportSpec `json:"import,omitempty"`

	Name    string `json:"name,omitempty"`
	Setter  string `json:"setter,omitempty"`
	Initial string `json:"initial,omitempty"`

	Target        string             `json:"target,omitempty"`
	Wrapper       string             `json:"wrapper,omitempty"`
	Props         map[string]string  `json:"props,omitempty"`
	StaticClasses string             `json:"staticClasses,omitempty"`
	Template      string             `json:"template,omitempty"`
	JSX           string             `json:"jsx,omitempty"`
	Position      rewrite.Position   `json:"position,omitempty"`
	Prop          string             `json:"prop,omitempty"`
	Value         string             `json:"value,omitempty"`
	Action        rewrite.PropAction `json:"action,omitempty"`

	Body     string            `json:"body,omitempty"`
	Cleanup  string            `json:"cleanup,omitempty"`
	Deps     []string          `json:"deps,omitempty"`
	Expr     string            `json:"expr,omitempty"`
	Params   string            `json:"params,omitempty"`
	Reducer  string            `json:"reducer,omitempty"`
	Dispatch string            `json:"dispatch,omitempty"`
	Cases    map[string]string `json:"cases,omitempty"`

	Condition   string `json:"condition,omitempty"`
	Alternative string `json:"alternative,omitempty"`

	Auth      *AuthOptions      `json:"auth,omitempty"`
	Originate *OriginateOptions `json:"originate,omitempty"`
}

// ParseRequest validates raw JSON against the embedded request schema and
// decodes it. Schema violations come back as one InvalidRequestError listing
// every failed constraint.
func ParseRequest(data []byte) (Request, error) {
	var req Request

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(requestSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return req, fmt.Errorf("operations: request validation failed: %w", err)
	}

	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			violations = append(violations, desc.String())
		}

		return req, &InvalidRequestError{Violations: violations}
	}

	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("operations: decode request: %w", err)
	}

	return req, nil
}

// ParseRequests decodes a JSON array of requests, validating each element.
func ParseRequests(data []byte) ([]Request, error) {
	var raw []json.RawMessage

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("operations: decode request list: %w", err)
	}

	reqs := make([]Request, 0, len(raw))

	for i, item := range raw {
		req, err := ParseRequest(item)
		if err != nil {
			return nil, fmt.Errorf("operations: request %d: %w", i, err)
		}

		reqs = append(reqs, req)
	}

	return reqs, nil
}

// InvalidRequestError reports JSON Schema violations in a raw request.
type InvalidRequestError struct {
	Violations []string
}

func (e *InvalidRequestError) Error() string {
	return "operations: invalid request: " + strings.Join(e.Violations, "; ")
}
