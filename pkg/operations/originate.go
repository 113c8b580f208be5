package operations

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/tsxmod/tsxmod/pkg/jsx"
	"github.com/tsxmod/tsxmod/pkg/rewrite"
	"github.com/tsxmod/tsxmod/pkg/textutil"
)

var providerTemplate = template.Must(template.New("provider").Parse(
	`import React, { createContext, useContext, useState } from 'react';

const {{.Name}}Context = createContext(null);

export function {{.Name}}Provider({ children }) {
{{- range .Fields}}
  const [{{.Name}}, {{.Setter}}] = useState({{.Initial}});
{{- end}}

  const value = { {{.ValueList}} };

  return (
    <{{.Name}}Context.Provider value={value}>
      {children}
    </{{.Name}}Context.Provider>
  );
}

export function use{{.Name}}() {
  const context = useContext({{.Name}}Context);
  if (context === null) {
    throw new Error('use{{.Name}} must be used within a {{.Name}}Provider');
  }
  return context;
}
`))

var storeTemplate = template.Must(template.New("store").Parse(
	`import React, { createContext, useContext, useReducer } from 'react';

const initialState = {
{{- range .Fields}}
  {{.Name}}: {{.Initial}},
{{- end}}
};

function {{.LowerName}}Reducer(state, action) {
  switch (action.type) {
{{- range .Fields}}
    case '{{.Action}}':
      return { ...state, {{.Name}}: action.payload };
{{- end}}
    case 'RESET':
      return initialState;
    default:
      return state;
  }
}

const {{.Name}}StoreContext = createContext(null);

export function {{.Name}}StoreProvider({ children }) {
  const [state, dispatch] = useReducer({{.LowerName}}Reducer, initialState);

  const value = { state, dispatch };

  return (
    <{{.Name}}StoreContext.Provider value={value}>
      {children}
    </{{.Name}}StoreContext.Provider>
  );
}

export function use{{.Name}}Store() {
  const context = useContext({{.Name}}StoreContext);
  if (context === null) {
    throw new Error('use{{.Name}}Store must be used within a {{.Name}}StoreProvider');
  }
  return context;
}
`))

var componentTemplate = template.Must(template.New("component").Parse(
	`import React from 'react';

export function {{.Name}}({{.Params}}) {
  return (
    {{.JSX}}
  );
}

export default {{.Name}};
`))

// templateField is one state slot prepared for rendering.
type templateField struct {
	Name    string
	Setter  string
	Initial string
	Action  string
}

func prepareFields(fields []StateField) []templateField {
	out := make([]templateField, 0, len(fields))

	for _, f := range fields {
		initial := f.Initial
		if initial == "" {
			initial = "null"
		}

		out = append(out, templateField{
			Name:    f.Name,
			Setter:  "set" + title(f.Name),
			Initial: initial,
			Action:  "SET_" + strings.ToUpper(f.Name),
		})
	}

	return out
}

func title(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

// fileExt picks the originated file's extension from the catalog dialect.
func (c *Catalog) fileExt() string {
	switch c.parser.Dialect() {
	case jsx.DialectJavaScript:
		return ".jsx"
	default:
		return ".tsx"
	}
}

// renderValidated executes a template and re-parses the output; an invalid
// render is a bug in the inputs and comes back as a ValidationError.
func (c *Catalog) renderValidated(ctx context.Context, tmpl *template.Template, data any) (string, error) {
	var sb strings.Builder

	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("operations: render %s: %w", tmpl.Name(), err)
	}

	out := sb.String()

	tree, err := c.parser.Parse(ctx, []byte(out))
	if err != nil {
		return "", err
	}
	defer tree.Close()

	if issues := tree.Issues(); len(issues) > 0 {
		return "", &rewrite.ValidationError{Issues: issues}
	}

	return out, nil
}

// createContextProvider originates a context + provider + accessor hook file.
func (c *Catalog) createContextProvider(ctx context.Context, req Request) (*Result, error) {
	if req.Originate == nil || req.Originate.Name == "" {
		return nil, fmt.Errorf("operations: %s: missing originate name", req.Type)
	}

	fields := prepareFields(req.Originate.Fields)

	values := make([]string, 0, len(fields)*2)
	for _, f := range fields {
		values = append(values, f.Name, f.Setter)
	}

	out, err := c.renderValidated(ctx, providerTemplate, map[string]any{
		"Name":      req.Originate.Name,
		"Fields":    fields,
		"ValueList": strings.Join(values, ", "),
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Success:  true,
		FileName: req.Originate.Name + "Context" + c.fileExt(),
		FileCode: out,
	}, nil
}

// createStore originates a reducer-backed store file.
func (c *Catalog) createStore(ctx context.Context, req Request) (*Result, error) {
	if req.Originate == nil || req.Originate.Name == "" {
		return nil, fmt.Errorf("operations: %s: missing originate name", req.Type)
	}

	name := req.Originate.Name

	out, err := c.renderValidated(ctx, storeTemplate, map[string]any{
		"Name":      name,
		"LowerName": strings.ToLower(name[:1]) + name[1:],
		"Fields":    prepareFields(req.Originate.Fields),
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Success:  true,
		FileName: name + "Store" + c.fileExt(),
		FileCode: out,
	}, nil
}

// extractComponent lifts the first element matching Target into its own
// component file and rewrites the original to render the new component.
// Props maps prop names to the expressions the call site passes down.
func (c *Catalog) extractComponent(ctx context.Context, code string, req Request) (*Result, error) {
	if req.Originate == nil || req.Originate.Name == "" {
		return nil, fmt.Errorf("operations: %s: missing originate name", req.Type)
	}

	name := req.Originate.Name

	tree, err := c.parser.Parse(ctx, []byte(code))
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	element := tree.FindElement(req.Target)
	if element.IsZero() {
		return nil, &rewrite.NotFoundError{What: "JSX element", Name: req.Target}
	}

	propNames := make([]string, 0, len(req.Props))
	for prop := range req.Props {
		propNames = append(propNames, prop)
	}

	sort.Strings(propNames)

	params := ""
	if len(propNames) > 0 {
		params = "{ " + strings.Join(propNames, ", ") + " }"
	}

	origIndent := string(textutil.LineIndent(tree.Source(), element.Start()))

	fileCode, err := c.renderValidated(ctx, componentTemplate, map[string]any{
		"Name":   name,
		"Params": params,
		"JSX":    reindent(element.Text(), origIndent, "    "),
	})
	if err != nil {
		return nil, err
	}

	queue, err := rewrite.NewQueue(c.parser, tree)
	if err != nil {
		return nil, err
	}

	var call strings.Builder

	call.WriteString("<" + name)

	for _, prop := range propNames {
		call.WriteString(" " + prop + "={" + req.Props[prop] + "}")
	}

	call.WriteString(" />")

	queue.Push(rewrite.Edit{
		Kind:     rewrite.EditReplace,
		Start:    element.Start(),
		End:      element.End(),
		Text:     call.String(),
		Priority: rewrite.PriorityDefault,
		Desc:     "replace extracted " + req.Target,
	})
	queue.AddImport(rewrite.ImportSpec{Source: "./" + name, Default: name})

	out, err := queue.Generate(ctx)
	if err != nil {
		return nil, err
	}

	return &Result{
		Success:  true,
		Code:     out,
		FileName: name + c.fileExt(),
		FileCode: fileCode,
	}, nil
}

// reindent rebases a multi-line snippet from its original line indentation
// onto a new one; the first line carries no indentation either way.
func reindent(text, oldIndent, newIndent string) string {
	if oldIndent == newIndent {
		return text
	}

	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimPrefix(lines[i], oldIndent)
		if trimmed != "" {
			trimmed = newIndent + trimmed
		}

		lines[i] = trimmed
	}

	return strings.Join(lines, "\n")
}
