package jsx

import (
	"strings"
)

// FunctionKind tags the surface shape a function was found in.
type FunctionKind int

// Function shapes recognized by FindFunction.
const (
	// FunctionDeclaration is `function name() {}`.
	FunctionDeclaration FunctionKind = iota
	// FunctionArrow is `const name = () => {}`.
	FunctionArrow
	// FunctionExpression is `const name = function() {}`.
	FunctionExpression
)

// String returns the shape name.
func (k FunctionKind) String() string {
	switch k {
	case FunctionDeclaration:
		return "declaration"
	case FunctionArrow:
		return "arrow"
	case FunctionExpression:
		return "expression"
	default:
		return "unknown"
	}
}

// FunctionMatch is the result of a function lookup. Declarator is non-zero
// only for arrow and expression shapes bound through a variable declarator.
type FunctionMatch struct {
	Kind       FunctionKind
	Node       Node
	Declarator Node
}

// Body returns the function's statement block, or a zero Node for
// expression-bodied arrows.
func (m *FunctionMatch) Body() Node {
	body := m.Node.Field("body")
	if body.IsZero() || body.Kind() != KindStatementBlock {
		return Node{}
	}

	return body
}

// FindFunction locates a function binding by name across the three surface
// shapes: declaration, const-arrow, and const-function-expression. When
// several bindings share the name, the first one in pre-order wins; lookup
// is purely syntactic and not scope aware.
func (t *Tree) FindFunction(name string) *FunctionMatch {
	if t == nil {
		return nil
	}

	var match *FunctionMatch

	t.Root().Walk(func(n Node) bool {
		switch n.Kind() {
		case KindFunctionDeclaration:
			if ident := n.Field("name"); !ident.IsZero() && ident.Text() == name {
				match = &FunctionMatch{Kind: FunctionDeclaration, Node: n}

				return false
			}
		case KindVariableDeclarator:
			ident := n.Field("name")
			if ident.IsZero() || ident.Kind() != KindIdentifier || ident.Text() != name {
				return true
			}

			value := n.Field("value")
			if value.IsZero() {
				return true
			}

			switch value.Kind() {
			case KindArrowFunction:
				match = &FunctionMatch{Kind: FunctionArrow, Node: value, Declarator: n}

				return false
			case KindFunctionExpression:
				match = &FunctionMatch{Kind: FunctionExpression, Node: value, Declarator: n}

				return false
			}
		}

		return true
	})

	return match
}

// VariableKind tags the binding shape a variable was found in.
type VariableKind int

// Variable binding shapes recognized by FindVariable.
const (
	// VariableSimple is `const name = ...`.
	VariableSimple VariableKind = iota
	// VariableArrayDestructure is `const [name, other] = ...`.
	VariableArrayDestructure
	// VariableObjectDestructure is shorthand `const { name } = ...`.
	VariableObjectDestructure
	// VariableObjectDestructureRenamed is `const { original: name } = ...`.
	VariableObjectDestructureRenamed
)

// String returns the binding shape name.
func (k VariableKind) String() string {
	switch k {
	case VariableSimple:
		return "simple"
	case VariableArrayDestructure:
		return "array_destructure"
	case VariableObjectDestructure:
		return "object_destructure"
	case VariableObjectDestructureRenamed:
		return "object_destructure_renamed"
	default:
		return "unknown"
	}
}

// VariableMatch is the result of a variable lookup. Binding is the exact
// identifier node; Node is the enclosing variable declarator. OriginalName
// is populated only for the renamed-destructure shape and carries the
// pre-rename property name.
type VariableMatch struct {
	Kind         VariableKind
	Node         Node
	Binding      Node
	OriginalName string
}

// FindVariable locates a variable binding by its local name across plain,
// array-destructured, object-shorthand, and object-renamed shapes.
// First pre-order occurrence wins.
func (t *Tree) FindVariable(name string) *VariableMatch {
	if t == nil {
		return nil
	}

	var match *VariableMatch

	t.Root().Walk(func(n Node) bool {
		if n.Kind() != KindVariableDeclarator {
			return true
		}

		pattern := n.Field("name")
		if pattern.IsZero() {
			return true
		}

		if found := matchBindingPattern(n, pattern, name); found != nil {
			match = found

			return false
		}

		return true
	})

	return match
}

// matchBindingPattern inspects one declarator's binding pattern for name.
func matchBindingPattern(declarator, pattern Node, name string) *VariableMatch {
	switch pattern.Kind() {
	case KindIdentifier:
		if pattern.Text() == name {
			return &VariableMatch{Kind: VariableSimple, Node: declarator, Binding: pattern}
		}
	case KindArrayPattern:
		for _, elem := range pattern.NamedChildren() {
			if elem.Kind() == KindIdentifier && elem.Text() == name {
				return &VariableMatch{Kind: VariableArrayDestructure, Node: declarator, Binding: elem}
			}
		}
	case KindObjectPattern:
		for _, prop := range pattern.NamedChildren() {
			switch prop.Kind() {
			case KindShorthandPattern:
				if prop.Text() == name {
					return &VariableMatch{Kind: VariableObjectDestructure, Node: declarator, Binding: prop}
				}
			case KindPairPattern:
				value := prop.Field("value")
				if !value.IsZero() && value.Text() == name {
					return &VariableMatch{
						Kind:         VariableObjectDestructureRenamed,
						Node:         declarator,
						Binding:      value,
						OriginalName: prop.Field("key").Text(),
					}
				}
			}
		}
	}

	return nil
}

// FindElement locates the first JSX element whose tag matches tagName.
// Lowercase HTML tags and capitalized component references both match; for
// member tags like Nav.Item the full dotted text is compared.
func (t *Tree) FindElement(tagName string) Node {
	if t == nil {
		return Node{}
	}

	var match Node

	t.Root().Walk(func(n Node) bool {
		switch n.Kind() {
		case KindJSXElement:
			if open := openingElement(n); !open.IsZero() && tagMatches(open, tagName) {
				match = n

				return false
			}
		case KindJSXSelfClosing:
			if tagMatches(n, tagName) {
				match = n

				return false
			}
		}

		return true
	})

	return match
}

// openingElement returns the jsx_opening_element child of a jsx_element.
func openingElement(element Node) Node {
	for _, child := range element.NamedChildren() {
		if child.Kind() == KindJSXOpeningElement {
			return child
		}
	}

	return Node{}
}

// closingElement returns the jsx_closing_element child of a jsx_element.
func closingElement(element Node) Node {
	children := element.NamedChildren()
	for i := len(children) - 1; i >= 0; i-- {
		if children[i].Kind() == KindJSXClosingElement {
			return children[i]
		}
	}

	return Node{}
}

func tagMatches(tagged Node, tagName string) bool {
	name := tagged.Field("name")

	return !name.IsZero() && name.Text() == tagName
}

// ImportInfo is the decomposed view of one import statement.
type ImportInfo struct {
	Node      Node
	Source    string
	Default   string
	Named     []string
	Namespace string
}

// Imports returns every top-level import statement in document order,
// decomposed into source, default, named, and namespace parts.
func (t *Tree) Imports() []ImportInfo {
	if t == nil {
		return nil
	}

	var imports []ImportInfo

	for _, child := range t.Root().NamedChildren() {
		if child.Kind() != KindImportStatement {
			continue
		}

		imports = append(imports, parseImport(child))
	}

	return imports
}

func parseImport(stmt Node) ImportInfo {
	info := ImportInfo{
		Node:   stmt,
		Source: unquote(stmt.Field("source").Text()),
	}

	for _, child := range stmt.NamedChildren() {
		if child.Kind() != KindImportClause {
			continue
		}

		for _, clause := range child.NamedChildren() {
			switch clause.Kind() {
			case KindIdentifier:
				info.Default = clause.Text()
			case KindNamespaceImport:
				for _, nsChild := range clause.NamedChildren() {
					if nsChild.Kind() == KindIdentifier {
						info.Namespace = nsChild.Text()
					}
				}
			case KindNamedImports:
				for _, spec := range clause.NamedChildren() {
					if spec.Kind() != KindImportSpecifier {
						continue
					}

					// The alias is the local name when present.
					if alias := spec.Field("alias"); !alias.IsZero() {
						info.Named = append(info.Named, spec.Field("name").Text()+" as "+alias.Text())

						continue
					}

					info.Named = append(info.Named, spec.Field("name").Text())
				}
			}
		}
	}

	return info
}

// HasNamedImport reports whether name is imported from source by any
// existing import statement.
func (t *Tree) HasNamedImport(source, name string) bool {
	for _, imp := range t.Imports() {
		if imp.Source != source {
			continue
		}

		for _, named := range imp.Named {
			if named == name || strings.HasSuffix(named, " as "+name) {
				return true
			}
		}
	}

	return false
}

func unquote(s string) string {
	if len(s) >= 2 {
		switch s[0] {
		case '\'', '"', '`':
			if s[len(s)-1] == s[0] {
				return s[1 : len(s)-1]
			}
		}
	}

	return s
}

// StateHook is one recognized `const [x, setX] = useState(initial)` pattern.
type StateHook struct {
	Name       Node
	Setter     Node
	Initial    string
	Declarator Node
}

// StateHooks returns every useState destructuring pattern in the tree, in
// document order. The callee text must be exactly useState; aliased or
// namespaced calls are not recognized.
func (t *Tree) StateHooks() []StateHook {
	if t == nil {
		return nil
	}

	var hooks []StateHook

	t.Root().Walk(func(n Node) bool {
		if n.Kind() != KindVariableDeclarator {
			return true
		}

		hook, ok := matchStateHook(n)
		if ok {
			hooks = append(hooks, hook)
		}

		return true
	})

	return hooks
}

func matchStateHook(declarator Node) (StateHook, bool) {
	pattern := declarator.Field("name")
	if pattern.IsZero() || pattern.Kind() != KindArrayPattern {
		return StateHook{}, false
	}

	idents := pattern.NamedChildren()
	if len(idents) != 2 || idents[0].Kind() != KindIdentifier || idents[1].Kind() != KindIdentifier {
		return StateHook{}, false
	}

	value := declarator.Field("value")
	if value.IsZero() || value.Kind() != KindCallExpression {
		return StateHook{}, false
	}

	callee := value.Field("function")
	if callee.IsZero() || callee.Text() != "useState" {
		return StateHook{}, false
	}

	hook := StateHook{
		Name:       idents[0],
		Setter:     idents[1],
		Declarator: declarator,
	}

	if args := value.Field("arguments"); !args.IsZero() && args.NamedChildCount() > 0 {
		hook.Initial = args.NamedChild(0).Text()
	}

	return hook, true
}

// FindDefaultExportedFunction locates the function behind `export default`.
// Both inline (`export default function App() {}`) and referenced
// (`export default App`) forms resolve; the referenced form reuses
// FindFunction semantics.
func (t *Tree) FindDefaultExportedFunction() *FunctionMatch {
	if t == nil {
		return nil
	}

	for _, child := range t.Root().NamedChildren() {
		if child.Kind() != KindExportStatement {
			continue
		}

		if !strings.HasPrefix(strings.TrimSpace(child.Text()), "export default") {
			continue
		}

		if decl := child.Field("declaration"); !decl.IsZero() && decl.Kind() == KindFunctionDeclaration {
			return &FunctionMatch{Kind: FunctionDeclaration, Node: decl}
		}

		if value := child.Field("value"); !value.IsZero() {
			switch value.Kind() {
			case KindIdentifier:
				return t.FindFunction(value.Text())
			case KindArrowFunction:
				return &FunctionMatch{Kind: FunctionArrow, Node: value}
			case KindFunctionExpression:
				return &FunctionMatch{Kind: FunctionExpression, Node: value}
			}
		}
	}

	return nil
}
