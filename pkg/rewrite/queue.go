package rewrite

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsxmod/tsxmod/pkg/jsx"
	"github.com/tsxmod/tsxmod/pkg/textutil"
)

// Position selects where InsertJSX places new markup relative to its target.
type Position string

// Insertion positions.
const (
	PositionBefore     Position = "before"
	PositionAfter      Position = "after"
	PositionFirstChild Position = "firstChild"
	PositionLastChild  Position = "lastChild"
)

// PropAction selects what ModifyProp does with the attribute.
type PropAction string

// Prop actions.
const (
	PropSet    PropAction = "set"
	PropRemove PropAction = "remove"
)

// Queue accumulates edits against one frozen parse. High-level methods
// resolve their target nodes through the tree, synthesize text that
// preserves the anchor line's indentation, and push edit records; nothing
// touches the source until Generate.
type Queue struct {
	parser  *jsx.Parser
	tree    *jsx.Tree
	src     []byte
	edits   []Edit
	imports map[string]*ImportSpec
}

// NewQueue builds a queue over an already-parsed tree. The tree must stay
// open until Generate has been called.
func NewQueue(parser *jsx.Parser, tree *jsx.Tree) (*Queue, error) {
	if tree == nil {
		return nil, ErrNilTree
	}

	return &Queue{
		parser:  parser,
		tree:    tree,
		src:     tree.Source(),
		imports: make(map[string]*ImportSpec),
	}, nil
}

// Len returns the number of queued edits, pending imports included.
func (q *Queue) Len() int {
	return len(q.edits) + len(q.imports)
}

// Push appends a raw edit record.
func (q *Queue) Push(edit Edit) {
	q.edits = append(q.edits, edit)
}

// AddImport ensures the given import exists. Specs for the same source are
// merged with each other and with any existing statement; an existing
// statement is regenerated in place, a new one lands after the last import
// or at the top of the file.
func (q *Queue) AddImport(spec ImportSpec) {
	if pending, ok := q.imports[spec.Source]; ok {
		pending.merge(spec)

		return
	}

	q.imports[spec.Source] = &spec
}

// ensureReactImport queues a react named import unless the hook is already
// imported.
func (q *Queue) ensureReactImport(hook string) {
	if q.tree.HasNamedImport("react", hook) {
		return
	}

	q.AddImport(ImportSpec{Source: "react", Named: []string{hook}})
}

// resolveComponent finds the function the edit targets. An empty name
// resolves the default-exported function.
func (q *Queue) resolveComponent(name string) (*jsx.FunctionMatch, error) {
	if name == "" {
		match := q.tree.FindDefaultExportedFunction()
		if match == nil {
			return nil, notFound("default exported function", "")
		}

		return match, nil
	}

	match := q.tree.FindFunction(name)
	if match == nil {
		return nil, notFound("function", name)
	}

	return match, nil
}

// insertIntoBody queues stmt (one or more lines, unindented) at the start
// of the function body, indented to match the body's first statement.
func (q *Queue) insertIntoBody(match *jsx.FunctionMatch, stmt, desc string) error {
	body := match.Body()
	if body.IsZero() {
		return ErrExpressionBody
	}

	if body.NamedChildCount() > 0 {
		first := body.NamedChild(0)
		indent := string(textutil.LineIndent(q.src, first.Start()))

		q.Push(Edit{
			Kind:     EditInsert,
			Start:    first.Start(),
			End:      first.Start(),
			Text:     textutil.Indent(stmt, indent)[len(indent):] + "\n" + indent,
			Priority: PriorityDefault,
			Desc:     desc,
		})

		return nil
	}

	// Empty body: open it up across lines.
	outer := string(textutil.LineIndent(q.src, body.Start()))
	indent := outer + textutil.IndentStep
	pos := body.Start() + 1 // after '{'

	q.Push(Edit{
		Kind:     EditInsert,
		Start:    pos,
		End:      pos,
		Text:     "\n" + textutil.Indent(stmt, indent) + "\n" + outer,
		Priority: PriorityDefault,
		Desc:     desc,
	})

	return nil
}

// AddStateVariable inserts a useState declaration at the start of the
// target component's body and ensures the useState import.
func (q *Queue) AddStateVariable(component, name, setter, initial string) error {
	if name == "" {
		return fmt.Errorf("%w: state variable", ErrEmptyName)
	}

	match, err := q.resolveComponent(component)
	if err != nil {
		return err
	}

	if setter == "" {
		setter = "set" + strings.ToUpper(name[:1]) + name[1:]
	}

	if initial == "" {
		initial = "null"
	}

	stmt := fmt.Sprintf("const [%s, %s] = useState(%s);", name, setter, initial)

	err = q.insertIntoBody(match, stmt, "add state variable "+name)
	if err != nil {
		return err
	}

	q.ensureReactImport("useState")

	return nil
}

// AddFunction inserts a handler function. With a component name the handler
// becomes a const-arrow at the start of that component's body; without one
// it becomes a top-level function declaration after the imports.
func (q *Queue) AddFunction(component, name, params, body string) error {
	if component != "" {
		match, err := q.resolveComponent(component)
		if err != nil {
			return err
		}

		stmt := fmt.Sprintf("const %s = (%s) => {\n%s\n};", name, params, textutil.Indent(body, textutil.IndentStep))

		return q.insertIntoBody(match, stmt, "add function "+name)
	}

	text := fmt.Sprintf("function %s(%s) {\n%s\n}", name, params, textutil.Indent(body, textutil.IndentStep))
	pos := q.topLevelInsertPos()

	q.Push(Edit{
		Kind:     EditInsert,
		Start:    pos,
		End:      pos,
		Text:     "\n" + text + "\n",
		Priority: PriorityFunction,
		Desc:     "add function " + name,
	})

	return nil
}

// topLevelInsertPos returns the offset just after the last import
// statement, or the top of the file when there are none.
func (q *Queue) topLevelInsertPos() int {
	imports := q.tree.Imports()
	if len(imports) == 0 {
		return 0
	}

	return imports[len(imports)-1].Node.End()
}

// WrapElement surrounds the first element matching target with the wrapper
// component: one insert immediately before the element's start, one
// immediately after its end, plus an optional wrapper import.
func (q *Queue) WrapElement(target, wrapper string, props map[string]string, imp *ImportSpec) error {
	element := q.tree.FindElement(target)
	if element.IsZero() {
		return notFound("JSX element", target)
	}

	open := "<" + wrapper + renderProps(props) + ">"
	closing := "</" + wrapper + ">"

	q.Push(Edit{
		Kind:     EditInsert,
		Start:    element.Start(),
		End:      element.Start(),
		Text:     open,
		Priority: PriorityWrapOpen,
		Desc:     "wrap " + target + " open",
	})
	q.Push(Edit{
		Kind:     EditInsert,
		Start:    element.End(),
		End:      element.End(),
		Text:     closing,
		Priority: PriorityWrapClose,
		Desc:     "wrap " + target + " close",
	})

	if imp != nil {
		q.AddImport(*imp)
	}

	return nil
}

// renderProps renders a deterministic JSX attribute list. Values beginning
// with '{' pass through as expressions; everything else is quoted.
func renderProps(props map[string]string) string {
	if len(props) == 0 {
		return ""
	}

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		v := props[k]

		sb.WriteByte(' ')
		sb.WriteString(k)
		sb.WriteByte('=')

		if strings.HasPrefix(v, "{") || strings.HasPrefix(v, "\"") || strings.HasPrefix(v, "'") {
			sb.WriteString(v)
		} else {
			sb.WriteString("\"" + v + "\"")
		}
	}

	return sb.String()
}

// ModifyClassName sets the className attribute of the first element
// matching target. A non-empty template produces a template-literal
// expression value; otherwise staticClasses becomes a quoted string.
func (q *Queue) ModifyClassName(target, staticClasses, template string) error {
	value := "\"" + staticClasses + "\""
	if template != "" {
		value = "{`" + template + "`}"
	}

	return q.ModifyProp(target, "className", value, PropSet)
}

// ModifyProp sets or removes an attribute on the first element matching
// target. Set values are taken verbatim, so callers pass quoted strings or
// braced expressions.
func (q *Queue) ModifyProp(target, propName, propValue string, action PropAction) error {
	element := q.tree.FindElement(target)
	if element.IsZero() {
		return notFound("JSX element", target)
	}

	open := element
	if element.Kind() == jsx.KindJSXElement {
		open = jsxOpening(element)
		if open.IsZero() {
			return notFound("opening tag", target)
		}
	}

	attr := findAttribute(open, propName)

	switch action {
	case PropRemove:
		if attr.IsZero() {
			return notFound("prop "+propName+" on", target)
		}

		start := attr.Start()
		for start > 0 && (q.src[start-1] == ' ' || q.src[start-1] == '\t') {
			start--
		}

		q.Push(Edit{
			Kind:     EditReplace,
			Start:    start,
			End:      attr.End(),
			Priority: PriorityDefault,
			Desc:     "remove prop " + propName,
		})

		return nil
	default:
		if !attr.IsZero() {
			q.Push(Edit{
				Kind:     EditReplace,
				Start:    attr.Start(),
				End:      attr.End(),
				Text:     propName + "=" + propValue,
				Priority: PriorityDefault,
				Desc:     "set prop " + propName,
			})

			return nil
		}

		pos := attributeInsertPos(q.src, open)

		q.Push(Edit{
			Kind:     EditInsert,
			Start:    pos,
			End:      pos,
			Text:     " " + propName + "=" + propValue,
			Priority: PriorityDefault,
			Desc:     "add prop " + propName,
		})

		return nil
	}
}

// jsxOpening returns the opening tag of a jsx_element.
func jsxOpening(element jsx.Node) jsx.Node {
	for _, child := range element.NamedChildren() {
		if child.Kind() == jsx.KindJSXOpeningElement {
			return child
		}
	}

	return jsx.Node{}
}

// jsxClosing returns the closing tag of a jsx_element.
func jsxClosing(element jsx.Node) jsx.Node {
	children := element.NamedChildren()
	for i := len(children) - 1; i >= 0; i-- {
		if children[i].Kind() == jsx.KindJSXClosingElement {
			return children[i]
		}
	}

	return jsx.Node{}
}

// findAttribute returns the jsx_attribute named name on an opening or
// self-closing tag.
func findAttribute(open jsx.Node, name string) jsx.Node {
	for _, child := range open.NamedChildren() {
		if child.Kind() != jsx.KindJSXAttribute {
			continue
		}

		if attrName := child.NamedChild(0); !attrName.IsZero() && attrName.Text() == name {
			return child
		}
	}

	return jsx.Node{}
}

// attributeInsertPos returns the offset just before the tag terminator,
// skipping back over the slash of self-closing tags and any preceding
// whitespace so inserted attributes keep single spacing.
func attributeInsertPos(src []byte, open jsx.Node) int {
	pos := open.End() - 1 // before '>'
	if pos > 0 && src[pos-1] == '/' {
		pos--
	}

	for pos > 0 && (src[pos-1] == ' ' || src[pos-1] == '\t') {
		pos--
	}

	return pos
}

// InsertJSX places new markup relative to the first element matching
// target. Child positions require a non-self-closing element.
func (q *Queue) InsertJSX(target, jsxText string, position Position) error {
	element := q.tree.FindElement(target)
	if element.IsZero() {
		return notFound("JSX element", target)
	}

	return q.InsertJSXNode(element, jsxText, position, target)
}

// InsertJSXNode is InsertJSX against an already-resolved element node.
// desc labels the edit for diagnostics. The snippet is trimmed of
// surrounding whitespace; indentation is re-derived from the anchor.
func (q *Queue) InsertJSXNode(element jsx.Node, jsxText string, position Position, desc string) error {
	jsxText = strings.TrimSpace(jsxText)
	if jsxText == "" {
		return fmt.Errorf("%w: insert at %s", ErrEmptySnippet, desc)
	}

	elemIndent := string(textutil.LineIndent(q.src, element.Start()))

	switch position {
	case PositionBefore:
		q.Push(Edit{
			Kind:     EditInsert,
			Start:    element.Start(),
			End:      element.Start(),
			Text:     textutil.Indent(jsxText, elemIndent)[len(elemIndent):] + "\n" + elemIndent,
			Priority: PriorityDefault,
			Desc:     "insert JSX before " + desc,
		})
	case PositionAfter:
		q.Push(Edit{
			Kind:     EditInsert,
			Start:    element.End(),
			End:      element.End(),
			Text:     "\n" + textutil.Indent(jsxText, elemIndent),
			Priority: PriorityDefault,
			Desc:     "insert JSX after " + desc,
		})
	case PositionFirstChild:
		open := jsxOpening(element)
		if open.IsZero() {
			return ErrNoChildSlot
		}

		childIndent := elemIndent + textutil.IndentStep

		q.Push(Edit{
			Kind:     EditInsert,
			Start:    open.End(),
			End:      open.End(),
			Text:     "\n" + textutil.Indent(jsxText, childIndent),
			Priority: PriorityDefault,
			Desc:     "insert JSX as first child of " + desc,
		})
	case PositionLastChild:
		closing := jsxClosing(element)
		if closing.IsZero() {
			return ErrNoChildSlot
		}

		childIndent := elemIndent + textutil.IndentStep

		q.Push(Edit{
			Kind:     EditInsert,
			Start:    closing.Start(),
			End:      closing.Start(),
			Text:     textutil.Indent(jsxText, childIndent)[len(elemIndent):] + "\n" + elemIndent,
			Priority: PriorityDefault,
			Desc:     "insert JSX as last child of " + desc,
		})
	default:
		return fmt.Errorf("%w: position %q", ErrInvalidEdit, position)
	}

	return nil
}

// WrapReturnInConditional rewrites the component's first return expression
// as `condition ? (original) : (alternative)`.
func (q *Queue) WrapReturnInConditional(component, condition, alternative string) error {
	match, err := q.resolveComponent(component)
	if err != nil {
		return err
	}

	body := match.Body()
	if body.IsZero() {
		return ErrExpressionBody
	}

	var ret jsx.Node

	body.Walk(func(n jsx.Node) bool {
		if n.Kind() == jsx.KindReturnStatement {
			ret = n

			return false
		}

		return true
	})

	if ret.IsZero() || ret.NamedChildCount() == 0 {
		return notFound("return statement in", component)
	}

	arg := ret.NamedChild(0)

	original := arg.Text()
	if arg.Kind() != jsx.KindParenthesized {
		original = "(" + original + ")"
	}

	q.Push(Edit{
		Kind:     EditReplace,
		Start:    arg.Start(),
		End:      arg.End(),
		Text:     condition + " ? " + original + " : (" + alternative + ")",
		Priority: PriorityDefault,
		Desc:     "wrap return in conditional",
	})

	return nil
}
