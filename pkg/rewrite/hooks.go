package rewrite

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsxmod/tsxmod/pkg/textutil"
)

// renderDeps renders a hook dependency array literal.
func renderDeps(deps []string) string {
	return "[" + strings.Join(deps, ", ") + "]"
}

// AddUseEffect inserts a useEffect call at the start of the target
// component's body. A non-nil cleanup body becomes the effect's returned
// function; nil deps means the effect runs on every render.
func (q *Queue) AddUseEffect(component, body string, deps []string, cleanup string) error {
	match, err := q.resolveComponent(component)
	if err != nil {
		return err
	}

	var sb strings.Builder

	sb.WriteString("useEffect(() => {\n")
	sb.WriteString(textutil.Indent(body, textutil.IndentStep))
	sb.WriteString("\n")

	if cleanup != "" {
		sb.WriteString(textutil.IndentStep + "return () => {\n")
		sb.WriteString(textutil.Indent(cleanup, textutil.IndentStep+textutil.IndentStep))
		sb.WriteString("\n" + textutil.IndentStep + "};\n")
	}

	if deps == nil {
		sb.WriteString("});")
	} else {
		sb.WriteString("}, " + renderDeps(deps) + ");")
	}

	err = q.insertIntoBody(match, sb.String(), "add useEffect")
	if err != nil {
		return err
	}

	q.ensureReactImport("useEffect")

	return nil
}

// AddRef inserts a useRef declaration.
func (q *Queue) AddRef(component, name, initial string) error {
	match, err := q.resolveComponent(component)
	if err != nil {
		return err
	}

	if initial == "" {
		initial = "null"
	}

	stmt := fmt.Sprintf("const %s = useRef(%s);", name, initial)

	err = q.insertIntoBody(match, stmt, "add ref "+name)
	if err != nil {
		return err
	}

	q.ensureReactImport("useRef")

	return nil
}

// AddMemo inserts a useMemo declaration computing expr under the given
// dependency list.
func (q *Queue) AddMemo(component, name, expr string, deps []string) error {
	match, err := q.resolveComponent(component)
	if err != nil {
		return err
	}

	stmt := fmt.Sprintf("const %s = useMemo(() => %s, %s);", name, expr, renderDeps(deps))

	err = q.insertIntoBody(match, stmt, "add memo "+name)
	if err != nil {
		return err
	}

	q.ensureReactImport("useMemo")

	return nil
}

// AddCallback inserts a useCallback declaration.
func (q *Queue) AddCallback(component, name, params, body string, deps []string) error {
	match, err := q.resolveComponent(component)
	if err != nil {
		return err
	}

	stmt := fmt.Sprintf(
		"const %s = useCallback((%s) => {\n%s\n}, %s);",
		name, params, textutil.Indent(body, textutil.IndentStep), renderDeps(deps),
	)

	err = q.insertIntoBody(match, stmt, "add callback "+name)
	if err != nil {
		return err
	}

	q.ensureReactImport("useCallback")

	return nil
}

// AddReducer inserts a useReducer declaration plus a top-level reducer
// function. The reducer body switches over action.type with the provided
// case bodies, falling through to returning the current state.
func (q *Queue) AddReducer(component, state, dispatch, reducer, initial string, cases map[string]string) error {
	match, err := q.resolveComponent(component)
	if err != nil {
		return err
	}

	if dispatch == "" {
		dispatch = "dispatch"
	}

	if initial == "" {
		initial = "{}"
	}

	stmt := fmt.Sprintf("const [%s, %s] = useReducer(%s, %s);", state, dispatch, reducer, initial)

	err = q.insertIntoBody(match, stmt, "add reducer state "+state)
	if err != nil {
		return err
	}

	var body strings.Builder

	body.WriteString("switch (action.type) {\n")

	for _, actionType := range sortedKeys(cases) {
		body.WriteString(textutil.IndentStep + "case '" + actionType + "':\n")
		body.WriteString(textutil.Indent(cases[actionType], textutil.IndentStep+textutil.IndentStep))
		body.WriteString("\n")
	}

	body.WriteString(textutil.IndentStep + "default:\n")
	body.WriteString(textutil.IndentStep + textutil.IndentStep + "return state;\n")
	body.WriteString("}")

	err = q.AddFunction("", reducer, "state, action", body.String())
	if err != nil {
		return err
	}

	q.ensureReactImport("useReducer")

	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
