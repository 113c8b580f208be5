package operations

import (
	"context"
	"fmt"
	"strings"

	"github.com/tsxmod/tsxmod/pkg/jsx"
	"github.com/tsxmod/tsxmod/pkg/rewrite"
	"github.com/tsxmod/tsxmod/pkg/textutil"
)

// loginFormBuilder renders the unauthenticated branch for one visual style.
// Implementations receive the base indentation of the rendered block.
type loginFormBuilder interface {
	form(opts AuthOptions, indent string) string
	logoutButton() string
}

var loginFormBuilders = map[string]loginFormBuilder{
	"":       simpleForm{},
	"simple": simpleForm{},
	"styled": styledForm{},
}

// addAuthentication scaffolds a full login/logout flow in five steps:
// auth state, handler functions, a style-specific login form, a conditional
// around the existing return, and a logout button inside the authenticated
// branch. All edits land on one queue, so a failure at any step leaves the
// input untouched and reports how many steps had completed.
func (c *Catalog) addAuthentication(ctx context.Context, code string, req Request) (*Result, error) {
	opts := AuthOptions{}
	if req.Auth != nil {
		opts = *req.Auth
	}

	builder, ok := loginFormBuilders[opts.Style]
	if !ok {
		return nil, fmt.Errorf("operations: unknown login form style %q", opts.Style)
	}

	tree, err := c.parser.Parse(ctx, []byte(code))
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	queue, err := rewrite.NewQueue(c.parser, tree)
	if err != nil {
		return nil, err
	}

	completed := 0

	fail := func(step string, err error) (*Result, error) {
		return nil, &CompositeError{Step: step, Completed: completed, Err: err}
	}

	// Step 1: auth state.
	if err := queue.AddStateVariable(req.Component, "isLoggedIn", "setIsLoggedIn", "false"); err != nil {
		return fail("auth state", err)
	}

	if opts.WithEmail {
		if err := queue.AddStateVariable(req.Component, "email", "setEmail", "''"); err != nil {
			return fail("auth state", err)
		}
	}

	if err := queue.AddStateVariable(req.Component, "password", "setPassword", "''"); err != nil {
		return fail("auth state", err)
	}

	completed++

	// Step 2: handlers.
	var logout strings.Builder

	logout.WriteString("setIsLoggedIn(false);")

	if opts.WithEmail {
		logout.WriteString("\nsetEmail('');")
	}

	logout.WriteString("\nsetPassword('');")

	if err := queue.AddFunction(req.Component, "handleLogin", "", "setIsLoggedIn(true);"); err != nil {
		return fail("handlers", err)
	}

	if err := queue.AddFunction(req.Component, "handleLogout", "", logout.String()); err != nil {
		return fail("handlers", err)
	}

	completed++

	// Step 3: locate the return to branch on.
	arg, err := returnArgument(tree, req.Component)
	if err != nil {
		return fail("locate return", err)
	}

	completed++

	// Step 4: inject the logout button into the authenticated branch text.
	authed, err := injectLogoutButton(tree.Source(), arg, builder.logoutButton())
	if err != nil {
		return fail("logout button", err)
	}

	completed++

	// Step 5: wrap the return in the auth conditional.
	retIndent := string(textutil.LineIndent(tree.Source(), arg.Start()))
	form := builder.form(opts, retIndent+textutil.IndentStep)

	if arg.Kind() != jsx.KindParenthesized {
		authed = "(" + authed + ")"
	}

	queue.Push(rewrite.Edit{
		Kind:     rewrite.EditReplace,
		Start:    arg.Start(),
		End:      arg.End(),
		Text:     "isLoggedIn ? " + authed + " : (\n" + form + "\n" + retIndent + ")",
		Priority: rewrite.PriorityDefault,
		Desc:     "auth conditional",
	})

	completed++

	out, err := queue.Generate(ctx)
	if err != nil {
		return fail("generate", err)
	}

	return &Result{Success: true, Code: out}, nil
}

// returnArgument resolves the target component and the expression of its
// first return statement.
func returnArgument(tree *jsx.Tree, component string) (jsx.Node, error) {
	var match *jsx.FunctionMatch

	if component == "" {
		match = tree.FindDefaultExportedFunction()
		if match == nil {
			return jsx.Node{}, &rewrite.NotFoundError{What: "default exported function"}
		}
	} else {
		match = tree.FindFunction(component)
		if match == nil {
			return jsx.Node{}, &rewrite.NotFoundError{What: "function", Name: component}
		}
	}

	body := match.Body()
	if body.IsZero() {
		return jsx.Node{}, rewrite.ErrExpressionBody
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
		return jsx.Node{}, &rewrite.NotFoundError{What: "return statement in", Name: component}
	}

	return ret.NamedChild(0), nil
}

// injectLogoutButton splices button as the first child of the root element
// of the returned JSX, working on the text of the return expression so the
// surrounding conditional stays a single edit.
func injectLogoutButton(src []byte, arg jsx.Node, button string) (string, error) {
	var root jsx.Node

	arg.Walk(func(n jsx.Node) bool {
		if n.Kind() == jsx.KindJSXElement || n.Kind() == jsx.KindJSXSelfClosing {
			root = n

			return false
		}

		return true
	})

	if root.IsZero() {
		return "", &rewrite.NotFoundError{What: "JSX element in return"}
	}

	if root.Kind() == jsx.KindJSXSelfClosing {
		return "", rewrite.ErrNoChildSlot
	}

	var open jsx.Node

	for _, child := range root.NamedChildren() {
		if child.Kind() == jsx.KindJSXOpeningElement {
			open = child

			break
		}
	}

	if open.IsZero() {
		return "", &rewrite.NotFoundError{What: "opening tag in return"}
	}

	indent := string(textutil.LineIndent(src, root.Start())) + textutil.IndentStep
	rel := open.End() - arg.Start()
	text := arg.Text()

	return text[:rel] + "\n" + indent + button + text[rel:], nil
}

// simpleForm renders an unstyled login form.
type simpleForm struct{}

func (simpleForm) form(opts AuthOptions, indent string) string {
	inner := indent + textutil.IndentStep

	var sb strings.Builder

	sb.WriteString(indent + "<div>\n")
	sb.WriteString(inner + "<h2>Login</h2>\n")

	if opts.WithEmail {
		sb.WriteString(inner + `<input type="email" value={email} onChange={(e) => setEmail(e.target.value)} placeholder="Email" />` + "\n")
	}

	sb.WriteString(inner + `<input type="password" value={password} onChange={(e) => setPassword(e.target.value)} placeholder="Password" />` + "\n")

	sb.WriteString(inner + "<button onClick={handleLogin}>Log in</button>\n")
	sb.WriteString(indent + "</div>")

	return sb.String()
}

func (simpleForm) logoutButton() string {
	return "<button onClick={handleLogout}>Log out</button>"
}

// styledForm renders the same structure with BEM-style class names.
type styledForm struct{}

func (styledForm) form(opts AuthOptions, indent string) string {
	inner := indent + textutil.IndentStep

	var sb strings.Builder

	sb.WriteString(indent + `<div className="login-form">` + "\n")
	sb.WriteString(inner + `<h2 className="login-form__title">Login</h2>` + "\n")

	if opts.WithEmail {
		sb.WriteString(inner + `<input className="login-form__input" type="email" value={email} onChange={(e) => setEmail(e.target.value)} placeholder="Email" />` + "\n")
	}

	sb.WriteString(inner + `<input className="login-form__input" type="password" value={password} onChange={(e) => setPassword(e.target.value)} placeholder="Password" />` + "\n")

	sb.WriteString(inner + `<button className="login-form__button" onClick={handleLogin}>Log in</button>` + "\n")
	sb.WriteString(indent + "</div>")

	return sb.String()
}

func (styledForm) logoutButton() string {
	return `<button className="login-form__logout" onClick={handleLogout}>Log out</button>`
}
