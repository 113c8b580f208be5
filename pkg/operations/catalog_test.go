package operations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsxmod/tsxmod/pkg/jsx"
	"github.com/tsxmod/tsxmod/pkg/operations"
	"github.com/tsxmod/tsxmod/pkg/rewrite"
)

const appSource = `import React from 'react';

function App() {
  const [count, setCount] = useState(0);
  return (
    <div className="app">
      <span>hello</span>
    </div>
  );
}

export default App;
`

func newCatalog(t *testing.T) *operations.Catalog {
	t.Helper()

	catalog, err := operations.NewCatalog(jsx.DialectTSX)
	require.NoError(t, err)

	return catalog
}

func TestParseRequest(t *testing.T) {
	t.Parallel()

	req, err := operations.ParseRequest([]byte(`{
		"type": "add_state",
		"component": "App",
		"name": "user",
		"initial": "null"
	}`))
	require.NoError(t, err)
	assert.Equal(t, operations.OpAddState, req.Type)
	assert.Equal(t, "user", req.Name)
}

func TestParseRequest_SchemaViolations(t *testing.T) {
	t.Parallel()

	var invalid *operations.InvalidRequestError

	// Unknown discriminator.
	_, err := operations.ParseRequest([]byte(`{"type": "frobnicate"}`))
	require.ErrorAs(t, err, &invalid)

	// Missing per-type required field.
	_, err = operations.ParseRequest([]byte(`{"type": "add_state"}`))
	require.ErrorAs(t, err, &invalid)

	_, err = operations.ParseRequest([]byte(`{"type": "insert_jsx", "target": "div", "jsx": "<p />", "position": "inside"}`))
	require.ErrorAs(t, err, &invalid)

	// Required strings may not be empty.
	_, err = operations.ParseRequest([]byte(`{"type": "add_state", "name": ""}`))
	require.ErrorAs(t, err, &invalid)

	_, err = operations.ParseRequest([]byte(`{"type": "insert_jsx", "target": "p", "jsx": "", "position": "before"}`))
	require.ErrorAs(t, err, &invalid)
}

func TestParseRequests(t *testing.T) {
	t.Parallel()

	reqs, err := operations.ParseRequests([]byte(`[
		{"type": "add_state", "component": "App", "name": "open"},
		{"type": "modify_classname", "target": "div", "staticClasses": "app dark"}
	]`))
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, operations.OpModifyClassName, reqs[1].Type)
}

func TestExecute_SimpleEdit(t *testing.T) {
	t.Parallel()

	catalog := newCatalog(t)

	res, err := catalog.Execute(context.Background(), appSource, operations.Request{
		Type:      operations.OpAddState,
		Component: "App",
		Name:      "user",
		Initial:   "null",
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Contains(t, res.Code, "const [user, setUser] = useState(null);")
}

func TestExecute_NotFoundIsTyped(t *testing.T) {
	t.Parallel()

	catalog := newCatalog(t)

	_, err := catalog.Execute(context.Background(), appSource, operations.Request{
		Type:   operations.OpModifyClassName,
		Target: "table",
	})

	var notFound *rewrite.NotFoundError

	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "table", notFound.Name)
}

func TestExecute_UnknownOperation(t *testing.T) {
	t.Parallel()

	catalog := newCatalog(t)

	_, err := catalog.Execute(context.Background(), appSource, operations.Request{Type: "frobnicate"})

	var unknown *operations.UnknownOperationError

	require.ErrorAs(t, err, &unknown)
}

func TestExecute_ZeroValueFieldsAreTypedErrors(t *testing.T) {
	t.Parallel()

	catalog := newCatalog(t)

	_, err := catalog.Execute(context.Background(), appSource, operations.Request{
		Type:      operations.OpAddState,
		Component: "App",
	})
	require.ErrorIs(t, err, rewrite.ErrEmptyName)

	_, err = catalog.Execute(context.Background(), appSource, operations.Request{
		Type:     operations.OpInsertJSX,
		Target:   "span",
		Position: rewrite.PositionBefore,
	})
	require.ErrorIs(t, err, rewrite.ErrEmptySnippet)
}

func TestExecuteSequence(t *testing.T) {
	t.Parallel()

	catalog := newCatalog(t)

	res, err := catalog.ExecuteSequence(context.Background(), appSource, []operations.Request{
		{Type: operations.OpAddState, Component: "App", Name: "open", Initial: "false"},
		{Type: operations.OpModifyClassName, Target: "div", StaticClasses: "app dark"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Applied)
	assert.Contains(t, res.Code, "const [open, setOpen] = useState(false);")
	assert.Contains(t, res.Code, `className="app dark"`)
}

func TestExecuteSequence_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	catalog := newCatalog(t)

	_, err := catalog.ExecuteSequence(context.Background(), appSource, []operations.Request{
		{Type: operations.OpAddState, Component: "App", Name: "open", Initial: "false"},
		{Type: operations.OpModifyClassName, Target: "table"},
		{Type: operations.OpAddState, Component: "App", Name: "never", Initial: "0"},
	})

	var sequence *operations.SequenceError

	require.ErrorAs(t, err, &sequence)
	assert.Equal(t, 1, sequence.Index)
	assert.Equal(t, 1, sequence.Applied)

	res := operations.FailureResult(err)
	assert.False(t, res.Success)
	assert.Equal(t, 1, res.StepsCompleted)
}

func TestAddAuthentication_Simple(t *testing.T) {
	t.Parallel()

	catalog := newCatalog(t)

	res, err := catalog.Execute(context.Background(), appSource, operations.Request{
		Type:      operations.OpAddAuthentication,
		Component: "App",
	})
	require.NoError(t, err)
	require.True(t, res.Success)

	assert.Contains(t, res.Code, "const [isLoggedIn, setIsLoggedIn] = useState(false);")
	assert.Contains(t, res.Code, "const [password, setPassword] = useState('');")
	assert.Contains(t, res.Code, "const handleLogin = () => {\n    setIsLoggedIn(true);\n  };")
	assert.Contains(t, res.Code, "const handleLogout = () => {\n    setIsLoggedIn(false);\n    setPassword('');\n  };")
	assert.Contains(t, res.Code, "return isLoggedIn ? (")
	assert.Contains(t, res.Code, "<button onClick={handleLogout}>Log out</button>")
	assert.Contains(t, res.Code, "<h2>Login</h2>")
	assert.Contains(t, res.Code, `type="password" value={password}`)
	assert.NotContains(t, res.Code, "type=\"email\"")
	assert.Contains(t, res.Code, "<button onClick={handleLogin}>Log in</button>")
	assert.Contains(t, res.Code, "{ useState } from 'react'")
}

func TestAddAuthentication_StyledWithCredentials(t *testing.T) {
	t.Parallel()

	catalog := newCatalog(t)

	res, err := catalog.Execute(context.Background(), appSource, operations.Request{
		Type:      operations.OpAddAuthentication,
		Component: "App",
		Auth:      &operations.AuthOptions{Style: "styled", WithEmail: true},
	})
	require.NoError(t, err)

	assert.Contains(t, res.Code, "const [email, setEmail] = useState('');")
	assert.Contains(t, res.Code, "const [password, setPassword] = useState('');")
	assert.Contains(t, res.Code, `<div className="login-form">`)
	assert.Contains(t, res.Code, `type="email" value={email}`)
	assert.Contains(t, res.Code, `type="password" value={password}`)
	assert.Contains(t, res.Code, "setEmail('');")
	assert.Contains(t, res.Code, `className="login-form__logout"`)
}

func TestAddAuthentication_AbortReportsCompletedSteps(t *testing.T) {
	t.Parallel()

	catalog := newCatalog(t)

	// State and handlers enqueue, then the return lookup fails.
	_, err := catalog.Execute(context.Background(), "function App() {\n  const x = 1;\n}\n", operations.Request{
		Type:      operations.OpAddAuthentication,
		Component: "App",
	})

	var composite *operations.CompositeError

	require.ErrorAs(t, err, &composite)
	assert.Equal(t, 2, composite.Completed)

	res := operations.FailureResult(err)
	assert.Equal(t, 2, res.StepsCompleted)

	// Missing component fails before any step completes.
	_, err = catalog.Execute(context.Background(), appSource, operations.Request{
		Type:      operations.OpAddAuthentication,
		Component: "Nope",
	})
	require.ErrorAs(t, err, &composite)
	assert.Equal(t, 0, composite.Completed)
}

func TestCreateContextProvider(t *testing.T) {
	t.Parallel()

	catalog := newCatalog(t)

	res, err := catalog.Execute(context.Background(), "", operations.Request{
		Type: operations.OpCreateContextProvider,
		Originate: &operations.OriginateOptions{
			Name: "Theme",
			Fields: []operations.StateField{
				{Name: "theme", Initial: "'light'"},
				{Name: "accent"},
			},
		},
	})
	require.NoError(t, err)
	require.True(t, res.Success)

	assert.Equal(t, "ThemeContext.tsx", res.FileName)
	assert.Empty(t, res.Code)
	assert.Contains(t, res.FileCode, "const ThemeContext = createContext(null);")
	assert.Contains(t, res.FileCode, "const [theme, setTheme] = useState('light');")
	assert.Contains(t, res.FileCode, "const [accent, setAccent] = useState(null);")
	assert.Contains(t, res.FileCode, "const value = { theme, setTheme, accent, setAccent };")
	assert.Contains(t, res.FileCode, "export function useTheme()")
	assert.Contains(t, res.FileCode, "'useTheme must be used within a ThemeProvider'")
}

func TestCreateStore(t *testing.T) {
	t.Parallel()

	catalog := newCatalog(t)

	res, err := catalog.Execute(context.Background(), "", operations.Request{
		Type: operations.OpCreateStore,
		Originate: &operations.OriginateOptions{
			Name:   "Cart",
			Fields: []operations.StateField{{Name: "items", Initial: "[]"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "CartStore.tsx", res.FileName)
	assert.Contains(t, res.FileCode, "items: [],")
	assert.Contains(t, res.FileCode, "function cartReducer(state, action)")
	assert.Contains(t, res.FileCode, "case 'SET_ITEMS':")
	assert.Contains(t, res.FileCode, "case 'RESET':")
	assert.Contains(t, res.FileCode, "export function CartStoreProvider({ children })")
	assert.Contains(t, res.FileCode, "export function useCartStore()")
}

func TestExtractComponent(t *testing.T) {
	t.Parallel()

	catalog := newCatalog(t)

	res, err := catalog.Execute(context.Background(), appSource, operations.Request{
		Type:      operations.OpExtractComponent,
		Target:    "span",
		Props:     map[string]string{"label": "count"},
		Originate: &operations.OriginateOptions{Name: "Greeting"},
	})
	require.NoError(t, err)
	require.True(t, res.Success)

	assert.Equal(t, "Greeting.tsx", res.FileName)
	assert.Contains(t, res.FileCode, "export function Greeting({ label })")
	assert.Contains(t, res.FileCode, "<span>hello</span>")
	assert.Contains(t, res.FileCode, "export default Greeting;")

	assert.Contains(t, res.Code, "<Greeting label={count} />")
	assert.Contains(t, res.Code, "import Greeting from './Greeting';")
	assert.NotContains(t, res.Code, "<span>hello</span>")
}

func TestExtractComponent_MissingTarget(t *testing.T) {
	t.Parallel()

	catalog := newCatalog(t)

	_, err := catalog.Execute(context.Background(), appSource, operations.Request{
		Type:      operations.OpExtractComponent,
		Target:    "table",
		Originate: &operations.OriginateOptions{Name: "Missing"},
	})

	var notFound *rewrite.NotFoundError

	require.ErrorAs(t, err, &notFound)
}
