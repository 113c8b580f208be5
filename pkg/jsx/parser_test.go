package jsx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsxmod/tsxmod/pkg/jsx"
)

const appSource = `import React, { useState } from 'react';
import styles from './App.module.css';

function App() {
  const [count, setCount] = useState(0);
  const { name, age } = person;
  const { value: renamed } = obj;

  return (
    <div className="app">
      <h1>Hello {name}</h1>
      <Counter value={count} />
    </div>
  );
}

const Header = () => {
  return <header>top</header>;
};

const Footer = function () {
  return <footer>bottom</footer>;
};

export default App;
`

func mustParse(t *testing.T, source string) *jsx.Tree {
	t.Helper()

	parser, err := jsx.NewParser(jsx.DialectTSX)
	require.NoError(t, err)

	tree, err := parser.Parse(context.Background(), []byte(source))
	require.NoError(t, err)

	t.Cleanup(tree.Close)

	return tree
}

func TestParse_CleanSource(t *testing.T) {
	t.Parallel()

	tree := mustParse(t, appSource)

	assert.False(t, tree.HasError())
	assert.Equal(t, jsx.KindProgram, tree.Root().Kind())
	assert.Equal(t, []byte(appSource), tree.Source())
}

func TestParse_ErrorTolerant(t *testing.T) {
	t.Parallel()

	// Missing closing brace on the object destructure.
	broken := "function App() {\n  const { name = person;\n  return <div>{name}</div>;\n}\n"
	tree := mustParse(t, broken)

	assert.True(t, tree.HasError())

	// The enclosing function is still findable despite the error region.
	match := tree.FindFunction("App")
	require.NotNil(t, match)
	assert.Equal(t, jsx.FunctionDeclaration, match.Kind)
}

func TestParse_UnsupportedDialect(t *testing.T) {
	t.Parallel()

	_, err := jsx.NewParser(jsx.Dialect("cobol"))
	require.ErrorIs(t, err, jsx.ErrLanguageNotAvailable)
}

func TestDialectForFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, jsx.DialectJavaScript, jsx.DialectForFilename("app.jsx"))
	assert.Equal(t, jsx.DialectJavaScript, jsx.DialectForFilename("index.mjs"))
	assert.Equal(t, jsx.DialectTypeScript, jsx.DialectForFilename("util.ts"))
	assert.Equal(t, jsx.DialectTSX, jsx.DialectForFilename("App.tsx"))
	assert.Equal(t, jsx.DialectTSX, jsx.DialectForFilename("snippet"))
}

func TestIssues_ReportLineAndColumn(t *testing.T) {
	t.Parallel()

	tree := mustParse(t, "const x = ;\n")

	issues := tree.Issues()
	require.NotEmpty(t, issues)
	assert.Equal(t, 1, issues[0].Line)
	assert.Positive(t, issues[0].Column)
	assert.NotEmpty(t, issues[0].NodeType)
}

func TestIssues_CleanTreeIsEmpty(t *testing.T) {
	t.Parallel()

	tree := mustParse(t, "const x = 1;\n")

	assert.Empty(t, tree.Issues())
}

func TestKindOf_UnknownFallsBack(t *testing.T) {
	t.Parallel()

	assert.Equal(t, jsx.KindOther, jsx.KindOf("some_future_node"))
	assert.Equal(t, jsx.KindJSXElement, jsx.KindOf("jsx_element"))
	assert.Equal(t, "jsx_element", jsx.KindJSXElement.String())
}
