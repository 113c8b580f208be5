package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsxmod/tsxmod/cmd/tsxmod/commands"
)

const appSource = `import React from 'react';

function App() {
  return (
    <div className="app">
      <span>Hello</span>
    </div>
  );
}

export default App;
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestApplyCommand_PrintsResult(t *testing.T) {
	t.Parallel()

	srcPath := writeFixture(t, "App.tsx", appSource)
	opsPath := writeFixture(t, "ops.json",
		`[{"type":"add_state","component":"App","name":"count","initial":"0"}]`)

	var out, errOut bytes.Buffer

	cmd := commands.NewApplyCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{srcPath, "--ops", opsPath})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "const [count, setCount] = useState(0);")
	assert.Contains(t, out.String(), "import React, { useState } from 'react';")

	// Source file stays untouched without --write.
	onDisk, readErr := os.ReadFile(srcPath)
	require.NoError(t, readErr)
	assert.Equal(t, appSource, string(onDisk))
}

func TestApplyCommand_WriteInPlace(t *testing.T) {
	t.Parallel()

	srcPath := writeFixture(t, "App.tsx", appSource)
	opsPath := writeFixture(t, "ops.json",
		`[{"type":"add_import","import":{"source":"axios","defaultImport":"axios"}}]`)

	cmd := commands.NewApplyCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{srcPath, "--ops", opsPath, "--write"})

	require.NoError(t, cmd.Execute())

	onDisk, readErr := os.ReadFile(srcPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(onDisk), "import axios from 'axios';")
}

func TestApplyCommand_DiffOutput(t *testing.T) {
	t.Parallel()

	srcPath := writeFixture(t, "App.tsx", appSource)
	opsPath := writeFixture(t, "ops.json",
		`[{"type":"modify_classname","target":"span","staticClasses":"greeting"}]`)

	var out bytes.Buffer

	cmd := commands.NewApplyCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{srcPath, "--ops", opsPath, "--diff", "--no-color"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "-      <span>Hello</span>")
	assert.Contains(t, out.String(), "+      <span className=\"greeting\">Hello</span>")
}

func TestApplyCommand_OperationsFromStdin(t *testing.T) {
	t.Parallel()

	srcPath := writeFixture(t, "App.tsx", appSource)

	var out bytes.Buffer

	cmd := commands.NewApplyCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(bytes.NewBufferString(
		`[{"type":"modify_prop","target":"span","prop":"id","value":"\"greeting\"","action":"set"}]`))
	cmd.SetArgs([]string{srcPath, "--ops", "-"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), `<span id="greeting">Hello</span>`)
}

func TestApplyCommand_FirstFailureLeavesFileUntouched(t *testing.T) {
	t.Parallel()

	srcPath := writeFixture(t, "App.tsx", appSource)
	opsPath := writeFixture(t, "ops.json",
		`[{"type":"add_state","component":"Missing","name":"count"}]`)

	cmd := commands.NewApplyCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{srcPath, "--ops", opsPath, "--write"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add_state")

	onDisk, readErr := os.ReadFile(srcPath)
	require.NoError(t, readErr)
	assert.Equal(t, appSource, string(onDisk))
}

func TestApplyCommand_RejectsMalformedOperations(t *testing.T) {
	t.Parallel()

	srcPath := writeFixture(t, "App.tsx", appSource)
	opsPath := writeFixture(t, "ops.json", `[{"type":"add_state"}]`)

	cmd := commands.NewApplyCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{srcPath, "--ops", opsPath})

	require.Error(t, cmd.Execute())
}
