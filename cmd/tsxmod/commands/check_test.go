package commands_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsxmod/tsxmod/cmd/tsxmod/commands"
)

func TestCheckCommand_CleanFile(t *testing.T) {
	t.Parallel()

	srcPath := writeFixture(t, "App.tsx", appSource)

	var out bytes.Buffer

	cmd := commands.NewCheckCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{srcPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "no issues")
}

func TestCheckCommand_ReportsIssues(t *testing.T) {
	t.Parallel()

	srcPath := writeFixture(t, "Broken.tsx", "const = ;\n")

	var out bytes.Buffer

	cmd := commands.NewCheckCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{srcPath})

	err := cmd.Execute()
	require.ErrorIs(t, err, commands.ErrSyntaxIssues)
	assert.Contains(t, out.String(), "Broken.tsx")
}

func TestCheckCommand_MissingFile(t *testing.T) {
	t.Parallel()

	cmd := commands.NewCheckCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"/nonexistent/App.tsx"})

	require.Error(t, cmd.Execute())
}
