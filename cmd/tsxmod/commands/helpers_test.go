package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsxmod/tsxmod/internal/config"
	"github.com/tsxmod/tsxmod/pkg/jsx"
)

func TestResolveDialect_Precedence(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Dialect: "typescript"}

	assert.Equal(t, jsx.DialectTSX, resolveDialect("tsx", "app.js", cfg))
	assert.Equal(t, jsx.DialectJavaScript, resolveDialect("", "app.jsx", cfg))
	assert.Equal(t, jsx.DialectTypeScript, resolveDialect("", "", cfg))
	assert.Equal(t, jsx.DialectTSX, resolveDialect("", "", nil))
}

func TestRenderDiff_MarksChangedLines(t *testing.T) {
	t.Parallel()

	before := "a\nb\nc\n"
	after := "a\nB\nc\n"

	var out bytes.Buffer

	renderDiff(&out, before, after, true)

	assert.Contains(t, out.String(), "-b\n")
	assert.Contains(t, out.String(), "+B\n")
	assert.Contains(t, out.String(), " a\n")
}

func TestParseFields(t *testing.T) {
	t.Parallel()

	fields, err := parseFields([]string{"user=null", "count=0"})
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "user", fields[0].Name)
	assert.Equal(t, "null", fields[0].Initial)
	assert.Equal(t, "0", fields[1].Initial)

	_, err = parseFields([]string{"user"})
	require.ErrorIs(t, err, ErrMalformedField)
}

func TestParseProps(t *testing.T) {
	t.Parallel()

	props, err := parseProps([]string{"title=item.name", "onClick=handleClick"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"title": "item.name", "onClick": "handleClick"}, props)

	_, err = parseProps([]string{"=expr"})
	require.ErrorIs(t, err, ErrMalformedField)
}
