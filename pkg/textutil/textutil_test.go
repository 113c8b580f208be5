package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBinary_EmptyData(t *testing.T) {
	t.Parallel()

	assert.False(t, IsBinary(nil))
	assert.False(t, IsBinary([]byte{}))
}

func TestIsBinary_PureText(t *testing.T) {
	t.Parallel()

	assert.False(t, IsBinary([]byte("const x = 1;\n")))
}

func TestIsBinary_NullByte(t *testing.T) {
	t.Parallel()

	assert.True(t, IsBinary([]byte("hello\x00world")))
}

func TestIsBinary_NullBeyondSniffBoundary(t *testing.T) {
	t.Parallel()

	// Null byte beyond the sniff window should NOT be detected.
	data := make([]byte, BinarySniffLength+100)
	for i := range data {
		data[i] = 'a'
	}

	data[BinarySniffLength+50] = 0x00

	assert.False(t, IsBinary(data))
}

func TestCountLines_EmptyData(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, CountLines(nil))
}

func TestCountLines_SingleLineNoNewline(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, CountLines([]byte("hello")))
}

func TestCountLines_MultipleLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, CountLines([]byte("a\nb\nc\n")))
	assert.Equal(t, 3, CountLines([]byte("a\nb\nc")))
}

func TestCountLines_LargeFile(t *testing.T) {
	t.Parallel()

	lines := strings.Repeat("line\n", 10000)

	assert.Equal(t, 10000, CountLines([]byte(lines)))
}

func TestLineStart(t *testing.T) {
	t.Parallel()

	data := []byte("first\nsecond\nthird")

	assert.Equal(t, 0, LineStart(data, 0))
	assert.Equal(t, 0, LineStart(data, 3))
	assert.Equal(t, 6, LineStart(data, 6))
	assert.Equal(t, 6, LineStart(data, 10))
	assert.Equal(t, 13, LineStart(data, 15))
}

func TestLineStart_OffsetPastEnd(t *testing.T) {
	t.Parallel()

	data := []byte("a\nb")

	assert.Equal(t, 2, LineStart(data, 100))
}

func TestLineIndent(t *testing.T) {
	t.Parallel()

	data := []byte("function App() {\n    return null;\n\tdone\n}")

	// Offset inside the indented return line.
	off := strings.Index(string(data), "return")
	assert.Equal(t, "    ", string(LineIndent(data, off)))

	// Tab-indented line.
	off = strings.Index(string(data), "done")
	assert.Equal(t, "\t", string(LineIndent(data, off)))

	// Unindented line.
	assert.Empty(t, string(LineIndent(data, 0)))
}

func TestIndent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Indent("", "  "))
	assert.Equal(t, "  a\n  b", Indent("a\nb", "  "))

	// Empty lines stay empty instead of gaining trailing whitespace.
	assert.Equal(t, "  a\n\n  b", Indent("a\n\nb", "  "))
}
