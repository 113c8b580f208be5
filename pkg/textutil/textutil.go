// Package textutil provides byte-level text utilities used by the splice
// engine: binary detection, line counting, and indentation/offset math over
// raw source buffers.
package textutil

import (
	"bytes"
)

// BinarySniffLength is the maximum number of bytes scanned for null-byte
// detection. Matches the heuristic used by Git and most editors.
const BinarySniffLength = 8000

// IsBinary returns true if data contains a null byte within the first
// BinarySniffLength bytes. Empty data is not binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	sniff := data
	if len(sniff) > BinarySniffLength {
		sniff = sniff[:BinarySniffLength]
	}

	return bytes.IndexByte(sniff, 0) >= 0
}

// CountLines returns the number of newline-delimited lines in data.
// A non-empty buffer without a trailing newline counts the last partial line.
// Returns 0 for empty data.
func CountLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}

	lines := bytes.Count(data, []byte{'\n'})

	if data[len(data)-1] != '\n' {
		lines++
	}

	return lines
}

// LineStart returns the byte offset of the first character of the line
// containing offset. Offsets past the end of data anchor to the last line.
func LineStart(data []byte, offset int) int {
	if offset > len(data) {
		offset = len(data)
	}

	idx := bytes.LastIndexByte(data[:offset], '\n')

	return idx + 1
}

// LineIndent returns the leading whitespace (spaces and tabs) of the line
// containing offset. The result aliases data and must not be modified.
func LineIndent(data []byte, offset int) []byte {
	start := LineStart(data, offset)

	end := start
	for end < len(data) && (data[end] == ' ' || data[end] == '\t') {
		end++
	}

	return data[start:end]
}

// IndentStep is the indentation unit appended when synthesized code nests
// one level deeper than its anchor line.
const IndentStep = "  "

// Indent prefixes every non-empty line of text with prefix.
func Indent(text, prefix string) string {
	if text == "" {
		return text
	}

	lines := bytes.Split([]byte(text), []byte{'\n'})

	var buf bytes.Buffer
	for i, line := range lines {
		if i > 0 {
			buf.WriteByte('\n')
		}

		if len(line) > 0 {
			buf.WriteString(prefix)
			buf.Write(line)
		}
	}

	return buf.String()
}
