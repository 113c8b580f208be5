// Package commands implements CLI command handlers for tsxmod.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
	"github.com/src-d/enry/v2"

	"github.com/tsxmod/tsxmod/internal/config"
	"github.com/tsxmod/tsxmod/pkg/jsx"
)

var (
	// ErrSourceTooLarge is returned when a source file exceeds the configured limit.
	ErrSourceTooLarge = errors.New("source file exceeds size limit")
	// ErrUnsupportedLanguage indicates the input is not a JavaScript-family file.
	ErrUnsupportedLanguage = errors.New("unsupported language (expected JavaScript, TypeScript, JSX, or TSX)")
)

// jsxLanguages enumerates enry language names accepted as transform input.
var jsxLanguages = map[string]struct{}{
	"JavaScript": {},
	"TypeScript": {},
	"JSX":        {},
	"TSX":        {},
}

// loadConfig reads the configuration using the root --config flag if set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path = ""
	}

	return config.LoadConfig(path)
}

// resolveDialect picks the grammar: explicit flag first, then filename
// extension, then the configured default.
func resolveDialect(flagValue, filename string, cfg *config.Config) jsx.Dialect {
	if flagValue != "" {
		return jsx.Dialect(flagValue)
	}

	if filename != "" {
		return jsx.DialectForFilename(filename)
	}

	if cfg != nil && cfg.Dialect != "" {
		return jsx.Dialect(cfg.Dialect)
	}

	return jsx.DialectTSX
}

// readSource reads a source file, enforcing the configured size limit and
// rejecting files enry classifies outside the JavaScript family.
func readSource(path string, cfg *config.Config) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", path, err)
	}

	limit := cfg.MaxFileSizeBytes()
	if uint64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s is %s (limit %s)",
			ErrSourceTooLarge, path, humanize.Bytes(uint64(len(data))), humanize.Bytes(limit))
	}

	lang := enry.GetLanguage(path, data)
	if lang != "" {
		_, supported := jsxLanguages[lang]
		if !supported {
			return nil, fmt.Errorf("%w: %s detected as %s", ErrUnsupportedLanguage, path, lang)
		}
	}

	return data, nil
}

// renderDiff writes a line diff between before and after. Deletions are red,
// insertions green, unchanged lines plain.
func renderDiff(w io.Writer, before, after string, noColor bool) {
	dmp := diffmatchpatch.New()

	chars1, chars2, lineIndex := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lineIndex)

	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	if noColor {
		red.DisableColor()
		green.DisableColor()
	}

	for _, diff := range diffs {
		prefix := " "
		printer := (*color.Color)(nil)

		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			prefix, printer = "-", red
		case diffmatchpatch.DiffInsert:
			prefix, printer = "+", green
		case diffmatchpatch.DiffEqual:
		}

		for _, line := range splitDiffLines(diff.Text) {
			if printer != nil {
				_, _ = printer.Fprintf(w, "%s%s\n", prefix, line)
			} else {
				_, _ = fmt.Fprintf(w, "%s%s\n", prefix, line)
			}
		}
	}
}

func splitDiffLines(text string) []string {
	trimmed := strings.TrimSuffix(text, "\n")
	if trimmed == "" {
		return nil
	}

	return strings.Split(trimmed, "\n")
}

// isQuiet reports whether the root --quiet flag suppresses progress output.
func isQuiet(cmd *cobra.Command) bool {
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return false
	}

	return quiet
}

// progressf writes a progress line to the writer unless quiet.
func progressf(quiet bool, w io.Writer, format string, args ...any) {
	if quiet {
		return
	}

	_, _ = fmt.Fprintf(w, "progress: "+format+"\n", args...)
}
