package jsx

import (
	"strings"
	"sync"
	"unsafe"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/alexaandru/go-sitter-forest/javascript"
	"github.com/alexaandru/go-sitter-forest/tsx"
	"github.com/alexaandru/go-sitter-forest/typescript"
)

// Dialect identifies one of the supported source grammars.
type Dialect string

// Supported dialects. TSX is the default for anonymous snippets because its
// grammar is a superset that accepts both JSX and TypeScript syntax.
const (
	DialectJavaScript Dialect = "javascript"
	DialectTypeScript Dialect = "typescript"
	DialectTSX        Dialect = "tsx"
)

// languageFuncs maps dialects to their tree-sitter GetLanguage functions.
var languageFuncs = map[Dialect]func() unsafe.Pointer{
	DialectJavaScript: javascript.GetLanguage,
	DialectTypeScript: typescript.GetLanguage,
	DialectTSX:        tsx.GetLanguage,
}

var languageCache sync.Map

// Language returns the tree-sitter Language for the given dialect, or nil if
// the dialect is not supported. Grammar initialization happens once per
// dialect; concurrent callers share the cached instance.
func Language(dialect Dialect) *sitter.Language {
	if cached, ok := languageCache.Load(dialect); ok {
		lang, castOK := cached.(*sitter.Language)
		if castOK {
			return lang
		}
	}

	fn, ok := languageFuncs[dialect]
	if !ok {
		return nil
	}

	lang := sitter.NewLanguage(fn())
	languageCache.Store(dialect, lang)

	return lang
}

// DialectForFilename maps a filename extension to its dialect.
// Unknown extensions fall back to TSX.
func DialectForFilename(name string) Dialect {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return DialectTSX
	}

	switch strings.ToLower(name[idx:]) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return DialectJavaScript
	case ".ts", ".mts", ".cts":
		return DialectTypeScript
	default:
		return DialectTSX
	}
}
