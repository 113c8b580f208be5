// Package jsx wraps the tree-sitter JSX/TSX grammars behind structural
// queries: find a function, a destructured binding, a JSX element, an
// import, or a useState pattern, regardless of surface shape. Parsing is
// error tolerant; a tree is always produced and error nodes are reported
// rather than thrown.
package jsx

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// Sentinel errors for parser construction and parsing.
var (
	ErrLanguageNotAvailable = errors.New("tree-sitter language not available")
	ErrNilTree              = errors.New("jsx: nil parse tree")
	errNoRootNode           = errors.New("jsx: no root node")
	errPoolType             = errors.New("jsx: pool returned unexpected type")
)

// Parser parses source text of one dialect into query-ready trees.
// A Parser is safe for concurrent use; each Parse call checks out its own
// tree-sitter parser from an internal pool.
type Parser struct {
	dialect Dialect
	pool    sync.Pool
}

// NewParser creates a parser for the given dialect. Grammar initialization
// is memoized process-wide, so constructing parsers is cheap after the
// first call per dialect.
func NewParser(dialect Dialect) (*Parser, error) {
	lang := Language(dialect)
	if lang == nil {
		return nil, fmt.Errorf("%w: %s", ErrLanguageNotAvailable, dialect)
	}

	parser := &Parser{dialect: dialect}
	parser.pool = sync.Pool{
		New: func() any {
			tsParser := sitter.NewParser()
			tsParser.SetLanguage(lang)

			return tsParser
		},
	}

	return parser, nil
}

// Dialect returns the dialect this parser was built for.
func (p *Parser) Dialect() Dialect {
	return p.dialect
}

// Parse parses source into a Tree. Syntactically broken input still yields
// a tree; the breakage surfaces as error nodes reported by Tree.Issues.
// The returned tree holds tree-sitter memory and must be closed.
func (p *Parser) Parse(ctx context.Context, source []byte) (*Tree, error) {
	tsParser, ok := p.pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}

	defer p.pool.Put(tsParser)

	tsTree, err := tsParser.ParseString(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("jsx: parse failed: %w", err)
	}

	root := tsTree.RootNode()
	if root.IsNull() {
		tsTree.Close()

		return nil, errNoRootNode
	}

	return &Tree{
		ts:      tsTree,
		root:    root,
		source:  source,
		dialect: p.dialect,
	}, nil
}

// Tree is one immutable parse result. All node positions reference the
// source snapshot captured at Parse time; the snapshot itself is never
// mutated.
type Tree struct {
	ts      *sitter.Tree
	root    sitter.Node
	source  []byte
	dialect Dialect

	issuesOnce sync.Once
	issues     []Issue
}

// Root returns the root node of the tree.
func (t *Tree) Root() Node {
	return Node{ts: t.root, src: t.source}
}

// Source returns the source snapshot the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.source
}

// Dialect returns the dialect the tree was parsed with.
func (t *Tree) Dialect() Dialect {
	return t.dialect
}

// HasError reports whether the tree contains any error or missing node.
func (t *Tree) HasError() bool {
	return len(t.Issues()) > 0
}

// Close releases the underlying tree-sitter memory. Nodes obtained from the
// tree are invalid afterwards.
func (t *Tree) Close() {
	if t.ts != nil {
		t.ts.Close()
		t.ts = nil
	}
}
