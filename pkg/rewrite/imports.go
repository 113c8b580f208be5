package rewrite

import (
	"slices"
	"strings"

	"github.com/tsxmod/tsxmod/pkg/jsx"
)

// ImportSpec describes one module import to ensure. Merging a spec into an
// existing import from the same source is additive: named imports are a
// deduplicated set and nothing already imported is removed.
type ImportSpec struct {
	Source    string   `json:"source"`
	Default   string   `json:"defaultImport,omitempty"`
	Named     []string `json:"namedImports,omitempty"`
	Namespace string   `json:"namespaceImport,omitempty"`
}

// merge folds other into the spec, deduplicating named imports and keeping
// existing default/namespace bindings unless absent.
func (s *ImportSpec) merge(other ImportSpec) {
	if s.Default == "" {
		s.Default = other.Default
	}

	if s.Namespace == "" {
		s.Namespace = other.Namespace
	}

	for _, name := range other.Named {
		if !slices.Contains(s.Named, name) {
			s.Named = append(s.Named, name)
		}
	}
}

// render produces the full import statement text, without trailing newline.
func (s ImportSpec) render() string {
	var clauses []string

	if s.Default != "" {
		clauses = append(clauses, s.Default)
	}

	if s.Namespace != "" {
		clauses = append(clauses, "* as "+s.Namespace)
	}

	if len(s.Named) > 0 {
		clauses = append(clauses, "{ "+strings.Join(s.Named, ", ")+" }")
	}

	if len(clauses) == 0 {
		return "import '" + s.Source + "';"
	}

	return "import " + strings.Join(clauses, ", ") + " from '" + s.Source + "';"
}

// specFromInfo lifts an existing parsed import into a spec for merging.
func specFromInfo(info jsx.ImportInfo) ImportSpec {
	return ImportSpec{
		Source:    info.Source,
		Default:   info.Default,
		Named:     slices.Clone(info.Named),
		Namespace: info.Namespace,
	}
}
