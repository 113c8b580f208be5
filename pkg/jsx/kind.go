package jsx

// Kind is a closed tagged set over the grammar node types the engine
// queries. Everything outside the modeled set maps to KindOther so new
// grammar revisions degrade to "unknown" instead of misclassifying.
type Kind int

// Modeled node kinds.
const (
	KindOther Kind = iota
	KindProgram
	KindFunctionDeclaration
	KindArrowFunction
	KindFunctionExpression
	KindLexicalDeclaration
	KindVariableDeclaration
	KindVariableDeclarator
	KindIdentifier
	KindPropertyIdentifier
	KindArrayPattern
	KindObjectPattern
	KindShorthandPattern
	KindPairPattern
	KindJSXElement
	KindJSXSelfClosing
	KindJSXOpeningElement
	KindJSXClosingElement
	KindJSXAttribute
	KindJSXExpression
	KindImportStatement
	KindImportClause
	KindNamedImports
	KindImportSpecifier
	KindNamespaceImport
	KindCallExpression
	KindArguments
	KindExportStatement
	KindStatementBlock
	KindReturnStatement
	KindParenthesized
	KindString
	KindError
)

// kindNames provides the display form of each kind.
var kindNames = map[Kind]string{
	KindOther:               "other",
	KindProgram:             "program",
	KindFunctionDeclaration: "function_declaration",
	KindArrowFunction:       "arrow_function",
	KindFunctionExpression:  "function_expression",
	KindLexicalDeclaration:  "lexical_declaration",
	KindVariableDeclaration: "variable_declaration",
	KindVariableDeclarator:  "variable_declarator",
	KindIdentifier:          "identifier",
	KindPropertyIdentifier:  "property_identifier",
	KindArrayPattern:        "array_pattern",
	KindObjectPattern:       "object_pattern",
	KindShorthandPattern:    "shorthand_property_identifier_pattern",
	KindPairPattern:         "pair_pattern",
	KindJSXElement:          "jsx_element",
	KindJSXSelfClosing:      "jsx_self_closing_element",
	KindJSXOpeningElement:   "jsx_opening_element",
	KindJSXClosingElement:   "jsx_closing_element",
	KindJSXAttribute:        "jsx_attribute",
	KindJSXExpression:       "jsx_expression",
	KindImportStatement:     "import_statement",
	KindImportClause:        "import_clause",
	KindNamedImports:        "named_imports",
	KindImportSpecifier:     "import_specifier",
	KindNamespaceImport:     "namespace_import",
	KindCallExpression:      "call_expression",
	KindArguments:           "arguments",
	KindExportStatement:     "export_statement",
	KindStatementBlock:      "statement_block",
	KindReturnStatement:     "return_statement",
	KindParenthesized:       "parenthesized_expression",
	KindString:              "string",
	KindError:               "ERROR",
}

// kindByType maps raw grammar type strings to kinds. The "function" entry
// covers grammar revisions that predate the function_expression rename.
var kindByType = map[string]Kind{
	"program":                               KindProgram,
	"function_declaration":                  KindFunctionDeclaration,
	"arrow_function":                        KindArrowFunction,
	"function_expression":                   KindFunctionExpression,
	"function":                              KindFunctionExpression,
	"lexical_declaration":                   KindLexicalDeclaration,
	"variable_declaration":                  KindVariableDeclaration,
	"variable_declarator":                   KindVariableDeclarator,
	"identifier":                            KindIdentifier,
	"property_identifier":                   KindPropertyIdentifier,
	"array_pattern":                         KindArrayPattern,
	"object_pattern":                        KindObjectPattern,
	"shorthand_property_identifier_pattern": KindShorthandPattern,
	"pair_pattern":                          KindPairPattern,
	"jsx_element":                           KindJSXElement,
	"jsx_self_closing_element":              KindJSXSelfClosing,
	"jsx_opening_element":                   KindJSXOpeningElement,
	"jsx_closing_element":                   KindJSXClosingElement,
	"jsx_attribute":                         KindJSXAttribute,
	"jsx_expression":                        KindJSXExpression,
	"import_statement":                      KindImportStatement,
	"import_clause":                         KindImportClause,
	"named_imports":                         KindNamedImports,
	"import_specifier":                      KindImportSpecifier,
	"namespace_import":                      KindNamespaceImport,
	"call_expression":                       KindCallExpression,
	"arguments":                             KindArguments,
	"export_statement":                      KindExportStatement,
	"statement_block":                       KindStatementBlock,
	"return_statement":                      KindReturnStatement,
	"parenthesized_expression":              KindParenthesized,
	"string":                                KindString,
	"ERROR":                                 KindError,
}

// KindOf classifies a raw grammar type string.
func KindOf(tsType string) Kind {
	if k, ok := kindByType[tsType]; ok {
		return k
	}

	return KindOther
}

// String returns the grammar-facing name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "other"
}
