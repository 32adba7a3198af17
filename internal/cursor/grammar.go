package cursor

import (
	"context"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Grammar is a tree-sitter language plus the node types that name symbols in
// it. A sitter.Parser is not safe for concurrent use, so parses are serialized.
type Grammar struct {
	Name        string
	Extensions  []string
	identifiers map[string]bool

	mu     sync.Mutex
	parser *sitter.Parser
}

func newGrammar(name string, lang *sitter.Language, exts []string, identifiers ...string) *Grammar {
	p := sitter.NewParser()
	p.SetLanguage(lang)

	set := make(map[string]bool, len(identifiers))
	for _, nodeType := range identifiers {
		set[nodeType] = true
	}
	return &Grammar{
		Name:        name,
		Extensions:  exts,
		identifiers: set,
		parser:      p,
	}
}

func NewGoGrammar() *Grammar {
	return newGrammar("go", golang.GetLanguage(), []string{".go"},
		"identifier", "field_identifier", "type_identifier", "package_identifier", "label_name")
}

func NewPythonGrammar() *Grammar {
	return newGrammar("python", python.GetLanguage(), []string{".py", ".pyi"},
		"identifier")
}

func NewRubyGrammar() *Grammar {
	return newGrammar("ruby", ruby.GetLanguage(), []string{".rb", ".rake"},
		"identifier", "constant")
}

func NewTypeScriptGrammar() *Grammar {
	return newGrammar("typescript", typescript.GetLanguage(), []string{".ts", ".mts", ".cts"},
		"identifier", "property_identifier", "type_identifier", "shorthand_property_identifier")
}

func NewTSXGrammar() *Grammar {
	return newGrammar("tsx", tsx.GetLanguage(), []string{".tsx"},
		"identifier", "property_identifier", "type_identifier", "shorthand_property_identifier")
}

func NewJavaScriptGrammar() *Grammar {
	return newGrammar("javascript", javascript.GetLanguage(), []string{".js", ".jsx", ".mjs", ".cjs"},
		"identifier", "property_identifier", "shorthand_property_identifier")
}

// IsIdentifier reports whether nodeType names a symbol in this grammar.
func (g *Grammar) IsIdentifier(nodeType string) bool {
	return g.identifiers[nodeType]
}

// identifierAt returns the identifier node covering the 0-based row and byte
// column, or ok=false when the point is not on an identifier.
func (g *Grammar) identifierAt(ctx context.Context, content []byte, row, col int) (text string, nodeType string, start, end int, ok bool) {
	g.mu.Lock()
	tree, err := g.parser.ParseCtx(ctx, nil, content)
	g.mu.Unlock()
	if err != nil {
		return "", "", 0, 0, false
	}
	defer tree.Close()

	point := sitter.Point{Row: uint32(row), Column: uint32(col)}
	node := tree.RootNode().NamedDescendantForPointRange(point, point)
	if node == nil || !g.IsIdentifier(node.Type()) {
		return "", "", 0, 0, false
	}
	if node.StartPoint().Row != node.EndPoint().Row {
		return "", "", 0, 0, false
	}
	return node.Content(content), node.Type(), int(node.StartPoint().Column), int(node.EndPoint().Column), true
}
