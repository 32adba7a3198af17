package cursor

import (
	"path/filepath"
	"strings"
	"sync"
)

// Registry maps file extensions to grammars.
type Registry struct {
	grammars  map[string]*Grammar // language name -> grammar
	extToLang map[string]string   // extension -> language name
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		grammars:  make(map[string]*Grammar),
		extToLang: make(map[string]string),
	}
}

// NewDefaultRegistry creates a registry with every bundled grammar.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(NewGoGrammar())
	r.Register(NewPythonGrammar())
	r.Register(NewRubyGrammar())
	r.Register(NewTypeScriptGrammar())
	r.Register(NewTSXGrammar())
	r.Register(NewJavaScriptGrammar())

	return r
}

var defaultRegistry = sync.OnceValue(NewDefaultRegistry)

// Register adds a grammar to the registry.
func (r *Registry) Register(g *Grammar) {
	r.grammars[g.Name] = g
	for _, ext := range g.Extensions {
		r.extToLang[ext] = g.Name
	}
}

// GrammarForFile returns the grammar registered for the file's extension.
func (r *Registry) GrammarForFile(filename string) (*Grammar, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	lang, ok := r.extToLang[ext]
	if !ok {
		return nil, false
	}
	g, ok := r.grammars[lang]
	return g, ok
}

// SupportedExtensions returns all registered file extensions.
func (r *Registry) SupportedExtensions() []string {
	exts := make([]string, 0, len(r.extToLang))
	for ext := range r.extToLang {
		exts = append(exts, ext)
	}
	return exts
}
