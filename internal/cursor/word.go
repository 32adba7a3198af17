// Package cursor finds the identifier under an editor cursor.
package cursor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

var (
	ErrOutOfRange = errors.New("position is outside the file")
	ErrNoWord     = errors.New("no identifier under cursor")
)

// Word is the identifier found at a position. Columns are 1-based byte
// offsets; EndColumn is exclusive. Node is the tree-sitter node type, empty
// when the word was found by scanning the line.
type Word struct {
	Text        string `json:"text"`
	Line        int    `json:"line"`
	StartColumn int    `json:"start_column"`
	EndColumn   int    `json:"end_column"`
	Language    string `json:"language,omitempty"`
	Node        string `json:"node,omitempty"`
}

// ReadWordAt reads path and returns the identifier at line:column using the
// default registry.
func ReadWordAt(ctx context.Context, path string, line, column int) (Word, error) {
	return defaultRegistry().ReadWordAt(ctx, path, line, column)
}

// ReadWordAt reads path and returns the identifier at line:column.
func (r *Registry) ReadWordAt(ctx context.Context, path string, line, column int) (Word, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Word{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return r.WordAt(ctx, path, content, line, column)
}

// WordAt returns the identifier at line:column of content using the default
// registry.
func WordAt(ctx context.Context, path string, content []byte, line, column int) (Word, error) {
	return defaultRegistry().WordAt(ctx, path, content, line, column)
}

// WordAt returns the identifier at line:column of content. Files with a
// registered grammar are parsed; other files, and positions the grammar does
// not place on an identifier, fall back to scanning the line.
func (r *Registry) WordAt(ctx context.Context, path string, content []byte, line, column int) (Word, error) {
	lineText, ok := lineAt(content, line)
	if !ok || column < 1 || column > len(lineText)+1 {
		return Word{}, fmt.Errorf("%w: %d:%d", ErrOutOfRange, line, column)
	}

	var language string
	if g, ok := r.GrammarForFile(path); ok {
		language = g.Name
		if column <= len(lineText) {
			text, nodeType, start, end, found := g.identifierAt(ctx, content, line-1, column-1)
			if found {
				return Word{
					Text:        text,
					Line:        line,
					StartColumn: start + 1,
					EndColumn:   end + 1,
					Language:    language,
					Node:        nodeType,
				}, nil
			}
		}
	}

	start, end, found := scanWord(lineText, column-1)
	if !found {
		return Word{}, fmt.Errorf("%w at %d:%d", ErrNoWord, line, column)
	}
	return Word{
		Text:        string(lineText[start:end]),
		Line:        line,
		StartColumn: start + 1,
		EndColumn:   end + 1,
		Language:    language,
	}, nil
}

func lineAt(content []byte, line int) ([]byte, bool) {
	if line < 1 {
		return nil, false
	}
	lines := bytes.Split(content, []byte("\n"))
	if line > len(lines) {
		return nil, false
	}
	return bytes.TrimSuffix(lines[line-1], []byte("\r")), true
}

// scanWord expands around pos to the surrounding identifier run. A cursor
// sitting just past the end of a word still selects it.
func scanWord(text []byte, pos int) (int, int, bool) {
	if pos >= len(text) || !isWordByte(text[pos]) {
		if pos == 0 || !isWordByte(text[pos-1]) {
			return 0, 0, false
		}
		pos--
	}
	start := pos
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}
	end := pos
	for end < len(text) && isWordByte(text[end]) {
		end++
	}
	return start, end, true
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b >= utf8.RuneSelf
}
