// Package tags parses ctags-style tag files and answers symbol queries.
package tags

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// pseudoTagPrefix marks ctags header lines such as !_TAG_FILE_FORMAT.
const pseudoTagPrefix = "!_TAG_"

const maxLineSize = 1024 * 1024

// Index is an immutable, file-ordered view of a tag file.
type Index struct {
	records []Record
	byName  map[string][]int
}

// Load reads and parses the tag file at path. Malformed lines are skipped and
// returned as warnings; only an unreadable file fails the load.
func Load(path string) (*Index, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	index, warnings, err := Parse(f)
	if err != nil {
		return nil, nil, &IOError{Path: path, Err: err}
	}
	return index, warnings, nil
}

// Parse builds an Index from tag lines read from r.
func Parse(r io.Reader) (*Index, []Warning, error) {
	index := &Index{byName: make(map[string][]int)}
	var warnings []Warning

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSuffix(line, "\r") == "" || strings.HasPrefix(line, pseudoTagPrefix) {
			continue
		}

		record, err := ParseLine(line)
		if err != nil {
			warnings = append(warnings, Warning{Line: lineNum, Text: line, Reason: err.Error()})
			continue
		}
		index.byName[record.Symbol] = append(index.byName[record.Symbol], len(index.records))
		index.records = append(index.records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to scan tag lines after line %d: %w", lineNum, err)
	}
	return index, warnings, nil
}

// Len returns the number of records.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.records)
}

// Records returns a copy of every record in file order.
func (idx *Index) Records() []Record {
	if idx == nil {
		return nil
	}
	return append([]Record(nil), idx.records...)
}

// Symbols returns the distinct symbol names in order of first occurrence.
func (idx *Index) Symbols() []string {
	if idx == nil {
		return nil
	}
	seen := make(map[string]bool, len(idx.byName))
	out := make([]string, 0, len(idx.byName))
	for _, record := range idx.records {
		if seen[record.Symbol] {
			continue
		}
		seen[record.Symbol] = true
		out = append(out, record.Symbol)
	}
	return out
}

// Lookup returns every record whose symbol equals name exactly, in file order.
func (idx *Index) Lookup(name string) []Record {
	if idx == nil {
		return nil
	}
	positions := idx.byName[name]
	if len(positions) == 0 {
		return nil
	}
	out := make([]Record, 0, len(positions))
	for _, pos := range positions {
		out = append(out, idx.records[pos])
	}
	return out
}

// ByFile returns the records that point into file, in file order. Both sides
// are compared in cleaned form, so "./main.go" matches "main.go".
func (idx *Index) ByFile(file string) []Record {
	if idx == nil {
		return nil
	}
	file = filepath.Clean(file)
	var out []Record
	for _, record := range idx.records {
		if filepath.Clean(record.File) == file {
			out = append(out, record)
		}
	}
	return out
}

// Enclosing returns the record in file with the greatest line not after line.
func (idx *Index) Enclosing(file string, line int) (Record, bool) {
	var best Record
	found := false
	for _, record := range idx.ByFile(file) {
		if record.Line > line {
			continue
		}
		if !found || record.Line > best.Line {
			best = record
			found = true
		}
	}
	return best, found
}
