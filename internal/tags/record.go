package tags

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one entry of a tag file.
type Record struct {
	Symbol string   `json:"symbol"`
	File   string   `json:"file"`
	Line   int      `json:"line"`
	Kind   string   `json:"kind,omitempty"`
	Extra  []string `json:"extra,omitempty"`
}

// Location renders the record as file:line.
func (r Record) Location() string {
	return fmt.Sprintf("%s:%d", r.File, r.Line)
}

// ParseLine parses a single tag line of the form
// <symbol>\t<file>\t<line>;"\t<kind>\t...
func ParseLine(line string) (Record, error) {
	line = strings.TrimSuffix(line, "\r")
	parts := strings.Split(line, "\t")
	if len(parts) < 3 {
		return Record{}, ErrTooFewFields
	}

	symbol := parts[0]
	if strings.TrimSpace(symbol) == "" {
		return Record{}, ErrEmptySymbol
	}
	file := parts[1]
	if strings.TrimSpace(file) == "" {
		return Record{}, ErrEmptyFile
	}

	lineNo, err := parseLocator(parts[2])
	if err != nil {
		return Record{}, err
	}

	record := Record{
		Symbol: symbol,
		File:   file,
		Line:   lineNo,
	}
	if len(parts) > 3 {
		record.Extra = append([]string(nil), parts[3:]...)
		record.Kind = kindField(parts[3])
	}
	return record, nil
}

// kindField returns the kind carried by a trailing field: either a bare
// value ("f") or "kind:<value>". Other key:value extensions carry no kind.
func kindField(field string) string {
	if kind, ok := strings.CutPrefix(field, "kind:"); ok {
		return kind
	}
	if strings.Contains(field, ":") {
		return ""
	}
	return field
}

// parseLocator reads the line number in front of the first ';'. A locator
// without ';' is a plain line number.
func parseLocator(locator string) (int, error) {
	raw := locator
	if idx := strings.Index(raw, ";"); idx >= 0 {
		raw = raw[:idx]
	}
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrBadLocator, locator)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w %d", ErrBadLine, n)
	}
	return n, nil
}
