package tags

import "strings"

// Status classifies the outcome of a Resolve call.
type Status int

const (
	NotFound Status = iota
	Unique
	Ambiguous
)

func (s Status) String() string {
	switch s {
	case NotFound:
		return "not_found"
	case Unique:
		return "unique"
	case Ambiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Resolution is the result of resolving a symbol name. Record is set only for
// Unique; Candidates holds every match for Ambiguous.
type Resolution struct {
	Status     Status   `json:"status"`
	Query      string   `json:"query"`
	Record     *Record  `json:"record,omitempty"`
	Candidates []Record `json:"candidates,omitempty"`
}

// Resolve looks up name and classifies the matches.
func (idx *Index) Resolve(name string) Resolution {
	matches := idx.Lookup(name)
	switch len(matches) {
	case 0:
		return Resolution{Status: NotFound, Query: name}
	case 1:
		record := matches[0]
		return Resolution{Status: Unique, Query: name, Record: &record}
	default:
		return Resolution{Status: Ambiguous, Query: name, Candidates: matches}
	}
}

// Resolve resolves symbolText against index. Surrounding whitespace is
// ignored; a nil index resolves to NotFound.
func Resolve(index *Index, symbolText string) Resolution {
	name := strings.TrimSpace(symbolText)
	if index == nil || name == "" {
		return Resolution{Status: NotFound, Query: name}
	}
	return index.Resolve(name)
}
