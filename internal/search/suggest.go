package search

import (
	"sort"
	"strings"

	"github.com/morozRed/tagjump/internal/tags"
)

// Suggestion is a symbol name close to a query that did not resolve.
type Suggestion struct {
	Symbol   string `json:"symbol"`
	Distance int    `json:"distance"`
}

// Suggest returns at most limit indexed symbol names within a typo distance
// of query, closest first. Comparison is case-insensitive, so "foo" suggests
// "Foo". A limit of zero turns suggestions off.
func Suggest(index *tags.Index, query string, limit int) []Suggestion {
	if index == nil || index.Len() == 0 || limit <= 0 {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil
	}

	results := make([]Suggestion, 0)
	for _, symbol := range index.Symbols() {
		if symbol == query {
			continue
		}
		candidate := strings.ToLower(symbol)
		distance := levenshteinDistance(needle, candidate)
		threshold := len(candidate) / 3
		if threshold < 2 {
			threshold = 2
		}
		if distance > threshold {
			continue
		}
		results = append(results, Suggestion{Symbol: symbol, Distance: distance})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Symbol < results[j].Symbol
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func levenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		current := make([]int, len(b)+1)
		current[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			ins := current[j-1] + 1
			del := prev[j] + 1
			sub := prev[j-1] + cost
			current[j] = min(ins, del, sub)
		}
		prev = current
	}

	return prev[len(b)]
}
