package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/morozRed/tagjump/internal/cursor"
	"github.com/morozRed/tagjump/internal/fileutil"
	"github.com/morozRed/tagjump/internal/search"
	"github.com/morozRed/tagjump/internal/tags"
	"github.com/spf13/cobra"
)

func RunResolve(cmd *cobra.Command, args []string) error {
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}
	index, cfg, err := LoadIndex(cmd)
	if err != nil {
		return err
	}

	resolution := tags.Resolve(index, args[0]).InDir(cfg.TagDir())
	suggestions := suggestionsFor(index, resolution, cfg.SuggestLimit)
	if asJSON {
		return fileutil.PrintJSON(outWriter(cmd), resolutionPayload(resolution, suggestions))
	}
	return printResolution(outWriter(cmd), resolution, suggestions)
}

func RunLookup(cmd *cobra.Command, args []string) error {
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}
	index, cfg, err := LoadIndex(cmd)
	if err != nil {
		return err
	}

	matches := tags.RecordsInDir(index.Lookup(args[0]), cfg.TagDir())
	if matches == nil {
		matches = []tags.Record{}
	}
	if asJSON {
		return fileutil.PrintJSON(outWriter(cmd), map[string]any{
			"query":   args[0],
			"matches": matches,
		})
	}

	w := outWriter(cmd)
	fmt.Fprintf(w, "tag matches for %q (%d)\n", args[0], len(matches))
	for _, record := range matches {
		printRecord(w, "- ", record)
	}
	return nil
}

func RunJump(cmd *cobra.Command, args []string) error {
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}
	file, line, column, ok := ParseLocationQuery(args[0])
	if !ok || column == 0 {
		return fmt.Errorf("invalid position %q (want file:line:column)", args[0])
	}
	index, cfg, err := LoadIndex(cmd)
	if err != nil {
		return err
	}

	word, err := cursor.ReadWordAt(commandContext(cmd), file, line, column)
	if err != nil {
		return err
	}
	resolution := tags.Resolve(index, word.Text).InDir(cfg.TagDir())
	suggestions := suggestionsFor(index, resolution, cfg.SuggestLimit)
	if asJSON {
		payload := resolutionPayload(resolution, suggestions)
		payload["word"] = word
		return fileutil.PrintJSON(outWriter(cmd), payload)
	}
	return printResolution(outWriter(cmd), resolution, suggestions)
}

func RunEnclosing(cmd *cobra.Command, args []string) error {
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}
	file, line, _, ok := ParseLocationQuery(args[0])
	if !ok {
		return fmt.Errorf("invalid location %q (want file:line)", args[0])
	}
	index, cfg, err := LoadIndex(cmd)
	if err != nil {
		return err
	}

	record, found := index.EnclosingPath(cfg.TagDir(), file, line)
	if !found {
		return fmt.Errorf("no tagged symbol at or above %s:%d", file, line)
	}
	record = record.InDir(cfg.TagDir())
	if asJSON {
		return fileutil.PrintJSON(outWriter(cmd), map[string]any{
			"query":  args[0],
			"symbol": record,
		})
	}
	printRecord(outWriter(cmd), "", record)
	return nil
}

func suggestionsFor(index *tags.Index, resolution tags.Resolution, limit int) []search.Suggestion {
	if resolution.Status != tags.NotFound {
		return nil
	}
	return search.Suggest(index, resolution.Query, limit)
}

func resolutionPayload(resolution tags.Resolution, suggestions []search.Suggestion) map[string]any {
	payload := map[string]any{
		"status": resolution.Status.String(),
		"query":  resolution.Query,
	}
	if resolution.Record != nil {
		payload["record"] = resolution.Record
	}
	if len(resolution.Candidates) > 0 {
		payload["candidates"] = resolution.Candidates
	}
	if len(suggestions) > 0 {
		payload["suggestions"] = suggestions
	}
	return payload
}

// printResolution prints a unique hit as file:line, an ambiguous hit as a
// numbered candidate list, and turns a miss into an error.
func printResolution(w io.Writer, resolution tags.Resolution, suggestions []search.Suggestion) error {
	switch resolution.Status {
	case tags.Unique:
		fmt.Fprintln(w, resolution.Record.Location())
		return nil
	case tags.Ambiguous:
		fmt.Fprintf(w, "symbol %q is ambiguous (%d candidates)\n", resolution.Query, len(resolution.Candidates))
		for i, record := range resolution.Candidates {
			printRecord(w, fmt.Sprintf("%d. ", i+1), record)
		}
		return nil
	default:
		if len(suggestions) == 0 {
			return fmt.Errorf("symbol %q not found", resolution.Query)
		}
		names := make([]string, 0, len(suggestions))
		for _, suggestion := range suggestions {
			names = append(names, suggestion.Symbol)
		}
		return fmt.Errorf("symbol %q not found; did you mean: %s", resolution.Query, strings.Join(names, ", "))
	}
}

func printRecord(w io.Writer, prefix string, record tags.Record) {
	if record.Kind != "" {
		fmt.Fprintf(w, "%s%s [%s] %s\n", prefix, record.Symbol, record.Kind, record.Location())
		return
	}
	fmt.Fprintf(w, "%s%s %s\n", prefix, record.Symbol, record.Location())
}
