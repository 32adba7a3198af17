package tags

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadPreservesFileOrder(t *testing.T) {
	path := writeTagFile(t,
		"A\tf1.go\t10;\"\tf",
		"B\tf2.go\t20;\"\tf",
		"A\tf3.go\t30;\"\tf",
	)

	index, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if index.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", index.Len())
	}

	got := index.Lookup("A")
	if len(got) != 2 {
		t.Fatalf("expected two matches for A, got %#v", got)
	}
	if got[0].File != "f1.go" || got[0].Line != 10 || got[1].File != "f3.go" || got[1].Line != 30 {
		t.Fatalf("expected file order to be preserved, got %#v", got)
	}

	resolution := index.Resolve("B")
	if resolution.Status != Unique || resolution.Record == nil {
		t.Fatalf("expected unique resolution for B, got %#v", resolution)
	}
	if resolution.Record.File != "f2.go" || resolution.Record.Line != 20 {
		t.Fatalf("unexpected record for B: %#v", resolution.Record)
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	lines := make([]string, 0, 11)
	for i := 1; i <= 10; i++ {
		lines = append(lines, fmt.Sprintf("Sym%d\tfile.go\t%d;\"\tf", i, i*10))
		if i == 5 {
			lines = append(lines, "Broken\tfile.go")
		}
	}
	path := writeTagFile(t, lines...)

	index, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if index.Len() != 10 {
		t.Fatalf("expected 10 usable records, got %d", index.Len())
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
	if warnings[0].Line != 6 || warnings[0].Text != "Broken\tfile.go" {
		t.Fatalf("unexpected warning %#v", warnings[0])
	}
	if !strings.Contains(warnings[0].String(), "line 6:") {
		t.Fatalf("unexpected warning text %q", warnings[0].String())
	}
}

func TestLoadNonNumericLocatorIsWarning(t *testing.T) {
	path := writeTagFile(t,
		"Good\tfile.go\t3;\"\tf",
		"Bad\tfile.go\tabc;\"\tf",
	)
	index, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if index.Len() != 1 || len(warnings) != 1 {
		t.Fatalf("expected 1 record and 1 warning, got %d and %v", index.Len(), warnings)
	}
	if index.Resolve("Bad").Status != NotFound {
		t.Fatalf("malformed record must not be queryable")
	}
}

func TestLoadSkipsPseudoTagsAndBlankLines(t *testing.T) {
	path := writeTagFile(t,
		"!_TAG_FILE_FORMAT\t2\t/extended format/",
		"!_TAG_FILE_SORTED\t1\t/0=unsorted, 1=sorted/",
		"",
		"\r",
		"Run\tmain.go\t7;\"\tf",
	)
	index, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected header and blank lines to be skipped silently, got %v", warnings)
	}
	if index.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", index.Len())
	}
}

func TestParseWarnsOnBlankFields(t *testing.T) {
	index, warnings, err := Parse(strings.NewReader("A\tf.go\t1\n\t\t\n \tx.go\t3\n   \n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if index.Len() != 1 {
		t.Fatalf("expected only the well-formed record, got %#v", index.Records())
	}
	if len(warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %v", warnings)
	}
	for i, want := range []int{2, 3, 4} {
		if warnings[i].Line != want {
			t.Fatalf("warning %d: expected line %d, got %d", i, want, warnings[i].Line)
		}
	}
	if index.Lookup(" ") != nil {
		t.Fatalf("blank symbol must not be indexed")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("failed to write tag file: %v", err)
	}
	index, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if index.Len() != 0 || len(warnings) != 0 {
		t.Fatalf("expected empty index, got %d records and %v", index.Len(), warnings)
	}
	for _, name := range []string{"A", "main", ""} {
		if got := index.Resolve(name).Status; got != NotFound {
			t.Fatalf("expected NotFound for %q, got %s", name, got)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-tags")
	_, _, err := Load(path)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IOError, got %T", err)
	}
	if ioErr.Path != path {
		t.Fatalf("expected path %s, got %s", path, ioErr.Path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected error to wrap fs.ErrNotExist, got %v", err)
	}
}

func TestLookupIsCaseSensitive(t *testing.T) {
	index := mustParse(t, "Foo\tfoo.go\t1;\"\tf")
	if got := index.Lookup("foo"); len(got) != 0 {
		t.Fatalf("expected no match for lowercase query, got %#v", got)
	}
	if got := index.Lookup("Foo"); len(got) != 1 {
		t.Fatalf("expected exact match, got %#v", got)
	}
}

func TestLookupMatchesWholeField(t *testing.T) {
	index := mustParse(t,
		"Run\trun.go\t1",
		"RunAll\trun.go\t5",
		"a.b\tdot.go\t9",
	)
	if got := index.Lookup("Run"); len(got) != 1 || got[0].Symbol != "Run" {
		t.Fatalf("expected only the exact Run record, got %#v", got)
	}
	if got := index.Lookup("a.b"); len(got) != 1 {
		t.Fatalf("expected literal match for a.b, got %#v", got)
	}
	if got := index.Lookup("axb"); len(got) != 0 {
		t.Fatalf("metacharacters must not match, got %#v", got)
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	index := mustParse(t, "Run\trun.go\t1")
	got := index.Lookup("Run")
	got[0].File = "changed.go"
	if again := index.Lookup("Run"); again[0].File != "run.go" {
		t.Fatalf("lookup result mutated the index: %#v", again)
	}
	records := index.Records()
	records[0].Line = 99
	if index.Records()[0].Line != 1 {
		t.Fatalf("records result mutated the index")
	}
}

func TestSymbolsFirstOccurrenceOrder(t *testing.T) {
	index := mustParse(t,
		"B\tb.go\t1",
		"A\ta.go\t1",
		"B\tc.go\t1",
	)
	if got := index.Symbols(); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Fatalf("unexpected symbols %v", got)
	}
}

func TestEnclosing(t *testing.T) {
	index := mustParse(t,
		"Server\tserver.go\t10;\"\tt",
		"Start\tserver.go\t20;\"\tm",
		"Stop\tserver.go\t40;\"\tm",
		"Other\tother.go\t15;\"\tf",
	)

	record, ok := index.Enclosing("server.go", 25)
	if !ok || record.Symbol != "Start" {
		t.Fatalf("expected Start to enclose line 25, got %#v (ok=%v)", record, ok)
	}
	record, ok = index.Enclosing("server.go", 40)
	if !ok || record.Symbol != "Stop" {
		t.Fatalf("expected exact line match Stop, got %#v", record)
	}
	if _, ok := index.Enclosing("server.go", 5); ok {
		t.Fatalf("expected no record before the first definition")
	}
	if got := index.ByFile("other.go"); len(got) != 1 || got[0].Symbol != "Other" {
		t.Fatalf("unexpected ByFile result %#v", got)
	}
	if got := index.ByFile("./other.go"); len(got) != 1 || got[0].Symbol != "Other" {
		t.Fatalf("expected ./other.go to match other.go, got %#v", got)
	}
}

func TestParseLongLineFails(t *testing.T) {
	long := "Sym\tfile.go\t1;\"\t" + strings.Repeat("x", maxLineSize+1)
	_, _, err := Parse(strings.NewReader(long))
	if err == nil {
		t.Fatalf("expected scan error for oversized line")
	}
}

func mustParse(t *testing.T, lines ...string) *Index {
	t.Helper()
	index, warnings, err := Parse(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	return index
}

func writeTagFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tags")
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write tag file: %v", err)
	}
	return path
}
