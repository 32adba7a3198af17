package tags

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRecordInDir(t *testing.T) {
	record := Record{Symbol: "Run", File: "cmd/main.go", Line: 4}
	if got := record.InDir("proj").File; got != filepath.Join("proj", "cmd", "main.go") {
		t.Fatalf("expected path under proj, got %q", got)
	}
	if got := record.InDir("").File; got != "cmd/main.go" {
		t.Fatalf("empty dir must leave the path alone, got %q", got)
	}
	if got := record.InDir(".").File; got != filepath.Join("cmd", "main.go") {
		t.Fatalf("unexpected path for dot dir %q", got)
	}

	abs := filepath.Join(t.TempDir(), "main.go")
	record.File = abs
	if got := record.InDir("proj").File; got != abs {
		t.Fatalf("absolute path must be kept, got %q", got)
	}
}

func TestResolutionInDir(t *testing.T) {
	index := mustParse(t,
		"Run\tmain.go\t4",
		"Start\tserver.go\t10",
		"Start\tworker.go\t22",
	)

	unique := index.Resolve("Run").InDir("proj")
	if unique.Record.File != filepath.Join("proj", "main.go") {
		t.Fatalf("unexpected unique record %#v", unique.Record)
	}
	if got := index.Lookup("Run")[0].File; got != "main.go" {
		t.Fatalf("index records must not change, got %q", got)
	}

	ambiguous := index.Resolve("Start").InDir("proj")
	got := []string{ambiguous.Candidates[0].File, ambiguous.Candidates[1].File}
	want := []string{filepath.Join("proj", "server.go"), filepath.Join("proj", "worker.go")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if missing := index.Resolve("Nope").InDir("proj"); missing.Record != nil || missing.Candidates != nil {
		t.Fatalf("unexpected NotFound payload %#v", missing)
	}
}

func TestTagPaths(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "proj")
	inside := filepath.Join(dir, "pkg", "main.go")
	outside := filepath.Join(root, "other", "main.go")

	if got := TagPaths(dir, inside); !reflect.DeepEqual(got, []string{filepath.Join("pkg", "main.go"), inside}) {
		t.Fatalf("unexpected spellings for a file inside the tag dir: %v", got)
	}
	if got := TagPaths(dir, outside); !reflect.DeepEqual(got, []string{outside}) {
		t.Fatalf("unexpected spellings for a file outside the tag dir: %v", got)
	}
}

func TestEnclosingPath(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	dir := filepath.Join(root, "proj")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	abs := filepath.Join(root, "vendor", "lib.go")
	index := mustParse(t,
		"Run\tmain.go\t4",
		"Lib\t"+abs+"\t2",
	)

	originalWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get cwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	defer func() {
		_ = os.Chdir(originalWD)
	}()

	for _, query := range []string{"main.go", "./main.go", filepath.Join(dir, "main.go"), filepath.Join("..", "proj", "main.go")} {
		record, ok := index.EnclosingPath(".", query, 5)
		if !ok || record.Symbol != "Run" {
			t.Fatalf("EnclosingPath(%q) = %#v, %v", query, record, ok)
		}
	}
	if record, ok := index.EnclosingPath(".", abs, 3); !ok || record.Symbol != "Lib" {
		t.Fatalf("expected absolute tag path to match, got %#v, %v", record, ok)
	}
	if _, ok := index.EnclosingPath(dir, filepath.Join(root, "main.go"), 5); ok {
		t.Fatalf("a file outside the tag dir must not match a relative record")
	}
}
