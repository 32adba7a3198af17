package tags

import (
	"path/filepath"
	"strings"
)

// Tag files written by ctags name files relative to the directory holding
// the tag file. The helpers below translate between that form and paths a
// caller can open.

// InDir returns r with a relative File joined onto dir. Absolute paths and
// an empty dir leave r unchanged.
func (r Record) InDir(dir string) Record {
	if dir == "" || filepath.IsAbs(r.File) {
		return r
	}
	r.File = filepath.Join(dir, r.File)
	return r
}

// RecordsInDir applies InDir to each record.
func RecordsInDir(records []Record, dir string) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, record := range records {
		out[i] = record.InDir(dir)
	}
	return out
}

// InDir rewrites the record and candidates of a resolution onto dir.
func (r Resolution) InDir(dir string) Resolution {
	if r.Record != nil {
		record := r.Record.InDir(dir)
		r.Record = &record
	}
	r.Candidates = RecordsInDir(r.Candidates, dir)
	return r
}

// TagPaths returns the spellings a tag file in dir could use for path: the
// path relative to dir when it lies inside dir, then the absolute path.
// path itself may be absolute or relative to the working directory.
func TagPaths(dir, path string) []string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return []string{filepath.Clean(path)}
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return []string{absPath}
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return []string{absPath}
	}
	return []string{rel, absPath}
}

// EnclosingPath is Enclosing for a path given relative to the working
// directory (or absolute), with the tag file living in dir.
func (idx *Index) EnclosingPath(dir, path string, line int) (Record, bool) {
	for _, candidate := range TagPaths(dir, path) {
		if record, ok := idx.Enclosing(candidate, line); ok {
			return record, true
		}
	}
	return Record{}, false
}
