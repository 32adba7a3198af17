package tags

import (
	"errors"
	"fmt"
)

var (
	ErrTooFewFields = errors.New("expected at least 3 tab-separated fields")
	ErrEmptySymbol  = errors.New("empty symbol name")
	ErrEmptyFile    = errors.New("empty file path")
	ErrBadLocator   = errors.New("invalid line locator")
	ErrBadLine      = errors.New("line number must be >= 1")
)

// IOError reports a tag file that could not be opened or read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to read tag file %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Warning describes a tag line that was skipped during a load.
type Warning struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Reason)
}
