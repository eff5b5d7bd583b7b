package l5x

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotL5X is returned when a document's root is not RSLogix5000Content.
var ErrNotL5X = errors.New("not an L5X document")

// ErrTagNotFound is returned when a tag lookup fails.
var ErrTagNotFound = errors.New("tag not found")

// ErrAlias is returned when reading or writing the value of an alias tag.
var ErrAlias = errors.New("alias tags carry no data")

// TagFailure is one tag that could not be read.
type TagFailure struct {
	Path string
	Err  error
}

// LoadError aggregates the tags that failed to load from a document.
type LoadError struct {
	Failures []TagFailure
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d tag(s) failed to load", len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "\n  %s: %v", f.Path, f.Err)
	}
	return b.String()
}

// Unwrap returns the individual failures.
func (e *LoadError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}
