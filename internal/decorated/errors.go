package decorated

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// StructuralError reports a missing or invalid attribute, or an unexpected
// element, while reading decorated data. Err holds the underlying logix
// codec error when a value failed to parse.
type StructuralError struct {
	// Path is the operand path of the failing value, relative to the root.
	Path string

	// Element is the tag name of the failing element.
	Element string

	// Attribute names the missing or invalid attribute (optional).
	Attribute string

	// Expected describes what was required.
	Expected string

	// Actual is what was found (optional).
	Actual string

	// Err is the underlying cause (optional).
	Err error
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	var b strings.Builder
	b.WriteString(e.Element)
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	if e.Attribute != "" {
		fmt.Fprintf(&b, ": attribute %s", e.Attribute)
	}
	fmt.Fprintf(&b, ": expected %s", e.Expected)
	if e.Actual != "" {
		fmt.Fprintf(&b, ", got %q", e.Actual)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *StructuralError) Unwrap() error { return e.Err }

// IsStructuralError returns true if err is or wraps a StructuralError.
func IsStructuralError(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

func missingAttr(el *etree.Element, path, attr string) *StructuralError {
	return &StructuralError{Path: path, Element: el.Tag, Attribute: attr, Expected: "attribute to be present"}
}

func invalidAttr(el *etree.Element, path, attr, expected, actual string, err error) *StructuralError {
	return &StructuralError{Path: path, Element: el.Tag, Attribute: attr, Expected: expected, Actual: actual, Err: err}
}

func unexpectedElement(el *etree.Element, path, expected string) *StructuralError {
	return &StructuralError{Path: path, Element: el.Tag, Expected: expected, Actual: el.Tag}
}
