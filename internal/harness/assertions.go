package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/l5x/internal/l5x"
	"github.com/roach88/l5x/internal/logix"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Path     string
	Check    string // "value", "radix", "data_type" or "error"
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: %s %s: expected %q, actual %q", e.Path, e.Check, e.Expected, e.Actual)
}

// EvaluateAssertions checks every assertion against doc and returns one
// message per failure, in assertion order.
func EvaluateAssertions(doc *l5x.Document, assertions []Assertion) []string {
	var failures []string
	for _, a := range assertions {
		for _, err := range evaluate(doc, a) {
			failures = append(failures, err.Error())
		}
	}
	return failures
}

func evaluate(doc *l5x.Document, a Assertion) []error {
	v, err := read(doc, a.Path)
	if a.Error != "" {
		if got := Category(err); got != a.Error {
			actual := "no error"
			if err != nil {
				actual = got + ": " + err.Error()
			}
			return []error{&AssertionError{Path: a.Path, Check: "error", Expected: a.Error, Actual: actual}}
		}
		return nil
	}
	if err != nil {
		return []error{fmt.Errorf("assertion failed: %s: %w", a.Path, err)}
	}

	var errs []error
	if a.DataType != "" && !strings.EqualFold(a.DataType, v.Name()) {
		errs = append(errs, &AssertionError{Path: a.Path, Check: "data_type", Expected: a.DataType, Actual: v.Name()})
	}
	if a.Radix != "" {
		if got := l5x.RadixOf(v).String(); !strings.EqualFold(a.Radix, got) {
			errs = append(errs, &AssertionError{Path: a.Path, Check: "radix", Expected: a.Radix, Actual: got})
		}
	}
	if a.Value != "" {
		if err := checkValue(a, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func read(doc *l5x.Document, operand string) (logix.LogixType, error) {
	tag, path, err := doc.Operand(operand)
	if err != nil {
		return nil, err
	}
	return tag.Get(path)
}

// checkValue matches the formatted text exactly, or any text that parses to
// an equal value.
func checkValue(a Assertion, v logix.LogixType) error {
	switch x := v.(type) {
	case logix.Atomic:
		actual := x.String()
		if actual == a.Value {
			return nil
		}
		if want, err := logix.ParseAtomic(x.Kind(), a.Value); err == nil && logix.AtomicEqual(want, x) {
			return nil
		}
		return &AssertionError{Path: a.Path, Check: "value", Expected: a.Value, Actual: actual}
	case logix.String:
		actual := x.Text()
		if strings.HasPrefix(a.Value, "'") {
			actual = x.Literal()
		}
		if actual != a.Value {
			return &AssertionError{Path: a.Path, Check: "value", Expected: a.Value, Actual: actual}
		}
		return nil
	}
	return fmt.Errorf("assertion failed: %s: value checks need an atomic or string operand, got %s %s", a.Path, v.Class(), v.Name())
}
