package l5x

import (
	"github.com/roach88/l5x/internal/logix"
)

// Leaf is one atomic or string value below a tag, formatted for display.
// Path is relative to the value it was flattened from.
type Leaf struct {
	Path     string `json:"path"`
	DataType string `json:"data_type"`
	Radix    string `json:"radix"`
	Value    string `json:"value"`
}

// Flatten lists the leaves of v in member order. Atomics are formatted in
// their radix and strings as quoted literals. Undefined members yield an
// empty value.
func Flatten(v logix.LogixType) []Leaf {
	var out []Leaf
	for path, leaf := range logix.Leaves(v) {
		l := Leaf{Path: path, DataType: leaf.Name(), Radix: RadixOf(leaf).String()}
		switch x := leaf.(type) {
		case logix.Atomic:
			l.Value = x.String()
		case logix.String:
			l.Value = x.Literal()
		}
		out = append(out, l)
	}
	return out
}

// RadixOf returns the radix a value is displayed in: the atomic's own radix
// or its kind default, ASCII for strings and NullType otherwise.
func RadixOf(v logix.LogixType) logix.Radix {
	switch x := v.(type) {
	case logix.Atomic:
		if x.Radix() == logix.RadixNull {
			return x.Kind().DefaultRadix()
		}
		return x.Radix()
	case logix.String:
		return logix.RadixASCII
	}
	return logix.RadixNull
}
