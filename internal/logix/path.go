package logix

import (
	"iter"
	"strings"
)

// SplitPath splits an operand path into member names:
//
//	"Status.Values[1,2].3" -> ["Status", "Values", "[1,2]", "3"]
func SplitPath(path string) ([]string, error) {
	var segs []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			segs = append(segs, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(path); i++ {
		switch c := path[i]; c {
		case '.':
			if cur.Len() == 0 && (i == 0 || path[i-1] != ']') {
				return nil, formatError(path, "empty member name")
			}
			flush()
		case '[':
			flush()
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				return nil, formatError(path, "unterminated index")
			}
			segs = append(segs, strings.ReplaceAll(path[i:i+end+1], " ", ""))
			i += end
		case ' ', '\t':
			return nil, formatError(path, "whitespace in operand path")
		default:
			cur.WriteByte(c)
		}
	}
	if strings.HasSuffix(path, ".") {
		return nil, formatError(path, "empty member name")
	}
	flush()
	return segs, nil
}

// JoinPath is the inverse of SplitPath. Empty segments are skipped.
func JoinPath(segs ...string) string {
	var b strings.Builder
	for _, s := range segs {
		if s == "" {
			continue
		}
		if b.Len() > 0 && !strings.HasPrefix(s, "[") {
			b.WriteByte('.')
		}
		b.WriteString(s)
	}
	return b.String()
}

// Lookup follows an operand path from t. An empty path returns t.
func Lookup(t LogixType, path string) (LogixType, error) {
	segs, err := SplitPath(path)
	if err != nil {
		return nil, err
	}
	for _, s := range segs {
		if t, err = Child(t, s); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Set writes v at the operand path and returns the new root. Every value
// along the path is replaced by a copy holding the new child; t is unchanged.
func Set(t LogixType, path string, v LogixType) (LogixType, error) {
	segs, err := SplitPath(path)
	if err != nil {
		return t, err
	}
	if len(segs) == 0 {
		return assign(t, v)
	}
	return setPath(t, segs, v)
}

func setPath(t LogixType, segs []string, v LogixType) (LogixType, error) {
	if len(segs) == 1 {
		return WithMember(t, segs[0], v)
	}
	child, err := Child(t, segs[0])
	if err != nil {
		return t, err
	}
	nc, err := setPath(child, segs[1:], v)
	if err != nil {
		return t, err
	}
	return WithMember(t, segs[0], nc)
}

// Leaves yields every atomic and string value below t with its operand path
// relative to t. Strings are leaves; bits of integers are not expanded.
func Leaves(t LogixType) iter.Seq2[string, LogixType] {
	return func(yield func(string, LogixType) bool) {
		walkLeaves(t, "", yield)
	}
}

func walkLeaves(t LogixType, prefix string, yield func(string, LogixType) bool) bool {
	switch v := t.(type) {
	case Atomic, String, Undefined:
		return yield(prefix, t)
	case Array:
		for i, e := range v.elems {
			if !walkLeaves(e, prefix+v.dims.Index(i), yield) {
				return false
			}
		}
	case Structure:
		for _, m := range v.members {
			if !walkLeaves(m.Type, JoinPath(prefix, m.Name), yield) {
				return false
			}
		}
	}
	return true
}
