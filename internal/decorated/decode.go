package decorated

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/roach88/l5x/internal/logix"
)

// Resolver maps a data type name to a zero-valued prototype. Names it does
// not know resolve to logix.Undefined.
type Resolver interface {
	Resolve(name string) logix.LogixType
}

type builtinResolver struct{}

func (builtinResolver) Resolve(name string) logix.LogixType {
	if t, ok := logix.Builtin(name); ok {
		return t
	}
	return logix.NewUndefined(name)
}

// Builtins resolves predefined type names only.
var Builtins Resolver = builtinResolver{}

// Deserialize reads a decorated element (top-level or member form) into a
// value. Member DataType attributes are resolved through r before
// recursing; a nil r resolves predefined types only.
func Deserialize(el *etree.Element, r Resolver) (logix.LogixType, error) {
	if r == nil {
		r = Builtins
	}
	return decoder{r: r}.value(el, "")
}

type decoder struct {
	r Resolver
}

func (d decoder) value(el *etree.Element, path string) (logix.LogixType, error) {
	switch el.Tag {
	case ElemDataValue, ElemDataValueMember:
		return d.dataValue(el, path)
	case ElemArray, ElemArrayMember:
		return d.array(el, path)
	case ElemStructure, ElemStructureMember:
		return d.structure(el, path)
	}
	return nil, unexpectedElement(el, path, "DataValue, Array or Structure")
}

func required(el *etree.Element, path, key string) (string, error) {
	a := el.SelectAttr(key)
	if a == nil {
		return "", missingAttr(el, path, key)
	}
	return a.Value, nil
}

// charData returns the trimmed text and CDATA content of el.
func charData(el *etree.Element) string {
	var b strings.Builder
	for _, tok := range el.Child {
		if cd, ok := tok.(*etree.CharData); ok {
			b.WriteString(cd.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// radix reads the Radix attribute; absent or NullType means the default
// for dataType.
func radix(el *etree.Element, path, dataType string) (logix.Radix, error) {
	a := el.SelectAttr(AttrRadix)
	if a == nil {
		return logix.DefaultRadix(dataType), nil
	}
	r, err := logix.ParseRadix(a.Value)
	if err != nil {
		return logix.RadixNull, invalidAttr(el, path, AttrRadix, "a radix name", a.Value, err)
	}
	if r == logix.RadixNull {
		return logix.DefaultRadix(dataType), nil
	}
	return r, nil
}

func parseValue(el *etree.Element, path string, r logix.Radix, kind logix.AtomicKind, text string) (logix.Atomic, error) {
	a, err := r.ParseAs(text, kind)
	if err != nil {
		return logix.Atomic{}, invalidAttr(el, path, AttrValue, fmt.Sprintf("a %s value in %s radix", kind, r), text, err)
	}
	return a, nil
}

func (d decoder) dataValue(el *etree.Element, path string) (logix.LogixType, error) {
	dt, err := required(el, path, AttrDataType)
	if err != nil {
		return nil, err
	}
	kind, ok := logix.LookupKind(dt)
	if !ok {
		if s, ok := d.r.Resolve(dt).(logix.String); ok {
			return stringText(el, path, s)
		}
		if charData(el) != "" {
			return stringText(el, path, sizeUnknown(logix.NewStringType(dt, 0), el))
		}
		return nil, invalidAttr(el, path, AttrDataType, "an atomic data type", dt, nil)
	}
	r, err := radix(el, path, dt)
	if err != nil {
		return nil, err
	}
	text, err := required(el, path, AttrValue)
	if err != nil {
		return nil, err
	}
	return parseValue(el, path, r, kind, text)
}

// sizeUnknown widens a string of an unresolved type to hold the literal in
// el. The default capacity is the floor.
func sizeUnknown(s logix.String, el *etree.Element) logix.String {
	b, err := logix.ParseLiteral(charData(el))
	if err != nil || len(b) <= s.Capacity() {
		return s
	}
	return logix.NewStringType(s.Name(), len(b))
}

func stringText(el *etree.Element, path string, s logix.String) (logix.String, error) {
	lit := charData(el)
	if lit == "" {
		return s, nil
	}
	out, err := s.WithLiteral(lit)
	if err != nil {
		return s, &StructuralError{Path: path, Element: el.Tag, Expected: "a quoted string literal", Actual: lit, Err: err}
	}
	return out, nil
}

func dimensions(el *etree.Element, path string) (logix.Dimensions, error) {
	attr := el.SelectAttr(AttrDimensions)
	if attr == nil {
		attr = el.SelectAttr(AttrDimension)
	}
	if attr == nil {
		return logix.Dimensions{}, missingAttr(el, path, AttrDimensions)
	}
	dims, err := logix.ParseDimensions(attr.Value)
	if err == nil && dims.IsEmpty() {
		err = fmt.Errorf("array needs at least one element")
	}
	if err != nil {
		return logix.Dimensions{}, invalidAttr(el, path, attr.Key, "one to three positive dimensions", attr.Value, err)
	}
	return dims, nil
}

func (d decoder) array(el *etree.Element, path string) (logix.LogixType, error) {
	dt, err := required(el, path, AttrDataType)
	if err != nil {
		return nil, err
	}
	dims, err := dimensions(el, path)
	if err != nil {
		return nil, err
	}

	kind, atomic := logix.LookupKind(dt)
	var (
		r     logix.Radix
		proto logix.LogixType
	)
	if atomic {
		if r, err = radix(el, path, dt); err != nil {
			return nil, err
		}
		zero, err := logix.NewAtomicWithRadix(kind, r)
		if err != nil {
			return nil, invalidAttr(el, path, AttrRadix, "a radix supported by "+dt, r.String(), err)
		}
		proto = zero
	} else {
		proto = d.r.Resolve(dt)
	}

	elems := make([]logix.LogixType, dims.Len())
	for _, item := range el.ChildElements() {
		if item.Tag != ElemElement {
			return nil, unexpectedElement(item, path, ElemElement)
		}
		idx, err := required(item, path, AttrIndex)
		if err != nil {
			return nil, err
		}
		coords, err := logix.ParseIndex(idx)
		if err != nil {
			return nil, invalidAttr(item, path, AttrIndex, "a bracketed index", idx, err)
		}
		pos, err := dims.Linear(coords...)
		if err != nil {
			return nil, invalidAttr(item, path, AttrIndex, "an index within "+dims.String(), idx, err)
		}
		itemPath := path + logix.FormatIndex(coords...)

		if atomic {
			text, err := required(item, itemPath, AttrValue)
			if err != nil {
				return nil, err
			}
			if elems[pos], err = parseValue(item, itemPath, r, kind, text); err != nil {
				return nil, err
			}
			continue
		}
		children := item.ChildElements()
		if len(children) != 1 {
			return nil, &StructuralError{Path: itemPath, Element: ElemElement, Expected: "a single Structure child"}
		}
		if elems[pos], err = d.value(children[0], itemPath); err != nil {
			return nil, err
		}
	}

	fill := proto
	for _, e := range elems {
		if e != nil && logix.IsUndefined(fill) {
			fill = e
		}
	}
	for i := range elems {
		if elems[i] == nil {
			elems[i] = fill
		}
	}
	arr, err := logix.NewArrayOf(dims, elems...)
	if err != nil {
		return nil, &StructuralError{Path: path, Element: el.Tag, Expected: "elements of data type " + dt, Err: err}
	}
	return arr, nil
}

func (d decoder) structure(el *etree.Element, path string) (logix.LogixType, error) {
	dt, err := required(el, path, AttrDataType)
	if err != nil {
		return nil, err
	}
	proto := d.r.Resolve(dt)
	if s, ok := proto.(logix.String); ok {
		return d.stringMembers(el, path, s, true)
	}
	children := el.ChildElements()
	if logix.IsUndefined(proto) {
		if looksLikeString(children) {
			return d.stringMembers(el, path, logix.NewStringType(dt, 0), false)
		}
		if len(children) == 0 {
			return proto, nil
		}
	}

	class := logix.DataTypeClassUnknown
	var defaults []logix.Member
	if s, ok := proto.(logix.Structure); ok {
		class = s.DataTypeClass()
		defaults = s.Members()
	}

	members := make([]logix.Member, 0, len(children))
	seen := make(map[string]bool, len(children))
	for _, c := range children {
		switch c.Tag {
		case ElemDataValueMember, ElemArrayMember, ElemStructureMember:
		default:
			return nil, unexpectedElement(c, path, "a member element")
		}
		name, err := required(c, path, AttrName)
		if err != nil {
			return nil, err
		}
		v, err := d.value(c, logix.JoinPath(path, name))
		if err != nil {
			return nil, err
		}
		members = append(members, logix.Member{Name: name, Type: v})
		seen[strings.ToUpper(name)] = true
	}
	// Members the document omits keep their type's zero value.
	for _, m := range defaults {
		if !seen[strings.ToUpper(m.Name)] {
			members = append(members, m)
		}
	}
	return logix.NewStructure(dt, class, members...), nil
}

func looksLikeString(children []*etree.Element) bool {
	if len(children) != 2 {
		return false
	}
	return strings.EqualFold(children[0].SelectAttrValue(AttrName, ""), logix.StringLenMember) &&
		strings.EqualFold(children[1].SelectAttrValue(AttrName, ""), logix.StringDataMember)
}

// stringMembers reads the LEN/DATA form of a string. LEN is ignored; the
// length always follows DATA. DATA is either a CDATA literal or an
// ArrayMember of SINT. When the type is not known, an array DATA sets the
// capacity.
func (d decoder) stringMembers(el *etree.Element, path string, s logix.String, known bool) (logix.LogixType, error) {
	for _, c := range el.ChildElements() {
		name := c.SelectAttrValue(AttrName, "")
		memberPath := logix.JoinPath(path, name)
		switch {
		case strings.EqualFold(name, logix.StringLenMember):
			continue
		case !strings.EqualFold(name, logix.StringDataMember):
			return nil, unexpectedElement(c, path, "LEN or DATA member")
		}
		switch c.Tag {
		case ElemDataValueMember:
			if !known {
				s = sizeUnknown(s, c)
			}
			out, err := stringText(c, memberPath, s)
			if err != nil {
				return nil, err
			}
			s = out
		case ElemArrayMember:
			v, err := d.array(c, memberPath)
			if err != nil {
				return nil, err
			}
			arr := v.(logix.Array)
			if !known {
				s = logix.NewStringType(s.Name(), arr.Len())
			}
			out, err := logix.WithMember(s, logix.StringDataMember, arr)
			if err != nil {
				return nil, &StructuralError{Path: memberPath, Element: c.Tag, Expected: "an array of SINT", Err: err}
			}
			s = out.(logix.String)
		default:
			return nil, unexpectedElement(c, path, "DataValueMember or ArrayMember")
		}
	}
	return s, nil
}
