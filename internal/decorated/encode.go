package decorated

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/roach88/l5x/internal/logix"
)

// Serialize renders t as a top-level decorated element: DataValue for
// atomics, Array for arrays and Structure for structures and strings.
func Serialize(t logix.LogixType) (*etree.Element, error) {
	var el *etree.Element
	switch t.(type) {
	case logix.Atomic:
		el = etree.NewElement(ElemDataValue)
	case logix.Array:
		el = etree.NewElement(ElemArray)
	case logix.Structure, logix.String, logix.Undefined:
		el = etree.NewElement(ElemStructure)
	default:
		return nil, fmt.Errorf("decorated: cannot serialize %T", t)
	}
	if err := write(el, t); err != nil {
		return nil, err
	}
	return el, nil
}

// SerializeMember renders t as a named member element: DataValueMember,
// ArrayMember or StructureMember.
func SerializeMember(name string, t logix.LogixType) (*etree.Element, error) {
	var el *etree.Element
	switch t.(type) {
	case logix.Atomic:
		el = etree.NewElement(ElemDataValueMember)
	case logix.Array:
		el = etree.NewElement(ElemArrayMember)
	case logix.Structure, logix.String, logix.Undefined:
		el = etree.NewElement(ElemStructureMember)
	default:
		return nil, fmt.Errorf("decorated: cannot serialize member %s of type %T", name, t)
	}
	el.CreateAttr(AttrName, name)
	if err := write(el, t); err != nil {
		return nil, err
	}
	return el, nil
}

func write(el *etree.Element, t logix.LogixType) error {
	switch v := t.(type) {
	case logix.Atomic:
		return writeAtomic(el, v)
	case logix.Array:
		return writeArray(el, v)
	case logix.String:
		writeString(el, v)
		return nil
	case logix.Structure:
		return writeStructure(el, v)
	case logix.Undefined:
		el.CreateAttr(AttrDataType, v.Name())
		return nil
	}
	return fmt.Errorf("decorated: cannot serialize %T", t)
}

// radixOf returns the radix a is rendered in, falling back to the kind
// default when a carries none.
func radixOf(a logix.Atomic) logix.Radix {
	if a.Radix() == logix.RadixNull {
		return a.Kind().DefaultRadix()
	}
	return a.Radix()
}

func formatValue(a logix.Atomic) (string, error) {
	text, err := radixOf(a).Format(a)
	if err != nil {
		return "", fmt.Errorf("decorated: format %s: %w", a.Name(), err)
	}
	return text, nil
}

func writeAtomic(el *etree.Element, a logix.Atomic) error {
	text, err := formatValue(a)
	if err != nil {
		return err
	}
	el.CreateAttr(AttrDataType, a.Name())
	el.CreateAttr(AttrRadix, radixOf(a).String())
	el.CreateAttr(AttrValue, text)
	return nil
}

func writeArray(el *etree.Element, arr logix.Array) error {
	elems := arr.Elements()
	el.CreateAttr(AttrDataType, arr.Name())
	el.CreateAttr(AttrDimensions, arr.Dimensions().String())
	// One Radix attribute covers every Element, so all values use it.
	var r logix.Radix
	if a, ok := elems[0].(logix.Atomic); ok {
		r = radixOf(a)
		el.CreateAttr(AttrRadix, r.String())
	}
	dims := arr.Dimensions()
	for i, e := range elems {
		item := el.CreateElement(ElemElement)
		item.CreateAttr(AttrIndex, dims.Index(i))
		if a, ok := e.(logix.Atomic); ok {
			text, err := r.Format(a)
			if err != nil {
				return fmt.Errorf("decorated: format %s%s: %w", a.Name(), dims.Index(i), err)
			}
			item.CreateAttr(AttrValue, text)
			continue
		}
		child, err := Serialize(e)
		if err != nil {
			return err
		}
		item.AddChild(child)
	}
	return nil
}

func writeStructure(el *etree.Element, s logix.Structure) error {
	el.CreateAttr(AttrDataType, s.Name())
	for _, m := range s.Members() {
		child, err := SerializeMember(m.Name, m.Type)
		if err != nil {
			return err
		}
		el.AddChild(child)
	}
	return nil
}

// writeString renders the LEN/DATA pair. DATA carries the quoted literal
// as CDATA instead of an element per byte.
func writeString(el *etree.Element, s logix.String) {
	el.CreateAttr(AttrDataType, s.Name())

	length := el.CreateElement(ElemDataValueMember)
	length.CreateAttr(AttrName, logix.StringLenMember)
	length.CreateAttr(AttrDataType, logix.KindDint.String())
	length.CreateAttr(AttrRadix, logix.RadixDecimal.String())
	length.CreateAttr(AttrValue, strconv.Itoa(s.Len()))

	data := el.CreateElement(ElemDataValueMember)
	data.CreateAttr(AttrName, logix.StringDataMember)
	data.CreateAttr(AttrDataType, s.Name())
	data.CreateAttr(AttrRadix, logix.RadixASCII.String())
	data.CreateCData(s.Literal())
}
