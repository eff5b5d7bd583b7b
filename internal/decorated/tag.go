package decorated

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/roach88/l5x/internal/logix"
)

func dataOfFormat(tag *etree.Element, format string) *etree.Element {
	for _, data := range tag.SelectElements(ElemData) {
		if data.SelectAttrValue(AttrFormat, "") == format {
			return data
		}
	}
	return nil
}

// TagData reads the value of a tag element from its Data children. The
// Decorated form is preferred; string tags exported with only a
// Format="String" element are read from its CDATA literal.
func TagData(tag *etree.Element, r Resolver) (logix.LogixType, error) {
	if r == nil {
		r = Builtins
	}
	if data := dataOfFormat(tag, FormatDecorated); data != nil {
		children := data.ChildElements()
		if len(children) != 1 {
			return nil, &StructuralError{Element: ElemData, Attribute: AttrFormat, Expected: "a single decorated value", Actual: strconv.Itoa(len(children)) + " elements"}
		}
		return decoder{r: r}.value(children[0], "")
	}
	if data := dataOfFormat(tag, FormatString); data != nil {
		dt, err := required(tag, "", AttrDataType)
		if err != nil {
			return nil, err
		}
		s, ok := r.Resolve(dt).(logix.String)
		if !ok {
			capacity, _ := strconv.Atoi(data.SelectAttrValue(AttrLength, ""))
			s = sizeUnknown(logix.NewStringType(dt, max(capacity, logix.DefaultStringCapacity)), data)
		}
		return stringText(data, "", s)
	}
	return nil, &StructuralError{Element: tag.Tag, Expected: "a Decorated or String Data element"}
}

// SetTagData replaces the Data children of a tag element with v. Strings
// are written in the Format="String" form; everything else as Decorated.
// The new Data element takes the position of the first one removed.
func SetTagData(tag *etree.Element, v logix.LogixType) error {
	data := etree.NewElement(ElemData)
	if s, ok := v.(logix.String); ok {
		data.CreateAttr(AttrFormat, FormatString)
		data.CreateAttr(AttrLength, strconv.Itoa(s.Len()))
		data.CreateCData(s.Literal())
	} else {
		el, err := Serialize(v)
		if err != nil {
			return err
		}
		data.CreateAttr(AttrFormat, FormatDecorated)
		data.AddChild(el)
	}

	at := -1
	for _, old := range tag.SelectElements(ElemData) {
		if at < 0 {
			at = old.Index()
		}
		tag.RemoveChild(old)
	}
	if at < 0 {
		tag.AddChild(data)
	} else {
		tag.InsertChildAt(at, data)
	}
	return nil
}
