package l5x

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/roach88/l5x/internal/decorated"
	"github.com/roach88/l5x/internal/logix"
)

// Tag is a controller or program tag of a Document. The descriptive fields
// are read when the tag is listed; Value reads the data on demand.
type Tag struct {
	Name           string
	Scope          string
	TagType        string
	DataType       string
	Dimensions     logix.Dimensions
	Radix          logix.Radix
	ExternalAccess string
	Description    string
	AliasFor       string

	el  *etree.Element
	doc *Document
}

func (d *Document) newTag(el *etree.Element, scope string) *Tag {
	t := &Tag{
		Name:           el.SelectAttrValue("Name", ""),
		Scope:          scope,
		TagType:        el.SelectAttrValue("TagType", "Base"),
		DataType:       el.SelectAttrValue(decorated.AttrDataType, ""),
		ExternalAccess: el.SelectAttrValue(decorated.AttrExternalAccess, ""),
		AliasFor:       el.SelectAttrValue("AliasFor", ""),
		el:             el,
		doc:            d,
	}
	if dims, err := logix.ParseDimensions(el.SelectAttrValue(decorated.AttrDimensions, "")); err == nil {
		t.Dimensions = dims
	}
	if r, err := logix.ParseRadix(el.SelectAttrValue(decorated.AttrRadix, "")); err == nil {
		t.Radix = r
	}
	if desc := el.SelectElement(elemDescription); desc != nil {
		t.Description = strings.TrimSpace(desc.Text())
	}
	return t
}

// Path returns the full operand of the tag: "Name" for controller tags,
// "Program:<program>.Name" for program tags.
func (t *Tag) Path() string { return tagPath(t.Scope, t.Name) }

// IsAlias reports whether the tag is an alias of another operand.
func (t *Tag) IsAlias() bool { return strings.EqualFold(t.TagType, "Alias") }

// Element returns the underlying Tag element.
func (t *Tag) Element() *etree.Element { return t.el }

// Value reads the tag's current value.
func (t *Tag) Value() (logix.LogixType, error) {
	if t.IsAlias() {
		return nil, fmt.Errorf("%s: %w", t.Path(), ErrAlias)
	}
	v, err := decorated.TagData(t.el, t.doc.index)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.Path(), err)
	}
	return v, nil
}

// SetValue replaces the tag's value. v is fitted to the current value's
// type: atomics convert to the tag's kind and keep its radix, strings are
// truncated to the tag's capacity, and anything else must match exactly.
func (t *Tag) SetValue(v logix.LogixType) error {
	if t.IsAlias() {
		return fmt.Errorf("%s: %w", t.Path(), ErrAlias)
	}
	current, err := t.Value()
	if err != nil {
		return err
	}
	fitted, err := logix.Set(current, "", v)
	if err != nil {
		return fmt.Errorf("%s: %w", t.Path(), err)
	}
	if err := decorated.SetTagData(t.el, fitted); err != nil {
		return fmt.Errorf("%s: %w", t.Path(), err)
	}
	t.doc.logger.Debug("tag written", "tag", t.Path())
	return nil
}

// Get reads the member at path below the tag.
func (t *Tag) Get(path string) (logix.LogixType, error) {
	v, err := t.Value()
	if err != nil {
		return nil, err
	}
	m, err := logix.Lookup(v, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", logix.JoinPath(t.Path(), path), err)
	}
	return m, nil
}

// Set writes the member at path below the tag. Writes to a bit or a nested
// member are re-embedded in the tag's value before it is stored.
func (t *Tag) Set(path string, v logix.LogixType) error {
	current, err := t.Value()
	if err != nil {
		return err
	}
	next, err := logix.Set(current, path, v)
	if err != nil {
		return fmt.Errorf("%s: %w", logix.JoinPath(t.Path(), path), err)
	}
	return t.SetValue(next)
}

// SetText parses text against the member at path and writes it. Atomic
// text may use any radix specifier; string text may be a quoted literal or
// plain text.
func (t *Tag) SetText(path, text string) error {
	slot, err := t.Get(path)
	if err != nil {
		return err
	}
	v, err := ParseText(slot, text)
	if err != nil {
		return fmt.Errorf("%s: %w", logix.JoinPath(t.Path(), path), err)
	}
	return t.Set(path, v)
}

// SetTextIn parses text in radix r and writes it to the atomic member at
// path. The member keeps its own radix. Text without the radix specifier,
// such as "FF" for Hex, is read as if it had one.
func (t *Tag) SetTextIn(path, text string, r logix.Radix) error {
	slot, err := t.Get(path)
	if err != nil {
		return err
	}
	a, ok := slot.(logix.Atomic)
	if !ok {
		return fmt.Errorf("%s: radix %s applies to atomic members, not %s", logix.JoinPath(t.Path(), path), r, slot.Name())
	}
	v, err := r.ParseAs(withSpecifier(text, r), a.Kind())
	if err != nil {
		return fmt.Errorf("%s: %w", logix.JoinPath(t.Path(), path), err)
	}
	return t.Set(path, v)
}

func withSpecifier(text string, r logix.Radix) string {
	spec := r.Specifier()
	text = strings.TrimSpace(text)
	if spec == "" || text == "" || strings.HasPrefix(strings.ToUpper(text), spec) {
		return text
	}
	return spec + text
}

// ParseText parses text as a value for slot.
func ParseText(slot logix.LogixType, text string) (logix.LogixType, error) {
	switch s := slot.(type) {
	case logix.Atomic:
		a, err := logix.ParseAtomic(s.Kind(), text)
		if err != nil {
			return nil, err
		}
		return a, nil
	case logix.String:
		if len(text) >= 2 && text[0] == '\'' && text[len(text)-1] == '\'' {
			return s.WithLiteral(text)
		}
		return s.WithText(text), nil
	}
	return nil, fmt.Errorf("cannot set %s %s from text", slot.Class(), slot.Name())
}
