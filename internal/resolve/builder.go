package resolve

import (
	"log/slog"
	"strings"

	"github.com/beevik/etree"

	"github.com/roach88/l5x/internal/decorated"
	"github.com/roach88/l5x/internal/logix"
)

// L5X definition vocabulary.
const (
	elemMember    = "Member"
	elemParameter = "Parameter"
	elemLocalTag  = "LocalTag"

	attrFamily = "Family"
	attrClass  = "Class"
	attrHidden = "Hidden"
	attrTarget = "Target"
	attrUsage  = "Usage"

	familyString = "StringFamily"
	typeBit      = "BIT"
	usageInOut   = "InOut"
)

type rawDef struct {
	name   string
	source Source
	el     *etree.Element
}

// builder collects raw definitions and materializes prototypes depth-first.
// It resolves member types against itself while building.
type builder struct {
	logger   *slog.Logger
	raw      map[string]rawDef
	order    []string
	built    map[string]logix.LogixType
	building map[string]bool
}

func newBuilder(logger *slog.Logger) *builder {
	return &builder{
		logger:   logger,
		raw:      make(map[string]rawDef),
		built:    make(map[string]logix.LogixType),
		building: make(map[string]bool),
	}
}

func (b *builder) register(name string, source Source, el *etree.Element) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	key := fold(name)
	if prev, ok := b.raw[key]; ok {
		b.logger.Debug("duplicate type definition ignored", "type", name, "source", source, "kept", prev.source)
		return
	}
	b.raw[key] = rawDef{name: name, source: source, el: el}
	b.order = append(b.order, key)
}

func (b *builder) collect(root *etree.Element) {
	for _, el := range root.FindElements(".//DataTypes/DataType") {
		b.register(el.SelectAttrValue(decorated.AttrName, ""), SourceDataType, el)
	}
	for _, el := range root.FindElements(".//AddOnInstructionDefinitions/AddOnInstructionDefinition") {
		b.register(el.SelectAttrValue(decorated.AttrName, ""), SourceInstruction, el)
	}
	for _, el := range root.FindElements(".//Modules/Module") {
		b.collectModule(el)
	}
}

// collectModule registers every structure embedded in a module's
// connection tags under its declared data type.
func (b *builder) collectModule(el *etree.Element) {
	for _, c := range el.ChildElements() {
		if c.Tag == decorated.ElemStructure || c.Tag == decorated.ElemStructureMember {
			dt := c.SelectAttrValue(decorated.AttrDataType, "")
			if _, ok := logix.Builtin(dt); !ok {
				b.register(dt, SourceModule, c)
			}
		}
		b.collectModule(c)
	}
}

// Resolve implements decorated.Resolver while the index is being built.
func (b *builder) Resolve(name string) logix.LogixType {
	if t, ok := logix.Builtin(name); ok {
		return t
	}
	key := fold(name)
	if _, ok := b.raw[key]; ok {
		return b.build(key)
	}
	b.logger.Debug("type resolution miss", "type", name)
	return logix.NewUndefined(name)
}

func (b *builder) build(key string) logix.LogixType {
	if t, ok := b.built[key]; ok {
		return t
	}
	raw := b.raw[key]
	if b.building[key] {
		b.logger.Debug("cyclic type reference", "type", raw.name)
		return logix.NewUndefined(raw.name)
	}
	b.building[key] = true
	defer delete(b.building, key)

	var t logix.LogixType
	switch raw.source {
	case SourceDataType:
		t = b.dataType(raw)
	case SourceInstruction:
		t = b.instruction(raw)
	case SourceModule:
		t = b.module(raw)
	}
	b.built[key] = t
	return t
}

func isTrue(el *etree.Element, attr string) bool {
	return strings.EqualFold(el.SelectAttrValue(attr, ""), "true")
}

// dims reads Dimension or Dimensions, whichever the element carries.
func dims(el *etree.Element) logix.Dimensions {
	text := el.SelectAttrValue(decorated.AttrDimension, "")
	if text == "" {
		text = el.SelectAttrValue(decorated.AttrDimensions, "")
	}
	d, err := logix.ParseDimensions(text)
	if err != nil {
		return logix.Dimensions{}
	}
	return d
}

// member builds the prototype of a declared member: the resolved type with
// the declared radix, wrapped in an array when dimensioned.
func (b *builder) member(el *etree.Element, dataType string) logix.LogixType {
	proto := b.Resolve(dataType)
	if a, ok := proto.(logix.Atomic); ok {
		if r, err := logix.ParseRadix(el.SelectAttrValue(decorated.AttrRadix, "")); err == nil && r != logix.RadixNull {
			if ar, err := a.WithRadix(r); err == nil {
				proto = ar
			}
		}
	}
	d := dims(el)
	if d.IsEmpty() {
		return proto
	}
	arr, err := logix.NewArray(proto, d)
	if err != nil {
		b.logger.Debug("member array dropped", "member", el.SelectAttrValue(decorated.AttrName, ""), "error", err)
		return proto
	}
	return arr
}

func (b *builder) dataType(raw rawDef) logix.LogixType {
	members := raw.el.FindElements("./Members/" + elemMember)

	if strings.EqualFold(raw.el.SelectAttrValue(attrFamily, ""), familyString) {
		capacity := 0
		for _, m := range members {
			if strings.EqualFold(m.SelectAttrValue(decorated.AttrName, ""), logix.StringDataMember) {
				capacity = dims(m).Len()
			}
		}
		return logix.NewStringType(raw.name, capacity)
	}

	// Hidden hosts back the BIT members and are not addressable. Other
	// hidden members are ordinary data.
	hosts := make(map[string]bool)
	for _, m := range members {
		if strings.EqualFold(m.SelectAttrValue(decorated.AttrDataType, ""), typeBit) {
			if target := m.SelectAttrValue(attrTarget, ""); target != "" {
				hosts[strings.ToLower(target)] = true
			}
		}
	}

	out := make([]logix.Member, 0, len(members))
	for _, m := range members {
		name := m.SelectAttrValue(decorated.AttrName, "")
		if name == "" || (isTrue(m, attrHidden) && hosts[strings.ToLower(name)]) {
			continue
		}
		dt := m.SelectAttrValue(decorated.AttrDataType, "")
		if strings.EqualFold(dt, typeBit) {
			dt = logix.KindBool.String()
		}
		out = append(out, logix.Member{Name: name, Type: b.member(m, dt)})
	}
	class := logix.ParseDataTypeClass(raw.el.SelectAttrValue(attrClass, logix.DataTypeClassUser.String()))
	return logix.NewStructure(raw.name, class, out...)
}

// instruction builds the backing structure of an Add-On Instruction: its
// parameters, except InOut references, followed by its local tags.
func (b *builder) instruction(raw rawDef) logix.LogixType {
	var out []logix.Member
	for _, p := range raw.el.FindElements("./Parameters/" + elemParameter) {
		if strings.EqualFold(p.SelectAttrValue(attrUsage, ""), usageInOut) {
			continue
		}
		out = append(out, logix.Member{
			Name: p.SelectAttrValue(decorated.AttrName, ""),
			Type: b.member(p, p.SelectAttrValue(decorated.AttrDataType, "")),
		})
	}
	for _, lt := range raw.el.FindElements("./LocalTags/" + elemLocalTag) {
		out = append(out, logix.Member{
			Name: lt.SelectAttrValue(decorated.AttrName, ""),
			Type: b.member(lt, lt.SelectAttrValue(decorated.AttrDataType, "")),
		})
	}
	return logix.NewStructure(raw.name, logix.DataTypeClassAddOnDefined, out...)
}

// module materializes a structure embedded in module data. The exported
// values become the prototype.
func (b *builder) module(raw rawDef) logix.LogixType {
	t, err := decorated.Deserialize(raw.el, b)
	if err != nil {
		b.logger.Debug("module structure skipped", "type", raw.name, "error", err)
		return logix.NewUndefined(raw.name)
	}
	if s, ok := t.(logix.Structure); ok {
		return logix.NewStructure(raw.name, logix.DataTypeClassProductDefined, s.Members()...)
	}
	return t
}
