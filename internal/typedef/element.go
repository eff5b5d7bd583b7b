package typedef

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/roach88/l5x/internal/logix"
)

const (
	hostPrefix  = "ZZZZZZZZZZ"
	bitsPerHost = 8
)

// Element renders the definition as an L5X DataType element.
func (d *Definition) Element() *etree.Element {
	el := etree.NewElement("DataType")
	el.CreateAttr("Name", d.Name)
	el.CreateAttr("Family", d.Family)
	el.CreateAttr("Class", logix.DataTypeClassUser.String())
	if d.Description != "" {
		el.CreateElement("Description").CreateCData(d.Description)
	}
	members := el.CreateElement("Members")

	if d.IsString() {
		addMember(members, Member{Name: logix.StringLenMember, DataType: logix.KindDint.String(), Radix: logix.RadixDecimal, ExternalAccess: AccessReadWrite})
		addMember(members, Member{Name: logix.StringDataMember, DataType: logix.KindSint.String(), Dimension: d.Capacity, Radix: logix.RadixASCII, ExternalAccess: AccessReadWrite})
		return el
	}

	var (
		host  string
		bit   int
		hosts int
	)
	for _, m := range d.Members {
		if m.DataType != logix.KindBool.String() || m.Dimension > 0 {
			host = ""
			addMember(members, m)
			continue
		}
		if host == "" || bit == bitsPerHost {
			host = fmt.Sprintf("%s%s%d", hostPrefix, d.Name, hosts)
			hosts++
			bit = 0
			addMember(members, Member{Name: host, DataType: logix.KindSint.String(), Radix: logix.RadixDecimal, ExternalAccess: AccessReadWrite, Hidden: true})
		}
		mel := addMember(members, m)
		mel.SelectAttr("DataType").Value = "BIT"
		// Target and BitNumber follow Hidden, ahead of ExternalAccess.
		access := mel.SelectAttr("ExternalAccess").Value
		mel.RemoveAttr("ExternalAccess")
		mel.CreateAttr("Target", host)
		mel.CreateAttr("BitNumber", strconv.Itoa(bit))
		mel.CreateAttr("ExternalAccess", access)
		bit++
	}
	return el
}

func addMember(parent *etree.Element, m Member) *etree.Element {
	el := parent.CreateElement("Member")
	el.CreateAttr("Name", m.Name)
	el.CreateAttr("DataType", m.DataType)
	el.CreateAttr("Dimension", strconv.Itoa(m.Dimension))
	el.CreateAttr("Radix", m.Radix.String())
	el.CreateAttr("Hidden", strconv.FormatBool(m.Hidden))
	el.CreateAttr("ExternalAccess", m.ExternalAccess)
	if m.Description != "" {
		el.CreateElement("Description").CreateCData(m.Description)
	}
	return el
}

// Install adds the definitions to the DataTypes section of an L5X root,
// replacing any existing type of the same name in place. It returns the
// names that replaced an existing definition.
func Install(root *etree.Element, defs ...*Definition) ([]string, error) {
	controller := root.SelectElement("Controller")
	if controller == nil {
		return nil, fmt.Errorf("install types: document has no Controller")
	}
	types := controller.SelectElement("DataTypes")
	if types == nil {
		types = etree.NewElement("DataTypes")
		controller.InsertChildAt(0, types)
	}

	var replaced []string
	for _, def := range defs {
		el := def.Element()
		var existing *etree.Element
		for _, dt := range types.SelectElements("DataType") {
			if strings.EqualFold(dt.SelectAttrValue("Name", ""), def.Name) {
				existing = dt
				break
			}
		}
		if existing == nil {
			types.AddChild(el)
			continue
		}
		at := existing.Index()
		types.RemoveChild(existing)
		types.InsertChildAt(at, el)
		replaced = append(replaced, def.Name)
	}
	return replaced, nil
}
