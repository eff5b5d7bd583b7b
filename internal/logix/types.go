package logix

import "strings"

// LogixType is a sealed interface over every value in the data model.
// Only Atomic, Structure, Array, String and Undefined implement it.
type LogixType interface {
	// Name is the data type name (for arrays, the element type name).
	Name() string

	// Class is the kind discriminator used for dispatch.
	Class() Class

	// Members returns the named children in declaration order.
	// The returned slice is a copy; writing to it does not change the value.
	Members() []Member

	logixType() // Sealed
}

// Member is a named child value owned by a structure, array, string or atomic.
type Member struct {
	Name string
	Type LogixType
}

// Class discriminates the LogixType variants.
type Class uint8

const (
	ClassUnknown Class = iota
	ClassAtomic
	ClassStructure
	ClassArray
	ClassString
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassAtomic:
		return "Atomic"
	case ClassStructure:
		return "Structure"
	case ClassArray:
		return "Array"
	case ClassString:
		return "String"
	default:
		return "Unknown"
	}
}

// DataTypeClass is the origin of a structure definition, as exported in the
// Class attribute of L5X DataType elements.
type DataTypeClass uint8

const (
	DataTypeClassUnknown DataTypeClass = iota
	DataTypeClassPredefined
	DataTypeClassUser
	DataTypeClassProductDefined
	DataTypeClassAddOnDefined
)

var dataTypeClassNames = []string{"Unknown", "Predefined", "User", "ProductDefined", "AddOnDefined"}

// String returns the L5X class name.
func (c DataTypeClass) String() string {
	if int(c) < len(dataTypeClassNames) {
		return dataTypeClassNames[c]
	}
	return "Unknown"
}

// ParseDataTypeClass maps an L5X Class attribute to a DataTypeClass.
// Unrecognized names map to DataTypeClassUnknown.
func ParseDataTypeClass(name string) DataTypeClass {
	for i, n := range dataTypeClassNames {
		if strings.EqualFold(n, name) {
			return DataTypeClass(i)
		}
	}
	return DataTypeClassUnknown
}

// Undefined is the placeholder for a type name that could not be resolved.
// It carries only the name and has no members.
type Undefined struct {
	name string
}

// NewUndefined creates a placeholder for the named type.
func NewUndefined(name string) Undefined {
	return Undefined{name: name}
}

func (Undefined) logixType() {}

// Name returns the unresolved type name.
func (u Undefined) Name() string { return u.name }

// Class returns ClassUnknown.
func (Undefined) Class() Class { return ClassUnknown }

// Members returns nil.
func (Undefined) Members() []Member { return nil }

// IsUndefined returns true if t is an Undefined placeholder.
func IsUndefined(t LogixType) bool {
	_, ok := t.(Undefined)
	return ok
}
