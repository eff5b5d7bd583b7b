package decorated

// Element names.
const (
	ElemData            = "Data"
	ElemDataValue       = "DataValue"
	ElemArray           = "Array"
	ElemStructure       = "Structure"
	ElemDataValueMember = "DataValueMember"
	ElemArrayMember     = "ArrayMember"
	ElemStructureMember = "StructureMember"
	ElemElement         = "Element"
)

// Attribute names.
const (
	AttrName           = "Name"
	AttrDataType       = "DataType"
	AttrDimension      = "Dimension"
	AttrDimensions     = "Dimensions"
	AttrRadix          = "Radix"
	AttrExternalAccess = "ExternalAccess"
	AttrValue          = "Value"
	AttrIndex          = "Index"
	AttrFormat         = "Format"
	AttrLength         = "Length"
)

// Data formats.
const (
	FormatDecorated = "Decorated"
	FormatString    = "String"
	FormatL5K       = "L5K"
)
