// Package decorated maps logix values to and from the "Decorated" data
// format of L5X files: a nested, self-describing element tree.
//
// Top-level values are rooted at DataValue, Array or Structure; members use
// DataValueMember, ArrayMember and StructureMember; array slots are Element
// entries with a bracketed Index attribute:
//
//	<Structure DataType="Motor">
//	  <DataValueMember Name="Status" DataType="DINT" Radix="Hex" Value="16#0000_0010"/>
//	  <ArrayMember Name="Speeds" DataType="REAL" Dimensions="3" Radix="Float">
//	    <Element Index="[0]" Value="0.0"/>
//	    ...
//	  </ArrayMember>
//	  <StructureMember Name="Label" DataType="STRING">
//	    <DataValueMember Name="LEN" DataType="DINT" Radix="Decimal" Value="2"/>
//	    <DataValueMember Name="DATA" DataType="STRING" Radix="ASCII"><![CDATA['M1']]></DataValueMember>
//	  </StructureMember>
//	</Structure>
//
// Element and attribute names are case-sensitive and must match the target
// tooling byte for byte.
package decorated
