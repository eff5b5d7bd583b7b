package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

// SampleL5X is a small controller export exercising user, string-family,
// module-defined and Add-On types; controller and program tags; and the
// Decorated and String data formats.
const SampleL5X = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<RSLogix5000Content SchemaRevision="1.0" SoftwareRevision="33.00" TargetName="Line1" TargetType="Controller" ContainsContext="false" ExportOptions="References NoRawData L5KData DecoratedData ForceProtectedEncoding AllProjDocTrans">
<Controller Use="Target" Name="Line1" ProcessorType="1756-L83E" MajorRev="33" MinorRev="11">
<DataTypes>
<DataType Name="Motor" Family="NoFamily" Class="User">
<Description><![CDATA[Drive state]]></Description>
<Members>
<Member Name="ZZZZZZZZZZMotor0" DataType="SINT" Dimension="0" Radix="Decimal" Hidden="true" ExternalAccess="Read/Write"/>
<Member Name="Running" DataType="BIT" Dimension="0" Radix="Decimal" Hidden="false" Target="ZZZZZZZZZZMotor0" BitNumber="0" ExternalAccess="Read/Write"/>
<Member Name="Faulted" DataType="BIT" Dimension="0" Radix="Decimal" Hidden="false" Target="ZZZZZZZZZZMotor0" BitNumber="1" ExternalAccess="Read/Write"/>
<Member Name="Status" DataType="DINT" Dimension="0" Radix="Hex" Hidden="false" ExternalAccess="Read/Write"/>
<Member Name="Speeds" DataType="REAL" Dimension="3" Radix="Float" Hidden="false" ExternalAccess="Read/Write"/>
<Member Name="Run" DataType="TIMER" Dimension="0" Radix="NullType" Hidden="false" ExternalAccess="Read/Write"/>
<Member Name="Label" DataType="STRING_20" Dimension="0" Radix="NullType" Hidden="false" ExternalAccess="Read/Write"/>
</Members>
</DataType>
<DataType Name="STRING_20" Family="StringFamily" Class="User">
<Members>
<Member Name="LEN" DataType="DINT" Dimension="0" Radix="Decimal" Hidden="false" ExternalAccess="Read/Write"/>
<Member Name="DATA" DataType="SINT" Dimension="20" Radix="ASCII" Hidden="false" ExternalAccess="Read/Write"/>
</Members>
</DataType>
<DataType Name="Line" Family="NoFamily" Class="User">
<Members>
<Member Name="Motors" DataType="Motor" Dimension="2" Radix="NullType" Hidden="false" ExternalAccess="Read/Write"/>
<Member Name="Count" DataType="DINT" Dimension="0" Radix="Decimal" Hidden="false" ExternalAccess="Read/Write"/>
<Member Name="Recipe" DataType="RecipeFromElsewhere" Dimension="0" Radix="NullType" Hidden="false" ExternalAccess="Read/Write"/>
</Members>
</DataType>
<DataType Name="Loop" Family="NoFamily" Class="User">
<Members>
<Member Name="Next" DataType="Loop" Dimension="0" Radix="NullType" Hidden="false" ExternalAccess="Read/Write"/>
</Members>
</DataType>
<DataType Name="MOTOR" Family="NoFamily" Class="User">
<Members>
<Member Name="Shadow" DataType="DINT" Dimension="0" Radix="Decimal" Hidden="false" ExternalAccess="Read/Write"/>
</Members>
</DataType>
</DataTypes>
<Modules>
<Module Name="Local" CatalogNumber="1756-L83E" Vendor="1" ProductType="14" ProductCode="166" Major="33" Minor="11" ParentModule="Local" ParentModPortId="1" Inhibited="false" MajorFault="true">
<Ports>
<Port Id="1" Address="0" Type="ICP" Upstream="false"/>
</Ports>
</Module>
<Module Name="DI1" CatalogNumber="1756-IB16" Vendor="1" ProductType="7" ProductCode="58" Major="3" Minor="1" ParentModule="Local" ParentModPortId="1" Inhibited="false" MajorFault="false">
<Communications>
<Connections>
<Connection Name="Data" RPI="20000" Type="Input">
<InputTag ExternalAccess="Read/Write">
<Data Format="Decorated">
<Structure DataType="AB:1756_DI:I:0">
<DataValueMember Name="Fault" DataType="DINT" Radix="Binary" Value="2#0000_0000_0000_0000_0000_0000_0000_0000"/>
<DataValueMember Name="Data" DataType="DINT" Radix="Binary" Value="2#0000_0000_0000_0000_0000_0000_0000_0101"/>
</Structure>
</Data>
</InputTag>
</Connection>
</Connections>
</Communications>
</Module>
</Modules>
<AddOnInstructionDefinitions>
<AddOnInstructionDefinition Name="Ramp" Revision="1.0" ExecutePrescan="false" ExecutePostscan="false" ExecuteEnableInFalse="false">
<Parameters>
<Parameter Name="EnableIn" TagType="Base" DataType="BOOL" Usage="Input" Radix="Decimal" Required="false" Visible="false" ExternalAccess="Read Only"/>
<Parameter Name="EnableOut" TagType="Base" DataType="BOOL" Usage="Output" Radix="Decimal" Required="false" Visible="false" ExternalAccess="Read Only"/>
<Parameter Name="Target" TagType="Base" DataType="REAL" Usage="Input" Radix="Float" Required="true" Visible="true" ExternalAccess="Read/Write"/>
<Parameter Name="Buffer" TagType="Base" DataType="DINT" Dimensions="4" Usage="InOut" Required="true" Visible="true"/>
</Parameters>
<LocalTags>
<LocalTag Name="Step" DataType="REAL" Radix="Float" ExternalAccess="None"/>
</LocalTags>
</AddOnInstructionDefinition>
</AddOnInstructionDefinitions>
<Tags>
<Tag Name="Count" TagType="Base" DataType="DINT" Radix="Decimal" Constant="false" ExternalAccess="Read/Write">
<Description><![CDATA[Parts counted]]></Description>
<Data Format="L5K"><![CDATA[42]]></Data>
<Data Format="Decorated">
<DataValue DataType="DINT" Radix="Decimal" Value="42"/>
</Data>
</Tag>
<Tag Name="Total" TagType="Alias" Radix="Decimal" AliasFor="Count" ExternalAccess="Read/Write"/>
<Tag Name="Greeting" TagType="Base" DataType="STRING" Constant="false" ExternalAccess="Read/Write">
<Data Format="String" Length="5"><![CDATA['Hello']]></Data>
</Tag>
<Tag Name="Setpoints" TagType="Base" DataType="REAL" Dimensions="4" Radix="Float" Constant="false" ExternalAccess="Read/Write">
<Data Format="Decorated">
<Array DataType="REAL" Dimensions="4" Radix="Float">
<Element Index="[0]" Value="1.5"/>
<Element Index="[1]" Value="2.5"/>
<Element Index="[2]" Value="0.0"/>
<Element Index="[3]" Value="0.0"/>
</Array>
</Data>
</Tag>
<Tag Name="M1" TagType="Base" DataType="Motor" Constant="false" ExternalAccess="Read/Write">
<Data Format="Decorated">
<Structure DataType="Motor">
<DataValueMember Name="Running" DataType="BOOL" Value="1"/>
<DataValueMember Name="Faulted" DataType="BOOL" Value="0"/>
<DataValueMember Name="Status" DataType="DINT" Radix="Hex" Value="16#0000_0010"/>
<ArrayMember Name="Speeds" DataType="REAL" Dimensions="3" Radix="Float">
<Element Index="[0]" Value="0.0"/>
<Element Index="[1]" Value="12.5"/>
<Element Index="[2]" Value="0.0"/>
</ArrayMember>
<StructureMember Name="Run" DataType="TIMER">
<DataValueMember Name="PRE" DataType="DINT" Radix="Decimal" Value="5000"/>
<DataValueMember Name="ACC" DataType="DINT" Radix="Decimal" Value="0"/>
<DataValueMember Name="EN" DataType="BOOL" Value="0"/>
<DataValueMember Name="TT" DataType="BOOL" Value="0"/>
<DataValueMember Name="DN" DataType="BOOL" Value="0"/>
</StructureMember>
<StructureMember Name="Label" DataType="STRING_20">
<DataValueMember Name="LEN" DataType="DINT" Radix="Decimal" Value="4"/>
<DataValueMember Name="DATA" DataType="STRING_20" Radix="ASCII"><![CDATA['Pump']]></DataValueMember>
</StructureMember>
</Structure>
</Data>
</Tag>
<Tag Name="Ramp1" TagType="Base" DataType="Ramp" Constant="false" ExternalAccess="Read/Write">
<Data Format="Decorated">
<Structure DataType="Ramp">
<DataValueMember Name="EnableIn" DataType="BOOL" Value="1"/>
<DataValueMember Name="EnableOut" DataType="BOOL" Value="0"/>
<DataValueMember Name="Target" DataType="REAL" Radix="Float" Value="100.0"/>
<DataValueMember Name="Step" DataType="REAL" Radix="Float" Value="0.5"/>
</Structure>
</Data>
</Tag>
</Tags>
<Programs>
<Program Name="MainProgram" TestEdits="false" MainRoutineName="MainRoutine" Disabled="false" UseAsFolder="false">
<Tags>
<Tag Name="Local" TagType="Base" DataType="INT" Radix="Hex" Constant="false" ExternalAccess="Read/Write">
<Data Format="Decorated">
<DataValue DataType="INT" Radix="Hex" Value="16#00FF"/>
</Data>
</Tag>
</Tags>
<Routines/>
</Program>
</Programs>
</Controller>
</RSLogix5000Content>
`

// ParseDocument parses xml into an etree document.
func ParseDocument(t testing.TB, xml string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	require.NoError(t, doc.ReadFromString(xml))
	return doc
}

// SampleRoot returns the root element of SampleL5X.
func SampleRoot(t testing.TB) *etree.Element {
	t.Helper()
	return ParseDocument(t, SampleL5X).Root()
}

// Element parses a single XML element.
func Element(t testing.TB, xml string) *etree.Element {
	t.Helper()
	return ParseDocument(t, xml).Root()
}

// WriteFile writes content to name in a fresh temp directory and returns
// the path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// WriteSample writes SampleL5X to a temp file and returns its path.
func WriteSample(t testing.TB) string {
	t.Helper()
	return WriteFile(t, "Line1.L5X", SampleL5X)
}
