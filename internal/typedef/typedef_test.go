package typedef

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/beevik/etree"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/l5x/internal/logix"
	"github.com/roach88/l5x/internal/resolve"
	"github.com/roach88/l5x/internal/testutil"
)

const motorSource = `
type: Motor: {
	description: "Drive state"
	members: {
		Running: {type: "BOOL"}
		Faulted: {type: "BOOL", description: "Trip"}
		Status: {type: "DINT", radix: "Hex"}
		Speeds: {type: "REAL", dimension: 3}
		Run: {type: "TIMER"}
		Label: {type: "STRING_20", external_access: "Read Only"}
	}
}
type: STRING_20: {family: "StringFamily", capacity: 20}
`

func compileSource(t *testing.T, src string) cue.Value {
	t.Helper()
	v := cuecontext.New().CompileString(src)
	require.NoError(t, v.Err())
	return v
}

func compileType(t *testing.T, src, name string) (*Definition, error) {
	t.Helper()
	return Compile(compileSource(t, src).LookupPath(cue.ParsePath("type." + name)))
}

func quietIndex(root *etree.Element) *resolve.Index {
	return resolve.NewIndex(root, resolve.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestCompileMotor(t *testing.T) {
	def, err := compileType(t, motorSource, "Motor")
	require.NoError(t, err)

	assert.Equal(t, "Motor", def.Name)
	assert.Equal(t, "Drive state", def.Description)
	assert.Equal(t, FamilyNone, def.Family)
	require.Len(t, def.Members, 6)

	status := def.Members[2]
	assert.Equal(t, "Status", status.Name)
	assert.Equal(t, logix.RadixHex, status.Radix)
	assert.Equal(t, AccessReadWrite, status.ExternalAccess)

	assert.Equal(t, 3, def.Members[3].Dimension)
	assert.Equal(t, logix.RadixNull, def.Members[4].Radix)
	assert.Equal(t, AccessReadOnly, def.Members[5].ExternalAccess)
}

func TestCompileStringFamily(t *testing.T) {
	def, err := compileType(t, motorSource, "STRING_20")
	require.NoError(t, err)
	assert.True(t, def.IsString())
	assert.Equal(t, 20, def.Capacity)

	def, err = compileType(t, `type: STR: {family: "StringFamily"}`, "STR")
	require.NoError(t, err)
	assert.Equal(t, logix.DefaultStringCapacity, def.Capacity)
}

func TestElementGolden(t *testing.T) {
	def, err := compileType(t, motorSource, "Motor")
	require.NoError(t, err)

	doc := etree.NewDocument()
	doc.SetRoot(def.Element())
	doc.Indent(2)
	out, err := doc.WriteToBytes()
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "motor_datatype", out)
}

func TestBoolPacking(t *testing.T) {
	var b strings.Builder
	b.WriteString("type: Flags: members: {\n")
	for i := range 9 {
		fmt.Fprintf(&b, "\tB%d: {type: \"BOOL\"}\n", i)
	}
	b.WriteString("\tCount: {type: \"DINT\"}\n\tLast: {type: \"BOOL\"}\n}\n")

	def, err := compileType(t, b.String(), "Flags")
	require.NoError(t, err)

	var hosts, targets []string
	for _, m := range def.Element().FindElements("./Members/Member") {
		if m.SelectAttrValue("Hidden", "") == "true" {
			hosts = append(hosts, m.SelectAttrValue("Name", ""))
			continue
		}
		if m.SelectAttrValue("DataType", "") == "BIT" {
			targets = append(targets, m.SelectAttrValue("Target", "")+"/"+m.SelectAttrValue("BitNumber", ""))
		}
	}
	assert.Equal(t, []string{"ZZZZZZZZZZFlags0", "ZZZZZZZZZZFlags1", "ZZZZZZZZZZFlags2"}, hosts)
	assert.Equal(t, "ZZZZZZZZZZFlags0/7", targets[7])
	assert.Equal(t, "ZZZZZZZZZZFlags1/0", targets[8])
	assert.Equal(t, "ZZZZZZZZZZFlags2/0", targets[9])
}

func TestCompiledTypeMatchesExport(t *testing.T) {
	defs, err := CompileAll(compileSource(t, motorSource))
	require.NoError(t, err)
	require.Len(t, defs, 2)

	root := testutil.Element(t, `<RSLogix5000Content><Controller Name="Fresh"/></RSLogix5000Content>`)
	replaced, err := Install(root, defs...)
	require.NoError(t, err)
	assert.Empty(t, replaced)

	compiled := quietIndex(root).Resolve("Motor")
	exported := quietIndex(testutil.SampleRoot(t)).Resolve("Motor")
	assert.True(t, logix.SameShape(exported, compiled))
}

func TestInstallReplacesInPlace(t *testing.T) {
	def, err := compileType(t, `type: Motor: members: Speed: {type: "REAL"}`, "Motor")
	require.NoError(t, err)

	root := testutil.SampleRoot(t)
	replaced, err := Install(root, def)
	require.NoError(t, err)
	assert.Equal(t, []string{"Motor"}, replaced)

	types := root.FindElements("./Controller/DataTypes/DataType")
	assert.Equal(t, "Motor", types[0].SelectAttrValue("Name", ""))
	assert.Len(t, types[0].FindElements("./Members/Member"), 1)

	_, err = Install(testutil.Element(t, `<RSLogix5000Content/>`), def)
	assert.Error(t, err)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{"missing members", `type: T: {description: "x"}`, "members"},
		{"empty members", `type: T: members: {}`, "members"},
		{"missing type", `type: T: members: A: {radix: "Hex"}`, "members.A.type"},
		{"bit reserved", `type: T: members: A: {type: "BIT"}`, "members.A.type"},
		{"radix unsupported", `type: T: members: A: {type: "DINT", radix: "Float"}`, "members.A.radix"},
		{"unknown radix", `type: T: members: A: {type: "DINT", radix: "Roman"}`, "members.A.radix"},
		{"bool array size", `type: T: members: A: {type: "BOOL", dimension: 10}`, "members.A.dimension"},
		{"negative dimension", `type: T: members: A: {type: "DINT", dimension: -1}`, "members.A.dimension"},
		{"bad access", `type: T: members: A: {type: "DINT", external_access: "Sometimes"}`, "members.A.external_access"},
		{"duplicate member", `type: T: members: {a: {type: "DINT"}, A: {type: "DINT"}}`, "members.A"},
		{"bad member name", `type: T: members: "9lives": {type: "DINT"}`, "members.9lives"},
		{"trailing underscore", `type: T: members: A_: {type: "DINT"}`, "members.A_"},
		{"string with members", `type: T: {family: "StringFamily", members: A: {type: "DINT"}}`, "members"},
		{"zero capacity", `type: T: {family: "StringFamily", capacity: 0}`, "capacity"},
		{"unknown family", `type: T: {family: "Other", members: A: {type: "DINT"}}`, "family"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileType(t, tt.src, "T")
			require.Error(t, err)
			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestCompileAllCollectsErrors(t *testing.T) {
	defs, err := CompileAll(compileSource(t, `
type: Good: members: A: {type: "DINT"}
type: Bad: members: {}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type Bad")
	require.Len(t, defs, 1)
	assert.Equal(t, "Good", defs[0].Name)

	_, err = CompileAll(compileSource(t, `other: 1`))
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "types.cue"), []byte("package types\n"+motorSource), 0o644))

	defs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "Motor", defs[0].Name)
	assert.Equal(t, "STRING_20", defs[1].Name)

	_, err = LoadDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
