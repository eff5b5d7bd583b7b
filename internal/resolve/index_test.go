package resolve

import (
	"bytes"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/l5x/internal/logix"
	"github.com/roach88/l5x/internal/testutil"
)

func quietIndex(t *testing.T) *Index {
	t.Helper()
	return NewIndex(testutil.SampleRoot(t), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func memberNames(t logix.LogixType) []string {
	var names []string
	for _, m := range t.Members() {
		names = append(names, m.Name)
	}
	return names
}

func TestIndexNamesInRegistrationOrder(t *testing.T) {
	ix := quietIndex(t)
	assert.Equal(t, []string{"Motor", "STRING_20", "Line", "Loop", "Ramp", "AB:1756_DI:I:0"}, ix.Names())
	assert.Equal(t, 6, ix.Len())
}

func TestIndexUserType(t *testing.T) {
	ix := quietIndex(t)

	got := ix.Resolve("motor")
	s, ok := got.(logix.Structure)
	require.True(t, ok, "got %T", got)
	assert.Equal(t, "Motor", s.Name())
	assert.Equal(t, logix.DataTypeClassUser, s.DataTypeClass())
	assert.Equal(t, []string{"Running", "Faulted", "Status", "Speeds", "Run", "Label"}, memberNames(s))

	running, err := logix.Lookup(s, "Running")
	require.NoError(t, err)
	assert.Equal(t, logix.KindBool, running.(logix.Atomic).Kind())

	status, err := logix.Lookup(s, "Status")
	require.NoError(t, err)
	assert.Equal(t, logix.RadixHex, status.(logix.Atomic).Radix())

	speeds, err := logix.MemberAs[logix.Array](s, "Speeds")
	require.NoError(t, err)
	assert.Equal(t, 3, speeds.Len())
	assert.Equal(t, "REAL", speeds.Name())

	label, err := logix.MemberAs[logix.String](s, "Label")
	require.NoError(t, err)
	assert.Equal(t, "STRING_20", label.Name())
	assert.Equal(t, 20, label.Capacity())
}

func TestIndexFirstDefinitionWins(t *testing.T) {
	ix := quietIndex(t)
	def, ok := ix.Definition("MOTOR")
	require.True(t, ok)
	assert.Equal(t, "Motor", def.Name)
	assert.NotContains(t, memberNames(def.Prototype), "Shadow")
}

func TestIndexNestedAndUnresolvedMembers(t *testing.T) {
	ix := quietIndex(t)
	line := ix.Resolve("Line")

	motors, err := logix.MemberAs[logix.Array](line, "Motors")
	require.NoError(t, err)
	assert.Equal(t, 2, motors.Len())
	first, err := motors.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "Motor", first.Name())

	recipe, err := logix.Lookup(line, "Recipe")
	require.NoError(t, err)
	assert.True(t, logix.IsUndefined(recipe))
	assert.Equal(t, "RecipeFromElsewhere", recipe.Name())
}

func TestIndexCycleDegradesToUndefined(t *testing.T) {
	ix := quietIndex(t)
	next, err := logix.Lookup(ix.Resolve("Loop"), "Next")
	require.NoError(t, err)
	assert.True(t, logix.IsUndefined(next))
	assert.Equal(t, "Loop", next.Name())
}

func TestIndexInstruction(t *testing.T) {
	ix := quietIndex(t)
	ramp := ix.Resolve("RAMP")
	s, ok := ramp.(logix.Structure)
	require.True(t, ok)
	assert.Equal(t, logix.DataTypeClassAddOnDefined, s.DataTypeClass())
	assert.Equal(t, []string{"EnableIn", "EnableOut", "Target", "Step"}, memberNames(s))

	def, ok := ix.Definition("Ramp")
	require.True(t, ok)
	assert.Equal(t, SourceInstruction, def.Source)
}

func TestIndexModuleStructure(t *testing.T) {
	ix := quietIndex(t)
	mod, ok := ix.Lookup("ab:1756_di:i:0")
	require.True(t, ok)
	s := mod.(logix.Structure)
	assert.Equal(t, logix.DataTypeClassProductDefined, s.DataTypeClass())
	assert.Equal(t, []string{"Fault", "Data"}, memberNames(s))

	data, err := logix.Lookup(s, "Data")
	require.NoError(t, err)
	assert.Equal(t, int64(5), data.(logix.Atomic).Int64())
}

func TestResolveOrder(t *testing.T) {
	ix := quietIndex(t)

	dint := ix.Resolve("DINT")
	assert.Equal(t, logix.ClassAtomic, dint.Class())

	// Built-ins match exactly; a different case falls through to the index.
	lower := ix.Resolve("dint")
	assert.True(t, logix.IsUndefined(lower))

	timer := ix.Resolve("TIMER")
	assert.Equal(t, logix.DataTypeClassPredefined, timer.(logix.Structure).DataTypeClass())

	miss := ix.Resolve("NoSuchType")
	assert.True(t, logix.IsUndefined(miss))
	assert.Equal(t, "NoSuchType", miss.Name())

	_, ok := ix.Lookup("TIMER")
	assert.False(t, ok)
}

func TestResolveMissIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ix := NewIndex(testutil.SampleRoot(t), WithLogger(logger))

	buf.Reset()
	ix.Resolve("Ghost")
	assert.Contains(t, buf.String(), "type resolution miss")
	assert.Contains(t, buf.String(), "Ghost")
}

func TestNilRootIndex(t *testing.T) {
	ix := NewIndex(nil)
	assert.Zero(t, ix.Len())
	assert.Empty(t, ix.Names())
	assert.True(t, logix.IsUndefined(ix.Resolve("Motor")))
}

func TestBuiltinResolver(t *testing.T) {
	r := Builtin()
	assert.Equal(t, logix.ClassString, r.Resolve("STRING").Class())
	assert.True(t, logix.IsUndefined(r.Resolve("Motor")))
}

func TestIndexConcurrentReads(t *testing.T) {
	ix := quietIndex(t)
	names := append(ix.Names(), "DINT", "missing")

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				for _, n := range names {
					assert.NotNil(t, ix.Resolve(n))
				}
			}
		}()
	}
	wg.Wait()
}

func TestIndexHiddenMembers(t *testing.T) {
	root := testutil.Element(t, `<Controller><DataTypes>
<DataType Name="Valve" Family="NoFamily" Class="User">
<Members>
<Member Name="ZZZZZZZZZZValve0" DataType="SINT" Dimension="0" Radix="Decimal" Hidden="true"/>
<Member Name="Open" DataType="BIT" Dimension="0" Radix="Decimal" Hidden="false" Target="ZZZZZZZZZZValve0" BitNumber="0"/>
<Member Name="Cycles" DataType="DINT" Dimension="0" Radix="Decimal" Hidden="true"/>
</Members>
</DataType>
</DataTypes></Controller>`)
	ix := NewIndex(root, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	valve := ix.Resolve("Valve")
	assert.Equal(t, []string{"Open", "Cycles"}, memberNames(valve))
	cycles, err := logix.Lookup(valve, "Cycles")
	require.NoError(t, err)
	assert.Equal(t, logix.KindDint, cycles.(logix.Atomic).Kind())
}
