package harness

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/l5x/internal/decorated"
	"github.com/roach88/l5x/internal/l5x"
	"github.com/roach88/l5x/internal/testutil"
)

func load(t *testing.T, path string) *Scenario {
	t.Helper()
	s, err := LoadScenario(path)
	require.NoError(t, err)
	return s
}

func TestRun_InlineScenario(t *testing.T) {
	result, err := Run(load(t, "testdata/scenarios/timer_preset.yaml"))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	require.Len(t, result.Steps, 5)
	assert.Empty(t, result.Steps[0].Error)
	assert.Equal(t, CategoryRange, result.Steps[3].Error)
	assert.NotEmpty(t, result.Steps[3].Message)
	assert.Equal(t, CategoryMember, result.Steps[4].Error)
	for i, step := range result.Steps {
		assert.Equal(t, i+1, step.Seq)
	}
}

func TestRun_DocumentScenario(t *testing.T) {
	result, err := Run(load(t, "testdata/scenarios/line1_motor.yaml"))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, CategoryAlias, result.Steps[3].Error)
	assert.Equal(t, "Line1", result.Document().Controller())
}

func TestRun_DoesNotModifyDocumentFile(t *testing.T) {
	s := load(t, "testdata/scenarios/line1_motor.yaml")
	_, err := Run(s)
	require.NoError(t, err)

	doc, err := l5x.Load(s.Document)
	require.NoError(t, err)
	tag, path, err := doc.Operand("M1.Speeds[2]")
	require.NoError(t, err)
	v, err := tag.Get(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0", fmt.Sprint(v))
}

func TestRun_ReportsFailures(t *testing.T) {
	s := &Scenario{
		Name:        "failing",
		Description: "every kind of failure",
		XML:         testutil.SampleL5X,
		Steps: []Step{
			{Set: "Count", Value: "7"},
			{Set: "Count", Value: "nope"},
			{Set: "Count", Value: "8", ExpectError: CategoryRange},
			{Set: "Count", Value: "99999999999", ExpectError: CategoryFormat},
		},
		Assertions: []Assertion{
			{Path: "Count", Value: "9", Radix: "Hex", DataType: "INT"},
			{Path: "Count", Error: CategoryNotFound},
			{Path: "M1", Value: "1"},
			{Path: "Nope", Value: "1"},
		},
	}
	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)

	want := []string{
		"steps[1] Count: unexpected error",
		"steps[2] Count: expected range error, write succeeded",
		"steps[3] Count: expected format error, got range",
		`assertion failed: Count data_type: expected "INT", actual "DINT"`,
		`assertion failed: Count radix: expected "Hex", actual "Decimal"`,
		`assertion failed: Count value: expected "9", actual "8"`,
		`assertion failed: Count error: expected "not_found", actual "no error"`,
		"assertion failed: M1: value checks need an atomic or string operand",
		"assertion failed: Nope: tag not found",
	}
	require.Len(t, result.Errors, len(want))
	for i, w := range want {
		assert.Contains(t, result.Errors[i], w)
	}
}

func TestRun_ValueMatchesParsedText(t *testing.T) {
	s := &Scenario{
		Name:        "parsed",
		Description: "assertion values may use another radix",
		XML:         testutil.SampleL5X,
		Assertions: []Assertion{
			{Path: "Count", Value: "16#2A"},
			{Path: "Count", Value: "2#10_1010"},
			{Path: "Setpoints[0]", Value: "1.50"},
		},
	}
	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_InvalidDocument(t *testing.T) {
	_, err := Run(&Scenario{Name: "bad", Description: "d", XML: "<Other/>"})
	require.Error(t, err)
	assert.ErrorIs(t, err, l5x.ErrNotL5X)
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "", Category(nil))
	assert.Equal(t, CategoryNotFound, Category(fmt.Errorf("x: %w", l5x.ErrTagNotFound)))
	assert.Equal(t, CategoryAlias, Category(l5x.ErrAlias))
	assert.Equal(t, CategoryStructural, Category(&decorated.StructuralError{Element: "Data"}))
	assert.Equal(t, "other", Category(errors.New("boom")))
}
