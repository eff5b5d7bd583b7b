package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_Inline(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/timer_preset.yaml")
	require.NoError(t, err)

	assert.Equal(t, "timer_preset", s.Name)
	assert.Empty(t, s.Document)
	assert.Contains(t, s.XML, `<Tag Name="T1"`)
	require.Len(t, s.Steps, 5)
	assert.Equal(t, Step{Set: "T1.ACC", Value: "12", Radix: "Decimal"}, s.Steps[1])
	assert.Equal(t, CategoryRange, s.Steps[3].ExpectError)
	assert.Equal(t, Assertion{Path: "T2", Error: CategoryNotFound}, s.Assertions[3])
}

func TestLoadScenario_DocumentRelativeToFile(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/line1_motor.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("testdata", "projects", "Line1.L5X"), s.Document)
}

func TestLoadScenario_MissingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: missing
description: points at nothing
document: nowhere.L5X
assertions:
  - path: Count
    value: "1"
`), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document not found")
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_RejectsUnknownFields(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: typo
description: misspelled key
xml: "<RSLogix5000Content/>"
assertion:
  - path: Count
    value: "1"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Validation(t *testing.T) {
	const head = "name: n\ndescription: d\nxml: \"<x/>\"\n"
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no name", "description: d\nxml: x\nassertions: [{path: A, value: '1'}]", "name is required"},
		{"no description", "name: n\nxml: x\nassertions: [{path: A, value: '1'}]", "description is required"},
		{"no source", "name: n\ndescription: d\nassertions: [{path: A, value: '1'}]", "exactly one of document or xml"},
		{"both sources", "name: n\ndescription: d\nxml: x\ndocument: y\nassertions: [{path: A, value: '1'}]", "exactly one of document or xml"},
		{"no assertions", head, "assertions list is required"},
		{"step without set", head + "steps: [{value: '1'}]\nassertions: [{path: A, value: '1'}]", "steps[0]: set is required"},
		{"step without value", head + "steps: [{set: A}]\nassertions: [{path: A, value: '1'}]", "steps[0]: value is required"},
		{"step bad radix", head + "steps: [{set: A, value: '1', radix: Roman}]\nassertions: [{path: A, value: '1'}]", "steps[0]"},
		{"step bad category", head + "steps: [{set: A, value: '1', expect_error: oops}]\nassertions: [{path: A, value: '1'}]", `unknown error category "oops"`},
		{"assertion without path", head + "assertions: [{value: '1'}]", "assertions[0]: path is required"},
		{"assertion without check", head + "assertions: [{path: A}]", "one of value, radix, data_type or error"},
		{"assertion error and value", head + "assertions: [{path: A, value: '1', error: range}]", "cannot be combined"},
		{"assertion bad radix", head + "assertions: [{path: A, radix: Roman}]", "assertions[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
