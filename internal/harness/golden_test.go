package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden(t *testing.T) {
	for _, name := range []string{"counter_update", "timer_preset", "greeting_text"} {
		t.Run(name, func(t *testing.T) {
			s := load(t, filepath.Join("testdata", "scenarios", name+".yaml"))
			require.NoError(t, RunWithGolden(t, s))
		})
	}
}

func TestSnapshot_WrittenTagsOnce(t *testing.T) {
	result, err := Run(load(t, "testdata/scenarios/line1_motor.yaml"))
	require.NoError(t, err)

	// M1 is written twice and Total never.
	require.Len(t, result.written, 2)
	assert.Equal(t, "M1", result.written[0].Path())
	assert.Equal(t, "Program:MainProgram.Local", result.written[1].Path())

	data, err := result.Snapshot("line1_motor")
	require.NoError(t, err)
	assert.Contains(t, string(data), `<Scenario Name="line1_motor">`)
	assert.Contains(t, string(data), `<Element Index="[2]" Value="30.5"/>`)
}

func TestSnapshot_NoWrites(t *testing.T) {
	s := load(t, "testdata/scenarios/counter_update.yaml")
	s.Steps = nil
	s.Assertions = []Assertion{{Path: "Count", Value: "1"}}
	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	data, err := result.Snapshot("empty")
	require.NoError(t, err)
	assert.Equal(t, "<Scenario Name=\"empty\"/>\n", string(data))
}
