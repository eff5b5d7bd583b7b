package harness

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/sebdah/goldie/v2"
)

// Snapshot renders every tag written by the scenario's steps, in the order
// they were first written, as an indented XML document.
func (r *Result) Snapshot(name string) ([]byte, error) {
	doc := etree.NewDocument()
	root := doc.CreateElement("Scenario")
	root.CreateAttr("Name", name)
	for _, tag := range r.written {
		root.AddChild(tag.Element().Copy())
	}
	doc.Indent(2)
	return doc.WriteToBytes()
}

// RunWithGolden executes a scenario, fails the test if any step or
// assertion failed, and compares the written tags against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Errorf("%s: %s", scenario.Name, msg)
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares the tags written in result against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := result.Snapshot(name)
	if err != nil {
		return err
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
