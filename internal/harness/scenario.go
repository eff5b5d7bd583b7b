package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/l5x/internal/logix"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Document is the path of the L5X file to load. Relative paths are
	// resolved against the scenario file's directory.
	Document string `yaml:"document,omitempty"`

	// XML is an inline document, used when Document is empty.
	XML string `yaml:"xml,omitempty"`

	// Steps are executed in order against the loaded document.
	Steps []Step `yaml:"steps,omitempty"`

	// Assertions validate the document after all steps ran.
	Assertions []Assertion `yaml:"assertions"`
}

// Step writes one operand.
type Step struct {
	// Set is the full operand to write, e.g. "Program:Main.Motor.Speeds[1]".
	Set string `yaml:"set"`

	// Value is the text to write.
	Value string `yaml:"value"`

	// Radix, when set, parses Value in this radix instead of inferring it.
	Radix string `yaml:"radix,omitempty"`

	// ExpectError names the error category the write must fail with.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Assertion checks one operand of the final document.
type Assertion struct {
	Path     string `yaml:"path"`
	Value    string `yaml:"value,omitempty"`
	Radix    string `yaml:"radix,omitempty"`
	DataType string `yaml:"data_type,omitempty"`

	// Error names the error category reading Path must fail with.
	Error string `yaml:"error,omitempty"`
}

// Error category names.
const (
	CategoryRange      = "range"
	CategoryFormat     = "format"
	CategoryRadix      = "radix"
	CategoryArgument   = "argument"
	CategoryMember     = "member"
	CategoryNotFound   = "not_found"
	CategoryAlias      = "alias"
	CategoryStructural = "structural"
)

var categories = []string{
	CategoryRange, CategoryFormat, CategoryRadix, CategoryArgument,
	CategoryMember, CategoryNotFound, CategoryAlias, CategoryStructural,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	s, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}
	if s.Document != "" && !filepath.IsAbs(s.Document) {
		s.Document = filepath.Join(filepath.Dir(path), s.Document)
	}
	if s.Document != "" {
		if _, err := os.Stat(s.Document); err != nil {
			return nil, fmt.Errorf("invalid scenario: document not found: %s", s.Document)
		}
	}
	return s, nil
}

// ParseScenario parses scenario YAML. Document paths are left as written.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if (s.Document == "") == (s.XML == "") {
		return fmt.Errorf("exactly one of document or xml is required")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Set == "" {
			return fmt.Errorf("steps[%d]: set is required", i)
		}
		if step.Value == "" {
			return fmt.Errorf("steps[%d]: value is required", i)
		}
		if step.Radix != "" {
			if _, err := logix.ParseRadix(step.Radix); err != nil {
				return fmt.Errorf("steps[%d]: %w", i, err)
			}
		}
		if step.ExpectError != "" && !slices.Contains(categories, step.ExpectError) {
			return fmt.Errorf("steps[%d]: unknown error category %q", i, step.ExpectError)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	if a.Path == "" {
		return fmt.Errorf("assertions[%d]: path is required", index)
	}
	if a.Error != "" {
		if !slices.Contains(categories, a.Error) {
			return fmt.Errorf("assertions[%d]: unknown error category %q", index, a.Error)
		}
		if a.Value != "" || a.Radix != "" || a.DataType != "" {
			return fmt.Errorf("assertions[%d]: error cannot be combined with value checks", index)
		}
		return nil
	}
	if a.Value == "" && a.Radix == "" && a.DataType == "" {
		return fmt.Errorf("assertions[%d]: one of value, radix, data_type or error is required", index)
	}
	if a.Radix != "" {
		if _, err := logix.ParseRadix(a.Radix); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
	}
	return nil
}
