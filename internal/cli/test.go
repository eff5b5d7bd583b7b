package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/l5x/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // rewrite golden files from the current output
	Filter string // glob over scenario file names, without extension
}

// ScenarioResult is the outcome of one scenario file.
type ScenarioResult struct {
	Name   string              `json:"name"`
	File   string              `json:"file"`
	Pass   bool                `json:"pass"`
	Steps  []harness.StepEvent `json:"steps,omitempty"`
	Errors []string            `json:"errors,omitempty"`
}

// TestResult is the outcome of a scenario run.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test [scenarios-dir]",
		Short: "Run tag read/write scenarios",
		Long: `Run the YAML scenarios found under a directory. Each scenario writes
operands of an L5X document and asserts the values read back.

A scenario file <name>.yaml may have a golden file golden/<name>.golden
next to it; the XML of the tags the scenario wrote must then match it
byte for byte. --update rewrites the golden files instead of checking.
The directory defaults to the "scenarios" entry of the config file.

Exit codes:
  0 - Every scenario passed
  1 - A scenario failed
  2 - Command error (missing directory, bad filter)

Examples:
  l5x test ./scenarios
  l5x test ./scenarios --filter "timer_*"
  l5x test ./scenarios --update --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.config().Scenarios
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				return NewExitError(ExitCommandError, "no scenarios directory given and none configured")
			}
			return runTests(opts, dir, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "rewrite golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "only scenarios whose file name matches this glob")

	return cmd
}

func runTests(opts *TestOptions, dir string, cmd *cobra.Command) error {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", dir))
	}
	files, err := scenarioFiles(dir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot list scenarios", err)
	}

	f := opts.formatter(cmd)
	w := cmd.OutOrStdout()
	result := TestResult{Scenarios: []ScenarioResult{}, Total: len(files)}
	for _, file := range files {
		sr := opts.runScenario(file)
		result.Scenarios = append(result.Scenarios, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
		if !f.JSON() {
			printScenario(w, sr, opts.Update)
		}
	}

	var failed error
	if result.Failed > 0 {
		failed = NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}

	if f.JSON() {
		if failed == nil {
			return f.Success(result)
		}
		if err := f.encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error:  &CLIError{Code: ErrCodeTestFailed, Message: failed.Error()},
		}); err != nil {
			return err
		}
		return failed
	}

	if result.Total == 0 {
		fmt.Fprintln(w, "No scenarios found.")
		return nil
	}
	fmt.Fprintf(w, "\nTest Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	if failed != nil {
		return failed
	}
	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}

// scenarioFiles lists the .yaml and .yml files below dir in lexical order.
func scenarioFiles(dir, filter string) ([]string, error) {
	if filter != "" {
		if _, err := filepath.Match(filter, ""); err != nil {
			return nil, fmt.Errorf("filter %q: %w", filter, err)
		}
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name, ok := scenarioName(path)
		if !ok {
			return nil
		}
		if filter != "" {
			if match, _ := filepath.Match(filter, name); !match {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	return files, err
}

// scenarioName strips a YAML extension from the file name.
func scenarioName(path string) (string, bool) {
	base := filepath.Base(path)
	for _, ext := range []string{".yaml", ".yml"} {
		if name, ok := strings.CutSuffix(base, ext); ok {
			return name, true
		}
	}
	return "", false
}

// goldenPath is golden/<name>.golden beside the scenario file.
func goldenPath(file string) string {
	name, _ := scenarioName(file)
	return filepath.Join(filepath.Dir(file), "golden", name+".golden")
}

func (o *TestOptions) runScenario(file string) ScenarioResult {
	sr := ScenarioResult{Name: filepath.Base(file), File: file}
	scenario, err := harness.LoadScenario(file)
	if err != nil {
		sr.Errors = []string{err.Error()}
		return sr
	}
	sr.Name = scenario.Name

	res, err := harness.Run(scenario, harness.WithLogger(o.logger()))
	if err != nil {
		sr.Errors = []string{err.Error()}
		return sr
	}
	sr.Pass, sr.Steps, sr.Errors = res.Pass, res.Steps, res.Errors

	if err := o.checkGolden(file, scenario.Name, res); err != nil {
		sr.Pass = false
		sr.Errors = append(sr.Errors, err.Error())
	}
	return sr
}

// checkGolden compares the written tags with the scenario's golden file, or
// rewrites it with --update. A scenario without a golden file is judged by
// its assertions alone.
func (o *TestOptions) checkGolden(file, name string, res *harness.Result) error {
	got, err := res.Snapshot(name)
	if err != nil {
		return fmt.Errorf("render written tags: %w", err)
	}
	path := goldenPath(file)
	if o.Update {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("update golden file: %w", err)
		}
		if err := os.WriteFile(path, got, 0o644); err != nil {
			return fmt.Errorf("update golden file: %w", err)
		}
		return nil
	}
	want, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read golden file: %w", err)
	}
	if !bytes.Equal(want, got) {
		return fmt.Errorf("written tags do not match golden file %s (run with --update to regenerate)", path)
	}
	return nil
}

func printScenario(w io.Writer, sr ScenarioResult, updated bool) {
	switch {
	case !sr.Pass:
		fmt.Fprintf(w, "✗ %s\n", sr.Name)
		for _, e := range sr.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	case updated:
		fmt.Fprintf(w, "✓ %s (golden updated)\n", sr.Name)
	default:
		fmt.Fprintf(w, "✓ %s\n", sr.Name)
	}
}
