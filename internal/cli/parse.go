package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/l5x/internal/l5x"
)

// ParseResult summarizes a full deserialization of a document.
type ParseResult struct {
	Controller string         `json:"controller"`
	Types      int            `json:"types"`
	Tags       int            `json:"tags"`
	Aliases    int            `json:"aliases"`
	Loaded     int            `json:"loaded"`
	Failures   []ParseFailure `json:"failures"`
}

// ParseFailure is one tag whose data could not be read.
type ParseFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file.L5X>",
		Short: "Check that every tag value deserializes",
		Long: `Deserialize the data of every tag in an L5X document and report the
tags that fail, with the path of the offending element.

Exit codes:
  0 - All tags loaded
  1 - One or more tags failed
  2 - Command error (unreadable file, not an L5X document)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runParse(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	doc, err := opts.loadDocument(f, path)
	if err != nil {
		return err
	}

	result := ParseResult{
		Controller: doc.Controller(),
		Types:      doc.Index().Len(),
		Failures:   []ParseFailure{},
	}
	for _, tag := range doc.Tags() {
		result.Tags++
		if tag.IsAlias() {
			result.Aliases++
		}
	}

	values, err := doc.Values()
	result.Loaded = len(values)
	var le *l5x.LoadError
	if errors.As(err, &le) {
		for _, failure := range le.Failures {
			result.Failures = append(result.Failures, ParseFailure{Path: failure.Path, Error: failure.Err.Error()})
		}
	} else if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, "failed to read tags", err)
	}

	if f.JSON() {
		if len(result.Failures) > 0 {
			if err := f.encode(CLIResponse{
				Status: "error",
				Data:   result,
				Error:  &CLIError{Code: ErrCodeTagFailures, Message: fmt.Sprintf("%d tag(s) failed", len(result.Failures))},
			}); err != nil {
				return err
			}
			return NewExitError(ExitFailure, fmt.Sprintf("%d tag(s) failed", len(result.Failures)))
		}
		return f.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Controller %s: %d types, %d tags (%d aliases), %d loaded\n",
		result.Controller, result.Types, result.Tags, result.Aliases, result.Loaded)
	for _, failure := range result.Failures {
		fmt.Fprintf(w, "✗ %s\n  %s\n", failure.Path, failure.Error)
	}
	if len(result.Failures) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d tag(s) failed", len(result.Failures)))
	}
	fmt.Fprintln(w, "✓ All tags loaded")
	return nil
}
