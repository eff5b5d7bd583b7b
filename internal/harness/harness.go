package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/l5x/internal/decorated"
	"github.com/roach88/l5x/internal/l5x"
	"github.com/roach88/l5x/internal/logix"
)

// Harness executes scenario steps against one document.
type Harness struct {
	doc    *l5x.Document
	logger *slog.Logger
}

// Option configures Run.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for the document and step tracing.
// Scenarios run silently by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Run executes a test scenario and returns the result.
//
// Each run loads a fresh copy of the document, so scenarios never observe
// each other's writes. The returned error covers failures to load the
// document; step and assertion failures are reported in the Result.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		doc *l5x.Document
		err error
	)
	if scenario.Document != "" {
		doc, err = l5x.Load(scenario.Document, l5x.WithLogger(o.logger))
	} else {
		doc, err = l5x.Parse(strings.NewReader(scenario.XML), l5x.WithLogger(o.logger))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	h := &Harness{doc: doc, logger: o.logger}
	result := NewResult()
	result.doc = doc

	for i, step := range scenario.Steps {
		h.executeStep(i+1, step, result)
	}
	for _, msg := range EvaluateAssertions(doc, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func (h *Harness) executeStep(seq int, step Step, result *Result) {
	event := StepEvent{Seq: seq, Operand: step.Set, Value: step.Value}
	err := h.write(step, result)
	if err != nil {
		event.Error = Category(err)
		event.Message = err.Error()
	}
	result.Steps = append(result.Steps, event)
	h.logger.Debug("step executed", "seq", seq, "operand", step.Set, "error", event.Error)

	switch {
	case step.ExpectError == "" && err != nil:
		result.AddError(fmt.Sprintf("steps[%d] %s: unexpected error: %v", seq-1, step.Set, err))
	case step.ExpectError != "" && err == nil:
		result.AddError(fmt.Sprintf("steps[%d] %s: expected %s error, write succeeded", seq-1, step.Set, step.ExpectError))
	case step.ExpectError != "" && event.Error != step.ExpectError:
		result.AddError(fmt.Sprintf("steps[%d] %s: expected %s error, got %s: %v", seq-1, step.Set, step.ExpectError, event.Error, err))
	}
}

func (h *Harness) write(step Step, result *Result) error {
	tag, path, err := h.doc.Operand(step.Set)
	if err != nil {
		return err
	}
	if step.Radix == "" {
		err = tag.SetText(path, step.Value)
	} else {
		var r logix.Radix
		if r, err = logix.ParseRadix(step.Radix); err == nil {
			err = tag.SetTextIn(path, step.Value, r)
		}
	}
	if err != nil {
		return err
	}
	result.markWritten(tag)
	return nil
}

// Category maps an error to its scenario error category. Errors outside the
// known categories map to "other".
func Category(err error) string {
	switch {
	case err == nil:
		return ""
	case logix.IsRangeError(err):
		return CategoryRange
	case logix.IsFormatError(err):
		return CategoryFormat
	case logix.IsUnsupportedRadix(err):
		return CategoryRadix
	case logix.IsArgumentError(err):
		return CategoryArgument
	case logix.IsMemberError(err):
		return CategoryMember
	case errors.Is(err, l5x.ErrTagNotFound):
		return CategoryNotFound
	case errors.Is(err, l5x.ErrAlias):
		return CategoryAlias
	case decorated.IsStructuralError(err):
		return CategoryStructural
	}
	return "other"
}
