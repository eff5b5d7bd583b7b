package harness

import (
	"strings"

	"github.com/roach88/l5x/internal/l5x"
)

// StepEvent records the outcome of one step.
type StepEvent struct {
	Seq     int    `json:"seq"`
	Operand string `json:"operand"`
	Value   string `json:"value"`

	// Error is the category of a failed write, empty on success.
	Error string `json:"error,omitempty"`

	// Message is the text of a failed write.
	Message string `json:"message,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass is true if every step behaved as expected and every assertion held.
	Pass bool `json:"pass"`

	// Steps contains one event per executed step, in order.
	Steps []StepEvent `json:"steps"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	doc     *l5x.Document
	written []*l5x.Tag
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []StepEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Document returns the document after the steps ran.
func (r *Result) Document() *l5x.Document { return r.doc }

func (r *Result) markWritten(tag *l5x.Tag) {
	for _, t := range r.written {
		if strings.EqualFold(t.Path(), tag.Path()) {
			return
		}
	}
	r.written = append(r.written, tag)
}
