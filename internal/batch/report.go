package batch

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Status is the outcome of one case.
type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusSkipped Status = "skipped"
)

// CaseResult is the outcome of evaluating one case.
type CaseResult struct {
	Name string   `json:"name" yaml:"name" cbor:"name"`
	Op   string   `json:"op" yaml:"op" cbor:"op"`
	Args []string `json:"args" yaml:"args" cbor:"args"`

	// Output is the display string of a successful evaluation.
	Output string `json:"output,omitempty" yaml:"output,omitempty" cbor:"output,omitempty"`

	// Error and ErrorCode describe a failed evaluation.
	Error     string `json:"error,omitempty" yaml:"error,omitempty" cbor:"error,omitempty"`
	ErrorCode string `json:"error_code,omitempty" yaml:"error_code,omitempty" cbor:"error_code,omitempty"`

	// Expected is the case's expect or expect_error value.
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty" cbor:"expected,omitempty"`

	Status Status `json:"status" yaml:"status" cbor:"status"`

	// Reason explains a failure.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty" cbor:"reason,omitempty"`
}

// Report is the outcome of a batch run.
type Report struct {
	RunID   string       `json:"run_id" yaml:"run_id" cbor:"run_id"`
	Name    string       `json:"name" yaml:"name" cbor:"name"`
	Cases   []CaseResult `json:"cases" yaml:"cases" cbor:"cases"`
	Passed  int          `json:"passed" yaml:"passed" cbor:"passed"`
	Failed  int          `json:"failed" yaml:"failed" cbor:"failed"`
	Skipped int          `json:"skipped" yaml:"skipped" cbor:"skipped"`
}

// OK reports whether every case passed.
func (r *Report) OK() bool {
	return r.Failed == 0 && r.Skipped == 0
}

// tally recomputes the totals from the case results.
func (r *Report) tally() {
	r.Passed, r.Failed, r.Skipped = 0, 0, 0
	for _, c := range r.Cases {
		switch c.Status {
		case StatusPass:
			r.Passed++
		case StatusFail:
			r.Failed++
		case StatusSkipped:
			r.Skipped++
		}
	}
}

// WriteTable renders the report as a table followed by a summary line.
func WriteTable(w io.Writer, r *Report) error {
	table := tablewriter.NewWriter(w)
	table.Header("Case", "Op", "Args", "Result", "Status")
	for _, c := range r.Cases {
		result := c.Output
		if c.ErrorCode != "" {
			result = c.ErrorCode
		}
		if c.Reason != "" {
			result = fmt.Sprintf("%s (%s)", result, c.Reason)
		}
		if err := table.Append(c.Name, c.Op, strings.Join(c.Args, " "), result, strings.ToUpper(string(c.Status))); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%s: %d passed, %d failed, %d skipped (run %s)\n",
		r.Name, r.Passed, r.Failed, r.Skipped, r.RunID)
	return err
}
