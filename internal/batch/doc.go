// Package batch evaluates files of elapse computations and verifies their
// expected results.
//
// # File Format
//
// Batch files are YAML documents with the following structure:
//
//	name: leap-years
//	description: "February lengths across leap rules"
//	cases:
//	  - name: leap-day
//	    args: ["2024-02-28", "2024-03-01"]
//	    expect: "2d"
//	  - name: not-leap
//	    args: ["2023-02-29", "2023-03-01"]
//	    expect_error: InvalidCalendarDate
//	  - name: totals
//	    op: sum
//	    args: ["1h", "-30m", "15s"]
//
// Files are decoded strictly (unknown fields are rejected), validated
// against an embedded CUE schema, then checked for the rules the schema
// cannot express: unique case names, expect and expect_error mutually
// exclusive, and argument counts per op.
//
// # Operations
//
//   - auto (default): two inputs, interpreted by kind
//   - between: elapsed duration between two timestamps
//   - add: timestamp shifted by a duration
//   - sum: one or more durations
//   - hours: a 12-hour clock range
//
// # Deterministic Runs
//
// Every case in a run resolves "now" to the same Runner.Now, and the run
// is identified by Runner.RunID. Tests fix both so reports can be compared
// against golden files.
//
// # Usage
//
//	f, err := batch.Load("testdata/leap-years.yaml")
//	if err != nil {
//	    return err
//	}
//	runner := &batch.Runner{Now: clock.Now(), RunID: id, Workers: 4}
//	report, err := runner.Run(ctx, f)
package batch
