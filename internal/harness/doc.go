// Package harness runs conformance scenarios against L5X documents.
//
// A scenario loads a document, writes a sequence of operands through the
// same path the CLI uses, and then checks the resulting values.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	document: ../projects/Line1.L5X   # or an inline xml: block
//	steps:
//	  - set: M1.Speeds[1]
//	    value: "12.5"
//	  - set: Count
//	    value: "FF"
//	    radix: Hex
//	  - set: Count
//	    value: "99999999999"
//	    expect_error: range
//	assertions:
//	  - path: Count
//	    value: "255"
//	    radix: Decimal
//	    data_type: DINT
//	  - path: Missing
//	    error: not_found
//
// A step without radix parses its value the way the CLI does: atomic text
// may carry any radix specifier, and string text may be a quoted literal.
// Assertion values match either the exact formatted text or any text that
// parses to the same value.
//
// # Error Categories
//
// expect_error and error name one of: range, format, radix, argument,
// member, not_found, alias, structural.
//
// # Golden Files
//
// RunWithGolden snapshots every tag written by the steps, in the order they
// were first written, as indented XML under testdata/golden/<name>.golden.
// Regenerate with:
//
//	go test ./internal/harness -update
package harness
