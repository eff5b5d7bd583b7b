// Package logix provides the Logix data model used by L5X tag and data type exports.
//
// This package contains the value model and the radix codec only. All other
// internal packages import logix; logix imports nothing internal. This keeps
// the model the foundational layer with no circular dependencies.
//
// The model is a closed set of value kinds behind the sealed LogixType interface:
//   - Atomic: fixed-width scalars (BOOL, SINT..LINT, USINT..ULINT, REAL, LREAL)
//   - Structure: ordered, named members
//   - Array: 1 to 3 fixed dimensions, row-major
//   - String: LEN/DATA pair where LEN is always derived from DATA
//   - Undefined: a placeholder carrying an unresolved type name
//
// Values are immutable. Writing a member returns a new value, and writing
// through an operand path re-embeds the new child at every ancestor slot:
//
//	tag, err := logix.Set(tag, "Status.Flags.3", logix.NewBool(true))
package logix
