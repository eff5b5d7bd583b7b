// Package resolve maps data type names to zero-valued logix prototypes.
//
// Resolution order:
//
//  1. Built-in atomic and predefined types, by exact name.
//  2. The per-document Index: user-defined DataType elements, structures
//     embedded in module connection tags, and Add-On Instruction
//     definitions, compared case-insensitively.
//  3. logix.Undefined carrying the unresolved name. Resolution never fails.
//
// An Index is built once from a document root and is read-only afterwards,
// so it may be shared across goroutines.
package resolve
