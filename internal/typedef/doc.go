// Package typedef compiles user-defined data types authored in CUE into L5X
// DataType elements.
//
// Types live under a top-level "type" struct, keyed by name:
//
//	type: Motor: {
//		description: "Drive state"
//		members: {
//			Running: {type: "BOOL"}
//			Status:  {type: "DINT", radix: "Hex"}
//			Speeds:  {type: "REAL", dimension: 3}
//		}
//	}
//	type: STRING_20: {family: "StringFamily", capacity: 20}
//
// Scalar BOOL members are packed into hidden SINT host members and emitted
// as BIT members, the way the programming software exports them.
package typedef
