// Package l5x loads and saves L5X project exports and gives typed access to
// their tags.
//
// A Document owns the parsed element tree and the type index built from it
// when it is opened. Tag values are read and written through the decorated
// data serializer, so a SetValue followed by Save produces an export the
// programming software can import.
package l5x
