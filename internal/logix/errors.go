package logix

import (
	"errors"
	"fmt"
)

// Error is returned by radix formatting/parsing, atomic conversion and member access.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Input is the offending text, member name or value (optional).
	Input string

	// DataType names the destination or owning data type (optional).
	DataType string
}

// ErrorCode categorizes logix errors.
type ErrorCode string

const (
	// ErrCodeFormat indicates the text does not match the radix format.
	ErrCodeFormat ErrorCode = "FORMAT"

	// ErrCodeRange indicates a value does not fit the destination width.
	ErrCodeRange ErrorCode = "RANGE"

	// ErrCodeUnsupportedRadix indicates the radix cannot represent the atomic type.
	ErrCodeUnsupportedRadix ErrorCode = "UNSUPPORTED_RADIX"

	// ErrCodeArgument indicates an empty or otherwise invalid argument.
	ErrCodeArgument ErrorCode = "ARGUMENT"

	// ErrCodeMember indicates a missing member or a member of the wrong kind.
	ErrCodeMember ErrorCode = "MEMBER"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Input != "" && e.DataType != "":
		return fmt.Sprintf("%s: %s (input=%q, type=%s)", e.Code, e.Message, e.Input, e.DataType)
	case e.Input != "":
		return fmt.Sprintf("%s: %s (input=%q)", e.Code, e.Message, e.Input)
	case e.DataType != "":
		return fmt.Sprintf("%s: %s (type=%s)", e.Code, e.Message, e.DataType)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func hasCode(err error, code ErrorCode) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.Code == code
	}
	return false
}

// IsFormatError returns true if err is a radix format mismatch.
func IsFormatError(err error) bool { return hasCode(err, ErrCodeFormat) }

// IsRangeError returns true if err reports a value exceeding the destination width.
func IsRangeError(err error) bool { return hasCode(err, ErrCodeRange) }

// IsUnsupportedRadix returns true if err reports a radix/type mismatch.
func IsUnsupportedRadix(err error) bool { return hasCode(err, ErrCodeUnsupportedRadix) }

// IsArgumentError returns true if err reports an empty or invalid argument.
func IsArgumentError(err error) bool { return hasCode(err, ErrCodeArgument) }

// IsMemberError returns true if err reports a missing or mismatched member.
func IsMemberError(err error) bool { return hasCode(err, ErrCodeMember) }

func formatError(input string, format string, args ...any) *Error {
	return &Error{Code: ErrCodeFormat, Message: fmt.Sprintf(format, args...), Input: input}
}

func rangeError(input string, kind AtomicKind) *Error {
	return &Error{
		Code:     ErrCodeRange,
		Message:  fmt.Sprintf("value out of range for %d-bit type", kind.Bits()),
		Input:    input,
		DataType: kind.String(),
	}
}

func unsupportedRadix(r Radix, kind AtomicKind) *Error {
	return &Error{
		Code:     ErrCodeUnsupportedRadix,
		Message:  fmt.Sprintf("radix %s does not support this type", r),
		DataType: kind.String(),
	}
}

func argumentError(message string) *Error {
	return &Error{Code: ErrCodeArgument, Message: message}
}

func memberError(owner, name, message string) *Error {
	return &Error{Code: ErrCodeMember, Message: message, Input: name, DataType: owner}
}
