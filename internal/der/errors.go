package der

import (
	"errors"
	"fmt"
)

// Error taxonomy. Every decode failure matches exactly one of these with
// errors.Is.
var (
	// ErrInvalidTag is returned when an identifier octet is missing or its
	// long-form continuation is cut short.
	ErrInvalidTag = errors.New("der: invalid tag")

	// ErrInvalidLength is returned when the length octets are missing,
	// truncated, or use the indefinite form.
	ErrInvalidLength = errors.New("der: invalid length")

	// ErrUnexpectedEOF is returned when fewer value bytes remain than the
	// declared length.
	ErrUnexpectedEOF = errors.New("der: unexpected end of data")
)

// Specific reasons, reported alongside one of the taxonomy errors above.
var (
	// ErrIndefiniteLength marks the 0x80 length octet, which DER forbids.
	ErrIndefiniteLength = errors.New("der: indefinite length not allowed")

	// ErrTagOverflow marks a long-form tag number wider than 64 bits.
	ErrTagOverflow = errors.New("der: tag number overflow")

	// ErrLengthOverflow marks a declared length that does not fit in an int.
	ErrLengthOverflow = errors.New("der: length overflow")
)

// DecodeError describes where and why decoding stopped.
type DecodeError struct {
	Offset  int    // Absolute byte offset where the failing field starts
	Message string // Human-readable description
	Err     error  // One of ErrInvalidTag, ErrInvalidLength, ErrUnexpectedEOF
	Reason  error  // Optional specific cause, e.g. ErrIndefiniteLength
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Reason != nil {
		return fmt.Sprintf("der: decode error at offset %d: %s: %v", e.Offset, e.Message, e.Reason)
	}
	return fmt.Sprintf("der: decode error at offset %d: %s: %v", e.Offset, e.Message, e.Err)
}

// Unwrap exposes both the taxonomy error and the specific reason.
func (e *DecodeError) Unwrap() []error {
	if e.Reason == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Reason}
}
