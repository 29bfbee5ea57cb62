// Package amira provides a pure Go reader for Amira (R) AmiraMesh and
// HyperSurface files.
package amira

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrUndefinedFormat is returned when the file does not begin with a
	// recognizable AmiraMesh or HyperSurface designation line.
	ErrUndefinedFormat = errors.New("undefined file format")
)

// StreamError reports a structural violation found while walking
// HyperSurface data streams: an unknown stream keyword, a group-nesting
// violation, a missing mandatory group, an item-count mismatch, or a
// malformed stream payload. A StreamError is always fatal for the file
// being processed.
type StreamError struct {
	// Stream is the stream or group keyword involved, when known.
	Stream string

	// Reason describes the violation.
	Reason string
}

func (e *StreamError) Error() string {
	if e.Stream == "" {
		return "amira: stream error: " + e.Reason
	}
	return fmt.Sprintf("amira: stream %q: %s", e.Stream, e.Reason)
}

func streamErrorf(stream, format string, args ...interface{}) error {
	return &StreamError{Stream: stream, Reason: fmt.Sprintf(format, args...)}
}

// SyntaxError reports a header that does not conform to the Amira header
// grammar. Remainder holds a prefix of the unconsumed input to aid
// diagnosis.
type SyntaxError struct {
	// Offset is the byte offset into the header text where parsing
	// stopped.
	Offset int

	// Remainder is a prefix of the text that could not be parsed.
	Remainder string

	// Reason describes what the parser expected.
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Remainder == "" {
		return fmt.Sprintf("amira: header syntax error at offset %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("amira: header syntax error at offset %d: %s (near %q)", e.Offset, e.Reason, e.Remainder)
}
