// Package cursor provides the chunked byte reader used to scan Amira files
// whose header and stream sizes are unknown up front.
//
// A [Cursor] pulls bounded chunks from an io.Reader into a growable buffer
// and tracks the absolute file offset of the buffer head. Bytes are only
// ever read from the source once: callers discard consumed bytes and the
// scanner re-searches the retained tail (the rescan overlap) after each
// refill, so a delimiter split across two reads is still found.
//
// End of source is signaled by a zero-length read. The cursor then reports
// [Cursor.Exhausted] while still exposing any buffered-but-unscanned bytes,
// which is how the scanner distinguishes "no more bytes, tail still to be
// parsed" from "nothing left at all". Read errors other than end-of-file
// are returned to the caller unchanged.
//
// # Key Methods
//
//   - [Cursor.Fill]: append up to n new bytes from the source
//   - [Cursor.Ensure]: refill until at least n bytes are buffered
//   - [Cursor.Discard]: drop consumed bytes, advancing the base offset
//   - [Cursor.Take]: extract and consume an exact-length payload
//   - [Cursor.Offset]: absolute file offset of a buffered byte
package cursor
