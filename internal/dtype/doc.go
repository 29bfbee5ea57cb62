// Package dtype defines the primitive element kinds used by Amira data
// streams and their on-disk byte sizes.
//
// Amira headers and the HyperSurface stream-descriptor table refer to
// elements by keyword (byte, short, int, long, float, double, char). The
// pseudo-kind "group" marks a counted list container rather than a payload
// element and has no byte size.
//
// # Key Functions
//
//   - [Parse]: maps a header keyword to a [Kind]
//   - [Kind.Size]: bytes per element on disk (0 for [Group])
package dtype
